package state

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	RegistrationsKey         = "registrations"
	ArchivedRegistrationsKey = "archived_registrations"
)

// State is the client's persisted key/value state. It keeps the registration
// records of in-flight flows.
type State interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
	Reset(stateDbPath string) (string, error)
	Close() error
}

type LevelDBState struct {
	sync.Mutex
	stateDb     *leveldb.DB
	topic       string
	stateDbPath string
}

func NewLevelDBState(stateDbPath string, topic string) (*LevelDBState, error) {
	db, err := leveldb.OpenFile(stateDbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open stateDB: %w", err)
	}

	return &LevelDBState{
		stateDb:     db,
		topic:       topic,
		stateDbPath: stateDbPath,
	}, nil
}

// Topic is the namespace the repositories prefix their keys with.
func (s *LevelDBState) Topic() string {
	return s.topic
}

// Reset switches to a fresh underlying leveldb storage, the old one is kept
// on disk untouched.
func (s *LevelDBState) Reset(stateDbPath string) (string, error) {
	s.Lock()
	defer s.Unlock()

	if len(stateDbPath) < 1 {
		stateDbPath = fmt.Sprintf("%s_%d", s.stateDbPath, time.Now().Unix())
	}

	db, err := leveldb.OpenFile(stateDbPath, nil)
	if err != nil {
		return stateDbPath, fmt.Errorf("failed to open stateDB: %w", err)
	}
	if err := s.stateDb.Close(); err != nil {
		return stateDbPath, fmt.Errorf("failed to close old stateDB: %w", err)
	}
	s.stateDb = db
	s.stateDbPath = stateDbPath

	return stateDbPath, nil
}

// Get returns nil without an error when the key is missing.
func (s *LevelDBState) Get(key string) ([]byte, error) {
	s.Lock()
	defer s.Unlock()
	var (
		value []byte
		err   error
	)
	if value, err = s.stateDb.Get([]byte(key), nil); err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("failed to get value with key {%s} from leveldb storage: %w", key, err)
	}
	return value, nil
}

func (s *LevelDBState) Set(key string, value []byte) error {
	s.Lock()
	defer s.Unlock()
	if err := s.stateDb.Put([]byte(key), value, nil); err != nil {
		return fmt.Errorf("failed to save value with key %s: %w", key, err)
	}
	return nil
}

func (s *LevelDBState) Delete(key string) error {
	s.Lock()
	defer s.Unlock()

	err := s.stateDb.Delete([]byte(key), nil)
	if err != nil && !errors.Is(err, leveldb.ErrNotFound) {
		return fmt.Errorf("failed to delete value with key {%s}: %w", key, err)
	}
	return nil
}

func (s *LevelDBState) Keys(prefix string) ([]string, error) {
	s.Lock()
	defer s.Unlock()

	iter := s.stateDb.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	var keys []string
	for iter.Next() {
		keys = append(keys, string(iter.Key()))
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys with prefix %s: %w", prefix, err)
	}
	return keys, nil
}

func (s *LevelDBState) Close() error {
	s.Lock()
	defer s.Unlock()

	if err := s.stateDb.Close(); err != nil {
		return fmt.Errorf("failed to close stateDB: %w", err)
	}
	return nil
}

func MakeCompositeKey(prefix, key string) []byte {
	return []byte(fmt.Sprintf("%s_%s", prefix, key))
}

func MakeCompositeKeyString(prefix, key string) string {
	return fmt.Sprintf("%s_%s", prefix, key)
}
