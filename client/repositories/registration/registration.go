package registration

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/lidofinance/ensreg/client/modules/state"
	"github.com/lidofinance/ensreg/client/types"
)

var (
	ErrRecordNotFound = errors.New("registration record not found")
	ErrRecordExists   = errors.New("registration record already exists")
	// ErrStaleCommit is returned when a write targets a commit hash that is no
	// longer the record's current one.
	ErrStaleCommit = errors.New("commit transaction hash is stale")
)

// CommitParameters are persisted once the commit transaction is broadcast.
type CommitParameters struct {
	Hash         common.Hash
	Salt         common.Hash
	LabelHash    common.Hash
	Duration     int64
	OwnerAddress common.Address
	RentPrice    *big.Int
}

// RegistrationRepo reads and writes registration records field by field.
// Writes to the same repo are serialized.
type RegistrationRepo interface {
	GetRecord(name string) (*types.RegistrationRecord, error)
	ListRecords() ([]*types.RegistrationRecord, error)
	SaveRecord(record *types.RegistrationRecord) error
	SaveCommitParameters(name string, params CommitParameters) error
	SetCommitTransactionHash(name string, previous, hash common.Hash) error
	SetCommitConfirmedAt(name string, hash common.Hash, confirmedAt time.Time) error
	DeleteRecord(name string) error
}

type BaseRegistrationRepo struct {
	state         state.State
	prefix        string
	archivePrefix string

	// mu guards the read-modify-write of a record.
	mu sync.Mutex
}

func NewRegistrationRepo(s state.State, topic string) *BaseRegistrationRepo {
	return &BaseRegistrationRepo{
		state:         s,
		prefix:        state.MakeCompositeKeyString(topic, state.RegistrationsKey) + "_",
		archivePrefix: state.MakeCompositeKeyString(topic, state.ArchivedRegistrationsKey) + "_",
	}
}

func (r *BaseRegistrationRepo) key(name string) string {
	return r.prefix + strings.ToLower(name)
}

func (r *BaseRegistrationRepo) GetRecord(name string) (*types.RegistrationRecord, error) {
	bz, err := r.state.Get(r.key(name))
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	if len(bz) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}

	var record types.RegistrationRecord
	if err := json.Unmarshal(bz, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %s: %w", name, err)
	}
	return &record, nil
}

func (r *BaseRegistrationRepo) ListRecords() ([]*types.RegistrationRecord, error) {
	keys, err := r.state.Keys(r.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	records := make([]*types.RegistrationRecord, 0, len(keys))
	for _, key := range keys {
		record, err := r.GetRecord(strings.TrimPrefix(key, r.prefix))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *BaseRegistrationRepo) putRecord(record *types.RegistrationRecord) error {
	bz, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := r.state.Set(r.key(record.Name), bz); err != nil {
		return fmt.Errorf("failed to put record: %w", err)
	}
	return nil
}

func (r *BaseRegistrationRepo) update(name string, fn func(record *types.RegistrationRecord) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, err := r.GetRecord(name)
	if err != nil {
		return err
	}
	if err := fn(record); err != nil {
		return err
	}
	return r.putRecord(record)
}

func (r *BaseRegistrationRepo) SaveRecord(record *types.RegistrationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.GetRecord(record.Name); err == nil {
		return fmt.Errorf("%w: %s", ErrRecordExists, record.Name)
	} else if !errors.Is(err, ErrRecordNotFound) {
		return err
	}
	return r.putRecord(record)
}

// SaveCommitParameters is the initial write of the commit hash.
func (r *BaseRegistrationRepo) SaveCommitParameters(name string, params CommitParameters) error {
	return r.update(name, func(record *types.RegistrationRecord) error {
		hash, salt, labelHash := params.Hash, params.Salt, params.LabelHash
		record.CommitTransactionHash = &hash
		record.Salt = &salt
		record.LabelHash = &labelHash
		record.Duration = params.Duration
		record.OwnerAddress = params.OwnerAddress
		record.RentPrice = params.RentPrice
		return nil
	})
}

// SetCommitTransactionHash replaces the commit hash after a speed-up. The
// confirmation timestamp is left untouched: it stays bound to the hash it was
// recorded for.
func (r *BaseRegistrationRepo) SetCommitTransactionHash(name string, previous, hash common.Hash) error {
	return r.update(name, func(record *types.RegistrationRecord) error {
		if record.CommitHash() != previous {
			return fmt.Errorf("%w: have %s, replacing %s", ErrStaleCommit, record.CommitHash().Hex(), previous.Hex())
		}
		record.CommitTransactionHash = &hash
		return nil
	})
}

// SetCommitConfirmedAt writes the confirmation time of hash once. Repeated
// calls for the same hash are no-ops.
func (r *BaseRegistrationRepo) SetCommitConfirmedAt(name string, hash common.Hash, confirmedAt time.Time) error {
	return r.update(name, func(record *types.RegistrationRecord) error {
		if record.CommitHash() != hash {
			return fmt.Errorf("%w: have %s, confirming %s", ErrStaleCommit, record.CommitHash().Hex(), hash.Hex())
		}
		if record.ConfirmedAt() != nil {
			return nil
		}
		at := confirmedAt.UTC()
		record.CommitTransactionConfirmedAt = &at
		record.ConfirmedTransactionHash = &hash
		return nil
	})
}

// DeleteRecord moves the record under the archive prefix.
func (r *BaseRegistrationRepo) DeleteRecord(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bz, err := r.state.Get(r.key(name))
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}
	if len(bz) == 0 {
		return fmt.Errorf("%w: %s", ErrRecordNotFound, name)
	}

	archiveKey := fmt.Sprintf("%s%s_%d", r.archivePrefix, strings.ToLower(name), time.Now().UnixNano())
	if err := r.state.Set(archiveKey, bz); err != nil {
		return fmt.Errorf("failed to archive record: %w", err)
	}
	if err := r.state.Delete(r.key(name)); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}
