package keystore

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/lidofinance/ensreg/client/types"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/tyler-smith/go-bip39"
)

const (
	secretsKey = "secrets"
)

var ErrKeyNotFound = errors.New("no key found")

type KeyStore interface {
	PutKey(username string, key *ecdsa.PrivateKey) error
	LoadKey(username string) (*ecdsa.PrivateKey, error)
	Close() error
}

// LevelDBKeyStore keeps hot wallet keys in a local leveldb.
// The target state is an encrypted storage with password authentication.
type LevelDBKeyStore struct {
	keystoreDb *leveldb.DB
}

func NewLevelDBKeyStore(keystorePath string) (*LevelDBKeyStore, error) {
	db, err := leveldb.OpenFile(keystorePath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore: %w", err)
	}

	keystore := &LevelDBKeyStore{
		keystoreDb: db,
	}

	if err := keystore.initJsonKey(secretsKey, map[string]string{}); err != nil {
		return nil, fmt.Errorf("failed to init %s storage: %w", secretsKey, err)
	}

	return keystore, nil
}

func (s *LevelDBKeyStore) readKeys() (map[string]string, error) {
	bz, err := s.keystoreDb.Get([]byte(secretsKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	var keys = map[string]string{}
	if err := json.Unmarshal(bz, &keys); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keys: %w", err)
	}
	return keys, nil
}

func (s *LevelDBKeyStore) PutKey(username string, key *ecdsa.PrivateKey) error {
	keys, err := s.readKeys()
	if err != nil {
		return err
	}

	keys[username] = hexutil.Encode(crypto.FromECDSA(key))

	keysBz, err := json.Marshal(keys)
	if err != nil {
		return fmt.Errorf("failed to marshal keys: %w", err)
	}

	if err = s.keystoreDb.Put([]byte(secretsKey), keysBz, nil); err != nil {
		return fmt.Errorf("failed to put keys: %w", err)
	}

	return nil
}

func (s *LevelDBKeyStore) LoadKey(username string) (*ecdsa.PrivateKey, error) {
	keys, err := s.readKeys()
	if err != nil {
		return nil, err
	}

	encoded, ok := keys[username]
	if !ok {
		return nil, fmt.Errorf("%w for user %s", ErrKeyNotFound, username)
	}

	raw, err := hexutil.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key for user %s: %w", username, err)
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key for user %s: %w", username, err)
	}
	return key, nil
}

func (s *LevelDBKeyStore) Close() error {
	return s.keystoreDb.Close()
}

func (s *LevelDBKeyStore) initJsonKey(key string, data interface{}) error {
	if _, err := s.keystoreDb.Get([]byte(key), nil); err != nil {
		dataBz, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal storage structure: %w", err)
		}
		err = s.keystoreDb.Put([]byte(key), dataBz, nil)
		if err != nil {
			return fmt.Errorf("failed to init state: %w", err)
		}
	}

	return nil
}

// NewKey generates a secp256k1 key together with its 24 word backup phrase.
func NewKey() (*ecdsa.PrivateKey, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate key: %w", err)
	}
	mnemonic, err := BackupPhrase(key)
	if err != nil {
		return nil, "", err
	}
	return key, mnemonic, nil
}

// BackupPhrase encodes the raw 32 byte key as a bip39 mnemonic.
func BackupPhrase(key *ecdsa.PrivateKey) (string, error) {
	mnemonic, err := bip39.NewMnemonic(crypto.FromECDSA(key))
	if err != nil {
		return "", fmt.Errorf("failed to encode backup phrase: %w", err)
	}
	return mnemonic, nil
}

// KeyFromBackupPhrase restores a key encoded with BackupPhrase.
func KeyFromBackupPhrase(mnemonic string) (*ecdsa.PrivateKey, error) {
	entropy, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("failed to decode backup phrase: %w", err)
	}
	key, err := crypto.ToECDSA(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to parse key from backup phrase: %w", err)
	}
	return key, nil
}

// WalletLoader loads the signing wallet of one account from the keystore.
type WalletLoader struct {
	keyStore KeyStore
	username string
	address  common.Address
}

func NewWalletLoader(keyStore KeyStore, username string, address common.Address) *WalletLoader {
	return &WalletLoader{
		keyStore: keyStore,
		username: username,
		address:  address,
	}
}

// Load returns a nil wallet without an error when there is no usable key for
// the configured account.
func (l *WalletLoader) Load(_ context.Context) (*types.Wallet, error) {
	key, err := l.keyStore.LoadKey(l.username)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	address := crypto.PubkeyToAddress(key.PublicKey)
	if l.address != (common.Address{}) && address != l.address {
		return nil, nil
	}

	return &types.Wallet{
		Address:    address,
		PrivateKey: key,
	}, nil
}
