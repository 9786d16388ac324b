package types

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Transaction is the slice of a chain transaction the watchers care about.
type Transaction struct {
	Hash        common.Hash
	BlockHash   *common.Hash
	BlockNumber *big.Int
}

func (t *Transaction) IsMined() bool {
	return t != nil && t.BlockHash != nil && *t.BlockHash != (common.Hash{})
}

type Block struct {
	Hash      common.Hash
	Number    uint64
	Timestamp time.Time
}

// Wallet is a loaded signing key.
type Wallet struct {
	Address    common.Address
	PrivateKey *ecdsa.PrivateKey
}

// Sign signs keccak256(data) with the wallet key.
func (w *Wallet) Sign(data []byte) ([]byte, error) {
	sig, err := crypto.Sign(crypto.Keccak256(data), w.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}
	return sig, nil
}

// ActionParameters is the parameter bag handed to the transaction pipeline.
type ActionParameters struct {
	Name             string          `json:"name"`
	Mode             Mode            `json:"mode"`
	Network          Network         `json:"network"`
	Duration         int64           `json:"duration,omitempty"`
	OwnerAddress     common.Address  `json:"owner_address"`
	Records          Records         `json:"records,omitempty"`
	RentPrice        *big.Int        `json:"rent_price,omitempty"`
	Salt             *common.Hash    `json:"salt,omitempty"`
	Nonce            uint64          `json:"nonce"`
	GasLimit         uint64          `json:"gas_limit"`
	SetReverseRecord bool            `json:"set_reverse_record"`
	ResolverAddress  *common.Address `json:"resolver_address,omitempty"`
	ToAddress        *common.Address `json:"to_address,omitempty"`
	ClearRecords     bool            `json:"clear_records,omitempty"`
	SetAddress       bool            `json:"set_address,omitempty"`
	TransferControl  bool            `json:"transfer_control,omitempty"`
}

// ExecutionResult is what the pipeline reports back once a transaction is out.
type ExecutionResult struct {
	Hash  common.Hash `json:"hash"`
	Nonce uint64      `json:"nonce"`
}
