package types

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	ENSDomain = ".eth"

	RecordAvatar = "avatar"
	RecordHeader = "header"
)

// Records are the text records a user wants to set on the name.
type Records map[string]string

func (r Records) Copy() Records {
	if r == nil {
		return nil
	}
	cp := make(Records, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

// ImageMetadata describes a local image picked for an avatar or header record.
type ImageMetadata struct {
	Path     string `json:"path"`
	Mime     string `json:"mime"`
	Filename string `json:"filename"`
}

type TransferParameters struct {
	ToAddress       common.Address `json:"to_address"`
	ClearRecords    bool           `json:"clear_records"`
	SetAddress      bool           `json:"set_address"`
	TransferControl bool           `json:"transfer_control"`
}

// RegistrationRecord is the persisted state of one in-flight flow. Each field
// has exactly one writer:
//   - CommitTransactionHash: the commit action, then the speed-up completion
//   - CommitTransactionConfirmedAt, ConfirmedTransactionHash: the confirmation watcher
//   - everything else: the flow start and the action that owns it
type RegistrationRecord struct {
	Name                         string                   `json:"name"`
	Mode                         Mode                     `json:"mode"`
	CommitTransactionHash        *common.Hash             `json:"commit_transaction_hash,omitempty"`
	CommitTransactionConfirmedAt *time.Time               `json:"commit_transaction_confirmed_at,omitempty"`
	ConfirmedTransactionHash     *common.Hash             `json:"confirmed_transaction_hash,omitempty"`
	ChangedRecords               Records                  `json:"changed_records,omitempty"`
	Images                       map[string]ImageMetadata `json:"images,omitempty"`
	Salt                         *common.Hash             `json:"salt,omitempty"`
	Duration                     int64                    `json:"duration"`
	OwnerAddress                 common.Address           `json:"owner_address"`
	RentPrice                    *big.Int                 `json:"rent_price,omitempty"`
	SetReverseRecord             bool                     `json:"set_reverse_record"`
	Transfer                     *TransferParameters      `json:"transfer,omitempty"`
	LabelHash                    *common.Hash             `json:"label_hash,omitempty"`
	CreatedAt                    time.Time                `json:"created_at"`
}

func (r *RegistrationRecord) HasCommitTransaction() bool {
	return r.CommitTransactionHash != nil && *r.CommitTransactionHash != (common.Hash{})
}

// ConfirmedAt returns the confirmation time of the current commit transaction.
// A timestamp recorded for a previous (replaced) commit hash is ignored.
func (r *RegistrationRecord) ConfirmedAt() *time.Time {
	if !r.HasCommitTransaction() || r.CommitTransactionConfirmedAt == nil || r.ConfirmedTransactionHash == nil {
		return nil
	}
	if *r.ConfirmedTransactionHash != *r.CommitTransactionHash {
		return nil
	}
	return r.CommitTransactionConfirmedAt
}

// CommitHash returns the current commit hash or the zero hash.
func (r *RegistrationRecord) CommitHash() common.Hash {
	if r.CommitTransactionHash == nil {
		return common.Hash{}
	}
	return *r.CommitTransactionHash
}

// Label is the name without the .eth suffix.
func (r *RegistrationRecord) Label() string {
	return strings.TrimSuffix(r.Name, ENSDomain)
}

// ElapsedState is derived from the watchers and never persisted.
type ElapsedState struct {
	SecondsSinceCommitConfirmed int64 `json:"seconds_since_commit_confirmed"`
	ReadyToRegister             bool  `json:"ready_to_register"`
}

// Status is what callers read to render the flow.
type Status struct {
	Name                        string `json:"name"`
	Step                        Step   `json:"step"`
	SecondsSinceCommitConfirmed int64  `json:"seconds_since_commit_confirmed"`
}
