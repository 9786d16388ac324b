package registration

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"

	registrationRepo "github.com/lidofinance/ensreg/client/repositories/registration"
	"github.com/lidofinance/ensreg/client/types"
)

// Provider reads transactions and blocks from the chain.
type Provider interface {
	// GetTransaction returns a transaction without a block hash while it is
	// still pending.
	GetTransaction(ctx context.Context, hash common.Hash) (*types.Transaction, error)
	GetBlockByHash(ctx context.Context, hash common.Hash) (*types.Block, error)
	GetLatestBlock(ctx context.Context) (*types.Block, error)
}

// WalletLoader returns a nil wallet when no signing key is available.
type WalletLoader interface {
	Load(ctx context.Context) (*types.Wallet, error)
}

type NonceProvider interface {
	Next(ctx context.Context, address common.Address, network types.Network) (uint64, error)
}

type PricingService interface {
	RentPrice(ctx context.Context, name string, duration int64) (*big.Int, error)
	EstimateGasLimit(ctx context.Context, action types.ActionType, from common.Address, params *types.ActionParameters) (uint64, error)
}

type ImageUploader interface {
	Upload(ctx context.Context, image types.ImageMetadata) (string, error)
}

// Executor hands an assembled action to the transaction pipeline. onComplete
// is invoked by the pipeline once the submitted transaction is done.
type Executor interface {
	Execute(
		ctx context.Context,
		wallet *types.Wallet,
		action types.ActionType,
		params *types.ActionParameters,
		onComplete func(),
	) (*types.ExecutionResult, error)
}

// TransactionLookup returns nil when the transaction is not pending anymore.
type TransactionLookup interface {
	PendingTransaction(ctx context.Context, hash common.Hash) (*gethtypes.Transaction, error)
}

// FeeBumper resubmits tx with higher fees and reports the replacement hash.
type FeeBumper interface {
	SpeedUp(ctx context.Context, wallet *types.Wallet, tx *gethtypes.Transaction, onReplaced func(common.Hash) error) error
}

type ResolverLookup interface {
	Resolver(ctx context.Context, name string) (common.Address, error)
}

type Store interface {
	GetRecord(name string) (*types.RegistrationRecord, error)
	ListRecords() ([]*types.RegistrationRecord, error)
	SaveRecord(record *types.RegistrationRecord) error
	SaveCommitParameters(name string, params registrationRepo.CommitParameters) error
	SetCommitTransactionHash(name string, previous, hash common.Hash) error
	SetCommitConfirmedAt(name string, hash common.Hash, confirmedAt time.Time) error
	DeleteRecord(name string) error
}
