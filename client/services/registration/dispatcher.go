package registration

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/lidofinance/ensreg/client/modules/logger"
	registrationRepo "github.com/lidofinance/ensreg/client/repositories/registration"
	"github.com/lidofinance/ensreg/client/services/ens"
	"github.com/lidofinance/ensreg/client/types"
)

var (
	ErrNoAction        = errors.New("no action for step")
	ErrMissingSalt     = errors.New("record has no commit salt")
	ErrMissingTransfer = errors.New("record has no transfer parameters")
)

// ActionFunc submits the transaction of one step. onComplete is handed to the
// transaction pipeline and called once the transaction is done.
type ActionFunc func(ctx context.Context, onComplete func()) error

type DispatcherDeps struct {
	Wallets   WalletLoader
	Nonces    NonceProvider
	Pricing   PricingService
	Uploader  ImageUploader
	Executor  Executor
	Lookup    TransactionLookup
	FeeBumper FeeBumper
	Resolvers ResolverLookup
	Store     Store
	Network   types.Network
	Logger    logger.Logger
}

// ActionDispatcher maps a step onto the action that moves the flow forward.
type ActionDispatcher struct {
	DispatcherDeps

	// onCommitHashChanged is called after the commit hash of a record was
	// written or replaced.
	onCommitHashChanged func(name string)
}

func NewActionDispatcher(deps DispatcherDeps) *ActionDispatcher {
	if deps.Logger == nil {
		deps.Logger = logger.NewNopLogger()
	}
	return &ActionDispatcher{DispatcherDeps: deps}
}

// OnCommitHashChanged registers the listener restarting the watchers.
func (d *ActionDispatcher) OnCommitHashChanged(fn func(name string)) {
	d.onCommitHashChanged = fn
}

// Action returns the action for step, bound to a snapshot of the record.
func (d *ActionDispatcher) Action(record *types.RegistrationRecord, step types.Step) ActionFunc {
	var action func(ctx context.Context, record *types.RegistrationRecord, onComplete func()) error
	switch step {
	case types.StepCommit:
		action = d.commit
	case types.StepEdit:
		action = d.setRecords
	case types.StepRegister:
		action = d.register
	case types.StepRenew:
		action = d.renew
	case types.StepSetName:
		action = d.setName
	case types.StepTransfer:
		action = d.transfer
	case types.StepWaitCommitConfirmation:
		action = d.speedUpCommit
	case types.StepWaitProtocolInterval:
		return func(context.Context, func()) error { return nil }
	default:
		return func(context.Context, func()) error {
			return fmt.Errorf("%w: %s", ErrNoAction, step)
		}
	}

	return func(ctx context.Context, onComplete func()) error {
		if onComplete == nil {
			onComplete = func() {}
		}
		return action(ctx, record, onComplete)
	}
}

// loadWallet returns nil without an error when no wallet is available, the
// action then returns without submitting anything.
func (d *ActionDispatcher) loadWallet(ctx context.Context, name string) (*types.Wallet, error) {
	wallet, err := d.Wallets.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet: %w", err)
	}
	if wallet == nil {
		d.Logger.Log("%s: no wallet available, nothing submitted", name)
	}
	return wallet, nil
}

func (d *ActionDispatcher) nonce(ctx context.Context, wallet *types.Wallet, out *uint64) func() error {
	return func() error {
		nonce, err := d.Nonces.Next(ctx, wallet.Address, d.Network)
		if err != nil {
			return fmt.Errorf("failed to get nonce: %w", err)
		}
		*out = nonce
		return nil
	}
}

func (d *ActionDispatcher) rentPrice(ctx context.Context, record *types.RegistrationRecord, out **big.Int) func() error {
	return func() error {
		price, err := d.Pricing.RentPrice(ctx, record.Label(), record.Duration)
		if err != nil {
			return fmt.Errorf("failed to get rent price: %w", err)
		}
		*out = price
		return nil
	}
}

func (d *ActionDispatcher) uploads(ctx context.Context, record *types.RegistrationRecord, out *types.Records) func() error {
	return func() error {
		records, err := uploadRecordImages(ctx, d.Uploader, record.ChangedRecords, record.Images)
		if err != nil {
			return err
		}
		*out = records
		return nil
	}
}

func (d *ActionDispatcher) submit(
	ctx context.Context,
	wallet *types.Wallet,
	action types.ActionType,
	params *types.ActionParameters,
	onComplete func(),
) (*types.ExecutionResult, error) {
	gasLimit, err := d.Pricing.EstimateGasLimit(ctx, action, wallet.Address, params)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas limit for %s: %w", action, err)
	}
	params.GasLimit = gasLimit

	result, err := d.Executor.Execute(ctx, wallet, action, params, onComplete)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", action, err)
	}
	d.Logger.Log("%s: %s submitted, tx %s", params.Name, action, result.Hash.Hex())
	return result, nil
}

func (d *ActionDispatcher) baseParameters(record *types.RegistrationRecord, wallet *types.Wallet) *types.ActionParameters {
	return &types.ActionParameters{
		Name:             record.Name,
		Mode:             record.Mode,
		Network:          d.Network,
		Duration:         record.Duration,
		OwnerAddress:     wallet.Address,
		Records:          record.ChangedRecords.Copy(),
		RentPrice:        record.RentPrice,
		Salt:             record.Salt,
		SetReverseRecord: record.SetReverseRecord,
	}
}

func (d *ActionDispatcher) commit(ctx context.Context, record *types.RegistrationRecord, onComplete func()) error {
	wallet, err := d.loadWallet(ctx, record.Name)
	if wallet == nil {
		return err
	}

	// a salt is never reused across commit attempts
	salt := generateSalt()

	var (
		nonce     uint64
		rentPrice *big.Int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(d.nonce(gctx, wallet, &nonce))
	g.Go(d.rentPrice(gctx, record, &rentPrice))
	if err := g.Wait(); err != nil {
		return err
	}

	params := d.baseParameters(record, wallet)
	params.Nonce = nonce
	params.RentPrice = rentPrice
	params.Salt = &salt

	result, err := d.submit(ctx, wallet, types.ActionCommit, params, onComplete)
	if err != nil {
		return err
	}

	commitParams := registrationRepo.CommitParameters{
		Hash:         result.Hash,
		Salt:         salt,
		LabelHash:    ens.LabelHash(record.Label()),
		Duration:     record.Duration,
		OwnerAddress: wallet.Address,
		RentPrice:    rentPrice,
	}
	if err := d.Store.SaveCommitParameters(record.Name, commitParams); err != nil {
		return fmt.Errorf("failed to save commit parameters: %w", err)
	}
	d.commitHashChanged(record.Name)
	return nil
}

func (d *ActionDispatcher) register(ctx context.Context, record *types.RegistrationRecord, onComplete func()) error {
	wallet, err := d.loadWallet(ctx, record.Name)
	if wallet == nil {
		return err
	}
	if record.Salt == nil {
		return fmt.Errorf("%w: %s", ErrMissingSalt, record.Name)
	}

	var (
		nonce     uint64
		rentPrice *big.Int
		records   types.Records
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(d.nonce(gctx, wallet, &nonce))
	g.Go(d.rentPrice(gctx, record, &rentPrice))
	g.Go(d.uploads(gctx, record, &records))
	if err := g.Wait(); err != nil {
		return err
	}

	params := d.baseParameters(record, wallet)
	params.Nonce = nonce
	params.RentPrice = rentPrice
	params.Records = records

	_, err = d.submit(ctx, wallet, types.ActionRegister, params, onComplete)
	return err
}

func (d *ActionDispatcher) setRecords(ctx context.Context, record *types.RegistrationRecord, onComplete func()) error {
	wallet, err := d.loadWallet(ctx, record.Name)
	if wallet == nil {
		return err
	}

	var (
		nonce    uint64
		records  types.Records
		resolver common.Address
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(d.nonce(gctx, wallet, &nonce))
	g.Go(d.uploads(gctx, record, &records))
	g.Go(func() error {
		address, err := d.Resolvers.Resolver(gctx, record.Name)
		if err != nil {
			return fmt.Errorf("failed to get resolver: %w", err)
		}
		resolver = address
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	params := d.baseParameters(record, wallet)
	params.Nonce = nonce
	params.Records = records
	params.ResolverAddress = &resolver

	_, err = d.submit(ctx, wallet, types.ActionSetRecords, params, onComplete)
	return err
}

func (d *ActionDispatcher) renew(ctx context.Context, record *types.RegistrationRecord, onComplete func()) error {
	wallet, err := d.loadWallet(ctx, record.Name)
	if wallet == nil {
		return err
	}

	var (
		nonce     uint64
		rentPrice *big.Int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(d.nonce(gctx, wallet, &nonce))
	g.Go(d.rentPrice(gctx, record, &rentPrice))
	if err := g.Wait(); err != nil {
		return err
	}

	params := d.baseParameters(record, wallet)
	params.Nonce = nonce
	params.RentPrice = rentPrice

	_, err = d.submit(ctx, wallet, types.ActionRenew, params, onComplete)
	return err
}

func (d *ActionDispatcher) setName(ctx context.Context, record *types.RegistrationRecord, onComplete func()) error {
	wallet, err := d.loadWallet(ctx, record.Name)
	if wallet == nil {
		return err
	}

	var nonce uint64
	if err := d.nonce(ctx, wallet, &nonce)(); err != nil {
		return err
	}

	params := d.baseParameters(record, wallet)
	params.Nonce = nonce

	_, err = d.submit(ctx, wallet, types.ActionSetName, params, onComplete)
	return err
}

func (d *ActionDispatcher) transfer(ctx context.Context, record *types.RegistrationRecord, onComplete func()) error {
	if record.Transfer == nil {
		return fmt.Errorf("%w: %s", ErrMissingTransfer, record.Name)
	}
	wallet, err := d.loadWallet(ctx, record.Name)
	if wallet == nil {
		return err
	}

	var nonce uint64
	if err := d.nonce(ctx, wallet, &nonce)(); err != nil {
		return err
	}

	to := record.Transfer.ToAddress
	params := d.baseParameters(record, wallet)
	params.Nonce = nonce
	params.ToAddress = &to
	params.ClearRecords = record.Transfer.ClearRecords
	params.SetAddress = record.Transfer.SetAddress
	params.TransferControl = record.Transfer.TransferControl

	_, err = d.submit(ctx, wallet, types.ActionTransfer, params, onComplete)
	return err
}

// speedUpCommit resubmits the pending commit with higher fees. The replacement
// only rewrites the commit hash, the confirmation time stays owned by the
// watcher of the new hash.
func (d *ActionDispatcher) speedUpCommit(ctx context.Context, record *types.RegistrationRecord, onComplete func()) error {
	if !record.HasCommitTransaction() {
		return nil
	}
	wallet, err := d.loadWallet(ctx, record.Name)
	if wallet == nil {
		return err
	}

	hash := record.CommitHash()
	tx, err := d.Lookup.PendingTransaction(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to get pending commit transaction: %w", err)
	}
	if tx == nil {
		d.Logger.Log("%s: commit transaction %s is not pending, nothing to speed up", record.Name, hash.Hex())
		return nil
	}

	err = d.FeeBumper.SpeedUp(ctx, wallet, tx, func(replacement common.Hash) error {
		if err := d.Store.SetCommitTransactionHash(record.Name, hash, replacement); err != nil {
			return fmt.Errorf("failed to replace commit transaction hash: %w", err)
		}
		d.Logger.Log("%s: commit transaction %s replaced by %s", record.Name, hash.Hex(), replacement.Hex())
		d.commitHashChanged(record.Name)
		onComplete()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to speed up commit transaction: %w", err)
	}
	return nil
}

func (d *ActionDispatcher) commitHashChanged(name string) {
	if d.onCommitHashChanged != nil {
		d.onCommitHashChanged(name)
	}
}
