package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"

	"github.com/lidofinance/ensreg/client/modules/logger"
	"github.com/lidofinance/ensreg/client/types"
)

const (
	DefaultSubmitTimeout = time.Minute

	readRetryDelay = time.Second

	// replacements must pay at least feeBumpPercent more than the original
	feeBumpPercent = 10
)

var (
	ErrRejected      = errors.New("request rejected by signer")
	ErrSubmitTimeout = errors.New("no submission result in time")
)

// FeeSuggester returns the current network fee suggestion.
type FeeSuggester interface {
	SuggestFees(ctx context.Context) (tip, feeCap *big.Int, err error)
}

type waiter struct {
	submitted  chan Result
	onComplete func()
	seen       bool
}

// Executor hands actions to the external signer over a transport and tracks
// their results. It implements the Executor and FeeBumper interfaces of the
// registration service.
type Executor struct {
	transport Transport
	fees      FeeSuggester
	network   types.Network
	timeout   time.Duration
	logger    logger.Logger
	// resultSigner is nil when results are accepted unsigned.
	resultSigner *common.Address

	mu      sync.Mutex
	waiters map[string]*waiter
}

func NewExecutor(
	transport Transport,
	fees FeeSuggester,
	network types.Network,
	timeout time.Duration,
	l logger.Logger,
) *Executor {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Executor{
		transport: transport,
		fees:      fees,
		network:   network,
		timeout:   timeout,
		logger:    l,
		waiters:   make(map[string]*waiter),
	}
}

// RequireResultSigner makes the executor drop results that are not signed by
// signer. It must be called before Run.
func (e *Executor) RequireResultSigner(signer common.Address) {
	e.resultSigner = &signer
}

// Run consumes results until ctx is done.
func (e *Executor) Run(ctx context.Context) error {
	for {
		msg, err := e.transport.Read(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			e.logger.Log("failed to read pipeline result: %v", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readRetryDelay):
			}
			continue
		}
		if err := e.handle(msg); err != nil {
			e.logger.Log("failed to handle pipeline message %s: %v", msg.ID, err)
		}
	}
}

func (e *Executor) handle(msg Message) error {
	if msg.Kind != KindResult {
		return nil
	}
	if e.resultSigner != nil {
		if err := VerifyMessage(msg); err != nil {
			return err
		}
		if msg.Signer != *e.resultSigner {
			return fmt.Errorf("%w: result signed by %s", ErrBadSignature, msg.Signer.Hex())
		}
	}
	var result Result
	if err := json.Unmarshal(msg.Data, &result); err != nil {
		return fmt.Errorf("failed to unmarshal result: %w", err)
	}

	e.mu.Lock()
	w, ok := e.waiters[result.RequestID]
	if !ok {
		e.mu.Unlock()
		return nil
	}

	var onComplete func()
	switch result.Status {
	case StatusSubmitted:
		if !w.seen {
			w.seen = true
			w.submitted <- result
		}
	case StatusConfirmed:
		delete(e.waiters, result.RequestID)
		onComplete = w.onComplete
	case StatusFailed:
		delete(e.waiters, result.RequestID)
		if !w.seen {
			w.seen = true
			w.submitted <- result
		} else {
			e.logger.Log("request %s failed after submission: %s", result.RequestID, result.Error)
		}
	default:
		e.mu.Unlock()
		return fmt.Errorf("unknown result status %q", result.Status)
	}
	e.mu.Unlock()

	if onComplete != nil {
		onComplete()
	}
	return nil
}

// submit sends msg and waits until the signer broadcast it or rejected it.
func (e *Executor) submit(ctx context.Context, msg Message, onComplete func()) (Result, error) {
	w := &waiter{submitted: make(chan Result, 1), onComplete: onComplete}
	e.mu.Lock()
	e.waiters[msg.ID] = w
	e.mu.Unlock()

	if err := e.transport.Send(ctx, msg); err != nil {
		e.forget(msg.ID)
		return Result{}, fmt.Errorf("failed to send %s request: %w", msg.Kind, err)
	}

	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case result := <-w.submitted:
		if result.Status == StatusFailed {
			return result, fmt.Errorf("%w: %s", ErrRejected, result.Error)
		}
		return result, nil
	case <-timer.C:
		e.forget(msg.ID)
		return Result{}, fmt.Errorf("%w: request %s", ErrSubmitTimeout, msg.ID)
	case <-ctx.Done():
		e.forget(msg.ID)
		return Result{}, ctx.Err()
	}
}

func (e *Executor) forget(id string) {
	e.mu.Lock()
	delete(e.waiters, id)
	e.mu.Unlock()
}

// Pending returns the number of requests still waiting for a result.
func (e *Executor) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.waiters)
}

func (e *Executor) Execute(
	ctx context.Context,
	wallet *types.Wallet,
	action types.ActionType,
	params *types.ActionParameters,
	onComplete func(),
) (*types.ExecutionResult, error) {
	msg, err := newSignedMessage(uuid.New().String(), KindAction, wallet, ActionRequest{
		Action:  action,
		Network: e.network,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}

	result, err := e.submit(ctx, msg, onComplete)
	if err != nil {
		return nil, err
	}
	return &types.ExecutionResult{Hash: result.Hash, Nonce: result.Nonce}, nil
}

// SpeedUp resubmits tx with bumped fees and reports the replacement hash to
// onReplaced once the signer broadcast it.
func (e *Executor) SpeedUp(
	ctx context.Context,
	wallet *types.Wallet,
	tx *gethtypes.Transaction,
	onReplaced func(common.Hash) error,
) error {
	request, err := e.speedUpRequest(ctx, tx)
	if err != nil {
		return err
	}
	msg, err := newSignedMessage(uuid.New().String(), KindSpeedUp, wallet, request)
	if err != nil {
		return err
	}

	result, err := e.submit(ctx, msg, nil)
	if err != nil {
		return err
	}
	e.logger.Log("transaction %s replaced by %s", tx.Hash().Hex(), result.Hash.Hex())
	return onReplaced(result.Hash)
}

func (e *Executor) speedUpRequest(ctx context.Context, tx *gethtypes.Transaction) (*SpeedUpRequest, error) {
	tip, feeCap, err := e.fees.SuggestFees(ctx)
	if err != nil {
		return nil, err
	}

	request := &SpeedUpRequest{
		Hash:  tx.Hash(),
		Nonce: tx.Nonce(),
		To:    tx.To(),
		Data:  tx.Data(),
		Value: tx.Value(),
		Gas:   tx.Gas(),
	}
	if tx.Type() == gethtypes.LegacyTxType {
		request.GasPrice = bumpFee(tx.GasPrice(), feeCap)
		return request, nil
	}

	request.GasTipCap = bumpFee(tx.GasTipCap(), tip)
	request.GasFeeCap = bumpFee(tx.GasFeeCap(), feeCap)
	if request.GasFeeCap.Cmp(request.GasTipCap) < 0 {
		request.GasFeeCap = new(big.Int).Set(request.GasTipCap)
	}
	return request, nil
}

// bumpFee returns the larger of the replacement minimum for old and the
// current suggestion.
func bumpFee(old, suggested *big.Int) *big.Int {
	bumped := new(big.Int).Mul(old, big.NewInt(100+feeBumpPercent))
	bumped.Add(bumped, big.NewInt(99))
	bumped.Div(bumped, big.NewInt(100))
	if suggested != nil && suggested.Cmp(bumped) > 0 {
		return new(big.Int).Set(suggested)
	}
	return bumped
}
