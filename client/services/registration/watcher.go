package registration

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lidofinance/ensreg/client/modules/logger"
)

// ConfirmationWatcher polls the chain until the commit transaction is mined
// and records its confirmation time once.
type ConfirmationWatcher struct {
	env         *Env
	name        string
	hash        common.Hash
	logger      logger.Logger
	onConfirmed func(confirmedAt time.Time)

	ctx    context.Context
	cancel context.CancelFunc
	chain  *timerChain

	// confirmed is local to the instance. The store may lag behind a write
	// that already happened.
	confirmed atomic.Bool
	// writeMu covers the liveness check and the store write, Stop waits
	// for it.
	writeMu sync.Mutex

	skewOnce sync.Once
	skew     time.Duration
}

func NewConfirmationWatcher(
	ctx context.Context,
	env *Env,
	name string,
	hash common.Hash,
	onConfirmed func(confirmedAt time.Time),
) *ConfirmationWatcher {
	ctx, cancel := context.WithCancel(ctx)
	return &ConfirmationWatcher{
		env:         env,
		name:        name,
		hash:        hash,
		logger:      logger.WithName(env.Logger, name),
		onConfirmed: onConfirmed,
		ctx:         ctx,
		cancel:      cancel,
		chain:       newTimerChain(env.Clock),
	}
}

// Start polls immediately and then every confirmation interval until the
// transaction is confirmed or the watcher is stopped.
func (w *ConfirmationWatcher) Start() {
	w.chain.schedule(0, w.run)
}

// Stop cancels the pending poll and waits for a confirmation write in
// flight. No write happens after Stop returns.
func (w *ConfirmationWatcher) Stop() {
	w.chain.stop()
	w.cancel()
	w.writeMu.Lock()
	w.writeMu.Unlock()
}

func (w *ConfirmationWatcher) Confirmed() bool {
	return w.confirmed.Load()
}

func (w *ConfirmationWatcher) run() {
	if w.Poll(w.ctx) {
		return
	}
	w.chain.schedule(w.env.Polling.ConfirmationInterval, w.run)
}

// Poll reports whether the commit transaction is confirmed. Provider errors
// are logged and reported as not confirmed.
func (w *ConfirmationWatcher) Poll(ctx context.Context) bool {
	if w.confirmed.Load() {
		return true
	}

	ctx, cancel := w.env.requestContext(ctx)
	defer cancel()

	tx, err := w.env.Provider.GetTransaction(ctx, w.hash)
	if err != nil {
		w.logger.Log("failed to get commit transaction %s: %v", w.hash.Hex(), err)
		return false
	}
	if !tx.IsMined() {
		return false
	}

	block, err := w.env.Provider.GetBlockByHash(ctx, *tx.BlockHash)
	if err != nil {
		w.logger.Log("failed to get block %s: %v", tx.BlockHash.Hex(), err)
		return false
	}

	confirmedAt := block.Timestamp.Add(w.clockSkew(block.Timestamp))

	if !w.persist(confirmedAt) {
		return w.confirmed.Load()
	}

	w.logger.Log("commit transaction %s confirmed at %s", w.hash.Hex(), confirmedAt.UTC().Format(time.RFC3339))
	if w.onConfirmed != nil {
		w.onConfirmed(confirmedAt)
	}
	return true
}

// persist stores the confirmation once. It reports false when the watcher was
// stopped, another poll already wrote it or the write failed.
func (w *ConfirmationWatcher) persist(confirmedAt time.Time) bool {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if !w.chain.isAlive() {
		return false
	}
	if !w.confirmed.CompareAndSwap(false, true) {
		return false
	}
	if err := w.env.Store.SetCommitConfirmedAt(w.name, w.hash, confirmedAt); err != nil {
		w.confirmed.Store(false)
		w.logger.Log("failed to save confirmation of %s: %v", w.hash.Hex(), err)
		return false
	}
	return true
}

// clockSkew is the lag of the block clock behind the wall clock on test
// networks. It is measured on the first detection and reused afterwards.
func (w *ConfirmationWatcher) clockSkew(blockTimestamp time.Time) time.Duration {
	w.skewOnce.Do(func() {
		if w.env.Network.IsTestnet() {
			w.skew = w.env.Now().Sub(blockTimestamp)
		}
	})
	return w.skew
}
