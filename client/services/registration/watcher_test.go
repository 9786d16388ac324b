package registration

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	registrationRepo "github.com/lidofinance/ensreg/client/repositories/registration"
	"github.com/lidofinance/ensreg/client/types"
	"github.com/lidofinance/ensreg/mocks/serviceMocks"
)

var (
	commitHash = common.HexToHash("0xabc")
	blockHash  = common.HexToHash("0xb10c")
)

func TestConfirmationWatcher_Unmined(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	store := serviceMocks.NewMockStore(ctrl)
	env := newTestEnv(ctrl, types.NetworkMainnet, store)
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).Return(pendingTx(commitHash), nil).Times(2)

	w := NewConfirmationWatcher(ctx, env.Env, testName, commitHash, nil)
	req.False(w.Poll(ctx))
	req.False(w.Poll(ctx))
	req.False(w.Confirmed())
}

func TestConfirmationWatcher_ProviderError(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	store := serviceMocks.NewMockStore(ctrl)
	env := newTestEnv(ctrl, types.NetworkMainnet, store)
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).Return(minedTx(commitHash, blockHash), nil)
	env.provider.EXPECT().GetBlockByHash(gomock.Any(), blockHash).Return(nil, errors.New("rpc down"))

	w := NewConfirmationWatcher(ctx, env.Env, testName, commitHash, nil)
	req.False(w.Poll(ctx))
}

func TestConfirmationWatcher_WritesOnce(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	blockTime := testBase.Add(-30 * time.Second)

	store := serviceMocks.NewMockStore(ctrl)
	env := newTestEnv(ctrl, types.NetworkMainnet, store)
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).Return(minedTx(commitHash, blockHash), nil).AnyTimes()
	env.provider.EXPECT().GetBlockByHash(gomock.Any(), blockHash).Return(block(blockHash, blockTime), nil).AnyTimes()

	var written time.Time
	store.EXPECT().SetCommitConfirmedAt(testName, commitHash, gomock.Any()).
		DoAndReturn(func(_ string, _ common.Hash, confirmedAt time.Time) error {
			written = confirmedAt
			return nil
		}).Times(1)

	var confirmations int
	w := NewConfirmationWatcher(ctx, env.Env, testName, commitHash, func(time.Time) { confirmations++ })

	var wg sync.WaitGroup
	results := make([]bool, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = w.Poll(ctx)
		}(i)
	}
	wg.Wait()

	for _, confirmed := range results {
		req.True(confirmed)
	}
	req.True(w.Poll(ctx))
	req.Equal(1, confirmations)
	// no skew correction on mainnet
	req.True(blockTime.Equal(written))
}

func TestConfirmationWatcher_TestnetSkew(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	// local chain clock lags the wall clock by 100 seconds
	blockTime := testBase.Add(-100 * time.Second)

	store := serviceMocks.NewMockStore(ctrl)
	env := newTestEnv(ctrl, types.NetworkLocalhost, store)
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).Return(minedTx(commitHash, blockHash), nil)
	env.provider.EXPECT().GetBlockByHash(gomock.Any(), blockHash).Return(block(blockHash, blockTime), nil)

	var written time.Time
	store.EXPECT().SetCommitConfirmedAt(testName, commitHash, gomock.Any()).
		DoAndReturn(func(_ string, _ common.Hash, confirmedAt time.Time) error {
			written = confirmedAt
			return nil
		})

	w := NewConfirmationWatcher(ctx, env.Env, testName, commitHash, nil)
	req.True(w.Poll(ctx))
	req.True(testBase.Equal(written))
}

func TestConfirmationWatcher_RetriesFailedWrite(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	store := serviceMocks.NewMockStore(ctrl)
	env := newTestEnv(ctrl, types.NetworkMainnet, store)
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).Return(minedTx(commitHash, blockHash), nil).Times(2)
	env.provider.EXPECT().GetBlockByHash(gomock.Any(), blockHash).Return(block(blockHash, testBase), nil).Times(2)

	gomock.InOrder(
		store.EXPECT().SetCommitConfirmedAt(testName, commitHash, gomock.Any()).Return(errors.New("disk full")),
		store.EXPECT().SetCommitConfirmedAt(testName, commitHash, gomock.Any()).Return(nil),
	)

	w := NewConfirmationWatcher(ctx, env.Env, testName, commitHash, nil)
	req.False(w.Poll(ctx))
	req.True(w.Poll(ctx))
}

func TestConfirmationWatcher_PollingCadence(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	store := serviceMocks.NewMockStore(ctrl)
	env := newTestEnv(ctrl, types.NetworkMainnet, store)

	var polls int
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).
		DoAndReturn(func(context.Context, common.Hash) (*types.Transaction, error) {
			polls++
			if polls < 3 {
				return pendingTx(commitHash), nil
			}
			return minedTx(commitHash, blockHash), nil
		}).Times(3)
	env.provider.EXPECT().GetBlockByHash(gomock.Any(), blockHash).Return(block(blockHash, testBase), nil)
	store.EXPECT().SetCommitConfirmedAt(testName, commitHash, gomock.Any()).Return(nil)

	var confirmedAt *time.Time
	w := NewConfirmationWatcher(context.Background(), env.Env, testName, commitHash, func(at time.Time) {
		confirmedAt = &at
	})
	w.Start()

	env.sim.Run(0)
	req.Equal(1, polls)

	env.sim.Run(time.Second)
	req.Equal(1, polls)

	env.sim.Run(time.Second)
	req.Equal(2, polls)

	env.sim.Run(2 * time.Second)
	req.Equal(3, polls)
	req.NotNil(confirmedAt)
	req.True(w.Confirmed())

	// confirmed, nothing is scheduled anymore
	req.Equal(0, env.sim.ActiveTimers())
	env.sim.Run(10 * time.Second)
	req.Equal(3, polls)
}

func TestConfirmationWatcher_StopCancelsPolling(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
	)
	defer ctrl.Finish()

	store := serviceMocks.NewMockStore(ctrl)
	env := newTestEnv(ctrl, types.NetworkMainnet, store)
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).Return(pendingTx(commitHash), nil).Times(1)

	w := NewConfirmationWatcher(context.Background(), env.Env, testName, commitHash, nil)
	w.Start()
	env.sim.Run(0)

	w.Stop()
	req.Equal(0, env.sim.ActiveTimers())
	env.sim.Run(time.Minute)
}

func TestConfirmationWatcher_NoWriteAfterStop(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	// no SetCommitConfirmedAt expected
	store := serviceMocks.NewMockStore(ctrl)
	env := newTestEnv(ctrl, types.NetworkMainnet, store)

	var w *ConfirmationWatcher
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).Return(minedTx(commitHash, blockHash), nil)
	env.provider.EXPECT().GetBlockByHash(gomock.Any(), blockHash).
		DoAndReturn(func(context.Context, common.Hash) (*types.Block, error) {
			// torn down while the block request is in flight
			w.Stop()
			return block(blockHash, testBase), nil
		})

	w = NewConfirmationWatcher(ctx, env.Env, testName, commitHash, nil)
	req.False(w.Poll(ctx))
	req.False(w.Confirmed())
}

// blockingStore holds confirmation writes until release is closed.
type blockingStore struct {
	Store
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) SetCommitConfirmedAt(name string, hash common.Hash, confirmedAt time.Time) error {
	close(s.entered)
	<-s.release
	return s.Store.SetCommitConfirmedAt(name, hash, confirmedAt)
}

func TestConfirmationWatcher_StopWaitsForWrite(t *testing.T) {
	var (
		req  = require.New(t)
		ctrl = gomock.NewController(t)
		ctx  = context.Background()
	)
	defer ctrl.Finish()

	repo := newLevelDBStore(t)
	saveCommittedRecord(t, repo, commitHash)
	store := &blockingStore{Store: repo, entered: make(chan struct{}), release: make(chan struct{})}

	env := newTestEnv(ctrl, types.NetworkMainnet, store)
	env.provider.EXPECT().GetTransaction(gomock.Any(), commitHash).Return(minedTx(commitHash, blockHash), nil)
	env.provider.EXPECT().GetBlockByHash(gomock.Any(), blockHash).Return(block(blockHash, testBase), nil)

	w := NewConfirmationWatcher(ctx, env.Env, testName, commitHash, nil)

	polled := make(chan bool, 1)
	go func() { polled <- w.Poll(ctx) }()
	<-store.entered

	stopped := make(chan struct{})
	go func() {
		w.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		req.FailNow("Stop returned while the confirmation write was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(store.release)
	<-stopped
	req.True(<-polled)

	// the record is archived after teardown and stays archived
	req.NoError(repo.DeleteRecord(testName))
	_, err := repo.GetRecord(testName)
	req.ErrorIs(err, registrationRepo.ErrRecordNotFound)
}
