package registration

import (
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/lidofinance/ensreg/client/config"
	"github.com/lidofinance/ensreg/client/modules/logger"
	"github.com/lidofinance/ensreg/client/modules/state"
	registrationRepo "github.com/lidofinance/ensreg/client/repositories/registration"
	"github.com/lidofinance/ensreg/client/types"
	"github.com/lidofinance/ensreg/mocks/serviceMocks"
)

const testName = "alice.eth"

var testBase = time.Unix(1700000000, 0).UTC()

type testEnv struct {
	*Env
	sim      *mclock.Simulated
	provider *serviceMocks.MockProvider
}

// newTestEnv returns an env on a virtual clock starting at testBase. The wall
// clock moves together with the virtual one.
func newTestEnv(ctrl *gomock.Controller, network types.Network, store Store) *testEnv {
	sim := &mclock.Simulated{}
	provider := serviceMocks.NewMockProvider(ctrl)

	env := &Env{
		Provider: provider,
		Store:    store,
		Network:  network,
		Clock:    sim,
		Now: func() time.Time {
			return testBase.Add(time.Duration(sim.Now()))
		},
		Timing:  config.DefaultTiming(),
		Polling: config.DefaultPolling(),
		Logger:  logger.NewNopLogger(),
	}
	return &testEnv{Env: env, sim: sim, provider: provider}
}

func (e *testEnv) advance(seconds int) {
	for i := 0; i < seconds; i++ {
		e.sim.Run(time.Second)
	}
}

func newLevelDBStore(t *testing.T) *registrationRepo.BaseRegistrationRepo {
	t.Helper()

	stg, err := state.NewLevelDBState(t.TempDir()+"/ensreg_test_state", "test_topic")
	require.NoError(t, err)
	t.Cleanup(func() { stg.Close() })

	return registrationRepo.NewRegistrationRepo(stg, "test_topic")
}

func pendingTx(hash common.Hash) *types.Transaction {
	return &types.Transaction{Hash: hash}
}

func minedTx(hash, blockHash common.Hash) *types.Transaction {
	return &types.Transaction{Hash: hash, BlockHash: &blockHash, BlockNumber: big.NewInt(100)}
}

func block(hash common.Hash, ts time.Time) *types.Block {
	return &types.Block{Hash: hash, Number: 100, Timestamp: ts}
}
