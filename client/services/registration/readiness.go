package registration

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lidofinance/ensreg/client/modules/logger"
)

// ReadinessChecker decides whether the on-chain commit interval has elapsed.
// Once ready it stays ready.
type ReadinessChecker struct {
	env         *Env
	confirmedAt time.Time
	logger      logger.Logger

	ready atomic.Bool
}

func NewReadinessChecker(env *Env, name string, confirmedAt time.Time) *ReadinessChecker {
	return &ReadinessChecker{
		env:         env,
		confirmedAt: confirmedAt,
		logger:      logger.WithName(env.Logger, name),
	}
}

func (c *ReadinessChecker) Ready() bool {
	return c.ready.Load()
}

// Check runs only once seconds reached the contract minimum and only on every
// ReadinessEvery-th second.
func (c *ReadinessChecker) Check(ctx context.Context, seconds int64) bool {
	if c.ready.Load() {
		return true
	}
	if seconds < c.env.Timing.MinWaitSeconds || seconds%c.env.Polling.ReadinessEvery != 0 {
		return false
	}

	if c.env.Network.IsTestnet() {
		c.ready.Store(true)
		return true
	}

	ctx, cancel := c.env.requestContext(ctx)
	defer cancel()

	block, err := c.env.Provider.GetLatestBlock(ctx)
	if err != nil {
		c.logger.Log("failed to get latest block: %v", err)
		return false
	}

	timing := c.env.Timing
	secondsSinceBlockToCommit := int64(block.Timestamp.Sub(c.confirmedAt) / time.Second)

	chainAgrees := secondsSinceBlockToCommit > timing.WaitWithPaddingSeconds && seconds > timing.WaitWithPaddingSeconds
	// the local clock ran far enough ahead that only provider lag explains
	// the disagreement
	providerLags := seconds > timing.ProviderLagPaddingSeconds

	if chainAgrees || providerLags {
		c.ready.Store(true)
	}
	return c.ready.Load()
}
