package registration

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common/mclock"
)

// timerChain keeps at most one pending callback on the clock. Once stopped it
// never fires again, including a callback that was already due.
type timerChain struct {
	clock mclock.Clock
	alive atomic.Bool

	mu    sync.Mutex
	timer mclock.Timer
}

func newTimerChain(clock mclock.Clock) *timerChain {
	c := &timerChain{clock: clock}
	c.alive.Store(true)
	return c
}

func (c *timerChain) schedule(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.alive.Load() {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.clock.AfterFunc(d, func() {
		if !c.alive.Load() {
			return
		}
		fn()
	})
}

func (c *timerChain) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.alive.Store(false)
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *timerChain) isAlive() bool {
	return c.alive.Load()
}

// elapsedSince returns the whole seconds from t to now, never negative.
func elapsedSince(now, t time.Time) int64 {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
