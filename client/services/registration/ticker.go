package registration

import (
	"sync/atomic"
	"time"
)

// LocalTicker interpolates the seconds since the commit confirmation between
// corrections from the persisted confirmation timestamp.
type LocalTicker struct {
	env         *Env
	confirmedAt time.Time
	// onTick runs on every tick, the ticker stops when it returns true.
	onTick func(seconds int64) bool

	chain   *timerChain
	seconds atomic.Int64
	// ticks is only touched from the tick callback.
	ticks int64
}

func NewLocalTicker(env *Env, confirmedAt time.Time, onTick func(seconds int64) bool) *LocalTicker {
	return &LocalTicker{
		env:         env,
		confirmedAt: confirmedAt,
		onTick:      onTick,
		chain:       newTimerChain(env.Clock),
	}
}

func (t *LocalTicker) Start(initial int64) {
	t.seconds.Store(initial)
	t.chain.schedule(t.env.Polling.TickInterval, t.tick)
}

func (t *LocalTicker) Stop() {
	t.chain.stop()
}

func (t *LocalTicker) Seconds() int64 {
	return t.seconds.Load()
}

func (t *LocalTicker) Running() bool {
	return t.chain.isAlive()
}

func (t *LocalTicker) tick() {
	t.ticks++
	seconds := t.seconds.Add(1)
	if t.ticks%t.env.Polling.CorrectionEvery == 0 {
		seconds = elapsedSince(t.env.Now(), t.confirmedAt)
		t.seconds.Store(seconds)
	}

	if t.onTick != nil && t.onTick(seconds) {
		t.chain.stop()
		return
	}
	t.chain.schedule(t.env.Polling.TickInterval, t.tick)
}
