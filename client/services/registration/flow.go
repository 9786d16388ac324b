package registration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/mclock"

	"github.com/lidofinance/ensreg/client/config"
	"github.com/lidofinance/ensreg/client/modules/logger"
	"github.com/lidofinance/ensreg/client/types"
)

// Env is shared by the watchers of every flow.
type Env struct {
	Provider Provider
	Store    Store
	Network  types.Network
	Clock    mclock.Clock
	// Now is the wall clock the confirmation timestamps are compared with.
	Now     func() time.Time
	Timing  config.Timing
	Polling config.Polling
	Logger  logger.Logger
}

func (e *Env) normalize() {
	if e.Clock == nil {
		e.Clock = mclock.System{}
	}
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.Logger == nil {
		e.Logger = logger.NewNopLogger()
	}
	e.Timing = e.Timing.Normalize()
	e.Polling = e.Polling.Normalize()
}

func (e *Env) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.Polling.RequestTimeout)
}

// generation owns the watchers of one commit hash. A stopped generation is
// never restarted, a hash change creates a new one.
type generation struct {
	ctx  context.Context
	env  *Env
	name string
	hash common.Hash

	mu        sync.Mutex
	alive     bool
	watcher   *ConfirmationWatcher
	ticker    *LocalTicker
	readiness *ReadinessChecker
}

func newGeneration(ctx context.Context, env *Env, name string, hash common.Hash) *generation {
	return &generation{
		ctx:   ctx,
		env:   env,
		name:  name,
		hash:  hash,
		alive: true,
	}
}

func (g *generation) start(confirmedAt *time.Time) {
	if confirmedAt != nil {
		g.startTicker(*confirmedAt)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.alive {
		return
	}
	g.watcher = NewConfirmationWatcher(g.ctx, g.env, g.name, g.hash, g.startTicker)
	g.watcher.Start()
}

func (g *generation) startTicker(confirmedAt time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.alive || g.ticker != nil {
		return
	}

	readiness := NewReadinessChecker(g.env, g.name, confirmedAt)
	ticker := NewLocalTicker(g.env, confirmedAt, func(seconds int64) bool {
		ready := readiness.Check(g.ctx, seconds)
		return ready && seconds >= g.env.Timing.WaitWithPaddingSeconds
	})
	g.readiness, g.ticker = readiness, ticker
	ticker.Start(elapsedSince(g.env.Now(), confirmedAt))
}

func (g *generation) elapsed() types.ElapsedState {
	g.mu.Lock()
	ticker, readiness := g.ticker, g.readiness
	g.mu.Unlock()

	if ticker == nil {
		return types.ElapsedState{}
	}
	return types.ElapsedState{
		SecondsSinceCommitConfirmed: ticker.Seconds(),
		ReadyToRegister:             readiness.Ready(),
	}
}

func (g *generation) stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.alive = false
	if g.watcher != nil {
		g.watcher.Stop()
	}
	if g.ticker != nil {
		g.ticker.Stop()
	}
}

// Flow tracks one registration record. Only an active flow runs watchers, an
// observer derives its state from the record and the wall clock.
type Flow struct {
	ctx  context.Context
	env  *Env
	name string
	role types.Role

	mu  sync.Mutex
	gen *generation
}

func NewFlow(ctx context.Context, env *Env, name string, role types.Role) *Flow {
	return &Flow{
		ctx:  ctx,
		env:  env,
		name: name,
		role: role,
	}
}

func (f *Flow) Name() string {
	return f.name
}

func (f *Flow) Role() types.Role {
	return f.role
}

// Refresh re-reads the record and restarts the watchers when the commit hash
// changed. The previous generation is torn down before a new one starts.
func (f *Flow) Refresh() error {
	record, err := f.env.Store.GetRecord(f.name)
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}
	if f.role != types.RoleActive {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	hash := record.CommitHash()
	if f.gen != nil && f.gen.hash == hash {
		return nil
	}
	if f.gen != nil {
		f.gen.stop()
		f.gen = nil
	}
	if record.Mode != types.ModeCreate || !record.HasCommitTransaction() {
		return nil
	}

	f.gen = newGeneration(f.ctx, f.env, f.name, hash)
	f.gen.start(record.ConfirmedAt())
	return nil
}

func (f *Flow) elapsed(record *types.RegistrationRecord) types.ElapsedState {
	if f.role != types.RoleActive {
		confirmedAt := record.ConfirmedAt()
		if confirmedAt == nil {
			return types.ElapsedState{}
		}
		// without block checks only the provider lag bound proves readiness
		seconds := elapsedSince(f.env.Now(), *confirmedAt)
		return types.ElapsedState{
			SecondsSinceCommitConfirmed: seconds,
			ReadyToRegister:             seconds > f.env.Timing.ProviderLagPaddingSeconds,
		}
	}

	f.mu.Lock()
	gen := f.gen
	f.mu.Unlock()

	// counters of a replaced hash never leak into the current one
	if gen == nil || gen.hash != record.CommitHash() {
		return types.ElapsedState{}
	}
	return gen.elapsed()
}

// Status resolves the current step of the flow.
func (f *Flow) Status() (*types.Status, *types.RegistrationRecord, error) {
	record, err := f.env.Store.GetRecord(f.name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get record: %w", err)
	}

	elapsed := f.elapsed(record)
	return &types.Status{
		Name:                        record.Name,
		Step:                        ResolveStep(record, elapsed, f.env.Timing),
		SecondsSinceCommitConfirmed: elapsed.SecondsSinceCommitConfirmed,
	}, record, nil
}

func (f *Flow) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != nil {
		f.gen.stop()
		f.gen = nil
	}
}
