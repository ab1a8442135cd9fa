package bind

import (
	"log/slog"
	"runtime"
	"sync"
)

// A Runtime bundles the collaborators shared by a set of Binds: the tick
// clock, the dispatcher that starts background work, an optional wake
// notifier and a logger.
//
// Construct one Runtime at startup, advance it once per loop iteration, and
// pass it to every [New]. Tests can drive an isolated Runtime with a
// hand-advanced clock and a [SerialDispatcher].
//
// Like the clock it owns, a Runtime must only be advanced by the host loop
// thread. Spawning through it is safe from any goroutine.
type Runtime struct {
	clock   Clock
	disp    Dispatcher
	wake    func()
	log     *slog.Logger
	workers int
}

// An Option configures a [Runtime].
type Option func(*Runtime)

// WithDispatcher replaces the default worker-pool dispatcher.
func WithDispatcher(d Dispatcher) Option {
	return func(r *Runtime) { r.disp = d }
}

// WithWakeFunc installs a wake notifier: a callback invoked after a
// completion has been delivered, asking the host loop to run another tick
// promptly instead of waiting for its next natural trigger (in a UI, a
// repaint request).
//
// The callback runs on whatever goroutine delivered the completion, so f
// must be safe to call from any goroutine.
func WithWakeFunc(f func()) Option {
	return func(r *Runtime) { r.wake = f }
}

// WithLogger replaces the default logger, [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) { r.log = l }
}

// WithWorkers sets the size of the default worker-pool dispatcher. It has
// no effect when WithDispatcher is also given.
func WithWorkers(n int) Option {
	return func(r *Runtime) { r.workers = n }
}

// NewRuntime creates a Runtime. Without options it dispatches to a
// [PoolDispatcher] sized to the number of CPUs, logs through
// [slog.Default], and has no wake notifier.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{workers: runtime.NumCPU()}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	if r.disp == nil {
		r.disp = NewPoolDispatcher(r.workers)
	}
	return r
}

// Advance records now as the current tick timestamp. The host loop must
// call it once per iteration, before any Bind is queried. See
// [Clock.Advance].
func (r *Runtime) Advance(now float64) {
	r.clock.Advance(now)
}

// Now returns the timestamp of the current tick.
func (r *Runtime) Now() float64 { return r.clock.Now() }

// Previous returns the timestamp of the tick before the current one.
func (r *Runtime) Previous() float64 { return r.clock.Previous() }

// Dispatcher returns the dispatcher this Runtime spawns work on.
func (r *Runtime) Dispatcher() Dispatcher { return r.disp }

func (r *Runtime) wakeup() {
	if r.wake != nil {
		r.wake()
	}
}

// Default returns a process-wide Runtime for applications that don't need
// injection. It is created on first use and dispatches to the default
// worker pool.
var Default = sync.OnceValue(func() *Runtime { return NewRuntime() })
