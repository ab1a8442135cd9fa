// Package bind manages the lifecycles of asynchronous operations for
// tick-driven consumer loops.
//
// A host that only gets to look at the world once per tick and must never
// block, such as a render loop or a game loop, cannot await a future. What
// it can do is ask, once per tick: is the work I started
// still running, did it finish, and what did it produce? A [Bind] answers
// exactly those questions. It is a small per-operation state machine that
// starts background work, detects its completion asynchronously, exposes
// the outcome for as long as somebody keeps asking, and reclaims it when
// nobody does.
//
// # The Tick Contract
//
// All Binds attached to a [Runtime] share one tick clock. The host loop
// advances it once per iteration, before querying anything:
//
//	rt.Advance(now)
//
// Every query method on a Bind first runs one poll step, which drains the
// completion channel and applies the retention policy. Polling is
// idempotent within a tick, so a Bind may be queried any number of times
// per iteration for the price of one.
//
// No method on a Bind ever blocks, and no lock is taken. A Bind is owned
// by the host loop thread; background futures talk to it only through a
// one-shot channel, which is the sole synchronization point.
//
// # Retention
//
// A Bind created with retain=false releases a completed outcome as soon as
// it goes one full tick without being queried. In UI terms: the widget that
// was displaying the result is no longer on screen, so the result is
// assumed abandoned and its memory reclaimed. Create the Bind with
// retain=true to keep outcomes until they are taken or cleared.
//
// # Where Futures Run
//
// A [Dispatcher] decides. The default [PoolDispatcher] runs futures on a
// bounded pool of goroutines. The [SerialDispatcher] runs them on the host
// thread itself, interleaved between ticks, for single-threaded
// environments and for deterministic tests.
//
// Either way, a future is never forcibly stopped. Abandoning one (Clear,
// Refresh, or simply dropping the Bind) lets it run to completion and
// silently discards its outcome. That trades some wasted background work
// for freedom from the correctness hazards of forced cancellation.
//
// # Errors and Faults
//
// A failed operation is ordinary data: its error is stored in the
// [Outcome] and surfaces as a [ViewFailed] view, to be rendered however
// the caller wishes. Panics from this package are something else entirely:
// they signal broken invariants in the hosting environment, such as a
// spawned task dying without delivering an outcome, and are meant to fail
// loudly during development rather than be recovered.
package bind
