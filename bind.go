package bind

// A Future is a unit of background work producing a value or an error.
//
// Futures run on the Runtime's dispatcher: a [PoolDispatcher] executes them
// on worker goroutines, a [SerialDispatcher] on the host thread between
// ticks. A future is never forcibly stopped. One that has been abandoned by
// Clear or Refresh runs to completion anyway, and its outcome is discarded
// on arrival.
type Future[T any] func() (T, error)

// A Bind tracks the lifecycle of a single asynchronous operation and
// stores its [Outcome], bridging background work and a tick-driven consumer
// loop that cannot block. The loop queries the Bind once per tick; the Bind
// reports Idle, Pending or Finished, hands out the stored outcome, and
// reclaims it once nobody is looking anymore.
//
// A Bind is owned by the host loop thread. All of its methods must be
// called from that thread only, which is why it needs no locking. The only
// synchronization point with background work is the one-shot completion
// channel drained during [Bind.Poll].
//
// The zero Bind is not usable; create one with [New].
type Bind[T any] struct {
	rt *Runtime

	// Tick timestamps of the two most recent polls, used to detect ticks
	// in which the Bind was not queried.
	drawnLast float64
	drawnPrev float64

	// data is set iff state is Finished; recv is set iff state is Pending.
	data *Outcome[T]
	recv *oneshot[T]

	state        State
	startTime    float64
	completeTime float64

	// If retain is false, the stored outcome is released whenever the
	// Bind was not queried on the immediately preceding tick.
	retain bool

	timesExecuted int
}

// New creates an Idle Bind attached to rt. A nil rt attaches to [Default].
//
// retain controls what happens to a completed outcome when the Bind stops
// being queried. With retain=false the outcome is released after one full
// tick without a query, returning the Bind to Idle: the consumer that
// stopped asking is assumed gone, and memory stays bounded for ephemeral,
// UI-driven use. With retain=true the outcome is kept until Take, Clear or
// a new request.
func New[T any](rt *Runtime, retain bool) *Bind[T] {
	if rt == nil {
		rt = Default()
	}
	return &Bind[T]{
		rt:           rt,
		retain:       retain,
		completeTime: completeTimeSentinel,
	}
}

// Poll drives the state machine. Every other method calls it first, so
// calling it directly is rarely necessary.
//
// Poll runs at most once per tick; repeated calls within one tick return
// immediately. A full run shifts the query-time bookkeeping, applies the
// retention policy, and drains the completion channel if an operation is
// in flight.
//
// Poll panics if a pending operation's channel was closed without a value.
// That means the spawned task died (panicked) without honoring its
// contract; it is an environment defect, not a domain error, and it is not
// recoverable.
func (b *Bind[T]) Poll() {
	now := b.rt.clock.Now()

	// Already polled this tick.
	if now == b.drawnLast {
		return
	}

	b.drawnPrev = b.drawnLast
	b.drawnLast = now

	// Retention policy: a Bind nobody queried for a full tick is assumed
	// abandoned. Release its outcome and orphan any in-flight receiver.
	if !b.retain && !b.PolledLastTick() {
		b.reset()
	}

	if b.state == Pending {
		if b.recv == nil {
			panic("bind: state is Pending but the receiver is missing")
		}
		switch out, st := b.recv.tryRecv(); st {
		case recvReady:
			b.data = &out
			b.completeTime = now
			b.state = Finished
			b.recv = nil
		case recvClosed:
			panic("bind: task exited without delivering an outcome")
		case recvNotYet:
			// Still running.
		}
	}
}

// reset returns the Bind to Idle, dropping any stored outcome and
// detaching any in-flight receiver.
func (b *Bind[T]) reset() {
	b.state = Idle
	b.data = nil
	if b.recv != nil {
		b.recv.orphan()
		b.recv = nil
	}
}

// Request starts fut on the Runtime's dispatcher and moves the Bind to
// Pending. Any stored outcome is dropped; if an operation was already in
// flight, it is abandoned the same way Refresh abandons it.
func (b *Bind[T]) Request(fut Future[T]) {
	b.Poll()
	b.reset()

	b.startTime = b.rt.clock.Now()
	b.state = Pending
	rx := newOneshot[T]()
	b.recv = rx
	b.spawn(fut, rx)

	b.timesExecuted++
}

// spawn hands fut to the dispatcher, paired with the producing side of tx.
func (b *Bind[T]) spawn(fut Future[T], tx *oneshot[T]) {
	rt := b.rt
	rt.disp.Spawn(func() {
		var out Outcome[T]
		if p := catchPanic(func() { out.Value, out.Err = fut() }); p != nil {
			rt.log.Error("bind: spawned task panicked",
				"panic", p.value, "stack", string(p.stack))
			// The contract is one send per channel. Closing instead marks
			// the task as dead, which the next Poll treats as fatal.
			tx.close()
			return
		}
		if tx.send(out) {
			rt.wakeup()
		} else {
			rt.log.Warn("bind: outcome discarded, receiver was abandoned")
		}
	})
}

// Refresh drops any current or in-flight outcome and starts fut
// immediately. Equivalent to Clear followed by Request.
func (b *Bind[T]) Refresh(fut Future[T]) {
	b.Clear()
	b.Request(fut)
}

// RequestEvery starts factory's future whenever more than secs seconds of
// tick time have passed since the last completion and no operation is in
// flight. It is driven entirely by being called: there is no timer, so it
// only fires on ticks that actually query it.
//
// It returns the seconds remaining until the next scheduled refresh;
// negative means overdue. A Bind that has never completed reports the full
// interval.
func (b *Bind[T]) RequestEvery(factory func() Future[T], secs float64) float64 {
	elapsed := b.SinceCompleted()

	if b.State() != Pending && elapsed > secs {
		b.Request(factory())
	}

	if b.completeTime == completeTimeSentinel {
		return secs
	}
	return secs - elapsed
}

// Fill injects an outcome synchronously, without dispatching any work, and
// moves the Bind to Finished.
//
// Fill panics unless the Bind is Idle.
func (b *Bind[T]) Fill(v T, err error) {
	b.Poll()
	if b.state != Idle {
		panic("bind: Fill requires an Idle bind, current state is " + b.state.String())
	}
	b.state = Finished
	b.completeTime = b.rt.clock.Now()
	b.data = &Outcome[T]{Value: v, Err: err}
}

// Take consumes the stored outcome, returning it and resetting the Bind to
// Idle. It reports false if no operation has finished.
func (b *Bind[T]) Take() (Outcome[T], bool) {
	b.Poll()

	var zero Outcome[T]
	if b.state != Finished {
		return zero, false
	}
	if b.data == nil {
		// Unreachable by construction. Losing data beats crashing a loop.
		b.state = Idle
		return zero, false
	}

	out := *b.data
	b.state = Idle
	b.data = nil
	return out, true
}

// Clear drops any stored outcome and returns the Bind to Idle. An in-flight
// operation is not cancelled; it keeps running and its outcome is discarded
// on arrival.
func (b *Bind[T]) Clear() {
	b.Poll()
	b.reset()
}

// Read returns the stored outcome, or nil if none is stored. The pointer
// aliases the Bind's storage, so callers may mutate the outcome in place;
// it stays valid until the next request, Take, Clear or retention sweep.
func (b *Bind[T]) Read() *Outcome[T] {
	b.Poll()
	return b.data
}

// ReadOrRequest returns the stored outcome like Read, but first starts
// factory's future if the Bind is Idle with nothing stored.
func (b *Bind[T]) ReadOrRequest(factory func() Future[T]) *Outcome[T] {
	b.Poll()
	if b.data == nil && b.state == Idle {
		b.Request(factory())
	}
	return b.data
}

// State returns the coarse execution state.
func (b *Bind[T]) State() State {
	b.Poll()
	return b.state
}

// View returns the detailed state, splitting Finished into success and
// failure for exhaustive switching.
func (b *Bind[T]) View() View[T] {
	b.Poll()
	switch b.state {
	case Pending:
		return View[T]{Kind: ViewPending}
	case Finished:
		if b.data == nil {
			// Unreachable by construction; demote rather than crash.
			b.state = Idle
			return View[T]{Kind: ViewIdle}
		}
		if b.data.Err != nil {
			return View[T]{Kind: ViewFailed, Err: b.data.Err}
		}
		return View[T]{Kind: ViewFinished, Value: &b.data.Value}
	default:
		return View[T]{Kind: ViewIdle}
	}
}

// ViewOrRequest returns the detailed state like View, but first starts
// factory's future if the Bind is Idle with nothing stored. It is the
// principal entry point for rendering code: "give me the latest view,
// auto-starting the work the first time."
func (b *Bind[T]) ViewOrRequest(factory func() Future[T]) View[T] {
	b.Poll()
	if b.data == nil && b.state == Idle {
		b.Request(factory())
	}
	return b.View()
}

// IsIdle reports whether no operation is outstanding.
func (b *Bind[T]) IsIdle() bool {
	b.Poll()
	return b.state == Idle
}

// IsPending reports whether an operation is in flight.
func (b *Bind[T]) IsPending() bool {
	b.Poll()
	return b.state == Pending
}

// IsFinished reports whether an outcome is stored.
func (b *Bind[T]) IsFinished() bool {
	b.Poll()
	return b.state == Finished
}

// JustStarted reports whether an operation started during the current tick.
func (b *Bind[T]) JustStarted() bool {
	b.Poll()
	return b.startTime == b.rt.clock.Now()
}

// JustCompleted reports whether an operation completed during the current
// tick. Unlike IsFinished, which stays true for as long as the outcome is
// stored, this is true for exactly one tick.
func (b *Bind[T]) JustCompleted() bool {
	b.Poll()
	return b.completeTime == b.rt.clock.Now()
}

// OnFinished invokes f with the stored outcome, but only on the tick the
// operation completed. It is the edge-triggered companion to IsFinished.
func (b *Bind[T]) OnFinished(f func(*Outcome[T])) {
	if b.JustCompleted() && b.data != nil {
		f(b.data)
	}
}

// StartTime returns the tick timestamp at which the most recent operation
// started.
func (b *Bind[T]) StartTime() float64 {
	b.Poll()
	return b.startTime
}

// CompleteTime returns the tick timestamp at which the most recent
// operation completed. Before anything ever completes it is a sentinel far
// below any real timestamp.
func (b *Bind[T]) CompleteTime() float64 {
	b.Poll()
	return b.completeTime
}

// Elapsed returns the tick time the most recent operation took from start
// to completion.
func (b *Bind[T]) Elapsed() float64 {
	b.Poll()
	return b.completeTime - b.startTime
}

// SinceStarted returns the tick time elapsed since the most recent
// operation started.
func (b *Bind[T]) SinceStarted() float64 {
	b.Poll()
	return b.rt.clock.Now() - b.startTime
}

// SinceCompleted returns the tick time elapsed since the most recent
// operation completed. Callers can build staleness, timeout or backoff
// policies on top of it; the Bind itself enforces none.
func (b *Bind[T]) SinceCompleted() float64 {
	b.Poll()
	return b.rt.clock.Now() - b.completeTime
}

// CountExecuted returns how many operations this Bind has started.
func (b *Bind[T]) CountExecuted() int {
	return b.timesExecuted
}

// PolledThisTick reports whether the Bind has been queried during the
// current tick.
func (b *Bind[T]) PolledThisTick() bool {
	return b.drawnLast == b.rt.clock.Now()
}

// PolledLastTick reports whether the Bind was queried during the previous
// tick. The retention policy is built on it. Its answer is meaningful once
// the current tick's poll has run, which any query method triggers.
func (b *Bind[T]) PolledLastTick() bool {
	return b.drawnPrev == b.rt.clock.Previous()
}
