package bind

import "sync/atomic"

// recvState classifies the result of a non-blocking receive.
type recvState uint8

const (
	recvNotYet recvState = iota
	recvReady
	recvClosed
)

// A oneshot carries exactly one [Outcome] from a background task to the
// Bind that spawned it. The producing side delivers at most one value; the
// consuming side polls without blocking. Closing the channel without a send
// signals that the task died before honoring its contract.
type oneshot[T any] struct {
	ch       chan Outcome[T]
	orphaned atomic.Bool
}

func newOneshot[T any]() *oneshot[T] {
	return &oneshot[T]{ch: make(chan Outcome[T], 1)}
}

// send delivers the outcome and reports whether the consuming side is still
// attached. The one-slot buffer guarantees send never blocks; a send into
// an orphaned oneshot is harmless and simply feeds the garbage collector.
func (o *oneshot[T]) send(out Outcome[T]) bool {
	o.ch <- out
	return !o.orphaned.Load()
}

// close marks the producing side as dead without a value. Only the spawn
// wrapper calls this, and only when the task failed to send.
func (o *oneshot[T]) close() { close(o.ch) }

// tryRecv attempts a non-blocking receive.
func (o *oneshot[T]) tryRecv() (Outcome[T], recvState) {
	select {
	case out, ok := <-o.ch:
		if !ok {
			return out, recvClosed
		}
		return out, recvReady
	default:
		var zero Outcome[T]
		return zero, recvNotYet
	}
}

// orphan detaches the consuming side. The in-flight task keeps running; its
// eventual send is discarded.
func (o *oneshot[T]) orphan() { o.orphaned.Store(true) }
