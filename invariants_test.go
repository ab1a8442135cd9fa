package bind

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants asserts the structural invariants that must hold in every
// reachable state: data is stored iff Finished, and a receiver is attached
// iff Pending.
func checkInvariants[T any](t *testing.T, b *Bind[T]) {
	t.Helper()
	require.Equal(t, b.state == Finished, b.data != nil,
		"data presence must track the Finished state (state=%v)", b.state)
	require.Equal(t, b.state == Pending, b.recv != nil,
		"receiver presence must track the Pending state (state=%v)", b.state)
}

func newLoop() (*Runtime, *SerialDispatcher) {
	serial := NewSerialDispatcher()
	rt := NewRuntime(
		WithDispatcher(serial),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return rt, serial
}

func TestInvariantsAcrossAllTransitions(t *testing.T) {
	rt, serial := newLoop()
	b := New[int](rt, true)
	checkInvariants(t, b)

	rt.Advance(1)
	b.Request(func() (int, error) { return 1, nil })
	checkInvariants(t, b)

	serial.Run()
	rt.Advance(2)
	require.True(t, b.IsFinished())
	checkInvariants(t, b)

	// Request from Finished drops the stored outcome so that data never
	// coexists with a Pending receiver.
	b.Request(func() (int, error) { return 2, nil })
	checkInvariants(t, b)
	require.Nil(t, b.data)

	// Request from Pending abandons the previous receiver.
	b.Request(func() (int, error) { return 3, nil })
	checkInvariants(t, b)

	serial.Run()
	rt.Advance(3)
	_, ok := b.Take()
	require.True(t, ok)
	checkInvariants(t, b)

	b.Fill(9, nil)
	checkInvariants(t, b)

	b.Clear()
	checkInvariants(t, b)
}

func TestInvariantsAfterRetentionSweepOfPending(t *testing.T) {
	rt, serial := newLoop()
	b := New[int](rt, false)

	rt.Advance(1)
	b.Request(func() (int, error) { return 1, nil })
	checkInvariants(t, b)

	// Not queried at tick 2; the sweep at tick 3 must reclaim the pending
	// operation and detach its receiver, not just reset the state.
	rt.Advance(2)
	rt.Advance(3)
	require.True(t, b.IsIdle())
	checkInvariants(t, b)

	// The orphaned task completes later; its outcome must never surface.
	serial.Run()
	rt.Advance(4)
	require.True(t, b.IsIdle())
	require.Nil(t, b.Read())
	checkInvariants(t, b)
}

func TestPollIdempotentWithinTick(t *testing.T) {
	rt, serial := newLoop()
	b := New[int](rt, false)

	rt.Advance(1)
	b.Request(func() (int, error) { return 42, nil })
	serial.Run()

	// The outcome is already in the channel, but this tick's poll has run:
	// it must not be drained until the next tick.
	require.True(t, b.IsPending())

	rt.Advance(2)
	b.Poll()
	prev, last, completed := b.drawnPrev, b.drawnLast, b.completeTime
	require.Equal(t, 1.0, prev)
	require.Equal(t, 2.0, last)
	require.Equal(t, 2.0, completed)

	// Any number of same-tick queries must not double-shift the query
	// bookkeeping or reprocess the receive.
	require.True(t, b.IsFinished())
	_ = b.State()
	_ = b.Read()
	_ = b.View()
	require.Equal(t, prev, b.drawnPrev)
	require.Equal(t, last, b.drawnLast)
	require.Equal(t, completed, b.completeTime)
}

func TestPendingWithoutReceiverIsFatal(t *testing.T) {
	rt, _ := newLoop()
	b := New[int](rt, true)

	rt.Advance(1)
	b.state = Pending // corrupt deliberately

	rt.Advance(2)
	require.PanicsWithValue(t,
		"bind: state is Pending but the receiver is missing",
		func() { b.Poll() })
}

func TestFinishedWithoutDataDemotesToIdle(t *testing.T) {
	rt, _ := newLoop()
	b := New[string](rt, true)

	rt.Advance(1)
	b.state = Finished // corrupt deliberately; data stays nil

	v := b.View()
	require.Equal(t, ViewIdle, v.Kind)
	require.Equal(t, Idle, b.state)

	b.state = Finished
	_, ok := b.Take()
	require.False(t, ok)
	require.Equal(t, Idle, b.state)
}
