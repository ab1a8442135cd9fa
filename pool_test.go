package bind_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/frameloop/bind"
)

func TestPoolDispatcherRunsEverything(t *testing.T) {
	d := bind.NewPoolDispatcher(4)

	var ran atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		d.Spawn(func() {
			defer wg.Done()
			ran.Add(1)
		})
	}
	wg.Wait()
	d.Close()

	require.Equal(t, int64(32), ran.Load())
}

// Exercises the full cross-goroutine path: a future on the worker pool, a
// wake notification, and the completion drained on a later tick.
func TestBindOnWorkerPool(t *testing.T) {
	woken := make(chan struct{}, 1)
	rt := bind.NewRuntime(
		bind.WithWorkers(2),
		bind.WithWakeFunc(func() {
			select {
			case woken <- struct{}{}:
			default:
			}
		}),
	)

	b := bind.New[string](rt, true)

	rt.Advance(1)
	b.Request(func() (string, error) { return "from the pool", nil })
	require.True(t, b.IsPending())

	select {
	case <-woken:
	case <-time.After(5 * time.Second):
		t.Fatal("no wake notification from the background completion")
	}

	rt.Advance(2)
	require.True(t, b.IsFinished())
	out, taken := b.Take()
	require.True(t, taken)
	require.Equal(t, "from the pool", out.Value)
}
