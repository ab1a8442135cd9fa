package bind

import "github.com/alitto/pond/v2"

// A PoolDispatcher runs spawned work on a bounded pool of goroutines. It is
// the default [Dispatcher] of a [Runtime].
//
// Futures spawned through a PoolDispatcher execute concurrently with the
// host loop, so anything they capture must be safe to use from another
// goroutine. Their outcomes come back through completion channels only; no
// Bind state is ever touched off the host thread.
type PoolDispatcher struct {
	pool pond.Pool
}

// NewPoolDispatcher creates a dispatcher running at most workers units of
// work concurrently.
func NewPoolDispatcher(workers int) *PoolDispatcher {
	return &PoolDispatcher{pool: pond.NewPool(workers)}
}

// Spawn implements [Dispatcher].
func (d *PoolDispatcher) Spawn(fn func()) {
	d.pool.Submit(fn)
}

// Close waits for all spawned work to finish and releases the pool. Binds
// never require this; it exists for hosts that want a clean shutdown.
func (d *PoolDispatcher) Close() {
	d.pool.StopAndWait()
}
