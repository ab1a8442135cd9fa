package bind

import (
	"sync"

	"github.com/eapache/queue"
)

// A SerialDispatcher runs spawned work cooperatively on the host thread,
// for environments where only one thread of execution exists (or where
// determinism matters, as in tests).
//
// Spawned units are queued in arrival order. The Run method pops and runs
// each of them until the queue is emptied. It is done in a single-threaded
// manner. If one unit blocks, no other units can run. The best practice is
// not to block.
//
// The usual arrangement is for the host loop to call Run once per tick,
// between advancing the clock and querying Binds. One can instead use the
// Autorun method to set up an autorun function to calling the Run method
// automatically whenever a unit is spawned. The SerialDispatcher never
// calls the autorun function twice at the same time.
type SerialDispatcher struct {
	mu      sync.Mutex
	q       *queue.Queue
	running bool
	autorun func()
}

// NewSerialDispatcher creates a SerialDispatcher with an empty queue.
func NewSerialDispatcher() *SerialDispatcher {
	return &SerialDispatcher{q: queue.New()}
}

// Autorun sets up an autorun function to calling the Run method
// automatically whenever a unit of work is spawned.
//
// One must pass a function that calls the Run method. If f blocks, the
// Spawn method may block too.
func (d *SerialDispatcher) Autorun(f func()) {
	d.autorun = f
}

// Run pops and runs every queued unit of work until the queue is emptied.
//
// Run must not be called twice at the same time.
func (d *SerialDispatcher) Run() {
	d.mu.Lock()
	d.running = true

	for d.q.Length() > 0 {
		fn := d.q.Remove().(func())
		d.mu.Unlock()
		fn()
		d.mu.Lock()
	}

	d.running = false
	d.mu.Unlock()
}

// Pending returns the number of queued units of work.
func (d *SerialDispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.q.Length()
}

// Spawn implements [Dispatcher]. It is safe for concurrent use.
func (d *SerialDispatcher) Spawn(fn func()) {
	var autorun func()

	d.mu.Lock()

	if !d.running && d.autorun != nil {
		d.running = true
		autorun = d.autorun
	}

	d.q.Add(fn)
	d.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}
