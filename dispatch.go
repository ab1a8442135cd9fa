package bind

// A Dispatcher starts units of background work on behalf of Binds.
//
// Spawn is fire-and-forget: a spawned unit must run to completion even if
// the Bind that requested it is cleared, refreshed or dropped first. There
// is no cancellation; an abandoned unit's outcome is discarded on arrival.
//
// Two realizations ship with this package. [PoolDispatcher] runs work on a
// bounded pool of goroutines and is the default. [SerialDispatcher] runs
// work on the host thread itself, for environments where only one thread of
// execution exists.
type Dispatcher interface {
	// Spawn schedules fn to run exactly once. Spawn must not block the
	// caller beyond queueing, and must be safe for concurrent use.
	Spawn(fn func())
}
