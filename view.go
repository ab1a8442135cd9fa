package bind

// An Outcome is the result of one completed operation: the produced value,
// or the error that prevented it. Exactly one of the two is meaningful.
//
// Domain errors are ordinary data. They travel through the same channel as
// successful values and surface through the same query methods; nothing in
// this package ever turns one into a panic.
type Outcome[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the operation succeeded.
func (o *Outcome[T]) Ok() bool { return o.Err == nil }

// A State is the coarse execution state of a [Bind].
type State uint8

const (
	// Idle means no operation is outstanding. Data from a previous run may
	// still be stored until the next request, Take, Clear, or the
	// retention policy removes it.
	Idle State = iota
	// Pending means an operation is in flight.
	Pending
	// Finished means the most recent operation has completed and its
	// outcome is stored.
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pending:
		return "Pending"
	case Finished:
		return "Finished"
	default:
		return "State(?)"
	}
}

// A ViewKind tags a [View].
type ViewKind uint8

const (
	// ViewIdle means no operation is running and no data is stored.
	ViewIdle ViewKind = iota
	// ViewPending means an operation is in flight.
	ViewPending
	// ViewFinished means the operation completed successfully.
	ViewFinished
	// ViewFailed means the operation completed with an error.
	ViewFailed
)

// A View is the detailed state of a [Bind], splitting a finished operation
// into success and failure and carrying the stored data. It is usually the
// most ergonomic way to drive rendering code:
//
//	switch v := b.View(); v.Kind {
//	case bind.ViewPending:
//		drawSpinner()
//	case bind.ViewFinished:
//		drawValue(*v.Value)
//	case bind.ViewFailed:
//		drawError(v.Err)
//	}
//
// The Value pointer aliases the Bind's stored outcome. It stays valid until
// the next request, Take, Clear, or retention sweep, which on a retain=false
// bind can be as soon as the next tick.
type View[T any] struct {
	Kind ViewKind
	// Value points at the stored result. Non-nil iff Kind is ViewFinished.
	Value *T
	// Err is the stored failure. Non-nil iff Kind is ViewFailed.
	Err error
}
