package bind

import (
	"fmt"
	"runtime/debug"
)

// A taskPanic captures a panic raised by a spawned future, together with
// the stack at the panic site.
type taskPanic struct {
	value any
	stack []byte
}

func (p *taskPanic) Error() string {
	return fmt.Sprintf("task panic: %v\n\n%s", p.value, p.stack)
}

// catchPanic runs f and captures a panic instead of letting it tear down
// the dispatcher's worker. It returns nil if f returned normally.
func catchPanic(f func()) (tp *taskPanic) {
	defer func() {
		if v := recover(); v != nil {
			tp = &taskPanic{value: v, stack: debug.Stack()}
		}
	}()
	f()
	return nil
}
