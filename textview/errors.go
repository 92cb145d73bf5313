package textview

import "fmt"

// InvariantViolation is the panic value for protocol misuse, such as an
// unknown direction or an edit started from inside another edit. It
// signals a caller bug, never bad input.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (e InvariantViolation) Error() string {
	return fmt.Sprintf("textview: %s: %s", e.Op, e.Detail)
}

func violate(op, format string, args ...any) {
	panic(InvariantViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
}
