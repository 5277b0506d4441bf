package runtime

import "fmt"

// EvalError is the general runtime failure: unknown names, type mismatches,
// argument-count mismatches, division by zero. The line field is filled in
// by the executor when the failing expression's source line is known.
type EvalError struct {
	Msg  string
	Line int
}

func (e *EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("EvalError at line %d: %s", e.Line, e.Msg)
	}
	return "EvalError: " + e.Msg
}

func evalErrf(format string, args ...interface{}) *EvalError {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}

// RecursionLimitError reports that the interpreter's call-depth guard
// tripped before the native stack could overflow.
type RecursionLimitError struct {
	Limit int
	Name  string
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("recursion limit of %d exceeded in call to '%s'", e.Limit, e.Name)
}

// withLine attaches a source line to an EvalError that does not carry one
// yet. Other error kinds pass through unchanged.
func withLine(err error, line int) error {
	if ee, ok := err.(*EvalError); ok && ee.Line == 0 {
		ee.Line = line
	}
	return err
}
