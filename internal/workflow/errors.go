package workflow

import "fmt"

// InvalidTransitionError reports a requested edge that is not part of the
// lifecycle graph. The offending pair is retained for diagnostics.
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

// ErrorKind classifies the error for status mapping at the CLI edge.
func (e *InvalidTransitionError) ErrorKind() string { return "validation" }
