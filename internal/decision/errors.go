package decision

import "fmt"

// MalformedDecisionError represents oracle output that could not be
// parsed into a usable decision. Handlers recover from it locally by
// degrading to a safe default action; it never terminates a session.
type MalformedDecisionError struct {
	Message string
	Cause   error
}

func (e *MalformedDecisionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed decision: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed decision: %s", e.Message)
}

func (e *MalformedDecisionError) Unwrap() error {
	return e.Cause
}
