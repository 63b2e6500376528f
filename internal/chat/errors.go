package chat

import "fmt"

// OracleUnavailableError reports a failed inference call (network, auth,
// timeout). Handlers recover from it locally with a user-facing message;
// it never terminates a session.
type OracleUnavailableError struct {
	Stage string
	Cause error
}

func (e *OracleUnavailableError) Error() string {
	return fmt.Sprintf("oracle unavailable during %s: %v", e.Stage, e.Cause)
}

func (e *OracleUnavailableError) Unwrap() error {
	return e.Cause
}
