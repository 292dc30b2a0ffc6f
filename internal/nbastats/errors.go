package nbastats

import (
	"errors"
	"fmt"
)

// TransientError marks a failure that was retryable (connection error,
// timeout, 429, 5xx) but exhausted the retry budget. Callers must not
// retry further themselves; re-running the owning step is the recovery
// path.
type TransientError struct {
	Endpoint   string
	StatusCode int
	Attempts   int
	Err        error
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient failure on %s after %d attempts: %v", e.Endpoint, e.Attempts, e.Err)
	}
	return fmt.Sprintf("transient failure on %s after %d attempts: status %d", e.Endpoint, e.Attempts, e.StatusCode)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// PermanentError marks a failure that must not be retried: a 4xx other
// than 429, typically malformed parameters or an endpoint that no longer
// exists.
type PermanentError struct {
	Endpoint   string
	StatusCode int
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("permanent failure on %s: status %d", e.Endpoint, e.StatusCode)
}

// IsPermanent reports whether err is a PermanentError.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}
