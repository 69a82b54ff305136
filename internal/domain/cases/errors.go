package cases

import "fmt"

// ValidationError reports a missing or malformed submission field. It is
// user-correctable and names the offending field so the client can fix it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid submission field %q: %s", e.Field, e.Reason)
}

// InferenceError reports a failed call to the diagnostic inference service:
// transport failure, non-success status, timeout, or an unparseable body.
type InferenceError struct {
	Op  string
	Err error
}

func (e *InferenceError) Error() string {
	if e.Err == nil {
		return "inference: " + e.Op
	}
	return fmt.Sprintf("inference: %s: %v", e.Op, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// PersistenceError reports a store write failure. It is fatal to the
// request: nothing is partially committed and nothing is retried.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist case: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
