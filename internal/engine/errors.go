package engine

import "fmt"

// ValidationError rejects malformed input or out-of-range values before
// any mutation, including schema mismatches from the content generator.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NotFoundError is returned when a hunter/tracker/quest is absent, or a
// quest is not in today's remaining set (double submit or stale client).
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// StateConflictError signals a concurrent modification of the
// tracker+user unit. The whole operation should be retried.
type StateConflictError struct {
	Resource string
}

func (e StateConflictError) Error() string {
	return fmt.Sprintf("concurrent modification of %s, retry", e.Resource)
}

// PersistenceError wraps a durable-store failure. The enclosing
// operation has been rolled back in full and is safe to retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e PersistenceError) Unwrap() error { return e.Err }

// ExternalServiceError wraps a content-generator failure or timeout.
// The enclosing operation aborted with zero partial state change.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e ExternalServiceError) Unwrap() error { return e.Err }
