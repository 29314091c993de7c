package errs

import "fmt"

// ValidationError covers bad input and disallowed status transitions. It is
// returned before any side effect took place.
type ValidationError struct {
	Err error
}

func (t ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", t.Err)
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (t NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", t.Entity, t.ID)
}

// ConflictError marks operations that already happened, e.g. crediting an
// already-paid submission or publishing under a different slug.
type ConflictError struct {
	Err error
}

func (t ConflictError) Error() string {
	return fmt.Sprintf("conflict: %v", t.Err)
}

// UpstreamError wraps failures of external collaborators after their retry
// policy is exhausted. The caller may re-trigger the operation.
type UpstreamError struct {
	Service string
	Err     error
}

func (t UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", t.Service, t.Err)
}

func (t UpstreamError) Unwrap() error {
	return t.Err
}

// ConsistencyError marks a violated internal invariant. The operation is
// aborted with no partial write.
type ConsistencyError struct {
	Err error
}

func (t ConsistencyError) Error() string {
	return fmt.Sprintf("consistency violation: %v", t.Err)
}

type PermissionsError struct {
	Err error
}

func (t PermissionsError) Error() string {
	return fmt.Sprintf("error in permissions: %v", t.Err)
}

type RetryableError struct {
	Err error
}

func (t RetryableError) Error() string {
	return fmt.Sprintf("retryable error: %v", t.Err)
}
