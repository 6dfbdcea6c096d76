package models

import "fmt"

// ValidationError reports malformed or out-of-range input, such as a bad time
// window or a past date.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string { return e.Reason }

// ConflictError reports that the slot is already in the requested target
// state, a uniqueness clash, or a lost race on a conditional write.
type ConflictError struct {
	Reason string
}

func (e ConflictError) Error() string { return e.Reason }

// AuthorizationError reports a role or ownership mismatch.
type AuthorizationError struct {
	Reason string
}

func (e AuthorizationError) Error() string { return e.Reason }

// PreconditionError reports a missing prerequisite resource, e.g., no
// self-assessment on file.
type PreconditionError struct {
	Reason string
}

func (e PreconditionError) Error() string { return e.Reason }

// NotFoundError reports an unknown resource identifier.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
