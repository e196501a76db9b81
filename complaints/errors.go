package complaints

import "errors"

var (
	// ErrNotFound means the complaint (or the record behind a required
	// reference) does not exist.
	ErrNotFound = errors.New("complaint not found")

	// ErrForbidden means the principal is authenticated but the access
	// policy denies the action.
	ErrForbidden = errors.New("access denied")

	// ErrInvalidID means an identifier had the wrong shape for the
	// persistence layer. Distinct from ErrNotFound.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrTrialExpired means a free trial principal's window has ended.
	ErrTrialExpired = errors.New("free trial has ended")
)

// ValidationError carries a user-correctable input problem.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}
