package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique constraint would be violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthenticated means the operation needs a signed-in user.
	ErrUnauthenticated = errors.New("must be logged in")
)

// InputError reports a request that failed a field-level check.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

// Invalid returns an *InputError carrying msg.
func Invalid(msg string) error {
	return &InputError{msg: msg}
}
