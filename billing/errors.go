package billing

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrAuthorization = errors.New("not authorized")
	ErrNotFound      = errors.New("not found")
	ErrState         = errors.New("invalid state transition")
	ErrPersistence   = errors.New("persistence failed")
)

// ErrNoRecord is returned by Store implementations when a row does not exist.
var ErrNoRecord = errors.New("no record")

// Error is the single failure signal returned by Service operations.
type Error struct {
	// Kind is one of the ErrX kinds above.
	Kind error
	// Op is the operation that failed, e.g. "FinalizeInvoice".
	Op string
	// Message is safe to show to the caller.
	Message string
	// Err is the underlying cause, if any. It is not part of Message.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("billing: %s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("billing: %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the error's kind as well as its cause.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func validationError(op, msg string) error {
	return &Error{Kind: ErrValidation, Op: op, Message: msg}
}

func authorizationError(op, msg string) error {
	return &Error{Kind: ErrAuthorization, Op: op, Message: msg}
}

func notFoundError(op, msg string) error {
	return &Error{Kind: ErrNotFound, Op: op, Message: msg}
}

func stateError(op, msg string) error {
	return &Error{Kind: ErrState, Op: op, Message: msg}
}

func persistenceError(op string, err error) error {
	var be *Error
	if errors.As(err, &be) {
		return err
	}
	return &Error{Kind: ErrPersistence, Op: op, Message: "storage operation failed", Err: err}
}

// lookupError converts a Store read failure into NotFound or Persistence.
func lookupError(op, what string, err error) error {
	if errors.Is(err, ErrNoRecord) {
		return notFoundError(op, what+" not found")
	}
	return persistenceError(op, err)
}

// Message returns the caller-facing message of err, or a generic one when
// err did not come from this package.
func Message(err error) string {
	var be *Error
	if errors.As(err, &be) {
		return be.Message
	}
	return "internal error"
}
