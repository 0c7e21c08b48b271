package service

// Kind classifies a business-rule violation.
type Kind int

const (
	// KindInvalidReference: a referenced record (the assignee) does not exist.
	KindInvalidReference Kind = iota + 1

	// KindNotFound: the addressed task does not exist.
	KindNotFound

	// KindInvalidTransition: the requested status is not the one directly
	// after the current status.
	KindInvalidTransition

	// KindInvalidState: the task is not in a state that allows the operation.
	KindInvalidState

	// KindInvalidCredentials: no user matches the email/password pair.
	KindInvalidCredentials
)

// AppError is a business-rule violation with a message fit for direct
// display. These are the only failures the presentation layer catches and
// renders; everything else is a store-layer diagnostic.
type AppError struct {
	Kind    Kind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// The canonical business-rule failures. Each operation returns one of these
// sentinel values, so callers can match with errors.Is.
var (
	ErrUserNotFound   = &AppError{KindInvalidReference, "enter an existing user code"}
	ErrTaskNotFound   = &AppError{KindNotFound, "enter an existing task code"}
	ErrBadTransition  = &AppError{KindInvalidTransition, "choose the status immediately after the current one"}
	ErrTaskNotDone    = &AppError{KindInvalidState, "select a task whose status is done"}
	ErrBadCredentials = &AppError{KindInvalidCredentials, "email address or password is incorrect"}
)
