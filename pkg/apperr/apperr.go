package apperr

import "errors"

// Kind classifies a failure. Handlers map kinds to HTTP statuses; everything
// below the transport layer deals in kinds only.
type Kind string

const (
	Unauthenticated    Kind = "unauthenticated"
	InvalidCredentials Kind = "invalid_credentials"
	InvalidInput       Kind = "invalid_input"
	Conflict           Kind = "conflict"
	NotFound           Kind = "not_found"
	Unavailable        Kind = "unavailable"
)

// Error is a typed failure with a stable, caller-visible message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// Is matches by kind so errors.Is(err, ErrInvalidCredentials) works for any
// error of the same kind regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause while keeping the stable outward message.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf returns the kind of err, or empty string for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Sentinels for the failures whose message never varies. InvalidInput errors
// are constructed at the failure site because the violated rule is disclosed.
var (
	ErrUnauthenticated    = New(Unauthenticated, "you must be logged in")
	ErrInvalidCredentials = New(InvalidCredentials, "invalid credentials")
	ErrEmailInUse         = New(Conflict, "email already in use")
	ErrUserNotFound       = New(NotFound, "user not found")
)
