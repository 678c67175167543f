// README: Error kinds shared by modules; module errors wrap one of these.
package types

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrDuplicate  = errors.New("duplicate")
	ErrAuth       = errors.New("authentication failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// UserError is an error whose message is safe to show to the caller as-is.
type UserError struct {
	Kind error
	Msg  string
}

func (e *UserError) Error() string { return e.Msg }

func (e *UserError) Unwrap() error { return e.Kind }

// NewUserError returns an error of the given kind carrying a display message.
func NewUserError(kind error, msg string) error {
	return &UserError{Kind: kind, Msg: msg}
}

// Message returns the display message for err, or fallback when err carries none.
func Message(err error, fallback string) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Msg
	}
	return fallback
}
