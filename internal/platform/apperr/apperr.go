// Package apperr defines the error kinds shared by the domain packages and the HTTP boundary.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)

// Error is a domain error carrying one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// New returns an error that matches kind with errors.Is.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// KindOf reports which kind err belongs to, or nil for opaque failures.
func KindOf(err error) error {
	for _, kind := range []error{ErrNotFound, ErrInvalidArgument, ErrConflict, ErrUnauthorized} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
