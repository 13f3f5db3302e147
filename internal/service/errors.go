package service

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied marks a viewer acting beyond their role. It is kept
// distinct from generic failures so the UI can show a specific message.
var ErrPermissionDenied = errors.New("insufficient permission")

// ValidationError is a rejected input, caught before any mutation call is
// issued against the store.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func validationErr(err error) error {
	return &ValidationError{Msg: err.Error()}
}
