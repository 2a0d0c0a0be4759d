package utils

import "errors"

// ErrNotFound is returned by stores when no record matches the lookup.
var ErrNotFound = errors.New("record not found")

// ValidationError carries a schema or required-field violation. Controllers
// map it to a 400 with the original message surfaced.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
