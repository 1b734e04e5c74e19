package core

import "github.com/pkg/errors"

// FieldError describes a validation failure on a single named field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries an optional cause plus per-field errors. The API
// layer renders Fields as a field -> message map; business rules construct it
// directly (the store's preference limits, for one).
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals an unrecoverable dependency failure, such as a dead
// database connection. The API error handler turns it into a graceful stop.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
