package eventlog

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported event log driver")
	ErrMissingDSN        = errors.New("event log dsn is required")
	ErrLogClosed         = errors.New("event log is closed")
	ErrInvalidLimit      = errors.New("invalid query limit")
	ErrCorruptPayload    = errors.New("corrupt event payload")
)

// ErrorType groups event log failures.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeConfiguration
	ErrorTypeConnection
	ErrorTypeSchema
	ErrorTypeQuery
	ErrorTypeData
)

// Error describes a failed event log operation.
type Error struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(t ErrorType, op, msg string, cause error) *Error {
	return &Error{Type: t, Operation: op, Message: msg, Cause: cause}
}

// IsConnectionError reports whether err came from opening or reaching the
// database.
func IsConnectionError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeConnection
}
