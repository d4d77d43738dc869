// Package errors defines the coded errors shared by the ring packages and
// the CLI.
//
// Every failure a user can act on carries a [Code]. Library code returns
// *Error values, possibly wrapped with fmt.Errorf; callers branch on the
// code with [Is] or [GetCode] and print [UserMessage] without the prefix.
//
//	err := errors.New(errors.ErrCodeInvalidOrientation, "unknown orientation %q", s)
//	if errors.Is(err, errors.ErrCodeInvalidOrientation) { ... }
//
//	return errors.Wrap(errors.ErrCodeConfigMalformed, err, "parse %s", path)
//
// Codes are grouped by prefix: INVALID_* for bad intent graphs and ring
// geometry, CONFIG_* for node documents, *_NOT_FOUND for missing inputs.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable failure category.
type Code string

const (
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidOrientation  Code = "INVALID_ORIENTATION"
	ErrCodeInvalidProcessNode  Code = "INVALID_PROCESS_NODE"
	ErrCodeInvalidRingConfig   Code = "INVALID_RING_CONFIG"
	ErrCodeInvalidPlacement    Code = "INVALID_PLACEMENT"
	ErrCodeInvalidInstanceName Code = "INVALID_INSTANCE_NAME"
	ErrCodeInvalidPath         Code = "INVALID_PATH"

	ErrCodeConfigNotFound  Code = "CONFIG_NOT_FOUND"
	ErrCodeConfigMalformed Code = "CONFIG_MALFORMED"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// ErrCodeUnsupported marks a request the node cannot serve, such as a
	// render format or a corner kind outside its model.
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error pairs a Code with a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause, which stays reachable through errors.Is/As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the first *Error in err's chain
// without its code, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
