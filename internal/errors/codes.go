// Package errors defines the error taxonomy shared by the resolver, the store
// and the API.
package errors

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrorCode represents a specific error type.
type ErrorCode string

const (
	// ErrCodeNoDateRecognized indicates no weekday or relative-day phrase was found.
	ErrCodeNoDateRecognized ErrorCode = "NO_DATE_RECOGNIZED"
	// ErrCodeNoTimeRecognized indicates no clock phrase was found. Recovered with the default hour.
	ErrCodeNoTimeRecognized ErrorCode = "NO_TIME_RECOGNIZED"
	// ErrCodeInvalidTimezone indicates a timezone name that cannot be loaded.
	ErrCodeInvalidTimezone ErrorCode = "INVALID_TIMEZONE"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeNotFound indicates the requested record does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeRateLimitExceeded indicates rate limit has been exceeded.
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	// ErrCodeStoreFailure indicates the preference store failed.
	ErrCodeStoreFailure ErrorCode = "STORE_FAILURE"
)

// Error is a coded error carrying an optional cause and context.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code, so sentinel-style checks
// work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithContext adds context to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// GetCode returns the error code.
func (e *Error) GetCode() ErrorCode {
	return e.Code
}

// NoDateRecognized creates the error returned when an utterance has no date phrase.
func NoDateRecognized(utterance string) *Error {
	e := &Error{Code: ErrCodeNoDateRecognized, Message: "nenhuma data reconhecida"}
	return e.WithContext("utterance", utterance)
}

// NoTimeRecognized creates the error used internally when no clock phrase is found.
func NoTimeRecognized() *Error {
	return &Error{Code: ErrCodeNoTimeRecognized, Message: "nenhum horário reconhecido"}
}

// InvalidTimezone creates an invalid timezone error.
func InvalidTimezone(tz string, cause error) *Error {
	return &Error{
		Code:    ErrCodeInvalidTimezone,
		Message: fmt.Sprintf("invalid timezone %q", tz),
		Cause:   cause,
	}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *Error {
	return &Error{Code: ErrCodeInvalidArgument, Message: msg}
}

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: msg}
}

// RateLimitExceeded creates a rate limit exceeded error.
func RateLimitExceeded(msg string) *Error {
	return &Error{Code: ErrCodeRateLimitExceeded, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *Error {
	return &Error{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error, or anything it wraps, carries the given code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if pkgerrors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not an *Error.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	var e *Error
	if pkgerrors.As(err, &e) {
		return e.Code
	}
	return defaultCode
}
