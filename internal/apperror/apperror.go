// Package apperror defines the domain error taxonomy shared by every module.
//
// Errors are compared by Code, so module-level values built with New or
// Wrap match the package sentinels through errors.Is:
//
//	var ErrPlayerNotFound = apperror.New(apperror.CodeNotFound, "player not found")
//	errors.Is(ErrPlayerNotFound, apperror.ErrNotFound) // true
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error classification.
type Code string

// Error codes.
const (
	CodeNotFound       Code = "NOT_FOUND"
	CodeAlreadyExists  Code = "ALREADY_EXISTS"
	CodeInvalid        Code = "INVALID_REQUEST"
	CodeStorage        Code = "STORAGE_ERROR"
	CodeMissingContext Code = "MISSING_CONTEXT"
	CodeInvalidLogin   Code = "INVALID_LOGIN"
	CodeAuthBackend    Code = "AUTH_BACKEND"
	CodeInternal       Code = "INTERNAL_ERROR"
)

// HTTPStatus maps the code to an HTTP status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeInvalid:
		return http.StatusBadRequest
	case CodeInvalidLogin, CodeMissingContext:
		return http.StatusUnauthorized
	case CodeAuthBackend:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error with a code, a displayable message and optional
// metadata describing the offending input.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a domain error with the same code.
// Only a bare *Error target matches; wrapped targets are compared by identity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound           = New(CodeNotFound, "not found")
	ErrAlreadyExists      = New(CodeAlreadyExists, "already exists")
	ErrInvalid            = New(CodeInvalid, "invalid request")
	ErrStorage            = New(CodeStorage, "storage error")
	ErrMissingContext     = New(CodeMissingContext, "missing request context")
	ErrInvalidCredentials = New(CodeInvalidLogin, "invalid email or password")
	ErrAuthBackend        = New(CodeAuthBackend, "authentication backend failure")
)

// New creates a domain error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error around cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Invalid creates a validation error with a formatted message.
func Invalid(format string, args ...any) *Error {
	return New(CodeInvalid, fmt.Sprintf(format, args...))
}

// InvalidField creates a validation error attached to a form field.
func InvalidField(field, message string) *Error {
	return &Error{
		Code:     CodeInvalid,
		Message:  message,
		Metadata: map[string]string{"field": field},
	}
}

// NotFound creates a not-found error for the given entity and id.
func NotFound(entity string, id int64) *Error {
	return &Error{
		Code:     CodeNotFound,
		Message:  fmt.Sprintf("%s %d not found", entity, id),
		Metadata: map[string]string{"entity": entity, "id": fmt.Sprint(id)},
	}
}

// AlreadyExists creates a uniqueness violation carrying the offending value.
// label is the human readable field name ("email", "tag name").
func AlreadyExists(entity, field, label, value string) *Error {
	return &Error{
		Code:     CodeAlreadyExists,
		Message:  fmt.Sprintf("%s with %s %s already exists", entity, label, value),
		Metadata: map[string]string{"entity": entity, "field": field, "value": value},
	}
}

// Storage wraps a raw storage failure. Domain errors and nil pass through unchanged.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return err
	}
	return Wrap(CodeStorage, "storage error: "+op, err)
}

// CodeOf returns the code of the first domain error in err's chain,
// or CodeInternal.
func CodeOf(err error) Code {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// Field returns the metadata field of a uniqueness violation, if any.
func Field(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Metadata != nil {
		return domainErr.Metadata["field"]
	}
	return ""
}

// Message returns a message safe to show to the user.
// Storage and internal failures are reduced to a generic text.
func Message(err error) string {
	var domainErr *Error
	if !errors.As(err, &domainErr) {
		return "internal server error"
	}
	switch domainErr.Code {
	case CodeStorage:
		return "a storage error occurred, please try again"
	case CodeInternal:
		return "internal server error"
	default:
		return domainErr.Message
	}
}
