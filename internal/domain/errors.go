package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoSuchEntity is the store-level sentinel for a missing document.
// The service translates it into a CodeNotFound Error before it reaches
// a caller.
var ErrNoSuchEntity = errors.New("no such entity")

// ErrorCode is the machine-readable error class surfaced to callers.
type ErrorCode string

const (
	// CodeValidation: bad field shape/range, recoverable by re-submission.
	CodeValidation ErrorCode = "validation"
	// CodeNotFound: referenced entity absent.
	CodeNotFound ErrorCode = "not_found"
	// CodeInvalidInput: malformed identifier.
	CodeInvalidInput ErrorCode = "invalid_input"
	// CodeInternal: store/cache infrastructure failure. Detail is logged
	// server-side, never surfaced.
	CodeInternal ErrorCode = "internal"
)

// Error is the only error type the service lets escape to its callers.
type Error struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(names, ", "))
}

// NewValidationError carries field-level messages for every violated
// constraint.
func NewValidationError(fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Message: "invalid employee data", Fields: fields}
}

func NewNotFoundError(what string) *Error {
	return &Error{Code: CodeNotFound, Message: what + " not found"}
}

func NewInvalidInputError(msg string) *Error {
	return &Error{Code: CodeInvalidInput, Message: msg}
}

// NewInternalError is deliberately opaque.
func NewInternalError() *Error {
	return &Error{Code: CodeInternal, Message: "internal error"}
}

// CodeOf extracts the error class, defaulting to CodeInternal for
// anything untranslated.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
