package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies an error for the API surface.
type Kind string

const (
	KindValidation Kind = "ValidationError"
	KindDuplicate  Kind = "DuplicateEntryError"
	KindNotFound   Kind = "NotFoundError"
	KindConstraint Kind = "ConstraintViolationError"
	KindForbidden  Kind = "ForbiddenError"
	KindInternal   Kind = "InternalError"
)

// Error is the service error type. Every error response carries a
// machine-readable kind and a human-readable message; Field names the
// offending input when known.
type Error struct {
	Kind    Kind   `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Status maps the error kind to an HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicate:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindConstraint:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func Validation(message, field string) *Error {
	return &Error{Kind: KindValidation, Message: message, Field: field}
}

func Duplicate(message, field string) *Error {
	return &Error{Kind: KindDuplicate, Message: message, Field: field}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// From returns the *Error inside err, translating unknown errors into the
// taxonomy on the way.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("record not found")
	}
	return Translate(err)
}
