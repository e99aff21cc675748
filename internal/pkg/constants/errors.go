package constants

import (
	"errors"
	"fmt"
	"net/http"
)

// CodedError is an error that knows which HTTP status it should be reported with.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(msg string, code int) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrValidation    = NewCodedError("validation error", http.StatusBadRequest)
	ErrDBNotFound    = NewCodedError("not found", http.StatusNotFound)
	ErrConstraint    = NewCodedError("constraint violation", http.StatusConflict)
	ErrRouteNotFound = NewCodedError("Not found", http.StatusNotFound)
)

// Validationf wraps ErrValidation with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// CodeOf returns the HTTP status carried by err, or 500 when err has none.
func CodeOf(err error) int {
	var ce *CodedError
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return http.StatusInternalServerError
}
