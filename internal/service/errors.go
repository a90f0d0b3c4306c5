// Package service adds input validation and error wrapping around the
// repositories. Every method follows the same shape: validate the
// input, delegate to the repository, and translate failures into one of
// three categories the handlers know how to map to HTTP statuses:
// validation errors (400), not-found errors (404) and wrapped internal
// errors (500).
package service

import (
	"errors"
	"fmt"
)

// ValidationError reports input rejected before any I/O happened.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// validationf builds a ValidationError from a format string.
func validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError reports a lookup that matched no row. StatusCode is
// always 404; it is carried on the error so controllers never have to
// guess the mapping.
type NotFoundError struct {
	Resource   string
	StatusCode int
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// notFound builds a NotFoundError for the named resource.
func notFound(resource string) error {
	return &NotFoundError{Resource: resource, StatusCode: 404}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
