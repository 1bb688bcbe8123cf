// Package errs holds the error taxonomy shared by the write guard, the query
// engine and the HTTP gateway.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrQuotaExceeded    = errors.New("quota exceeded")
	ErrDuplicateComment = errors.New("duplicate comment")
)

// ValidationError is returned for malformed or missing input. The caller can
// always recover by resubmitting corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StorageError wraps any failure of the underlying store. It is opaque to
// clients and may be retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [%s]: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotFoundf wraps ErrNotFound with a description of the missing entity.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// IsTaxonomy reports whether err already carries one of the domain
// outcomes, so it must not be wrapped into a StorageError.
func IsTaxonomy(err error) bool {
	var validationErr *ValidationError
	var storageErr *StorageError
	return errors.As(err, &validationErr) ||
		errors.As(err, &storageErr) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrQuotaExceeded) ||
		errors.Is(err, ErrDuplicateComment)
}

// Storage wraps err into a StorageError unless it is nil or already part of
// the taxonomy.
func Storage(op string, err error) error {
	if err == nil || IsTaxonomy(err) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// HTTPStatus maps err to the status code the gateway responds with.
func HTTPStatus(err error) int {
	var validationErr *ValidationError
	var storageErr *StorageError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateComment):
		return http.StatusConflict
	case errors.Is(err, ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.As(err, &storageErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the user-displayable text for err. Storage failures are
// not described to clients.
func PublicMessage(err error) string {
	var storageErr *StorageError
	switch {
	case errors.As(err, &storageErr):
		return "storage unavailable, try again"
	case IsTaxonomy(err):
		return err.Error()
	default:
		return "internal server error"
	}
}
