package constants

import (
	"errors"
	"fmt"
	"net/http"
)

// CodedError is an error that knows which HTTP status it maps to.
type CodedError struct {
	code int
	msg  string
}

func NewCodedError(code int, msg string) *CodedError {
	return &CodedError{code: code, msg: msg}
}

func (e *CodedError) Error() string {
	return e.msg
}

func (e *CodedError) Code() int {
	return e.code
}

var (
	ErrDBNotFound    = NewCodedError(http.StatusNotFound, "not found in db")
	ErrNotFound      = NewCodedError(http.StatusNotFound, "entity not found")
	ErrBadRequest    = NewCodedError(http.StatusBadRequest, "bad request")
	ErrRatioNotFound = NewCodedError(http.StatusUnprocessableEntity, "conversion ratio not found")
	ErrUnitMismatch  = NewCodedError(http.StatusBadRequest, "units are not convertible")
)

// StoreError is returned by the fact store when a query fails. Error()
// yields the store's own diagnostic text untouched.
type StoreError struct {
	Entity string
	Err    error
}

func NewStoreError(entity string, err error) *StoreError {
	return &StoreError{Entity: entity, Err: err}
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return "store error: " + e.Entity
	}
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NotFoundError means the requested entity id does not exist in its dimension.
type NotFoundError struct {
	Dimension string
	ID        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Dimension, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// RatioNotFoundError means no conversion ratio, vertical specific or global,
// converts From into To.
type RatioNotFoundError struct {
	VerticalID string
	From       string
	To         string
}

func (e *RatioNotFoundError) Error() string {
	if e.VerticalID == "" {
		return fmt.Sprintf("no conversion ratio %s -> %s", e.From, e.To)
	}
	return fmt.Sprintf("no conversion ratio %s -> %s for vertical %s", e.From, e.To, e.VerticalID)
}

func (e *RatioNotFoundError) Unwrap() error {
	return ErrRatioNotFound
}

// BadRequestf wraps ErrBadRequest with a formatted reason.
func BadRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrBadRequest, fmt.Sprintf(format, args...))
}

// IsStoreError reports whether err came out of the fact store.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
