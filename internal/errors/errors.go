package gerr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidInput is returned for malformed model/supplier/hierarchy input,
	// always before any sequence is allocated.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyInput is returned when a scanned or typed code is empty or whitespace.
	ErrEmptyInput = errors.New("empty input")
	// ErrDuplicateCode is returned when a registry code already exists.
	ErrDuplicateCode = errors.New("duplicate code")
	// ErrAllocationFailed is returned when the counter store fails. Safe to retry.
	ErrAllocationFailed = errors.New("sequence allocation failed")
	// ErrSequenceExhausted is returned when a bucket reached the largest value its field can hold.
	ErrSequenceExhausted = errors.New("sequence exhausted")
	ErrMalformedBarcode  = errors.New("malformed barcode")
	ErrMalformedSku      = errors.New("malformed sku")
	// ErrCodeNotRegistered is returned for structurally valid codes missing from a registry.
	ErrCodeNotRegistered = errors.New("code not registered")
	ErrNotFound          = errors.New("not found")
	// ErrConfirmationRequired guards destructive administrative actions.
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrTooManyRequests      = errors.New("too many requests")
	// ErrBusy is returned when a shared write lock could not be obtained in time. Safe to retry.
	ErrBusy = errors.New("resource busy")
)

// FieldError names the field that failed and wraps one of the sentinels above.
type FieldError struct {
	Kind  error
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Msg)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func newFieldError(kind error, field, format string, args ...any) error {
	return &FieldError{
		Kind:  kind,
		Field: field,
		Msg:   fmt.Sprintf(format, args...),
	}
}

func InvalidInput(field, format string, args ...any) error {
	return newFieldError(ErrInvalidInput, field, format, args...)
}

func MalformedBarcode(field, format string, args ...any) error {
	return newFieldError(ErrMalformedBarcode, field, format, args...)
}

func MalformedSku(field, format string, args ...any) error {
	return newFieldError(ErrMalformedSku, field, format, args...)
}

func NotRegistered(field, format string, args ...any) error {
	return newFieldError(ErrCodeNotRegistered, field, format, args...)
}

func Duplicate(field, format string, args ...any) error {
	return newFieldError(ErrDuplicateCode, field, format, args...)
}

// Field returns the failing field of err, or "" when err carries none.
func Field(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

// HTTPStatus maps the taxonomy onto HTTP status codes.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrEmptyInput),
		errors.Is(err, ErrMalformedBarcode),
		errors.Is(err, ErrMalformedSku),
		errors.Is(err, ErrConfirmationRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateCode):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrCodeNotRegistered):
		return http.StatusNotFound
	case errors.Is(err, ErrSequenceExhausted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrAllocationFailed), errors.Is(err, ErrBusy):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether the caller may retry the same request unchanged.
func Retryable(err error) bool {
	return errors.Is(err, ErrAllocationFailed) || errors.Is(err, ErrBusy)
}
