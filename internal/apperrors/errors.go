package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates that a conversion amount was not parseable as a
// number or was negative.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrCurrencyNotFound indicates that a supplied currency code is not known to
// the currency directory.
var ErrCurrencyNotFound = errors.New("currency not found")

// ErrRateNotFound indicates that no direct, inverse or triangulated exchange
// rate exists between two currencies as of the requested date.
var ErrRateNotFound = errors.New("exchange rate not found")

// ErrAPIRequestFailed indicates a transport-level failure contacting the
// upstream rate provider.
var ErrAPIRequestFailed = errors.New("api request failed")

// ErrAPIInvalidResponse indicates the upstream provider responded with a
// payload that violates the expected shape.
var ErrAPIInvalidResponse = errors.New("invalid api response")

// AppError carries a status code alongside a message and an optional wrapped
// cause so handlers can map failures without string matching.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError creates an AppError that matches errors.Is(err, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
