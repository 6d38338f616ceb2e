package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates the request clashes with current state: a used receipt number,
// an overlapping booklet range, an out-of-sequence close or a closed period.
var ErrConflict = errors.New("conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = fmt.Errorf("%w: resource already exists", ErrConflict)

// ErrInsufficientBalance indicates a debit or cheque clearance exceeds the cash or bank
// balance available in the ledger head.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrInvariantViolation indicates amounts that do not add up to their declared totals.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrForbidden indicates the actor may not perform the action (e.g. an override without admin rights).
var ErrForbidden = errors.New("forbidden")

// Booklet allocator outcomes.
var (
	ErrReceiptNumberUsed = fmt.Errorf("%w: receipt number already used", ErrConflict)
	ErrBookletExhausted  = fmt.Errorf("%w: booklet has no pages left", ErrConflict)
)

// Period outcomes.
var (
	ErrPeriodClosed        = fmt.Errorf("%w: period already closed", ErrConflict)
	ErrPeriodOutOfSequence = fmt.Errorf("%w: period closed out of sequence", ErrConflict)
	ErrPeriodNotOpen       = fmt.Errorf("%w: date outside the open period", ErrConflict)
)

// ErrRequestInFlight is returned when a request id is already being processed.
var ErrRequestInFlight = fmt.Errorf("%w: request with this id is in progress", ErrConflict)

// AppError wraps an unexpected failure with an HTTP-ish status code.
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

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError wraps ErrNotFound with the kind and id of the missing entity.
func NewNotFoundError(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

// NewValidationError wraps ErrValidation with a formatted message.
func NewValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NewInvariantViolation wraps ErrInvariantViolation with a formatted message.
func NewInvariantViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}
