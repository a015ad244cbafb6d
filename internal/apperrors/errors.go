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

// ErrConflict indicates that a conditional write lost against a concurrent modification.
var ErrConflict = errors.New("resource was modified concurrently")

// ErrForbidden indicates that the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates a missing or invalid caller identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternal is returned when the failure is not meaningful to the caller.
var ErrInternal = errors.New("internal error")

// Store errors.
var (
	ErrStoreUnavailable = errors.New("document store unavailable")
	ErrStoreRejected    = errors.New("document store rejected the request")
)

// Ledger errors. Each wraps the broader category so handlers can classify with errors.Is.
var (
	ErrInvalidAmount           = fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	ErrInvalidDate             = fmt.Errorf("%w: transaction date is missing or in the future", ErrValidation)
	ErrInvalidReturnDate       = fmt.Errorf("%w: expected return date is earlier than the transaction date", ErrValidation)
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrCreditLimitExceeded     = errors.New("credit limit exceeded")
	ErrWalletNotFound          = fmt.Errorf("wallet not found: %w", ErrNotFound)
	ErrWalletOwnershipMismatch = fmt.Errorf("wallet belongs to another user: %w", ErrForbidden)
	ErrTransactionNotFound     = fmt.Errorf("transaction not found: %w", ErrNotFound)
)

// ErrPartialFailure marks a mutation whose compensation could not be completed.
var ErrPartialFailure = errors.New("partial failure: compensation did not complete")

// AppError carries an HTTP-ish status next to the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns a stable machine readable code for err.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPartialFailure):
		return "PARTIAL_FAILURE"
	case errors.Is(err, ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ErrInvalidDate):
		return "INVALID_DATE"
	case errors.Is(err, ErrInvalidReturnDate):
		return "INVALID_RETURN_DATE"
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrCreditLimitExceeded):
		return "CREDIT_LIMIT_EXCEEDED"
	case errors.Is(err, ErrWalletNotFound):
		return "WALLET_NOT_FOUND"
	case errors.Is(err, ErrWalletOwnershipMismatch):
		return "WALLET_OWNERSHIP_MISMATCH"
	case errors.Is(err, ErrTransactionNotFound):
		return "TRANSACTION_NOT_FOUND"
	case errors.Is(err, ErrValidation):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrStoreUnavailable):
		return "STORE_UNAVAILABLE"
	case errors.Is(err, ErrStoreRejected):
		return "STORE_REJECTED"
	default:
		return "INTERNAL"
	}
}
