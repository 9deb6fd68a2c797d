// Package apperrors defines common application-level errors.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound indicates that a requested resource could not be found.
	ErrNotFound = errors.New("requested resource not found")

	// ErrValidation indicates that input data failed validation rules.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicate indicates an attempt to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")

	// ErrConflict indicates the operation conflicts with the current state of the
	// resource, e.g. reversing an entry that is already reversed.
	ErrConflict = errors.New("operation conflicts with resource state")

	// ErrUnbalanced indicates that a journal entry's debit and credit totals
	// differ by more than the accepted tolerance.
	ErrUnbalanced = errors.New("journal entry is not balanced")

	// ErrNoOpenPeriod indicates that no fiscal period covers the entry date.
	ErrNoOpenPeriod = errors.New("no fiscal period covers this date")

	// ErrClosedPeriod indicates the fiscal period for the date is not open.
	ErrClosedPeriod = errors.New("fiscal period is not open")

	// ErrInvalidState indicates the operation is not allowed in the resource's
	// current lifecycle state, e.g. editing a posted journal entry.
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrForbidden indicates the user lacks permission for the operation.
	ErrForbidden = errors.New("operation not permitted")

	// ErrUnauthorized indicates missing or invalid authentication.
	ErrUnauthorized = errors.New("authentication required")

	// ErrRefreshTokenExpired indicates the presented refresh token has expired.
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// ErrSettlementFailed indicates a tax return was finalized but the
	// settlement journal entry could not be created.
	ErrSettlementFailed = errors.New("settlement entry creation failed")

	// ErrInternal indicates an unexpected internal failure.
	ErrInternal = errors.New("internal error")
)

// AppError couples an HTTP status code with an underlying error so handlers
// can map repository and service failures onto responses without guessing.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped error for errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with an explicit status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewValidationFailedError creates an AppError wrapping ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewForbiddenError creates an AppError wrapping ErrForbidden.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

// NewBadRequestError creates an AppError wrapping ErrValidation.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewUnauthorizedError creates an AppError wrapping ErrUnauthorized.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

// NewInternalServerError creates an AppError wrapping ErrInternal.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: ErrInternal}
}

// NewGatewayTimeoutError creates an AppError for upstream service failures.
func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, Message: message, Err: ErrInternal}
}

// UnbalancedEntryError reports a failed balance check together with the two
// totals so callers can show the discrepancy.
type UnbalancedEntryError struct {
	TotalDebits  decimal.Decimal
	TotalCredits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("journal entry is not balanced: debits %s, credits %s",
		e.TotalDebits.StringFixed(2), e.TotalCredits.StringFixed(2))
}

// Unwrap makes errors.Is(err, ErrUnbalanced) hold for this error.
func (e *UnbalancedEntryError) Unwrap() error {
	return ErrUnbalanced
}

// NewUnbalancedEntryError creates an UnbalancedEntryError from the two totals.
func NewUnbalancedEntryError(totalDebits, totalCredits decimal.Decimal) *UnbalancedEntryError {
	return &UnbalancedEntryError{TotalDebits: totalDebits, TotalCredits: totalCredits}
}

// ValidationError aggregates the individual problems found while validating
// a request so they can all be reported in one response.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Problems, "; "))
}

// Unwrap makes errors.Is(err, ErrValidation) hold for this error.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError from one or more problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}
