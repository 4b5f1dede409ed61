package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies application errors.
type ErrorCode string

const (
	CodeNotFound            ErrorCode = "not_found"
	CodeInvalidAmount       ErrorCode = "invalid_amount"
	CodeInsufficientBalance ErrorCode = "insufficient_balance"
	CodeValidation          ErrorCode = "validation"
	CodeStoreFailure        ErrorCode = "store_failure"
)

// Error is the typed application error returned by the posting core.
// The message is meant to be shown to the user verbatim.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches by code against the bare sentinels (no message) and by code and
// message against specific ones.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// StatusCode returns the HTTP-style status for the error.
func (e *Error) StatusCode() int {
	switch e.Code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidAmount, CodeInsufficientBalance, CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var (
	// Error classes
	ErrNotFound            = &Error{Code: CodeNotFound}
	ErrInvalidAmount       = &Error{Code: CodeInvalidAmount}
	ErrInsufficientBalance = &Error{Code: CodeInsufficientBalance}
	ErrValidation          = &Error{Code: CodeValidation}
	ErrStoreFailure        = &Error{Code: CodeStoreFailure}

	// Missing references
	ErrAccountNotFound             = &Error{Code: CodeNotFound, Message: "account not found"}
	ErrClientNotFound              = &Error{Code: CodeNotFound, Message: "client not found"}
	ErrVendorNotFound              = &Error{Code: CodeNotFound, Message: "vendor not found"}
	ErrAdvanceReturnNotFound       = &Error{Code: CodeNotFound, Message: "advance return not found"}
	ErrBalanceTransferNotFound     = &Error{Code: CodeNotFound, Message: "balance transfer not found"}
	ErrExpenseNotFound             = &Error{Code: CodeNotFound, Message: "expense not found"}
	ErrInvestmentNotFound          = &Error{Code: CodeNotFound, Message: "investment not found"}
	ErrVendorAdvanceReturnNotFound = &Error{Code: CodeNotFound, Message: "vendor advance return not found"}
	ErrClientPaymentNotFound       = &Error{Code: CodeNotFound, Message: "client payment not found"}

	// Validation
	ErrSameAccount    = &Error{Code: CodeValidation, Message: "cannot transfer to the same account"}
	ErrNegativeCharge = &Error{Code: CodeValidation, Message: "transfer charge cannot be negative"}
	ErrNoExpenseItems = &Error{Code: CodeValidation, Message: "expense requires at least one item"}
	ErrMissingCompany = &Error{Code: CodeValidation, Message: "company id is required"}
)

// NewInvalidAmount returns an InvalidAmount error with a specific message.
func NewInvalidAmount(format string, args ...any) error {
	return &Error{Code: CodeInvalidAmount, Message: fmt.Sprintf(format, args...)}
}

// NewInsufficientBalance returns an InsufficientBalance error with a specific message.
func NewInsufficientBalance(format string, args ...any) error {
	return &Error{Code: CodeInsufficientBalance, Message: fmt.Sprintf(format, args...)}
}

// NewValidation returns a Validation error with a specific message.
func NewValidation(format string, args ...any) error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// StoreFailure wraps an unexpected store or driver fault.
func StoreFailure(err error) error {
	return &Error{Code: CodeStoreFailure, Message: "store failure", Err: err}
}

// AsError converts any error into a *Error, treating unknown errors as store failures.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return StoreFailure(err).(*Error)
}
