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

// ErrNegativeOrZeroAmount indicates a transaction amount of zero or less.
var ErrNegativeOrZeroAmount = errors.New("amount cannot be negative or zero")

// ErrInsufficientFunds indicates a withdrawal amount exceeding the account balance.
var ErrInsufficientFunds = errors.New("insufficient funds for transaction")

// ErrSameAccountTransfer indicates a transfer where source and destination are the same account.
var ErrSameAccountTransfer = errors.New("cannot transfer to the same account")

// AppError carries an adapter-level failure with a status-like code and an
// operator-facing message, wrapping the underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
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
