package utils

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrPackageNotFound        = errors.New("package not found")
	ErrUnknownActionKind      = errors.New("unknown action kind")
	ErrInvalidGrant           = errors.New("grant amount must be positive")
	ErrInvalidDebit           = errors.New("debit amount must not be negative")
	ErrDatabaseError          = errors.New("database error")
	ErrPersistenceUnavailable = errors.New("credit store unavailable")
)

// InsufficientBalanceError is the routine "declined" outcome of a debit or
// authorization. It carries the shortfall so the UI can render a purchase
// prompt, and must stay distinguishable from infrastructure failures.
type InsufficientBalanceError struct {
	Required  int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: required %d, available %d", e.Required, e.Available)
}

func IsInsufficientBalance(err error) (*InsufficientBalanceError, bool) {
	var ib *InsufficientBalanceError
	if errors.As(err, &ib) {
		return ib, true
	}
	return nil, false
}
