package wallet

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrUserNotFound  = errors.New("user not found")
	ErrItemNotFound  = errors.New("item not found")
)

// InsufficientBalanceError carries the figures the client needs to
// display why a debit was refused.
type InsufficientBalanceError struct {
	Required float64
	Balance  float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %.2f, have %.2f", e.Required, e.Balance)
}
