package checkout

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart aborts a checkout of a cart with no entries.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNothingOwed aborts a checkout whose entries are all free.
	ErrNothingOwed = errors.New("nothing is owed for the cart")

	// ErrDeclined aborts a checkout the operator did not confirm.
	ErrDeclined = errors.New("purchase not confirmed")
)

// InputFormatError reports a payment entry that is not a non-negative
// decimal amount.
type InputFormatError struct {
	Input  string
	Reason string
}

// Error implements the error interface.
func (e *InputFormatError) Error() string {
	return fmt.Sprintf("invalid payment amount %q: %s", e.Input, e.Reason)
}

// InsufficientPaymentError reports a payment below the sales total.
type InsufficientPaymentError struct {
	Total decimal.Decimal
	Paid  decimal.Decimal
}

// Error implements the error interface.
func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("payment %s is below total %s", e.Paid.StringFixed(2), e.Total.StringFixed(2))
}

// Shortfall is the amount still missing.
func (e *InsufficientPaymentError) Shortfall() decimal.Decimal {
	return e.Total.Sub(e.Paid)
}

// PersistenceError reports a sale whose receipt could not be saved. The sale
// is not completed and the cart is kept.
type PersistenceError struct {
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("receipt could not be saved: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error { return e.Err }
