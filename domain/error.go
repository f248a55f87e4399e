// Package domain defines error types for the retail store.
package domain

import (
	"errors"
	"fmt"
)

// Causes carried by a ValidationError. Use errors.Is to tell them apart.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnknownProduct    = errors.New("unknown product")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNoDiscountMatch   = errors.New("no discount match")
)

// ValidationError is returned whenever a caller breaks a domain rule:
// malformed product fields, bad amounts, unknown names, short stock,
// out-of-range discounts.
type ValidationError struct {
	Field  string
	Reason string
	Value  interface{}
	Err    error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s (value=%v)", e.Field, e.Reason, e.Value)
}

// Is allows proper error type checking with errors.Is()
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// Unwrap exposes the cause so errors.Is(err, ErrInsufficientStock) works.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ValidationError with ErrInvalidInput as cause
func NewValidationError(field, reason string, value interface{}) error {
	return &ValidationError{
		Field:  field,
		Reason: reason,
		Value:  value,
		Err:    ErrInvalidInput,
	}
}

// newCausedError creates a ValidationError with a specific cause
func newCausedError(cause error, field, reason string, value interface{}) error {
	return &ValidationError{
		Field:  field,
		Reason: reason,
		Value:  value,
		Err:    cause,
	}
}

// NewUnknownProductError reports a product name missing from the catalog
func NewUnknownProductError(name string) error {
	return newCausedError(ErrUnknownProduct, "name", "product is not in stock", name)
}

// NewInsufficientStockError reports a sale larger than the quantity on hand
func NewInsufficientStockError(name string, available, requested int) error {
	return newCausedError(ErrInsufficientStock, "amount",
		fmt.Sprintf("not enough %q in stock: available %d, requested %d", name, available, requested),
		requested)
}

// NewNoDiscountMatchError reports a discount target that matched nothing
func NewNoDiscountMatchError(identifier string, by IdentifierType) error {
	return newCausedError(ErrNoDiscountMatch, "identifier",
		fmt.Sprintf("no products match %s %q", by, identifier), identifier)
}

// IsValidationError checks if an error is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
