package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error classes. Every concrete error below unwraps to one of them.
var (
	ErrNotFound             = errors.New("not found")
	ErrFieldValidation      = errors.New("field validation failed")
	ErrBoundsViolation      = errors.New("tank stock out of bounds")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrReferentialIntegrity = errors.New("referential integrity violation")
)

// FieldError reports a rejected field value.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrFieldValidation
}

// BoundsError reports a tank whose recomputed stock left [0, capacity].
type BoundsError struct {
	Tank     string
	Stock    decimal.Decimal
	Capacity decimal.Decimal
}

func (e *BoundsError) Error() string {
	if e.Stock.IsNegative() {
		return fmt.Sprintf("stock of tank %q cannot be negative (stock: %sL, capacity: %sL)",
			e.Tank, e.Stock.StringFixed(2), e.Capacity.StringFixed(2))
	}
	return fmt.Sprintf("stock of tank %q exceeds its capacity (stock: %sL, capacity: %sL)",
		e.Tank, e.Stock.StringFixed(2), e.Capacity.StringFixed(2))
}

func (e *BoundsError) Unwrap() error {
	return ErrBoundsViolation
}

// TransitionError reports a refueling status change the state machine refuses.
type TransitionError struct {
	From   Status
	To     Status
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s (current status: %s)", e.Reason, e.From)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func required(field string) error {
	return &FieldError{Field: field, Message: "is required"}
}

func mustBePositive(field string) error {
	return &FieldError{Field: field, Message: "must be greater than zero"}
}
