package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound covers both lookup strategies missing.
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned when a status change is not allowed
	// from the order's current state.
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// ValidationError rejects an order before anything is persisted or any
// network call happens: empty cart, unknown product, product out of stock.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "order validation failed: " + e.Reason
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is an order validation rejection.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
