package types

import (
	"errors"
	"fmt"
)

// Validation failures are rejected before anything is persisted.
var (
	ErrInvalidDuration       = errors.New("validity must be 7, 15 or 30 days")
	ErrSameSourceDestination = errors.New("source and destination must differ")
	ErrInvalidTimeSlot       = errors.New("time slot is not a bookable departure slot")
	ErrInvalidPassengerCount = errors.New("passenger count must be between 1 and 10")
	ErrActivePassExists      = errors.New("an active pass already exists for this user")
	ErrMissingPaymentRef     = errors.New("payment reference is required")
)

// StorageError wraps a database failure. Controllers surface it as a generic
// failure message; the wrapped error goes to the log only.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError wraps err with the failing operation name.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// PaymentError aborts pass and ticket creation entirely; no record is written.
type PaymentError struct {
	Err error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment: %v", e.Err)
}

func (e *PaymentError) Unwrap() error { return e.Err }
