package service

import (
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidInput is the parent of every rejected-input error.
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDate     = fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	ErrInvalidDuration = fmt.Errorf("%w: invalid duration", ErrInvalidInput)

	// ErrStorage wraps any failure reported by the record store.
	ErrStorage = errors.New("storage failure")
)

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
