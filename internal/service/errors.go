package service

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields      = errors.New("missing fields")
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidPrice       = errors.New("invalid price")
	ErrQuotaExceeded      = errors.New("category quota exceeded")
	ErrMissingID          = errors.New("missing id")
	ErrInvalidSession     = errors.New("invalid session")
	ErrDatabase           = errors.New("database error")
)

// QuotaError reports which category is full and at what limit.
type QuotaError struct {
	Category string
	Limit    int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("Category %s already has %d products", e.Category, e.Limit)
}

func (e *QuotaError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

func dbError(err error) error {
	return fmt.Errorf("%w: %w", ErrDatabase, err)
}
