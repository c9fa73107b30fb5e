package service

import (
	"errors"
	"fmt"
	"strings"

	"posledger-service/internal/model"

	"gorm.io/gorm"
)

// Sentinel errors for common failure scenarios.
var (
	ErrNotFound   = errors.New("ledger: not found")
	ErrValidation = errors.New("ledger: invalid input")
	ErrConflict   = errors.New("ledger: conflict")
)

// ValidationError wraps ErrValidation with a caller-facing message
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "ledger: " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func validationErr(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError wraps ErrNotFound naming the missing entity
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("ledger: %s not found: %d", e.Entity, e.ID)
	}
	return fmt.Sprintf("ledger: %s not found", e.Entity)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// InsufficientStockError reports a stock shortfall with enough detail for
// user display.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("ledger: insufficient stock for %q: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// QuotaExceededError reports a plan limit hit, naming the limit and plan
type QuotaExceededError struct {
	Resource string
	Limit    int
	Plan     model.SubscriptionPlan
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("ledger: %s limit (%d) reached for %q plan", e.Resource, e.Limit, e.Plan)
}

// isUniqueViolation reports whether err is a uniqueness-constraint failure.
// The string checks cover drivers that predate gorm's error translation.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}
