// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Structural errors: the whole batch is rejected.
	ErrUnsupportedFormat   = errors.New("unsupported file format")
	ErrFileTooShort        = errors.New("file must contain a header and at least one data row")
	ErrUnreadableStatement = errors.New("statement text is empty or unreadable")
	ErrNoTransactions      = errors.New("no transactions recognized")
	ErrInvalidBackup       = errors.New("invalid backup document")

	// Registry errors.
	ErrFormatNotFound = errors.New("format not found")

	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Aggregator errors.
	ErrAggregatorConnection = errors.New("aggregator connection failed")
	ErrAggregatorRateLimit  = errors.New("aggregator rate limit exceeded")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsStructural reports whether an error rejects a whole ingestion batch, as
// opposed to a row-level failure the pipeline accumulates and continues past.
func IsStructural(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrFileTooShort) ||
		errors.Is(err, ErrUnreadableStatement) ||
		errors.Is(err, ErrNoTransactions) ||
		errors.Is(err, ErrInvalidBackup)
}
