// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of money movement.
type TransactionType string

const (
	// TypeIncome marks money coming in.
	TypeIncome TransactionType = "income"
	// TypeExpense marks money going out.
	TypeExpense TransactionType = "expense"
)

// TransactionSource indicates where a transaction record originated.
type TransactionSource string

const (
	// SourceManual marks transactions entered by hand.
	SourceManual TransactionSource = "manual"
	// SourceAggregator marks transactions fetched from a bank-aggregator API.
	SourceAggregator TransactionSource = "aggregator"
	// SourceImport marks transactions parsed from an imported file.
	SourceImport TransactionSource = "import"
)

// SourceDetails carries optional provenance for an imported transaction.
type SourceDetails struct {
	FileName  string `json:"fileName,omitempty"`
	BankName  string `json:"bankName,omitempty"`
	AccountID string `json:"accountId,omitempty"`
}

// Transaction is the canonical record every ingestion source normalizes into.
// Amount is always non-negative; direction lives in Type.
type Transaction struct {
	Date          time.Time         `json:"date"`
	ID            string            `json:"id"`
	Description   string            `json:"description"`
	CategoryID    string            `json:"category,omitempty"`
	Type          TransactionType   `json:"type"`
	Source        TransactionSource `json:"source"`
	SourceDetails *SourceDetails    `json:"sourceDetails,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Amount        decimal.Decimal   `json:"amount"`
}

// DateLayout is the calendar-day format used everywhere a date crosses a boundary.
const DateLayout = "2006-01-02"

// GenerateHash creates a stable hash for storage-level duplicate rejection.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%s:%s:%s",
		t.Date.Format(DateLayout),
		t.Amount.StringFixed(2),
		t.Description,
		t.Type)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// SignedAmount returns the amount negated for expenses, used for net totals.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Validate checks the invariants every committed record must satisfy.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive, got %s", t.Amount)
	}
	if t.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return fmt.Errorf("invalid transaction type: %q", t.Type)
	}
	return nil
}
