package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target tracked alongside transactions. It exists here so
// the backup document can round-trip the full domain state.
type Goal struct {
	Deadline     time.Time       `json:"deadline"`
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
}

// Investment records a single holding snapshot.
type Investment struct {
	PurchaseDate time.Time       `json:"purchaseDate"`
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentValue decimal.Decimal `json:"currentValue"`
}

// BudgetCategory is a monthly spending limit for one category.
type BudgetCategory struct {
	ID         string          `json:"id"`
	CategoryID string          `json:"categoryId"`
	Limit      decimal.Decimal `json:"limit"`
}

// BudgetExpense is a planned expense inside a budget category.
type BudgetExpense struct {
	Date             time.Time       `json:"date"`
	ID               string          `json:"id"`
	BudgetCategoryID string          `json:"budgetCategoryId"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
}
