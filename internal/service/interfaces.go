// Package service defines the contracts between the ingestion engine and its
// boundary collaborators: the stores it commits into, the document text layer
// it reads statements from, and the aggregator it syncs against.
package service

import (
	"context"
	"time"

	"github.com/olumendes/capital5/internal/model"
)

// TransactionStore is the commit target for ingested transactions.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error)
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
}

// CategoryStore exposes the category taxonomy. The classifier resolves ids
// against it and commit-time validation rejects type mismatches through it.
type CategoryStore interface {
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	CreateCategory(ctx context.Context, category model.Category) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// GoalStore persists savings goals, used by backup restore.
type GoalStore interface {
	CreateGoal(ctx context.Context, goal model.Goal) (*model.Goal, error)
	GetGoals(ctx context.Context) ([]model.Goal, error)
}

// InvestmentStore persists investment holdings, used by backup restore.
type InvestmentStore interface {
	CreateInvestment(ctx context.Context, inv model.Investment) (*model.Investment, error)
	GetInvestments(ctx context.Context) ([]model.Investment, error)
}

// BudgetStore persists budget categories and their planned expenses.
type BudgetStore interface {
	CreateBudgetCategory(ctx context.Context, bc model.BudgetCategory) (*model.BudgetCategory, error)
	GetBudgetCategories(ctx context.Context) ([]model.BudgetCategory, error)
	CreateBudgetExpense(ctx context.Context, be model.BudgetExpense) (*model.BudgetExpense, error)
	GetBudgetExpenses(ctx context.Context) ([]model.BudgetExpense, error)
}

// PageTextSource supplies already-extracted plain text for each page of a
// statement document. OCR and PDF structure parsing happen upstream.
type PageTextSource interface {
	PageCount() int
	PageText(ctx context.Context, page int) (string, error)
}

// TransactionFetcher pulls transactions from a bank-aggregator API.
type TransactionFetcher interface {
	GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
}
