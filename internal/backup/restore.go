package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/olumendes/capital5/internal/model"
	"github.com/olumendes/capital5/internal/service"
)

// Stores groups the domain collaborators restore inserts through.
type Stores struct {
	Transactions service.TransactionStore
	Categories   service.CategoryStore
	Goals        service.GoalStore
	Investments  service.InvestmentStore
	Budgets      service.BudgetStore
}

// ItemError records one entry that failed domain validation or insertion.
type ItemError struct {
	Collection string `json:"collection"`
	Reason     string `json:"reason"`
	Index      int    `json:"index"`
}

func (e ItemError) Error() string {
	return fmt.Sprintf("%s[%d]: %s", e.Collection, e.Index, e.Reason)
}

// Result reports how much of a document was recovered.
type Result struct {
	ItemErrors   []ItemError
	ItemsApplied int
}

// Restore re-creates every item of a decoded document through its store.
// Categories go first so restored transactions can reference them. A failing
// item never stops the remaining items or collections.
func Restore(ctx context.Context, env *Envelope, stores Stores) (*Result, error) {
	result := &Result{}

	restoreCollection(ctx, result, "categories", env.Data.Categories, func(ctx context.Context, raw json.RawMessage) error {
		var cat model.Category
		if err := json.Unmarshal(raw, &cat); err != nil {
			return err
		}
		if cat.ID == "" || cat.Name == "" {
			return fmt.Errorf("category requires id and name")
		}
		_, err := stores.Categories.CreateCategory(ctx, cat)
		return err
	})

	restoreCollection(ctx, result, "transactions", env.Data.Transactions, func(ctx context.Context, raw json.RawMessage) error {
		var txn model.Transaction
		if err := json.Unmarshal(raw, &txn); err != nil {
			return err
		}
		if err := txn.Validate(); err != nil {
			return err
		}
		_, err := stores.Transactions.CreateTransaction(ctx, txn)
		return err
	})

	restoreCollection(ctx, result, "goals", env.Data.Goals, func(ctx context.Context, raw json.RawMessage) error {
		var goal model.Goal
		if err := json.Unmarshal(raw, &goal); err != nil {
			return err
		}
		if goal.Name == "" {
			return fmt.Errorf("goal requires a name")
		}
		_, err := stores.Goals.CreateGoal(ctx, goal)
		return err
	})

	restoreCollection(ctx, result, "investments", env.Data.Investments, func(ctx context.Context, raw json.RawMessage) error {
		var inv model.Investment
		if err := json.Unmarshal(raw, &inv); err != nil {
			return err
		}
		if inv.Name == "" {
			return fmt.Errorf("investment requires a name")
		}
		_, err := stores.Investments.CreateInvestment(ctx, inv)
		return err
	})

	restoreCollection(ctx, result, "budgetCategories", env.Data.BudgetCategories, func(ctx context.Context, raw json.RawMessage) error {
		var bc model.BudgetCategory
		if err := json.Unmarshal(raw, &bc); err != nil {
			return err
		}
		if bc.CategoryID == "" {
			return fmt.Errorf("budget category requires a category id")
		}
		_, err := stores.Budgets.CreateBudgetCategory(ctx, bc)
		return err
	})

	restoreCollection(ctx, result, "budgetExpenses", env.Data.BudgetExpenses, func(ctx context.Context, raw json.RawMessage) error {
		var be model.BudgetExpense
		if err := json.Unmarshal(raw, &be); err != nil {
			return err
		}
		if be.BudgetCategoryID == "" {
			return fmt.Errorf("budget expense requires a budget category id")
		}
		_, err := stores.Budgets.CreateBudgetExpense(ctx, be)
		return err
	})

	slog.Info("backup restore finished",
		"applied", result.ItemsApplied,
		"errors", len(result.ItemErrors))

	return result, nil
}

func restoreCollection(ctx context.Context, result *Result, name string, items []json.RawMessage, apply func(context.Context, json.RawMessage) error) {
	for i, raw := range items {
		if err := apply(ctx, raw); err != nil {
			result.ItemErrors = append(result.ItemErrors, ItemError{
				Collection: name,
				Index:      i,
				Reason:     err.Error(),
			})
			continue
		}
		result.ItemsApplied++
	}
}
