package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/olumendes/capital5/internal/model"
)

// The goal, investment, and budget tables exist mainly so a backup restore
// has somewhere real to land; the queries stay deliberately simple.

// CreateGoal inserts a savings goal.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal model.Goal) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if goal.ID == "" {
		goal.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_amount, saved_amount, deadline)
		VALUES (?, ?, ?, ?, ?)`,
		goal.ID, goal.Name, goal.TargetAmount.StringFixed(2),
		goal.SavedAmount.StringFixed(2), formatDate(goal.Deadline))
	if err != nil {
		return nil, fmt.Errorf("failed to insert goal: %w", err)
	}
	return &goal, nil
}

// GetGoals returns all savings goals.
func (s *SQLiteStorage) GetGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, target_amount, saved_amount, deadline FROM goals ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var (
			goal                    model.Goal
			target, saved, deadline string
		)
		if err := rows.Scan(&goal.ID, &goal.Name, &target, &saved, &deadline); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		if goal.TargetAmount, err = decimal.NewFromString(target); err != nil {
			return nil, fmt.Errorf("invalid stored goal target %q: %w", target, err)
		}
		if goal.SavedAmount, err = decimal.NewFromString(saved); err != nil {
			return nil, fmt.Errorf("invalid stored goal saved amount %q: %w", saved, err)
		}
		goal.Deadline = parseDate(deadline)
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// CreateInvestment inserts an investment holding.
func (s *SQLiteStorage) CreateInvestment(ctx context.Context, inv model.Investment) (*model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO investments (id, name, kind, amount, current_value, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Name, inv.Kind, inv.Amount.StringFixed(2),
		inv.CurrentValue.StringFixed(2), formatDate(inv.PurchaseDate))
	if err != nil {
		return nil, fmt.Errorf("failed to insert investment: %w", err)
	}
	return &inv, nil
}

// GetInvestments returns all investment holdings.
func (s *SQLiteStorage) GetInvestments(ctx context.Context) ([]model.Investment, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, kind, amount, current_value, purchase_date FROM investments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query investments: %w", err)
	}
	defer rows.Close()

	var investments []model.Investment
	for rows.Next() {
		var (
			inv                   model.Investment
			amount, value, bought string
		)
		if err := rows.Scan(&inv.ID, &inv.Name, &inv.Kind, &amount, &value, &bought); err != nil {
			return nil, fmt.Errorf("failed to scan investment: %w", err)
		}
		if inv.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid stored investment amount %q: %w", amount, err)
		}
		if inv.CurrentValue, err = decimal.NewFromString(value); err != nil {
			return nil, fmt.Errorf("invalid stored investment value %q: %w", value, err)
		}
		inv.PurchaseDate = parseDate(bought)
		investments = append(investments, inv)
	}
	return investments, rows.Err()
}

// CreateBudgetCategory inserts a monthly spending limit.
func (s *SQLiteStorage) CreateBudgetCategory(ctx context.Context, bc model.BudgetCategory) (*model.BudgetCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if bc.ID == "" {
		bc.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_categories (id, category_id, spending_limit)
		VALUES (?, ?, ?)`,
		bc.ID, bc.CategoryID, bc.Limit.StringFixed(2))
	if err != nil {
		return nil, fmt.Errorf("failed to insert budget category: %w", err)
	}
	return &bc, nil
}

// GetBudgetCategories returns all budget categories.
func (s *SQLiteStorage) GetBudgetCategories(ctx context.Context) ([]model.BudgetCategory, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category_id, spending_limit FROM budget_categories`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget categories: %w", err)
	}
	defer rows.Close()

	var budgets []model.BudgetCategory
	for rows.Next() {
		var (
			bc    model.BudgetCategory
			limit string
		)
		if err := rows.Scan(&bc.ID, &bc.CategoryID, &limit); err != nil {
			return nil, fmt.Errorf("failed to scan budget category: %w", err)
		}
		if bc.Limit, err = decimal.NewFromString(limit); err != nil {
			return nil, fmt.Errorf("invalid stored budget limit %q: %w", limit, err)
		}
		budgets = append(budgets, bc)
	}
	return budgets, rows.Err()
}

// CreateBudgetExpense inserts a planned expense.
func (s *SQLiteStorage) CreateBudgetExpense(ctx context.Context, be model.BudgetExpense) (*model.BudgetExpense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if be.ID == "" {
		be.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budget_expenses (id, budget_category_id, description, amount, date)
		VALUES (?, ?, ?, ?, ?)`,
		be.ID, be.BudgetCategoryID, be.Description, be.Amount.StringFixed(2), formatDate(be.Date))
	if err != nil {
		return nil, fmt.Errorf("failed to insert budget expense: %w", err)
	}
	return &be, nil
}

// GetBudgetExpenses returns all planned expenses.
func (s *SQLiteStorage) GetBudgetExpenses(ctx context.Context) ([]model.BudgetExpense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, budget_category_id, description, amount, date FROM budget_expenses`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.BudgetExpense
	for rows.Next() {
		var (
			be           model.BudgetExpense
			amount, date string
		)
		if err := rows.Scan(&be.ID, &be.BudgetCategoryID, &be.Description, &amount, &date); err != nil {
			return nil, fmt.Errorf("failed to scan budget expense: %w", err)
		}
		if be.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid stored budget expense amount %q: %w", amount, err)
		}
		be.Date = parseDate(date)
		expenses = append(expenses, be)
	}
	return expenses, rows.Err()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
