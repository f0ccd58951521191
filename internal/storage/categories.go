package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

// GetCategories returns all categories, defaults first.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon, color, type, is_default
		FROM categories
		ORDER BY is_default DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetCategoryByID returns a category, or nil when absent.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var (
		cat       model.Category
		catType   string
		isDefault int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, icon, color, type, is_default
		FROM categories WHERE id = ?`, id).
		Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color, &catType, &isDefault)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	cat.Type = model.TransactionType(catType)
	cat.IsDefault = isDefault == 1
	return &cat, nil
}

// CreateCategory appends a user-defined category. An id collision with an
// existing category is treated as already-present and returns the stored row.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category.ID, "category.ID"); err != nil {
		return nil, err
	}
	if err := validateString(category.Name, "category.Name"); err != nil {
		return nil, err
	}
	if category.Type != model.TypeIncome && category.Type != model.TypeExpense {
		return nil, fmt.Errorf("invalid category type: %q", category.Type)
	}

	existing, err := s.GetCategoryByID(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	isDefault := 0
	if category.IsDefault {
		isDefault = 1
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, icon, color, type, is_default)
		VALUES (?, ?, ?, ?, ?, ?)`,
		category.ID, category.Name, category.Icon, category.Color, string(category.Type), isDefault)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}

	slog.Debug("created category", "id", category.ID, "type", category.Type)
	return &category, nil
}

// DeleteCategory removes a user-defined category. Defaults and categories
// still referenced by transactions are refused.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	cat, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: category %q", common.ErrNotFound, id)
	}
	if cat.IsDefault {
		return fmt.Errorf("cannot delete default category %q", id)
	}

	count, err := s.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("cannot delete category %q: %d transactions reference it", id, count)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

func scanCategory(rows *sql.Rows) (*model.Category, error) {
	var (
		cat       model.Category
		catType   string
		isDefault int
	)
	if err := rows.Scan(&cat.ID, &cat.Name, &cat.Icon, &cat.Color, &catType, &isDefault); err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	cat.Type = model.TransactionType(catType)
	cat.IsDefault = isDefault == 1
	return &cat, nil
}
