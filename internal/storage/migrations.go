package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olumendes/capital5/internal/model"
)

// ExpectedSchemaVersion is the latest schema version the application expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					hash TEXT UNIQUE NOT NULL,
					date TEXT NOT NULL,
					description TEXT NOT NULL,
					amount TEXT NOT NULL,
					type TEXT NOT NULL,
					category_id TEXT,
					source TEXT NOT NULL,
					source_file TEXT,
					source_bank TEXT,
					source_account TEXT,
					tags TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
				`CREATE INDEX idx_transactions_hash ON transactions(hash)`,

				`CREATE TABLE IF NOT EXISTS categories (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					icon TEXT,
					color TEXT,
					type TEXT NOT NULL,
					is_default INTEGER DEFAULT 0
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Goals, investments, and budget tables for backup restore",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS goals (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					target_amount TEXT NOT NULL,
					saved_amount TEXT NOT NULL,
					deadline TEXT
				)`,
				`CREATE TABLE IF NOT EXISTS investments (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					kind TEXT,
					amount TEXT NOT NULL,
					current_value TEXT NOT NULL,
					purchase_date TEXT
				)`,
				`CREATE TABLE IF NOT EXISTS budget_categories (
					id TEXT PRIMARY KEY,
					category_id TEXT NOT NULL,
					spending_limit TEXT NOT NULL
				)`,
				`CREATE TABLE IF NOT EXISTS budget_expenses (
					id TEXT PRIMARY KEY,
					budget_category_id TEXT NOT NULL,
					description TEXT,
					amount TEXT NOT NULL,
					date TEXT
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// runMigrations applies pending migrations and seeds the default categories.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var currentVersion int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to set schema version %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Info("applied migration", "version", migration.Version, "description", migration.Description)
	}

	return seedDefaultCategories(ctx, db)
}

// seedDefaultCategories inserts any missing default category. Existing rows
// are left alone so user edits to icons or colors survive restarts.
func seedDefaultCategories(ctx context.Context, db *sql.DB) error {
	for _, cat := range model.DefaultCategories() {
		_, err := db.ExecContext(ctx, `
			INSERT OR IGNORE INTO categories (id, name, icon, color, type, is_default)
			VALUES (?, ?, ?, ?, ?, 1)`,
			cat.ID, cat.Name, cat.Icon, cat.Color, string(cat.Type))
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", cat.ID, err)
		}
	}
	return nil
}
