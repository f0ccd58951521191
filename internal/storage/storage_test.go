package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olumendes/capital5/internal/common"
	"github.com/olumendes/capital5/internal/model"
)

func setupStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleTransaction() model.Transaction {
	date, _ := time.Parse(model.DateLayout, "2025-06-10")
	return model.Transaction{
		Date:        date,
		Description: "Uber Trip",
		Amount:      decimal.RequireFromString("24.90"),
		Type:        model.TypeExpense,
		Source:      model.SourceImport,
		CategoryID:  "transporte",
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := setupStorage(t)
	require.NoError(t, store.Migrate(context.Background()))

	var version int
	require.NoError(t, store.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrateSeedsDefaultCategories(t *testing.T) {
	store := setupStorage(t)

	categories, err := store.GetCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, len(model.DefaultCategories()))

	for _, cat := range categories {
		assert.True(t, cat.IsDefault, "seeded category %s should be default", cat.ID)
	}

	outros, err := store.GetCategoryByID(context.Background(), "outros")
	require.NoError(t, err)
	require.NotNil(t, outros)
	assert.Equal(t, model.TypeExpense, outros.Type)
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip", func(t *testing.T) {
		store := setupStorage(t)

		txn := sampleTransaction()
		txn.SourceDetails = &model.SourceDetails{FileName: "extrato.csv", BankName: "Nubank"}
		txn.Tags = []string{"viagem", "trabalho"}

		created, err := store.CreateTransaction(ctx, txn)
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		stored, err := store.GetTransactions(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)

		got := stored[0]
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "Uber Trip", got.Description)
		assert.True(t, got.Amount.Equal(decimal.RequireFromString("24.90")))
		assert.Equal(t, model.TypeExpense, got.Type)
		assert.Equal(t, "transporte", got.CategoryID)
		assert.Equal(t, "2025-06-10", got.Date.Format(model.DateLayout))
		require.NotNil(t, got.SourceDetails)
		assert.Equal(t, "extrato.csv", got.SourceDetails.FileName)
		assert.Equal(t, []string{"viagem", "trabalho"}, got.Tags)
	})

	t.Run("exact re-import is a duplicate entry", func(t *testing.T) {
		store := setupStorage(t)

		_, err := store.CreateTransaction(ctx, sampleTransaction())
		require.NoError(t, err)

		_, err = store.CreateTransaction(ctx, sampleTransaction())
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrDuplicateEntry))
	})

	t.Run("invalid transaction is rejected", func(t *testing.T) {
		store := setupStorage(t)

		txn := sampleTransaction()
		txn.Amount = decimal.Zero
		_, err := store.CreateTransaction(ctx, txn)
		assert.Error(t, err)
	})
}

func TestGetTransactionsOrdersNewestFirst(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()

	for _, day := range []string{"2025-06-01", "2025-06-15", "2025-06-08"} {
		txn := sampleTransaction()
		txn.Date, _ = time.Parse(model.DateLayout, day)
		txn.Description = "compra " + day
		_, err := store.CreateTransaction(ctx, txn)
		require.NoError(t, err)
	}

	stored, err := store.GetTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "2025-06-15", stored[0].Date.Format(model.DateLayout))
	assert.Equal(t, "2025-06-01", stored[2].Date.Format(model.DateLayout))
}

func TestCountByCategory(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()

	_, err := store.CreateTransaction(ctx, sampleTransaction())
	require.NoError(t, err)

	count, err := store.CountByCategory(ctx, "transporte")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = store.CountByCategory(ctx, "lazer")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCategories(t *testing.T) {
	ctx := context.Background()

	t.Run("create and fetch user category", func(t *testing.T) {
		store := setupStorage(t)

		created, err := store.CreateCategory(ctx, model.Category{
			ID: "pets", Name: "Pets", Type: model.TypeExpense,
		})
		require.NoError(t, err)
		assert.False(t, created.IsDefault)

		got, err := store.GetCategoryByID(ctx, "pets")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Pets", got.Name)
	})

	t.Run("id collision returns the stored row", func(t *testing.T) {
		store := setupStorage(t)

		got, err := store.CreateCategory(ctx, model.Category{
			ID: "outros", Name: "Renamed", Type: model.TypeExpense,
		})
		require.NoError(t, err)
		assert.Equal(t, "Outros", got.Name)
		assert.True(t, got.IsDefault)
	})

	t.Run("unknown id is nil, not an error", func(t *testing.T) {
		store := setupStorage(t)

		got, err := store.GetCategoryByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalid type is rejected", func(t *testing.T) {
		store := setupStorage(t)

		_, err := store.CreateCategory(ctx, model.Category{ID: "x", Name: "X", Type: "sideways"})
		assert.Error(t, err)
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes an unreferenced user category", func(t *testing.T) {
		store := setupStorage(t)

		_, err := store.CreateCategory(ctx, model.Category{ID: "pets", Name: "Pets", Type: model.TypeExpense})
		require.NoError(t, err)
		require.NoError(t, store.DeleteCategory(ctx, "pets"))

		got, err := store.GetCategoryByID(ctx, "pets")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("refuses defaults", func(t *testing.T) {
		store := setupStorage(t)
		err := store.DeleteCategory(ctx, "outros")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "default")
	})

	t.Run("refuses referenced categories", func(t *testing.T) {
		store := setupStorage(t)

		_, err := store.CreateCategory(ctx, model.Category{ID: "pets", Name: "Pets", Type: model.TypeExpense})
		require.NoError(t, err)

		txn := sampleTransaction()
		txn.CategoryID = "pets"
		_, err = store.CreateTransaction(ctx, txn)
		require.NoError(t, err)

		err = store.DeleteCategory(ctx, "pets")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reference")
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		store := setupStorage(t)
		err := store.DeleteCategory(ctx, "nope")
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})
}

func TestDomainCollections(t *testing.T) {
	store := setupStorage(t)
	ctx := context.Background()

	t.Run("goals", func(t *testing.T) {
		deadline, _ := time.Parse(model.DateLayout, "2026-12-31")
		created, err := store.CreateGoal(ctx, model.Goal{
			Name:         "Reserva de emergência",
			TargetAmount: decimal.RequireFromString("10000.00"),
			SavedAmount:  decimal.RequireFromString("2500.00"),
			Deadline:     deadline,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		goals, err := store.GetGoals(ctx)
		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.True(t, goals[0].TargetAmount.Equal(decimal.RequireFromString("10000.00")))
		assert.Equal(t, "2026-12-31", goals[0].Deadline.Format(model.DateLayout))
	})

	t.Run("investments", func(t *testing.T) {
		_, err := store.CreateInvestment(ctx, model.Investment{
			Name:         "Tesouro Selic",
			Kind:         "renda-fixa",
			Amount:       decimal.RequireFromString("5000.00"),
			CurrentValue: decimal.RequireFromString("5230.10"),
		})
		require.NoError(t, err)

		investments, err := store.GetInvestments(ctx)
		require.NoError(t, err)
		require.Len(t, investments, 1)
		assert.True(t, investments[0].CurrentValue.Equal(decimal.RequireFromString("5230.10")))
		assert.True(t, investments[0].PurchaseDate.IsZero())
	})

	t.Run("budgets", func(t *testing.T) {
		bc, err := store.CreateBudgetCategory(ctx, model.BudgetCategory{
			CategoryID: "alimentacao",
			Limit:      decimal.RequireFromString("800.00"),
		})
		require.NoError(t, err)

		_, err = store.CreateBudgetExpense(ctx, model.BudgetExpense{
			BudgetCategoryID: bc.ID,
			Description:      "Feira semanal",
			Amount:           decimal.RequireFromString("120.00"),
		})
		require.NoError(t, err)

		budgets, err := store.GetBudgetCategories(ctx)
		require.NoError(t, err)
		require.Len(t, budgets, 1)
		assert.True(t, budgets[0].Limit.Equal(decimal.RequireFromString("800.00")))

		expenses, err := store.GetBudgetExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, expenses, 1)
		assert.Equal(t, bc.ID, expenses[0].BudgetCategoryID)
	})
}
