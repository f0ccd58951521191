package backup

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olumendes/capital5/internal/model"
)

// memStores is an in-memory Stores implementation for restore tests.
type memStores struct {
	transactions     []model.Transaction
	categories       []model.Category
	goals            []model.Goal
	investments      []model.Investment
	budgetCategories []model.BudgetCategory
	budgetExpenses   []model.BudgetExpense

	failTransactionID string
}

func newMemStores() (*memStores, Stores) {
	m := &memStores{}
	return m, Stores{
		Transactions: m,
		Categories:   m,
		Goals:        m,
		Investments:  m,
		Budgets:      m,
	}
}

func (m *memStores) CreateTransaction(_ context.Context, txn model.Transaction) (*model.Transaction, error) {
	if m.failTransactionID != "" && txn.ID == m.failTransactionID {
		return nil, fmt.Errorf("storage rejected %s", txn.ID)
	}
	m.transactions = append(m.transactions, txn)
	return &txn, nil
}

func (m *memStores) GetTransactions(_ context.Context) ([]model.Transaction, error) {
	return m.transactions, nil
}

func (m *memStores) CountByCategory(_ context.Context, categoryID string) (int, error) {
	count := 0
	for _, txn := range m.transactions {
		if txn.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (m *memStores) GetCategories(_ context.Context) ([]model.Category, error) {
	return m.categories, nil
}

func (m *memStores) GetCategoryByID(_ context.Context, id string) (*model.Category, error) {
	for _, cat := range m.categories {
		if cat.ID == id {
			return &cat, nil
		}
	}
	return nil, nil
}

func (m *memStores) CreateCategory(_ context.Context, category model.Category) (*model.Category, error) {
	m.categories = append(m.categories, category)
	return &category, nil
}

func (m *memStores) DeleteCategory(_ context.Context, id string) error {
	for i, cat := range m.categories {
		if cat.ID == id {
			m.categories = append(m.categories[:i], m.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("category %s not found", id)
}

func (m *memStores) CreateGoal(_ context.Context, goal model.Goal) (*model.Goal, error) {
	m.goals = append(m.goals, goal)
	return &goal, nil
}

func (m *memStores) GetGoals(_ context.Context) ([]model.Goal, error) {
	return m.goals, nil
}

func (m *memStores) CreateInvestment(_ context.Context, inv model.Investment) (*model.Investment, error) {
	m.investments = append(m.investments, inv)
	return &inv, nil
}

func (m *memStores) GetInvestments(_ context.Context) ([]model.Investment, error) {
	return m.investments, nil
}

func (m *memStores) CreateBudgetCategory(_ context.Context, bc model.BudgetCategory) (*model.BudgetCategory, error) {
	m.budgetCategories = append(m.budgetCategories, bc)
	return &bc, nil
}

func (m *memStores) GetBudgetCategories(_ context.Context) ([]model.BudgetCategory, error) {
	return m.budgetCategories, nil
}

func (m *memStores) CreateBudgetExpense(_ context.Context, be model.BudgetExpense) (*model.BudgetExpense, error) {
	m.budgetExpenses = append(m.budgetExpenses, be)
	return &be, nil
}

func (m *memStores) GetBudgetExpenses(_ context.Context) ([]model.BudgetExpense, error) {
	return m.budgetExpenses, nil
}

func TestRestoreFullDocument(t *testing.T) {
	payload, err := Encode(Serialize(sampleState(), time.Now()))
	require.NoError(t, err)
	env, err := Decode(payload)
	require.NoError(t, err)

	mem, stores := newMemStores()
	result, err := Restore(context.Background(), env, stores)
	require.NoError(t, err)

	expected := 1 + len(model.DefaultCategories()) + 1 // transactions + categories + goals
	assert.Equal(t, expected, result.ItemsApplied)
	assert.Empty(t, result.ItemErrors)
	assert.Len(t, mem.transactions, 1)
	assert.Len(t, mem.goals, 1)
}

func TestRestoreSkipsMalformedItems(t *testing.T) {
	payload := `{
		"version": "1.0",
		"data": {
			"categories": [
				{"id": "outros", "name": "Outros", "type": "expense"},
				{"name": "sem id"}
			],
			"transactions": [
				{"id": "ok", "date": "2025-06-10T00:00:00Z", "description": "Uber", "amount": "24.90", "type": "expense", "source": "import"},
				{"id": "bad-amount", "date": "2025-06-10T00:00:00Z", "amount": "0", "type": "expense"},
				{"id": "bad-type", "date": "2025-06-10T00:00:00Z", "amount": "5.00", "type": "sideways"}
			],
			"goals": [
				{"id": "g1", "name": "Viagem"}
			]
		}
	}`

	env, err := Decode([]byte(payload))
	require.NoError(t, err)

	mem, stores := newMemStores()
	result, err := Restore(context.Background(), env, stores)
	require.NoError(t, err)

	assert.Equal(t, 3, result.ItemsApplied) // one category, one transaction, one goal
	require.Len(t, result.ItemErrors, 3)

	collections := make(map[string]int)
	for _, itemErr := range result.ItemErrors {
		collections[itemErr.Collection]++
		assert.NotEmpty(t, itemErr.Reason)
	}
	assert.Equal(t, 1, collections["categories"])
	assert.Equal(t, 2, collections["transactions"])

	assert.Len(t, mem.categories, 1)
	assert.Len(t, mem.transactions, 1)
	assert.Equal(t, "ok", mem.transactions[0].ID)
}

func TestRestoreContinuesPastStoreFailures(t *testing.T) {
	payload := `{
		"version": "1.0",
		"data": {
			"transactions": [
				{"id": "first", "date": "2025-06-10T00:00:00Z", "amount": "10.00", "type": "expense"},
				{"id": "rejected", "date": "2025-06-11T00:00:00Z", "amount": "20.00", "type": "expense"},
				{"id": "last", "date": "2025-06-12T00:00:00Z", "amount": "30.00", "type": "income"}
			]
		}
	}`

	env, err := Decode([]byte(payload))
	require.NoError(t, err)

	mem, stores := newMemStores()
	mem.failTransactionID = "rejected"

	result, err := Restore(context.Background(), env, stores)
	require.NoError(t, err)

	assert.Equal(t, 2, result.ItemsApplied)
	require.Len(t, result.ItemErrors, 1)
	assert.Equal(t, "transactions", result.ItemErrors[0].Collection)
	assert.Equal(t, 1, result.ItemErrors[0].Index)
	assert.Len(t, mem.transactions, 2)
}

func TestRestoreEmptyCollections(t *testing.T) {
	env, err := Decode([]byte(`{"version": "1.0", "data": {}}`))
	require.NoError(t, err)

	_, stores := newMemStores()
	result, err := Restore(context.Background(), env, stores)
	require.NoError(t, err)
	assert.Zero(t, result.ItemsApplied)
	assert.Empty(t, result.ItemErrors)
}
