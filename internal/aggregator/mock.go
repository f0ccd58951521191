package aggregator

import (
	"context"
	"time"

	"github.com/olumendes/capital5/internal/model"
	"github.com/olumendes/capital5/internal/service"
)

// MockFetcher is a test double for the aggregator client.
type MockFetcher struct {
	GetTransactionsFn    func(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
	GetTransactionsCalls []GetTransactionsCall
}

// GetTransactionsCall records the parameters of one call.
type GetTransactionsCall struct {
	StartDate time.Time
	EndDate   time.Time
}

// GetTransactions implements service.TransactionFetcher.
func (m *MockFetcher) GetTransactions(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	m.GetTransactionsCalls = append(m.GetTransactionsCalls, GetTransactionsCall{
		StartDate: startDate,
		EndDate:   endDate,
	})
	if m.GetTransactionsFn != nil {
		return m.GetTransactionsFn(ctx, startDate, endDate)
	}
	return []model.Transaction{}, nil
}

var (
	_ service.TransactionFetcher = (*MockFetcher)(nil)
	_ service.TransactionFetcher = (*Client)(nil)
)
