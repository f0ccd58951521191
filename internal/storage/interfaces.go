package storage

import "github.com/olumendes/capital5/internal/service"

// Compile-time checks that SQLiteStorage satisfies every store contract.
var (
	_ service.TransactionStore = (*SQLiteStorage)(nil)
	_ service.CategoryStore    = (*SQLiteStorage)(nil)
	_ service.GoalStore        = (*SQLiteStorage)(nil)
	_ service.InvestmentStore  = (*SQLiteStorage)(nil)
	_ service.BudgetStore      = (*SQLiteStorage)(nil)
)
