package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olumendes/capital5/internal/service"
)

// SyncAggregator pulls transactions from a bank-aggregator fetcher and runs
// them through classify, duplicate partitioning, and commit. Aggregator
// windows overlap between syncs, so dedup is always on for this path.
func (o *Orchestrator) SyncAggregator(ctx context.Context, fetcher service.TransactionFetcher, startDate, endDate time.Time) (*Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result := &Result{File: "aggregator"}

	candidates, err := fetcher.GetTransactions(ctx, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("aggregator fetch failed: %w", err)
	}

	slog.Info("aggregator sync fetched transactions",
		"count", len(candidates),
		"start", startDate.Format("2006-01-02"),
		"end", endDate.Format("2006-01-02"))

	o.classifyCandidates(candidates)
	return o.commit(ctx, candidates, result, true)
}
