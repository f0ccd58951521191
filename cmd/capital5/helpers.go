package main

import (
	"context"
	"fmt"

	"github.com/olumendes/capital5/internal/backup"
	"github.com/olumendes/capital5/internal/classify"
	"github.com/olumendes/capital5/internal/config"
	"github.com/olumendes/capital5/internal/format"
	"github.com/olumendes/capital5/internal/ingest"
	"github.com/olumendes/capital5/internal/model"
	"github.com/olumendes/capital5/internal/storage"
)

// openStorage opens and migrates the configured database.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate storage: %w", err)
	}
	return store, nil
}

// buildRegistry combines built-in formats with the configured user file.
func buildRegistry() (*format.Registry, error) {
	return format.RegistryWithFile(config.FormatsPath())
}

// buildClassifier loads user rules when configured, otherwise the defaults.
func buildClassifier() (*classify.Classifier, error) {
	rules := classify.DefaultRules()
	if path := config.RulesPath(); path != "" {
		extra, err := classify.LoadRules(path)
		if err != nil {
			return nil, err
		}
		// User rules take precedence over the built-in list.
		rules = append(extra, rules...)
	}
	return classify.NewClassifier(rules, model.DefaultCategories()), nil
}

// buildOrchestrator wires the full ingestion pipeline over one store.
func buildOrchestrator(store *storage.SQLiteStorage) (*ingest.Orchestrator, error) {
	registry, err := buildRegistry()
	if err != nil {
		return nil, err
	}
	classifier, err := buildClassifier()
	if err != nil {
		return nil, err
	}
	stores := backup.Stores{
		Transactions: store,
		Categories:   store,
		Goals:        store,
		Investments:  store,
		Budgets:      store,
	}
	return ingest.New(registry, classifier, stores), nil
}
