package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olumendes/capital5/internal/aggregator"
	"github.com/olumendes/capital5/internal/model"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync transactions from the bank aggregator",
		Long: `Fetch transactions from the configured aggregator account and run them
through classification and duplicate suppression before committing. Aggregator
windows overlap between syncs; the duplicate detector keeps re-synced
transactions from being committed twice.`,
		RunE: runSync,
	}

	cmd.Flags().String("from", "", "start date (YYYY-MM-DD, default: 30 days ago)")
	cmd.Flags().String("to", "", "end date (YYYY-MM-DD, default: today)")
	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -30)

	if from, _ := cmd.Flags().GetString("from"); from != "" {
		parsed, err := time.Parse(model.DateLayout, from)
		if err != nil {
			return fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		startDate = parsed
	}
	if to, _ := cmd.Flags().GetString("to"); to != "" {
		parsed, err := time.Parse(model.DateLayout, to)
		if err != nil {
			return fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		endDate = parsed
	}

	client, err := aggregator.NewClient(aggregator.Config{
		ClientID:    viper.GetString("aggregator.client_id"),
		Secret:      viper.GetString("aggregator.secret"),
		Environment: viper.GetString("aggregator.environment"),
		AccessToken: viper.GetString("aggregator.access_token"),
	})
	if err != nil {
		return fmt.Errorf("aggregator not configured: %w", err)
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	orchestrator, err := buildOrchestrator(store)
	if err != nil {
		return err
	}

	result, err := orchestrator.SyncAggregator(ctx, client, startDate, endDate)
	if err != nil {
		return err
	}

	printResult(result)
	return nil
}
