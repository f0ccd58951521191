package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/olumendes/capital5/internal/backup"
	"github.com/olumendes/capital5/internal/ingest"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the full domain state as JSON",
	}
	cmd.AddCommand(backupExportCmd())
	cmd.AddCommand(backupImportCmd())
	return cmd
}

func backupExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a versioned backup document with every collection",
		RunE:  runBackupExport,
	}
	cmd.Flags().StringP("output", "o", "capital5-backup.json", "output file")
	return cmd
}

func runBackupExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var state backup.Data
	if state.Transactions, err = store.GetTransactions(ctx); err != nil {
		return err
	}
	if state.Categories, err = store.GetCategories(ctx); err != nil {
		return err
	}
	if state.Goals, err = store.GetGoals(ctx); err != nil {
		return err
	}
	if state.Investments, err = store.GetInvestments(ctx); err != nil {
		return err
	}
	if state.BudgetCategories, err = store.GetBudgetCategories(ctx); err != nil {
		return err
	}
	if state.BudgetExpenses, err = store.GetBudgetExpenses(ctx); err != nil {
		return err
	}

	payload, err := backup.Encode(backup.Serialize(state, time.Now()))
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, payload, 0600); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	fmt.Printf("✓ backup written to %s (%d transactions, %d categories)\n",
		output, len(state.Transactions), len(state.Categories))
	return nil
}

func backupImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Restore a backup document, recovering as much as possible",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup: %w", err)
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

			result, err := orchestrator.Ingest(ctx, ingest.Source{
				Name:    args[0],
				Content: content,
			})
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}
}
