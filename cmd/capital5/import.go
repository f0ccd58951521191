package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/olumendes/capital5/internal/ingest"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from CSV, OFX/QFX, statement text, or backup files",
		Long: `Import financial transactions from exported files. The file extension picks
the pipeline: .csv goes through the tabular parser, .pdf text through the
statement extractor, .json through backup restore, .ofx/.qfx through the OFX
parser.

Examples:
  # Import a Nubank card export
  capital5 import --format nubank ~/Downloads/nubank-2025-06.csv

  # Import several files with the generic layout
  capital5 import ~/Downloads/*.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("format", "f", "", "format id for CSV files (default: generic)")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	formatID, _ := cmd.Flags().GetString("format")
	ctx := cmd.Context()

	var files []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(pattern); err != nil {
				return fmt.Errorf("no files found matching %s", pattern)
			}
			matches = []string{pattern}
		}
		files = append(files, matches...)
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

	bar := progressbar.Default(int64(len(files)), "importing")
	failed := 0

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("✗ %s: %v\n", filepath.Base(file), err)
			failed++
			_ = bar.Add(1)
			continue
		}

		result, err := orchestrator.Ingest(ctx, ingest.Source{
			Name:     file,
			FormatID: formatID,
			Content:  content,
		})
		_ = bar.Add(1)
		if err != nil {
			fmt.Printf("✗ %s: %v\n", filepath.Base(file), err)
			failed++
			continue
		}

		printResult(result)
	}

	if failed == len(files) {
		return fmt.Errorf("all %d files failed to import", failed)
	}
	return nil
}

func printResult(result *ingest.Result) {
	status := "✓"
	if !result.Success {
		status = "✗"
	}
	fmt.Printf("%s %s: %s\n", status, filepath.Base(result.File), result.Summary)
	for _, e := range result.Errors {
		fmt.Printf("    - %s\n", e)
	}
	if hidden := result.ErrorCount - len(result.Errors); hidden > 0 {
		fmt.Printf("    ... and %d more errors\n", hidden)
	}
}
