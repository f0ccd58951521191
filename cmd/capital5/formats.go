package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/olumendes/capital5/internal/format"
)

func formatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formats",
		Short: "Inspect the known bank export layouts",
	}
	cmd.AddCommand(formatsListCmd())
	cmd.AddCommand(formatsTemplateCmd())
	return cmd
}

func formatsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered format descriptors",
		RunE: func(_ *cobra.Command, _ []string) error {
			registry, err := buildRegistry()
			if err != nil {
				return err
			}

			for _, id := range registry.IDs() {
				desc, err := registry.Lookup(id)
				if err != nil {
					return err
				}
				fmt.Printf("%-10s %-28s delimiter=%q date=%s\n",
					desc.ID, desc.Name, desc.Delimiter, desc.DateStyle)
			}
			return nil
		},
	}
}

func formatsTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template [format-id]",
		Short: "Generate a sample CSV for a format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")

			registry, err := buildRegistry()
			if err != nil {
				return err
			}
			desc, err := registry.Lookup(args[0])
			if err != nil {
				return err
			}

			sample := format.Template(desc)
			if output == "" {
				fmt.Print(sample)
				return nil
			}
			if err := os.WriteFile(output, []byte(sample), 0600); err != nil {
				return fmt.Errorf("failed to write template: %w", err)
			}
			fmt.Printf("✓ template written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "write the sample to a file instead of stdout")
	return cmd
}
