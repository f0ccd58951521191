package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage the category taxonomy",
	}
	cmd.AddCommand(categoriesListCmd())
	cmd.AddCommand(categoriesDeleteCmd())
	return cmd
}

func categoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return err
			}

			for _, cat := range categories {
				marker := " "
				if cat.IsDefault {
					marker = "*"
				}
				fmt.Printf("%s %-18s %-22s %s\n", marker, cat.ID, cat.Name, cat.Type)
			}
			fmt.Println("\n* default category (cannot be deleted)")
			return nil
		},
	}
}

func categoriesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an unreferenced user-defined category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteCategory(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("✓ deleted category %s\n", args[0])
			return nil
		},
	}
}
