package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucre-fin/lucre/internal/cli"
	"github.com/lucre-fin/lucre/internal/model"
)

const categoryCacheKey = "taxonomy"

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the classification taxonomy",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			categories, ok := app.caches.Categories.Get(categoryCacheKey)
			if !ok {
				categories, err = app.store.GetCategories(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list categories: %w", err)
				}
				app.caches.Categories.Set(categoryCacheKey, categories)
			}

			printCategories(cmd, "Expenses", categories, model.KindExpense)
			printCategories(cmd, "Income", categories, model.KindIncome)
			return nil
		},
	}
}

func printCategories(cmd *cobra.Command, title string, categories []model.Category, kind model.TransactionKind) {
	cmd.Println(cli.TitleStyle.Render(title))
	for _, c := range categories {
		if c.Kind != kind {
			continue
		}
		cmd.Printf("  %s\n", c.Name)
	}
	cmd.Println()
}
