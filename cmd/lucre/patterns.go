package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucre-fin/lucre/internal/cli"
)

func patternsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List learned patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			patterns, err := app.store.TopLearnedPatterns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list learned patterns: %w", err)
			}

			if len(patterns) == 0 {
				cmd.Println("No learned patterns yet")
				return nil
			}

			cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("%d learned patterns", len(patterns))))
			for _, p := range patterns {
				category := p.Category
				if p.Subcategory != "" {
					category = fmt.Sprintf("%s / %s", p.Category, p.Subcategory)
				}
				cmd.Printf("  %s → %s  %s\n",
					p.Normalized,
					cli.CategoryStyle.Render(category),
					cli.SubtleStyle.Render(fmt.Sprintf("%.0f%% ×%d", p.Confidence, p.UsageCount)),
				)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum patterns to list")
	return cmd
}
