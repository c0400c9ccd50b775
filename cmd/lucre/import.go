package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/lucre-fin/lucre/internal/cli"
	"github.com/lucre-fin/lucre/internal/ingest"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Classify every transaction in a statement CSV",
		Long: `Reads a statement CSV (date,description,value[,kind]) and classifies
each transaction sequentially, printing a per-category summary.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open statement: %w", err)
			}
			defer func() { _ = file.Close() }()

			records, err := ingest.ParseStatement(file)
			if err != nil {
				return fmt.Errorf("failed to parse statement: %w", err)
			}
			if len(records) == 0 {
				cmd.Println("No transactions found")
				return nil
			}

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			bar := progressbar.Default(int64(len(records)), "classifying")
			summary := make(map[string]int)

			// Sequential on purpose: keeps store call volume bounded and
			// cache warm-up deterministic.
			for _, record := range records {
				result := app.engine.Classify(cmd.Context(), record.Description, record.Kind)
				summary[result.Category]++
				_ = bar.Add(1)
			}

			printSummary(cmd, summary, len(records))
			return nil
		},
	}
}

func printSummary(cmd *cobra.Command, summary map[string]int, total int) {
	categories := make([]string, 0, len(summary))
	for category := range summary {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if summary[categories[i]] != summary[categories[j]] {
			return summary[categories[i]] > summary[categories[j]]
		}
		return categories[i] < categories[j]
	})

	cmd.Println()
	cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("Classified %d transactions", total)))
	for _, category := range categories {
		cmd.Printf("  %s %s\n",
			cli.SubtleStyle.Render(fmt.Sprintf("%4d", summary[category])),
			category,
		)
	}
}
