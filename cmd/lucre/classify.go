package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lucre-fin/lucre/internal/cli"
	"github.com/lucre-fin/lucre/internal/common"
	"github.com/lucre-fin/lucre/internal/model"
)

func classifyCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Classify a single transaction description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}

			description := strings.TrimSpace(strings.Join(args, " "))
			if description == "" {
				return common.NewUserError("description must not be empty", common.ErrEmptyDescription)
			}

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			result := app.engine.Classify(cmd.Context(), description, kind)

			printResult(cmd, description, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "expense", "transaction kind (income, expense)")
	return cmd
}

func parseKind(value string) (model.TransactionKind, error) {
	kind := model.TransactionKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", fmt.Errorf("%w %q: must be income or expense", common.ErrInvalidKind, value)
	}
	return kind, nil
}

func printResult(cmd *cobra.Command, description string, result model.Result) {
	category := result.Category
	if result.Subcategory != "" {
		category = fmt.Sprintf("%s / %s", result.Category, result.Subcategory)
	}

	cmd.Println(cli.SubtleStyle.Render(description))
	cmd.Printf("%s  %s  %s\n",
		cli.CategoryStyle.Render(category),
		cli.ConfidenceStyle(result.Confidence).Render(fmt.Sprintf("%.0f%%", result.Confidence)),
		cli.SubtleStyle.Render(string(result.Method)),
	)
}
