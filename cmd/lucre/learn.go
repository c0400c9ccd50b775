package main

import (
	"github.com/spf13/cobra"

	"github.com/lucre-fin/lucre/internal/cli"
)

func learnCmd() *cobra.Command {
	var kindFlag string

	cmd := &cobra.Command{
		Use:   "learn <description> <category> [subcategory]",
		Short: "Record a category correction for a description",
		Long: `Persists a user correction as a learned pattern. Future
classifications of the same description return the corrected category at
top priority.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}

			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer app.Close()

			subcategory := ""
			if len(args) == 3 {
				subcategory = args[2]
			}

			app.engine.LearnFromCorrection(cmd.Context(), args[0], args[1], subcategory, kind)

			cmd.Println(cli.TitleStyle.Render("Learned"), args[0], "→", cli.CategoryStyle.Render(args[1]))
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "expense", "transaction kind (income, expense)")
	return cmd
}
