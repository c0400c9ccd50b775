package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucre-fin/lucre/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storage.NewSQLiteStore(databasePath())
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Migrate(cmd.Context()); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			cmd.Println("Database is up to date")
			return nil
		},
	}
}
