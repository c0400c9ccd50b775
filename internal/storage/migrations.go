package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					name TEXT UNIQUE NOT NULL,
					kind TEXT NOT NULL DEFAULT 'expense',
					is_active BOOLEAN DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS merchants (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					merchant_key TEXT UNIQUE NOT NULL,
					entity_name TEXT NOT NULL,
					category TEXT NOT NULL,
					subcategory TEXT,
					aliases TEXT,
					region_tags TEXT,
					confidence_modifier REAL NOT NULL DEFAULT 0.9,
					priority INTEGER NOT NULL DEFAULT 50,
					use_count INTEGER DEFAULT 0
				)`,
				`CREATE INDEX idx_merchants_use_count ON merchants(use_count)`,

				`CREATE TABLE IF NOT EXISTS banking_patterns (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					pattern_key TEXT UNIQUE NOT NULL,
					context TEXT,
					category TEXT NOT NULL,
					subcategory TEXT,
					confidence_modifier REAL NOT NULL DEFAULT 0.8,
					priority INTEGER NOT NULL DEFAULT 50
				)`,

				`CREATE TABLE IF NOT EXISTS keywords (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					keyword TEXT NOT NULL,
					kind TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL,
					subcategory TEXT,
					confidence_modifier REAL NOT NULL DEFAULT 0.7,
					priority INTEGER NOT NULL DEFAULT 40
				)`,
				`CREATE INDEX idx_keywords_keyword ON keywords(keyword)`,

				`CREATE TABLE IF NOT EXISTS user_learned_patterns (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					description TEXT NOT NULL,
					normalized_description TEXT UNIQUE NOT NULL,
					category TEXT NOT NULL,
					subcategory TEXT,
					confidence REAL NOT NULL DEFAULT 0,
					usage_count INTEGER NOT NULL DEFAULT 1,
					last_used_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_learned_usage ON user_learned_patterns(usage_count)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Seed taxonomy categories",
		Up: func(tx *sql.Tx) error {
			seed := []struct {
				name string
				kind string
			}{
				{"Alimentação", "expense"},
				{"Transporte", "expense"},
				{"Moradia", "expense"},
				{"Saúde", "expense"},
				{"Lazer", "expense"},
				{"Compras", "expense"},
				{"Educação", "expense"},
				{"Assinaturas", "expense"},
				{"Tarifas Bancárias / Juros / Impostos / Taxas", "expense"},
				{"Transferências", "expense"},
				{"Saques", "expense"},
				{"Outros", "expense"},
				{"Salário", "income"},
				{"Rendimentos", "income"},
				{"Transferências Recebidas", "income"},
				{"Outras Receitas", "income"},
			}

			for _, c := range seed {
				if _, err := tx.Exec(
					`INSERT OR IGNORE INTO categories (name, kind) VALUES (?, ?)`,
					c.name, c.kind,
				); err != nil {
					return fmt.Errorf("failed to seed category %q: %w", c.name, err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Seed dictionary content",
		Up:          seedDictionary,
	},
}

// Migrate applies every pending migration in order.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
