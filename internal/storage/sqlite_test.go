package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a migrated test store.
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

func TestNewSQLiteStoreCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "lucre.db")

	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Migrate(context.Background()))
}

func TestNewSQLiteStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewSQLiteStore("")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	// Running migrations again must be a no-op, not a re-seed.
	require.NoError(t, store.Migrate(ctx))

	categories, err := store.GetCategories(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, categories)
}

func TestMigrateSeedsTaxonomy(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	categories, err := store.GetCategories(ctx)
	require.NoError(t, err)

	names := make(map[string]bool, len(categories))
	for _, c := range categories {
		names[c.Name] = true
	}

	for _, want := range []string{
		"Alimentação",
		"Transporte",
		"Tarifas Bancárias / Juros / Impostos / Taxas",
		"Outros",
		"Outras Receitas",
	} {
		assert.True(t, names[want], "seeded taxonomy should contain %q", want)
	}
}
