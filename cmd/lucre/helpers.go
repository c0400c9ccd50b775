package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/lucre-fin/lucre/internal/cache"
	"github.com/lucre-fin/lucre/internal/dictionary"
	"github.com/lucre-fin/lucre/internal/engine"
	"github.com/lucre-fin/lucre/internal/similarity"
	"github.com/lucre-fin/lucre/internal/storage"
)

// app is the composition root: it owns the store, the cache manager and the
// engine, and tears them down in order.
type app struct {
	store  *storage.SQLiteStore
	caches *cache.Manager
	engine *engine.Engine
}

// newApp wires the full classification stack. Migrations run on every
// startup; they are versioned and cheap when already applied.
func newApp(ctx context.Context) (*app, error) {
	store, err := storage.NewSQLiteStore(databasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	caches := cache.NewManager(cacheConfig())
	caches.Start(viper.GetDuration("cache.maintenance_interval"))

	lookup := dictionary.NewLookup(store, caches)
	lookup.Preload(ctx, viper.GetInt("preload.merchant_limit"))

	classifier := similarity.NewClassifier(similarity.SeedExamples())

	return &app{
		store:  store,
		caches: caches,
		engine: engine.New(lookup, classifier, store, caches),
	}, nil
}

// Close stops background cache maintenance and closes the store.
func (a *app) Close() {
	a.caches.Stop()
	_ = a.store.Close()
}

func databasePath() string {
	if path := viper.GetString("database.path"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "lucre.db"
	}
	return filepath.Join(home, ".local", "share", "lucre", "lucre.db")
}

func cacheConfig() cache.ManagerConfig {
	cfg := cache.DefaultManagerConfig()
	if v := viper.GetInt("cache.pattern_capacity"); v > 0 {
		cfg.PatternCapacity = v
	}
	if v := viper.GetInt("cache.merchant_capacity"); v > 0 {
		cfg.MerchantCapacity = v
	}
	if v := viper.GetDuration("cache.pattern_ttl"); v > 0 {
		cfg.PatternTTL = v
	}
	if v := viper.GetDuration("cache.merchant_ttl"); v > 0 {
		cfg.MerchantTTL = v
	}
	return cfg
}
