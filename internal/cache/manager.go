package cache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lucre-fin/lucre/internal/model"
)

// Default TTLs per classification resource type. Dictionary content changes
// rarely, so merchant and banking entries live far longer than pattern
// results.
const (
	DefaultPatternTTL  = 5 * time.Minute
	DefaultMerchantTTL = 12 * time.Hour
	DefaultBankingTTL  = 12 * time.Hour
	DefaultCategoryTTL = 24 * time.Hour

	// DefaultMaintenanceInterval is how often background cleanup and
	// adaptive resizing run.
	DefaultMaintenanceInterval = 5 * time.Minute
)

// ManagerConfig sizes the specialized caches.
type ManagerConfig struct {
	PatternCapacity  int
	MerchantCapacity int
	BankingCapacity  int
	CategoryCapacity int
	PatternTTL       time.Duration
	MerchantTTL      time.Duration
	BankingTTL       time.Duration
	CategoryTTL      time.Duration
}

// DefaultManagerConfig returns the default cache sizing.
func DefaultManagerConfig() ManagerConfig {
	return ManagerConfig{
		PatternCapacity:  512,
		MerchantCapacity: 256,
		BankingCapacity:  128,
		CategoryCapacity: 32,
		PatternTTL:       DefaultPatternTTL,
		MerchantTTL:      DefaultMerchantTTL,
		BankingTTL:       DefaultBankingTTL,
		CategoryTTL:      DefaultCategoryTTL,
	}
}

// Manager owns one instance of each specialized cache plus the background
// maintenance ticker. It is constructed by the composition root and injected
// into the layers that need it; Stop must be called on shutdown.
type Manager struct {
	Patterns   *Cache[model.CachedClassification]
	Merchants  *Cache[*model.DictionaryEntry]
	Banking    *Cache[*model.DictionaryEntry]
	Categories *Cache[[]model.Category]

	stopCh   chan struct{}
	stopOnce sync.Once
	started  bool
	mu       sync.Mutex
}

// NewManager creates the specialized caches. The maintenance ticker does not
// run until Start is called.
func NewManager(cfg ManagerConfig) *Manager {
	def := DefaultManagerConfig()
	if cfg.PatternCapacity <= 0 {
		cfg.PatternCapacity = def.PatternCapacity
	}
	if cfg.MerchantCapacity <= 0 {
		cfg.MerchantCapacity = def.MerchantCapacity
	}
	if cfg.BankingCapacity <= 0 {
		cfg.BankingCapacity = def.BankingCapacity
	}
	if cfg.CategoryCapacity <= 0 {
		cfg.CategoryCapacity = def.CategoryCapacity
	}
	if cfg.PatternTTL <= 0 {
		cfg.PatternTTL = def.PatternTTL
	}
	if cfg.MerchantTTL <= 0 {
		cfg.MerchantTTL = def.MerchantTTL
	}
	if cfg.BankingTTL <= 0 {
		cfg.BankingTTL = def.BankingTTL
	}
	if cfg.CategoryTTL <= 0 {
		cfg.CategoryTTL = def.CategoryTTL
	}

	return &Manager{
		Patterns: New[model.CachedClassification](Config{
			Capacity:   cfg.PatternCapacity,
			DefaultTTL: cfg.PatternTTL,
		}),
		Merchants: New[*model.DictionaryEntry](Config{
			Capacity:   cfg.MerchantCapacity,
			DefaultTTL: cfg.MerchantTTL,
		}),
		Banking: New[*model.DictionaryEntry](Config{
			Capacity:   cfg.BankingCapacity,
			DefaultTTL: cfg.BankingTTL,
		}),
		Categories: New[[]model.Category](Config{
			Capacity:   cfg.CategoryCapacity,
			DefaultTTL: cfg.CategoryTTL,
		}),
		stopCh: make(chan struct{}),
	}
}

// Start launches the background maintenance loop at the given interval.
// Calling Start twice is a no-op.
func (m *Manager) Start(interval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	m.started = true

	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}

	go m.maintain(interval)
}

// Stop halts background maintenance. Idempotent.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
	})
}

func (m *Manager) maintain(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			removed := m.Patterns.Cleanup() +
				m.Merchants.Cleanup() +
				m.Banking.Cleanup() +
				m.Categories.Cleanup()

			m.Patterns.Optimize()
			m.Merchants.Optimize()
			m.Banking.Optimize()
			m.Categories.Optimize()

			if removed > 0 {
				slog.Debug("Cache maintenance pass", "expired_removed", removed)
			}
		}
	}
}

// ManagerStats aggregates per-cache snapshots for diagnostics.
type ManagerStats struct {
	Patterns   Stats
	Merchants  Stats
	Banking    Stats
	Categories Stats
}

// Stats snapshots every specialized cache.
func (m *Manager) Stats() ManagerStats {
	return ManagerStats{
		Patterns:   m.Patterns.Stats(),
		Merchants:  m.Merchants.Stats(),
		Banking:    m.Banking.Stats(),
		Categories: m.Categories.Stats(),
	}
}
