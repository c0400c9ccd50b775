// Package dictionary resolves cleaned descriptions to merchant, banking
// pattern, and keyword entries, consulting the tiered cache, the remote
// store, and a builtin fallback table in that order.
package dictionary

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sony/gobreaker"

	"github.com/lucre-fin/lucre/internal/cache"
	"github.com/lucre-fin/lucre/internal/common"
	"github.com/lucre-fin/lucre/internal/model"
)

// Store is the remote dictionary query contract. Implementations may fail;
// the lookup layer swallows every store error and degrades to the next
// resolution tier.
type Store interface {
	SearchMerchant(ctx context.Context, description string, limit int) ([]model.DictionaryEntry, error)
	SearchBankingPattern(ctx context.Context, description, contextTag string) ([]model.DictionaryEntry, error)
	SearchByKeywords(ctx context.Context, description string, kind model.TransactionKind) ([]model.DictionaryEntry, error)
	TopMerchants(ctx context.Context, limit int) ([]model.DictionaryEntry, error)
	IncrementMerchantUseCount(ctx context.Context, merchantKey string) error
	TopLearnedPatterns(ctx context.Context, limit int) ([]model.LearnedPattern, error)
}

// Usage counts how each resolution tier has been serving lookups.
type Usage struct {
	CacheHits   uint64
	StoreHits   uint64
	BuiltinHits uint64
	StoreErrors uint64
}

// Lookup is the dictionary lookup layer.
type Lookup struct {
	store   Store
	caches  *cache.Manager
	breaker *gobreaker.CircuitBreaker

	cacheHits   atomic.Uint64
	storeHits   atomic.Uint64
	builtinHits atomic.Uint64
	storeErrors atomic.Uint64
}

// NewLookup creates the lookup layer. The circuit breaker opens after
// repeated store failures so a dead store degrades instantly instead of
// timing out on every classification.
func NewLookup(store Store, caches *cache.Manager) *Lookup {
	settings := gobreaker.Settings{
		Name:     "dictionary-store",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Dictionary store breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &Lookup{
		store:   store,
		caches:  caches,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// FindMerchant resolves a cleaned description to a merchant entry, or nil
// when nothing matches. Never returns an error.
func (l *Lookup) FindMerchant(ctx context.Context, cleaned string) *model.DictionaryEntry {
	key := strings.ToLower(strings.TrimSpace(cleaned))
	if key == "" {
		return nil
	}

	if entry, ok := l.caches.Merchants.Get(key); ok {
		l.cacheHits.Add(1)
		return entry
	}

	entries, err := l.searchStore(func() (any, error) {
		return l.store.SearchMerchant(ctx, key, 1)
	})
	if err != nil {
		l.storeErrors.Add(1)
		slog.Debug("Merchant store lookup failed", "error", err)
	} else if len(entries) > 0 {
		entry := &entries[0]
		l.storeHits.Add(1)
		l.caches.Merchants.Set(key, entry)
		if incErr := l.store.IncrementMerchantUseCount(ctx, entry.Key); incErr != nil {
			slog.Debug("Failed to increment merchant use count", "merchant", entry.Key, "error", incErr)
		}
		return entry
	}

	if entry := findBuiltinMerchant(key); entry != nil {
		l.builtinHits.Add(1)
		return entry
	}

	return nil
}

// FindBankingPattern resolves banking boilerplate in the description to a
// dictionary entry, or nil. Never returns an error.
func (l *Lookup) FindBankingPattern(ctx context.Context, description string) *model.DictionaryEntry {
	key := strings.ToLower(strings.TrimSpace(description))
	if key == "" {
		return nil
	}

	if entry, ok := l.caches.Banking.Get(key); ok {
		l.cacheHits.Add(1)
		return entry
	}

	entries, err := l.searchStore(func() (any, error) {
		return l.store.SearchBankingPattern(ctx, key, "")
	})
	if err != nil {
		l.storeErrors.Add(1)
		slog.Debug("Banking pattern store lookup failed", "error", err)
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	entry := &entries[0]
	l.storeHits.Add(1)
	l.caches.Banking.Set(key, entry)
	return entry
}

// FindByKeyword resolves the description to a keyword entry for the given
// transaction kind, or nil. Never returns an error.
func (l *Lookup) FindByKeyword(ctx context.Context, description string, kind model.TransactionKind) *model.DictionaryEntry {
	key := strings.ToLower(strings.TrimSpace(description))
	if key == "" {
		return nil
	}

	entries, err := l.searchStore(func() (any, error) {
		return l.store.SearchByKeywords(ctx, key, kind)
	})
	if err != nil {
		l.storeErrors.Add(1)
		slog.Debug("Keyword store lookup failed", "error", err)
		return nil
	}
	if len(entries) == 0 {
		return nil
	}

	l.storeHits.Add(1)
	return &entries[0]
}

// Preload warms the merchant cache with the most-used merchants and primes
// the pattern cache with the user's highest-confidence learned patterns,
// reducing cold-start store calls during a bulk import. Best-effort.
func (l *Lookup) Preload(ctx context.Context, merchantLimit int) {
	if merchantLimit <= 0 {
		merchantLimit = 50
	}

	merchants, err := l.store.TopMerchants(ctx, merchantLimit)
	if err != nil {
		slog.Warn("Merchant preload failed", "error", err)
	} else {
		for i := range merchants {
			entry := &merchants[i]
			l.caches.Merchants.Set(entry.Key, entry)
		}
		slog.Debug("Preloaded merchant cache", "count", len(merchants))
	}

	patterns, err := l.store.TopLearnedPatterns(ctx, merchantLimit)
	if err != nil {
		slog.Warn("Learned pattern preload failed", "error", err)
		return
	}
	for _, p := range patterns {
		l.caches.Patterns.Set(p.Normalized, model.CachedClassification{
			Result: model.Result{
				Category:        p.Category,
				Subcategory:     p.Subcategory,
				Method:          model.MethodUserLearned,
				Confidence:      p.Confidence,
				LearnedFromUser: true,
			},
		})
	}
	slog.Debug("Primed pattern cache from learned patterns", "count", len(patterns))
}

// Usage returns the resolution-tier counters for diagnostics.
func (l *Lookup) Usage() Usage {
	return Usage{
		CacheHits:   l.cacheHits.Load(),
		StoreHits:   l.storeHits.Load(),
		BuiltinHits: l.builtinHits.Load(),
		StoreErrors: l.storeErrors.Load(),
	}
}

// searchStore runs a store query through the circuit breaker, normalizing
// the result back to a typed slice. An open breaker reads as a store outage.
func (l *Lookup) searchStore(query func() (any, error)) ([]model.DictionaryEntry, error) {
	result, err := l.breaker.Execute(func() (any, error) {
		return query()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, common.ErrStoreUnavailable
	}
	if err != nil {
		return nil, err
	}
	entries, _ := result.([]model.DictionaryEntry)
	return entries, nil
}
