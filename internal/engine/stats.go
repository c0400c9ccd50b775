package engine

import (
	"context"
	"log/slog"

	"github.com/lucre-fin/lucre/internal/cache"
	"github.com/lucre-fin/lucre/internal/dictionary"
)

// Stats aggregates engine diagnostics.
type Stats struct {
	Cache               cache.ManagerStats
	Dictionary          dictionary.Usage
	LearnedPatternCount int
	CorpusSize          int
}

// Stats snapshots cache, dictionary-usage and learning counters.
func (e *Engine) Stats(ctx context.Context) Stats {
	count, err := e.learned.LearnedPatternCount(ctx)
	if err != nil {
		slog.Debug("Failed to count learned patterns", "error", err)
	}

	return Stats{
		Cache:               e.caches.Stats(),
		Dictionary:          e.lookup.Usage(),
		LearnedPatternCount: count,
		CorpusSize:          e.classifier.CorpusSize(),
	}
}
