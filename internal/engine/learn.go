package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/lucre-fin/lucre/internal/common"
	"github.com/lucre-fin/lucre/internal/model"
	"github.com/lucre-fin/lucre/internal/similarity"
	"github.com/lucre-fin/lucre/internal/textnorm"
)

// LearnFromCorrection records a user correction. All effects are
// best-effort: the in-memory corpus and cache are updated even when
// persistence fails, so the running session benefits immediately.
func (e *Engine) LearnFromCorrection(ctx context.Context, description, category, subcategory string, kind model.TransactionKind) {
	normalized := textnorm.Normalize(description).Normalized
	if normalized == "" || category == "" {
		slog.Debug("Ignoring empty correction", "description", description, "category", category)
		return
	}

	// Persist the learned pattern; retried, then logged and swallowed.
	persistErr := common.WithRetry(ctx, func() error {
		_, err := e.learned.UpsertLearnedPattern(ctx, description, normalized, category, subcategory)
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return nil
	}, common.RetryOptions{
		MaxAttempts:  3,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		Multiplier:   2.0,
	})
	if persistErr != nil {
		slog.Warn("Failed to persist learned pattern",
			"normalized", normalized,
			"error", persistErr)
	}

	// Inject the correction into the similarity corpus.
	e.classifier.AddExample(similarity.Example{
		Description: description,
		Normalized:  normalized,
		Category:    category,
		Subcategory: subcategory,
		Kind:        kind,
		FromUser:    true,
	})

	// Overwrite the pattern cache so the very next classification of this
	// description reflects the correction.
	e.caches.Patterns.Set(normalized, model.CachedClassification{
		Result: model.Result{
			Category:        category,
			Subcategory:     subcategory,
			Method:          model.MethodUserCorrected,
			Confidence:      correctionConfidence,
			LearnedFromUser: true,
		},
	})

	slog.Debug("Learned from correction",
		"normalized", normalized,
		"category", category,
		"subcategory", subcategory)
}
