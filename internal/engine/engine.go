// Package engine implements the arbitration core: the two-pass
// classification over every lower layer and the feedback loop that learns
// from user corrections.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/lucre-fin/lucre/internal/cache"
	"github.com/lucre-fin/lucre/internal/common"
	"github.com/lucre-fin/lucre/internal/dictionary"
	"github.com/lucre-fin/lucre/internal/model"
	"github.com/lucre-fin/lucre/internal/similarity"
	"github.com/lucre-fin/lucre/internal/textnorm"
)

// Confidence floors and fixed confidences used by arbitration.
const (
	merchantConfidenceFloor   = 60.0
	similarityConfidenceFloor = 50.0
	splitRetryScale           = 0.95
	fallbackConfidence        = 40.0
	cacheWriteFloor           = 70.0
	correctionConfidence      = 95.0
)

// LearnedStore persists and retrieves user-learned patterns.
type LearnedStore interface {
	GetLearnedPattern(ctx context.Context, normalized string) (*model.LearnedPattern, error)
	UpsertLearnedPattern(ctx context.Context, raw, normalized, category, subcategory string) (*model.LearnedPattern, error)
	LearnedPatternCount(ctx context.Context) (int, error)
}

// Engine orchestrates classification across the dictionary lookup layer,
// the similarity classifier, and the learned-pattern store.
type Engine struct {
	lookup     *dictionary.Lookup
	classifier *similarity.Classifier
	learned    LearnedStore
	caches     *cache.Manager
}

// New creates a classification engine with the given dependencies.
func New(lookup *dictionary.Lookup, classifier *similarity.Classifier, learned LearnedStore, caches *cache.Manager) *Engine {
	return &Engine{
		lookup:     lookup,
		classifier: classifier,
		learned:    learned,
		caches:     caches,
	}
}

// Classify resolves a description to exactly one classification. It never
// fails: every path, including empty input and a dead store, reaches a
// populated result.
func (e *Engine) Classify(ctx context.Context, description string, kind model.TransactionKind) model.Result {
	if !kind.Valid() {
		kind = model.KindExpense
	}

	variants := textnorm.Normalize(description)
	cleaned, removed := textnorm.Clean(description)
	cleanedUsable := textnorm.IsUsableCleaned(cleaned)

	// Start: cache reuse and the absolute-priority learned-pattern check.
	if cached, ok := e.caches.Patterns.Get(variants.Normalized); ok {
		return cached.Result
	}

	var candidates []model.Candidate

	if learned := e.findLearned(ctx, variants.Normalized, strings.ToLower(cleaned)); learned != nil {
		cand := learnedCandidate(learned)
		if learned.Confidence >= model.LearnedAbsoluteFloor {
			return e.finish(cand, variants.Normalized, removed, cleanedUsable)
		}
		// A pattern in [75,80) does not short-circuit but still carries
		// top-layer priority into Decide.
		if learned.Confidence >= model.LearnedCandidateFloor {
			candidates = append(candidates, cand)
		}
	}

	// ContextPass runs on the raw description: boilerplate carries the
	// transaction-kind signal that cleaning would destroy.
	if contextCand, highPriority := detectContext(description, kind); contextCand != nil {
		if highPriority {
			return e.finish(*contextCand, variants.Normalized, removed, cleanedUsable)
		}
		candidates = append(candidates, *contextCand)
	} else if entry := e.lookup.FindBankingPattern(ctx, description); entry != nil {
		candidates = append(candidates, model.Candidate{
			Category:    entry.Category,
			Subcategory: entry.Subcategory,
			Method:      model.MethodBankingContext,
			Layer:       model.LayerBankingContext,
			Confidence:  entry.Confidence(),
		})
	}

	// EntityPass runs on the cleaned description, falling back to raw when
	// cleaning degenerated the text.
	entityText := cleaned
	if !cleanedUsable {
		entityText = variants.Normalized
	}

	candidates = append(candidates, e.entityCandidates(ctx, entityText, variants, kind)...)

	best, ok := model.Best(candidates)
	if !ok {
		best = model.Candidate{
			Category:   model.FallbackCategory(kind),
			Method:     model.MethodFallback,
			Layer:      model.LayerFallback,
			Confidence: fallbackConfidence,
		}
	}

	return e.finish(best, variants.Normalized, removed, cleanedUsable)
}

// entityCandidates runs the dictionary and similarity layers over the
// entity text.
func (e *Engine) entityCandidates(ctx context.Context, entityText string, variants textnorm.Variants, kind model.TransactionKind) []model.Candidate {
	var candidates []model.Candidate

	merchantMatched := false
	if entry := e.lookup.FindMerchant(ctx, entityText); entry != nil && entry.Confidence() >= merchantConfidenceFloor {
		merchantMatched = true
		candidates = append(candidates, model.Candidate{
			Category:    entry.Category,
			Subcategory: entry.Subcategory,
			Method:      model.MethodMerchant,
			Layer:       model.LayerMerchant,
			Confidence:  entry.Confidence(),
		})
	}

	// Compound-case retry catches merchants glued without spaces.
	if !merchantMatched && variants.SplitCompound != "" {
		if entry := e.lookup.FindMerchant(ctx, variants.SplitCompound); entry != nil && entry.Confidence() >= merchantConfidenceFloor {
			merchantMatched = true
			candidates = append(candidates, model.Candidate{
				Category:    entry.Category,
				Subcategory: entry.Subcategory,
				Method:      model.MethodMerchant,
				Layer:       model.LayerMerchantSplit,
				Confidence:  entry.Confidence() * splitRetryScale,
			})
		}
	}

	if !merchantMatched {
		if cand := e.keywordCandidate(ctx, entityText, variants.Keywords, kind); cand != nil {
			candidates = append(candidates, *cand)
		}
	}

	if pred := e.classifier.Predict(entityText, kind); pred != nil && pred.Confidence >= similarityConfidenceFloor {
		candidates = append(candidates, model.Candidate{
			Category:    pred.Category,
			Subcategory: pred.Subcategory,
			Method:      model.MethodSimilarity,
			Layer:       model.LayerSimilarity,
			Confidence:  pred.Confidence,
		})
	}

	return candidates
}

// keywordCandidate resolves the entity text, then each extracted keyword,
// against the keyword dictionary.
func (e *Engine) keywordCandidate(ctx context.Context, entityText string, keywords []string, kind model.TransactionKind) *model.Candidate {
	entry := e.lookup.FindByKeyword(ctx, entityText, kind)
	if entry == nil {
		for _, kw := range keywords {
			if entry = e.lookup.FindByKeyword(ctx, kw, kind); entry != nil {
				break
			}
		}
	}
	if entry == nil {
		return nil
	}

	return &model.Candidate{
		Category:    entry.Category,
		Subcategory: entry.Subcategory,
		Method:      model.MethodKeyword,
		Layer:       model.LayerKeyword,
		Confidence:  entry.Confidence(),
	}
}

// findLearned checks the learned-pattern store for the normalized original
// description, then for the cleaned variant. Store failures degrade to nil.
func (e *Engine) findLearned(ctx context.Context, normalized, cleaned string) *model.LearnedPattern {
	for _, key := range []string{normalized, cleaned} {
		if key == "" {
			continue
		}
		pattern, err := e.learned.GetLearnedPattern(ctx, key)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				slog.Debug("Learned pattern lookup failed", "error", err)
			}
			continue
		}
		return pattern
	}
	return nil
}

// finish converts the winning candidate and records high-confidence results
// in the pattern cache for reuse.
func (e *Engine) finish(best model.Candidate, normalizedKey string, removed int, cleanedUsable bool) model.Result {
	result := best.Result()

	if result.Confidence >= cacheWriteFloor && normalizedKey != "" {
		e.caches.Patterns.Set(normalizedKey, model.CachedClassification{
			Result:          result,
			RemovedPatterns: removed,
			CleanedUsable:   cleanedUsable,
		})
	}

	return result
}

func learnedCandidate(pattern *model.LearnedPattern) model.Candidate {
	return model.Candidate{
		Category:        pattern.Category,
		Subcategory:     pattern.Subcategory,
		Method:          model.MethodUserLearned,
		Layer:           model.LayerUserLearned,
		Confidence:      pattern.Confidence,
		LearnedFromUser: true,
	}
}
