package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucre-fin/lucre/internal/cache"
	"github.com/lucre-fin/lucre/internal/common"
	"github.com/lucre-fin/lucre/internal/dictionary"
	"github.com/lucre-fin/lucre/internal/model"
	"github.com/lucre-fin/lucre/internal/similarity"
	"github.com/lucre-fin/lucre/internal/storage"
)

// Helper function to create an engine backed by a real migrated store.
func createTestEngine(t *testing.T) (*Engine, *cache.Manager) {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	caches := cache.NewManager(cache.ManagerConfig{})
	t.Cleanup(caches.Stop)

	lookup := dictionary.NewLookup(store, caches)
	classifier := similarity.NewClassifier(similarity.SeedExamples())

	return New(lookup, classifier, store, caches), caches
}

func TestClassifyKnownMerchant(t *testing.T) {
	eng, _ := createTestEngine(t)

	result := eng.Classify(context.Background(), "IFOOD *PEDIDO 123", model.KindExpense)

	assert.Equal(t, "Alimentação", result.Category)
	assert.Equal(t, "Delivery", result.Subcategory)
	assert.Equal(t, model.MethodMerchant, result.Method)
	assert.GreaterOrEqual(t, result.Confidence, 90.0)
}

func TestClassifyBankFee(t *testing.T) {
	eng, _ := createTestEngine(t)

	result := eng.Classify(context.Background(), "TARIFA MANUTENCAO CONTA", model.KindExpense)

	assert.Equal(t, "Tarifas Bancárias / Juros / Impostos / Taxas", result.Category)
	assert.Equal(t, model.MethodBankingContext, result.Method)
	assert.InDelta(t, 80.0, result.Confidence, 0.001)
}

func TestClassifyFeeContextBeatsMerchantText(t *testing.T) {
	eng, _ := createTestEngine(t)

	// Fee boilerplate wins even when a known merchant appears in the text.
	result := eng.Classify(context.Background(), "JUROS ATRASO FATURA NETFLIX", model.KindExpense)

	assert.Equal(t, "Tarifas Bancárias / Juros / Impostos / Taxas", result.Category)
	assert.Equal(t, "Juros", result.Subcategory)
}

func TestClassifyOpaqueFallsBack(t *testing.T) {
	eng, caches := createTestEngine(t)

	result := eng.Classify(context.Background(), "XYZQWSJ8832", model.KindExpense)

	assert.Equal(t, "Outros", result.Category)
	assert.Equal(t, model.MethodFallback, result.Method)
	assert.InDelta(t, 40.0, result.Confidence, 0.001)

	// Low-confidence results must not poison the pattern cache.
	assert.Equal(t, 0, caches.Patterns.Len())
}

func TestClassifyFallbackByKind(t *testing.T) {
	eng, _ := createTestEngine(t)
	ctx := context.Background()

	result := eng.Classify(ctx, "XYZQWSJ8832", model.KindIncome)
	assert.Equal(t, "Outras Receitas", result.Category)

	// An invalid kind is coerced to expense.
	result = eng.Classify(ctx, "QQWWEE9911", model.TransactionKind("weird"))
	assert.Equal(t, "Outros", result.Category)
}

func TestClassifyNeverFails(t *testing.T) {
	eng, _ := createTestEngine(t)
	ctx := context.Background()

	for _, description := range []string{"", "   ", "***", "1234567890", "a"} {
		result := eng.Classify(ctx, description, model.KindExpense)
		assert.NotEmpty(t, result.Category, "description %q must still classify", description)
		assert.Greater(t, result.Confidence, 0.0)
	}
}

func TestClassifyTransferContext(t *testing.T) {
	eng, _ := createTestEngine(t)

	result := eng.Classify(context.Background(), "PIX ENVIADO Joao Silva", model.KindExpense)

	assert.Equal(t, "Transferências", result.Category)
	assert.Equal(t, "PIX", result.Subcategory)
	assert.Equal(t, model.MethodBankingContext, result.Method)
	assert.InDelta(t, 75.0, result.Confidence, 0.001)
}

func TestClassifyCompoundCaseRetry(t *testing.T) {
	eng, _ := createTestEngine(t)

	// "BurgerKing" only matches the dictionary after compound splitting,
	// and the retry carries a small confidence penalty.
	result := eng.Classify(context.Background(), "BurgerKing", model.KindExpense)

	assert.Equal(t, "Alimentação", result.Category)
	assert.Equal(t, "Restaurante", result.Subcategory)
	assert.Equal(t, model.MethodMerchant, result.Method)
	assert.InDelta(t, 92.0*0.95, result.Confidence, 0.01)
}

func TestClassifyIsDeterministic(t *testing.T) {
	eng, _ := createTestEngine(t)
	ctx := context.Background()

	first := eng.Classify(ctx, "POSTO SHELL CENTRO", model.KindExpense)
	second := eng.Classify(ctx, "POSTO SHELL CENTRO", model.KindExpense)

	assert.Equal(t, first, second)
}

func TestLearnFromCorrection(t *testing.T) {
	eng, caches := createTestEngine(t)
	ctx := context.Background()

	before := eng.Classify(ctx, "PADARIA DO ZE 123", model.KindExpense)
	require.NotEqual(t, "Lazer", before.Category)

	eng.LearnFromCorrection(ctx, "PADARIA DO ZE 123", "Lazer", "Hobby", model.KindExpense)

	// Immediately visible through the pattern cache.
	result := eng.Classify(ctx, "PADARIA DO ZE 123", model.KindExpense)
	assert.Equal(t, "Lazer", result.Category)
	assert.Equal(t, "Hobby", result.Subcategory)
	assert.Equal(t, model.MethodUserCorrected, result.Method)
	assert.GreaterOrEqual(t, result.Confidence, 90.0)
	assert.True(t, result.LearnedFromUser)

	// Still wins via the learned store once the cache entry is gone.
	caches.Patterns.Delete("padaria do ze 123")
	result = eng.Classify(ctx, "PADARIA DO ZE 123", model.KindExpense)
	assert.Equal(t, "Lazer", result.Category)
	assert.Equal(t, model.MethodUserLearned, result.Method)
	assert.GreaterOrEqual(t, result.Confidence, 90.0)
	assert.True(t, result.LearnedFromUser)
}

func TestStats(t *testing.T) {
	eng, _ := createTestEngine(t)
	ctx := context.Background()

	eng.Classify(ctx, "IFOOD *PEDIDO 123", model.KindExpense)
	eng.LearnFromCorrection(ctx, "PADOCA NOVA", "Alimentação", "Padaria", model.KindExpense)

	stats := eng.Stats(ctx)
	assert.Equal(t, 1, stats.LearnedPatternCount)
	assert.Greater(t, stats.CorpusSize, 0)
	assert.Greater(t, stats.Dictionary.StoreHits, uint64(0))
}

// stubLearned serves canned learned patterns for arbitration tests.
type stubLearned struct {
	patterns map[string]*model.LearnedPattern
}

func (s *stubLearned) GetLearnedPattern(_ context.Context, normalized string) (*model.LearnedPattern, error) {
	if p, ok := s.patterns[normalized]; ok {
		return p, nil
	}
	return nil, common.ErrNotFound
}

func (s *stubLearned) UpsertLearnedPattern(_ context.Context, _, normalized, category, subcategory string) (*model.LearnedPattern, error) {
	p := &model.LearnedPattern{Normalized: normalized, Category: category, Subcategory: subcategory, Confidence: model.BoostedConfidence(1), UsageCount: 1}
	s.patterns[normalized] = p
	return p, nil
}

func (s *stubLearned) LearnedPatternCount(_ context.Context) (int, error) {
	return len(s.patterns), nil
}

func createStubEngine(t *testing.T, learned LearnedStore) *Engine {
	t.Helper()

	store, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	caches := cache.NewManager(cache.ManagerConfig{})
	t.Cleanup(caches.Stop)

	lookup := dictionary.NewLookup(store, caches)
	classifier := similarity.NewClassifier(similarity.SeedExamples())
	return New(lookup, classifier, learned, caches)
}

func TestLearnedPatternArbitration(t *testing.T) {
	tests := []struct {
		name           string
		confidence     float64
		wantCategory   string
		wantMethod     model.Method
		wantConfidence float64
	}{
		{
			name:           "above absolute floor short-circuits",
			confidence:     85,
			wantCategory:   "Educação",
			wantMethod:     model.MethodUserLearned,
			wantConfidence: 85,
		},
		{
			name:           "between floors still outranks merchant",
			confidence:     76,
			wantCategory:   "Educação",
			wantMethod:     model.MethodUserLearned,
			wantConfidence: 76,
		},
		{
			name:           "below candidate floor loses to merchant",
			confidence:     60,
			wantCategory:   "Alimentação",
			wantMethod:     model.MethodMerchant,
			wantConfidence: 95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			learned := &stubLearned{patterns: map[string]*model.LearnedPattern{
				"ifood *pedido 123": {
					Normalized: "ifood *pedido 123",
					Category:   "Educação",
					Confidence: tt.confidence,
					UsageCount: 1,
				},
			}}
			eng := createStubEngine(t, learned)

			result := eng.Classify(context.Background(), "IFOOD *PEDIDO 123", model.KindExpense)
			assert.Equal(t, tt.wantCategory, result.Category)
			assert.Equal(t, tt.wantMethod, result.Method)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 0.001)
		})
	}
}

// failingStore errors on every query, simulating a dead remote dictionary.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) SearchMerchant(context.Context, string, int) ([]model.DictionaryEntry, error) {
	return nil, errStoreDown
}

func (failingStore) SearchBankingPattern(context.Context, string, string) ([]model.DictionaryEntry, error) {
	return nil, errStoreDown
}

func (failingStore) SearchByKeywords(context.Context, string, model.TransactionKind) ([]model.DictionaryEntry, error) {
	return nil, errStoreDown
}

func (failingStore) TopMerchants(context.Context, int) ([]model.DictionaryEntry, error) {
	return nil, errStoreDown
}

func (failingStore) IncrementMerchantUseCount(context.Context, string) error {
	return errStoreDown
}

func (failingStore) TopLearnedPatterns(context.Context, int) ([]model.LearnedPattern, error) {
	return nil, errStoreDown
}

func TestClassifyDegradesWhenStoreIsDown(t *testing.T) {
	caches := cache.NewManager(cache.ManagerConfig{})
	t.Cleanup(caches.Stop)

	lookup := dictionary.NewLookup(failingStore{}, caches)
	classifier := similarity.NewClassifier(similarity.SeedExamples())
	learned := &stubLearned{patterns: map[string]*model.LearnedPattern{}}
	eng := New(lookup, classifier, learned, caches)

	ctx := context.Background()

	// The builtin merchant table still resolves ubiquitous merchants.
	result := eng.Classify(ctx, "IFOOD *PEDIDO 123", model.KindExpense)
	assert.Equal(t, "Alimentação", result.Category)
	assert.Equal(t, model.MethodMerchant, result.Method)

	// Everything else degrades to a populated fallback, never an error.
	result = eng.Classify(ctx, "XYZQWSJ8832", model.KindExpense)
	assert.Equal(t, "Outros", result.Category)
	assert.Equal(t, model.MethodFallback, result.Method)
}
