package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayerPriorities(t *testing.T) {
	// The full layer ordering, highest first.
	ordered := []Layer{
		LayerUserLearned,
		LayerMerchant,
		LayerMerchantSplit,
		LayerBankingContext,
		LayerKeyword,
		LayerSimilarity,
		LayerFallback,
	}

	for i := 0; i < len(ordered)-1; i++ {
		assert.Greater(t, ordered[i].Priority(), ordered[i+1].Priority(),
			"layer %d should outrank layer %d", ordered[i], ordered[i+1])
	}
}

func TestBest(t *testing.T) {
	tests := []struct {
		name         string
		candidates   []Candidate
		wantCategory string
		wantOK       bool
	}{
		{
			name:       "empty candidate list",
			candidates: nil,
			wantOK:     false,
		},
		{
			name: "layer priority beats raw confidence",
			candidates: []Candidate{
				{Category: "Compras", Layer: LayerSimilarity, Confidence: 99},
				{Category: "Alimentação", Layer: LayerMerchant, Confidence: 61},
			},
			wantCategory: "Alimentação",
			wantOK:       true,
		},
		{
			name: "learned pattern outranks merchant regardless of confidence",
			candidates: []Candidate{
				{Category: "Alimentação", Layer: LayerMerchant, Confidence: 95},
				{Category: "Lazer", Layer: LayerUserLearned, Confidence: 76},
			},
			wantCategory: "Lazer",
			wantOK:       true,
		},
		{
			name: "confidence breaks ties within a layer",
			candidates: []Candidate{
				{Category: "Saúde", Layer: LayerKeyword, Confidence: 70},
				{Category: "Transporte", Layer: LayerKeyword, Confidence: 75},
			},
			wantCategory: "Transporte",
			wantOK:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			best, ok := Best(tt.candidates)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantCategory, best.Category)
			}
		})
	}
}

func TestCandidateResultClampsConfidence(t *testing.T) {
	over := Candidate{Category: "Outros", Confidence: 140}
	assert.InDelta(t, 100.0, over.Result().Confidence, 0.001)

	under := Candidate{Category: "Outros", Confidence: -5}
	assert.InDelta(t, 0.0, under.Result().Confidence, 0.001)
}

func TestBoostedConfidence(t *testing.T) {
	assert.InDelta(t, 92.0, BoostedConfidence(1), 0.001)
	assert.InDelta(t, 94.0, BoostedConfidence(2), 0.001)

	// Monotonic and capped.
	prev := 0.0
	for usage := 1; usage < 30; usage++ {
		c := BoostedConfidence(usage)
		assert.GreaterOrEqual(t, c, prev)
		assert.LessOrEqual(t, c, LearnedConfidenceCap)
		prev = c
	}
	assert.InDelta(t, LearnedConfidenceCap, BoostedConfidence(100), 0.001)
}

func TestFallbackCategory(t *testing.T) {
	assert.Equal(t, "Outros", FallbackCategory(KindExpense))
	assert.Equal(t, "Outras Receitas", FallbackCategory(KindIncome))
}
