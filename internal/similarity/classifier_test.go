package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucre-fin/lucre/internal/model"
)

func TestPredictExactMatch(t *testing.T) {
	c := NewClassifier(SeedExamples())

	pred := c.Predict("tarifa manutencao conta", model.KindExpense)
	require.NotNil(t, pred)
	assert.Equal(t, "Tarifas Bancárias / Juros / Impostos / Taxas", pred.Category)
	assert.InDelta(t, exactMatchConfidence, pred.Confidence, 0.001)
	assert.Contains(t, pred.FeaturesUsed, "exact_match")
}

func TestPredictExactMatchRespectsKind(t *testing.T) {
	c := NewClassifier(SeedExamples())

	pred := c.Predict("pagamento salario empresa", model.KindIncome)
	require.NotNil(t, pred)
	assert.Equal(t, "Salário", pred.Category)
	assert.InDelta(t, exactMatchConfidence, pred.Confidence, 0.001)

	// The same text queried as an expense must not resolve to an income
	// category.
	pred = c.Predict("pagamento salario empresa", model.KindExpense)
	if pred != nil {
		assert.NotEqual(t, "Salário", pred.Category)
	}
}

func TestPredictCosineSimilarity(t *testing.T) {
	c := NewClassifier(SeedExamples())

	// Shares "padaria" and "pao" with the padaria seed example.
	pred := c.Predict("padaria pao frances", model.KindExpense)
	require.NotNil(t, pred)
	assert.Equal(t, "Alimentação", pred.Category)
	assert.Equal(t, "Padaria", pred.Subcategory)
	assert.Less(t, pred.Confidence, exactMatchConfidence)
	assert.Greater(t, pred.Confidence, 30.0)
	assert.Contains(t, pred.FeaturesUsed, "tfidf_cosine")
}

func TestPredictStructuralRules(t *testing.T) {
	c := NewClassifier(SeedExamples())

	tests := []struct {
		name            string
		description     string
		wantCategory    string
		wantSubcategory string
		wantConfidence  float64
	}{
		{
			name:           "bank code shape",
			description:    "TBI 3456-7",
			wantCategory:   "Tarifas Bancárias / Juros / Impostos / Taxas",
			wantConfidence: bankCodeConfidence,
		},
		{
			name:           "currency markers",
			description:    "compra r$ 150,00",
			wantCategory:   "Compras",
			wantConfidence: currencyConfidence,
		},
		{
			name:            "bare merchant shape",
			description:     "Padoca Nova",
			wantCategory:    "Compras",
			wantSubcategory: "Estabelecimento",
			wantConfidence:  merchantShapeConfidence,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred := c.Predict(tt.description, model.KindExpense)
			require.NotNil(t, pred)
			assert.Equal(t, tt.wantCategory, pred.Category)
			assert.Equal(t, tt.wantSubcategory, pred.Subcategory)
			assert.InDelta(t, tt.wantConfidence, pred.Confidence, 0.001)
		})
	}
}

func TestPredictNoSignal(t *testing.T) {
	c := NewClassifier(SeedExamples())

	// A single opaque token: no corpus overlap, no structural shape.
	assert.Nil(t, c.Predict("XYZQWSJ8832", model.KindExpense))
	assert.Nil(t, c.Predict("", model.KindExpense))
	assert.Nil(t, c.Predict("   ", model.KindExpense))
}

func TestAddExample(t *testing.T) {
	c := NewClassifier(SeedExamples())
	before := c.CorpusSize()

	c.AddExample(Example{
		Description: "PADOCA DO ZE 123",
		Category:    "Alimentação",
		Subcategory: "Padaria",
		Kind:        model.KindExpense,
		FromUser:    true,
	})

	assert.Equal(t, before+1, c.CorpusSize())

	pred := c.Predict("padoca do ze 123", model.KindExpense)
	require.NotNil(t, pred)
	assert.Equal(t, "Alimentação", pred.Category)
	assert.InDelta(t, exactMatchConfidence, pred.Confidence, 0.001)
}

func TestExtractFeatures(t *testing.T) {
	f := ExtractFeatures("TBI 3456-7")
	assert.True(t, f.HasShortAllCaps)
	assert.Greater(t, f.DigitRatio, 0.4)
	assert.Equal(t, 2, f.TokenCount)

	f = ExtractFeatures("Padoca Nova")
	assert.False(t, f.HasShortAllCaps)
	assert.Zero(t, f.DigitRatio)

	f = ExtractFeatures("")
	assert.Zero(t, f.TokenCount)
	assert.Zero(t, f.DigitRatio)
}
