// Package similarity implements the text-similarity and feature-based
// classifier: TF-IDF cosine scoring against a small training corpus plus
// hand-written structural rules. Independent of the dictionary layer so it
// can still produce a signal when the remote store is unreachable.
package similarity

import (
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/lucre-fin/lucre/internal/model"
	"github.com/lucre-fin/lucre/internal/textnorm"
)

// Scoring parameters for the cosine stage.
const (
	exactMatchConfidence = 95.0
	similarityFloor      = 0.30
	topMatches           = 5

	similarityWeight = 0.70
	popularityWeight = 0.20
	baselineWeight   = 0.10
)

// Example is one training-corpus entry: a curated seed or an imported user
// correction.
type Example struct {
	Description string
	Normalized  string
	Category    string
	Subcategory string
	Kind        model.TransactionKind
	FromUser    bool
	terms       []string
}

// Prediction is the classifier's output for one description.
type Prediction struct {
	Category     string
	Subcategory  string
	Confidence   float64
	FeaturesUsed []string
}

// Classifier scores descriptions against its training corpus.
type Classifier struct {
	examples []Example
	docFreq  map[string]int
	byExact  map[string]int // normalized description -> example index
	mu       sync.RWMutex
}

// NewClassifier creates a classifier over the given corpus. Pass
// SeedExamples() for the shipped curated set.
func NewClassifier(examples []Example) *Classifier {
	c := &Classifier{
		docFreq: make(map[string]int),
		byExact: make(map[string]int),
	}
	for _, ex := range examples {
		c.addLocked(ex)
	}
	return c
}

// AddExample appends a training example and rebuilds the affected term
// statistics. Used by the learning loop to inject user corrections.
func (c *Classifier) AddExample(ex Example) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addLocked(ex)
}

// CorpusSize returns the number of training examples.
func (c *Classifier) CorpusSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.examples)
}

func (c *Classifier) addLocked(ex Example) {
	if ex.Normalized == "" {
		ex.Normalized = strings.ToLower(strings.TrimSpace(ex.Description))
	}
	ex.terms = terms(ex.Normalized)

	c.examples = append(c.examples, ex)
	c.byExact[ex.Normalized] = len(c.examples) - 1

	seen := make(map[string]struct{}, len(ex.terms))
	for _, t := range ex.terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		c.docFreq[t]++
	}
}

// Predict classifies a description, or returns nil when no stage produces a
// usable signal.
func (c *Classifier) Predict(description string, kind model.TransactionKind) *Prediction {
	normalized := strings.ToLower(strings.TrimSpace(description))
	if normalized == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	// Stage 1: exact corpus match.
	if idx, ok := c.byExact[normalized]; ok {
		ex := c.examples[idx]
		if ex.Kind == "" || ex.Kind == kind {
			return &Prediction{
				Category:     ex.Category,
				Subcategory:  ex.Subcategory,
				Confidence:   exactMatchConfidence,
				FeaturesUsed: []string{"exact_match"},
			}
		}
	}

	// Stage 2: TF-IDF cosine against the corpus.
	if pred := c.predictByCosine(normalized, kind); pred != nil {
		return pred
	}

	// Stage 3: structural rules.
	return predictByStructure(description)
}

type scoredMatch struct {
	example    *Example
	similarity float64
	blended    float64
}

func (c *Classifier) predictByCosine(normalized string, kind model.TransactionKind) *Prediction {
	queryTerms := terms(normalized)
	if len(queryTerms) == 0 || len(c.examples) == 0 {
		return nil
	}
	queryVec := c.vectorize(queryTerms)

	categoryCounts := make(map[string]int, len(c.examples))
	eligible := 0
	for i := range c.examples {
		if c.examples[i].Kind == "" || c.examples[i].Kind == kind {
			categoryCounts[c.examples[i].Category]++
			eligible++
		}
	}
	if eligible == 0 {
		return nil
	}

	var matches []scoredMatch
	for i := range c.examples {
		ex := &c.examples[i]
		if ex.Kind != "" && ex.Kind != kind {
			continue
		}
		sim := cosine(queryVec, c.vectorize(ex.terms))
		if sim < similarityFloor {
			continue
		}
		popularity := float64(categoryCounts[ex.Category]) / float64(eligible)
		blended := similarityWeight*sim + popularityWeight*popularity + baselineWeight
		matches = append(matches, scoredMatch{example: ex, similarity: sim, blended: blended})
	}
	if len(matches) == 0 {
		return nil
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].blended > matches[j].blended
	})
	if len(matches) > topMatches {
		matches = matches[:topMatches]
	}

	best := matches[0]
	return &Prediction{
		Category:     best.example.Category,
		Subcategory:  best.example.Subcategory,
		Confidence:   best.blended * 100,
		FeaturesUsed: []string{"tfidf_cosine"},
	}
}

// Structural rule confidence bands.
const (
	bankCodeConfidence      = 60.0
	merchantShapeConfidence = 65.0
	currencyConfidence      = 62.0
)

// predictByStructure applies hand-written rules over extracted features.
func predictByStructure(description string) *Prediction {
	f := ExtractFeatures(description)

	// Mostly digits with a bank-code token: an operation, not a purchase.
	if f.HasShortAllCaps && f.DigitRatio > 0.4 {
		return &Prediction{
			Category:     "Tarifas Bancárias / Juros / Impostos / Taxas",
			Confidence:   bankCodeConfidence,
			FeaturesUsed: []string{"bank_code", "digit_ratio"},
		}
	}

	// Currency markers inline suggest a priced purchase.
	if f.CurrencyDensity > 0.3 {
		return &Prediction{
			Category:     "Compras",
			Confidence:   currencyConfidence,
			FeaturesUsed: []string{"currency_density"},
		}
	}

	// Two or three clean tokens look like a bare merchant name.
	if f.TokenCount >= 2 && f.TokenCount <= 3 && f.DigitRatio < 0.3 {
		return &Prediction{
			Category:     "Compras",
			Subcategory:  "Estabelecimento",
			Confidence:   merchantShapeConfidence,
			FeaturesUsed: []string{"token_count", "digit_ratio"},
		}
	}

	return nil
}

// terms builds the unigram+bigram term sequence for a normalized
// description.
func terms(normalized string) []string {
	tokens := textnorm.Tokenize(normalized)
	keywords := textnorm.ExtractKeywords(tokens)

	out := make([]string, 0, len(keywords)*2)
	out = append(out, keywords...)
	for i := 0; i+1 < len(keywords); i++ {
		out = append(out, keywords[i]+" "+keywords[i+1])
	}
	return out
}

// vectorize builds a term-frequency vector weighted by inverse corpus
// frequency.
func (c *Classifier) vectorize(termList []string) map[string]float64 {
	vec := make(map[string]float64, len(termList))
	for _, t := range termList {
		vec[t]++
	}

	n := float64(len(c.examples))
	for t, tf := range vec {
		df := float64(c.docFreq[t])
		idf := math.Log((n+1)/(df+1)) + 1
		vec[t] = tf * idf
	}
	return vec
}

// cosine computes cosine similarity between two sparse vectors.
func cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for t, av := range a {
		normA += av * av
		if bv, ok := b[t]; ok {
			dot += av * bv
		}
	}
	for _, bv := range b {
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
