package model

import "sort"

// Method indicates which classification layer produced a result.
type Method string

// Classification method constants.
const (
	MethodUserLearned    Method = "USER_LEARNED"
	MethodUserCorrected  Method = "USER_CORRECTED"
	MethodMerchant       Method = "MERCHANT"
	MethodBankingContext Method = "BANKING_CONTEXT"
	MethodKeyword        Method = "KEYWORD"
	MethodSimilarity     Method = "SIMILARITY"
	MethodFallback       Method = "FALLBACK"
)

// Layer is the arbitration tier a candidate belongs to. Layers order
// candidates ahead of raw confidence; the numeric ranks below are the only
// place that ordering is defined.
type Layer int

// Arbitration layers, highest rank first.
const (
	LayerUserLearned Layer = iota
	LayerMerchant
	LayerMerchantSplit
	LayerBankingContext
	LayerKeyword
	LayerSimilarity
	LayerFallback
)

// layerPriorities maps each layer to its arbitration rank.
var layerPriorities = map[Layer]int{
	LayerUserLearned:    100,
	LayerMerchant:       95,
	LayerMerchantSplit:  93,
	LayerBankingContext: 85,
	LayerKeyword:        70,
	LayerSimilarity:     65,
	LayerFallback:       40,
}

// Priority returns the arbitration rank for the layer.
func (l Layer) Priority() int {
	return layerPriorities[l]
}

// Candidate is one layer's proposed classification for a description.
type Candidate struct {
	Category        string
	Subcategory     string
	Method          Method
	Layer           Layer
	Confidence      float64
	LearnedFromUser bool
}

// Result is the single classification returned to the caller.
type Result struct {
	Category        string
	Subcategory     string
	Method          Method
	Confidence      float64
	LearnedFromUser bool
}

// Result converts a candidate into the caller-facing result, clamping
// confidence into [0,100].
func (c Candidate) Result() Result {
	conf := c.Confidence
	if conf < 0 {
		conf = 0
	}
	if conf > 100 {
		conf = 100
	}
	return Result{
		Category:        c.Category,
		Subcategory:     c.Subcategory,
		Method:          c.Method,
		Confidence:      conf,
		LearnedFromUser: c.LearnedFromUser,
	}
}

// Less reports whether candidate a outranks candidate b: higher layer
// priority first, then higher confidence.
func Less(a, b Candidate) bool {
	if a.Layer.Priority() != b.Layer.Priority() {
		return a.Layer.Priority() > b.Layer.Priority()
	}
	return a.Confidence > b.Confidence
}

// Best returns the winning candidate, or false when the slice is empty.
func Best(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(sorted[i], sorted[j])
	})
	return sorted[0], true
}
