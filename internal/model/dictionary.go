package model

// EntryKind distinguishes the three dictionary entry variants.
type EntryKind string

const (
	// EntryMerchant identifies a known merchant or establishment.
	EntryMerchant EntryKind = "merchant"
	// EntryBankingPattern identifies bank-statement boilerplate with category signal.
	EntryBankingPattern EntryKind = "banking_pattern"
	// EntryKeyword identifies a single categorizing keyword.
	EntryKeyword EntryKind = "keyword"
)

// DictionaryEntry is a resolved dictionary record from the remote store or the
// builtin fallback table. Entries are immutable once fetched.
type DictionaryEntry struct {
	Key                string
	DisplayName        string
	Category           string
	Subcategory        string
	Kind               EntryKind
	Aliases            []string
	RegionTags         []string
	ConfidenceModifier float64 // in [0,1], scales the layer's base confidence
	Priority           int
}

// Confidence returns the entry's confidence on the 0-100 scale.
func (e *DictionaryEntry) Confidence() float64 {
	c := e.ConfidenceModifier * 100
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
