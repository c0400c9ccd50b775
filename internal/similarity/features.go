package similarity

import (
	"strings"
	"unicode"
)

// Features are the structural signals extracted from a description for the
// rule-based fallback stage.
type Features struct {
	TokenCount      int
	DigitRatio      float64
	CurrencyDensity float64
	HasShortAllCaps bool
}

var currencyMarkers = []string{"r$", "$", "brl", "usd", "€"}

// ExtractFeatures computes structural features over a raw description.
func ExtractFeatures(description string) Features {
	lower := strings.ToLower(description)
	tokens := strings.Fields(description)

	digits := 0
	total := 0
	for _, r := range description {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.IsDigit(r) {
			digits++
		}
	}

	digitRatio := 0.0
	if total > 0 {
		digitRatio = float64(digits) / float64(total)
	}

	currency := 0
	for _, marker := range currencyMarkers {
		currency += strings.Count(lower, marker)
	}
	currencyDensity := 0.0
	if total > 0 {
		currencyDensity = float64(currency) / float64(len(tokens)+1)
	}

	return Features{
		TokenCount:      len(tokens),
		DigitRatio:      digitRatio,
		CurrencyDensity: currencyDensity,
		HasShortAllCaps: hasShortAllCaps(tokens),
	}
}

// hasShortAllCaps reports whether any token is a short ALL-CAPS run, the
// shape of a bank operation code.
func hasShortAllCaps(tokens []string) bool {
	for _, tok := range tokens {
		runes := []rune(tok)
		if len(runes) < 2 || len(runes) > 5 {
			continue
		}
		caps := true
		letters := 0
		for _, r := range runes {
			if unicode.IsLetter(r) {
				letters++
				if !unicode.IsUpper(r) {
					caps = false
					break
				}
			}
		}
		if caps && letters >= 2 {
			return true
		}
	}
	return false
}
