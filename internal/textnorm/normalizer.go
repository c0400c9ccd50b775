// Package textnorm normalizes bank-transaction descriptions for classification.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// Variants holds the derived representations of one description. Created
// fresh per classification call and never persisted.
type Variants struct {
	Original      string
	Normalized    string
	SplitCompound string
	Tokens        []string
	Keywords      []string
}

// Portuguese stopwords excluded from keyword extraction.
var stopwords = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
	"em": {}, "no": {}, "na": {}, "nos": {}, "nas": {},
	"com": {}, "sem": {}, "para": {}, "por": {}, "pela": {}, "pelo": {},
	"ao": {}, "aos": {}, "um": {}, "uma": {}, "the": {}, "and": {}, "ltda": {},
}

var (
	punctRe        = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	compoundCaseRe = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
	allDigitsRe    = regexp.MustCompile(`^\d+$`)
)

// Normalize derives every representation of a description the classifier
// layers consume. Pure and total: any input, including the empty string,
// yields a usable Variants value.
func Normalize(description string) Variants {
	normalized := strings.ToLower(strings.TrimSpace(description))

	split := SplitCompoundCase(description)
	tokens := Tokenize(normalized)

	return Variants{
		Original:      description,
		Normalized:    normalized,
		SplitCompound: split,
		Tokens:        tokens,
		Keywords:      ExtractKeywords(tokens),
	}
}

// SplitCompoundCase inserts spaces at lowercase-to-uppercase boundaries so
// glued merchant names ("PostoShell") tokenize correctly. Consecutive
// uppercase runs (abbreviations) are left intact. Returns "" when nothing
// was split.
func SplitCompoundCase(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	split := compoundCaseRe.ReplaceAllString(trimmed, "$1 $2")
	if split == trimmed {
		return ""
	}
	return strings.ToLower(split)
}

// Tokenize splits a lowercased description on punctuation and whitespace.
func Tokenize(normalized string) []string {
	cleaned := punctRe.ReplaceAllString(normalized, " ")
	return strings.Fields(cleaned)
}

// ExtractKeywords filters tokens down to the set useful for keyword lookup:
// at least 3 runes, not purely numeric, not a stopword. Order is preserved
// and duplicates are dropped.
func ExtractKeywords(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	keywords := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		if len([]rune(tok)) < 3 {
			continue
		}
		if allDigitsRe.MatchString(tok) {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}

	return keywords
}

// hasLetter reports whether the string contains at least one letter.
func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
