package textnorm

import (
	"regexp"
	"strings"
)

// boilerplatePatterns matches bank-statement boilerplate that pollutes
// merchant matching: payment-rail prefixes, masked documents, geographic
// suffixes. Order matters; prefixes are stripped before suffixes.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(pix|ted|doc)\s+(enviad[oa]|recebid[oa]|transf\w*|para|de)\b[:\-]?\s*`),
	regexp.MustCompile(`(?i)^(transferencia|transferência)\s+(enviada|recebida|pix|ted|doc)?\s*[:\-]?\s*`),
	regexp.MustCompile(`(?i)^(compra|pagamento|pagto|pag)\s+(com\s+)?(cartao|cartão|credito|crédito|debito|débito)\b[:\-]?\s*`),
	regexp.MustCompile(`(?i)^(debito|débito)\s+automatico\b[:\-]?\s*`),
	regexp.MustCompile(`(?i)^(boleto|deb|cred)[:\-]?\s+`),
	regexp.MustCompile(`\*{2,}[.\-\d*]*`),                          // masked CPF/CNPJ fragments
	regexp.MustCompile(`\b\d{2,3}\.\d{3}\.\d{3}[\/\-][\d*]+\b`),    // document numbers
	regexp.MustCompile(`(?i)\s+(br|bra|brasil)$`),                  // country suffix
	regexp.MustCompile(`(?i)\s+\-?\s*(ac|al|am|ap|ba|ce|df|es|go|ma|mg|ms|mt|pa|pb|pe|pi|pr|rj|rn|ro|rr|rs|sc|se|sp|to)$`), // state suffix
	regexp.MustCompile(`\s+\-\s*$`),
	regexp.MustCompile(`^\s*\-\s+`),
}

// genericCleanedRe matches cleaned output that is nothing but leftover
// rail boilerplate, which must not be mistaken for an entity name.
var genericCleanedRe = regexp.MustCompile(`(?i)^(pix|ted|doc|transf\w*|cartao|cartão|boleto)$`)

// Clean strips bank-statement boilerplate from a raw description, returning
// the cleaned text and the number of patterns removed. The raw description
// stays authoritative for context detection; the cleaned form exists only
// for entity identification.
func Clean(description string) (string, int) {
	cleaned := strings.TrimSpace(description)
	removed := 0

	for _, re := range boilerplatePatterns {
		next := re.ReplaceAllString(cleaned, " ")
		if next != cleaned {
			removed++
			cleaned = next
		}
	}

	cleaned = strings.Join(strings.Fields(cleaned), " ")
	return cleaned, removed
}

// IsUsableCleaned reports whether a cleaned description is still meaningful
// for entity lookup: at least 3 runes, at least one letter, and not a bare
// boilerplate token.
func IsUsableCleaned(cleaned string) bool {
	trimmed := strings.TrimSpace(cleaned)
	if len([]rune(trimmed)) < 3 {
		return false
	}
	if !hasLetter(trimmed) {
		return false
	}
	return !genericCleanedRe.MatchString(trimmed)
}
