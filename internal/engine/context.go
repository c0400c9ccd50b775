package engine

import (
	"regexp"

	"github.com/lucre-fin/lucre/internal/model"
)

// contextPattern classifies a transaction by boilerplate signal in the raw,
// uncleaned description. High-priority contexts (fees, interest, fines) are
// unambiguous regardless of merchant text and end arbitration immediately.
type contextPattern struct {
	regex        *regexp.Regexp
	category     string
	subcategory  string
	confidence   float64
	highPriority bool
}

const feeCategoryName = "Tarifas Bancárias / Juros / Impostos / Taxas"

var contextPatterns = []contextPattern{
	{regexp.MustCompile(`(?i)\b(tarifa|tar\.)\b`), feeCategoryName, "Tarifas", 80, true},
	{regexp.MustCompile(`(?i)\bjuros\b`), feeCategoryName, "Juros", 80, true},
	{regexp.MustCompile(`(?i)\b(multa|mora)\b`), feeCategoryName, "Multas", 80, true},
	{regexp.MustCompile(`(?i)\biof\b`), feeCategoryName, "Impostos", 80, true},
	{regexp.MustCompile(`(?i)\banuidade\b`), feeCategoryName, "Anuidade", 80, true},
	{regexp.MustCompile(`(?i)\bencargos?\b`), feeCategoryName, "Encargos", 80, true},
	{regexp.MustCompile(`(?i)\bpix\s+(enviado|transf)`), "Transferências", "PIX", 75, false},
	{regexp.MustCompile(`(?i)\bpix\s+recebido`), "Transferências Recebidas", "PIX", 75, false},
	{regexp.MustCompile(`(?i)\bted\s+(enviada|recebida)?`), "Transferências", "TED", 75, false},
	{regexp.MustCompile(`(?i)\btransfer[eê]ncia\b`), "Transferências", "", 75, false},
	{regexp.MustCompile(`(?i)\bsaque\b`), "Saques", "", 75, false},
}

// detectContext scans the raw description for banking-context signal.
// Returns the matching candidate (or nil) and whether it is a high-priority
// context that should short-circuit arbitration.
func detectContext(raw string, kind model.TransactionKind) (*model.Candidate, bool) {
	for _, cp := range contextPatterns {
		if !cp.regex.MatchString(raw) {
			continue
		}

		category := cp.category
		subcategory := cp.subcategory
		if !cp.highPriority && kind == model.KindIncome && category == "Transferências" {
			category = "Transferências Recebidas"
		}

		return &model.Candidate{
			Category:    category,
			Subcategory: subcategory,
			Method:      model.MethodBankingContext,
			Layer:       model.LayerBankingContext,
			Confidence:  cp.confidence,
		}, cp.highPriority
	}
	return nil, false
}
