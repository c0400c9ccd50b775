package dictionary

import (
	"strings"

	"github.com/lucre-fin/lucre/internal/model"
)

// builtinMerchants is the offline-safe fallback table of ubiquitous
// merchants, consulted only when the remote store produced nothing. Kept
// deliberately tiny; the seeded store dictionary is the real source.
var builtinMerchants = []model.DictionaryEntry{
	{Key: "ifood", DisplayName: "iFood", Category: "Alimentação", Subcategory: "Delivery", Kind: model.EntryMerchant, ConfidenceModifier: 0.95, Priority: 90},
	{Key: "rappi", DisplayName: "Rappi", Category: "Alimentação", Subcategory: "Delivery", Kind: model.EntryMerchant, ConfidenceModifier: 0.95, Priority: 90},
	{Key: "uber", DisplayName: "Uber", Category: "Transporte", Subcategory: "Aplicativo", Kind: model.EntryMerchant, ConfidenceModifier: 0.93, Priority: 85},
	{Key: "99app", DisplayName: "99", Category: "Transporte", Subcategory: "Aplicativo", Kind: model.EntryMerchant, Aliases: []string{"99 tecnologia"}, ConfidenceModifier: 0.93, Priority: 85},
	{Key: "netflix", DisplayName: "Netflix", Category: "Assinaturas", Subcategory: "Streaming", Kind: model.EntryMerchant, ConfidenceModifier: 0.95, Priority: 90},
	{Key: "spotify", DisplayName: "Spotify", Category: "Assinaturas", Subcategory: "Streaming", Kind: model.EntryMerchant, ConfidenceModifier: 0.95, Priority: 90},
	{Key: "amazon", DisplayName: "Amazon", Category: "Compras", Subcategory: "E-commerce", Kind: model.EntryMerchant, ConfidenceModifier: 0.9, Priority: 75},
	{Key: "mercado livre", DisplayName: "Mercado Livre", Category: "Compras", Subcategory: "E-commerce", Kind: model.EntryMerchant, Aliases: []string{"mercadolivre"}, ConfidenceModifier: 0.9, Priority: 75},
	{Key: "drogasil", DisplayName: "Drogasil", Category: "Saúde", Subcategory: "Farmácia", Kind: model.EntryMerchant, ConfidenceModifier: 0.92, Priority: 80},
	{Key: "posto shell", DisplayName: "Posto Shell", Category: "Transporte", Subcategory: "Combustível", Kind: model.EntryMerchant, Aliases: []string{"shell"}, ConfidenceModifier: 0.92, Priority: 80},
}

// findBuiltinMerchant scans the builtin table for a key or alias occurring
// in the lowercased description.
func findBuiltinMerchant(needle string) *model.DictionaryEntry {
	for i := range builtinMerchants {
		entry := &builtinMerchants[i]
		if strings.Contains(needle, entry.Key) {
			return entry
		}
		for _, alias := range entry.Aliases {
			if strings.Contains(needle, alias) {
				return entry
			}
		}
	}
	return nil
}
