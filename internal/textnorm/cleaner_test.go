package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantCleaned string
		wantRemoved int
	}{
		{
			name:        "pix prefix stripped",
			description: "PIX enviado Joao Silva",
			wantCleaned: "Joao Silva",
			wantRemoved: 1,
		},
		{
			name:        "card purchase prefix stripped",
			description: "Compra cartao IFOOD",
			wantCleaned: "IFOOD",
			wantRemoved: 1,
		},
		{
			name:        "masked document removed",
			description: "TED recebida ***.456.789-** Maria",
			wantCleaned: "Maria",
			wantRemoved: 2,
		},
		{
			name:        "state suffix removed",
			description: "PADARIA CENTRAL SP",
			wantCleaned: "PADARIA CENTRAL",
			wantRemoved: 1,
		},
		{
			name:        "plain description untouched",
			description: "Netflix assinatura",
			wantCleaned: "Netflix assinatura",
			wantRemoved: 0,
		},
		{
			name:        "empty input",
			description: "",
			wantCleaned: "",
			wantRemoved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, removed := Clean(tt.description)
			assert.Equal(t, tt.wantCleaned, cleaned)
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestIsUsableCleaned(t *testing.T) {
	tests := []struct {
		name    string
		cleaned string
		want    bool
	}{
		{"normal merchant", "Posto Shell", true},
		{"too short", "ab", false},
		{"no letters", "123 456", false},
		{"bare rail token", "pix", false},
		{"empty", "", false},
		{"short but valid", "gol", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUsableCleaned(tt.cleaned))
		})
	}
}
