package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"", language.English},
		{"en-US,en;q=0.9", language.English},
		{"pt-BR,pt;q=0.9,en;q=0.8", language.BrazilianPortuguese},
		{"pt", language.BrazilianPortuguese},
		{"not a header;;", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.header))
		})
	}
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Open", StatusLabel(language.English, "open"))
	assert.Equal(t, "Aberto", StatusLabel(language.BrazilianPortuguese, "open"))
	assert.Equal(t, "Utilizado", StatusLabel(language.BrazilianPortuguese, "used"))
	assert.Equal(t, "Scheduled", StatusLabel(language.English, "scheduled"))
	assert.Equal(t, "unknown", StatusLabel(language.BrazilianPortuguese, "unknown"))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, language.English, FromContext(context.Background()))

	ctx := WithLanguage(context.Background(), language.BrazilianPortuguese)
	assert.Equal(t, language.BrazilianPortuguese, FromContext(ctx))
}
