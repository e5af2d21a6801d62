package rewriter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPricePrefix(t *testing.T) {
	t.Run("meta description with price", func(t *testing.T) {
		prefix, rest := ExtractPricePrefix(FieldMetaDescription, "Prix : 19,90 € | Kit complet avec batterie.")
		assert.Equal(t, "Prix : 19,90 € | ", prefix)
		assert.Equal(t, "Kit complet avec batterie.", rest)
	})

	t.Run("prefix is byte identical after reattachment", func(t *testing.T) {
		content := "Prix : 4,90 € | E-liquide fruité 10ml."
		prefix, rest := ExtractPricePrefix(FieldMetaDescription, content)
		assert.Equal(t, content, prefix+rest)
	})

	t.Run("meta description without price", func(t *testing.T) {
		prefix, rest := ExtractPricePrefix(FieldMetaDescription, "Kit complet avec batterie.")
		assert.Empty(t, prefix)
		assert.Equal(t, "Kit complet avec batterie.", rest)
	})

	t.Run("other fields never extract", func(t *testing.T) {
		prefix, rest := ExtractPricePrefix(FieldDescription, "Prix : 19,90 € | Kit complet.")
		assert.Empty(t, prefix)
		assert.Equal(t, "Prix : 19,90 € | Kit complet.", rest)
	})

	t.Run("price mid-content is not a prefix", func(t *testing.T) {
		prefix, _ := ExtractPricePrefix(FieldMetaDescription, "Kit à Prix : 19,90 € | réduit.")
		assert.Empty(t, prefix)
	})
}

func TestTargetLength(t *testing.T) {
	tests := []struct {
		field    string
		hasPrice bool
		want     string
	}{
		{FieldShortDescription, false, "50-100 mots"},
		{FieldDescription, false, "200-400 mots"},
		{FieldMetaDescription, false, "140-150 caractères"},
		{FieldMetaDescription, true, "100-120 caractères"},
		{FieldMetaTitle, false, "50-60 caractères"},
		{"Balise titre", false, "100-200 mots"},
		{"Champ inconnu", false, "100-200 mots"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, targetLength(tt.field, tt.hasPrice), "field %q", tt.field)
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Run("includes content and targets", func(t *testing.T) {
		prompt := BuildPrompt("Kit complet avec batterie.", FieldShortDescription, "Kit Démarrage", "product", "")
		assert.Contains(t, prompt, "Kit complet avec batterie.")
		assert.Contains(t, prompt, "Kit Démarrage")
		assert.Contains(t, prompt, "50-100 mots")
		assert.Contains(t, prompt, "FIVAPE")
		assert.Contains(t, prompt, "délicieux")
	})

	t.Run("brand clause only when phrase present", func(t *testing.T) {
		with := BuildPrompt("Disponible chez le vapoteur discount.", FieldDescription, "Kit", "product", "")
		assert.Contains(t, with, "CONSERVE EXACTEMENT")
		assert.Contains(t, with, BrandPhrase)

		without := BuildPrompt("Kit complet avec batterie.", FieldDescription, "Kit", "product", "")
		assert.NotContains(t, without, "CONSERVE EXACTEMENT")
	})

	t.Run("price clause when prefix extracted", func(t *testing.T) {
		prefix, rest := ExtractPricePrefix(FieldMetaDescription, "Prix : 19,90 € | Kit complet.")
		prompt := BuildPrompt(rest, FieldMetaDescription, "Kit", "product", prefix)
		assert.Contains(t, prompt, "NE PAS l'inclure")
		assert.Contains(t, prompt, "100-120 caractères")

		// The content block itself carries only the stripped text.
		contentStart := strings.Index(prompt, "CONTENU À RÉÉCRIRE")
		instructionStart := strings.Index(prompt, "TRÈS IMPORTANT")
		assert.NotContains(t, prompt[contentStart:instructionStart], "Prix :")
	})
}
