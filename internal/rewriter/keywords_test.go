package rewriter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountKeywords(t *testing.T) {
	counts := CountKeywords("Ce E-Liquide contient de la nicotine. La vape et le vapotage sont réglementés. Cigarette électronique compatible.")

	assert.Equal(t, 1, counts["e-liquide"])
	assert.Equal(t, 1, counts["nicotine"])
	assert.Equal(t, 1, counts["vapotage"])
	assert.Equal(t, 1, counts["cigarette électronique"])
	assert.Equal(t, 1, counts["vape"])
}

func TestCountKeywordsZeroesIncluded(t *testing.T) {
	counts := CountKeywords("Texte sans aucun terme du domaine.")
	require.Len(t, counts, 5)
	for kw, n := range counts {
		assert.Zero(t, n, "keyword %q", kw)
	}
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "Kit complet", StripTags("<p>Kit <strong>complet</strong></p>"))
	assert.Equal(t, "sans balises", StripTags("sans balises"))
}

func TestComputeStats(t *testing.T) {
	t.Run("lengths and word counts", func(t *testing.T) {
		stats := computeStats("Un deux trois", "<p>Un deux</p>", false, false)
		assert.Equal(t, 13, stats.OriginalLength)
		assert.Equal(t, len("<p>Un deux</p>"), stats.NewLength)
		assert.Equal(t, 3, stats.OriginalWordCount)
		assert.Equal(t, 2, stats.NewWordCount)
		assert.True(t, stats.HTMLPreserved)
		assert.False(t, stats.PricePreserved)
		assert.Nil(t, stats.BrandPreserved)
	})

	t.Run("brand preserved true", func(t *testing.T) {
		stats := computeStats("Chez Le Vapoteur Discount", "Toujours chez Le Vapoteur Discount", true, false)
		require.NotNil(t, stats.BrandPreserved)
		assert.True(t, *stats.BrandPreserved)
	})

	t.Run("brand preserved false when casing changes", func(t *testing.T) {
		stats := computeStats("Chez Le Vapoteur Discount", "Chez le vapoteur discount", true, false)
		require.NotNil(t, stats.BrandPreserved)
		assert.False(t, *stats.BrandPreserved)
	})

	t.Run("brand flag unknown when phrase absent", func(t *testing.T) {
		stats := computeStats("Kit complet", "Kit simple", false, false)
		assert.Nil(t, stats.BrandPreserved)
	})

	t.Run("accented text counted in characters", func(t *testing.T) {
		stats := computeStats("éàüöè vapotage nicotine", "résumé réécrit", false, false)
		assert.Equal(t, 23, stats.OriginalLength)
		assert.Equal(t, 14, stats.NewLength)
	})
}
