package rewriter

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/levapoteur/seorewriter/internal/models"
)

// seoKeywords is the fixed vocabulary counted in rewritten copy.
var seoKeywords = []string{
	"e-liquide",
	"vapotage",
	"cigarette électronique",
	"vape",
	"nicotine",
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CountKeywords counts case-insensitive occurrences of each SEO
// keyword. Every keyword appears in the result, zero counts included.
func CountKeywords(text string) map[string]int {
	lower := strings.ToLower(text)
	counts := make(map[string]int, len(seoKeywords))
	for _, kw := range seoKeywords {
		counts[kw] = strings.Count(lower, kw)
	}
	return counts
}

// StripTags removes markup tags, leaving only text content.
func StripTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

// computeStats builds the before/after accounting for one rewritten
// field. original must include the price prefix when one was
// extracted, so lengths reflect what the shop actually displays.
// Lengths are counted in characters, not bytes; accented French text
// makes the two diverge.
func computeStats(original, rewritten string, hadBrand, hadPrice bool) models.RewriteStats {
	stats := models.RewriteStats{
		OriginalLength:    utf8.RuneCountInString(original),
		NewLength:         utf8.RuneCountInString(rewritten),
		OriginalWordCount: len(strings.Fields(original)),
		NewWordCount:      len(strings.Fields(rewritten)),
		HTMLPreserved:     htmlTagRe.MatchString(rewritten),
		PricePreserved:    hadPrice,
	}
	if hadBrand {
		preserved := strings.Contains(rewritten, BrandPhrase)
		stats.BrandPreserved = &preserved
	}
	return stats
}
