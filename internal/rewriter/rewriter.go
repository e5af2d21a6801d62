package rewriter

import (
	"context"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/levapoteur/seorewriter/internal/models"
)

// Rewriter runs the per-field rewrite pipeline: split, prompt,
// generate, normalize, account.
type Rewriter struct {
	generator Generator
}

func New(generator Generator) *Rewriter {
	return &Rewriter{generator: generator}
}

// RewriteField rewrites one content field. Content shorter than 10
// trimmed characters comes back unchanged with no stats. On any
// generation failure the original content is returned, price prefix
// reattached, and the failure is logged; the batch goes on.
func (rw *Rewriter) RewriteField(ctx context.Context, content, fieldName, itemName, itemType string) (string, *models.RewriteStats, map[string]int) {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < 10 {
		return content, nil, nil
	}

	hasBrand := HasBrandPhrase(content)
	prefix, body := ExtractPricePrefix(fieldName, content)

	prompt := BuildPrompt(body, fieldName, itemName, itemType, prefix)

	generated, err := rw.generator.Generate(ctx, prompt)
	if err != nil {
		log.Printf("rewrite %q failed for %s %q: %v", fieldName, itemType, itemName, err)
		return prefix + body, nil, nil
	}

	rewritten := Normalize(generated, fieldName, prefix)

	stats := computeStats(prefix+body, rewritten, hasBrand, prefix != "")
	return rewritten, &stats, CountKeywords(rewritten)
}
