package rewriter

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/levapoteur/seorewriter/internal/models"
)

// FieldLabel pairs a PrestaShop field key with its display label. The
// label doubles as the field type fed to the prompt builder, so field
// configuration stays ordered (maps would shuffle the rewrite order).
type FieldLabel struct {
	Key   string
	Label string
}

var productFields = []FieldLabel{
	{"name", "Nom du produit"},
	{"description_short", FieldShortDescription},
	{"meta_title", FieldMetaTitle},
	{"meta_description", FieldMetaDescription},
}

var categoryFields = []FieldLabel{
	{"name", "Nom de la catégorie"},
	{"description", FieldDescription},
	{"additional_description", "Informations complémentaires"},
	{"meta_title", "Balise titre"},
	{"meta_description", FieldMetaDescription},
}

var manufacturerFields = []FieldLabel{
	{"name", "Nom"},
	{"short_description", FieldSummary},
	{"description", FieldDescription},
	{"meta_title", "Balise titre"},
	{"meta_description", FieldMetaDescription},
}

// FieldsFor returns the ordered field configuration for an item type.
func FieldsFor(itemType string) []FieldLabel {
	switch itemType {
	case models.TypeCategory:
		return categoryFields
	case models.TypeManufacturer:
		return manufacturerFields
	default:
		return productFields
	}
}

// ProcessItem rewrites every configured field of one catalog item.
// Product names are never rewritten; blank and near-empty fields are
// skipped; a rewrite record is kept only when the generated text
// actually differs from the original.
func (rw *Rewriter) ProcessItem(ctx context.Context, item models.CatalogItem, itemType string, fields []FieldLabel) models.ItemResult {
	itemName := displayName(item, itemType)

	result := models.ItemResult{
		ID:       item.ID,
		Name:     itemName,
		Type:     itemType,
		Rewrites: []models.FieldRewriteRecord{},
	}

	for _, field := range fields {
		if itemType == models.TypeProduct && field.Key == "name" {
			continue
		}

		original, ok := item.Fields[field.Key]
		if !ok || utf8.RuneCountInString(strings.TrimSpace(original)) <= 5 {
			continue
		}

		originalText, _ := SplitHTML(original)

		rewritten, stats, keywords := rw.RewriteField(ctx, original, field.Label, itemName, itemType)
		if rewritten == original || stats == nil {
			continue
		}

		result.HasBeenRewritten = true
		result.SEOStats.FieldsRewritten++
		for _, n := range keywords {
			result.SEOStats.TotalKeywordsAdded += n
		}

		result.Rewrites = append(result.Rewrites, models.FieldRewriteRecord{
			Field:             field.Key,
			FieldName:         field.Label,
			OriginalContent:   original,
			RewrittenContent:  rewritten,
			OriginalTextOnly:  originalText,
			RewrittenTextOnly: StripTags(rewritten),
			Stats:             *stats,
			Keywords:          keywords,
		})
	}

	return result
}

// displayName derives the name used in prompts: markup stripped,
// capped at 100 characters, with a generic fallback when absent.
func displayName(item models.CatalogItem, itemType string) string {
	name := strings.TrimSpace(StripTags(item.Fields["name"]))
	if name == "" {
		return fmt.Sprintf("%s %d", itemType, item.ID)
	}
	runes := []rune(name)
	if len(runes) > 100 {
		return string(runes[:100])
	}
	return name
}
