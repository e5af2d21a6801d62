package models

import (
	"time"

	"github.com/google/uuid"
)

// Item types as they appear in run results and validation keys.
const (
	TypeProduct      = "product"
	TypeCategory     = "category"
	TypeManufacturer = "manufacturer"
)

// CatalogItem is a single record fetched from the PrestaShop API.
// Fields holds the canonical string value of every textual field; the
// multilingual/list shapes of the raw payload are flattened at ingestion.
type CatalogItem struct {
	ID     int               `json:"id"`
	Type   string            `json:"type"`
	Fields map[string]string `json:"fields"`
}

// RewriteStats compares a field before and after rewriting.
// BrandPreserved is nil when the protected brand phrase was never
// present in the original content.
type RewriteStats struct {
	OriginalLength    int   `json:"original_length"`
	NewLength         int   `json:"new_length"`
	OriginalWordCount int   `json:"original_word_count"`
	NewWordCount      int   `json:"new_word_count"`
	HTMLPreserved     bool  `json:"html_preserved"`
	PricePreserved    bool  `json:"price_preserved"`
	BrandPreserved    *bool `json:"brand_preserved"`
}

// FieldRewriteRecord captures one successfully rewritten field.
type FieldRewriteRecord struct {
	Field             string         `json:"field"`
	FieldName         string         `json:"field_name"`
	OriginalContent   string         `json:"original_content"`
	RewrittenContent  string         `json:"rewritten_content"`
	OriginalTextOnly  string         `json:"original_text_only"`
	RewrittenTextOnly string         `json:"rewritten_text_only"`
	Stats             RewriteStats   `json:"stats"`
	Keywords          map[string]int `json:"keywords"`
}

// SEOStats aggregates per-item counters.
type SEOStats struct {
	FieldsRewritten       int `json:"fields_rewritten"`
	TotalKeywordsAdded    int `json:"total_keywords_added"`
	HTMLStructureImproved int `json:"html_structure_improved"`
}

// ItemResult is the outcome of processing one catalog item.
type ItemResult struct {
	ID               int                  `json:"id"`
	Name             string               `json:"name"`
	Type             string               `json:"type"`
	HasBeenRewritten bool                 `json:"has_been_rewritten"`
	Rewrites         []FieldRewriteRecord `json:"rewrites"`
	SEOStats         SEOStats             `json:"seo_stats"`
}

// RunMetadata carries run-level counters.
type RunMetadata struct {
	Date                       time.Time `json:"date"`
	ShopURL                    string    `json:"url"`
	TotalProductsAnalyzed      int       `json:"total_products_analyzed"`
	TotalCategoriesAnalyzed    int       `json:"total_categories_analyzed"`
	TotalManufacturersAnalyzed int       `json:"total_manufacturers_analyzed"`
	ItemsRewritten             int       `json:"items_rewritten"`
}

// RunResults is the sole handoff artifact of a batch run. It is owned
// by the run that produced it and never mutated afterwards.
type RunResults struct {
	Metadata      RunMetadata  `json:"metadata"`
	Products      []ItemResult `json:"products"`
	Categories    []ItemResult `json:"categories"`
	Manufacturers []ItemResult `json:"manufacturers"`
	Errors        []string     `json:"errors"`
}

// Run is the persisted envelope of a completed batch run.
type Run struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Results   RunResults `json:"results" db:"results"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// ValidationRecord is a human reviewer's sign-off on one item,
// keyed "{type}_{id}".
type ValidationRecord struct {
	Key         string    `json:"key" db:"item_key"`
	ItemType    string    `json:"type" db:"item_type"`
	ItemID      int       `json:"id" db:"item_id"`
	Name        string    `json:"name" db:"name"`
	Validator   string    `json:"validator" db:"validator"`
	ValidatedAt time.Time `json:"timestamp" db:"validated_at"`
}

// ValidatedItem is one entry of the PrestaShop reimport export.
type ValidatedItem struct {
	Type     string               `json:"type"`
	ID       int                  `json:"id"`
	Name     string               `json:"name"`
	Rewrites []FieldRewriteRecord `json:"rewrites"`
}

// ValidatedExport is the "validated items only" export shape.
type ValidatedExport struct {
	Timestamp      time.Time       `json:"timestamp"`
	ValidatedCount int             `json:"validated_count"`
	Items          []ValidatedItem `json:"items"`
}
