package rewriter

import (
	"context"
	"fmt"
	"testing"

	"github.com/levapoteur/seorewriter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves catalog items from memory.
type fakeFetcher struct {
	ids     map[string][]int
	items   map[string]models.CatalogItem
	listErr error
}

func (f *fakeFetcher) ListIDs(_ context.Context, resource string, limit int) ([]int, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := f.ids[resource]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (f *fakeFetcher) Get(_ context.Context, resource string, id int) (*models.CatalogItem, error) {
	item, ok := f.items[fmt.Sprintf("%s/%d", resource, id)]
	if !ok {
		return nil, fmt.Errorf("not found: %s/%d", resource, id)
	}
	return &item, nil
}

func productItem(id int, short string) models.CatalogItem {
	return models.CatalogItem{
		ID:   id,
		Type: models.TypeProduct,
		Fields: map[string]string{
			"name":              fmt.Sprintf("Produit %d", id),
			"description_short": short,
		},
	}
}

func newTestDriver(f *fakeFetcher, response string) *Driver {
	return NewDriver(f, New(&fakeGenerator{response: response}), "https://shop.example", 0)
}

func TestRunByCountZeroMeansAll(t *testing.T) {
	fetcher := &fakeFetcher{
		ids: map[string][]int{"products": {1, 2, 3}},
		items: map[string]models.CatalogItem{
			"products/1": productItem(1, "Ce e-liquide délicieux offre un plaisir unique."),
			"products/2": productItem(2, "Un autre e-liquide savoureux et gourmand en stock."),
			"products/3": productItem(3, "Kit excellent pour débuter le vapotage facilement."),
		},
	}
	driver := newTestDriver(fetcher, "E-liquide avec nicotine 6mg/ml.")

	results := driver.RunByCount(context.Background(), ElementProducts, 0, nil)

	assert.Len(t, results.Products, 3)
	assert.Equal(t, 3, results.Metadata.TotalProductsAnalyzed)
	assert.Equal(t, 3, results.Metadata.ItemsRewritten)
	assert.Empty(t, results.Errors)
}

func TestRunByCountHonorsLimit(t *testing.T) {
	fetcher := &fakeFetcher{
		ids: map[string][]int{"products": {1, 2, 3}},
		items: map[string]models.CatalogItem{
			"products/1": productItem(1, "Ce e-liquide délicieux offre un plaisir unique."),
			"products/2": productItem(2, "Un autre e-liquide savoureux et gourmand en stock."),
		},
	}
	driver := newTestDriver(fetcher, "E-liquide avec nicotine 6mg/ml.")

	results := driver.RunByCount(context.Background(), ElementProducts, 2, nil)

	assert.Len(t, results.Products, 2)
	assert.Equal(t, 2, results.Metadata.TotalProductsAnalyzed)
}

func TestRunByIDsSkipsFetchFailures(t *testing.T) {
	fetcher := &fakeFetcher{
		items: map[string]models.CatalogItem{
			"products/1": productItem(1, "Ce e-liquide délicieux offre un plaisir unique."),
			"products/3": productItem(3, "Kit excellent pour débuter le vapotage facilement."),
		},
	}
	driver := newTestDriver(fetcher, "E-liquide avec nicotine 6mg/ml.")

	results := driver.RunByIDs(context.Background(), ElementProducts, []int{1, 2, 3}, nil)

	assert.Len(t, results.Products, 2)
	assert.Equal(t, 2, results.Metadata.TotalProductsAnalyzed)
	assert.Empty(t, results.Errors)
}

func TestRunListFailureRecordedNotFatal(t *testing.T) {
	fetcher := &fakeFetcher{listErr: fmt.Errorf("HTTP 503")}
	driver := newTestDriver(fetcher, "peu importe")

	results := driver.RunByCount(context.Background(), ElementProducts, 0, nil)

	require.Len(t, results.Errors, 1)
	assert.Contains(t, results.Errors[0], "products")
	assert.Empty(t, results.Products)
}

func TestRunAllTypes(t *testing.T) {
	fetcher := &fakeFetcher{
		ids: map[string][]int{
			"products":      {1},
			"categories":    {10},
			"manufacturers": {20},
		},
		items: map[string]models.CatalogItem{
			"products/1": productItem(1, "Ce e-liquide délicieux offre un plaisir unique."),
			"categories/10": {
				ID:   10,
				Type: models.TypeCategory,
				Fields: map[string]string{
					"name":        "Kits découverte",
					"description": "Une catégorie merveilleuse pour tous les goûts.",
				},
			},
			"manufacturers/20": {
				ID:   20,
				Type: models.TypeManufacturer,
				Fields: map[string]string{
					"name":              "Marque Exemple",
					"short_description": "Fabricant renommé de matériel de vapotage.",
				},
			},
		},
	}
	driver := newTestDriver(fetcher, "Texte factuel conforme sur le vapotage.")

	results := driver.RunByCount(context.Background(), ElementAll, 0, nil)

	assert.Len(t, results.Products, 1)
	assert.Len(t, results.Categories, 1)
	assert.Len(t, results.Manufacturers, 1)
	assert.Equal(t, 1, results.Metadata.TotalProductsAnalyzed)
	assert.Equal(t, 1, results.Metadata.TotalCategoriesAnalyzed)
	assert.Equal(t, 1, results.Metadata.TotalManufacturersAnalyzed)

	// Metadata invariant: items_rewritten counts rewritten items
	// across all three collections.
	rewritten := 0
	for _, coll := range [][]models.ItemResult{results.Products, results.Categories, results.Manufacturers} {
		for _, item := range coll {
			if item.HasBeenRewritten {
				rewritten++
			}
		}
	}
	assert.Equal(t, rewritten, results.Metadata.ItemsRewritten)
}

func TestRunProgressCallback(t *testing.T) {
	fetcher := &fakeFetcher{
		ids: map[string][]int{"products": {1, 2}},
		items: map[string]models.CatalogItem{
			"products/1": productItem(1, "Ce e-liquide délicieux offre un plaisir unique."),
			"products/2": productItem(2, "Un autre e-liquide savoureux et gourmand en stock."),
		},
	}
	driver := newTestDriver(fetcher, "E-liquide avec nicotine 6mg/ml.")

	type call struct {
		current, total int
		message        string
	}
	var calls []call
	results := driver.RunByCount(context.Background(), ElementProducts, 0, func(current, total int, message string) {
		calls = append(calls, call{current, total, message})
	})

	require.Len(t, results.Products, 2)
	// Two fetch notices plus two processing notices.
	require.Len(t, calls, 4)
	assert.Equal(t, call{1, 2, "Récupération Produit 1"}, calls[0])
	assert.Equal(t, call{1, 2, "Produit 1/2"}, calls[2])
	assert.Equal(t, call{2, 2, "Produit 2/2"}, calls[3])
}
