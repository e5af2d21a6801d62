package rewriter

import (
	"context"
	"fmt"
	"time"

	"github.com/levapoteur/seorewriter/internal/models"
)

// Element types accepted by the run entry points, in the dashboard's
// vocabulary.
const (
	ElementProducts      = "Produits"
	ElementCategories    = "Catégories"
	ElementManufacturers = "Marques"
	ElementAll           = "Tout"
)

// ProgressFunc receives a progress notice before each unit of work. It
// is optional and has no effect on control flow.
type ProgressFunc func(current, total int, message string)

// CatalogFetcher lists and retrieves catalog records. Implemented by
// the PrestaShop client; faked in tests.
type CatalogFetcher interface {
	ListIDs(ctx context.Context, resource string, limit int) ([]int, error)
	Get(ctx context.Context, resource string, id int) (*models.CatalogItem, error)
}

// selection binds an API resource to its result collection and the
// label used in progress messages.
type selection struct {
	resource string
	itemType string
	label    string
}

var (
	selProducts      = selection{"products", models.TypeProduct, "Produit"}
	selCategories    = selection{"categories", models.TypeCategory, "Catégorie"}
	selManufacturers = selection{"manufacturers", models.TypeManufacturer, "Marque"}
)

func selections(elementType string) []selection {
	switch elementType {
	case ElementCategories:
		return []selection{selCategories}
	case ElementManufacturers:
		return []selection{selManufacturers}
	case ElementAll:
		return []selection{selProducts, selCategories, selManufacturers}
	default:
		return []selection{selProducts}
	}
}

// Driver iterates a catalog item set and feeds each item through the
// rewriter, accumulating one RunResults per run. Execution is strictly
// sequential; failures degrade to skipped items or unchanged fields,
// never to an aborted run.
type Driver struct {
	fetcher  CatalogFetcher
	rewriter *Rewriter
	shopURL  string
	pacing   time.Duration
}

func NewDriver(fetcher CatalogFetcher, rw *Rewriter, shopURL string, pacing time.Duration) *Driver {
	return &Driver{
		fetcher:  fetcher,
		rewriter: rw,
		shopURL:  shopURL,
		pacing:   pacing,
	}
}

func (d *Driver) newResults() *models.RunResults {
	return &models.RunResults{
		Metadata: models.RunMetadata{
			Date:    time.Now(),
			ShopURL: d.shopURL,
		},
		Products:      []models.ItemResult{},
		Categories:    []models.ItemResult{},
		Manufacturers: []models.ItemResult{},
		Errors:        []string{},
	}
}

// RunByCount processes the first limit items of the selected type(s).
// A limit of zero means the whole catalog.
func (d *Driver) RunByCount(ctx context.Context, elementType string, limit int, progress ProgressFunc) *models.RunResults {
	results := d.newResults()
	for _, sel := range selections(elementType) {
		d.runByCount(ctx, results, sel, limit, progress)
	}
	return results
}

// RunByIDs processes an explicit id list for one type; ids are only
// meaningful within a single resource, so "Tout" falls back to
// products. Ids that cannot be fetched are skipped silently.
func (d *Driver) RunByIDs(ctx context.Context, elementType string, ids []int, progress ProgressFunc) *models.RunResults {
	results := d.newResults()
	sel := selections(elementType)[0]
	d.fetchAndProcess(ctx, results, sel, ids, progress)
	return results
}

func (d *Driver) runByCount(ctx context.Context, results *models.RunResults, sel selection, limit int, progress ProgressFunc) {
	ids, err := d.fetcher.ListIDs(ctx, sel.resource, limit)
	if err != nil {
		results.Errors = append(results.Errors, fmt.Sprintf("liste %s: %v", sel.resource, err))
		return
	}
	d.fetchAndProcess(ctx, results, sel, ids, progress)
}

func (d *Driver) fetchAndProcess(ctx context.Context, results *models.RunResults, sel selection, ids []int, progress ProgressFunc) {
	items := make([]models.CatalogItem, 0, len(ids))
	for i, id := range ids {
		report(progress, i+1, len(ids), fmt.Sprintf("Récupération %s %d", sel.label, id))
		item, err := d.fetcher.Get(ctx, sel.resource, id)
		if err != nil {
			continue
		}
		items = append(items, *item)
	}

	d.setAnalyzed(results, sel, len(items))

	fields := FieldsFor(sel.itemType)
	for i, item := range items {
		if ctx.Err() != nil {
			return
		}
		report(progress, i+1, len(items), fmt.Sprintf("%s %d/%d", sel.label, i+1, len(items)))

		itemResult := d.rewriter.ProcessItem(ctx, item, sel.itemType, fields)
		d.appendResult(results, sel, itemResult)
		if itemResult.HasBeenRewritten {
			results.Metadata.ItemsRewritten++
		}

		if sel.itemType == models.TypeProduct && d.pacing > 0 {
			time.Sleep(d.pacing)
		}
	}
}

func (d *Driver) setAnalyzed(results *models.RunResults, sel selection, n int) {
	switch sel.itemType {
	case models.TypeCategory:
		results.Metadata.TotalCategoriesAnalyzed = n
	case models.TypeManufacturer:
		results.Metadata.TotalManufacturersAnalyzed = n
	default:
		results.Metadata.TotalProductsAnalyzed = n
	}
}

func (d *Driver) appendResult(results *models.RunResults, sel selection, r models.ItemResult) {
	switch sel.itemType {
	case models.TypeCategory:
		results.Categories = append(results.Categories, r)
	case models.TypeManufacturer:
		results.Manufacturers = append(results.Manufacturers, r)
	default:
		results.Products = append(results.Products, r)
	}
}

func report(progress ProgressFunc, current, total int, message string) {
	if progress != nil {
		progress(current, total, message)
	}
}
