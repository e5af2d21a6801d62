package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/levapoteur/seorewriter/internal/config"
	"github.com/levapoteur/seorewriter/internal/db"
	"github.com/levapoteur/seorewriter/internal/models"
	"github.com/levapoteur/seorewriter/internal/rewriter"
)

type Handlers struct {
	config  *config.Config
	queries *db.Queries
	driver  *rewriter.Driver
}

func NewHandlers(cfg *config.Config, queries *db.Queries, driver *rewriter.Driver) *Handlers {
	return &Handlers{
		config:  cfg,
		queries: queries,
		driver:  driver,
	}
}

// RunRequest selects what a batch run processes: the first Count items
// of a type ("count" mode, zero meaning all), or an explicit id list
// like "424-426,430" ("ids" mode).
type RunRequest struct {
	Mode  string `json:"mode"`
	Type  string `json:"type"`
	Count int    `json:"count"`
	IDs   string `json:"ids"`
}

// StartRun executes a batch run synchronously, persists it and returns
// the results.
func (h *Handlers) StartRun(c echo.Context) error {
	var req RunRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	elementType := req.Type
	if elementType == "" {
		elementType = rewriter.ElementProducts
	}

	ctx := c.Request().Context()
	progress := func(current, total int, message string) {
		log.Printf("run progress: %s (%d/%d)", message, current, total)
	}

	var results *models.RunResults
	switch req.Mode {
	case "ids":
		ids, invalid := rewriter.ParseIDList(req.IDs)
		if len(ids) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "No valid ids in selection")
		}
		results = h.driver.RunByIDs(ctx, elementType, ids, progress)
		for _, token := range invalid {
			results.Errors = append(results.Errors, fmt.Sprintf("id invalide: %q", token))
		}
	default:
		results = h.driver.RunByCount(ctx, elementType, req.Count, progress)
	}

	run := models.Run{
		ID:        uuid.New(),
		Results:   *results,
		CreatedAt: time.Now(),
	}
	if err := h.queries.CreateRun(ctx, run); err != nil {
		log.Printf("persist run %s: %v", run.ID, err)
	}

	return c.JSON(http.StatusOK, run)
}

func (h *Handlers) ListRuns(c echo.Context) error {
	runs, err := h.queries.ListRuns(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list runs")
	}
	if runs == nil {
		runs = []models.Run{}
	}
	return c.JSON(http.StatusOK, runs)
}

func (h *Handlers) GetRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid run id")
	}
	run, err := h.queries.GetRun(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Run not found")
	}
	return c.JSON(http.StatusOK, run)
}

// ExportRun downloads the full RunResults of a run as JSON.
func (h *Handlers) ExportRun(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid run id")
	}
	run, err := h.queries.GetRun(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Run not found")
	}

	filename := fmt.Sprintf("resultats_complets_%s.json", run.CreatedAt.Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(http.StatusOK, run.Results)
}

// ExportValidated downloads the validated items of a run in the shape
// expected for PrestaShop reimport.
func (h *Handlers) ExportValidated(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid run id")
	}

	ctx := c.Request().Context()
	run, err := h.queries.GetRun(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Run not found")
	}

	validations, err := h.queries.ListValidations(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list validations")
	}

	export := BuildValidatedExport(&run.Results, validations)

	filename := fmt.Sprintf("prestashop_import_%s.json", time.Now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.JSON(http.StatusOK, export)
}

// BuildValidatedExport filters a run down to the items a human
// reviewer signed off on.
func BuildValidatedExport(results *models.RunResults, validations []models.ValidationRecord) models.ValidatedExport {
	export := models.ValidatedExport{
		Timestamp: time.Now(),
		Items:     []models.ValidatedItem{},
	}

	collections := map[string][]models.ItemResult{
		models.TypeProduct:      results.Products,
		models.TypeCategory:     results.Categories,
		models.TypeManufacturer: results.Manufacturers,
	}

	for _, v := range validations {
		for _, item := range collections[v.ItemType] {
			if item.ID != v.ItemID {
				continue
			}
			export.Items = append(export.Items, models.ValidatedItem{
				Type:     v.ItemType,
				ID:       item.ID,
				Name:     item.Name,
				Rewrites: item.Rewrites,
			})
			break
		}
	}

	export.ValidatedCount = len(export.Items)
	return export
}

// ValidationRequest is a reviewer's sign-off on one rewritten item.
type ValidationRequest struct {
	Type      string `json:"type"`
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Validator string `json:"validator"`
}

func (h *Handlers) CreateValidation(c echo.Context) error {
	var req ValidationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.Validator) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Validator name is required")
	}
	switch req.Type {
	case models.TypeProduct, models.TypeCategory, models.TypeManufacturer:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown item type")
	}

	record := models.ValidationRecord{
		Key:         fmt.Sprintf("%s_%d", req.Type, req.ID),
		ItemType:    req.Type,
		ItemID:      req.ID,
		Name:        req.Name,
		Validator:   req.Validator,
		ValidatedAt: time.Now(),
	}
	if err := h.queries.UpsertValidation(c.Request().Context(), record); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save validation")
	}
	return c.JSON(http.StatusOK, record)
}

func (h *Handlers) ListValidations(c echo.Context) error {
	records, err := h.queries.ListValidations(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list validations")
	}
	if records == nil {
		records = []models.ValidationRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

func (h *Handlers) DeleteValidation(c echo.Context) error {
	if err := h.queries.DeleteValidation(c.Request().Context(), c.Param("key")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete validation")
	}
	return c.NoContent(http.StatusNoContent)
}
