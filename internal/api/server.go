package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/levapoteur/seorewriter/internal/api/handlers"
	"github.com/levapoteur/seorewriter/internal/config"
	"github.com/levapoteur/seorewriter/internal/db"
	"github.com/levapoteur/seorewriter/internal/prestashop"
	"github.com/levapoteur/seorewriter/internal/rewriter"
)

type Server struct {
	echo    *echo.Echo
	config  *config.Config
	queries *db.Queries
	driver  *rewriter.Driver
}

func NewServer(cfg *config.Config, queries *db.Queries) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Wire the rewrite pipeline
	fetcher := prestashop.NewClient(cfg.PrestaShop.URL, cfg.PrestaShop.APIKey, cfg.PrestaShop.Timeout)
	generator := rewriter.NewOpenAIGenerator(cfg)
	driver := rewriter.NewDriver(fetcher, rewriter.New(generator), cfg.PrestaShop.URL, cfg.Rewrite.Pacing)

	s := &Server{
		echo:    e,
		config:  cfg,
		queries: queries,
		driver:  driver,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	api := s.echo.Group("/api")

	h := handlers.NewHandlers(s.config, s.queries, s.driver)

	// Runs
	api.POST("/runs", h.StartRun)
	api.GET("/runs", h.ListRuns)
	api.GET("/runs/:id", h.GetRun)
	api.GET("/runs/:id/export", h.ExportRun)
	api.GET("/runs/:id/export/validated", h.ExportValidated)

	// Validations
	api.POST("/validations", h.CreateValidation)
	api.GET("/validations", h.ListValidations)
	api.DELETE("/validations/:key", h.DeleteValidation)
}

func (s *Server) Start(ctx context.Context) error {
	addr := ":" + s.config.Server.Port
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
