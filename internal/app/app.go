package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/sandeepkv93/product-catalog-api/internal/config"
	"github.com/sandeepkv93/product-catalog-api/internal/database"
	"github.com/sandeepkv93/product-catalog-api/internal/health"
	"github.com/sandeepkv93/product-catalog-api/internal/http/handler"
	"github.com/sandeepkv93/product-catalog-api/internal/http/router"
	"github.com/sandeepkv93/product-catalog-api/internal/observability"
	"github.com/sandeepkv93/product-catalog-api/internal/repository"
	"github.com/sandeepkv93/product-catalog-api/internal/service"
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Server        *http.Server
	Observability *observability.Runtime
	DB            *gorm.DB
	Readiness     *health.ProbeRunner
}

// Initialize builds the whole constructor graph: config, observability
// runtime, database, repository, service, handlers, router, server.
func Initialize(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	runtime, err := observability.InitRuntime(ctx, cfg, bootstrapLogger)
	if err != nil {
		return nil, err
	}
	logger := observability.InitLogger(cfg, runtime.LoggerProvider)

	db, err := database.Open(cfg)
	if err != nil {
		_ = runtime.Shutdown(ctx)
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = runtime.Shutdown(ctx)
		return nil, err
	}
	if cfg.SeedDemoData {
		if err := database.Seed(db); err != nil {
			_ = runtime.Shutdown(ctx)
			return nil, err
		}
	}

	productRepo := repository.NewProductRepository(db)
	productSvc := service.NewProductService(productRepo)
	productHandler := handler.NewProductHandler(productSvc)
	docsHandler := handler.NewDocsHandler()

	checkers := make([]health.Checker, 0, 1)
	if c := health.NewDBChecker(db); c != nil {
		checkers = append(checkers, c)
	}
	readiness := health.NewProbeRunner(cfg.ReadinessProbeTimeout, cfg.ServerStartGracePeriod, checkers...)

	h := router.NewRouter(router.Dependencies{
		ProductHandler: productHandler,
		DocsHandler:    docsHandler,
		CORSOrigins:    cfg.CORSAllowedOrigins,
		BodyLimitBytes: cfg.BodyLimitBytes,
		Readiness:      readiness,
		EnableOTelHTTP: cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		Config:        cfg,
		Logger:        logger,
		Server:        server,
		Observability: runtime,
		DB:            db,
		Readiness:     readiness,
	}, nil
}
