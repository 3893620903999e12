package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/velora/shoprec/internal/artifacts"
	"github.com/velora/shoprec/internal/cache"
	"github.com/velora/shoprec/internal/config"
	"github.com/velora/shoprec/internal/database"
	"github.com/velora/shoprec/internal/handlers"
	"github.com/velora/shoprec/internal/middleware"
	"github.com/velora/shoprec/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

// New performs the whole construction sequence: connections, read-only table
// materialization, artifact loading, core wiring, router setup. Any missing
// required input fails construction; no partial application serves requests.
func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	ctx := context.Background()

	catalog, err := database.LoadCatalog(ctx, db.PG, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	interactions, err := database.LoadInteractions(ctx, db.PG, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load interaction log: %w", err)
	}

	registry, err := artifacts.Load(&cfg.Artifacts, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifacts: %w", err)
	}

	store, err := app.setupCacheStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache store: %w", err)
	}

	svc, err := services.New(cfg, app.logger, catalog, interactions, registry, store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = svc

	app.handlers = handlers.New(cfg, app.logger, svc, db.PG, catalog.Len())

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		return err
	}

	return nil
}

func (a *App) setupCacheStore() (cache.Store, error) {
	switch a.config.Cache.Backend {
	case "redis":
		return cache.NewRedisStore(a.db.Redis, a.config.Recommendation.ColdStartTTL), nil
	default:
		return cache.NewFileStore(a.config.Cache.Dir)
	}
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	// Health check endpoint (no auth required)
	router.GET("/health", a.handlers.Health.Check)

	// Prometheus metrics endpoint (no auth required)
	if a.config.Monitoring.Enabled {
		router.GET(a.config.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	// API routes
	api := router.Group("/api/v1")
	{
		api.Use(middleware.Auth(&a.config.Auth, a.logger))

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/:userId", a.handlers.Recommendation.Get)
			recommendations.GET("/:userId/product/:productId", a.handlers.Recommendation.GetForProduct)
		}
	}

	a.router = router
}
