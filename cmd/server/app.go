package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	apiMiddleware "github.com/phrazzld/wordsplit/internal/api/middleware"
	"github.com/phrazzld/wordsplit/internal/config"
	"github.com/phrazzld/wordsplit/internal/domain/segment"
	"github.com/phrazzld/wordsplit/internal/platform/postgres"
	"github.com/phrazzld/wordsplit/internal/service"
	"github.com/phrazzld/wordsplit/internal/service/auth"
	"github.com/phrazzld/wordsplit/internal/store"
)

// application holds the shared dependencies of the server and owns their
// cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	dictionaryStore store.DictionaryStore

	jwtService        auth.JWTService
	segmentService    segment.Service
	dictionaryService service.DictionaryService

	rateLimiter *apiMiddleware.RateLimiter
}

// newApplication wires stores, services and middleware dependencies.
// The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.segmentService, err = segment.NewServiceWithParams(segment.NewParams(segment.ParamsConfig{
		MaxTextLength: cfg.Segment.MaxTextLength,
		MaxWords:      cfg.Segment.MaxWords,
		MaxWordLength: cfg.Segment.MaxWordLength,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create segment service: %w", err)
	}

	app.dictionaryStore = postgres.NewPostgresDictionaryStore(db, logger)

	app.dictionaryService, err = service.NewDictionaryService(
		app.dictionaryStore,
		db,
		app.segmentService,
		service.DictionaryServiceConfig{
			CacheSize:        cfg.Segment.CacheSize,
			MaxBatchSize:     cfg.Segment.MaxBatchSize,
			BatchConcurrency: cfg.Segment.BatchConcurrency,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dictionary service: %w", err)
	}

	app.rateLimiter, err = apiMiddleware.NewRateLimiter(cfg.RateLimit, apiMiddleware.DefaultMaxClients)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limiter: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}
