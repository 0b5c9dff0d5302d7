// Package app assembles the full service from configuration: storage, brand
// dataset, predictor, application services, HTTP router and server.  Both the
// API server binary and the CLI serve command boot through it.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/application/assistant"
	appMeas "github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/application/measurement"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/config"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/domain/brand"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/dataset"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/logging"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/monitoring/metrics"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/persistence"
	pgstore "github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/infrastructure/persistence/postgres"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/intelligence/bodynet"
	httpiface "github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/interfaces/http"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/interfaces/http/handlers"
	"github.com/JITHIN-Ji/swakarthi-measurement-prediction/internal/interfaces/http/middleware"
	apperrors "github.com/JITHIN-Ji/swakarthi-measurement-prediction/pkg/errors"
)

// App is a fully wired service instance.
type App struct {
	cfg     *config.Config
	logger  logging.Logger
	metrics *metrics.Metrics
	store   persistence.Store
	model   *bodynet.Manager
	watcher *dataset.Watcher
	server  *httpiface.Server
}

// unloadedPredictor stands in when the model artifact cannot even be opened.
// The service stays up; predictions report the model as not initialized.
type unloadedPredictor struct{}

func (unloadedPredictor) Loaded() bool { return false }

func (unloadedPredictor) Predict(context.Context, []float64) ([]float64, error) {
	return nil, apperrors.ModelNotLoaded()
}

// New wires an App from configuration.  A missing or invalid model artifact
// is not fatal: the server starts with the predictor unloaded, matching the
// health endpoint's model_loaded flag.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	store, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	var predictor appMeas.Predictor = unloadedPredictor{}
	var model *bodynet.Manager
	backend, err := bodynet.NewArtifactBackend(cfg.Model.ArtifactPath)
	if err != nil {
		logger.Error("failed to open model artifact, predictions disabled",
			logging.String("path", cfg.Model.ArtifactPath),
			logging.Err(err))
	} else {
		model, err = bodynet.NewManager(bodynet.ManagerConfig{
			ArtifactPath: cfg.Model.ArtifactPath,
			Timeout:      cfg.Model.Timeout,
		}, backend, logger)
		if err != nil {
			store.Close()
			return nil, err
		}
		if err := model.Load(ctx); err != nil {
			logger.Error("model load failed, predictions disabled", logging.Err(err))
		}
		predictor = model
	}
	if m != nil {
		if predictor.Loaded() {
			m.ModelState.Set(1)
		} else {
			m.ModelState.Set(0)
		}
	}

	resolver := brand.NewResolver(cfg.Dataset.Path, logger)
	service := appMeas.NewService(store, resolver, predictor, logger, m)

	var assistantHandler *handlers.AssistantHandler
	if cfg.Assistant.Enabled {
		apiKey := cfg.Assistant.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		generator, err := assistant.NewGeminiGenerator(ctx, apiKey, cfg.Assistant.Model)
		if err != nil {
			logger.Warn("assistant disabled", logging.Err(err))
		} else {
			assistantHandler = handlers.NewAssistantHandler(assistant.NewService(generator, logger), logger, m)
		}
	}

	var watcher *dataset.Watcher
	if cfg.Dataset.Watch {
		watcher, err = dataset.NewWatcher(cfg.Dataset.Path, logger, m)
		if err != nil {
			logger.Warn("dataset watcher disabled", logging.Err(err))
			watcher = nil
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowedOrigins = cfg.Server.AllowedOrigins
	}

	router := httpiface.NewRouter(httpiface.RouterConfig{
		Measurement: handlers.NewMeasurementHandler(service, logger),
		Health:      handlers.NewHealthHandler(service, cfg.Storage.File.Path, logger),
		Assistant:   assistantHandler,
		Logger:      logger,
		Metrics:     m,
		CORS:        corsCfg,
	})

	return &App{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		store:   store,
		model:   model,
		watcher: watcher,
		server:  httpiface.NewServer(cfg.Server, router, logger),
	}, nil
}

func newStore(cfg *config.Config, logger logging.Logger) (persistence.Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		db, err := pgstore.Connect(cfg.Storage.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Storage.Postgres.MigrationsPath != "" {
			if err := pgstore.RunMigrations(cfg.Storage.Postgres.DSN(), cfg.Storage.Postgres.MigrationsPath); err != nil {
				db.Close()
				return nil, err
			}
		}
		return pgstore.NewStore(db, logger), nil
	case "file":
		return persistence.NewFileStore(cfg.Storage.File.Path, logger), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// Run serves until ctx is cancelled or the listener fails, then shuts down
// gracefully and releases resources.
func (a *App) Run(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.watcher != nil {
		go a.watcher.Run(runCtx)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- a.server.Start() }()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
	}

	if err := a.server.Stop(context.Background()); err != nil {
		a.logger.Error("shutdown error", logging.Err(err))
	}
	err := <-errCh
	a.close()
	return err
}

func (a *App) close() {
	if a.model != nil {
		if err := a.model.Unload(); err != nil {
			a.logger.Warn("model unload failed", logging.Err(err))
		}
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("store close failed", logging.Err(err))
	}
}

// Addr returns the HTTP listen address.
func (a *App) Addr() string {
	return a.server.Addr()
}
