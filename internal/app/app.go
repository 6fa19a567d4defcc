package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"probe-metrics/internal/aggregators"
	"probe-metrics/internal/events"
	"probe-metrics/internal/flushers"
	internalhttp "probe-metrics/internal/http"
	"probe-metrics/internal/ingestors"
	"probe-metrics/internal/matchers"
	"probe-metrics/internal/measures"
	"probe-metrics/internal/models"
	"probe-metrics/internal/notifiers"
	"probe-metrics/internal/probes"
	"probe-metrics/internal/routing"
	"probe-metrics/internal/shared/configs"
	"probe-metrics/internal/shared/filestorages"
	"probe-metrics/internal/shared/loggers"
	"probe-metrics/internal/stores"
	"probe-metrics/internal/streams"

	"github.com/benbjohnson/clock"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	probes           []*models.Probe
	provisioner      stores.Provisioner
	scheduler        flushers.Scheduler
	envelopeConsumer streams.EnvelopeConsumer
	closeStore       func()

	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance. Invalid probes are dropped
// with a warning, or fail initialization under the strict policy.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "probe-metrics").
		Logger()
	ctx := appLogger.WithContext(context.Background())

	// Compile probes
	definitions, err := configs.LoadProbeDefinitions(config.Probes.DefinitionsFile)
	if err != nil {
		return nil, err
	}
	policy := probes.Policy(config.Probes.Policy)
	compiled, err := probes.NewCompiler(policy).Compile(definitions)
	if err != nil {
		return nil, fmt.Errorf("failed to compile probes: %w", err)
	}
	for _, rejected := range compiled.Rejected {
		appLogger.Warn().Err(rejected).Msg("probe dropped")
	}

	// Register content filters
	matcher := matchers.NewMatcher()
	table, failed := routing.Build(ctx, compiled.Probes, matcher)
	for _, err := range failed {
		appLogger.Warn().Err(err).Msg("probe dropped")
	}
	if policy == probes.PolicyStrict && len(failed) > 0 {
		return nil, fmt.Errorf("failed to register probes: %w", failed[0])
	}
	active := table.Active()

	seed := config.Sampler.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	store := measures.NewStore(active, measures.NewReservoir(seed))

	// Initialize measure store
	measureStore, closeStore, err := newMeasureStore(ctx, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize measure store: %w", err)
	}

	// Initialize flushing
	clk := clock.New()
	hub := notifiers.NewHub()
	coordinator := flushers.NewCoordinator(config.Storage.Index, measureStore, hub, clk)
	flushLogger := appLogger.With().Str(loggers.FieldComponent, "flusher").Logger()
	scheduler := flushers.NewScheduler(store, coordinator, clk, flushLogger)

	// Initialize stream queue
	engine := aggregators.NewEngine(table, store, matcher, scheduler)
	envelopeQueue := streams.NewPartitionedQueue[events.Envelope](config.Stream.Partitions, config.Stream.Buffer)
	consumerLogger := appLogger.With().Str(loggers.FieldComponent, "consumer").Logger()
	envelopeConsumer := streams.NewEnvelopeConsumer(envelopeQueue, engine, consumerLogger)

	// Initialize ingestionService
	envelopeProducer := streams.NewEnvelopeProducer(envelopeQueue)
	ingestionService := ingestors.NewIngestionService(envelopeProducer)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, aggregators.NewInspector(store, clk), hub, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:           config,
		appLogger:        appLogger,
		server:           server,
		probes:           active,
		provisioner:      stores.NewProvisioner(measureStore),
		scheduler:        scheduler,
		envelopeConsumer: envelopeConsumer,
		closeStore:       closeStore,
	}, nil
}

func newMeasureStore(ctx context.Context, config configs.StorageConfig) (stores.MeasureStore, func(), error) {
	switch config.Backend {
	case configs.StorageBackendPostgres:
		poolConfig, err := pgxpool.ParseConfig(config.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid postgres dsn: %w", err)
		}
		if config.PostgresMaxConnections > 0 {
			poolConfig.MaxConns = config.PostgresMaxConnections
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create postgres pool: %w", err)
		}
		return stores.NewPostgresMeasureStore(pool), pool.Close, nil
	default:
		fileStorage, err := filestorages.NewFileStorage(config.RootDir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return stores.NewFileMeasureStore(fileStorage), func() {}, nil
	}
}

// Start provisions storage for the active probes, starts the flush workers
// and the stream consumers, then serves HTTP in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting probe-metrics service on port %d (log_level=%s, storage=%s, index=%s, probes=%d)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.Storage.Backend,
			app.config.Storage.Index,
			len(app.probes))

	app.backgroundCtx, app.backgroundCancel = context.WithCancel(app.appLogger.WithContext(context.Background()))

	if err := app.provisioner.Provision(app.backgroundCtx, app.config.Storage.Index, app.probes); err != nil {
		return fmt.Errorf("failed to provision storage: %w", err)
	}

	// start background workers
	app.scheduler.Start(app.backgroundCtx)
	app.envelopeConsumer.Start(app.backgroundCtx)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Drain queued envelopes into the engine
	app.envelopeConsumer.Stop()
	app.appLogger.Info().Msg("Stream consumers stopped")

	// 3) Stop tickers and wait for in-flight flushes
	app.scheduler.Stop()
	if app.backgroundCancel != nil {
		app.backgroundCancel()
	}
	app.appLogger.Info().Msg("Flush workers stopped")

	// 4) Release the measure store
	app.closeStore()
	return nil
}
