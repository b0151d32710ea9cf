package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/config"
	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/providers/temporal"
	"github.com/feral-file/ionic-indexer/internal/ratelimit"
	"github.com/feral-file/ionic-indexer/internal/store"
	"github.com/feral-file/ionic-indexer/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadContentWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         "ionic-content-worker",
		Tags: map[string]string{
			"service": "ionic-content-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Ionic Content Worker")

	// Connect to database
	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN(), cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	dataStore := store.NewGormStore(db)
	logger.InfoCtx(ctx, "Connected to database", zap.String("driver", cfg.Database.Driver))

	// Initialize content resolver
	httpClient := adapter.NewHTTPClient(cfg.Content.HTTPTimeout, cfg.Content.MaxFetchElapsed)
	gatewayLimiter := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.Content.GatewayRequestsPerSecond,
		Burst:             cfg.Content.GatewayBurst,
	})
	resolver := content.NewResolver(
		dataStore,
		content.NewGatewayFetcher(httpClient, cfg.URI.IPFSGateways, gatewayLimiter),
		content.NewParser(nil, cfg.Content.LegacyBaseDescription),
		adapter.NewJCS(),
		nil,
	)
	executor := workflows.NewExecutor(resolver, adapter.NewActivity())

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()

	logger.InfoCtx(ctx, "Connected to Temporal",
		zap.String("host_port", cfg.Temporal.HostPort),
		zap.String("namespace", cfg.Temporal.Namespace),
	)

	// Create Temporal worker with the Sentry interceptor
	temporalWorker := worker.New(temporalClient,
		cfg.Temporal.ContentTaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors: []interceptor.WorkerInterceptor{
				temporal.NewSentryActivityInterceptor(),
			},
		})

	contentWorker := workflows.NewWorker(executor, workflows.WorkerConfig{
		ActivityTimeout: cfg.Content.ActivityTimeout,
		MaximumAttempts: cfg.Content.MaximumAttempts,
	})

	temporalWorker.RegisterWorkflow(contentWorker.ResolveContentWorkflow)
	temporalWorker.RegisterActivity(executor.ResolveContent)
	logger.InfoCtx(ctx, "Registered content workflows and activities")

	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start Temporal worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Content worker started", zap.String("task_queue", cfg.Temporal.ContentTaskQueue))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.InfoCtx(ctx, "Shutting down content worker...")
	temporalWorker.Stop()
	logger.InfoCtx(ctx, "Content worker stopped")
}
