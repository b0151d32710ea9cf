package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/aggregate"
	"github.com/feral-file/ionic-indexer/internal/api/server"
	"github.com/feral-file/ionic-indexer/internal/api/status"
	"github.com/feral-file/ionic-indexer/internal/config"
	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/indexer"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/metrics"
	"github.com/feral-file/ionic-indexer/internal/providers/ethereum"
	"github.com/feral-file/ionic-indexer/internal/providers/jetstream"
	"github.com/feral-file/ionic-indexer/internal/providers/temporal"
	"github.com/feral-file/ionic-indexer/internal/ratelimit"
	"github.com/feral-file/ionic-indexer/internal/store"
)

const serviceName = "ionic-worker"

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Service:         serviceName,
		Tags: map[string]string{
			"service": serviceName,
			"chain":   string(cfg.Ethereum.ChainID),
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Ionic Worker")

	// Connect to database
	db, err := store.Open(cfg.Database.Driver, cfg.Database.DSN(), cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
	}
	maxOpenConns := cfg.Database.MaxOpenConns
	if cfg.Database.Driver == store.DriverSQLite {
		maxOpenConns = 1
	}
	if err := store.ConfigureConnectionPool(db, maxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	dataStore := store.NewGormStore(db)
	logger.InfoCtx(ctx, "Connected to database", zap.String("driver", cfg.Database.Driver))

	// Metrics are served on /metrics of the status server
	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize ethereum client for the authoritative contract reads
	ethDialer := adapter.NewEthClientDialer()
	ethClient, err := ethDialer.Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}
	defer ethClient.Close()

	abis, err := ethereum.LoadABIs()
	if err != nil {
		logger.FatalCtx(ctx, "Failed to load contract ABIs", zap.Error(err))
	}
	provider, err := ethereum.NewProvider(ethClient, abis)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create contract provider", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to Ethereum RPC", zap.String("rpc_url", cfg.Ethereum.RPCURL))

	// Initialize content scheduler
	var scheduler content.Scheduler
	switch cfg.Content.Scheduler {
	case config.SchedulerTemporal:
		temporalClient, err := client.Dial(client.Options{
			HostPort:  cfg.Temporal.HostPort,
			Namespace: cfg.Temporal.Namespace,
			Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
		})
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
		}
		defer temporalClient.Close()

		scheduler = temporal.NewContentScheduler(temporalClient, cfg.Temporal.ContentTaskQueue, cfg.Temporal.WorkflowRunTimeout)
		logger.InfoCtx(ctx, "Connected to Temporal",
			zap.String("namespace", cfg.Temporal.Namespace),
			zap.String("task_queue", cfg.Temporal.ContentTaskQueue),
		)
	default:
		httpClient := adapter.NewHTTPClient(cfg.Content.HTTPTimeout, cfg.Content.MaxFetchElapsed)
		gatewayLimiter := ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerSecond: cfg.Content.GatewayRequestsPerSecond,
			Burst:             cfg.Content.GatewayBurst,
		})
		resolver := content.NewResolver(
			dataStore,
			content.NewGatewayFetcher(httpClient, cfg.URI.IPFSGateways, gatewayLimiter),
			content.NewParser(m, cfg.Content.LegacyBaseDescription),
			adapter.NewJCS(),
			m,
		)

		pool := content.NewPoolScheduler(ctx, resolver, cfg.Content.Concurrency)
		defer pool.StopAndWait()

		scheduler = pool
		logger.InfoCtx(ctx, "Resolving content in process", zap.Int("concurrency", cfg.Content.Concurrency))
	}

	dispatcher, err := indexer.NewDispatcher(
		indexer.Config{
			Chain:     cfg.Ethereum.ChainID,
			Contracts: cfg.Contracts.Addresses(),
		},
		dataStore,
		provider,
		scheduler,
		aggregate.NewSynchronizer(m),
		m,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create dispatcher", zap.Error(err))
	}

	// Initialize NATS consumer
	natsConsumer, err := jetstream.NewConsumer(jetstream.ConsumerConfig{
		Config: jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		},
		ConsumerName:   cfg.NATS.ConsumerName,
		AckWaitTimeout: cfg.NATS.AckWait,
		MaxDeliver:     cfg.NATS.MaxDeliver,
	}, adapter.NewNatsJetStream())
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create NATS consumer", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer natsConsumer.Close()
	logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("consumer", cfg.NATS.ConsumerName))

	// Start the status server
	statusServer := server.New(server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}, status.NewHandler(serviceName, cfg.Ethereum.ChainID, dataStore), prometheus.DefaultGatherer)

	errCh := make(chan error, 2)
	go func() {
		if err := statusServer.Start(); err != nil {
			errCh <- err
		}
	}()

	// Events are applied one at a time in stream order
	go func() {
		if err := natsConsumer.Consume(ctx, dispatcher.Handle); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "worker"))
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := statusServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(err, zap.String("component", "status_server"))
	}

	logger.Info("Ionic Worker stopped")
}
