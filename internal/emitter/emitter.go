package emitter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/messaging"
	"github.com/feral-file/ionic-indexer/internal/metrics"
	"github.com/feral-file/ionic-indexer/internal/store"
)

// Config holds the configuration for the event emitter
type Config struct {
	ChainID domain.Chain

	// StartBlock is used when no cursor has been saved yet, zero means the latest block
	StartBlock uint64

	CursorSaveFreq  uint64        // Save cursor every N blocks
	CursorSaveDelay time.Duration // Or save cursor every N seconds
}

// Emitter defines the interface for the event emitter
//
//go:generate mockgen -source=emitter.go -destination=../mocks/emitter.go -package=mocks -mock_names=Emitter=MockEmitter
type Emitter interface {
	// Run starts the event emitter
	Run(ctx context.Context) error
	// Close closes the emitter and cleans up resources
	Close()
}

// emitter follows contract logs and publishes them to NATS
type emitter struct {
	subscriber messaging.Subscriber
	publisher  messaging.Publisher
	store      store.CursorStore
	config     Config
	clock      adapter.Clock
	metrics    *metrics.Metrics
}

// NewEmitter creates a new event emitter
func NewEmitter(
	sub messaging.Subscriber,
	pub messaging.Publisher,
	st store.CursorStore,
	cfg Config,
	clock adapter.Clock,
	m *metrics.Metrics,
) Emitter {
	return &emitter{
		subscriber: sub,
		publisher:  pub,
		store:      st,
		config:     cfg,
		clock:      clock,
		metrics:    m,
	}
}

// startBlock resolves where to resume: after the saved cursor, then the
// configured start block, then the chain head
func (e *emitter) startBlock(ctx context.Context) (uint64, error) {
	chain := string(e.config.ChainID)

	lastBlock, err := e.store.GetBlockCursor(ctx, chain)
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}
	if lastBlock > 0 {
		logger.InfoCtx(ctx, "Resuming from last processed block", zap.String("chain", chain), zap.Uint64("block", lastBlock+1))
		return lastBlock + 1, nil
	}

	if e.config.StartBlock > 0 {
		logger.InfoCtx(ctx, "Starting from configured block", zap.String("chain", chain), zap.Uint64("block", e.config.StartBlock))
		return e.config.StartBlock, nil
	}

	latestBlock, err := e.subscriber.GetLatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	logger.InfoCtx(ctx, "Starting from latest block", zap.String("chain", chain), zap.Uint64("block", latestBlock))
	return latestBlock, nil
}

// Run starts the event emitter
func (e *emitter) Run(ctx context.Context) error {
	startBlock, err := e.startBlock(ctx)
	if err != nil {
		return err
	}

	chain := string(e.config.ChainID)
	errCh := make(chan error, 1)

	go func() {
		logger.InfoCtx(ctx, "Starting event subscription", zap.String("chain", chain))

		// A block is saved only once a later block shows up, since its
		// remaining logs may still be on the way.
		lastSavedBlock := uint64(0)
		lastSaveTime := e.clock.Now()
		currentBlock := uint64(0)

		handler := func(ctx context.Context, event *domain.ContractEvent) error {
			if err := e.publisher.PublishEvent(ctx, event); err != nil {
				return fmt.Errorf("failed to publish event %s: %w", event.TxHash, err)
			}
			e.metrics.IncPublished(event.NormalizedAddress())
			e.metrics.SetLastEmittedBlock(event.BlockNumber)

			if currentBlock != 0 && event.BlockNumber > currentBlock {
				completed := event.BlockNumber - 1
				shouldSave := completed-lastSavedBlock >= e.config.CursorSaveFreq ||
					e.clock.Since(lastSaveTime) >= e.config.CursorSaveDelay

				if shouldSave {
					if err := e.store.SetBlockCursor(ctx, chain, completed); err != nil {
						logger.ErrorCtx(ctx, err, zap.String("message", "Failed to save block cursor"))
					} else {
						lastSavedBlock = completed
						lastSaveTime = e.clock.Now()
					}
				}
			}
			currentBlock = event.BlockNumber

			return nil
		}

		errCh <- e.subscriber.SubscribeEvents(ctx, startBlock, handler)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-e.publisher.CloseChan():
		return errors.New("publisher connection closed")
	}
}

// Close closes the emitter and cleans up resources
func (e *emitter) Close() {
	e.subscriber.Close()
	e.publisher.Close()
}
