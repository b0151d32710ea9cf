package jetstream

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/messaging"
)

const subjectPrefix = "events"

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string

	// MaxAge bounds how long events stay in the stream, zero keeps them forever
	MaxAge time.Duration

	// DuplicateWindow is the window in which a republished event is dropped by the server
	DuplicateWindow time.Duration
}

type publisher struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	streamName string

	closeOnce sync.Once
	closed    chan struct{}
}

// connectionOptions returns the NATS options shared by publisher and consumer
func connectionOptions(cfg Config, onClosed func()) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
			if onClosed != nil {
				onClosed()
			}
		}),
	}
}

// NewPublisher connects to NATS and makes sure the event stream exists
func NewPublisher(ctx context.Context, cfg Config, natsJS adapter.NatsJetStream) (messaging.Publisher, error) {
	p := &publisher{
		streamName: cfg.StreamName,
		closed:     make(chan struct{}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, connectionOptions(cfg, p.markClosed)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}
	p.nc = nc
	p.js = js

	err = js.EnsureStream(ctx, jetstream.StreamConfig{
		Name:       cfg.StreamName,
		Subjects:   []string{subjectPrefix + ".>"},
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     cfg.MaxAge,
		Duplicates: cfg.DuplicateWindow,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return p, nil
}

// PublishEvent publishes a contract event to NATS JetStream
func (p *publisher) PublishEvent(ctx context.Context, event *domain.ContractEvent) error {
	logger.DebugCtx(ctx, "Publishing Nats event",
		zap.String("event", event.EventName),
		zap.Uint64("block_number", event.BlockNumber),
		zap.Uint("log_index", event.LogIndex))

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = p.js.Publish(ctx, Subject(event), data,
		jetstream.WithMsgID(MessageID(event)),
		jetstream.WithExpectStream(p.streamName))
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subject returns the subject an event is published on: events.{chain}.{event_name}
func Subject(event *domain.ContractEvent) string {
	chain := strings.ReplaceAll(string(event.Chain), ":", "-")
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, chain, event.EventName)
}

// MessageID identifies an event for server side deduplication
func MessageID(event *domain.ContractEvent) string {
	return fmt.Sprintf("%s:%s:%d", event.Chain, strings.ToLower(event.TxHash), event.LogIndex)
}

func (p *publisher) markClosed() {
	p.closeOnce.Do(func() { close(p.closed) })
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
	p.markClosed()
}

// CloseChan returns a channel that is closed once the connection is closed
func (p *publisher) CloseChan() <-chan struct{} {
	return p.closed
}
