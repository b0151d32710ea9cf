package jetstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/messaging"
)

// ConsumerConfig holds the configuration of the durable event consumer
type ConsumerConfig struct {
	Config
	ConsumerName   string
	AckWaitTimeout time.Duration
	MaxDeliver     int
}

type consumer struct {
	nc     adapter.NatsConn
	js     adapter.JetStream
	config ConsumerConfig
}

// NewConsumer connects to NATS for consuming published contract events
func NewConsumer(cfg ConsumerConfig, natsJS adapter.NatsJetStream) (messaging.Consumer, error) {
	nc, js, err := natsJS.Connect(cfg.URL, connectionOptions(cfg.Config, nil)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	return &consumer{
		nc:     nc,
		js:     js,
		config: cfg,
	}, nil
}

// Consume applies events strictly one at a time. The consumer allows a
// single unacknowledged message so the stream order is the apply order.
func (c *consumer) Consume(ctx context.Context, handler messaging.EventHandler) error {
	logger.InfoCtx(ctx, "Starting event consumer",
		zap.String("stream", c.config.StreamName),
		zap.String("consumer", c.config.ConsumerName))

	consumerConfig := jetstream.ConsumerConfig{
		Durable:       c.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       c.config.AckWaitTimeout,
		MaxDeliver:    c.config.MaxDeliver,
		MaxAckPending: 1,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		FilterSubject: subjectPrefix + ".>",
	}

	cons, err := c.js.CreateOrUpdateConsumer(ctx, c.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	info, err := cons.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.InfoCtx(ctx, "Consumer created/retrieved",
		zap.String("consumer", info.Name),
		zap.Uint64("pending", info.NumPending))

	msgChan := make(chan adapter.Message)
	sub, err := cons.Consume(func(msg adapter.Message) {
		select {
		case msgChan <- msg:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.InfoCtx(ctx, "Started consuming messages")

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Shutting down event consumer")
			return ctx.Err()
		case <-sub.Closed():
			return errors.New("consume subscription closed")
		case msg := <-msgChan:
			c.handleMessage(ctx, msg, handler)
		}
	}
}

// handleMessage applies a single message and settles it with the broker
func (c *consumer) handleMessage(ctx context.Context, msg adapter.Message, handler messaging.EventHandler) {
	var delivered uint64
	if metadata, err := msg.Metadata(); err == nil && metadata != nil {
		delivered = metadata.NumDelivered
	}

	var event domain.ContractEvent
	if err := json.Unmarshal(msg.Data(), &event); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to unmarshal event"))
		if err := msg.Term(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
		}
		return
	}

	logger.DebugCtx(ctx, "Received event",
		zap.String("chain", string(event.Chain)),
		zap.String("event", event.EventName),
		zap.String("tx_hash", event.TxHash),
		zap.Uint64("delivery_count", delivered))

	if err := handler(ctx, &event); err != nil {
		if errors.Is(err, domain.ErrInvalidParams) {
			// redelivery cannot fix a malformed payload
			logger.ErrorCtx(ctx, err, zap.String("message", "Dropping event with invalid params"))
			if err := msg.Term(); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("message", "Failed to terminate message"))
			}
			return
		}

		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to apply event"))
		if err := msg.Nak(); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("message", "Failed to NAK message"))
		}
		return
	}

	if err := msg.Ack(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to ACK message"))
	}
}

// Close closes the NATS connection
func (c *consumer) Close() {
	if c.nc == nil {
		return
	}

	c.nc.Close()
}
