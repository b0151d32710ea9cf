package messaging

import (
	"context"

	"github.com/feral-file/ionic-indexer/internal/domain"
)

// EventHandler is called for every contract event, in chain order
type EventHandler func(ctx context.Context, event *domain.ContractEvent) error

// Subscriber follows the configured contracts on chain
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber,Consumer=MockConsumer
type Subscriber interface {
	// SubscribeEvents delivers every event from fromBlock onwards, first from
	// history and then live. It returns when ctx is done, the subscription
	// fails or the handler returns an error.
	SubscribeEvents(ctx context.Context, fromBlock uint64, handler EventHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}

// Consumer reads published contract events back from the broker
type Consumer interface {
	// Consume delivers events one at a time until ctx is done. An event is
	// acknowledged only after the handler returns nil.
	Consume(ctx context.Context, handler EventHandler) error

	// Close stops consuming and releases the connection
	Close()
}
