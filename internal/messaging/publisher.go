package messaging

import (
	"context"

	"github.com/feral-file/ionic-indexer/internal/domain"
)

// Publisher publishes decoded contract events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a contract event and waits for the broker ack
	PublishEvent(ctx context.Context, event *domain.ContractEvent) error
	// Close closes the connection
	Close()
	// CloseChan returns a channel that is closed when the publisher is closed
	CloseChan() <-chan struct{}
}
