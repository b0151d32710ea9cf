// Package indexer applies decoded contract events to the entity store
package indexer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/aggregate"
	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/contracts"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/metrics"
	"github.com/feral-file/ionic-indexer/internal/store"
)

// Config holds the configuration for the dispatcher
type Config struct {
	// Chain names the event stream the cursor is kept for
	Chain domain.Chain
	// Contracts maps each contract kind to its deployed address
	Contracts map[domain.ContractKind]string
}

// Dispatcher routes events to their handlers
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Handle applies ev atomically. Events at or before the stored cursor and
	// events from unknown contracts or with unknown names are skipped.
	Handle(ctx context.Context, ev *domain.ContractEvent) error
}

type handler func(ctx context.Context, ec *eventContext) error

type dispatcher struct {
	config       Config
	store        store.Store
	provider     contracts.Provider
	scheduler    content.Scheduler
	synchronizer *aggregate.Synchronizer
	metrics      *metrics.Metrics

	addresses map[domain.ContractKind]common.Address
	routes    map[string]domain.ContractKind
	handlers  map[domain.ContractKind]map[string]handler
}

// NewDispatcher creates a dispatcher for the configured contracts
func NewDispatcher(
	cfg Config,
	st store.Store,
	provider contracts.Provider,
	scheduler content.Scheduler,
	synchronizer *aggregate.Synchronizer,
	m *metrics.Metrics,
) (Dispatcher, error) {
	d := &dispatcher{
		config:       cfg,
		store:        st,
		provider:     provider,
		scheduler:    scheduler,
		synchronizer: synchronizer,
		metrics:      m,
		addresses:    make(map[domain.ContractKind]common.Address),
		routes:       make(map[string]domain.ContractKind),
	}

	for kind, address := range cfg.Contracts {
		if address == "" {
			continue
		}
		if !common.IsHexAddress(address) {
			return nil, fmt.Errorf("invalid %s contract address: %s", kind, address)
		}
		addr := common.HexToAddress(address)
		key := strings.ToLower(addr.Hex())
		if other, ok := d.routes[key]; ok {
			return nil, fmt.Errorf("contract address %s configured for both %s and %s", address, other, kind)
		}
		d.addresses[kind] = addr
		d.routes[key] = kind
	}

	d.handlers = map[domain.ContractKind]map[string]handler{
		domain.ContractAppraisals: {
			domain.EventAppraisalCreated: d.handleAppraisalCreated,
			domain.EventNFTSubmitted:     d.handleNFTSubmitted,
			domain.EventNFTRemoved:       d.handleNFTRemoved,
		},
		domain.ContractConductors: {
			domain.EventConductorRegistered:   d.handleConductorRegistered,
			domain.EventConductorDeleted:      d.handleConductorDeleted,
			domain.EventConductorUpdated:      d.handleConductorUpdated,
			domain.EventConductorStatsUpdated: d.handleConductorStatsUpdated,
			domain.EventReviewSubmitted:       d.handleReviewSubmitted,
			domain.EventReviewerURIUpdated:    d.handleReviewerURIUpdated,
		},
		domain.ContractDesigners: {
			domain.EventDesignerInvited:     d.handleDesignerInvited,
			domain.EventDesignerDeactivated: d.handleDesignerDeactivated,
			domain.EventDesignerURI:         d.handleDesignerURI,
		},
		domain.ContractReactionPacks: {
			domain.EventReactionPackCreated: d.handleReactionPackCreated,
			domain.EventReactionAdded:       d.handleReactionAdded,
			domain.EventPackPurchased:       d.handlePackPurchased,
		},
		domain.ContractNFT:           projections(d, nftEvents),
		domain.ContractAccessControl: projections(d, accessControlEvents),
	}

	return d, nil
}

func (d *dispatcher) Handle(ctx context.Context, ev *domain.ContractEvent) error {
	start := time.Now()

	kind, ok := d.routes[ev.NormalizedAddress()]
	if !ok {
		logger.WarnCtx(ctx, "skipping event",
			zap.Error(domain.ErrUnknownContract),
			zap.String("contract", ev.ContractAddress),
			zap.String("event", ev.EventName))
		d.metrics.ObserveEvent("unknown", ev.EventName, metrics.ResultSkipped, time.Since(start))
		return nil
	}

	h, ok := d.handlers[kind][ev.EventName]
	if !ok {
		logger.WarnCtx(ctx, "skipping event",
			zap.Error(domain.ErrUnknownEvent),
			zap.String("contract", string(kind)),
			zap.String("event", ev.EventName))
		d.metrics.ObserveEvent(string(kind), ev.EventName, metrics.ResultSkipped, time.Since(start))
		return nil
	}

	ec := newEventContext(kind, ev)
	stream := string(d.config.Chain)
	skipped := false

	err := d.store.Transaction(ctx, func(tx store.Store) error {
		cursor, err := tx.GetEventCursor(ctx, stream)
		if err != nil {
			return err
		}
		if cursor != nil && !ev.Position().After(*cursor) {
			skipped = true
			return nil
		}

		ec.store = tx
		if err := h(ctx, ec); err != nil {
			return err
		}

		return tx.SetEventCursor(ctx, stream, ev.Position())
	})
	if err != nil {
		d.metrics.ObserveEvent(string(kind), ev.EventName, metrics.ResultError, time.Since(start))
		return fmt.Errorf("failed to apply %s at block %d log %d: %w", ev.EventName, ev.BlockNumber, ev.LogIndex, err)
	}

	if skipped {
		logger.DebugCtx(ctx, "event already applied",
			zap.String("event", ev.EventName),
			zap.Uint64("block", ev.BlockNumber),
			zap.Uint("logIndex", ev.LogIndex))
		d.metrics.ObserveEvent(string(kind), ev.EventName, metrics.ResultSkipped, time.Since(start))
		return nil
	}

	// Content is fetched only once the records referencing it are committed
	for _, job := range ec.jobs {
		if err := d.scheduler.Schedule(ctx, job); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to schedule content job: %w", err), zap.String("job", job.Key()))
		}
	}

	logger.InfoCtx(ctx, "Applied event",
		zap.String("contract", string(kind)),
		zap.String("event", ev.EventName),
		zap.Uint64("block", ev.BlockNumber),
		zap.Uint("logIndex", ev.LogIndex),
		zap.Int("contentJobs", len(ec.jobs)))
	d.metrics.ObserveEvent(string(kind), ev.EventName, metrics.ResultOK, time.Since(start))
	d.metrics.SetLastAppliedBlock(ev.BlockNumber)

	return nil
}

// contract returns the address of the configured contract of kind
func (d *dispatcher) contract(kind domain.ContractKind) (common.Address, bool) {
	addr, ok := d.addresses[kind]
	return addr, ok
}
