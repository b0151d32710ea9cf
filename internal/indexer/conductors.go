package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/store"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

func (d *dispatcher) handleConductorRegistered(ctx context.Context, ec *eventContext) error {
	var p domain.ConductorRegisteredParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	conductorID := domain.NumericID(p.ConductorID)
	conductor, err := store.Find[*schema.Conductor](ctx, ec.store, conductorID)
	if err != nil {
		return fmt.Errorf("failed to load conductor %s: %w", conductorID, err)
	}
	if conductor == nil {
		conductor = &schema.Conductor{ID: conductorID}
	}

	conductor.ConductorID = domain.BigString(p.ConductorID)
	conductor.Wallet = domain.WalletID(p.Wallet)
	conductor.URI = p.URI
	conductor.BaseMetadata = ec.link(content.ShapeBaseMetadata, p.URI)
	conductor.BlockNumber = ec.block()
	conductor.BlockTimestamp = ec.timestamp()
	conductor.TransactionHash = ec.event.TxHash

	reader := d.provider.Conductors(ec.address, ec.block())
	if _, err := d.synchronizer.Conductor(ctx, reader, conductor, p.ConductorID); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, conductor); err != nil {
		return fmt.Errorf("failed to save conductor %s: %w", conductorID, err)
	}

	registry, err := loadRegistry(ctx, ec.store)
	if err != nil {
		return err
	}
	registry.ConductorIDs = registry.ConductorIDs.AppendUnique(conductor.ConductorID)
	if err := ec.store.Save(ctx, registry); err != nil {
		return fmt.Errorf("failed to save conductor registry: %w", err)
	}
	return nil
}

func (d *dispatcher) handleConductorDeleted(ctx context.Context, ec *eventContext) error {
	var p domain.ConductorDeletedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	conductorID := domain.NumericID(p.ConductorID)
	if err := ec.store.Remove(ctx, schema.KindConductor, conductorID); err != nil {
		return fmt.Errorf("failed to remove conductor %s: %w", conductorID, err)
	}

	registry, err := store.Find[*schema.ConductorRegistry](ctx, ec.store, domain.RegistryID)
	if err != nil {
		return fmt.Errorf("failed to load conductor registry: %w", err)
	}
	if registry == nil {
		return nil
	}
	registry.ConductorIDs = registry.ConductorIDs.Remove(domain.BigString(p.ConductorID))
	if err := ec.store.Save(ctx, registry); err != nil {
		return fmt.Errorf("failed to save conductor registry: %w", err)
	}
	return nil
}

func (d *dispatcher) handleConductorUpdated(ctx context.Context, ec *eventContext) error {
	var p domain.ConductorUpdatedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	conductorID := domain.NumericID(p.ConductorID)
	conductor, err := store.Find[*schema.Conductor](ctx, ec.store, conductorID)
	if err != nil {
		return fmt.Errorf("failed to load conductor %s: %w", conductorID, err)
	}
	if conductor == nil {
		logger.DebugCtx(ctx, "updated conductor is not indexed", zap.String("conductor", conductorID))
		return nil
	}

	conductor.URI = p.URI
	conductor.BaseMetadata = ec.link(content.ShapeBaseMetadata, p.URI)

	reader := d.provider.Conductors(ec.address, ec.block())
	if _, err := d.synchronizer.Conductor(ctx, reader, conductor, p.ConductorID); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, conductor); err != nil {
		return fmt.Errorf("failed to save conductor %s: %w", conductorID, err)
	}
	return nil
}

func (d *dispatcher) handleConductorStatsUpdated(ctx context.Context, ec *eventContext) error {
	var p domain.ConductorStatsUpdatedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	conductorID := domain.NumericID(p.ConductorID)
	conductor, err := store.Find[*schema.Conductor](ctx, ec.store, conductorID)
	if err != nil {
		return fmt.Errorf("failed to load conductor %s: %w", conductorID, err)
	}
	if conductor == nil {
		return nil
	}

	reader := d.provider.Conductors(ec.address, ec.block())
	if _, err := d.synchronizer.Conductor(ctx, reader, conductor, p.ConductorID); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, conductor); err != nil {
		return fmt.Errorf("failed to save conductor %s: %w", conductorID, err)
	}
	return nil
}

func (d *dispatcher) handleReviewSubmitted(ctx context.Context, ec *eventContext) error {
	var p domain.ReviewSubmittedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	reader := d.provider.Conductors(ec.address, ec.block())
	snapshot, err := reader.GetReview(ctx, p.ReviewID)
	if err != nil {
		return fmt.Errorf("failed to read review %s: %w", domain.BigString(p.ReviewID), err)
	}

	reviewID := domain.NumericID(p.ReviewID)
	reviewerID := domain.WalletID(p.Reviewer)
	conductorID := domain.NumericID(p.ConductorID)

	review := &schema.Review{
		ID:              reviewID,
		ReviewID:        domain.BigString(p.ReviewID),
		Reviewer:        reviewerID,
		Conductor:       conductorID,
		ReviewScore:     domain.BigString(p.ReviewScore),
		URI:             snapshot.URI,
		Metadata:        ec.link(content.ShapeMetadata, snapshot.URI),
		BlockNumber:     ec.block(),
		BlockTimestamp:  ec.timestamp(),
		TransactionHash: ec.event.TxHash,
	}
	review.Reactions, err = saveReactionUsages(ctx, ec.store, snapshot.Reactions)
	if err != nil {
		return err
	}
	if err := ec.store.Save(ctx, review); err != nil {
		return fmt.Errorf("failed to save review %s: %w", reviewID, err)
	}

	reviewer, err := loadOrCreateReviewer(ctx, ec.store, reviewerID)
	if err != nil {
		return err
	}
	reviewer.Reviews = reviewer.Reviews.AppendUnique(reviewID)
	if _, err := d.synchronizer.Reviewer(ctx, reader, reviewer, p.Reviewer); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, reviewer); err != nil {
		return fmt.Errorf("failed to save reviewer %s: %w", reviewerID, err)
	}

	conductor, err := store.Find[*schema.Conductor](ctx, ec.store, conductorID)
	if err != nil {
		return fmt.Errorf("failed to load conductor %s: %w", conductorID, err)
	}
	if conductor == nil {
		logger.DebugCtx(ctx, "review references unknown conductor", zap.String("conductor", conductorID))
		return nil
	}
	conductor.Reviews = conductor.Reviews.AppendUnique(reviewID)
	if _, err := d.synchronizer.Conductor(ctx, reader, conductor, p.ConductorID); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, conductor); err != nil {
		return fmt.Errorf("failed to save conductor %s: %w", conductorID, err)
	}
	return nil
}

func (d *dispatcher) handleReviewerURIUpdated(ctx context.Context, ec *eventContext) error {
	var p domain.ReviewerURIUpdatedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	reviewerID := domain.WalletID(p.Reviewer)
	reviewer, err := loadOrCreateReviewer(ctx, ec.store, reviewerID)
	if err != nil {
		return err
	}

	reviewer.URI = p.URI
	reviewer.BaseMetadata = ec.link(content.ShapeBaseMetadata, p.URI)

	reader := d.provider.Conductors(ec.address, ec.block())
	if _, err := d.synchronizer.Reviewer(ctx, reader, reviewer, p.Reviewer); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, reviewer); err != nil {
		return fmt.Errorf("failed to save reviewer %s: %w", reviewerID, err)
	}
	return nil
}

func loadOrCreateReviewer(ctx context.Context, st store.Store, reviewerID string) (*schema.Reviewer, error) {
	reviewer, err := store.Find[*schema.Reviewer](ctx, st, reviewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviewer %s: %w", reviewerID, err)
	}
	if reviewer == nil {
		reviewer = &schema.Reviewer{ID: reviewerID, Wallet: reviewerID}
	}
	return reviewer, nil
}
