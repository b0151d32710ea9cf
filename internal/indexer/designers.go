package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/aggregate"
	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/relation"
	"github.com/feral-file/ionic-indexer/internal/store"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

func (d *dispatcher) handleDesignerInvited(ctx context.Context, ec *eventContext) error {
	var p domain.DesignerInvitedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	reader := d.provider.Designers(ec.address, ec.block())
	snapshot, err := reader.GetDesigner(ctx, p.DesignerID)
	if err != nil {
		return fmt.Errorf("failed to read designer %s: %w", domain.BigString(p.DesignerID), err)
	}

	conductorsAddress, err := reader.ConductorsAddress(ctx)
	if err != nil {
		return fmt.Errorf("failed to read conductors address: %w", err)
	}
	inviter, err := d.provider.Conductors(conductorsAddress, ec.block()).GetConductorByWallet(ctx, p.Inviter)
	if err != nil {
		return fmt.Errorf("failed to read conductor of wallet %s: %w", p.Inviter.Hex(), err)
	}

	designerID := domain.NumericID(p.DesignerID)
	conductorID := domain.NumericID(inviter.ConductorID)

	designer, err := store.Find[*schema.Designer](ctx, ec.store, designerID)
	if err != nil {
		return fmt.Errorf("failed to load designer %s: %w", designerID, err)
	}
	if designer == nil {
		designer = &schema.Designer{ID: designerID}
	}

	packIDs := make([]string, 0, len(snapshot.ReactionPackIDs))
	for _, id := range snapshot.ReactionPackIDs {
		packIDs = append(packIDs, domain.NumericID(id))
	}

	designer.DesignerID = domain.BigString(p.DesignerID)
	designer.Wallet = domain.WalletID(p.Designer)
	designer.InvitedBy = &conductorID
	designer.InviteTimestamp = ec.timestamp()
	designer.Active = snapshot.Active
	designer.PackCount = domain.BigString(snapshot.PackCount)
	designer.URI = snapshot.URI
	designer.BaseMetadata = ec.link(content.ShapeBaseMetadata, snapshot.URI)
	designer.ReactionPacks = relation.Of(append(designer.ReactionPacks.Clone(), packIDs...)...)
	designer.BlockNumber = ec.block()
	designer.BlockTimestamp = ec.timestamp()
	designer.TransactionHash = ec.event.TxHash
	if err := ec.store.Save(ctx, designer); err != nil {
		return fmt.Errorf("failed to save designer %s: %w", designerID, err)
	}

	conductor, err := store.Find[*schema.Conductor](ctx, ec.store, conductorID)
	if err != nil {
		return fmt.Errorf("failed to load conductor %s: %w", conductorID, err)
	}
	if conductor == nil {
		// The invite can be delivered before the registration of the inviter
		logger.InfoCtx(ctx, "creating conductor referenced by invite", zap.String("conductor", conductorID))
		conductor = &schema.Conductor{
			ID:              conductorID,
			ConductorID:     domain.BigString(inviter.ConductorID),
			Wallet:          domain.WalletID(p.Inviter),
			BlockNumber:     ec.block(),
			BlockTimestamp:  ec.timestamp(),
			TransactionHash: ec.event.TxHash,
		}
	}
	conductor.InvitedDesigners = conductor.InvitedDesigners.AppendUnique(designerID)
	aggregate.ApplyConductorStats(conductor, inviter.Stats)
	if err := ec.store.Save(ctx, conductor); err != nil {
		return fmt.Errorf("failed to save conductor %s: %w", conductorID, err)
	}
	return nil
}

func (d *dispatcher) handleDesignerDeactivated(ctx context.Context, ec *eventContext) error {
	var p domain.DesignerDeactivatedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	designerID := domain.NumericID(p.DesignerID)
	designer, err := store.Find[*schema.Designer](ctx, ec.store, designerID)
	if err != nil {
		return fmt.Errorf("failed to load designer %s: %w", designerID, err)
	}
	if designer == nil {
		return nil
	}

	if designer.InvitedBy != nil {
		conductor, err := store.Find[*schema.Conductor](ctx, ec.store, *designer.InvitedBy)
		if err != nil {
			return fmt.Errorf("failed to load conductor %s: %w", *designer.InvitedBy, err)
		}
		if conductor != nil && conductor.InvitedDesigners.Contains(designerID) {
			conductor.InvitedDesigners = conductor.InvitedDesigners.Remove(designerID)
			if err := ec.store.Save(ctx, conductor); err != nil {
				return fmt.Errorf("failed to save conductor %s: %w", conductor.ID, err)
			}
		}
	}

	if err := ec.store.Remove(ctx, schema.KindDesigner, designerID); err != nil {
		return fmt.Errorf("failed to remove designer %s: %w", designerID, err)
	}
	return nil
}

func (d *dispatcher) handleDesignerURI(ctx context.Context, ec *eventContext) error {
	var p domain.DesignerURIParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	designerID := domain.NumericID(p.DesignerID)
	designer, err := store.Find[*schema.Designer](ctx, ec.store, designerID)
	if err != nil {
		return fmt.Errorf("failed to load designer %s: %w", designerID, err)
	}
	if designer == nil {
		logger.DebugCtx(ctx, "designer is not indexed", zap.String("designer", designerID))
		return nil
	}

	designer.URI = p.URI
	designer.BaseMetadata = ec.link(content.ShapeBaseMetadata, p.URI)

	reader := d.provider.Designers(ec.address, ec.block())
	if _, err := d.synchronizer.Designer(ctx, reader, designer, p.DesignerID); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, designer); err != nil {
		return fmt.Errorf("failed to save designer %s: %w", designerID, err)
	}
	return nil
}
