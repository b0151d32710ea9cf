package indexer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/contracts"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/relation"
	"github.com/feral-file/ionic-indexer/internal/store"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

func (d *dispatcher) handleReactionPackCreated(ctx context.Context, ec *eventContext) error {
	var p domain.ReactionPackCreatedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	reader := d.provider.ReactionPacks(ec.address, ec.block())
	designersAddress, err := reader.DesignersAddress(ctx)
	if err != nil {
		return fmt.Errorf("failed to read designers address: %w", err)
	}
	designers := d.provider.Designers(designersAddress, ec.block())
	profile, err := designers.GetDesignerByWallet(ctx, p.Designer)
	if err != nil {
		return fmt.Errorf("failed to read designer of wallet %s: %w", p.Designer.Hex(), err)
	}
	increment, err := reader.DefaultPriceIncrement(ctx)
	if err != nil {
		return fmt.Errorf("failed to read default price increment: %w", err)
	}

	packID := domain.NumericID(p.PackID)
	designerID := domain.NumericID(profile.DesignerID)

	pack, err := store.Find[*schema.ReactionPack](ctx, ec.store, packID)
	if err != nil {
		return fmt.Errorf("failed to load reaction pack %s: %w", packID, err)
	}
	if pack == nil {
		pack = &schema.ReactionPack{ID: packID}
	}

	pack.PackID = domain.BigString(p.PackID)
	pack.Designer = domain.WalletID(p.Designer)
	pack.DesignerProfile = &designerID
	pack.BasePrice = domain.BigString(p.BasePrice)
	pack.PriceIncrement = domain.BigString(increment)
	pack.BlockNumber = ec.block()
	pack.BlockTimestamp = ec.timestamp()
	pack.TransactionHash = ec.event.TxHash

	snapshot, err := d.synchronizer.ReactionPack(ctx, reader, pack, p.PackID)
	if err != nil {
		return err
	}
	pack.URI = snapshot.PackURI
	pack.BaseMetadata = ec.link(content.ShapeBaseMetadata, snapshot.PackURI)

	for _, reactionID := range snapshot.ReactionIDs {
		id := domain.NumericID(reactionID)
		pack.Reactions = pack.Reactions.AppendUnique(id)

		reaction, err := store.Find[*schema.Reaction](ctx, ec.store, id)
		if err != nil {
			return fmt.Errorf("failed to load reaction %s: %w", id, err)
		}
		if reaction == nil {
			reaction = &schema.Reaction{ID: id, ReactionID: domain.BigString(reactionID)}
		}
		reaction.Pack = &packID
		if err := ec.store.Save(ctx, reaction); err != nil {
			return fmt.Errorf("failed to save reaction %s: %w", id, err)
		}
	}

	if err := ec.store.Save(ctx, pack); err != nil {
		return fmt.Errorf("failed to save reaction pack %s: %w", packID, err)
	}

	designer, err := store.Find[*schema.Designer](ctx, ec.store, designerID)
	if err != nil {
		return fmt.Errorf("failed to load designer %s: %w", designerID, err)
	}
	if designer == nil {
		logger.DebugCtx(ctx, "reaction pack references unknown designer", zap.String("designer", designerID))
		return nil
	}
	designer.ReactionPacks = designer.ReactionPacks.AppendUnique(packID)
	if _, err := d.synchronizer.Designer(ctx, designers, designer, profile.DesignerID); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, designer); err != nil {
		return fmt.Errorf("failed to save designer %s: %w", designerID, err)
	}
	return nil
}

func (d *dispatcher) handleReactionAdded(ctx context.Context, ec *eventContext) error {
	var p domain.ReactionAddedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	reactionID := domain.NumericID(p.ReactionID)
	packID := domain.NumericID(p.PackID)

	reaction, err := store.Find[*schema.Reaction](ctx, ec.store, reactionID)
	if err != nil {
		return fmt.Errorf("failed to load reaction %s: %w", reactionID, err)
	}
	if reaction == nil {
		reaction = &schema.Reaction{ID: reactionID}
	}
	reaction.ReactionID = domain.BigString(p.ReactionID)
	reaction.Pack = &packID
	reaction.URI = p.ReactionURI
	reaction.Metadata = ec.link(content.ShapeReactionMetadata, p.ReactionURI)
	if err := ec.store.Save(ctx, reaction); err != nil {
		return fmt.Errorf("failed to save reaction %s: %w", reactionID, err)
	}

	pack, err := store.Find[*schema.ReactionPack](ctx, ec.store, packID)
	if err != nil {
		return fmt.Errorf("failed to load reaction pack %s: %w", packID, err)
	}
	if pack == nil || pack.Reactions.Contains(reactionID) {
		return nil
	}
	pack.Reactions = pack.Reactions.AppendUnique(reactionID)
	if err := ec.store.Save(ctx, pack); err != nil {
		return fmt.Errorf("failed to save reaction pack %s: %w", packID, err)
	}
	return nil
}

func (d *dispatcher) handlePackPurchased(ctx context.Context, ec *eventContext) error {
	var p domain.PackPurchasedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	reader := d.provider.ReactionPacks(ec.address, ec.block())
	snapshot, err := reader.GetPurchase(ctx, p.PurchaseID)
	if err != nil {
		return fmt.Errorf("failed to read purchase %s: %w", domain.BigString(p.PurchaseID), err)
	}

	purchaseID := domain.NumericID(p.PurchaseID)
	packID := domain.NumericID(p.PackID)

	purchase := &schema.Purchase{
		ID:              purchaseID,
		PurchaseID:      domain.BigString(p.PurchaseID),
		Pack:            packID,
		Buyer:           domain.WalletID(p.Buyer),
		Price:           domain.BigString(p.Price),
		EditionNumber:   domain.BigString(p.EditionNumber),
		ShareWeight:     domain.BigString(snapshot.ShareWeight),
		BlockNumber:     ec.block(),
		BlockTimestamp:  ec.timestamp(),
		TransactionHash: ec.event.TxHash,
	}
	if err := ec.store.Save(ctx, purchase); err != nil {
		return fmt.Errorf("failed to save purchase %s: %w", purchaseID, err)
	}

	pack, err := store.Find[*schema.ReactionPack](ctx, ec.store, packID)
	if err != nil {
		return fmt.Errorf("failed to load reaction pack %s: %w", packID, err)
	}
	if pack == nil {
		logger.DebugCtx(ctx, "purchase references unknown reaction pack", zap.String("pack", packID))
		return nil
	}

	if _, err := d.synchronizer.ReactionPack(ctx, reader, pack, p.PackID); err != nil {
		return err
	}
	if err := d.synchronizer.PackPurchases(ctx, reader, pack, p.PackID); err != nil {
		return err
	}
	pack.Purchases = pack.Purchases.AppendUnique(purchaseID)
	if err := ec.store.Save(ctx, pack); err != nil {
		return fmt.Errorf("failed to save reaction pack %s: %w", packID, err)
	}

	for _, id := range pack.Reactions {
		if err := rebuildTokenReactions(ctx, ec.store, reader, id); err != nil {
			return err
		}
	}
	return nil
}

// rebuildTokenReactions replaces the token bindings of a reaction with the
// ones currently reported by the contract
func rebuildTokenReactions(ctx context.Context, st store.Store, reader contracts.ReactionPacks, id string) error {
	reaction, err := store.Find[*schema.Reaction](ctx, st, id)
	if err != nil {
		return fmt.Errorf("failed to load reaction %s: %w", id, err)
	}
	if reaction == nil {
		return nil
	}

	reactionID, ok := parseDecimal(reaction.ReactionID)
	if !ok {
		logger.WarnCtx(ctx, "reaction has no numeric id", zap.String("reaction", id))
		return nil
	}

	snapshot, err := reader.GetReaction(ctx, reactionID)
	if err != nil {
		return fmt.Errorf("failed to read reaction %s: %w", reaction.ReactionID, err)
	}

	var tokenIDs, bindings relation.IDList
	for _, tokenID := range snapshot.TokenIDs {
		bindingID := domain.TokenReactionID(reactionID, tokenID)
		binding := &schema.TokenReaction{
			ID:       bindingID,
			TokenID:  domain.BigString(tokenID),
			Reaction: reaction.ID,
		}
		if err := st.Save(ctx, binding); err != nil {
			return fmt.Errorf("failed to save token reaction %s: %w", bindingID, err)
		}
		tokenIDs = tokenIDs.AppendUnique(binding.TokenID)
		bindings = bindings.AppendUnique(bindingID)
	}

	for _, stale := range reaction.TokenReactions {
		if bindings.Contains(stale) {
			continue
		}
		if err := st.Remove(ctx, schema.KindTokenReaction, stale); err != nil {
			return fmt.Errorf("failed to remove token reaction %s: %w", stale, err)
		}
	}

	reaction.TokenIDs = tokenIDs.Clone()
	reaction.TokenReactions = bindings.Clone()
	if err := st.Save(ctx, reaction); err != nil {
		return fmt.Errorf("failed to save reaction %s: %w", id, err)
	}
	return nil
}
