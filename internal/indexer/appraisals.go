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

func (d *dispatcher) handleAppraisalCreated(ctx context.Context, ec *eventContext) error {
	var p domain.AppraisalCreatedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	reader := d.provider.Appraisals(ec.address, ec.block())
	snapshot, err := reader.GetAppraisal(ctx, p.AppraisalID)
	if err != nil {
		return fmt.Errorf("failed to read appraisal %s: %w", domain.BigString(p.AppraisalID), err)
	}

	appraisalID := domain.NumericID(p.AppraisalID)
	nftID := domain.NumericID(p.NftID)
	conductorID := domain.NumericID(p.ConductorID)

	appraisal := &schema.Appraisal{
		ID:              appraisalID,
		AppraisalID:     domain.BigString(p.AppraisalID),
		Appraiser:       domain.WalletID(p.Appraiser),
		NFT:             nftID,
		Conductor:       conductorID,
		OverallScore:    domain.BigString(p.OverallScore),
		NftContract:     domain.WalletID(snapshot.NftContract),
		URI:             snapshot.URI,
		Metadata:        ec.link(content.ShapeMetadata, snapshot.URI),
		BlockNumber:     ec.block(),
		BlockTimestamp:  ec.timestamp(),
		TransactionHash: ec.event.TxHash,
	}

	appraisal.Reactions, err = saveReactionUsages(ctx, ec.store, snapshot.Reactions)
	if err != nil {
		return err
	}

	conductor, err := store.Find[*schema.Conductor](ctx, ec.store, conductorID)
	if err != nil {
		return fmt.Errorf("failed to load conductor %s: %w", conductorID, err)
	}
	if conductor != nil {
		conductor.Appraisals = conductor.Appraisals.AppendUnique(appraisalID)
		conductor.NotAppraised = conductor.NotAppraised.Remove(nftID)

		if addr, ok := d.contract(domain.ContractConductors); ok {
			conductors := d.provider.Conductors(addr, ec.block())
			if _, err := d.synchronizer.Conductor(ctx, conductors, conductor, p.ConductorID); err != nil {
				return err
			}
		}

		if err := ec.store.Save(ctx, conductor); err != nil {
			return fmt.Errorf("failed to save conductor %s: %w", conductorID, err)
		}
	} else {
		logger.DebugCtx(ctx, "appraisal references unknown conductor", zap.String("conductor", conductorID))
	}

	nft, err := store.Find[*schema.NFT](ctx, ec.store, nftID)
	if err != nil {
		return fmt.Errorf("failed to load nft %s: %w", nftID, err)
	}
	if nft != nil {
		nft.Appraisals = nft.Appraisals.AppendUnique(appraisalID)
		if _, err := d.synchronizer.NFT(ctx, reader, nft, p.NftID); err != nil {
			return err
		}
		if err := ec.store.Save(ctx, nft); err != nil {
			return fmt.Errorf("failed to save nft %s: %w", nftID, err)
		}

		tokenType := nft.TokenType
		appraisal.TokenType = &tokenType
	} else {
		logger.DebugCtx(ctx, "appraisal references unknown nft", zap.String("nft", nftID))
	}

	if err := ec.store.Save(ctx, appraisal); err != nil {
		return fmt.Errorf("failed to save appraisal %s: %w", appraisalID, err)
	}
	return nil
}

func (d *dispatcher) handleNFTSubmitted(ctx context.Context, ec *eventContext) error {
	var p domain.NFTSubmittedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	nftID := domain.NumericID(p.NftID)
	nft, err := store.Find[*schema.NFT](ctx, ec.store, nftID)
	if err != nil {
		return fmt.Errorf("failed to load nft %s: %w", nftID, err)
	}
	if nft == nil {
		nft = &schema.NFT{ID: nftID}
	}

	nft.NftID = domain.BigString(p.NftID)
	nft.NftContract = domain.WalletID(p.NftContract)
	nft.TokenID = domain.BigString(p.TokenID)
	nft.Submitter = domain.WalletID(p.Submitter)
	nft.TokenType = domain.BigString(p.TokenType)
	nft.BlockNumber = ec.block()
	nft.BlockTimestamp = ec.timestamp()
	nft.TransactionHash = ec.event.TxHash

	reader := d.provider.Appraisals(ec.address, ec.block())
	if _, err := d.synchronizer.NFT(ctx, reader, nft, p.NftID); err != nil {
		return err
	}
	if err := ec.store.Save(ctx, nft); err != nil {
		return fmt.Errorf("failed to save nft %s: %w", nftID, err)
	}

	return updateRegisteredConductors(ctx, ec.store, func(c *schema.Conductor) bool {
		if c.NotAppraised.Contains(nftID) {
			return false
		}
		c.NotAppraised = c.NotAppraised.AppendUnique(nftID)
		return true
	})
}

func (d *dispatcher) handleNFTRemoved(ctx context.Context, ec *eventContext) error {
	var p domain.NFTRemovedParams
	if err := ec.event.DecodeParams(&p); err != nil {
		return err
	}

	nftID := domain.NumericID(p.NftID)
	nft, err := store.Find[*schema.NFT](ctx, ec.store, nftID)
	if err != nil {
		return fmt.Errorf("failed to load nft %s: %w", nftID, err)
	}
	if nft == nil {
		logger.DebugCtx(ctx, "removed nft is not indexed", zap.String("nft", nftID))
		return nil
	}

	err = updateRegisteredConductors(ctx, ec.store, func(c *schema.Conductor) bool {
		if !c.NotAppraised.Contains(nftID) {
			return false
		}
		c.NotAppraised = c.NotAppraised.Remove(nftID)
		return true
	})
	if err != nil {
		return err
	}

	if err := ec.store.Remove(ctx, schema.KindNFT, nftID); err != nil {
		return fmt.Errorf("failed to remove nft %s: %w", nftID, err)
	}
	return nil
}
