// Package aggregate re-reads counts, totals and averages from the contracts and
// overwrites the stored copies. Aggregates are never accumulated from event payloads.
package aggregate

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/ionic-indexer/internal/contracts"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/metrics"
	"github.com/feral-file/ionic-indexer/internal/relation"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

// Synchronizer overwrites entity aggregates with authoritative reads
type Synchronizer struct {
	metrics *metrics.Metrics
}

// NewSynchronizer creates a synchronizer. m may be nil.
func NewSynchronizer(m *metrics.Metrics) *Synchronizer {
	return &Synchronizer{metrics: m}
}

// Conductor refreshes every aggregate of conductor from getConductor
func (s *Synchronizer) Conductor(ctx context.Context, reader contracts.Conductors, conductor *schema.Conductor, conductorID *big.Int) (*contracts.Conductor, error) {
	snapshot, err := reader.GetConductor(ctx, conductorID)
	if err != nil {
		return nil, fmt.Errorf("failed to read conductor %s: %w", domain.BigString(conductorID), err)
	}

	ApplyConductorStats(conductor, snapshot.Stats)
	s.metrics.IncRefresh(string(schema.KindConductor))
	return snapshot, nil
}

// ApplyConductorStats overwrites the aggregates of conductor with stats
func ApplyConductorStats(conductor *schema.Conductor, stats contracts.ConductorStats) {
	conductor.AppraisalCount = domain.BigString(stats.AppraisalCount)
	conductor.TotalScore = domain.BigString(stats.TotalScore)
	conductor.AverageScore = domain.BigString(stats.AverageScore)
	conductor.ReviewCount = domain.BigString(stats.ReviewCount)
	conductor.TotalReviewScore = domain.BigString(stats.TotalReviewScore)
	conductor.AverageReviewScore = domain.BigString(stats.AverageReviewScore)
	conductor.InviteCount = domain.BigString(stats.InviteCount)
	conductor.AvailableInvites = domain.BigString(stats.AvailableInvites)
}

// NFT refreshes the status and score aggregates of nft from getNFT
func (s *Synchronizer) NFT(ctx context.Context, reader contracts.Appraisals, nft *schema.NFT, nftID *big.Int) (*contracts.NFT, error) {
	snapshot, err := reader.GetNFT(ctx, nftID)
	if err != nil {
		return nil, fmt.Errorf("failed to read nft %s: %w", domain.BigString(nftID), err)
	}

	nft.Active = snapshot.Active
	nft.AppraisalCount = domain.BigString(snapshot.AppraisalCount)
	nft.TotalScore = domain.BigString(snapshot.TotalScore)
	nft.AverageScore = domain.BigString(snapshot.AverageScore)
	s.metrics.IncRefresh(string(schema.KindNFT))
	return snapshot, nil
}

// Reviewer refreshes the review aggregates of reviewer from getReviewer
func (s *Synchronizer) Reviewer(ctx context.Context, reader contracts.Conductors, reviewer *schema.Reviewer, wallet common.Address) (*contracts.Reviewer, error) {
	snapshot, err := reader.GetReviewer(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to read reviewer %s: %w", wallet.Hex(), err)
	}

	reviewer.ReviewCount = domain.BigString(snapshot.Stats.ReviewCount)
	reviewer.TotalScore = domain.BigString(snapshot.Stats.TotalScore)
	reviewer.AverageScore = domain.BigString(snapshot.Stats.AverageScore)
	reviewer.LastReviewTimestamp = domain.BigString(snapshot.Stats.LastReviewTimestamp)
	s.metrics.IncRefresh(string(schema.KindReviewer))
	return snapshot, nil
}

// Designer refreshes the status and pack count of designer from getDesigner
func (s *Synchronizer) Designer(ctx context.Context, reader contracts.Designers, designer *schema.Designer, designerID *big.Int) (*contracts.Designer, error) {
	snapshot, err := reader.GetDesigner(ctx, designerID)
	if err != nil {
		return nil, fmt.Errorf("failed to read designer %s: %w", domain.BigString(designerID), err)
	}

	designer.Active = snapshot.Active
	designer.PackCount = domain.BigString(snapshot.PackCount)
	s.metrics.IncRefresh(string(schema.KindDesigner))
	return snapshot, nil
}

// ReactionPack refreshes the price curve, sold count and status of pack from getReactionPack
func (s *Synchronizer) ReactionPack(ctx context.Context, reader contracts.ReactionPacks, pack *schema.ReactionPack, packID *big.Int) (*contracts.ReactionPack, error) {
	snapshot, err := reader.GetReactionPack(ctx, packID)
	if err != nil {
		return nil, fmt.Errorf("failed to read reaction pack %s: %w", domain.BigString(packID), err)
	}

	pack.CurrentPrice = domain.BigString(snapshot.CurrentPrice)
	pack.MaxEditions = domain.BigString(snapshot.MaxEditions)
	pack.SoldCount = domain.BigString(snapshot.SoldCount)
	pack.ConductorReservedSpots = domain.BigString(snapshot.ConductorReservedSpots)
	pack.Active = snapshot.Active
	s.metrics.IncRefresh(string(schema.KindReactionPack))
	return snapshot, nil
}

// PackPurchases replaces the purchase list of pack with getPackPurchases
func (s *Synchronizer) PackPurchases(ctx context.Context, reader contracts.ReactionPacks, pack *schema.ReactionPack, packID *big.Int) error {
	purchaseIDs, err := reader.GetPackPurchases(ctx, packID)
	if err != nil {
		return fmt.Errorf("failed to read purchases of pack %s: %w", domain.BigString(packID), err)
	}

	ids := make([]string, 0, len(purchaseIDs))
	for _, id := range purchaseIDs {
		ids = append(ids, domain.NumericID(id))
	}
	pack.Purchases = relation.Of(ids...)
	return nil
}
