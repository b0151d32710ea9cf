package indexer_test

import (
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/contracts"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/relation"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

func packSnapshot(packID int64, sold int64, reactions ...int64) *contracts.ReactionPack {
	ids := make([]*big.Int, 0, len(reactions))
	for _, r := range reactions {
		ids = append(ids, big.NewInt(r))
	}
	return &contracts.ReactionPack{
		PackID:                 big.NewInt(packID),
		Designer:               walletB,
		BasePrice:              big.NewInt(100),
		CurrentPrice:           big.NewInt(100 + sold*10),
		MaxEditions:            big.NewInt(50),
		SoldCount:              big.NewInt(sold),
		ConductorReservedSpots: big.NewInt(5),
		Active:                 true,
		PackURI:                "ipfs://QmPack",
		ReactionIDs:            ids,
	}
}

func TestReactionPackCreated(t *testing.T) {
	tm := setupTestDispatcher(t)

	tm.save(t, &schema.Designer{ID: id(6), DesignerID: "6"})

	tm.reactionPacks.EXPECT().DesignersAddress(gomock.Any()).Return(designersAddress, nil)
	tm.reactionPacks.EXPECT().DefaultPriceIncrement(gomock.Any()).Return(big.NewInt(10), nil)
	tm.reactionPacks.EXPECT().GetReactionPack(gomock.Any(), bigEq(4)).Return(packSnapshot(4, 0, 7, 8), nil)
	tm.designers.EXPECT().GetDesignerByWallet(gomock.Any(), walletB).
		Return(&contracts.Designer{DesignerID: big.NewInt(6), Wallet: walletB}, nil)
	tm.designers.EXPECT().GetDesigner(gomock.Any(), bigEq(6)).
		Return(&contracts.Designer{DesignerID: big.NewInt(6), Active: true, PackCount: big.NewInt(1)}, nil)
	tm.scheduler.EXPECT().Schedule(gomock.Any(), content.Job{Shape: content.ShapeBaseMetadata, ContentID: "QmPack"}).Return(nil)

	tm.handle(t, tm.event(t, reactionPacksAddress, domain.EventReactionPackCreated, domain.ReactionPackCreatedParams{
		Designer:               walletB,
		PackID:                 big.NewInt(4),
		BasePrice:              big.NewInt(100),
		MaxEditions:            big.NewInt(50),
		ConductorReservedSpots: big.NewInt(5),
	}))

	pack := find[*schema.ReactionPack](t, tm, id(4))
	require.NotNil(t, pack)
	assert.Equal(t, domain.WalletID(walletB), pack.Designer)
	require.NotNil(t, pack.DesignerProfile)
	assert.Equal(t, id(6), *pack.DesignerProfile)
	assert.Equal(t, "100", pack.BasePrice)
	assert.Equal(t, "10", pack.PriceIncrement)
	assert.Equal(t, "0", pack.SoldCount)
	assert.Equal(t, "50", pack.MaxEditions)
	assert.True(t, pack.Active)
	require.NotNil(t, pack.BaseMetadata)
	assert.Equal(t, "QmPack", *pack.BaseMetadata)
	assert.Equal(t, []string{id(7), id(8)}, []string(pack.Reactions))

	for _, r := range []int64{7, 8} {
		reaction := find[*schema.Reaction](t, tm, id(r))
		require.NotNil(t, reaction)
		require.NotNil(t, reaction.Pack)
		assert.Equal(t, id(4), *reaction.Pack)
	}

	designer := find[*schema.Designer](t, tm, id(6))
	assert.Equal(t, []string{id(4)}, []string(designer.ReactionPacks))
	assert.Equal(t, "1", designer.PackCount)
}

func TestReactionAdded(t *testing.T) {
	tm := setupTestDispatcher(t)

	tm.save(t, &schema.ReactionPack{ID: id(4), PackID: "4", Reactions: relation.Of(id(7))})
	tm.scheduler.EXPECT().Schedule(gomock.Any(), content.Job{Shape: content.ShapeReactionMetadata, ContentID: "QmFire"}).Return(nil)

	tm.handle(t, tm.event(t, reactionPacksAddress, domain.EventReactionAdded, domain.ReactionAddedParams{
		PackID:      big.NewInt(4),
		ReactionID:  big.NewInt(8),
		ReactionURI: "ipfs://QmFire",
	}))

	reaction := find[*schema.Reaction](t, tm, id(8))
	require.NotNil(t, reaction)
	assert.Equal(t, "8", reaction.ReactionID)
	assert.Equal(t, "ipfs://QmFire", reaction.URI)
	require.NotNil(t, reaction.Metadata)
	assert.Equal(t, "QmFire", *reaction.Metadata)
	require.NotNil(t, reaction.Pack)
	assert.Equal(t, id(4), *reaction.Pack)

	assert.Equal(t, []string{id(7), id(8)}, []string(find[*schema.ReactionPack](t, tm, id(4)).Reactions))
}

func TestPackPurchased_RebuildsTokenReactions(t *testing.T) {
	tm := setupTestDispatcher(t)

	packID := id(4)
	stale := domain.TokenReactionID(big.NewInt(7), big.NewInt(1))
	tm.save(t,
		&schema.ReactionPack{ID: packID, PackID: "4", Reactions: relation.Of(id(7), id(9))},
		&schema.Reaction{
			ID:             id(7),
			ReactionID:     "7",
			Pack:           &packID,
			TokenIDs:       relation.Of("1"),
			TokenReactions: relation.Of(stale),
		},
		&schema.TokenReaction{ID: stale, TokenID: "1", Reaction: id(7)},
	)

	tm.reactionPacks.EXPECT().GetPurchase(gomock.Any(), bigEq(3)).Return(&contracts.Purchase{
		PurchaseID:  big.NewInt(3),
		PackID:      big.NewInt(4),
		ShareWeight: big.NewInt(250),
	}, nil)
	tm.reactionPacks.EXPECT().GetReactionPack(gomock.Any(), bigEq(4)).Return(packSnapshot(4, 2, 7, 9), nil)
	tm.reactionPacks.EXPECT().GetPackPurchases(gomock.Any(), bigEq(4)).Return([]*big.Int{big.NewInt(2)}, nil)
	tm.reactionPacks.EXPECT().GetReaction(gomock.Any(), bigEq(7)).Return(&contracts.Reaction{
		ReactionID: big.NewInt(7),
		TokenIDs:   []*big.Int{big.NewInt(2), big.NewInt(3)},
	}, nil)

	tm.handle(t, tm.event(t, reactionPacksAddress, domain.EventPackPurchased, domain.PackPurchasedParams{
		Buyer:         walletA,
		PackID:        big.NewInt(4),
		Price:         big.NewInt(110),
		PurchaseID:    big.NewInt(3),
		EditionNumber: big.NewInt(2),
	}))

	purchase := find[*schema.Purchase](t, tm, id(3))
	require.NotNil(t, purchase)
	assert.Equal(t, packID, purchase.Pack)
	assert.Equal(t, domain.WalletID(walletA), purchase.Buyer)
	assert.Equal(t, "110", purchase.Price)
	assert.Equal(t, "2", purchase.EditionNumber)
	assert.Equal(t, "250", purchase.ShareWeight)

	pack := find[*schema.ReactionPack](t, tm, packID)
	assert.Equal(t, "2", pack.SoldCount)
	assert.Equal(t, "120", pack.CurrentPrice)
	assert.Equal(t, []string{id(2), id(3)}, []string(pack.Purchases))

	reaction := find[*schema.Reaction](t, tm, id(7))
	assert.Equal(t, []string{"2", "3"}, []string(reaction.TokenIDs))
	bindings := []string{
		domain.TokenReactionID(big.NewInt(7), big.NewInt(2)),
		domain.TokenReactionID(big.NewInt(7), big.NewInt(3)),
	}
	assert.Equal(t, bindings, []string(reaction.TokenReactions))

	for _, b := range bindings {
		binding := find[*schema.TokenReaction](t, tm, b)
		require.NotNil(t, binding)
		assert.Equal(t, id(7), binding.Reaction)
	}
	assert.Nil(t, find[*schema.TokenReaction](t, tm, stale))
}

func TestPackPurchased_UnknownPack(t *testing.T) {
	tm := setupTestDispatcher(t)

	tm.reactionPacks.EXPECT().GetPurchase(gomock.Any(), bigEq(3)).
		Return(&contracts.Purchase{PurchaseID: big.NewInt(3), ShareWeight: big.NewInt(1)}, nil)

	tm.handle(t, tm.event(t, reactionPacksAddress, domain.EventPackPurchased, domain.PackPurchasedParams{
		Buyer:         walletA,
		PackID:        big.NewInt(4),
		Price:         big.NewInt(110),
		PurchaseID:    big.NewInt(3),
		EditionNumber: big.NewInt(1),
	}))

	assert.NotNil(t, find[*schema.Purchase](t, tm, id(3)))
	assert.Nil(t, find[*schema.ReactionPack](t, tm, id(4)))
}

func TestPackPurchased_WideIDsKeepSeparateBindings(t *testing.T) {
	tm := setupTestDispatcher(t)

	packID := id(4)
	tm.save(t,
		&schema.ReactionPack{ID: packID, PackID: "4", Reactions: relation.Of(id(1), id(257))},
		&schema.Reaction{ID: id(1), ReactionID: "1", Pack: &packID},
		&schema.Reaction{ID: id(257), ReactionID: "257", Pack: &packID},
	)

	tm.reactionPacks.EXPECT().GetPurchase(gomock.Any(), bigEq(3)).Return(&contracts.Purchase{
		PurchaseID:  big.NewInt(3),
		PackID:      big.NewInt(4),
		ShareWeight: big.NewInt(250),
	}, nil)
	tm.reactionPacks.EXPECT().GetReactionPack(gomock.Any(), bigEq(4)).Return(packSnapshot(4, 1, 1, 257), nil)
	tm.reactionPacks.EXPECT().GetPackPurchases(gomock.Any(), bigEq(4)).Return([]*big.Int{big.NewInt(3)}, nil)
	tm.reactionPacks.EXPECT().GetReaction(gomock.Any(), bigEq(1)).Return(&contracts.Reaction{
		ReactionID: big.NewInt(1),
		TokenIDs:   []*big.Int{big.NewInt(513)},
	}, nil)
	tm.reactionPacks.EXPECT().GetReaction(gomock.Any(), bigEq(257)).Return(&contracts.Reaction{
		ReactionID: big.NewInt(257),
		TokenIDs:   []*big.Int{big.NewInt(2)},
	}, nil)

	tm.handle(t, tm.event(t, reactionPacksAddress, domain.EventPackPurchased, domain.PackPurchasedParams{
		Buyer:         walletA,
		PackID:        big.NewInt(4),
		Price:         big.NewInt(100),
		PurchaseID:    big.NewInt(3),
		EditionNumber: big.NewInt(1),
	}))

	tests := []struct {
		reaction int64
		token    int64
	}{
		{reaction: 1, token: 513},
		{reaction: 257, token: 2},
	}
	for _, tt := range tests {
		bindingID := domain.TokenReactionID(big.NewInt(tt.reaction), big.NewInt(tt.token))

		reaction := find[*schema.Reaction](t, tm, id(tt.reaction))
		require.NotNil(t, reaction)
		assert.Equal(t, []string{bindingID}, []string(reaction.TokenReactions))

		binding := find[*schema.TokenReaction](t, tm, bindingID)
		require.NotNil(t, binding)
		assert.Equal(t, id(tt.reaction), binding.Reaction)
		assert.Equal(t, big.NewInt(tt.token).String(), binding.TokenID)
	}
}
