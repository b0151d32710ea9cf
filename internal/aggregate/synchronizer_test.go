package aggregate_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/aggregate"
	"github.com/feral-file/ionic-indexer/internal/contracts"
	"github.com/feral-file/ionic-indexer/internal/mocks"
	"github.com/feral-file/ionic-indexer/internal/relation"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

func TestSynchronizer_ConductorOverwritesStaleValues(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockConductors(ctrl)
	synchronizer := aggregate.NewSynchronizer(nil)

	conductor := &schema.Conductor{
		ID:             "0x01",
		AppraisalCount: "999",
		AverageScore:   "1",
		Appraisals:     relation.IDList{"0xa"},
	}

	reader.EXPECT().GetConductor(gomock.Any(), gomock.Any()).Return(&contracts.Conductor{
		ConductorID: big.NewInt(1),
		Stats: contracts.ConductorStats{
			AppraisalCount:     big.NewInt(2),
			TotalScore:         big.NewInt(150),
			AverageScore:       big.NewInt(75),
			ReviewCount:        big.NewInt(1),
			TotalReviewScore:   big.NewInt(4),
			AverageReviewScore: big.NewInt(4),
			InviteCount:        big.NewInt(3),
			AvailableInvites:   big.NewInt(2),
		},
	}, nil)

	snapshot, err := synchronizer.Conductor(context.Background(), reader, conductor, big.NewInt(1))
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, "2", conductor.AppraisalCount)
	assert.Equal(t, "150", conductor.TotalScore)
	assert.Equal(t, "75", conductor.AverageScore)
	assert.Equal(t, "1", conductor.ReviewCount)
	assert.Equal(t, "4", conductor.TotalReviewScore)
	assert.Equal(t, "4", conductor.AverageReviewScore)
	assert.Equal(t, "3", conductor.InviteCount)
	assert.Equal(t, "2", conductor.AvailableInvites)
	// relationship lists are untouched
	assert.Equal(t, relation.IDList{"0xa"}, conductor.Appraisals)
}

func TestSynchronizer_ConductorNilStatsDefaultToZero(t *testing.T) {
	conductor := &schema.Conductor{AppraisalCount: "5"}

	aggregate.ApplyConductorStats(conductor, contracts.ConductorStats{})

	assert.Equal(t, "0", conductor.AppraisalCount)
	assert.Equal(t, "0", conductor.AvailableInvites)
}

func TestSynchronizer_ReadFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	appraisals := mocks.NewMockAppraisals(ctrl)
	synchronizer := aggregate.NewSynchronizer(nil)

	nft := &schema.NFT{ID: "0x03", AppraisalCount: "1"}
	appraisals.EXPECT().GetNFT(gomock.Any(), gomock.Any()).Return(nil, errors.New("rpc down"))

	_, err := synchronizer.NFT(context.Background(), appraisals, nft, big.NewInt(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rpc down")
	assert.Equal(t, "1", nft.AppraisalCount)
}

func TestSynchronizer_NFT(t *testing.T) {
	ctrl := gomock.NewController(t)
	appraisals := mocks.NewMockAppraisals(ctrl)
	synchronizer := aggregate.NewSynchronizer(nil)

	nft := &schema.NFT{ID: "0x03"}
	appraisals.EXPECT().GetNFT(gomock.Any(), gomock.Any()).Return(&contracts.NFT{
		Active:         true,
		AppraisalCount: big.NewInt(4),
		TotalScore:     big.NewInt(320),
		AverageScore:   big.NewInt(80),
	}, nil)

	_, err := synchronizer.NFT(context.Background(), appraisals, nft, big.NewInt(3))
	require.NoError(t, err)
	assert.True(t, nft.Active)
	assert.Equal(t, "4", nft.AppraisalCount)
	assert.Equal(t, "320", nft.TotalScore)
	assert.Equal(t, "80", nft.AverageScore)
}

func TestSynchronizer_Reviewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockConductors(ctrl)
	synchronizer := aggregate.NewSynchronizer(nil)

	wallet := common.HexToAddress("0xbeef")
	reviewer := &schema.Reviewer{ID: "0xbeef"}
	reader.EXPECT().GetReviewer(gomock.Any(), wallet).Return(&contracts.Reviewer{
		Wallet: wallet,
		Stats: contracts.ReviewerStats{
			ReviewCount:         big.NewInt(2),
			TotalScore:          big.NewInt(9),
			AverageScore:        big.NewInt(4),
			LastReviewTimestamp: big.NewInt(1700000000),
		},
	}, nil)

	_, err := synchronizer.Reviewer(context.Background(), reader, reviewer, wallet)
	require.NoError(t, err)
	assert.Equal(t, "2", reviewer.ReviewCount)
	assert.Equal(t, "9", reviewer.TotalScore)
	assert.Equal(t, "4", reviewer.AverageScore)
	assert.Equal(t, "1700000000", reviewer.LastReviewTimestamp)
}

func TestSynchronizer_DesignerAndPack(t *testing.T) {
	ctrl := gomock.NewController(t)
	designers := mocks.NewMockDesigners(ctrl)
	packs := mocks.NewMockReactionPacks(ctrl)
	synchronizer := aggregate.NewSynchronizer(nil)

	designer := &schema.Designer{ID: "0x05"}
	designers.EXPECT().GetDesigner(gomock.Any(), gomock.Any()).Return(&contracts.Designer{
		Active:    true,
		PackCount: big.NewInt(2),
	}, nil)

	_, err := synchronizer.Designer(context.Background(), designers, designer, big.NewInt(5))
	require.NoError(t, err)
	assert.True(t, designer.Active)
	assert.Equal(t, "2", designer.PackCount)

	pack := &schema.ReactionPack{ID: "0x08", SoldCount: "1", Purchases: relation.IDList{"0x63"}}
	packs.EXPECT().GetReactionPack(gomock.Any(), gomock.Any()).Return(&contracts.ReactionPack{
		CurrentPrice:           big.NewInt(120),
		MaxEditions:            big.NewInt(10),
		SoldCount:              big.NewInt(3),
		ConductorReservedSpots: big.NewInt(2),
		Active:                 true,
	}, nil)
	packs.EXPECT().GetPackPurchases(gomock.Any(), gomock.Any()).Return([]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(1)}, nil)

	_, err = synchronizer.ReactionPack(context.Background(), packs, pack, big.NewInt(8))
	require.NoError(t, err)
	require.NoError(t, synchronizer.PackPurchases(context.Background(), packs, pack, big.NewInt(8)))

	assert.Equal(t, "120", pack.CurrentPrice)
	assert.Equal(t, "3", pack.SoldCount)
	assert.True(t, pack.Active)
	assert.Equal(t, relation.IDList{"0x01", "0x02"}, pack.Purchases)
}
