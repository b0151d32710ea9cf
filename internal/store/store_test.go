package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/relation"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

// RunStoreTests runs the shared store behaviour against an implementation.
// initDB returns a fresh, empty store for each test.
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"LoadAbsent", testLoadAbsent},
		{"SaveAndLoad", testSaveAndLoad},
		{"SaveReplaces", testSaveReplaces},
		{"Remove", testRemove},
		{"Find", testFind},
		{"UnknownKind", testUnknownKind},
		{"SaveWithoutID", testSaveWithoutID},
		{"TransactionCommit", testTransactionCommit},
		{"TransactionRollback", testTransactionRollback},
		{"MetadataRecords", testMetadataRecords},
		{"EventRecord", testEventRecord},
		{"BlockCursor", testBlockCursor},
		{"EventCursor", testEventCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}

func strPtr(s string) *string {
	return &s
}

func buildTestConductor(id string) *schema.Conductor {
	return &schema.Conductor{
		ID:               id,
		ConductorID:      "1",
		Wallet:           "0x00000000000000000000000000000000000000aa",
		URI:              "ipfs://QmConductor",
		BaseMetadata:     strPtr("QmConductor"),
		AppraisalCount:   "3",
		TotalScore:       "240",
		AverageScore:     "80",
		InviteCount:      "1",
		AvailableInvites: "4",
		Appraisals:       relation.IDList{"0x01", "0x02"},
		NotAppraised:     relation.IDList{"0x10"},
		BlockNumber:      100,
		BlockTimestamp:   1700000000,
		TransactionHash:  "0xabc",
	}
}

func testLoadAbsent(t *testing.T, store Store) {
	ctx := context.Background()

	entity, err := store.Load(ctx, schema.KindConductor, "0xmissing")
	require.NoError(t, err)
	assert.Nil(t, entity)
}

func testSaveAndLoad(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, buildTestConductor("0x01")))

	entity, err := store.Load(ctx, schema.KindConductor, "0x01")
	require.NoError(t, err)
	require.NotNil(t, entity)

	conductor, ok := entity.(*schema.Conductor)
	require.True(t, ok)
	assert.Equal(t, "0x01", conductor.ID)
	assert.Equal(t, "ipfs://QmConductor", conductor.URI)
	require.NotNil(t, conductor.BaseMetadata)
	assert.Equal(t, "QmConductor", *conductor.BaseMetadata)
	assert.Equal(t, "240", conductor.TotalScore)
	assert.Equal(t, relation.IDList{"0x01", "0x02"}, conductor.Appraisals)
	assert.Equal(t, relation.IDList{"0x10"}, conductor.NotAppraised)
	assert.Empty(t, conductor.Reviews)
	assert.Equal(t, uint64(100), conductor.BlockNumber)
	assert.Equal(t, int64(1700000000), conductor.BlockTimestamp)
}

func testSaveReplaces(t *testing.T, store Store) {
	ctx := context.Background()

	conductor := buildTestConductor("0x01")
	require.NoError(t, store.Save(ctx, conductor))

	conductor.Appraisals = conductor.Appraisals.Remove("0x01")
	conductor.BaseMetadata = nil
	conductor.AverageScore = "90"
	require.NoError(t, store.Save(ctx, conductor))

	loaded, err := Find[*schema.Conductor](ctx, store, "0x01")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, relation.IDList{"0x02"}, loaded.Appraisals)
	assert.Nil(t, loaded.BaseMetadata)
	assert.Equal(t, "90", loaded.AverageScore)
}

func testRemove(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &schema.NFT{ID: "0x03", NftID: "3"}))
	require.NoError(t, store.Remove(ctx, schema.KindNFT, "0x03"))

	entity, err := store.Load(ctx, schema.KindNFT, "0x03")
	require.NoError(t, err)
	assert.Nil(t, entity)

	// removing something never stored is tolerated
	require.NoError(t, store.Remove(ctx, schema.KindNFT, "0x03"))
}

func testFind(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &schema.ReactionUsage{ID: "0xusage", Count: "5", ReactionID: "7", Reaction: "0x07"}))

	usage, err := Find[*schema.ReactionUsage](ctx, store, "0xusage")
	require.NoError(t, err)
	require.NotNil(t, usage)
	assert.Equal(t, "5", usage.Count)
	assert.Equal(t, "0x07", usage.Reaction)

	missing, err := Find[*schema.Designer](ctx, store, "0xnone")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func testUnknownKind(t *testing.T, store Store) {
	ctx := context.Background()

	_, err := store.Load(ctx, schema.Kind("Nope"), "0x01")
	assert.Error(t, err)
	assert.Error(t, store.Remove(ctx, schema.Kind("Nope"), "0x01"))
}

func testSaveWithoutID(t *testing.T, store Store) {
	assert.Error(t, store.Save(context.Background(), &schema.Review{}))
}

func testTransactionCommit(t *testing.T, store Store) {
	ctx := context.Background()

	err := store.Transaction(ctx, func(tx Store) error {
		if err := tx.Save(ctx, &schema.Designer{ID: "0x05", DesignerID: "5", Active: true}); err != nil {
			return err
		}
		return tx.SetEventCursor(ctx, "ionic", domain.Position{BlockNumber: 9, LogIndex: 1})
	})
	require.NoError(t, err)

	designer, err := Find[*schema.Designer](ctx, store, "0x05")
	require.NoError(t, err)
	require.NotNil(t, designer)
	assert.True(t, designer.Active)

	cursor, err := store.GetEventCursor(ctx, "ionic")
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, domain.Position{BlockNumber: 9, LogIndex: 1}, *cursor)
}

func testTransactionRollback(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &schema.ConductorRegistry{ID: domain.RegistryID, ConductorIDs: relation.IDList{"1"}}))

	boom := errors.New("boom")
	err := store.Transaction(ctx, func(tx Store) error {
		registry, err := Find[*schema.ConductorRegistry](ctx, tx, domain.RegistryID)
		if err != nil {
			return err
		}
		registry.ConductorIDs = registry.ConductorIDs.AppendUnique("2")
		if err := tx.Save(ctx, registry); err != nil {
			return err
		}
		if err := tx.Save(ctx, &schema.Conductor{ID: "0x02", ConductorID: "2"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	registry, err := Find[*schema.ConductorRegistry](ctx, store, domain.RegistryID)
	require.NoError(t, err)
	require.NotNil(t, registry)
	assert.Equal(t, relation.IDList{"1"}, registry.ConductorIDs)

	conductor, err := Find[*schema.Conductor](ctx, store, "0x02")
	require.NoError(t, err)
	assert.Nil(t, conductor)
}

func testMetadataRecords(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &schema.Metadata{
		ID:        "QmMeta",
		Comment:   strPtr("great show"),
		Reactions: relation.IDList{"QmMeta-reaction-0"},
	}))
	require.NoError(t, store.Save(ctx, &schema.ResponseMetadata{ID: "QmMeta-reaction-0", Emoji: strPtr("🔥"), Count: "2"}))
	require.NoError(t, store.Save(ctx, &schema.BaseMetadata{ID: "QmBase", Title: strPtr("Gallery")}))
	require.NoError(t, store.Save(ctx, &schema.ReactionMetadata{ID: "QmReaction", Model: strPtr("sdxl")}))

	meta, err := Find[*schema.Metadata](ctx, store, "QmMeta")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "great show", *meta.Comment)
	assert.Equal(t, relation.IDList{"QmMeta-reaction-0"}, meta.Reactions)

	response, err := Find[*schema.ResponseMetadata](ctx, store, "QmMeta-reaction-0")
	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, "🔥", *response.Emoji)

	base, err := Find[*schema.BaseMetadata](ctx, store, "QmBase")
	require.NoError(t, err)
	require.NotNil(t, base)
	assert.Equal(t, "Gallery", *base.Title)
	assert.Nil(t, base.Description)

	reaction, err := Find[*schema.ReactionMetadata](ctx, store, "QmReaction")
	require.NoError(t, err)
	require.NotNil(t, reaction)
	assert.Equal(t, "sdxl", *reaction.Model)
	assert.Nil(t, reaction.Prompt)
}

func testEventRecord(t *testing.T, store Store) {
	ctx := context.Background()

	record := &schema.EventRecord{
		ID:              "0xevent",
		Contract:        string(domain.ContractNFT),
		ContractAddress: "0x00000000000000000000000000000000000000cc",
		EventName:       domain.EventTransfer,
		Params:          datatypes.JSON(`{"from":"0x01","to":"0x02","tokenId":1}`),
		BlockNumber:     42,
		LogIndex:        3,
	}
	require.NoError(t, store.Save(ctx, record))

	loaded, err := Find[*schema.EventRecord](ctx, store, "0xevent")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, domain.EventTransfer, loaded.EventName)
	assert.JSONEq(t, `{"from":"0x01","to":"0x02","tokenId":1}`, string(loaded.Params))
	assert.Equal(t, uint(3), loaded.LogIndex)
}

func testBlockCursor(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("get non-existent cursor returns 0", func(t *testing.T) {
		cursor, err := store.GetBlockCursor(ctx, "test_chain_nonexistent")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), cursor)
	})

	t.Run("set and update cursor", func(t *testing.T) {
		chain := "eip155:1"

		require.NoError(t, store.SetBlockCursor(ctx, chain, 100))
		require.NoError(t, store.SetBlockCursor(ctx, chain, 200))

		cursor, err := store.GetBlockCursor(ctx, chain)
		require.NoError(t, err)
		assert.Equal(t, uint64(200), cursor)
	})
}

func testEventCursor(t *testing.T, store Store) {
	ctx := context.Background()

	cursor, err := store.GetEventCursor(ctx, "ionic")
	require.NoError(t, err)
	assert.Nil(t, cursor)

	require.NoError(t, store.SetEventCursor(ctx, "ionic", domain.Position{BlockNumber: 10, LogIndex: 0}))
	require.NoError(t, store.SetEventCursor(ctx, "ionic", domain.Position{BlockNumber: 12, LogIndex: 7}))

	cursor, err = store.GetEventCursor(ctx, "ionic")
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, domain.Position{BlockNumber: 12, LogIndex: 7}, *cursor)
}
