package indexer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/aggregate"
	"github.com/feral-file/ionic-indexer/internal/contracts"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/indexer"
	"github.com/feral-file/ionic-indexer/internal/mocks"
	"github.com/feral-file/ionic-indexer/internal/store"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

var (
	appraisalsAddress    = common.HexToAddress("0x1000000000000000000000000000000000000001")
	conductorsAddress    = common.HexToAddress("0x1000000000000000000000000000000000000002")
	designersAddress     = common.HexToAddress("0x1000000000000000000000000000000000000003")
	reactionPacksAddress = common.HexToAddress("0x1000000000000000000000000000000000000004")
	nftAddress           = common.HexToAddress("0x1000000000000000000000000000000000000005")
	accessAddress        = common.HexToAddress("0x1000000000000000000000000000000000000006")

	walletA = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	walletB = common.HexToAddress("0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
)

type testDispatcherMocks struct {
	ctrl          *gomock.Controller
	provider      *mocks.MockContractProvider
	appraisals    *mocks.MockAppraisals
	conductors    *mocks.MockConductors
	designers     *mocks.MockDesigners
	reactionPacks *mocks.MockReactionPacks
	scheduler     *mocks.MockContentScheduler
	store         store.Store
	dispatcher    indexer.Dispatcher

	// block advances with every event built by the helpers
	block uint64
}

func setupTestDispatcher(t *testing.T) *testDispatcherMocks {
	ctrl := gomock.NewController(t)

	tm := &testDispatcherMocks{
		ctrl:          ctrl,
		provider:      mocks.NewMockContractProvider(ctrl),
		appraisals:    mocks.NewMockAppraisals(ctrl),
		conductors:    mocks.NewMockConductors(ctrl),
		designers:     mocks.NewMockDesigners(ctrl),
		reactionPacks: mocks.NewMockReactionPacks(ctrl),
		scheduler:     mocks.NewMockContentScheduler(ctrl),
		store:         store.NewMemoryStore(),
		block:         100,
	}

	tm.provider.EXPECT().Appraisals(appraisalsAddress, gomock.Any()).Return(tm.appraisals).AnyTimes()
	tm.provider.EXPECT().Conductors(conductorsAddress, gomock.Any()).Return(tm.conductors).AnyTimes()
	tm.provider.EXPECT().Designers(designersAddress, gomock.Any()).Return(tm.designers).AnyTimes()
	tm.provider.EXPECT().ReactionPacks(reactionPacksAddress, gomock.Any()).Return(tm.reactionPacks).AnyTimes()

	tm.dispatcher = tm.newDispatcher(t, tm.store)

	return tm
}

// newDispatcher builds a dispatcher over st wired to the shared mocks
func (tm *testDispatcherMocks) newDispatcher(t *testing.T, st store.Store) indexer.Dispatcher {
	d, err := indexer.NewDispatcher(indexer.Config{
		Chain: domain.ChainEthereumSepolia,
		Contracts: map[domain.ContractKind]string{
			domain.ContractAppraisals:    appraisalsAddress.Hex(),
			domain.ContractConductors:    conductorsAddress.Hex(),
			domain.ContractDesigners:     designersAddress.Hex(),
			domain.ContractReactionPacks: reactionPacksAddress.Hex(),
			domain.ContractNFT:           nftAddress.Hex(),
			domain.ContractAccessControl: accessAddress.Hex(),
		},
	}, st, tm.provider, tm.scheduler, aggregate.NewSynchronizer(nil), nil)
	require.NoError(t, err)
	return d
}

// event builds the next event in chain order
func (tm *testDispatcherMocks) event(t *testing.T, address common.Address, name string, params interface{}) *domain.ContractEvent {
	raw, err := json.Marshal(params)
	require.NoError(t, err)

	tm.block++
	return &domain.ContractEvent{
		Chain:           domain.ChainEthereumSepolia,
		ContractAddress: address.Hex(),
		EventName:       name,
		BlockNumber:     tm.block,
		BlockHash:       common.BigToHash(new(big.Int).SetUint64(tm.block)).Hex(),
		BlockTimestamp:  time.Unix(1700000000+int64(tm.block), 0).UTC(),
		TxHash:          fmt.Sprintf("0x%064x", tm.block),
		LogIndex:        0,
		Params:          raw,
	}
}

func (tm *testDispatcherMocks) handle(t *testing.T, ev *domain.ContractEvent) {
	require.NoError(t, tm.dispatcher.Handle(context.Background(), ev))
}

// save stores records directly, outside of any event
func (tm *testDispatcherMocks) save(t *testing.T, entities ...schema.Entity) {
	for _, e := range entities {
		require.NoError(t, tm.store.Save(context.Background(), e))
	}
}

// ignoreContent accepts any number of content jobs
func (tm *testDispatcherMocks) ignoreContent() {
	tm.scheduler.EXPECT().Schedule(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

// rewind moves the event cursor back so already applied events are handled again
func (tm *testDispatcherMocks) rewind(t *testing.T) {
	require.NoError(t, tm.store.SetEventCursor(context.Background(), string(domain.ChainEthereumSepolia), domain.Position{}))
}

// recordingStore counts the distinct records written through it, including
// writes made inside transactions
type recordingStore struct {
	store.Store
	written map[string]struct{}
}

func newRecordingStore(st store.Store) *recordingStore {
	return &recordingStore{Store: st, written: make(map[string]struct{})}
}

func (s *recordingStore) Save(ctx context.Context, entity schema.Entity) error {
	s.written[string(entity.Kind())+"/"+entity.EntityID()] = struct{}{}
	return s.Store.Save(ctx, entity)
}

func (s *recordingStore) Transaction(ctx context.Context, fn func(tx store.Store) error) error {
	return s.Store.Transaction(ctx, func(tx store.Store) error {
		return fn(&recordingStore{Store: tx, written: s.written})
	})
}

func find[T schema.Entity](t *testing.T, tm *testDispatcherMocks, id string) T {
	v, err := store.Find[T](context.Background(), tm.store, id)
	require.NoError(t, err)
	return v
}

func stats(n int64) contracts.ConductorStats {
	return contracts.ConductorStats{
		AppraisalCount:     big.NewInt(n),
		TotalScore:         big.NewInt(n * 10),
		AverageScore:       big.NewInt(10),
		ReviewCount:        big.NewInt(n + 1),
		TotalReviewScore:   big.NewInt(n * 20),
		AverageReviewScore: big.NewInt(20),
		InviteCount:        big.NewInt(n + 2),
		AvailableInvites:   big.NewInt(5 - n),
	}
}

func id(n int64) string {
	return domain.NumericID(big.NewInt(n))
}

// bigEq matches a *big.Int argument by value
type bigEq int64

func (b bigEq) Matches(x interface{}) bool {
	n, ok := x.(*big.Int)
	return ok && n != nil && n.Cmp(big.NewInt(int64(b))) == 0
}

func (b bigEq) String() string {
	return fmt.Sprintf("is big.Int %d", int64(b))
}
