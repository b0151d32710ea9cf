package jetstream_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/messaging"
	"github.com/feral-file/ionic-indexer/internal/mocks"
	js "github.com/feral-file/ionic-indexer/internal/providers/jetstream"
)

var testConfig = js.Config{
	URL:             "nats://localhost:4222",
	StreamName:      "IONIC_EVENTS",
	MaxReconnects:   5,
	ReconnectWait:   time.Second,
	ConnectionName:  "ionic-event-emitter",
	DuplicateWindow: 2 * time.Minute,
}

func testEvent() *domain.ContractEvent {
	return &domain.ContractEvent{
		Chain:           domain.ChainBaseSepolia,
		ContractAddress: "0x00000000000000000000000000000000000000a1",
		EventName:       domain.EventNFTSubmitted,
		BlockNumber:     120,
		BlockTimestamp:  time.Unix(1735689600, 0).UTC(),
		TxHash:          "0xABC",
		LogIndex:        3,
		Params:          json.RawMessage(`{"nftId":7}`),
	}
}

type testPublisherMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mocks.MockNatsJetStream
	conn      *mocks.MockNatsConn
	jetStream *mocks.MockJetStream
}

func setupTestPublisher(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		ctrl:      ctrl,
		natsJS:    mocks.NewMockNatsJetStream(ctrl),
		conn:      mocks.NewMockNatsConn(ctrl),
		jetStream: mocks.NewMockJetStream(ctrl),
	}
}

func (tm *testPublisherMocks) connect(t *testing.T) messaging.Publisher {
	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.jetStream, nil)
	tm.jetStream.EXPECT().
		EnsureStream(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg jetstream.StreamConfig) error {
			assert.Equal(t, "IONIC_EVENTS", cfg.Name)
			assert.Equal(t, []string{"events.>"}, cfg.Subjects)
			assert.Equal(t, 2*time.Minute, cfg.Duplicates)
			return nil
		})

	p, err := js.NewPublisher(context.Background(), testConfig, tm.natsJS)
	require.NoError(t, err)
	return p
}

func TestNewPublisher_ConnectError(t *testing.T) {
	tm := setupTestPublisher(t)

	connErr := errors.New("no servers available")
	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(nil, nil, connErr)

	_, err := js.NewPublisher(context.Background(), testConfig, tm.natsJS)
	assert.ErrorIs(t, err, connErr)
}

func TestNewPublisher_StreamError(t *testing.T) {
	tm := setupTestPublisher(t)

	streamErr := errors.New("insufficient resources")
	tm.natsJS.EXPECT().Connect(testConfig.URL, gomock.Any()).Return(tm.conn, tm.jetStream, nil)
	tm.jetStream.EXPECT().EnsureStream(gomock.Any(), gomock.Any()).Return(streamErr)
	tm.conn.EXPECT().Close()

	_, err := js.NewPublisher(context.Background(), testConfig, tm.natsJS)
	assert.ErrorIs(t, err, streamErr)
}

func TestPublisher_PublishEvent(t *testing.T) {
	tm := setupTestPublisher(t)
	p := tm.connect(t)
	event := testEvent()

	tm.jetStream.EXPECT().
		Publish(gomock.Any(), "events.eip155-84532.NFTSubmitted", gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
			var got domain.ContractEvent
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, *event, got)
			return &jetstream.PubAck{Stream: "IONIC_EVENTS", Sequence: 1}, nil
		})

	require.NoError(t, p.PublishEvent(context.Background(), event))
}

func TestPublisher_PublishError(t *testing.T) {
	tm := setupTestPublisher(t)
	p := tm.connect(t)

	pubErr := errors.New("nats: timeout")
	tm.jetStream.EXPECT().
		Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, pubErr)

	err := p.PublishEvent(context.Background(), testEvent())
	assert.ErrorIs(t, err, pubErr)
}

func TestPublisher_CloseClosesChannel(t *testing.T) {
	tm := setupTestPublisher(t)
	p := tm.connect(t)

	tm.conn.EXPECT().Close()
	p.Close()

	select {
	case <-p.CloseChan():
	default:
		t.Fatal("close channel should be closed")
	}

	// closing twice is safe
	tm.conn.EXPECT().Close()
	p.Close()
}

func TestSubjectAndMessageID(t *testing.T) {
	event := testEvent()
	assert.Equal(t, "events.eip155-84532.NFTSubmitted", js.Subject(event))
	assert.Equal(t, "eip155:84532:0xabc:3", js.MessageID(event))
}
