package content_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/mocks"
)

func TestGatewayFetcher_FirstSuccessWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	fetcher := content.NewGatewayFetcher(httpClient, []string{"https://a.example/", " https://b.example "}, nil)

	// the losing gateway may not be called before the winner returns
	httpClient.EXPECT().GetBytes(gomock.Any(), "https://a.example/ipfs/QmX").Return(nil, adapter.ErrHTTPNotFound).MaxTimes(1)
	httpClient.EXPECT().GetBytes(gomock.Any(), "https://b.example/ipfs/QmX").Return([]byte(`{}`), nil)

	body, err := fetcher.Fetch(context.Background(), "QmX")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), body)
}

func TestGatewayFetcher_AllGatewaysFail(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	fetcher := content.NewGatewayFetcher(httpClient, []string{"https://a.example", "https://b.example"}, nil)

	httpClient.EXPECT().GetBytes(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout")).Times(2)

	_, err := fetcher.Fetch(context.Background(), "QmX")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrContentNotFound))
}

func TestGatewayFetcher_DefaultGateway(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	fetcher := content.NewGatewayFetcher(httpClient, nil, nil)

	httpClient.EXPECT().GetBytes(gomock.Any(), domain.DEFAULT_IPFS_GATEWAY+"/ipfs/QmX").Return([]byte(`{}`), nil)

	_, err := fetcher.Fetch(context.Background(), "QmX")
	require.NoError(t, err)
}

func TestGatewayFetcher_EmptyContentID(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := content.NewGatewayFetcher(mocks.NewMockHTTPClient(ctrl), nil, nil)

	_, err := fetcher.Fetch(context.Background(), "")
	assert.True(t, errors.Is(err, domain.ErrContentNotFound))
}

func TestGatewayFetcher_RateLimitedGatewaySkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	httpClient := mocks.NewMockHTTPClient(ctrl)
	limiter := mocks.NewMockRateLimiter(ctrl)
	fetcher := content.NewGatewayFetcher(httpClient, []string{"https://a.example", "https://b.example"}, limiter)

	limiter.EXPECT().Wait(gomock.Any(), "https://a.example").Return(context.DeadlineExceeded)
	limiter.EXPECT().Wait(gomock.Any(), "https://b.example").Return(nil)
	httpClient.EXPECT().GetBytes(gomock.Any(), "https://b.example/ipfs/QmX").Return([]byte(`{"title":"x"}`), nil)

	body, err := fetcher.Fetch(context.Background(), "QmX")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"title":"x"}`), body)
}

func TestGatewayFetcher_AllGatewaysRateLimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	limiter := mocks.NewMockRateLimiter(ctrl)
	fetcher := content.NewGatewayFetcher(mocks.NewMockHTTPClient(ctrl), nil, limiter)

	limiter.EXPECT().Wait(gomock.Any(), domain.DEFAULT_IPFS_GATEWAY).Return(context.Canceled)

	_, err := fetcher.Fetch(context.Background(), "QmX")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrContentNotFound)
	assert.ErrorIs(t, err, context.Canceled)
}
