package content

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/ratelimit"
)

// Fetcher returns the raw bytes addressed by a content id
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/content_fetcher.go -package=mocks -mock_names=Fetcher=MockContentFetcher
type Fetcher interface {
	Fetch(ctx context.Context, contentID string) ([]byte, error)
}

type gatewayFetcher struct {
	httpClient adapter.HTTPClient
	gateways   []string
	limiter    ratelimit.Limiter
}

// NewGatewayFetcher creates a fetcher that reads content ids from IPFS gateways.
// Gateways are base urls such as https://ipfs.io, an empty list falls back to
// the default gateway. Requests are paced per gateway by limiter, nil means
// no pacing.
func NewGatewayFetcher(httpClient adapter.HTTPClient, gateways []string, limiter ratelimit.Limiter) Fetcher {
	var gws []string
	for _, gw := range gateways {
		gw = strings.TrimRight(strings.TrimSpace(gw), "/")
		if gw != "" {
			gws = append(gws, gw)
		}
	}
	if len(gws) == 0 {
		gws = []string{domain.DEFAULT_IPFS_GATEWAY}
	}

	if limiter == nil {
		limiter = ratelimit.NewLimiter(ratelimit.Config{})
	}

	return &gatewayFetcher{httpClient: httpClient, gateways: gws, limiter: limiter}
}

// Fetch tries every gateway in parallel and returns the first successful body
func (f *gatewayFetcher) Fetch(ctx context.Context, contentID string) ([]byte, error) {
	if contentID == "" {
		return nil, fmt.Errorf("%w: empty content id", domain.ErrContentNotFound)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		gateway string
		body    []byte
		err     error
	}

	results := make(chan result, len(f.gateways))
	for _, gateway := range f.gateways {
		go func(gw string) {
			if err := f.limiter.Wait(ctx, gw); err != nil {
				results <- result{gateway: gw, err: fmt.Errorf("rate limited: %w", err)}
				return
			}
			url := fmt.Sprintf("%s/ipfs/%s", gw, contentID)
			body, err := f.httpClient.GetBytes(ctx, url)
			results <- result{gateway: gw, body: body, err: err}
		}(gateway)
	}

	var errs []error
	for range f.gateways {
		res := <-results
		if res.err == nil {
			return res.body, nil
		}

		logger.DebugCtx(ctx, "gateway failed to serve content",
			zap.String("gateway", res.gateway),
			zap.String("contentID", contentID),
			zap.Error(res.err))
		errs = append(errs, res.err)
	}

	return nil, fmt.Errorf("%w: %s: %w", domain.ErrContentNotFound, contentID, errors.Join(errs...))
}
