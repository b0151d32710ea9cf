package content

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/metrics"
	"github.com/feral-file/ionic-indexer/internal/store"
	"github.com/feral-file/ionic-indexer/internal/store/schema"
)

// ErrMalformedContent is logged when a payload is not a JSON object
var ErrMalformedContent = errors.New("content is not a JSON object")

// Resolver materializes content documents into metadata records
//
//go:generate mockgen -source=resolver.go -destination=../mocks/content_resolver.go -package=mocks -mock_names=Resolver=MockContentResolver
type Resolver interface {
	// Resolve fetches and stores the document of job. A payload that is not a
	// JSON object produces no record and no error.
	Resolve(ctx context.Context, job Job) error
}

type resolver struct {
	store   store.Store
	fetcher Fetcher
	parser  *Parser
	jcs     adapter.JCS
	metrics *metrics.Metrics
}

// NewResolver creates a content resolver
func NewResolver(st store.Store, fetcher Fetcher, parser *Parser, jcs adapter.JCS, m *metrics.Metrics) Resolver {
	return &resolver{
		store:   st,
		fetcher: fetcher,
		parser:  parser,
		jcs:     jcs,
		metrics: m,
	}
}

func (r *resolver) Resolve(ctx context.Context, job Job) error {
	kind, err := job.Shape.Kind()
	if err != nil {
		r.metrics.IncContentJob(string(job.Shape), metrics.ResultError)
		return err
	}

	if job.ContentID == "" {
		r.metrics.IncContentJob(string(job.Shape), metrics.ResultSkipped)
		return nil
	}

	// Content ids address immutable documents
	existing, err := r.store.Load(ctx, kind, job.ContentID)
	if err != nil {
		return fmt.Errorf("failed to load %s %s: %w", kind, job.ContentID, err)
	}
	if existing != nil {
		logger.DebugCtx(ctx, "content already resolved", zap.String("job", job.Key()))
		r.metrics.IncContentJob(string(job.Shape), metrics.ResultSkipped)
		return nil
	}

	raw, err := r.fetcher.Fetch(ctx, job.ContentID)
	if err != nil {
		r.metrics.IncContentJob(string(job.Shape), metrics.ResultError)
		return fmt.Errorf("failed to fetch content %s: %w", job.ContentID, err)
	}

	records, ok, err := r.parser.Parse(ctx, job, raw)
	if err != nil {
		r.metrics.IncContentJob(string(job.Shape), metrics.ResultError)
		return err
	}
	if !ok {
		logger.ErrorCtx(ctx, ErrMalformedContent,
			zap.String("shape", string(job.Shape)),
			zap.String("contentID", job.ContentID))
		r.metrics.IncContentJob(string(job.Shape), metrics.ResultSkipped)
		return nil
	}

	setContentHash(records[len(records)-1], r.contentHash(ctx, raw))

	err = r.store.Transaction(ctx, func(tx store.Store) error {
		for _, record := range records {
			if err := tx.Save(ctx, record); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.metrics.IncContentJob(string(job.Shape), metrics.ResultError)
		return fmt.Errorf("failed to save content %s: %w", job.Key(), err)
	}

	logger.InfoCtx(ctx, "content resolved",
		zap.String("shape", string(job.Shape)),
		zap.String("contentID", job.ContentID),
		zap.Int("records", len(records)))
	r.metrics.IncContentJob(string(job.Shape), metrics.ResultOK)

	return nil
}

// contentHash returns the hex sha256 of the canonical form of raw
func (r *resolver) contentHash(ctx context.Context, raw []byte) string {
	canonical, err := r.jcs.Transform(raw)
	if err != nil {
		logger.WarnCtx(ctx, "failed to canonicalize content", zap.Error(err))
		return ""
	}

	hash := sha256.Sum256(canonical)
	return hex.EncodeToString(hash[:])
}

func setContentHash(record schema.Entity, hash string) {
	switch m := record.(type) {
	case *schema.Metadata:
		m.ContentHash = hash
	case *schema.BaseMetadata:
		m.ContentHash = hash
	case *schema.ReactionMetadata:
		m.ContentHash = hash
	}
}
