package workflows

import (
	"context"
	"errors"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/adapter"
	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/domain"
	"github.com/feral-file/ionic-indexer/internal/logger"
)

// Executor defines the activities of the content worker
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_content.go -package=mocks -mock_names=Executor=MockContentExecutor
type Executor interface {
	// ResolveContent fetches a content document and stores its metadata records
	ResolveContent(ctx context.Context, job content.Job) error
}

type executor struct {
	resolver content.Resolver
	activity adapter.Activity
}

// NewExecutor creates a new executor instance
func NewExecutor(resolver content.Resolver, activity adapter.Activity) Executor {
	return &executor{
		resolver: resolver,
		activity: activity,
	}
}

func (e *executor) ResolveContent(ctx context.Context, job content.Job) error {
	info := e.activity.GetInfo(ctx)

	err := e.resolver.Resolve(ctx, job)
	if err == nil {
		return nil
	}

	logger.WarnCtx(ctx, "content resolution attempt failed",
		zap.String("job", job.Key()),
		zap.Int32("attempt", info.Attempt),
		zap.Error(err))

	// Retrying cannot fix an unknown shape
	if errors.Is(err, domain.ErrUnsupportedShape) {
		return temporal.NewNonRetryableApplicationError(err.Error(), "UnsupportedShape", err)
	}

	return err
}
