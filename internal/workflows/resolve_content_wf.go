package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/logger"
)

// ResolveContentWorkflow resolves the content document of job
func (w *worker) ResolveContentWorkflow(ctx workflow.Context, job content.Job) error {
	logger.InfoWf(ctx, "Resolving content", zap.String("shape", string(job.Shape)), zap.String("contentID", job.ContentID))

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    w.config.MaximumInterval,
			MaximumAttempts:    w.config.MaximumAttempts,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	err := workflow.ExecuteActivity(ctx, w.executor.ResolveContent, job).Get(ctx, nil)
	if err != nil {
		logger.ErrorWf(ctx, err, zap.String("job", job.Key()))
		return err
	}

	logger.InfoWf(ctx, "Content resolved", zap.String("job", job.Key()))

	return nil
}
