package temporal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/content"
	"github.com/feral-file/ionic-indexer/internal/logger"
	"github.com/feral-file/ionic-indexer/internal/workflows"
)

// ContentScheduler starts one workflow per content job on the content worker
// task queue. Workflow ids are derived from the job so a document is resolved
// once unless its previous run failed.
type ContentScheduler struct {
	orchestrator TemporalOrchestrator
	taskQueue    string
	runTimeout   time.Duration
}

// NewContentScheduler creates a Temporal backed content scheduler
func NewContentScheduler(orchestrator TemporalOrchestrator, taskQueue string, runTimeout time.Duration) *ContentScheduler {
	if runTimeout <= 0 {
		runTimeout = 24 * time.Hour
	}

	return &ContentScheduler{
		orchestrator: orchestrator,
		taskQueue:    taskQueue,
		runTimeout:   runTimeout,
	}
}

// WorkflowID returns the workflow id used for job
func WorkflowID(job content.Job) string {
	return fmt.Sprintf("resolve-content-%s", job.Key())
}

func (s *ContentScheduler) Schedule(ctx context.Context, job content.Job) error {
	w := workflows.NewWorker(nil, workflows.WorkerConfig{})

	opt := client.StartWorkflowOptions{
		ID:                       WorkflowID(job),
		TaskQueue:                s.taskQueue,
		WorkflowIDReusePolicy:    enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowIDConflictPolicy: enums.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
		WorkflowRunTimeout:       s.runTimeout,
	}

	_, err := s.orchestrator.ExecuteWorkflow(ctx, opt, w.ResolveContentWorkflow, job)
	if err != nil {
		var started *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &started) {
			logger.DebugCtx(ctx, "content workflow already ran", zap.String("workflowID", opt.ID))
			return nil
		}
		return fmt.Errorf("failed to start content workflow: %w", err)
	}

	logger.DebugCtx(ctx, "content workflow started", zap.String("workflowID", opt.ID))

	return nil
}
