package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ionic-indexer/internal/content"
)

// Worker defines the workflows of the content worker
type Worker interface {
	// ResolveContentWorkflow resolves one content document with retries
	ResolveContentWorkflow(ctx workflow.Context, job content.Job) error
}

type WorkerConfig struct {
	// ActivityTimeout bounds a single fetch and store attempt
	ActivityTimeout time.Duration
	// MaximumAttempts bounds retries of a content job, 0 means unlimited
	MaximumAttempts int32
	// MaximumInterval caps the backoff between attempts
	MaximumInterval time.Duration
}

type worker struct {
	executor Executor
	config   WorkerConfig
}

// NewWorker creates a new content worker. A nil executor is valid when the
// worker is only used to reference workflow functions.
func NewWorker(executor Executor, config WorkerConfig) Worker {
	if config.ActivityTimeout <= 0 {
		config.ActivityTimeout = 5 * time.Minute
	}
	if config.MaximumInterval <= 0 {
		config.MaximumInterval = 10 * time.Minute
	}

	return &worker{
		executor: executor,
		config:   config,
	}
}
