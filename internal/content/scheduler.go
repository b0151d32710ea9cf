package content

import (
	"context"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ionic-indexer/internal/logger"
)

// Scheduler hands content jobs to an executor without waiting for them
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/content_scheduler.go -package=mocks -mock_names=Scheduler=MockContentScheduler
type Scheduler interface {
	Schedule(ctx context.Context, job Job) error
}

// PoolScheduler runs jobs on a bounded in-process worker pool.
// A job whose key is already queued or running is dropped.
type PoolScheduler struct {
	resolver Resolver
	pool     pond.Pool

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewPoolScheduler creates a pool scheduler with the given concurrency.
// Jobs run with ctx, cancelling it stops outstanding fetches.
func NewPoolScheduler(ctx context.Context, resolver Resolver, concurrency int) *PoolScheduler {
	if concurrency <= 0 {
		concurrency = 1
	}

	return &PoolScheduler{
		resolver: resolver,
		pool:     pond.NewPool(concurrency, pond.WithContext(ctx)),
		inflight: make(map[string]struct{}),
	}
}

func (s *PoolScheduler) Schedule(ctx context.Context, job Job) error {
	key := job.Key()

	s.mu.Lock()
	if _, ok := s.inflight[key]; ok {
		s.mu.Unlock()
		return nil
	}
	s.inflight[key] = struct{}{}
	s.mu.Unlock()

	// The job outlives the event that scheduled it
	jobCtx := context.WithoutCancel(ctx)

	s.pool.Submit(func() {
		defer s.release(key)

		if err := s.resolver.Resolve(jobCtx, job); err != nil {
			logger.ErrorCtx(jobCtx, err, zap.String("job", key))
		}
	})

	return nil
}

func (s *PoolScheduler) release(key string) {
	s.mu.Lock()
	delete(s.inflight, key)
	s.mu.Unlock()
}

// StopAndWait waits for queued jobs and stops the pool
func (s *PoolScheduler) StopAndWait() {
	logger.Info("Stopping content pool",
		zap.Uint64("submitted", s.pool.SubmittedTasks()),
		zap.Uint64("waiting", s.pool.WaitingTasks()),
		zap.Uint64("failed", s.pool.FailedTasks()))
	s.pool.StopAndWait()
}
