package jobs

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Task is a unit of background work. It must handle its own errors.
type Task func(ctx context.Context)

// Scheduler runs tasks after the caller has already received its result.
type Scheduler interface {
	Schedule(ctx context.Context, name string, task Task)
}

// GoScheduler runs every task on its own goroutine, detached from the caller's
// cancellation. A positive limit bounds the number of tasks running at once.
type GoScheduler struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
	log *zap.SugaredLogger
}

var _ Scheduler = (*GoScheduler)(nil)

func NewGoScheduler(limit int64) *GoScheduler {
	s := &GoScheduler{log: zap.S().Named("scheduler")}
	if limit > 0 {
		s.sem = semaphore.NewWeighted(limit)
	}
	return s
}

func (s *GoScheduler) Schedule(ctx context.Context, name string, task Task) {
	// keep request scoped values such as the request id but never the deadline
	taskCtx := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		if s.sem != nil {
			// Acquire only fails when the context is done, which taskCtx never is.
			if err := s.sem.Acquire(taskCtx, 1); err != nil {
				s.log.Errorw("failed to acquire task slot", "task", name, "error", err)
				return
			}
			defer s.sem.Release(1)
		}

		defer func() {
			if r := recover(); r != nil {
				s.log.Errorw("task panicked", "task", name, "panic", r)
			}
		}()

		s.log.Debugw("task started", "task", name)
		task(taskCtx)
		s.log.Debugw("task finished", "task", name)
	}()
}

// Wait blocks until every scheduled task has returned.
func (s *GoScheduler) Wait() {
	s.wg.Wait()
}

// SyncScheduler runs tasks inline. Schedule returns once the task is done.
type SyncScheduler struct{}

var _ Scheduler = SyncScheduler{}

func (SyncScheduler) Schedule(ctx context.Context, _ string, task Task) {
	task(ctx)
}
