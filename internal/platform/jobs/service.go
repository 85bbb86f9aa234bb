package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const JobTaskEmail = "task_email"

// Service runs best-effort background work on a single worker. Jobs that do
// not fit in the queue are dropped.
type Service struct {
	queue chan job
	wg    sync.WaitGroup
}

type job struct {
	Type string
	Key  string
	Run  func(context.Context) error
}

func New(size int) *Service {
	if size <= 0 {
		size = 128
	}
	return &Service{queue: make(chan job, size)}
}

func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.worker(ctx)
}

// Wait blocks until the worker exits after its context is cancelled.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) Enqueue(jobType, key string, run func(context.Context) error) bool {
	select {
	case s.queue <- job{Type: jobType, Key: key, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType, "key", key)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType, key string, run func(context.Context) error) error {
	return s.runJob(ctx, job{Type: jobType, Key: key, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "key", j.Key, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	err := j.Run(ctx)
	slog.Debug("job finished", "jobType", j.Type, "key", j.Key, "durationMs", time.Since(start).Milliseconds(), "ok", err == nil)
	return err
}
