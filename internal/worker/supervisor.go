// Package worker provides the background task supervisor that detaches
// long-running ingestion work from the webhook request path.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrShutdownTimeout is returned when in-flight tasks don't finish
// within the shutdown timeout.
var ErrShutdownTimeout = errors.New("supervisor shutdown timed out")

// Supervisor runs fire-and-forget background tasks. Submission is
// unbounded: no queue, no concurrency limit, no deduplication. The
// supervisor owns logging of task-level failures; callers never wait
// for completion.
type Supervisor struct {
	logger *slog.Logger

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSupervisor creates a supervisor whose tasks run until they finish
// or the supervisor's context is cancelled via Wait.
func NewSupervisor(logger *slog.Logger) *Supervisor {
	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit starts a task in its own goroutine and returns immediately.
// Errors and panics are logged here, never propagated to the caller.
func (s *Supervisor) Submit(name string, task func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("background task panicked", "task", name, "panic", r)
			}
		}()

		start := time.Now()
		if err := task(s.ctx); err != nil {
			s.logger.Error("background task failed",
				"task", name,
				"duration", time.Since(start),
				"error", err,
			)
			return
		}

		s.logger.Info("background task finished",
			"task", name,
			"duration", time.Since(start),
		)
	}()
}

// Wait cancels the task context and blocks until all in-flight tasks
// return, or the timeout elapses.
func (s *Supervisor) Wait(timeout time.Duration) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}
