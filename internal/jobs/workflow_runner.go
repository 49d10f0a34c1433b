package jobs

import (
	"context"
	"log/slog"
	"sync"
)

// WorkflowRunner runs the quoting and generation loops of workflow runs on
// goroutines it tracks, so shutdown can wait for them. It implements
// commands.Runner.
type WorkflowRunner struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewWorkflowRunner creates a runner whose loops receive a context derived from parent.
func NewWorkflowRunner(parent context.Context, logger *slog.Logger) *WorkflowRunner {
	ctx, cancel := context.WithCancel(parent)
	return &WorkflowRunner{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With("component", "workflow_runner"),
	}
}

// Go starts fn on a new goroutine. A panic in fn is logged and does not take the
// process down.
func (r *WorkflowRunner) Go(name string, fn func(ctx context.Context)) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.logger.ErrorContext(r.ctx, "Workflow loop panicked", "name", name, "panic", p)
			}
		}()

		r.logger.DebugContext(r.ctx, "Workflow loop started", "name", name)
		fn(r.ctx)
		r.logger.DebugContext(r.ctx, "Workflow loop finished", "name", name)
	}()
}

// Shutdown cancels the loops' context and waits for them until ctx is done.
func (r *WorkflowRunner) Shutdown(ctx context.Context) error {
	r.cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
