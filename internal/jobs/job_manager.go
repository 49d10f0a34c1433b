package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"
)

// JobManager coordinates the background work of the service: the scheduled run
// sweeper and the workflow loops.
type JobManager struct {
	runSweeperJob *RunSweeperJob
	runner        *WorkflowRunner
}

// NewJobManager creates a job manager. The runner is shared with the workflow
// orchestrator, which schedules loops on it.
func NewJobManager(
	sweepHandler commands.SweepIdleRunsCommandHandler,
	idleTTL time.Duration,
	runner *WorkflowRunner,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		runSweeperJob: NewRunSweeperJob(sweepHandler, idleTTL, nil, logger),
		runner:        runner,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.runSweeperJob.Start(); err != nil {
		return fmt.Errorf("failed to start run sweeper job: %w", err)
	}
	return nil
}

// StopAll stops the scheduled jobs, then cancels the workflow loops and waits for
// them until ctx is done.
func (jm *JobManager) StopAll(ctx context.Context) error {
	jm.runSweeperJob.Stop()
	return jm.runner.Shutdown(ctx)
}
