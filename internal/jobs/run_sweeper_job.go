package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RunSweeperJob evicts workflow runs nobody touched for the idle TTL.
// Runs every minute.
type RunSweeperJob struct {
	handler commands.SweepIdleRunsCommandHandler
	idleTTL time.Duration
	now     func() time.Time
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRunSweeperJob creates the sweeper. now is the clock; nil means time.Now.
func NewRunSweeperJob(
	handler commands.SweepIdleRunsCommandHandler,
	idleTTL time.Duration,
	now func() time.Time,
	logger *slog.Logger,
) *RunSweeperJob {
	if now == nil {
		now = time.Now
	}
	return &RunSweeperJob{
		handler: handler,
		idleTTL: idleTTL,
		now:     now,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "run_sweeper_job"),
	}
}

// Start schedules the sweep at second zero of every minute.
func (j *RunSweeperJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		j.Sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Run sweeper job started (running every minute)", "idle_ttl", j.idleTTL)
	return nil
}

// Sweep runs one eviction pass and returns the number of evicted runs.
func (j *RunSweeperJob) Sweep(ctx context.Context) int {
	cmd, err := commands.NewSweepIdleRunsCommand(j.now().Add(-j.idleTTL))
	if err != nil {
		j.logger.ErrorContext(ctx, "Run sweeper job failed", "error", err)
		return 0
	}

	evicted, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Run sweeper job failed", "error", err)
	}
	if evicted > 0 {
		j.logger.InfoContext(ctx, "Idle runs evicted", "count", evicted)
	}
	return evicted
}

// Stop stops the schedule. A sweep in progress finishes.
func (j *RunSweeperJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Run sweeper job stopped")
}
