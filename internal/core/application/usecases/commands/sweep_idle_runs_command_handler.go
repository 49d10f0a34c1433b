package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// SweepIdleRunsCommandHandler evicts abandoned runs. Runs in QUOTING or GENERATING
// are never evicted, however old, since a loop is still writing to them.
type SweepIdleRunsCommandHandler struct {
	runs ports.RunRepository
}

func NewSweepIdleRunsCommandHandler(runs ports.RunRepository) SweepIdleRunsCommandHandler {
	return SweepIdleRunsCommandHandler{runs: runs}
}

// Handle returns how many runs were evicted.
func (h SweepIdleRunsCommandHandler) Handle(ctx context.Context, command SweepIdleRunsCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	runs, err := h.runs.List(ctx)
	if err != nil {
		return 0, err
	}

	evicted := 0
	for _, run := range runs {
		if run.Phase().IsBusy() || !run.UpdatedAt().Before(command.Cutoff()) {
			continue
		}
		run.Cancel()
		if err = h.runs.Remove(ctx, run.ID()); err != nil {
			return evicted, err
		}
		evicted++
	}

	return evicted, nil
}
