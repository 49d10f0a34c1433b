package commands

import (
	"errors"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrSweepIdleRunsCommandIsNotConstructed = errors.New(
	"SweepIdleRunsCommand must be created via NewSweepIdleRunsCommand constructor",
)

// SweepIdleRunsCommand discards runs last touched before Cutoff.
type SweepIdleRunsCommand struct {
	cutoff time.Time
	guard  guard.ConstructorGuard
}

func NewSweepIdleRunsCommand(cutoff time.Time) (SweepIdleRunsCommand, error) {
	if cutoff.IsZero() {
		return SweepIdleRunsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}
	return SweepIdleRunsCommand{cutoff: cutoff, guard: guard.NewConstructorGuard()}, nil
}

func (c SweepIdleRunsCommand) Cutoff() time.Time {
	return c.cutoff
}

func (c SweepIdleRunsCommand) Validate() error {
	return c.guard.Validate(ErrSweepIdleRunsCommandIsNotConstructed)
}
