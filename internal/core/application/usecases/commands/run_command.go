package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrStartQuotingCommandIsNotConstructed = errors.New(
		"StartQuotingCommand must be created via NewStartQuotingCommand constructor",
	)
	ErrConfirmGenerationCommandIsNotConstructed = errors.New(
		"ConfirmGenerationCommand must be created via NewConfirmGenerationCommand constructor",
	)
	ErrCancelRunCommandIsNotConstructed = errors.New(
		"CancelRunCommand must be created via NewCancelRunCommand constructor",
	)
)

// runCommand carries the id of the run a phase command applies to.
type runCommand struct {
	runID kernel.UUID
	guard guard.ConstructorGuard
}

func newRunCommand(runID kernel.UUID) (runCommand, error) {
	if err := runID.Validate(); err != nil {
		return runCommand{}, err
	}
	return runCommand{runID: runID, guard: guard.NewConstructorGuard()}, nil
}

// RunID returns the id of the target run.
func (c runCommand) RunID() kernel.UUID {
	return c.runID
}

// StartQuotingCommand moves a run from SELECT to QUOTING.
type StartQuotingCommand struct {
	runCommand
}

func NewStartQuotingCommand(runID kernel.UUID) (StartQuotingCommand, error) {
	c, err := newRunCommand(runID)
	return StartQuotingCommand{c}, err
}

func (c StartQuotingCommand) Validate() error {
	return c.guard.Validate(ErrStartQuotingCommandIsNotConstructed)
}

// ConfirmGenerationCommand is the explicit user confirmation moving REVIEW to GENERATING.
type ConfirmGenerationCommand struct {
	runCommand
}

func NewConfirmGenerationCommand(runID kernel.UUID) (ConfirmGenerationCommand, error) {
	c, err := newRunCommand(runID)
	return ConfirmGenerationCommand{c}, err
}

func (c ConfirmGenerationCommand) Validate() error {
	return c.guard.Validate(ErrConfirmGenerationCommandIsNotConstructed)
}

// CancelRunCommand discards a run from any phase.
type CancelRunCommand struct {
	runCommand
}

func NewCancelRunCommand(runID kernel.UUID) (CancelRunCommand, error) {
	c, err := newRunCommand(runID)
	return CancelRunCommand{c}, err
}

func (c CancelRunCommand) Validate() error {
	return c.guard.Validate(ErrCancelRunCommandIsNotConstructed)
}
