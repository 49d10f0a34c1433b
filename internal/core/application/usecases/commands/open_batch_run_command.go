package commands

import (
	"errors"

	"shipping/internal/pkg/guard"
)

var ErrOpenBatchRunCommandIsNotConstructed = errors.New(
	"OpenBatchRunCommand must be created via NewOpenBatchRunCommand constructor",
)

// OpenBatchRunCommand opens a batch run over every unshipped order.
//
// Example:
//
//	cmd := NewOpenBatchRunCommand()
//	runID, err := handler.Handle(ctx, cmd)
type OpenBatchRunCommand struct {
	guard guard.ConstructorGuard
}

// NewOpenBatchRunCommand creates a parameterless OpenBatchRunCommand.
func NewOpenBatchRunCommand() OpenBatchRunCommand {
	return OpenBatchRunCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c OpenBatchRunCommand) Validate() error {
	return c.guard.Validate(ErrOpenBatchRunCommandIsNotConstructed)
}
