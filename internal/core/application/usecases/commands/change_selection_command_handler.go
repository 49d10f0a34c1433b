package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// ChangeSelectionCommandHandler applies a selection edit to a run.
type ChangeSelectionCommandHandler struct {
	runs ports.RunRepository
}

func NewChangeSelectionCommandHandler(runs ports.RunRepository) ChangeSelectionCommandHandler {
	return ChangeSelectionCommandHandler{runs: runs}
}

func (h ChangeSelectionCommandHandler) Handle(ctx context.Context, command ChangeSelectionCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	run, err := h.runs.Get(ctx, command.RunID())
	if err != nil {
		return err
	}

	switch command.Action() {
	case ToggleOrder:
		return run.Toggle(command.OrderID())
	case SelectAll:
		return run.SelectAll()
	default:
		return run.DeselectAll()
	}
}
