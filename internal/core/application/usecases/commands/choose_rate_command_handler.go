package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// ChooseRateCommandHandler applies the pick and refreshes the review cost, which
// for a single-order run is the cost of the chosen rate.
type ChooseRateCommandHandler struct {
	runs         ports.RunRepository
	orchestrator *WorkflowOrchestrator
}

func NewChooseRateCommandHandler(runs ports.RunRepository, orchestrator *WorkflowOrchestrator) ChooseRateCommandHandler {
	return ChooseRateCommandHandler{runs: runs, orchestrator: orchestrator}
}

func (h ChooseRateCommandHandler) Handle(ctx context.Context, command ChooseRateCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	run, err := h.runs.Get(ctx, command.RunID())
	if err != nil {
		return err
	}

	return h.orchestrator.ChooseRate(ctx, run, command.OrderID(), command.RateToken())
}
