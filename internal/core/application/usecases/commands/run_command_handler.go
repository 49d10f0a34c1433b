package commands

import (
	"context"

	"shipping/internal/core/ports"
)

// StartQuotingCommandHandler starts the quoting loop of a run.
//
// Example:
//
//	cmd, _ := NewStartQuotingCommand(runID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, batch.ErrNothingSelected) {
//	    // quoting stays disabled
//	}
type StartQuotingCommandHandler struct {
	runs         ports.RunRepository
	orchestrator *WorkflowOrchestrator
}

func NewStartQuotingCommandHandler(runs ports.RunRepository, orchestrator *WorkflowOrchestrator) StartQuotingCommandHandler {
	return StartQuotingCommandHandler{runs: runs, orchestrator: orchestrator}
}

func (h StartQuotingCommandHandler) Handle(ctx context.Context, command StartQuotingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	run, err := h.runs.Get(ctx, command.RunID())
	if err != nil {
		return err
	}

	return h.orchestrator.StartQuoting(ctx, run)
}

// ConfirmGenerationCommandHandler starts label generation after the balance check.
// A short balance surfaces as *batch.InsufficientBalanceError.
type ConfirmGenerationCommandHandler struct {
	runs         ports.RunRepository
	orchestrator *WorkflowOrchestrator
}

func NewConfirmGenerationCommandHandler(
	runs ports.RunRepository,
	orchestrator *WorkflowOrchestrator,
) ConfirmGenerationCommandHandler {
	return ConfirmGenerationCommandHandler{runs: runs, orchestrator: orchestrator}
}

func (h ConfirmGenerationCommandHandler) Handle(ctx context.Context, command ConfirmGenerationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	run, err := h.runs.Get(ctx, command.RunID())
	if err != nil {
		return err
	}

	return h.orchestrator.ConfirmGeneration(ctx, run)
}

// CancelRunCommandHandler cancels a run and drops it from the registry. Loops in
// flight stop before their next order; issued labels stay issued.
type CancelRunCommandHandler struct {
	runs ports.RunRepository
}

func NewCancelRunCommandHandler(runs ports.RunRepository) CancelRunCommandHandler {
	return CancelRunCommandHandler{runs: runs}
}

func (h CancelRunCommandHandler) Handle(ctx context.Context, command CancelRunCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	run, err := h.runs.Get(ctx, command.RunID())
	if err != nil {
		return err
	}

	run.Cancel()
	return h.runs.Remove(ctx, run.ID())
}
