package commands

import (
	"context"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/ports"
)

// OpenBatchRunCommandHandler loads the unshipped orders and registers a new run
// in SELECT. Every batch run ships from the same configured origin.
type OpenBatchRunCommandHandler struct {
	uowFactory OrderUoWFactory
	runs       ports.RunRepository
	origin     string
}

// NewOpenBatchRunCommandHandler creates the handler. origin is the municipality
// code of the merchant's dispatch point.
func NewOpenBatchRunCommandHandler(
	uowFactory OrderUoWFactory,
	runs ports.RunRepository,
	origin string,
) OpenBatchRunCommandHandler {
	return OpenBatchRunCommandHandler{
		uowFactory: uowFactory,
		runs:       runs,
		origin:     origin,
	}
}

// Handle returns the id of the new run.
func (h OpenBatchRunCommandHandler) Handle(ctx context.Context, command OpenBatchRunCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	orders, err := h.uowFactory.Create().OrderRepository().GetAllUnshipped(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	run, err := batch.NewBatchRun(h.origin, orders)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.runs.Add(ctx, run); err != nil {
		return kernel.UUID{}, err
	}

	return run.ID(), nil
}
