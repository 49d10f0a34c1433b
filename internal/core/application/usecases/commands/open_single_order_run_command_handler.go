package commands

import (
	"context"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// OpenSingleOrderRunCommandHandler registers a run for one unshipped order.
type OpenSingleOrderRunCommandHandler struct {
	uowFactory OrderUoWFactory
	runs       ports.RunRepository
}

func NewOpenSingleOrderRunCommandHandler(
	uowFactory OrderUoWFactory,
	runs ports.RunRepository,
) OpenSingleOrderRunCommandHandler {
	return OpenSingleOrderRunCommandHandler{
		uowFactory: uowFactory,
		runs:       runs,
	}
}

// Handle returns the id of the new run. It fails with errs.ObjectNotFoundError for
// an unknown order and batch.ErrOrderAlreadyShipped for a shipped one.
func (h OpenSingleOrderRunCommandHandler) Handle(
	ctx context.Context,
	command OpenSingleOrderRunCommand,
) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	o, err := h.uowFactory.Create().OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}

	cod := shipment.NoCOD()
	if command.CashOnDelivery() {
		cod = shipment.CollectOnDelivery(o.DeclaredValue())
	}

	run, err := batch.NewSingleRun(command.OriginCode(), o, cod)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = h.runs.Add(ctx, run); err != nil {
		return kernel.UUID{}, err
	}

	return run.ID(), nil
}
