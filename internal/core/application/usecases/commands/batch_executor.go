package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
)

// BatchExecutor issues the labels of a run, strictly one order after the other.
//
// For each order it consumes the selected rate token, calls the label issuer and
// records the outcome on the run. A failed call becomes a GenerationError in the
// run's error list and the loop moves on. There is no retry: a failed order keeps
// no tracking number and needs a new single-order run.
//
// After a label is recorded the tracking number is written back to the order
// store and a LabelIssued event is published. Both are best effort; their
// failures are logged and never counted as generation failures since the label
// already exists.
type BatchExecutor struct {
	issuer         ports.LabelIssuer
	municipalities ports.MunicipalityDirectory
	uowFactory     OrderUoWFactory
	publisher      ports.LabelEventPublisher
	logger         *slog.Logger
}

// NewBatchExecutor creates a BatchExecutor. publisher may be nil.
func NewBatchExecutor(
	issuer ports.LabelIssuer,
	municipalities ports.MunicipalityDirectory,
	uowFactory OrderUoWFactory,
	publisher ports.LabelEventPublisher,
	logger *slog.Logger,
) *BatchExecutor {
	return &BatchExecutor{
		issuer:         issuer,
		municipalities: municipalities,
		uowFactory:     uowFactory,
		publisher:      publisher,
		logger:         logger.With("component", "batch_executor"),
	}
}

// Execute runs the generation loop over items and finishes the run.
//
// It stops before the next item when the run is cancelled or ctx is done; a call
// already in flight is not interrupted and a label it issues is still written
// back and published. It returns batch.ErrRunCancelled or the
// context error in that case, nil otherwise.
func (e *BatchExecutor) Execute(ctx context.Context, run *batch.Run, items []*order.Order) error {
	logger := e.logger.With("run_id", run.ID().String())
	logger.InfoContext(ctx, "label generation started", "orders", len(items))

	for _, o := range items {
		if run.IsCancelled() {
			logger.InfoContext(ctx, "label generation stopped, run cancelled")
			return batch.ErrRunCancelled
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		e.generate(ctx, logger, run, o)
	}

	if err := run.Finish(); err != nil {
		return err
	}

	rep := run.Report()
	logger.InfoContext(ctx, "label generation finished",
		"generated", rep.Generated,
		"failed", rep.Failed,
	)
	return nil
}

func (e *BatchExecutor) generate(ctx context.Context, logger *slog.Logger, run *batch.Run, o *order.Order) {
	rate, err := run.ConsumeRate(o.ID())
	if err != nil {
		e.recordFailure(ctx, logger, run, o, err)
		return
	}

	label, err := e.issuer.Issue(ctx, e.labelRequest(run, o, rate))
	if err != nil {
		e.recordFailure(ctx, logger, run, o, err)
		return
	}

	// The label exists once Issue returns; a run cancelled meanwhile still
	// persists its tracking number.
	if err = run.RecordGenerated(o.ID(), label); err != nil {
		logger.WarnContext(ctx, "issued label not recorded on run",
			"order_number", o.Number(),
			"tracking_number", label.TrackingNumber,
			"error", err,
		)
	}

	e.writeBack(ctx, logger, o, label)
	e.publish(ctx, logger, run, o, rate, label)
}

func (e *BatchExecutor) recordFailure(
	ctx context.Context,
	logger *slog.Logger,
	run *batch.Run,
	o *order.Order,
	cause error,
) {
	failure := shipment.NewGenerationError(o.Number(), cause)
	logger.WarnContext(ctx, "label generation failed", "order_number", o.Number(), "error", cause)

	if err := run.RecordFailed(o.ID(), failure); err != nil {
		logger.ErrorContext(ctx, "generation failure not recorded", "order_number", o.Number(), "error", err)
	}
}

func (e *BatchExecutor) labelRequest(run *batch.Run, o *order.Order, rate shipment.RateQuote) shipment.LabelRequest {
	address := o.Address()
	return shipment.LabelRequest{
		RateToken:   rate.Token(),
		OrderNumber: o.Number(),
		Origin:      run.Origin(),
		Destination: shipment.Destination{
			Address:          address.Line,
			City:             address.City,
			Department:       address.Department,
			MunicipalityCode: e.municipalities.Resolve(address.City, address.Department),
		},
		Recipient:     o.Recipient(),
		Package:       o.Package(),
		DeclaredValue: o.DeclaredValue(),
		COD:           run.COD(),
	}
}

// writeBack stores the tracking number on a fresh copy of the order.
func (e *BatchExecutor) writeBack(ctx context.Context, logger *slog.Logger, o *order.Order, label shipment.Label) {
	if err := e.ship(ctx, o, label); err != nil {
		logger.ErrorContext(ctx, "tracking number not saved",
			"order_number", o.Number(),
			"tracking_number", label.TrackingNumber,
			"error", err,
		)
	}
}

func (e *BatchExecutor) ship(ctx context.Context, o *order.Order, label shipment.Label) error {
	uow := e.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	stored, err := repo.Get(ctx, o.ID())
	if err != nil {
		return err
	}

	if err = stored.Ship(label.TrackingNumber); err != nil {
		return err
	}

	if err = repo.Update(ctx, stored); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (e *BatchExecutor) publish(
	ctx context.Context,
	logger *slog.Logger,
	run *batch.Run,
	o *order.Order,
	rate shipment.RateQuote,
	label shipment.Label,
) {
	if e.publisher == nil {
		return
	}

	event := shipment.LabelIssued{
		RunID:          run.ID(),
		OrderID:        o.ID(),
		OrderNumber:    o.Number(),
		TrackingNumber: label.TrackingNumber,
		LabelURL:       label.LabelURL,
		Carrier:        rate.Carrier(),
		Service:        rate.Service(),
		Cost:           rate.Cost(),
		IssuedAt:       time.Now().UTC(),
	}
	if err := e.publisher.PublishLabelIssued(ctx, event); err != nil {
		logger.WarnContext(ctx, "label issued event not published", "order_number", o.Number(), "error", err)
	}
}
