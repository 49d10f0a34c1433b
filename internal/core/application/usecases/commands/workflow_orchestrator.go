package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// WorkflowOrchestrator glues the quote selector, the cost aggregator and the
// batch executor into the SELECT → QUOTING → REVIEW → GENERATING → COMPLETE flow.
//
// Transitions that can be refused (empty selection, insufficient balance, wrong
// phase) are checked synchronously and returned to the caller. The loops over
// orders then run through the Runner so the caller can poll progress.
type WorkflowOrchestrator struct {
	selector *QuoteSelector
	executor *BatchExecutor
	ledger   ports.BalanceLedger
	costs    services.CostAggregator
	runner   Runner
	logger   *slog.Logger
}

// NewWorkflowOrchestrator creates a WorkflowOrchestrator.
func NewWorkflowOrchestrator(
	selector *QuoteSelector,
	executor *BatchExecutor,
	ledger ports.BalanceLedger,
	runner Runner,
	logger *slog.Logger,
) *WorkflowOrchestrator {
	return &WorkflowOrchestrator{
		selector: selector,
		executor: executor,
		ledger:   ledger,
		costs:    services.NewCostAggregator(),
		runner:   runner,
		logger:   logger.With("component", "workflow_orchestrator"),
	}
}

// StartQuoting moves the run to QUOTING and schedules the quoting loop.
// It returns batch.ErrNothingSelected when the selection is empty.
func (w *WorkflowOrchestrator) StartQuoting(ctx context.Context, run *batch.Run) error {
	orders, err := run.BeginQuoting()
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "quoting started", "run_id", run.ID().String(), "orders", len(orders))
	w.runner.Go("quote:"+run.ID().String(), func(ctx context.Context) {
		w.quoteAll(ctx, run, orders)
	})
	return nil
}

func (w *WorkflowOrchestrator) quoteAll(ctx context.Context, run *batch.Run, orders []*order.Order) {
	logger := w.logger.With("run_id", run.ID().String())

	for _, o := range orders {
		if run.IsCancelled() || ctx.Err() != nil {
			logger.InfoContext(ctx, "quoting stopped")
			return
		}

		quote := w.selector.Quote(ctx, o, run.Origin(), run.Mode(), run.COD())
		if err := run.RecordQuote(o.ID(), quote); err != nil {
			logger.ErrorContext(ctx, "quote not recorded", "order_number", o.Number(), "error", err)
			return
		}
	}

	if err := run.FinishQuoting(); err != nil {
		logger.ErrorContext(ctx, "quoting not finished", "error", err)
		return
	}

	if err := w.RefreshCost(ctx, run); err != nil {
		logger.WarnContext(ctx, "balance unavailable for review", "error", err)
	}
	logger.InfoContext(ctx, "quoting finished")
}

// RefreshCost recomputes the projected cost against the current balance and
// stores it on the run for the review screen.
func (w *WorkflowOrchestrator) RefreshCost(ctx context.Context, run *batch.Run) error {
	balance, err := w.ledger.Balance(ctx)
	if err != nil {
		return err
	}

	_, err = run.ApplyCost(w.costs, balance)
	return err
}

// ConfirmGeneration re-reads the balance, applies the hard block and schedules the
// generation loop. The run prices its rates and changes phase in one step, so a
// rate picked concurrently is either checked here or refused. A short balance
// returns *batch.InsufficientBalanceError and leaves the run in REVIEW.
func (w *WorkflowOrchestrator) ConfirmGeneration(ctx context.Context, run *batch.Run) error {
	balance, err := w.ledger.Balance(ctx)
	if err != nil {
		return err
	}

	items, summary, err := run.BeginGeneration(w.costs, balance)
	if err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "generation confirmed",
		"run_id", run.ID().String(),
		"orders", len(items),
		"total", summary.Total.String(),
		"balance", summary.Balance.String(),
	)
	w.runner.Go("generate:"+run.ID().String(), func(ctx context.Context) {
		if err := w.executor.Execute(ctx, run, items); err != nil {
			w.logger.WarnContext(ctx, "generation interrupted", "run_id", run.ID().String(), "error", err)
		}
	})
	return nil
}

// ChooseRate records a manual pick. A balance lookup failure only leaves the
// review cost stale; the balance is read again at confirmation.
func (w *WorkflowOrchestrator) ChooseRate(ctx context.Context, run *batch.Run, orderID kernel.UUID, token string) error {
	if err := run.ChooseRate(orderID, token); err != nil {
		return err
	}

	if err := w.RefreshCost(ctx, run); err != nil {
		w.logger.WarnContext(ctx, "balance unavailable for review", "run_id", run.ID().String(), "error", err)
	}
	return nil
}
