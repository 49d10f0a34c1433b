package commands_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func readOnlyUoW(repo *MockOrderRepository) *MockUoWFactory {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory
}

func TestOpenBatchRunCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	a := newTestOrder(t, "A", "Cali", 1)
	b := newTestOrder(t, "B", "Pasto", 1)

	repo := new(MockOrderRepository)
	repo.On("GetAllUnshipped", ctx).Return([]*order.Order{a, b}, nil).Once()
	runs := newMemoryRuns()

	h := commands.NewOpenBatchRunCommandHandler(readOnlyUoW(repo), runs, testOrigin)
	runID, err := h.Handle(ctx, commands.NewOpenBatchRunCommand())

	require.NoError(t, err)
	run, err := runs.Get(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, batch.Select, run.Phase())
	assert.Equal(t, batch.Batch, run.Mode())
	assert.Equal(t, testOrigin, run.Origin())
	assert.Len(t, run.Candidates(), 2)
	assert.Empty(t, run.Selected())
	repo.AssertExpectations(t)
}

func TestOpenBatchRunCommandHandler_Handle_Errors(t *testing.T) {
	ctx := t.Context()

	t.Run("zero command", func(t *testing.T) {
		h := commands.NewOpenBatchRunCommandHandler(new(MockUoWFactory), newMemoryRuns(), testOrigin)
		_, err := h.Handle(ctx, commands.OpenBatchRunCommand{})
		require.ErrorIs(t, err, commands.ErrOpenBatchRunCommandIsNotConstructed)
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(MockOrderRepository)
		repo.On("GetAllUnshipped", ctx).Return(nil, errors.New("db down")).Once()
		runs := newMemoryRuns()

		h := commands.NewOpenBatchRunCommandHandler(readOnlyUoW(repo), runs, testOrigin)
		_, err := h.Handle(ctx, commands.NewOpenBatchRunCommand())

		require.EqualError(t, err, "db down")
		list, _ := runs.List(ctx)
		assert.Empty(t, list)
	})
}

func TestOpenSingleOrderRunCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("collects the declared value", func(t *testing.T) {
		o := newTestOrder(t, "S1", "Cali", 1)
		repo := new(MockOrderRepository)
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		runs := newMemoryRuns()

		cmd, err := commands.NewOpenSingleOrderRunCommand(o.ID(), "05001000", true)
		require.NoError(t, err)
		runID, err := commands.NewOpenSingleOrderRunCommandHandler(readOnlyUoW(repo), runs).Handle(ctx, cmd)
		require.NoError(t, err)

		run, err := runs.Get(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, batch.Single, run.Mode())
		assert.Equal(t, "05001000", run.Origin())
		assert.Equal(t, shipment.CollectOnDelivery(kernel.MoneyFromFloat(60000)), run.COD())
		require.Len(t, run.Selected(), 1)
	})

	t.Run("unknown order", func(t *testing.T) {
		id := kernel.NewUUID()
		repo := new(MockOrderRepository)
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("orderId", id.String())).Once()

		cmd, _ := commands.NewOpenSingleOrderRunCommand(id, "05001000", false)
		_, err := commands.NewOpenSingleOrderRunCommandHandler(readOnlyUoW(repo), newMemoryRuns()).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("shipped order", func(t *testing.T) {
		o := newTestOrder(t, "S2", "Cali", 1)
		require.NoError(t, o.Ship("SRV-1"))
		repo := new(MockOrderRepository)
		repo.On("Get", ctx, o.ID()).Return(o, nil).Once()

		cmd, _ := commands.NewOpenSingleOrderRunCommand(o.ID(), "05001000", false)
		_, err := commands.NewOpenSingleOrderRunCommandHandler(readOnlyUoW(repo), newMemoryRuns()).Handle(ctx, cmd)

		require.ErrorIs(t, err, batch.ErrOrderAlreadyShipped)
	})
}

func TestChangeSelectionCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	a := newTestOrder(t, "A", "Cali", 1)
	b := newTestOrder(t, "B", "Cali", 1)
	run, err := batch.NewBatchRun(testOrigin, []*order.Order{a, b})
	require.NoError(t, err)
	runs := newMemoryRuns()
	require.NoError(t, runs.Add(ctx, run))
	h := commands.NewChangeSelectionCommandHandler(runs)

	all, _ := commands.NewChangeSelectionCommand(run.ID(), commands.SelectAll, kernel.UUID{})
	require.NoError(t, h.Handle(ctx, all))
	assert.Len(t, run.Selected(), 2)

	toggle, _ := commands.NewChangeSelectionCommand(run.ID(), commands.ToggleOrder, a.ID())
	require.NoError(t, h.Handle(ctx, toggle))
	assert.Equal(t, []*order.Order{b}, run.Selected())

	none, _ := commands.NewChangeSelectionCommand(run.ID(), commands.DeselectAll, kernel.UUID{})
	require.NoError(t, h.Handle(ctx, none))
	assert.Empty(t, run.Selected())

	missing, _ := commands.NewChangeSelectionCommand(kernel.NewUUID(), commands.SelectAll, kernel.UUID{})
	require.ErrorIs(t, h.Handle(ctx, missing), errs.ErrObjectNotFound)
}

func TestStartQuotingCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	f := newOrchestratorFixture()
	o := newTestOrder(t, "A", "Cali", 1)
	run, err := batch.NewBatchRun(testOrigin, []*order.Order{o})
	require.NoError(t, err)
	runs := newMemoryRuns()
	require.NoError(t, runs.Add(ctx, run))
	h := commands.NewStartQuotingCommandHandler(runs, f.subject)

	cmd, _ := commands.NewStartQuotingCommand(run.ID())
	require.ErrorIs(t, h.Handle(ctx, cmd), batch.ErrNothingSelected)

	require.NoError(t, run.Toggle(o.ID()))
	f.aggregator.On("Quote", mock.Anything, requestFor("76001000")).
		Return([]shipment.RateQuote{newTestRate(t, "t", "Servientrega", 9000, 0)}, nil).Once()
	f.advisor.On("Recommend", mock.Anything, "Cali", "Dept").Return(shipment.Recommendation{}, nil).Once()
	f.ledger.On("Balance", mock.Anything).Return(kernel.MoneyFromFloat(100000), nil).Once()

	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, batch.Review, run.Phase())

	require.ErrorIs(t, h.Handle(ctx, cmd), batch.ErrInvalidPhase)
}

func TestConfirmGenerationCommandHandler_Handle_UnknownRun(t *testing.T) {
	f := newOrchestratorFixture()
	cmd, _ := commands.NewConfirmGenerationCommand(kernel.NewUUID())

	err := commands.NewConfirmGenerationCommandHandler(newMemoryRuns(), f.subject).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	f.ledger.AssertNotCalled(t, "Balance", mock.Anything)
}

func TestCancelRunCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	run, err := batch.NewBatchRun(testOrigin, []*order.Order{newTestOrder(t, "A", "Cali", 1)})
	require.NoError(t, err)
	runs := newMemoryRuns()
	require.NoError(t, runs.Add(ctx, run))

	cmd, _ := commands.NewCancelRunCommand(run.ID())
	require.NoError(t, commands.NewCancelRunCommandHandler(runs).Handle(ctx, cmd))

	assert.True(t, run.IsCancelled())
	_, err = runs.Get(ctx, run.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.ErrorIs(t, run.SelectAll(), batch.ErrRunCancelled)
}

func TestChooseRateCommandHandler_Handle_BatchRunRefused(t *testing.T) {
	ctx := t.Context()
	f := newOrchestratorFixture()
	o := newTestOrder(t, "A", "Cali", 1)
	run, err := batch.NewBatchRun(testOrigin, []*order.Order{o})
	require.NoError(t, err)
	runs := newMemoryRuns()
	require.NoError(t, runs.Add(ctx, run))

	cmd, _ := commands.NewChooseRateCommand(run.ID(), o.ID(), "tok")
	err = commands.NewChooseRateCommandHandler(runs, f.subject).Handle(ctx, cmd)

	require.ErrorIs(t, err, batch.ErrManualPickNotAllowed)
}
