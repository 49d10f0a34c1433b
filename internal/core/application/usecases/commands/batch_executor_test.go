package commands_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// generatingRun returns a run in GENERATING where every order holds one rate.
func generatingRun(t *testing.T, orders ...*order.Order) (*batch.Run, []*order.Order) {
	t.Helper()
	run, err := batch.NewBatchRun(testOrigin, orders)
	require.NoError(t, err)
	require.NoError(t, run.SelectAll())
	_, err = run.BeginQuoting()
	require.NoError(t, err)
	for _, o := range orders {
		r := newTestRate(t, "tok-"+o.Number(), "Servientrega", 10000, 0)
		q, qErr := shipment.NewSelectedQuote(shipment.QuoteRequest{}, []shipment.RateQuote{r}, r, "")
		require.NoError(t, qErr)
		require.NoError(t, run.RecordQuote(o.ID(), q))
	}
	require.NoError(t, run.FinishQuoting())
	items, _, err := run.BeginGeneration(services.NewCostAggregator(), kernel.MoneyFromFloat(1_000_000))
	require.NoError(t, err)
	return run, items
}

func tokenIs(token string) any {
	return mock.MatchedBy(func(req shipment.LabelRequest) bool { return req.RateToken == token })
}

// writeBackMocks expects one successful tracking number write-back per order.
func writeBackMocks(t *testing.T, orders ...*order.Order) (*MockUoWFactory, *MockOrderRepository) {
	t.Helper()
	repo := new(MockOrderRepository)
	factory := new(MockUoWFactory)
	for _, o := range orders {
		uow := new(MockUoW)
		uow.On("Begin", mock.Anything).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
		factory.On("Create").Return(uow).Once()

		stored, err := order.RestoreOrder(o.ID(), o.Number(), o.Customer(), o.Address(),
			o.DeclaredValue(), o.Dimensions(), "")
		require.NoError(t, err)
		repo.On("Get", mock.Anything, o.ID()).Return(stored, nil).Once()
	}
	return factory, repo
}

func TestBatchExecutor_Execute_IsolatesFailures(t *testing.T) {
	ctx := t.Context()
	a := newTestOrder(t, "A", "Cali", 1)
	c := newTestOrder(t, "C", "Medellín", 1)
	run, items := generatingRun(t, a, c)

	issuer := new(MockLabelIssuer)
	mock.InOrder(
		issuer.On("Issue", ctx, tokenIs("tok-A")).
			Return(shipment.Label{TrackingNumber: "SRV-001", LabelURL: "https://labels/SRV-001.pdf"}, nil).Once(),
		issuer.On("Issue", ctx, tokenIs("tok-C")).
			Return(shipment.Label{}, errors.New("direccion no valida")).Once(),
	)

	factory, repo := writeBackMocks(t, a)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.ID().IsEqual(a.ID()) && o.TrackingNumber() == "SRV-001"
	})).Return(nil).Once()

	publisher := new(MockPublisher)
	publisher.On("PublishLabelIssued", ctx, mock.MatchedBy(func(e shipment.LabelIssued) bool {
		return e.OrderNumber == "A" && e.TrackingNumber == "SRV-001" && e.Carrier == "Servientrega" &&
			e.RunID.IsEqual(run.ID()) && e.Cost == kernel.MoneyFromFloat(10000)
	})).Return(nil).Once()

	executor := commands.NewBatchExecutor(issuer, municipalities, factory, publisher, discardLogger)
	err := executor.Execute(ctx, run, items)

	require.NoError(t, err)
	rep := run.Report()
	assert.Equal(t, batch.Complete, rep.Phase)
	assert.Equal(t, 1, rep.Generated)
	assert.Equal(t, 1, rep.Failed)
	assert.Equal(t, []string{"Orden C: direccion no valida"}, rep.Errors)
	assert.Equal(t, len(items), rep.Generated+rep.Failed)
	assert.InDelta(t, 1.0, rep.GenerationProgress.Fraction(), 1e-9)

	issuer.AssertExpectations(t)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestBatchExecutor_Execute_BuildsLabelRequest(t *testing.T) {
	ctx := t.Context()
	o, err := order.NewOrder(kernel.NewUUID(), "900",
		order.Customer{Name: "", Phone: "", Email: ""},
		order.Address{Line: "Cl 5 # 4-10", City: "Pasto", Department: "Nariño"},
		kernel.MoneyFromFloat(40000), order.Dimensions{})
	require.NoError(t, err)
	run, items := generatingRun(t, o)

	issuer := new(MockLabelIssuer)
	issuer.On("Issue", ctx, shipment.LabelRequest{
		RateToken:   "tok-900",
		OrderNumber: "900",
		Origin:      testOrigin,
		Destination: shipment.Destination{
			Address:          "Cl 5 # 4-10",
			City:             "Pasto",
			Department:       "Nariño",
			MunicipalityCode: "52001000",
		},
		Recipient: shipment.Recipient{
			Name:  shipment.PlaceholderRecipientName,
			Phone: shipment.PlaceholderRecipientPhone,
			Email: shipment.PlaceholderRecipientEmail,
		},
		Package:       shipment.DefaultPackage(),
		DeclaredValue: kernel.MoneyFromFloat(40000),
	}).Return(shipment.Label{TrackingNumber: "T-1"}, nil).Once()

	factory, repo := writeBackMocks(t, o)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	executor := commands.NewBatchExecutor(issuer, municipalities, factory, nil, discardLogger)
	require.NoError(t, executor.Execute(ctx, run, items))

	issuer.AssertExpectations(t)
}

func TestBatchExecutor_Execute_WriteBackFailureIsNotAGenerationFailure(t *testing.T) {
	ctx := t.Context()
	a := newTestOrder(t, "A", "Cali", 1)
	run, items := generatingRun(t, a)

	issuer := new(MockLabelIssuer)
	issuer.On("Issue", ctx, mock.Anything).Return(shipment.Label{TrackingNumber: "SRV-9"}, nil).Once()

	factory, repo := writeBackMocks(t, a)
	repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	publisher := new(MockPublisher)
	publisher.On("PublishLabelIssued", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	executor := commands.NewBatchExecutor(issuer, municipalities, factory, publisher, discardLogger)
	require.NoError(t, executor.Execute(ctx, run, items))

	rep := run.Report()
	assert.Equal(t, 1, rep.Generated)
	assert.Equal(t, 0, rep.Failed)
	assert.Empty(t, rep.Errors)
	assert.Equal(t, "SRV-9", rep.Items[0].Label.TrackingNumber)
}

func TestBatchExecutor_Execute_StopsWhenCancelled(t *testing.T) {
	ctx := t.Context()
	a := newTestOrder(t, "A", "Cali", 1)
	b := newTestOrder(t, "B", "Cali", 1)
	run, items := generatingRun(t, a, b)

	issuer := new(MockLabelIssuer)
	issuer.On("Issue", ctx, tokenIs("tok-A")).
		Run(func(mock.Arguments) { run.Cancel() }).
		Return(shipment.Label{TrackingNumber: "SRV-001"}, nil).Once()

	factory, repo := writeBackMocks(t, a)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		return o.ID().IsEqual(a.ID()) && o.TrackingNumber() == "SRV-001"
	})).Return(nil).Once()

	publisher := new(MockPublisher)
	publisher.On("PublishLabelIssued", ctx, mock.MatchedBy(func(e shipment.LabelIssued) bool {
		return e.OrderID.IsEqual(a.ID()) && e.TrackingNumber == "SRV-001"
	})).Return(nil).Once()

	executor := commands.NewBatchExecutor(issuer, municipalities, factory, publisher, discardLogger)
	err := executor.Execute(ctx, run, items)

	require.ErrorIs(t, err, batch.ErrRunCancelled)
	issuer.AssertNumberOfCalls(t, "Issue", 1)
	assert.Equal(t, batch.Generating, run.Phase())

	factory.AssertExpectations(t)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
