package commands_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testOrigin   = "11001000"
	fallbackCode = "11001000"
)

var discardLogger = slog.New(slog.DiscardHandler)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUnshipped(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockRateAggregator struct{ mock.Mock }

func (m *MockRateAggregator) Quote(ctx context.Context, req shipment.QuoteRequest) ([]shipment.RateQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shipment.RateQuote), args.Error(1)
}

type MockLabelIssuer struct{ mock.Mock }

func (m *MockLabelIssuer) Issue(ctx context.Context, req shipment.LabelRequest) (shipment.Label, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(shipment.Label), args.Error(1)
}

type MockAdvisor struct{ mock.Mock }

func (m *MockAdvisor) Recommend(ctx context.Context, city, department string) (shipment.Recommendation, error) {
	args := m.Called(ctx, city, department)
	return args.Get(0).(shipment.Recommendation), args.Error(1)
}

type MockLedger struct{ mock.Mock }

func (m *MockLedger) Balance(ctx context.Context) (kernel.Money, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) PublishLabelIssued(ctx context.Context, event shipment.LabelIssued) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// staticMunicipalities resolves a fixed set of cities and falls back otherwise.
type staticMunicipalities map[string]string

func (s staticMunicipalities) Resolve(city, _ string) string {
	if code, ok := s[city]; ok {
		return code
	}
	return fallbackCode
}

var municipalities = staticMunicipalities{
	"Medellín": "05001000",
	"Cali":     "76001000",
	"Pasto":    "52001000",
}

// syncRunner runs the scheduled loop before Go returns.
type syncRunner struct {
	names []string
}

func (r *syncRunner) Go(name string, fn func(ctx context.Context)) {
	r.names = append(r.names, name)
	fn(context.Background())
}

// memoryRuns is a minimal RunRepository for handler tests.
type memoryRuns struct {
	mu   sync.Mutex
	runs map[kernel.UUID]*batch.Run
}

func newMemoryRuns() *memoryRuns {
	return &memoryRuns{runs: make(map[kernel.UUID]*batch.Run)}
}

func (m *memoryRuns) Add(_ context.Context, run *batch.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID()] = run
	return nil
}

func (m *memoryRuns) Get(_ context.Context, id kernel.UUID) (*batch.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("runId", id.String())
	}
	return run, nil
}

func (m *memoryRuns) Remove(_ context.Context, id kernel.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runs, id)
	return nil
}

func (m *memoryRuns) List(_ context.Context) ([]*batch.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := make([]*batch.Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	return runs, nil
}

func newTestOrder(t *testing.T, number, city string, weight float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), number,
		order.Customer{Name: "Cliente " + number, Phone: "3001112233"},
		order.Address{Line: "Calle " + number, City: city, Department: "Dept"},
		kernel.MoneyFromFloat(60000), order.Dimensions{Weight: weight})
	require.NoError(t, err)
	return o
}

func newTestRate(t *testing.T, token, carrier string, freight, insurance float64) shipment.RateQuote {
	t.Helper()
	r, err := shipment.NewRateQuote(token, carrier, "Estandar",
		kernel.MoneyFromFloat(freight), kernel.MoneyFromFloat(insurance), 2)
	require.NoError(t, err)
	return r
}

// requestFor matches the quote request of one destination code.
func requestFor(destination string) any {
	return mock.MatchedBy(func(req shipment.QuoteRequest) bool { return req.Destination == destination })
}
