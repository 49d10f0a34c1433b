package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the repository against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(number string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), number,
		order.Customer{Name: "Ana Ruiz", Phone: "3001234567", Email: "ana@example.co"},
		order.Address{Line: "Cra 7 # 12-30", City: "Medellín", Department: "Antioquia"},
		kernel.NewMoney(8_550_000),
		order.Dimensions{Weight: 2.5, Height: 20, Width: 15, Length: 30},
	)
	suite.Require().NoError(err)
	return o
}

// add inserts the row the way the store front does.
func (suite *OrderRepositoryIntegrationTestSuite) add(o *order.Order) {
	dto := orderrepo.NewOrderDTO(o)
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsEveryField() {
	ctx := context.Background()
	original := suite.newOrder("1042")
	suite.add(original)

	got, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(original.IsEqual(got))
	suite.Equal("1042", got.Number())
	suite.Equal(original.Customer(), got.Customer())
	suite.Equal(original.Address(), got.Address())
	suite.Equal(kernel.NewMoney(8_550_000), got.DeclaredValue())
	suite.Equal(original.Dimensions(), got.Dimensions())
	suite.Equal(order.Pending, got.Status())
	suite.Empty(got.TrackingNumber())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NotConstructedOrder_Fails() {
	err := suite.repository.Update(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	got, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(got)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesTrackingNumber() {
	ctx := context.Background()
	o := suite.newOrder("2001")
	suite.add(o)

	suite.Require().NoError(o.Ship("SRV-778812"))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, got.Status())
	suite.Equal("SRV-778812", got.TrackingNumber())
	suite.Equal(o.Customer(), got.Customer())
	suite.Equal(o.Address(), got.Address())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	o := suite.newOrder("404")

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllUnshipped_SkipsShippedOldestFirst() {
	ctx := context.Background()
	first := suite.newOrder("3001")
	shipped := suite.newOrder("3002")
	last := suite.newOrder("3003")
	suite.Require().NoError(shipped.Ship("INT-1"))

	for _, o := range []*order.Order{first, shipped, last} {
		suite.add(o)
		time.Sleep(5 * time.Millisecond)
	}

	unshipped, err := suite.repository.GetAllUnshipped(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(unshipped, 2)
	suite.Equal(first.ID(), unshipped[0].ID())
	suite.Equal(last.ID(), unshipped[1].ID())
	for _, o := range unshipped {
		suite.False(o.IsShipped())
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllUnshipped_Empty() {
	unshipped, err := suite.repository.GetAllUnshipped(context.Background())

	suite.Require().NoError(err)
	suite.NotNil(unshipped)
	suite.Empty(unshipped)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
