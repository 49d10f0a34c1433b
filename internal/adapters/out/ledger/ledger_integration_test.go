package ledger_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"shipping/internal/adapters/out/ledger"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type LedgerIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *sql.DB
	ledger    *ledger.PostgresLedger
}

func (suite *LedgerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("billing"),
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.ledger, err = ledger.Open(ctx, dsn, "merchant-1")
	suite.Require().NoError(err)
	suite.db, err = sql.Open("postgres", dsn)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.EnsureSchema(ctx))
	suite.Require().NoError(suite.ledger.EnsureSchema(ctx), "schema creation is idempotent")
}

func (suite *LedgerIntegrationTestSuite) TearDownSuite() {
	if suite.ledger != nil {
		suite.Require().NoError(suite.ledger.Close())
	}
	if suite.db != nil {
		suite.Require().NoError(suite.db.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LedgerIntegrationTestSuite) SetupTest() {
	suite.exec(`TRUNCATE TABLE prepaid_accounts`)
}

func (suite *LedgerIntegrationTestSuite) exec(query string, args ...any) {
	_, err := suite.db.ExecContext(context.Background(), query, args...)
	suite.Require().NoError(err)
}

func (suite *LedgerIntegrationTestSuite) TestBalance_ReturnsStoredCents() {
	suite.exec(`INSERT INTO prepaid_accounts (account_id, balance_cents) VALUES ($1, $2), ($3, $4)`,
		"merchant-1", 3_000_000, "merchant-2", 99)

	balance, err := suite.ledger.Balance(context.Background())

	suite.Require().NoError(err)
	suite.Equal(kernel.MoneyFromFloat(30000), balance)
}

func (suite *LedgerIntegrationTestSuite) TestBalance_UnknownAccount_ReturnsNotFound() {
	_, err := suite.ledger.Balance(context.Background())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *LedgerIntegrationTestSuite) TestBalance_ConcurrentCallsAgree() {
	suite.exec(`INSERT INTO prepaid_accounts (account_id, balance_cents) VALUES ($1, $2)`, "merchant-1", 12_345)

	var wg sync.WaitGroup
	results := make([]kernel.Money, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			balance, err := suite.ledger.Balance(context.Background())
			suite.NoError(err)
			results[i] = balance
		}(i)
	}
	wg.Wait()

	for _, balance := range results {
		suite.Equal(kernel.NewMoney(12_345), balance)
	}
}

func (suite *LedgerIntegrationTestSuite) TestBalance_CancelledCallerDoesNotFailSharedRead() {
	suite.exec(`INSERT INTO prepaid_accounts (account_id, balance_cents) VALUES ($1, $2)`, "merchant-1", 5_000)

	// Hold the table so both reads wait on the same query.
	tx, err := suite.db.BeginTx(context.Background(), nil)
	suite.Require().NoError(err)
	_, err = tx.Exec(`LOCK TABLE prepaid_accounts IN ACCESS EXCLUSIVE MODE`)
	suite.Require().NoError(err)

	leaving, cancel := context.WithCancel(context.Background())
	leavingErr := make(chan error, 1)
	go func() {
		_, err := suite.ledger.Balance(leaving)
		leavingErr <- err
	}()
	time.Sleep(100 * time.Millisecond)

	type result struct {
		balance kernel.Money
		err     error
	}
	staying := make(chan result, 1)
	go func() {
		balance, err := suite.ledger.Balance(context.Background())
		staying <- result{balance, err}
	}()
	time.Sleep(100 * time.Millisecond)

	cancel()
	suite.Require().ErrorIs(<-leavingErr, context.Canceled)

	suite.Require().NoError(tx.Commit())
	got := <-staying
	suite.Require().NoError(got.err)
	suite.Equal(kernel.NewMoney(5_000), got.balance)
}

func (suite *LedgerIntegrationTestSuite) TestBalance_CancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.ledger.Balance(ctx)

	suite.Require().ErrorIs(err, context.Canceled)
}

func TestLedgerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerIntegrationTestSuite))
}
