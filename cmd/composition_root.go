package cmd

import (
	"log/slog"

	httpadapter "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/advisor"
	"shipping/internal/adapters/out/carrierapi"
	"shipping/internal/adapters/out/memory/runrepo"
	"shipping/internal/adapters/out/municipality"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs        Config
	gormDB         *gorm.DB
	uowFactory     *postgres.GormUnitOfWorkFactory
	runs           *runrepo.Repository
	ledger         ports.BalanceLedger
	carrier        *carrierapi.Client
	advisor        ports.AdvisoryRecommender
	municipalities ports.MunicipalityDirectory
	publisher      ports.LabelEventPublisher
	runner         *jobs.WorkflowRunner
	orchestrator   *commands.WorkflowOrchestrator
	logger         *slog.Logger
}

// Infrastructure holds the connections opened by main. Redis and Publisher are
// optional and may be nil.
type Infrastructure struct {
	GormDB    *gorm.DB
	Ledger    ports.BalanceLedger
	Redis     goredis.Cmdable
	Publisher ports.LabelEventPublisher
	Runner    *jobs.WorkflowRunner
}

func NewCompositionRoot(configs Config, infra Infrastructure, logger *slog.Logger) (*CompositionRoot, error) {
	municipalities, err := municipality.NewDefaultDirectory()
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:        configs,
		gormDB:         infra.GormDB,
		uowFactory:     postgres.NewGormUnitOfWorkFactory(infra.GormDB),
		runs:           runrepo.NewRepository(),
		ledger:         infra.Ledger,
		municipalities: municipalities,
		publisher:      infra.Publisher,
		runner:         infra.Runner,
		logger:         logger,
		carrier: carrierapi.NewClient(carrierapi.Config{
			BaseURL: configs.CarrierAPIURL,
			APIKey:  configs.CarrierAPIKey,
			Timeout: configs.CarrierAPITimeout,
		}, logger),
	}

	if configs.AdvisorURL != "" {
		var rec ports.AdvisoryRecommender = advisor.NewClient(configs.AdvisorURL, configs.AdvisorTimeout, logger)
		if infra.Redis != nil {
			rec = advisor.NewCachedRecommender(rec, infra.Redis, configs.AdvisorCacheTTL, logger)
		}
		c.advisor = rec
	}

	c.orchestrator = commands.NewWorkflowOrchestrator(
		commands.NewQuoteSelector(c.carrier, c.advisor, c.municipalities, logger),
		commands.NewBatchExecutor(c.carrier, c.municipalities, c.orderUoWFactory(), c.publisher, logger),
		c.ledger,
		c.runner,
		logger,
	)

	return c, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateOpenBatchRunCommandHandler() commands.OpenBatchRunCommandHandler {
	return commands.NewOpenBatchRunCommandHandler(c.orderUoWFactory(), c.runs, c.configs.BatchOriginCode)
}

func (c *CompositionRoot) CreateOpenSingleOrderRunCommandHandler() commands.OpenSingleOrderRunCommandHandler {
	return commands.NewOpenSingleOrderRunCommandHandler(c.orderUoWFactory(), c.runs)
}

func (c *CompositionRoot) CreateChangeSelectionCommandHandler() commands.ChangeSelectionCommandHandler {
	return commands.NewChangeSelectionCommandHandler(c.runs)
}

func (c *CompositionRoot) CreateStartQuotingCommandHandler() commands.StartQuotingCommandHandler {
	return commands.NewStartQuotingCommandHandler(c.runs, c.orchestrator)
}

func (c *CompositionRoot) CreateChooseRateCommandHandler() commands.ChooseRateCommandHandler {
	return commands.NewChooseRateCommandHandler(c.runs, c.orchestrator)
}

func (c *CompositionRoot) CreateConfirmGenerationCommandHandler() commands.ConfirmGenerationCommandHandler {
	return commands.NewConfirmGenerationCommandHandler(c.runs, c.orchestrator)
}

func (c *CompositionRoot) CreateCancelRunCommandHandler() commands.CancelRunCommandHandler {
	return commands.NewCancelRunCommandHandler(c.runs)
}

func (c *CompositionRoot) CreateSweepIdleRunsCommandHandler() commands.SweepIdleRunsCommandHandler {
	return commands.NewSweepIdleRunsCommandHandler(c.runs)
}

func (c *CompositionRoot) CreateGetRunReportQueryHandler() queries.GetRunReportQueryHandler {
	return queries.NewGetRunReportQueryHandler(c.runs)
}

func (c *CompositionRoot) CreateGetBalanceQueryHandler() queries.GetBalanceQueryHandler {
	return queries.NewGetBalanceQueryHandler(c.ledger)
}

func (c *CompositionRoot) CreateGetUnshippedOrdersQueryHandler() queries.GetUnshippedOrdersQueryHandler {
	return queries.NewGetUnshippedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(httpadapter.Handlers{
		OpenBatchRun:       c.CreateOpenBatchRunCommandHandler(),
		OpenSingleOrderRun: c.CreateOpenSingleOrderRunCommandHandler(),
		ChangeSelection:    c.CreateChangeSelectionCommandHandler(),
		StartQuoting:       c.CreateStartQuotingCommandHandler(),
		ChooseRate:         c.CreateChooseRateCommandHandler(),
		ConfirmGeneration:  c.CreateConfirmGenerationCommandHandler(),
		CancelRun:          c.CreateCancelRunCommandHandler(),
		GetRunReport:       c.CreateGetRunReportQueryHandler(),
		GetBalance:         c.CreateGetBalanceQueryHandler(),
		GetUnshippedOrders: c.CreateGetUnshippedOrdersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateSweepIdleRunsCommandHandler(), c.configs.RunIdleTTL, c.runner, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
