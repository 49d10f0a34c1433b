package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"shipping/cmd"
	httpadapter "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/ledger"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := godotenv.Load(".env"); err != nil {
		log.Warn("no .env file, reading configuration from the environment")
	}
	configs := getConfigs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		log.Fatalf("failed to migrate orders: %v", err)
	}

	balanceLedger, err := ledger.Open(ctx, configs.DSN(), configs.LedgerAccountID)
	if err != nil {
		log.Fatal(err)
	}
	defer balanceLedger.Close()
	if err = balanceLedger.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to prepare ledger schema: %v", err)
	}

	infra := cmd.Infrastructure{
		GormDB: gormDB,
		Ledger: balanceLedger,
		Runner: jobs.NewWorkflowRunner(context.Background(), logger),
	}

	if configs.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
		if err = rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, advisor cache disabled", "addr", configs.RedisAddr, "error", err)
			_ = rdb.Close()
		} else {
			defer rdb.Close()
			infra.Redis = rdb
		}
	}

	if configs.KafkaHost != "" {
		publisher := kafka.NewPublisher(configs.KafkaHost, configs.KafkaLabelIssuedTopic, logger)
		defer publisher.Close()
		infra.Publisher = publisher
	}

	app, err := cmd.NewCompositionRoot(configs, infra, logger)
	if err != nil {
		log.Fatal(err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatal(err)
	}

	e, err := httpadapter.NewEcho(app.CreateHTTPServer(), logger)
	if err != nil {
		log.Fatal(err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server starting", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		httpErr := e.Shutdown(shutdownCtx)
		jobsErr := jobManager.StopAll(shutdownCtx)
		return errors.Join(httpErr, jobsErr)
	})

	if err = g.Wait(); err != nil {
		logger.Error("shutdown finished with error", "error", err)
		return
	}
	logger.Info("shutdown complete")
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              envOrDefault("HTTP_PORT", "8080"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             envOrDefault("DB_SSLMODE", "disable"),
		CarrierAPIURL:         goDotEnvVariable("CARRIER_API_URL"),
		CarrierAPIKey:         goDotEnvVariable("CARRIER_API_KEY"),
		CarrierAPITimeout:     durationVariable("CARRIER_API_TIMEOUT", 30*time.Second),
		AdvisorURL:            goDotEnvVariable("ADVISOR_URL"),
		AdvisorTimeout:        durationVariable("ADVISOR_TIMEOUT", 5*time.Second),
		RedisAddr:             goDotEnvVariable("REDIS_ADDR"),
		AdvisorCacheTTL:       durationVariable("ADVISOR_CACHE_TTL", 6*time.Hour),
		KafkaHost:             goDotEnvVariable("KAFKA_HOST"),
		KafkaLabelIssuedTopic: envOrDefault("KAFKA_LABEL_ISSUED_TOPIC", "shipping.labels"),
		LedgerAccountID:       envOrDefault("LEDGER_ACCOUNT_ID", "default"),
		BatchOriginCode:       envOrDefault("BATCH_ORIGIN_CODE", "11001000"),
		RunIdleTTL:            durationVariable("RUN_IDLE_TTL", time.Hour),
	}
	return config
}

func goDotEnvVariable(key string) string {
	return os.Getenv(key)
}

func envOrDefault(key, fallback string) string {
	if v := goDotEnvVariable(key); v != "" {
		return v
	}
	return fallback
}

// durationVariable accepts Go durations ("90s") or a bare number of seconds.
func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Warnf("invalid duration in %s=%q, using %s", key, raw, fallback)
	return fallback
}
