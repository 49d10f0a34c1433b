package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CarrierAPIURL     string
	CarrierAPIKey     string
	CarrierAPITimeout time.Duration

	AdvisorURL      string
	AdvisorTimeout  time.Duration
	RedisAddr       string
	AdvisorCacheTTL time.Duration

	KafkaHost             string
	KafkaLabelIssuedTopic string

	LedgerAccountID string
	BatchOriginCode string
	RunIdleTTL      time.Duration
}

// DSN returns the PostgreSQL connection string shared by gorm and the ledger.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
