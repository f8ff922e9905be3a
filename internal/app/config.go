package app

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	Port               string
	DatabaseURL        string
	RedisAddr          string
	KafkaBrokers       []string
	ReportDir          string
	OutboxPollInterval time.Duration
}

func LoadConfig() (Config, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	cfg := Config{
		Port:               getEnv("PORT", "3000"),
		DatabaseURL:        dsn,
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:       splitBrokers(os.Getenv("KAFKA_BROKERS")),
		ReportDir:          getEnv("REPORT_DIR", "reports"),
		OutboxPollInterval: 3 * time.Second,
	}

	if raw := os.Getenv("OUTBOX_POLL_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.OutboxPollInterval = d
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
