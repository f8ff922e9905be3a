package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/AIforimpact22/HR-amas/internal/messaging/kafka"
	"github.com/AIforimpact22/HR-amas/internal/messaging/kafka/producer"
	"github.com/AIforimpact22/HR-amas/internal/shared/connection"
)

// RunWorker drains the event outbox to kafka until interrupted.
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if len(cfg.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DatabaseURL, 5)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := connection.ConnectKafkaWithRetry(cfg.KafkaBrokers, 5); err != nil {
		return err
	}

	// Topic is set per message from the outbox row, so the writer stays
	// topic-less.
	kafkaWriter := &kafkago.Writer{
		Addr:     kafkago.TCP(cfg.KafkaBrokers...),
		Balancer: &kafkago.LeastBytes{},
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
