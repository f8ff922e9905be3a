package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/AIforimpact22/HR-amas/internal/attendance"
	"github.com/AIforimpact22/HR-amas/internal/events"
	"github.com/AIforimpact22/HR-amas/internal/messaging/kafka/consumer"
	"github.com/AIforimpact22/HR-amas/internal/payroll"
	"github.com/AIforimpact22/HR-amas/internal/salaryhistory"
	"github.com/AIforimpact22/HR-amas/internal/schedule"
	"github.com/AIforimpact22/HR-amas/internal/shared/connection"
)

// RunConsumer runs the two kafka consumers until interrupted: one seeds the
// default schedule for hired employees, the other archives the payroll report
// for finalized months.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

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

	scheduleRepo := schedule.NewRepository(gormDB, sqlDB)
	scheduleService := schedule.NewService(sqlDB, scheduleRepo, logger)

	attendanceRepo := attendance.NewRepository(gormDB, sqlDB)
	attendanceService := attendance.NewService(sqlDB, attendanceRepo, scheduleService, logger)

	salaryRepo := salaryhistory.NewRepository(gormDB, sqlDB)
	payrollRepo := payroll.NewRepository(gormDB, sqlDB)
	payrollService := payroll.NewService(sqlDB, payrollRepo, salaryRepo, attendanceService, nil, logger)

	lifecycleReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          events.EmployeeHiredTopic,
		GroupID:        "hr-amas-schedule-seeder",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer lifecycleReader.Close()

	payrollReader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          events.PayrollMonthFinalizedTopic,
		GroupID:        "hr-amas-payroll-report",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer payrollReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, lifecycleReader, scheduleService, logger)
	go consumer.ConsumePayrollMonthFinalized(ctx, payrollReader, payrollService, cfg.ReportDir, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
