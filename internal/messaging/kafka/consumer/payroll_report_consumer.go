package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AIforimpact22/HR-amas/internal/events"
	"github.com/AIforimpact22/HR-amas/internal/payroll"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollMonthFinalized archives the final payroll report to disk
// whenever a month is locked. Rendering from the ledger makes the write
// idempotent: re-delivery produces the same file.
func ConsumePayrollMonthFinalized(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	reportDir string,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_report")
	log.Info("payroll report consumer started", zap.String("report_dir", reportDir))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll report consumer stopped")
				return
			}
			log.Error("fetch payroll report message failed", zap.Error(err))
			continue
		}

		var event events.PayrollMonthFinalizedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_month_finalized event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := archiveMonthlyReport(ctx, payrollService, reportDir, event.Month); err != nil {
			log.Error("archive payroll report failed",
				zap.String("month", event.Month),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll report message failed", zap.Error(err))
			continue
		}

		log.Info("payroll report archived",
			zap.String("month", event.Month),
			zap.String("finalized_by", event.FinalizedBy),
			zap.Int("employee_count", event.EmployeeCount),
		)
	}
}

func archiveMonthlyReport(ctx context.Context, payrollService payroll.Service, reportDir, month string) error {
	data, err := payrollService.MonthlyReportPDF(ctx, month)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return err
	}

	filename := fmt.Sprintf("payroll_%s.pdf", month)
	return os.WriteFile(filepath.Join(reportDir, filename), data, 0o644)
}
