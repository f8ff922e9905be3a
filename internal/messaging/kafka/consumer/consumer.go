package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/AIforimpact22/HR-amas/internal/events"
	"github.com/AIforimpact22/HR-amas/internal/schedule"

	scheduleerrors "github.com/AIforimpact22/HR-amas/internal/schedule/errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle seeds the default schedule for every hired
// employee. Seeding skips employees that already hold a schedule, so
// replayed and duplicated events are harmless.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	scheduleService schedule.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeHiredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_hired event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		from, err := time.Parse("2006-01-02", event.EmploymentDate)
		if err != nil {
			from = time.Now().UTC()
		}

		if err := scheduleService.SeedDefault(ctx, event.EmployeeID, from); err != nil {
			if errors.Is(err, scheduleerrors.ErrInvalidEmployeeID) {
				log.Warn("employee_hired event carries a bad employee id, skipping",
					zap.String("employee_id", event.EmployeeID),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("seed default schedule failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("default schedule seeded from employee_hired event",
			zap.String("employee_id", event.EmployeeID),
			zap.String("employment_date", event.EmploymentDate),
		)
	}
}
