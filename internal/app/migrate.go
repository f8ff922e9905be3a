package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/AIforimpact22/HR-amas/internal/adjustment"
	"github.com/AIforimpact22/HR-amas/internal/attendance"
	"github.com/AIforimpact22/HR-amas/internal/employee"
	"github.com/AIforimpact22/HR-amas/internal/payroll"
	"github.com/AIforimpact22/HR-amas/internal/salaryhistory"
	"github.com/AIforimpact22/HR-amas/internal/schedule"
)

// counters and event_outbox are written with raw SQL by their repositories,
// so they are created here instead of through AutoMigrate.
const countersDDL = `
CREATE TABLE IF NOT EXISTS counters (
	counter_type TEXT PRIMARY KEY,
	last_value   BIGINT NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const eventOutboxDDL = `
CREATE TABLE IF NOT EXISTS event_outbox (
	id             UUID PRIMARY KEY,
	request_id     TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id   TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	topic          TEXT NOT NULL,
	payload        JSONB NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	retry_count    INT NOT NULL DEFAULT 0,
	next_retry_at  TIMESTAMPTZ,
	error_message  TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	processed_at   TIMESTAMPTZ,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const eventOutboxIndexDDL = `
CREATE INDEX IF NOT EXISTS idx_event_outbox_pending
	ON event_outbox (created_at)
	WHERE status IN ('pending', 'failed')`

func runMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&employee.Employee{},
		&schedule.WorkSchedule{},
		&attendance.AttendancePunch{},
		&salaryhistory.SalaryRecord{},
		&adjustment.SalaryAdjustment{},
		&payroll.PayrollLedger{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	for _, ddl := range []string{countersDDL, eventOutboxDDL, eventOutboxIndexDDL} {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("migrate raw tables: %w", err)
		}
	}

	return nil
}
