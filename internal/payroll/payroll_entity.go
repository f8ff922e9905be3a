package payroll

import (
	"time"

	"github.com/google/uuid"
)

// PayrollLedger rows are immutable snapshots. The unique index on
// (employee_id, month) is the month lock: once any row exists for a
// month, that month cannot be finalized again.
type PayrollLedger struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_payroll_ledger_employee_month"`
	Month      string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_payroll_ledger_employee_month;index:idx_payroll_ledger_month"`

	// Snapshotted so the ledger stays readable even after the roster changes.
	EmployeeName string `gorm:"type:text;not null"`

	BaseSalary int64  `gorm:"type:bigint;not null;default:0"`
	Bonus      int64  `gorm:"type:bigint;not null;default:0"`
	Extra      int64  `gorm:"type:bigint;not null;default:0"`
	Fine       int64  `gorm:"type:bigint;not null;default:0"`
	NetSalary  int64  `gorm:"type:bigint;not null;default:0"`
	Note       string `gorm:"type:text"`

	FinalizedBy string    `gorm:"type:text;not null"`
	FinalizedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

func (PayrollLedger) TableName() string {
	return "payroll_ledger"
}

// RosterEmployee is the slice of the employees table the calculator reads.
type RosterEmployee struct {
	ID       uuid.UUID
	FullName string
}

// BaseSalaryRecord is the salary and its reason in effect on a given day.
type BaseSalaryRecord struct {
	EmployeeID uuid.UUID
	Salary     int64
	Reason     string
}

// AdjustmentSums aggregates one employee's adjustment log for a month.
type AdjustmentSums struct {
	EmployeeID uuid.UUID
	Bonus      int64
	Extra      int64
	Fine       int64
	Reasons    string
}
