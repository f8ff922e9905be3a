package adjustment

import (
	"time"

	"github.com/google/uuid"
)

// SalaryAdjustment is append-only: rows are inserted and never
// updated or deleted, so the log stays a faithful audit trail.
type SalaryAdjustment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_salary_adjustments_employee_date"`
	TxnDate    time.Time `gorm:"type:date;not null;index:idx_salary_adjustments_employee_date"`
	Amount     int64     `gorm:"type:bigint;not null;check:chk_salary_adjustments_amount,amount > 0"`
	TxnType    string    `gorm:"type:varchar(10);not null"`
	Reason     string    `gorm:"type:text"`
	CreatedAt  time.Time
}

func (SalaryAdjustment) TableName() string {
	return "salary_adjustments"
}
