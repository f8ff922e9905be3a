package salaryhistory

import (
	"time"

	"github.com/google/uuid"
)

type SalaryRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;index:idx_salary_history_employee_window;uniqueIndex:uq_salary_history_employee_from"`
	Salary        int64      `gorm:"not null"`
	EffectiveFrom time.Time  `gorm:"type:date;index:idx_salary_history_employee_window;uniqueIndex:uq_salary_history_employee_from"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	Reason        string     `gorm:"type:text"`
	CreatedAt     time.Time
}

func (SalaryRecord) TableName() string {
	return "salary_history"
}
