package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StateActive     = "active"
	StateResigned   = "resigned"
	StateTerminated = "terminated"
)

type Employee struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeNumber string         `gorm:"column:employee_number;type:varchar(20);not null;uniqueIndex:uq_employee_number"`
	FullName       string         `gorm:"column:full_name;type:varchar(255);not null;index"`
	EmploymentDate time.Time      `gorm:"column:employment_date;type:date;not null"`
	State          string         `gorm:"column:state;type:varchar(20);not null;default:active;index"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}

// RosterRow is an employee joined with the salary record effective today.
// CurrentSalary is nil when no record covers the current date.
type RosterRow struct {
	Employee
	CurrentSalary *int64 `gorm:"column:current_salary"`
}
