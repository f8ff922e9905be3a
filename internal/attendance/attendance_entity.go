package attendance

import (
	"time"

	"github.com/google/uuid"
)

type AttendancePunch struct {
	ID         uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_employee_day"`
	PunchDate  time.Time    `gorm:"column:punch_date;type:date;not null;uniqueIndex:uq_attendance_employee_day"`
	ClockIn    time.Time    `gorm:"column:clock_in;type:timestamptz;not null"`
	ClockOut   *time.Time   `gorm:"column:clock_out;type:timestamptz"`
	CreatedAt  time.Time    `gorm:"column:created_at"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (AttendancePunch) TableName() string {
	return "attendance_punches"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
