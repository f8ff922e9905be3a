package schedule

import (
	"time"

	"github.com/google/uuid"
)

type WorkSchedule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_work_schedules_employee_window;uniqueIndex:uq_work_schedules_employee_from"`

	WorkDaysPerWeek int    `gorm:"type:int;not null;default:6"`
	OffDay          int    `gorm:"type:int;not null;default:5"`
	ClockIn         string `gorm:"type:varchar(5);not null"`
	ClockOut        string `gorm:"type:varchar(5);not null"`

	EffectiveFrom time.Time  `gorm:"type:date;not null;index:idx_work_schedules_employee_window;uniqueIndex:uq_work_schedules_employee_from"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	Reason        string     `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}
