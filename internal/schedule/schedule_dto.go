package schedule

type AssignScheduleRequest struct {
	EmployeeID      string `json:"employee_id" binding:"required,uuid"`
	WorkDaysPerWeek int    `json:"work_days_per_week" binding:"required,min=1,max=7"`
	OffDay          *int   `json:"off_day" binding:"required,min=0,max=6"`
	ClockIn         string `json:"clock_in" binding:"required"`
	ClockOut        string `json:"clock_out" binding:"required"`
	EffectiveFrom   string `json:"effective_from" binding:"required"`
	Reason          string `json:"reason"`
}

type UpdateScheduleRequest struct {
	WorkDaysPerWeek int    `json:"work_days_per_week" binding:"required,min=1,max=7"`
	OffDay          *int   `json:"off_day" binding:"required,min=0,max=6"`
	ClockIn         string `json:"clock_in" binding:"required"`
	ClockOut        string `json:"clock_out" binding:"required"`
	EffectiveFrom   string `json:"effective_from" binding:"required"`
	EffectiveTo     string `json:"effective_to"`
	Reason          string `json:"reason"`
}

type ScheduleResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	WorkDaysPerWeek int     `json:"work_days_per_week"`
	OffDay          int     `json:"off_day"`
	ClockIn         string  `json:"clock_in"`
	ClockOut        string  `json:"clock_out"`
	EffectiveFrom   string  `json:"effective_from"`
	EffectiveTo     *string `json:"effective_to"`
	Reason          string  `json:"reason"`
}

type ResolvedShiftResponse struct {
	EmployeeID      string  `json:"employee_id"`
	Date            string  `json:"date"`
	Resolved        bool    `json:"resolved"`
	ExpectedIn      string  `json:"expected_in,omitempty"`
	ExpectedOut     string  `json:"expected_out,omitempty"`
	RequiredOut     string  `json:"required_out,omitempty"`
	ShiftHours      float64 `json:"shift_hours"`
	OffDay          bool    `json:"off_day"`
	WorkDaysPerWeek int     `json:"work_days_per_week,omitempty"`
}
