package attendance

type ClockInRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	At         string `json:"at"`
}

type ClockOutRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	At         string `json:"at"`
}

type PunchResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	PunchDate  string  `json:"punch_date"`
	ClockIn    string  `json:"clock_in"`
	ClockOut   *string `json:"clock_out,omitempty"`
}

type DayRecordResponse struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	ClockIn      string  `json:"clock_in"`
	ClockOut     *string `json:"clock_out,omitempty"`
	Worked       string  `json:"worked"`
	WorkedHours  float64 `json:"worked_hours"`
	ExpectedIn   string  `json:"expected_in,omitempty"`
	RequiredOut  string  `json:"required_out,omitempty"`
	ShiftHours   float64 `json:"shift_hours,omitempty"`
	Late         bool    `json:"late"`
	Status       string  `json:"status"`
}

type RangeDayResponse struct {
	Date        string  `json:"date"`
	Weekday     string  `json:"weekday"`
	ClockIn     *string `json:"clock_in,omitempty"`
	ClockOut    *string `json:"clock_out,omitempty"`
	Worked      string  `json:"worked"`
	WorkedHours float64 `json:"worked_hours"`
	ShiftHours  float64 `json:"shift_hours"`
	Diff        string  `json:"diff"`
	Late        bool    `json:"late"`
	Status      string  `json:"status"`
}

type RangeTotalsResponse struct {
	WorkedHours   float64 `json:"worked_hours"`
	ExpectedHours float64 `json:"expected_hours"`
	Diff          string  `json:"diff"`
}

type RangeResponse struct {
	EmployeeID string              `json:"employee_id"`
	StartDate  string              `json:"start_date"`
	EndDate    string              `json:"end_date"`
	Days       []RangeDayResponse  `json:"days"`
	Totals     RangeTotalsResponse `json:"totals"`
}
