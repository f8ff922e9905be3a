package payroll

type MonthlySummaryRow struct {
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	BaseSalary    int64   `json:"base_salary"`
	Bonus         int64   `json:"bonus"`
	Extra         int64   `json:"extra"`
	Fine          int64   `json:"fine"`
	NetSalary     int64   `json:"net_salary"`
	WorkedHours   float64 `json:"worked_hours"`
	RequiredHours float64 `json:"required_hours"`
	DeltaHours    float64 `json:"delta_hours"`
	Reasons       string  `json:"reasons"`
}

type MonthlySummaryTotals struct {
	BaseSalary    int64   `json:"base_salary"`
	Bonus         int64   `json:"bonus"`
	Extra         int64   `json:"extra"`
	Fine          int64   `json:"fine"`
	NetSalary     int64   `json:"net_salary"`
	WorkedHours   float64 `json:"worked_hours"`
	RequiredHours float64 `json:"required_hours"`
	DeltaHours    float64 `json:"delta_hours"`
}

type MonthlySummaryResponse struct {
	Month     string               `json:"month"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Finalized bool                 `json:"finalized"`
	Rows      []MonthlySummaryRow  `json:"rows"`
	Totals    MonthlySummaryTotals `json:"totals"`
}

type RaiseOrCutRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	Amount        int64  `json:"amount" binding:"required"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	Reason        string `json:"reason"`
}

type RaiseOrCutResponse struct {
	EmployeeID     string `json:"employee_id"`
	Salary         int64  `json:"salary"`
	PreviousSalary *int64 `json:"previous_salary,omitempty"`
	EffectiveFrom  string `json:"effective_from"`
	Reason         string `json:"reason"`
}

type FinalizeMonthRequest struct {
	Month string `json:"month" binding:"required"`
}

type FinalizeMonthResponse struct {
	Month         string `json:"month"`
	EmployeeCount int    `json:"employee_count"`
	FinalizedBy   string `json:"finalized_by"`
	FinalizedAt   string `json:"finalized_at"`
}

type LedgerEntryResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Month        string `json:"month"`
	BaseSalary   int64  `json:"base_salary"`
	Bonus        int64  `json:"bonus"`
	Extra        int64  `json:"extra"`
	Fine         int64  `json:"fine"`
	NetSalary    int64  `json:"net_salary"`
	Note         string `json:"note"`
	FinalizedBy  string `json:"finalized_by"`
	FinalizedAt  string `json:"finalized_at"`
}
