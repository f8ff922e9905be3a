package salaryhistory

type SalaryRecordResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	Salary        int64   `json:"salary"`
	EffectiveFrom string  `json:"effective_from"`
	EffectiveTo   *string `json:"effective_to,omitempty"`
	Reason        string  `json:"reason"`
}

type ResolvedSalaryResponse struct {
	EmployeeID    string `json:"employee_id"`
	Date          string `json:"date"`
	Resolved      bool   `json:"resolved"`
	Salary        int64  `json:"salary"`
	Reason        string `json:"reason,omitempty"`
	EffectiveFrom string `json:"effective_from,omitempty"`
}
