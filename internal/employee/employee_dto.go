package employee

type HireEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	EmploymentDate string `json:"employment_date" binding:"required"`
	BaseSalary     int64  `json:"base_salary" binding:"required,gt=0"`
}

type ChangeEmployeeStateRequest struct {
	State string `json:"state" binding:"required,oneof=active resigned terminated"`
}

type GetEmployeesFilterRequest struct {
	Search string `form:"search"`
	State  string `form:"state" binding:"omitempty,oneof=active resigned terminated"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	EmploymentDate string `json:"employment_date"`
	State          string `json:"state"`
	CurrentSalary  *int64 `json:"current_salary,omitempty"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}
