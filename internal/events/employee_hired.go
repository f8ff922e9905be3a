package events

import "time"

const EmployeeHiredTopic = "hr.employee.lifecycle.v1"

type EmployeeHiredEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	FullName       string    `json:"full_name"`
	EmploymentDate string    `json:"employment_date"`
	OccurredAt     time.Time `json:"occurred_at"`
}
