package events

import "time"

const PayrollMonthFinalizedTopic = "hr.payroll.month.finalized.v1"

type PayrollMonthFinalizedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	Month         string    `json:"month"`
	FinalizedBy   string    `json:"finalized_by"`
	EmployeeCount int       `json:"employee_count"`
	OccurredAt    time.Time `json:"occurred_at"`
}
