package events

import "time"

const (
	AutoPunchInTopic     = "timeclock.auto_punch_in.v1"
	AutoPunchInEventType = "auto_punch_in"
)

// AutoPunchInEvent is emitted after the scheduler clocks an employee in.
type AutoPunchInEvent struct {
	EventType  string    `json:"event_type"`
	EntryID    string    `json:"entry_id"`
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	ShiftID    string    `json:"shift_id"`
	Timestamp  time.Time `json:"timestamp"`
	RunID      string    `json:"run_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
