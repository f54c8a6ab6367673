package autopunch

import (
	"time"

	"go-timeclock/internal/timezone"
)

// Punch-out reasons reported in summaries.
const (
	ReasonShiftEnd = "shift_end"
	ReasonNoShift  = "no_shift"
	ReasonLate     = "late"
	ReasonStale    = "stale"
)

// PunchRecord describes one event a run inserted.
type PunchRecord struct {
	EmployeeID string    `json:"employee_id"`
	CompanyID  string    `json:"company_id"`
	ShiftID    string    `json:"shift_id,omitempty"`
	EntryID    string    `json:"entry_id"`
	Timestamp  time.Time `json:"timestamp"`
	Reason     string    `json:"reason,omitempty"`
}

type PunchInSummary struct {
	RunID                 string        `json:"run_id"`
	RanAt                 time.Time     `json:"ran_at"`
	ShiftsChecked         int           `json:"shifts_checked"`
	ProcessedCount        int           `json:"processed_count"`
	AlreadyPunchedInCount int           `json:"already_punched_in_count"`
	DuplicateCount        int           `json:"duplicate_count"`
	ErrorCount            int           `json:"error_count"`
	Punches               []PunchRecord `json:"punches"`
}

// PunchOutRequest carries the optional trigger payload. Force together with
// TargetDate only re-runs normalization for that date.
type PunchOutRequest struct {
	TargetDate *timezone.Date
	Force      bool
}

type PunchOutSummary struct {
	RunID            string          `json:"run_id"`
	RanAt            time.Time       `json:"ran_at"`
	StaleClosedCount int             `json:"stale_closed_count"`
	TenantsChecked   int             `json:"tenants_checked"`
	TenantsSkipped   int             `json:"tenants_skipped"`
	ProcessedCount   int             `json:"processed_count"`
	ErrorCount       int             `json:"error_count"`
	NormalizedDates  []timezone.Date `json:"normalized_dates"`
	NormalizedCount  int             `json:"normalized_count"`
	Punches          []PunchRecord   `json:"punches"`
}
