package timeentry

import (
	"time"

	"github.com/google/uuid"
)

type EntryType string

const (
	PunchIn  EntryType = "punch_in"
	PunchOut EntryType = "punch_out"
)

// TimeEntry is one raw clock event. Rows are append-only apart from the
// normalizer's delete-and-reinsert of automatic pairs.
type TimeEntry struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"column:employee_id;type:uuid;not null;index;uniqueIndex:uq_time_entries_employee_type_ts,priority:1"`
	CompanyID   uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	EntryType   EntryType `gorm:"column:entry_type;type:varchar(20);not null;uniqueIndex:uq_time_entries_employee_type_ts,priority:2"`
	Timestamp   time.Time `gorm:"column:timestamp;type:timestamptz;not null;index;uniqueIndex:uq_time_entries_employee_type_ts,priority:3"`
	IsAutomatic bool      `gorm:"column:is_automatic;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

func (e TimeEntry) IsPunchIn() bool {
	return e.EntryType == PunchIn
}

func NewAutomatic(employeeID, companyID uuid.UUID, kind EntryType, at time.Time) *TimeEntry {
	return &TimeEntry{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		EntryType:   kind,
		Timestamp:   at.UTC(),
		IsAutomatic: true,
	}
}
