package shift

import (
	"time"

	"github.com/google/uuid"
)

type Shift struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index"`
	CompanyID   *uuid.UUID `gorm:"column:company_id;type:uuid;index"`
	StartTime   time.Time  `gorm:"column:start_time;type:timestamptz;not null;index"`
	EndTime     time.Time  `gorm:"column:end_time;type:timestamptz;not null"`
	AutoPunchIn bool       `gorm:"column:auto_punch_in;not null;default:false"`
	Location    *string    `gorm:"column:location;type:varchar(255)"`
	Notes       *string    `gorm:"column:notes;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}

// Valid reports whether the shift ends after it starts.
func (s Shift) Valid() bool {
	return s.StartTime.Before(s.EndTime)
}

// CompanyIDString is empty when the row carries no tenant.
func (s Shift) CompanyIDString() string {
	if s.CompanyID == nil || *s.CompanyID == uuid.Nil {
		return ""
	}
	return s.CompanyID.String()
}

// Covers reports whether instant falls inside [start, end].
func (s Shift) Covers(instant time.Time) bool {
	return !instant.Before(s.StartTime) && !instant.After(s.EndTime)
}
