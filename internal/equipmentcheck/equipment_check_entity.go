package equipmentcheck

import (
	"time"

	"github.com/google/uuid"
)

const StatusPending = "pending"

// Request asks an employee to confirm their equipment after an automatic
// clock-in. Completing it is handled elsewhere.
type Request struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID  `gorm:"column:company_id;type:uuid;not null;index"`
	EmployeeID  uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;index;uniqueIndex:uq_equipment_check_employee_requested_at,priority:1"`
	ShiftID     *uuid.UUID `gorm:"column:shift_id;type:uuid"`
	TimeEntryID *uuid.UUID `gorm:"column:time_entry_id;type:uuid"`
	Status      string     `gorm:"column:status;type:varchar(20);not null;default:pending"`
	RequestedAt time.Time  `gorm:"column:requested_at;type:timestamptz;not null;uniqueIndex:uq_equipment_check_employee_requested_at,priority:2"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
}

func (Request) TableName() string {
	return "equipment_check_requests"
}
