package businesshours

import (
	"time"

	"github.com/google/uuid"
)

type CompanySettings struct {
	CompanyID     uuid.UUID `gorm:"column:company_id;type:uuid;primaryKey"`
	BusinessHours Week      `gorm:"column:business_hours;type:jsonb"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (CompanySettings) TableName() string {
	return "company_settings"
}
