package profile

import "github.com/google/uuid"

// Profile links a user (employee) to the company that owns them.
type Profile struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
}

func (Profile) TableName() string {
	return "profiles"
}
