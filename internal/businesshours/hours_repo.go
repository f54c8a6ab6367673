package businesshours

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=hours_repo.go -destination=mock/hours_repo_mock.go -package=mock
type Repository interface {
	FindByCompany(ctx context.Context, companyID string) (*CompanySettings, error)
	FindAll(ctx context.Context) ([]CompanySettings, error)
	Upsert(ctx context.Context, s *CompanySettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*CompanySettings, error) {
	var s CompanySettings
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&s).Error
	return &s, err
}

func (r *repository) FindAll(ctx context.Context) ([]CompanySettings, error) {
	var rows []CompanySettings
	err := r.db.WithContext(ctx).
		Order("company_id").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Upsert(ctx context.Context, s *CompanySettings) error {
	s.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"business_hours", "updated_at"}),
		}).
		Create(s).Error
}
