package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

//go:generate mockgen -source=profile_repo.go -destination=mock/profile_repo_mock.go -package=mock
type Repository interface {
	FindCompanyID(ctx context.Context, userID string) (string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindCompanyID(ctx context.Context, userID string) (string, error) {
	var p Profile
	err := r.db.WithContext(ctx).
		Select("user_id", "company_id").
		Where("user_id = ?", userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrProfileNotFound
	}
	if err != nil {
		return "", err
	}
	return p.CompanyID.String(), nil
}
