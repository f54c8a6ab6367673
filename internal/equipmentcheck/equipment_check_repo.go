package equipmentcheck

import (
	"context"
	"errors"
	"strings"

	equipmentcheckerrors "go-timeclock/internal/equipmentcheck/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueRequestConstraint = "uq_equipment_check_employee_requested_at"

//go:generate mockgen -source=equipment_check_repo.go -destination=mock/equipment_check_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, r *Request) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req *Request) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(req).Error)
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueRequestConstraint {
			return equipmentcheckerrors.ErrAlreadyRequested
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueRequestConstraint) {
		return equipmentcheckerrors.ErrAlreadyRequested
	}

	return err
}
