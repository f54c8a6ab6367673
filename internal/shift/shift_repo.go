package shift

import (
	"context"
	"time"

	"go-timeclock/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=shift_repo.go -destination=mock/shift_repo_mock.go -package=mock
type Repository interface {
	// FindAutoPunchInCandidates returns auto-punch shifts starting within
	// [now, now+lookAhead] or already running at now, ordered by start.
	FindAutoPunchInCandidates(ctx context.Context, now time.Time, lookAhead time.Duration) ([]Shift, error)
	// FindByEmployeeInRange also returns the employee's shifts that carry no
	// company, which auto punch-in accepts through the employee's profile.
	FindByEmployeeInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Shift, error)
	FindStartingInRange(ctx context.Context, from, to time.Time) ([]Shift, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAutoPunchInCandidates(ctx context.Context, now time.Time, lookAhead time.Duration) ([]Shift, error) {
	var rows []Shift
	err := r.db.WithContext(ctx).
		Where("auto_punch_in = ?", true).
		Where(
			"(start_time >= ? AND start_time <= ?) OR (start_time <= ? AND end_time >= ?)",
			now, now.Add(lookAhead), now, now,
		).
		Order("start_time ASC, id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByEmployeeInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Shift, error) {
	var rows []Shift
	err := r.db.WithContext(ctx).
		Scopes(tenant.ScopeOrUnassigned(companyID), tenant.Employee(employeeID), tenant.Window("start_time", from, to)).
		Order("start_time ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindStartingInRange(ctx context.Context, from, to time.Time) ([]Shift, error) {
	var rows []Shift
	err := r.db.WithContext(ctx).
		Scopes(tenant.Window("start_time", from, to)).
		Order("employee_id ASC, start_time ASC").
		Find(&rows).Error
	return rows, err
}
