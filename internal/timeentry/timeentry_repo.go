package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-timeclock/internal/tenant"

	"gorm.io/gorm"
)

const timestampColumn = `"timestamp"`

//go:generate mockgen -source=timeentry_repo.go -destination=mock/timeentry_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *TimeEntry) error
	// FindLatestByEmployee returns nil, nil when the employee has no events.
	FindLatestByEmployee(ctx context.Context, employeeID string) (*TimeEntry, error)
	// FindLatestPerEmployee returns one row per employee. An empty companyID
	// spans every tenant.
	FindLatestPerEmployee(ctx context.Context, companyID string) ([]TimeEntry, error)
	ExistsAutomaticPunchIn(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
	FindByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]TimeEntry, error)
	DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn routes statements through the bound *sql.Tx when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	db := r.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	db.Statement.ConnPool = r.tx
	return db
}

func (r *repository) Create(ctx context.Context, e *TimeEntry) error {
	return mapRepositoryError(r.conn(ctx).Create(e).Error)
}

func (r *repository) FindLatestByEmployee(ctx context.Context, employeeID string) (*TimeEntry, error) {
	var e TimeEntry
	err := r.conn(ctx).
		Scopes(tenant.Employee(employeeID)).
		Order(timestampColumn + " DESC, created_at DESC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindLatestPerEmployee(ctx context.Context, companyID string) ([]TimeEntry, error) {
	query := `SELECT DISTINCT ON (employee_id) * FROM time_entries`
	var args []any
	if companyID != "" {
		query += ` WHERE company_id = ?`
		args = append(args, companyID)
	}
	query += ` ORDER BY employee_id, "timestamp" DESC, created_at DESC`

	var rows []TimeEntry
	err := r.conn(ctx).Raw(query, args...).Scan(&rows).Error
	return rows, err
}

func (r *repository) ExistsAutomaticPunchIn(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&TimeEntry{}).
		Scopes(tenant.Employee(employeeID)).
		Where("entry_type = ? AND is_automatic = ?", PunchIn, true).
		Where(timestampColumn+" >= ? AND "+timestampColumn+" <= ?", from, to).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]TimeEntry, error) {
	var rows []TimeEntry
	err := r.conn(ctx).
		Scopes(tenant.Employee(employeeID), tenant.Window(timestampColumn, from, to)).
		Order(timestampColumn + " ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	res := r.conn(ctx).
		Scopes(tenant.Employee(employeeID), tenant.Window(timestampColumn, from, to)).
		Delete(&TimeEntry{})
	return res.RowsAffected, res.Error
}
