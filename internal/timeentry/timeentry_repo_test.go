package timeentry

import (
	"context"
	"testing"
	"time"

	timeentryerrors "go-timeclock/internal/timeentry/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

func TestRepository_FindLatestPerEmployee(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	emp := uuid.New()
	at := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

	columns := []string{"id", "employee_id", "company_id", "entry_type", "timestamp", "is_automatic", "created_at"}

	t.Run("scoped to company", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(`SELECT DISTINCT ON \(employee_id\) \* FROM time_entries WHERE company_id = \$1 ORDER BY employee_id`).
			WithArgs(companyID).
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(uuid.New().String(), emp.String(), companyID, "punch_in", at, true, at))

		rows, err := NewRepository(gdb).FindLatestPerEmployee(ctx, companyID)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, emp, rows[0].EmployeeID)
		assert.Equal(t, PunchIn, rows[0].EntryType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all tenants", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectQuery(`SELECT DISTINCT ON \(employee_id\) \* FROM time_entries ORDER BY employee_id`).
			WillReturnRows(sqlmock.NewRows(columns))

		rows, err := NewRepository(gdb).FindLatestPerEmployee(ctx, "")
		assert.NoError(t, err)
		assert.Empty(t, rows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_CreateInsideTx(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	entry := NewAutomatic(uuid.New(), uuid.New(), PunchIn, time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "time_entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(entry.ID.String()))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	assert.NoError(t, err)
	assert.NoError(t, NewRepository(gdb).WithTx(tx).Create(ctx, entry))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMapRepositoryError(t *testing.T) {
	assert.Nil(t, mapRepositoryError(nil))
	assert.Equal(t, assert.AnError, mapRepositoryError(assert.AnError))

	dup := &pgconn.PgError{Code: "23505", ConstraintName: uniqueEntryConstraint}
	assert.ErrorIs(t, mapRepositoryError(dup), timeentryerrors.ErrDuplicateEntry)

	other := &pgconn.PgError{Code: "23505", ConstraintName: "some_other_key"}
	assert.Equal(t, error(other), mapRepositoryError(other))
}
