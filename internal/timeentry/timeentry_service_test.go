package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	timeentryerrors "go-timeclock/internal/timeentry/errors"
	"go-timeclock/internal/timezone"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	withTxFn                  func(tx *sql.Tx) Repository
	createFn                  func(ctx context.Context, e *TimeEntry) error
	findLatestByEmployeeFn    func(ctx context.Context, employeeID string) (*TimeEntry, error)
	findLatestPerEmployeeFn   func(ctx context.Context, companyID string) ([]TimeEntry, error)
	existsAutomaticPunchInFn  func(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
	findByEmployeeInRangeFn   func(ctx context.Context, employeeID string, from, to time.Time) ([]TimeEntry, error)
	deleteByEmployeeInRangeFn func(ctx context.Context, employeeID string, from, to time.Time) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Create(ctx context.Context, e *TimeEntry) error {
	return f.createFn(ctx, e)
}
func (f *fakeRepo) FindLatestByEmployee(ctx context.Context, employeeID string) (*TimeEntry, error) {
	return f.findLatestByEmployeeFn(ctx, employeeID)
}
func (f *fakeRepo) FindLatestPerEmployee(ctx context.Context, companyID string) ([]TimeEntry, error) {
	return f.findLatestPerEmployeeFn(ctx, companyID)
}
func (f *fakeRepo) ExistsAutomaticPunchIn(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	return f.existsAutomaticPunchInFn(ctx, employeeID, from, to)
}
func (f *fakeRepo) FindByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]TimeEntry, error) {
	return f.findByEmployeeInRangeFn(ctx, employeeID, from, to)
}
func (f *fakeRepo) DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	return f.deleteByEmployeeInRangeFn(ctx, employeeID, from, to)
}

func newTestService(db *sql.DB, repo Repository, now time.Time) *service {
	svc := NewService(db, repo, timezone.MustConverter("UTC")).(*service)
	svc.now = func() time.Time { return now }
	return svc
}

func TestService_ClockInAndClockOut(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	companyID := uuid.New().String()
	employeeID := uuid.New().String()
	ctx := context.Background()
	now := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

	var saved []TimeEntry
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.createFn = func(ctx context.Context, e *TimeEntry) error { saved = append(saved, *e); return nil }
	repo.findLatestByEmployeeFn = func(ctx context.Context, eid string) (*TimeEntry, error) {
		if len(saved) == 0 {
			return nil, nil
		}
		last := saved[len(saved)-1]
		return &last, nil
	}

	svc := newTestService(db, repo, now)

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.ClockIn(ctx, companyID, employeeID)
	assert.NoError(t, err)
	assert.Equal(t, "punch_in", inResp.EntryType)
	assert.Equal(t, "2024-05-06T09:00:00Z", inResp.Timestamp)
	assert.False(t, inResp.IsAutomatic)

	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.ClockOut(ctx, companyID, employeeID)
	assert.NoError(t, err)
	assert.Equal(t, "punch_out", outResp.EntryType)
	assert.Len(t, saved, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockIn_AlreadyClockedIn(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findLatestByEmployeeFn = func(ctx context.Context, eid string) (*TimeEntry, error) {
		return &TimeEntry{EntryType: PunchIn}, nil
	}
	repo.createFn = func(ctx context.Context, e *TimeEntry) error {
		t.Fatal("must not insert a second punch-in")
		return nil
	}

	svc := newTestService(db, repo, time.Now())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, timeentryerrors.ErrAlreadyClockedIn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_ClockOut_NotClockedIn(t *testing.T) {
	tests := []struct {
		name   string
		latest *TimeEntry
	}{
		{name: "no events", latest: nil},
		{name: "already out", latest: &TimeEntry{EntryType: PunchOut}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer db.Close()

			repo := &fakeRepo{}
			repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
			repo.findLatestByEmployeeFn = func(ctx context.Context, eid string) (*TimeEntry, error) {
				return tt.latest, nil
			}

			svc := newTestService(db, repo, time.Now())

			mock.ExpectBegin()
			mock.ExpectRollback()
			_, err := svc.ClockOut(context.Background(), uuid.New().String(), uuid.New().String())
			assert.ErrorIs(t, err, timeentryerrors.ErrNotClockedIn)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestService_ClockIn_CreateFails(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	dbErr := errors.New("insert failed")
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findLatestByEmployeeFn = func(ctx context.Context, eid string) (*TimeEntry, error) { return nil, nil }
	repo.createFn = func(ctx context.Context, e *TimeEntry) error { return dbErr }

	svc := newTestService(db, repo, time.Now())

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.ClockIn(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_InvalidIDs(t *testing.T) {
	svc := newTestService(nil, &fakeRepo{}, time.Now())

	_, err := svc.ClockIn(context.Background(), uuid.New().String(), "nope")
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidEmployeeID)

	_, err = svc.ClockIn(context.Background(), "nope", uuid.New().String())
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidCompanyID)
}

func TestService_List(t *testing.T) {
	employeeID := uuid.New().String()
	from := timezone.NewDate(2024, time.May, 6)
	to := timezone.NewDate(2024, time.May, 7)

	repo := &fakeRepo{
		findByEmployeeInRangeFn: func(ctx context.Context, eid string, start, end time.Time) ([]TimeEntry, error) {
			assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), start)
			assert.Equal(t, time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), end)
			return []TimeEntry{{ID: uuid.New(), EntryType: PunchIn, IsAutomatic: true}}, nil
		},
	}
	svc := newTestService(nil, repo, time.Now())

	res, err := svc.List(context.Background(), employeeID, from, to)
	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.True(t, res[0].IsAutomatic)

	_, err = svc.List(context.Background(), employeeID, to, from)
	assert.ErrorIs(t, err, timeentryerrors.ErrInvalidRange)
}
