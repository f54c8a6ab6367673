package normalizer

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"
	"go-timeclock/internal/timezone"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeShiftRepo struct {
	shift.Repository
	findStartingInRangeFn func(ctx context.Context, from, to time.Time) ([]shift.Shift, error)
}

func (f *fakeShiftRepo) FindStartingInRange(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
	return f.findStartingInRangeFn(ctx, from, to)
}

// memEntries keeps time entries in memory keyed by employee.
type memEntries struct {
	timeentry.Repository
	rows      map[uuid.UUID][]timeentry.TimeEntry
	failOn    uuid.UUID
	createErr error
}

func (m *memEntries) WithTx(tx *sql.Tx) timeentry.Repository { return m }

func (m *memEntries) FindByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) ([]timeentry.TimeEntry, error) {
	id := uuid.MustParse(employeeID)
	if id == m.failOn {
		return nil, errors.New("query failed")
	}
	var out []timeentry.TimeEntry
	for _, e := range m.rows[id] {
		if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEntries) DeleteByEmployeeInRange(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	id := uuid.MustParse(employeeID)
	var kept []timeentry.TimeEntry
	var n int64
	for _, e := range m.rows[id] {
		if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			n++
			continue
		}
		kept = append(kept, e)
	}
	m.rows[id] = kept
	return n, nil
}

func (m *memEntries) Create(ctx context.Context, e *timeentry.TimeEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rows[e.EmployeeID] = append(m.rows[e.EmployeeID], *e)
	return nil
}

var monday = timezone.NewDate(2024, time.May, 6)

func at(hour, minute int) time.Time {
	return time.Date(2024, 5, 6, hour, minute, 0, 0, time.UTC)
}

func autoPair(emp, company uuid.UUID) []timeentry.TimeEntry {
	return []timeentry.TimeEntry{
		*timeentry.NewAutomatic(emp, company, timeentry.PunchIn, at(9, 0)),
		*timeentry.NewAutomatic(emp, company, timeentry.PunchOut, at(17, 0)),
	}
}

func TestNormalizeDate_Deterministic(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	emp, company := uuid.New(), uuid.New()
	sh := shift.Shift{ID: uuid.New(), EmployeeID: emp, StartTime: at(9, 0), EndTime: at(17, 0)}
	store := &memEntries{rows: map[uuid.UUID][]timeentry.TimeEntry{emp: autoPair(emp, company)}}
	shifts := &fakeShiftRepo{findStartingInRangeFn: func(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
		assert.Equal(t, at(0, 0), from)
		return []shift.Shift{sh}, nil
	}}
	svc := NewService(db, shifts, store, timezone.MustConverter("UTC"))

	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.NormalizeDate(context.Background(), monday)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Normalized)
	first := append([]timeentry.TimeEntry(nil), store.rows[emp]...)
	assert.Len(t, first, 2)
	assert.True(t, first[0].IsAutomatic)
	assert.Equal(t, company, first[0].CompanyID)
	assert.Equal(t, at(9, 0).Add(Variation(emp.String(), monday, KindIn)), first[0].Timestamp)
	assert.Equal(t, at(17, 0).Add(Variation(emp.String(), monday, KindOut)), first[1].Timestamp)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.NormalizeDate(context.Background(), monday)
	assert.NoError(t, err)
	second := store.rows[emp]
	assert.Len(t, second, 2)
	assert.Equal(t, first[0].Timestamp, second[0].Timestamp)
	assert.Equal(t, first[1].Timestamp, second[1].Timestamp)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizeDate_SkipsManualAndIncomplete(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	company := uuid.New()
	manual, lonely, none := uuid.New(), uuid.New(), uuid.New()
	manualRows := autoPair(manual, company)
	manualRows[1].IsAutomatic = false

	store := &memEntries{rows: map[uuid.UUID][]timeentry.TimeEntry{
		manual: manualRows,
		lonely: autoPair(lonely, company)[:1],
	}}
	shifts := &fakeShiftRepo{findStartingInRangeFn: func(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
		return []shift.Shift{
			{EmployeeID: manual, StartTime: at(9, 0), EndTime: at(17, 0)},
			{EmployeeID: lonely, StartTime: at(9, 0), EndTime: at(17, 0)},
			{EmployeeID: none, StartTime: at(9, 0), EndTime: at(17, 0)},
		}, nil
	}}
	svc := NewService(db, shifts, store, timezone.MustConverter("UTC"))

	res, err := svc.NormalizeDate(context.Background(), monday)
	assert.NoError(t, err)
	assert.Equal(t, 3, res.ShiftsChecked)
	assert.Equal(t, 3, res.Skipped)
	assert.Equal(t, 0, res.Normalized)
	assert.Equal(t, manualRows, store.rows[manual])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizeDate_ManualEventKeepsAutomaticPair(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	emp, company := uuid.New(), uuid.New()
	rows := autoPair(emp, company)
	rows = append(rows,
		timeentry.TimeEntry{ID: uuid.New(), EmployeeID: emp, CompanyID: company, EntryType: timeentry.PunchIn, Timestamp: at(18, 0)},
		*timeentry.NewAutomatic(emp, company, timeentry.PunchOut, at(19, 0)),
	)
	store := &memEntries{rows: map[uuid.UUID][]timeentry.TimeEntry{emp: rows}}
	shifts := &fakeShiftRepo{findStartingInRangeFn: func(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
		return []shift.Shift{{EmployeeID: emp, StartTime: at(9, 0), EndTime: at(17, 0)}}, nil
	}}
	svc := NewService(db, shifts, store, timezone.MustConverter("UTC"))

	for i := 0; i < 2; i++ {
		res, err := svc.NormalizeDate(context.Background(), monday)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Skipped)
		assert.Equal(t, 0, res.Normalized)
	}
	assert.Equal(t, rows, store.rows[emp])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizeDate_FaultIsolation(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	company := uuid.New()
	broken, fine := uuid.New(), uuid.New()
	store := &memEntries{
		rows:   map[uuid.UUID][]timeentry.TimeEntry{fine: autoPair(fine, company)},
		failOn: broken,
	}
	shifts := &fakeShiftRepo{findStartingInRangeFn: func(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
		return []shift.Shift{
			{EmployeeID: broken, StartTime: at(9, 0), EndTime: at(17, 0)},
			{EmployeeID: fine, StartTime: at(9, 0), EndTime: at(17, 0)},
		}, nil
	}}
	svc := NewService(db, shifts, store, timezone.MustConverter("UTC"))

	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.NormalizeDate(context.Background(), monday)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 1, res.Normalized)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNormalizeDate_WriteFailureRollsBack(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	emp, company := uuid.New(), uuid.New()
	store := &memEntries{
		rows:      map[uuid.UUID][]timeentry.TimeEntry{emp: autoPair(emp, company)},
		createErr: errors.New("insert failed"),
	}
	shifts := &fakeShiftRepo{findStartingInRangeFn: func(ctx context.Context, from, to time.Time) ([]shift.Shift, error) {
		return []shift.Shift{{EmployeeID: emp, StartTime: at(9, 0), EndTime: at(17, 0)}}, nil
	}}
	svc := NewService(db, shifts, store, timezone.MustConverter("UTC"))

	mock.ExpectBegin()
	mock.ExpectRollback()
	res, err := svc.NormalizeDate(context.Background(), monday)
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Errors)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPerturbed_FallsBackWhenInverted(t *testing.T) {
	sh := shift.Shift{EmployeeID: uuid.New(), StartTime: at(9, 0), EndTime: at(9, 1)}
	in, out := perturbed(sh, monday)
	assert.True(t, out.After(in))
}
