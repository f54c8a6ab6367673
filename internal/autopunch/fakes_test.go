package autopunch

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-timeclock/internal/businesshours"
	"go-timeclock/internal/events"
	"go-timeclock/internal/normalizer"
	"go-timeclock/internal/profile"
	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"
	timeentryerrors "go-timeclock/internal/timeentry/errors"
	"go-timeclock/internal/timezone"

	"github.com/google/uuid"
)

// memEntries is an in-memory time_entries table with its unique constraint.
type memEntries struct {
	timeentry.Repository
	rows     []timeentry.TimeEntry
	failFor  map[uuid.UUID]bool
	latestFn func(ctx context.Context, companyID string) ([]timeentry.TimeEntry, error)
}

func newMemEntries(rows ...timeentry.TimeEntry) *memEntries {
	return &memEntries{rows: rows, failFor: map[uuid.UUID]bool{}}
}

func (m *memEntries) WithTx(tx *sql.Tx) timeentry.Repository { return m }

func (m *memEntries) Create(ctx context.Context, e *timeentry.TimeEntry) error {
	if m.failFor[e.EmployeeID] {
		return errors.New("insert failed")
	}
	for _, r := range m.rows {
		if r.EmployeeID == e.EmployeeID && r.EntryType == e.EntryType && r.Timestamp.Equal(e.Timestamp) {
			return timeentryerrors.ErrDuplicateEntry
		}
	}
	e.CreatedAt = time.Now()
	m.rows = append(m.rows, *e)
	return nil
}

func (m *memEntries) FindLatestByEmployee(ctx context.Context, employeeID string) (*timeentry.TimeEntry, error) {
	latest, ok := timeentry.LatestByEmployee(m.rows)[uuid.MustParse(employeeID)]
	if !ok {
		return nil, nil
	}
	return &latest, nil
}

func (m *memEntries) FindLatestPerEmployee(ctx context.Context, companyID string) ([]timeentry.TimeEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, companyID)
	}
	var out []timeentry.TimeEntry
	for _, e := range timeentry.LatestByEmployee(m.rows) {
		if companyID == "" || e.CompanyID.String() == companyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEntries) ExistsAutomaticPunchIn(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	id := uuid.MustParse(employeeID)
	for _, e := range m.rows {
		if e.EmployeeID == id && e.IsAutomatic && e.IsPunchIn() && !e.Timestamp.Before(from) && !e.Timestamp.After(to) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memEntries) byEmployee(id uuid.UUID) []timeentry.TimeEntry {
	var out []timeentry.TimeEntry
	for _, e := range m.rows {
		if e.EmployeeID == id {
			out = append(out, e)
		}
	}
	return out
}

type fakeShiftRepo struct {
	shift.Repository
	candidatesFn    func(ctx context.Context, now time.Time, lookAhead time.Duration) ([]shift.Shift, error)
	byEmployeeFn    func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error)
	byEmployeeCalls int
	// rows backs FindByEmployeeInRange when byEmployeeFn is nil.
	rows []shift.Shift
}

func (f *fakeShiftRepo) FindAutoPunchInCandidates(ctx context.Context, now time.Time, lookAhead time.Duration) ([]shift.Shift, error) {
	return f.candidatesFn(ctx, now, lookAhead)
}

func (f *fakeShiftRepo) FindByEmployeeInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]shift.Shift, error) {
	f.byEmployeeCalls++
	if f.byEmployeeFn != nil {
		return f.byEmployeeFn(ctx, companyID, employeeID, from, to)
	}
	var out []shift.Shift
	for _, sh := range f.rows {
		if sh.EmployeeID.String() != employeeID || sh.StartTime.Before(from) || !sh.StartTime.Before(to) {
			continue
		}
		if owner := sh.CompanyIDString(); companyID != "" && owner != "" && owner != companyID {
			continue
		}
		out = append(out, sh)
	}
	return out, nil
}

type fakeProfileRepo struct {
	findCompanyIDFn func(ctx context.Context, userID string) (string, error)
}

func (f *fakeProfileRepo) FindCompanyID(ctx context.Context, userID string) (string, error) {
	if f.findCompanyIDFn == nil {
		return "", profile.ErrProfileNotFound
	}
	return f.findCompanyIDFn(ctx, userID)
}

type fakeNotifier struct {
	events []events.AutoPunchInEvent
	err    error
}

func (f *fakeNotifier) NotifyAutoPunchIn(ctx context.Context, evt events.AutoPunchInEvent) error {
	f.events = append(f.events, evt)
	return f.err
}

type fakeHoursRepo struct {
	businesshours.Repository
	findAllFn func(ctx context.Context) ([]businesshours.CompanySettings, error)
}

func (f *fakeHoursRepo) FindAll(ctx context.Context) ([]businesshours.CompanySettings, error) {
	return f.findAllFn(ctx)
}

type fakeNormalizer struct {
	dates []timezone.Date
	err   error
}

func (f *fakeNormalizer) NormalizeDate(ctx context.Context, date timezone.Date) (normalizer.Result, error) {
	f.dates = append(f.dates, date)
	if f.err != nil {
		return normalizer.Result{}, f.err
	}
	return normalizer.Result{Date: date, ShiftsChecked: 1, Normalized: 1}, nil
}

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedClock(s string) func() time.Time {
	t := utc(s)
	return func() time.Time { return t }
}
