// Package normalizer replaces mechanically exact automatic punches with a
// reproducible, human-looking spread around the scheduled shift times.
package normalizer

import (
	"context"
	"database/sql"
	"time"

	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"
	"go-timeclock/internal/timezone"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Result struct {
	Date          timezone.Date `json:"date"`
	ShiftsChecked int           `json:"shifts_checked"`
	Normalized    int           `json:"normalized"`
	Skipped       int           `json:"skipped"`
	Errors        int           `json:"errors"`
}

//go:generate mockgen -source=normalizer_service.go -destination=mock/normalizer_service_mock.go -package=mock
type Service interface {
	// NormalizeDate never rewrites a day that holds a manual event.
	NormalizeDate(ctx context.Context, date timezone.Date) (Result, error)
}

type service struct {
	db      *sql.DB
	shifts  shift.Repository
	entries timeentry.Repository
	conv    *timezone.Converter
	logger  *zap.Logger
}

func NewService(db *sql.DB, shifts shift.Repository, entries timeentry.Repository, conv *timezone.Converter, logger ...*zap.Logger) Service {
	l := zap.L().Named("normalizer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("normalizer.service")
	}
	return &service{
		db:      db,
		shifts:  shifts,
		entries: entries,
		conv:    conv,
		logger:  l,
	}
}

// NormalizeDate rewrites the automatic punch pair of every shift starting on
// date. Only days made entirely of automatic events are touched: a day holding
// any manual punch is never rewritten, whoever asks for the date and however
// complete the automatic pair is. Days without both a punch-in and a punch-out
// are left alone too.
func (s *service) NormalizeDate(ctx context.Context, date timezone.Date) (Result, error) {
	log := s.logger.With(zap.String("run_id", contextutil.GetRunID(ctx)), zap.Stringer("date", date))
	res := Result{Date: date}

	start, end := s.conv.DayBounds(date)
	shifts, err := s.shifts.FindStartingInRange(ctx, start, end)
	if err != nil {
		log.Error("load shifts failed", zap.Error(err))
		return res, err
	}

	seen := make(map[uuid.UUID]bool, len(shifts))
	for _, sh := range shifts {
		if seen[sh.EmployeeID] {
			continue
		}
		seen[sh.EmployeeID] = true
		res.ShiftsChecked++

		employeeID := sh.EmployeeID.String()
		events, err := s.entries.FindByEmployeeInRange(ctx, employeeID, start, end)
		if err != nil {
			res.Errors++
			log.Error("load time entries failed", zap.String("employee_id", employeeID), zap.Error(err))
			continue
		}
		if !eligible(events) {
			res.Skipped++
			continue
		}

		in, out := perturbed(sh, date)
		if err := s.replace(ctx, sh.EmployeeID, events[0].CompanyID, start, end, in, out); err != nil {
			res.Errors++
			log.Error("replace punches failed", zap.String("employee_id", employeeID), zap.Error(err))
			continue
		}
		res.Normalized++
		log.Info("punches normalized",
			zap.String("employee_id", employeeID),
			zap.Time("punch_in", in),
			zap.Time("punch_out", out),
		)
	}

	return res, nil
}

func eligible(events []timeentry.TimeEntry) bool {
	var hasIn, hasOut bool
	for _, e := range events {
		if !e.IsAutomatic {
			return false
		}
		switch e.EntryType {
		case timeentry.PunchIn:
			hasIn = true
		case timeentry.PunchOut:
			hasOut = true
		}
	}
	return hasIn && hasOut
}

func perturbed(sh shift.Shift, date timezone.Date) (time.Time, time.Time) {
	employeeID := sh.EmployeeID.String()
	in := sh.StartTime.Add(Variation(employeeID, date, KindIn))
	out := sh.EndTime.Add(Variation(employeeID, date, KindOut))
	if !out.After(in) {
		return sh.StartTime, sh.EndTime
	}
	return in, out
}

func (s *service) replace(ctx context.Context, employeeID, companyID uuid.UUID, start, end, in, out time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.entries.WithTx(tx)
	if _, err := qtx.DeleteByEmployeeInRange(ctx, employeeID.String(), start, end); err != nil {
		return err
	}
	if err := qtx.Create(ctx, timeentry.NewAutomatic(employeeID, companyID, timeentry.PunchIn, in)); err != nil {
		return err
	}
	if err := qtx.Create(ctx, timeentry.NewAutomatic(employeeID, companyID, timeentry.PunchOut, out)); err != nil {
		return err
	}
	return tx.Commit()
}
