package reconciliation

import (
	"context"
	"errors"
	"time"

	"go-timeclock/internal/businesshours"
	businesshourserrors "go-timeclock/internal/businesshours/errors"
	"go-timeclock/internal/profile"
	reconciliationerrors "go-timeclock/internal/reconciliation/errors"
	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"
	"go-timeclock/internal/timezone"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxRangeDays = 366

//go:generate mockgen -source=reconciliation_service.go -destination=mock/reconciliation_service_mock.go -package=mock
type Service interface {
	// ReconcileRange returns exactly one day per local calendar date in [from, to].
	ReconcileRange(ctx context.Context, companyID, employeeID string, from, to timezone.Date) (TimesheetResponse, error)
}

type service struct {
	shifts   shift.Repository
	entries  timeentry.Repository
	profiles profile.Repository
	hours    businesshours.Service
	resolver *businesshours.Resolver
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	shifts shift.Repository,
	entries timeentry.Repository,
	profiles profile.Repository,
	hours businesshours.Service,
	resolver *businesshours.Resolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("reconciliation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("reconciliation.service")
	}
	return &service{
		shifts:   shifts,
		entries:  entries,
		profiles: profiles,
		hours:    hours,
		resolver: resolver,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) ReconcileRange(ctx context.Context, companyID, employeeID string, from, to timezone.Date) (TimesheetResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TimesheetResponse{}, reconciliationerrors.ErrInvalidEmployeeID
	}
	if from.After(to) {
		return TimesheetResponse{}, reconciliationerrors.ErrInvalidRange
	}
	if from.DaysUntil(to) >= maxRangeDays {
		return TimesheetResponse{}, reconciliationerrors.ErrRangeTooLarge
	}

	owner, err := s.profiles.FindCompanyID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return TimesheetResponse{}, reconciliationerrors.ErrEmployeeNotFound
		}
		return TimesheetResponse{}, err
	}
	if owner != companyID {
		return TimesheetResponse{}, reconciliationerrors.ErrEmployeeNotFound
	}

	conv := s.resolver.Converter()
	start, _ := conv.DayBounds(from)
	_, end := conv.DayBounds(to)

	shifts, err := s.shifts.FindByEmployeeInRange(ctx, companyID, employeeID, start, end)
	if err != nil {
		s.logger.Error("load shifts failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TimesheetResponse{}, err
	}
	punches, err := s.entries.FindByEmployeeInRange(ctx, employeeID, start, end)
	if err != nil {
		s.logger.Error("load time entries failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TimesheetResponse{}, err
	}

	week, err := s.hours.GetWeek(ctx, companyID)
	if err != nil && !errors.Is(err, businesshourserrors.ErrNotConfigured) {
		return TimesheetResponse{}, err
	}

	shiftByDate := make(map[timezone.Date]*shift.Shift)
	for i := range shifts {
		d := conv.LocalDate(shifts[i].StartTime)
		if _, ok := shiftByDate[d]; !ok {
			shiftByDate[d] = &shifts[i]
		}
	}
	punchesByDate := make(map[timezone.Date][]timeentry.TimeEntry)
	for _, p := range punches {
		d := conv.LocalDate(p.Timestamp)
		punchesByDate[d] = append(punchesByDate[d], p)
	}

	now := s.now()
	today := conv.LocalDate(now)

	resp := TimesheetResponse{
		EmployeeID: employeeID,
		From:       from.String(),
		To:         to.String(),
		Timezone:   conv.Location().String(),
		Days:       make([]ReconciledDay, 0, from.DaysUntil(to)+1),
	}
	for d := from; !d.After(to); d = d.AddDays(1) {
		day := Reconcile(DayInput{
			Date:         d,
			Shift:        shiftByDate[d],
			Punches:      punchesByDate[d],
			Now:          now,
			IsToday:      d == today,
			ClosedForDay: s.resolver.ClosedForDay(week, d, now),
		})
		resp.TotalMinutes += day.TotalMinutes
		resp.Days = append(resp.Days, day)
	}
	return resp, nil
}
