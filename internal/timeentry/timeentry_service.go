package timeentry

import (
	"context"
	"database/sql"
	"time"

	timeentryerrors "go-timeclock/internal/timeentry/errors"
	"go-timeclock/internal/timezone"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=timeentry_service.go -destination=mock/timeentry_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, companyID, employeeID string) (TimeEntryResponse, error)
	ClockOut(ctx context.Context, companyID, employeeID string) (TimeEntryResponse, error)
	List(ctx context.Context, employeeID string, from, to timezone.Date) ([]TimeEntryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	conv   *timezone.Converter
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, conv *timezone.Converter, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeentry.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeentry.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		conv:   conv,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) ClockIn(ctx context.Context, companyID, employeeID string) (TimeEntryResponse, error) {
	return s.punch(ctx, companyID, employeeID, PunchIn)
}

func (s *service) ClockOut(ctx context.Context, companyID, employeeID string) (TimeEntryResponse, error) {
	return s.punch(ctx, companyID, employeeID, PunchOut)
}

// punch appends a manual event after checking it alternates with the latest one.
func (s *service) punch(ctx context.Context, companyID, employeeID string, kind EntryType) (TimeEntryResponse, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidEmployeeID
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TimeEntryResponse{}, timeentryerrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TimeEntryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	latest, err := qtx.FindLatestByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("load latest entry failed", zap.String("employee_id", employeeID), zap.Error(err))
		return TimeEntryResponse{}, err
	}

	clockedIn := latest != nil && latest.IsPunchIn()
	if kind == PunchIn && clockedIn {
		return TimeEntryResponse{}, timeentryerrors.ErrAlreadyClockedIn
	}
	if kind == PunchOut && !clockedIn {
		return TimeEntryResponse{}, timeentryerrors.ErrNotClockedIn
	}

	row := &TimeEntry{
		ID:         uuid.New(),
		EmployeeID: empUUID,
		CompanyID:  companyUUID,
		EntryType:  kind,
		Timestamp:  s.now().UTC(),
	}
	if err := qtx.Create(ctx, row); err != nil {
		return TimeEntryResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TimeEntryResponse{}, err
	}

	s.logger.Info("manual punch recorded",
		zap.String("employee_id", employeeID),
		zap.String("entry_type", string(kind)),
	)
	return mapToResponse(*row), nil
}

func (s *service) List(ctx context.Context, employeeID string, from, to timezone.Date) ([]TimeEntryResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, timeentryerrors.ErrInvalidEmployeeID
	}
	if from.After(to) {
		return nil, timeentryerrors.ErrInvalidRange
	}

	start, _ := s.conv.DayBounds(from)
	_, end := s.conv.DayBounds(to)
	rows, err := s.repo.FindByEmployeeInRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	res := make([]TimeEntryResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func mapToResponse(e TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:          e.ID.String(),
		EmployeeID:  e.EmployeeID.String(),
		CompanyID:   e.CompanyID.String(),
		EntryType:   string(e.EntryType),
		Timestamp:   e.Timestamp.UTC().Format(time.RFC3339),
		IsAutomatic: e.IsAutomatic,
	}
}
