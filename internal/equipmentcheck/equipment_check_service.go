package equipmentcheck

import (
	"context"
	"time"

	equipmentcheckerrors "go-timeclock/internal/equipmentcheck/errors"
	"go-timeclock/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=equipment_check_service.go -destination=mock/equipment_check_service_mock.go -package=mock
type Service interface {
	// RequestFromAutoPunchIn records a pending check. Redelivered events map
	// to ErrAlreadyRequested.
	RequestFromAutoPunchIn(ctx context.Context, evt events.AutoPunchInEvent) (*Request, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("equipmentcheck.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("equipmentcheck.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) RequestFromAutoPunchIn(ctx context.Context, evt events.AutoPunchInEvent) (*Request, error) {
	employeeID, err := uuid.Parse(evt.EmployeeID)
	if err != nil {
		return nil, equipmentcheckerrors.ErrInvalidEvent
	}
	companyID, err := uuid.Parse(evt.CompanyID)
	if err != nil {
		return nil, equipmentcheckerrors.ErrInvalidEvent
	}

	requestedAt := evt.Timestamp
	if requestedAt.IsZero() {
		requestedAt = time.Now()
	}

	req := &Request{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		ShiftID:     optionalUUID(evt.ShiftID),
		TimeEntryID: optionalUUID(evt.EntryID),
		Status:      StatusPending,
		RequestedAt: requestedAt.UTC(),
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("equipment check requested",
		zap.String("employee_id", evt.EmployeeID),
		zap.String("company_id", evt.CompanyID),
		zap.String("run_id", evt.RunID),
	)
	return req, nil
}

func optionalUUID(s string) *uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
