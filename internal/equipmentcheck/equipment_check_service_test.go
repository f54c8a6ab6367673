package equipmentcheck_test

import (
	"context"
	"testing"
	"time"

	"go-timeclock/internal/equipmentcheck"
	equipmentcheckerrors "go-timeclock/internal/equipmentcheck/errors"
	"go-timeclock/internal/events"

	equipmentcheckMock "go-timeclock/internal/equipmentcheck/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupServiceTest(t *testing.T) (equipmentcheck.Service, *equipmentcheckMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := equipmentcheckMock.NewMockRepository(ctrl)
	return equipmentcheck.NewService(repo), repo
}

func TestService_RequestFromAutoPunchIn(t *testing.T) {
	emp, company, sh := uuid.New(), uuid.New(), uuid.New()
	ts := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	evt := events.AutoPunchInEvent{
		EmployeeID: emp.String(),
		CompanyID:  company.String(),
		ShiftID:    sh.String(),
		Timestamp:  ts,
	}

	t.Run("creates pending request", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		req, err := svc.RequestFromAutoPunchIn(context.Background(), evt)
		assert.NoError(t, err)
		assert.Equal(t, equipmentcheck.StatusPending, req.Status)
		assert.Equal(t, emp, req.EmployeeID)
		assert.Equal(t, sh, *req.ShiftID)
		assert.Nil(t, req.TimeEntryID)
		assert.Equal(t, ts, req.RequestedAt)
	})

	t.Run("redelivery maps to already requested", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(equipmentcheckerrors.ErrAlreadyRequested)

		_, err := svc.RequestFromAutoPunchIn(context.Background(), evt)
		assert.ErrorIs(t, err, equipmentcheckerrors.ErrAlreadyRequested)
	})

	t.Run("invalid event is rejected before insert", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.RequestFromAutoPunchIn(context.Background(), events.AutoPunchInEvent{EmployeeID: "x"})
		assert.ErrorIs(t, err, equipmentcheckerrors.ErrInvalidEvent)
	})
}
