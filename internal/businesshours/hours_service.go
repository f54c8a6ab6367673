package businesshours

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	businesshourserrors "go-timeclock/internal/businesshours/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	WeekCacheKeyPrefix = "business_hours:"
	weekCacheTTL       = 5 * time.Minute
)

func WeekCacheKey(companyID string) string {
	return WeekCacheKeyPrefix + companyID
}

//go:generate mockgen -source=hours_service.go -destination=mock/hours_service_mock.go -package=mock
type Service interface {
	GetWeek(ctx context.Context, companyID string) (Week, error)
	Get(ctx context.Context, companyID string) (BusinessHoursResponse, error)
	Update(ctx context.Context, companyID string, req UpdateBusinessHoursRequest) (BusinessHoursResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("businesshours.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("businesshours.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetWeek returns the company's weekly table, served from redis when warm.
// A missing row maps to ErrNotConfigured.
func (s *service) GetWeek(ctx context.Context, companyID string) (Week, error) {
	cacheKey := WeekCacheKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var week Week
			if json.Unmarshal([]byte(cached), &week) == nil {
				return week, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (any, error) {
		row, err := s.repo.FindByCompany(ctx, companyID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, businesshourserrors.ErrNotConfigured
			}
			return nil, err
		}

		if s.rdb != nil {
			if data, err := json.Marshal(row.BusinessHours); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, data, weekCacheTTL).Err(); err != nil {
					s.logger.Warn("cache business hours failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return row.BusinessHours, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Week), nil
}

func (s *service) Get(ctx context.Context, companyID string) (BusinessHoursResponse, error) {
	week, err := s.GetWeek(ctx, companyID)
	if err != nil {
		return BusinessHoursResponse{}, err
	}
	return mapToResponse(companyID, week), nil
}

func (s *service) Update(ctx context.Context, companyID string, req UpdateBusinessHoursRequest) (BusinessHoursResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BusinessHoursResponse{}, businesshourserrors.ErrInvalidCompanyID
	}

	week := make(Week, len(req.Days))
	for i, d := range req.Days {
		week[i] = DayHours{IsOpen: d.IsOpen, OpenTime: d.OpenTime, CloseTime: d.CloseTime}
		if !d.IsOpen {
			week[i].OpenTime, week[i].CloseTime = "", ""
		}
	}
	if err := week.Validate(); err != nil {
		s.logger.Warn("update business hours rejected",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return BusinessHoursResponse{}, businesshourserrors.ErrInvalidHours
	}

	row := &CompanySettings{CompanyID: companyUUID, BusinessHours: week}
	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("update business hours persist failed", zap.String("company_id", companyID), zap.Error(err))
		return BusinessHoursResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := WeekCacheKey(companyID)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate business hours cache",
				zap.String("key", cacheKey),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("update business hours success", zap.String("company_id", companyID))
	return mapToResponse(companyID, week), nil
}

func mapToResponse(companyID string, week Week) BusinessHoursResponse {
	resp := BusinessHoursResponse{CompanyID: companyID, Days: make([]DayHoursResponse, len(week))}
	for i, d := range week {
		win, _ := d.Parse()
		resp.Days[i] = DayHoursResponse{
			Weekday:   time.Weekday(i).String(),
			IsOpen:    d.IsOpen,
			OpenTime:  d.OpenTime,
			CloseTime: d.CloseTime,
			Overnight: win.Wraps(),
		}
	}
	return resp
}
