package app

import (
	"go-timeclock/internal/autopunch"
	"go-timeclock/internal/businesshours"
	"go-timeclock/internal/messaging/kafka"
	"go-timeclock/internal/normalizer"
	"go-timeclock/internal/profile"
	"go-timeclock/internal/rbac"
	"go-timeclock/internal/rbac/infra"
	"go-timeclock/internal/reconciliation"
	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"
	"go-timeclock/internal/timezone"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// modules is the wired object graph shared by the API and the cron binary.
type modules struct {
	conv     *timezone.Converter
	resolver *businesshours.Resolver

	shiftRepo         shift.Repository
	timeEntryRepo     timeentry.Repository
	profileRepo       profile.Repository
	businessHoursRepo businesshours.Repository
	outboxRepo        kafka.OutboxRepository

	rbacService           rbac.Service
	businessHoursService  businesshours.Service
	timeEntryService      timeentry.Service
	reconciliationService reconciliation.Service
	normalizerService     normalizer.Service
	autoPunchService      autopunch.Service
}

func buildModules(in *Infra, logger *zap.Logger) (*modules, error) {
	cfg := in.Config

	conv, err := timezone.NewConverter(cfg.BusinessTimezone)
	if err != nil {
		return nil, err
	}

	m := &modules{
		conv:     conv,
		resolver: businesshours.NewResolver(conv),

		// --- Repositories ---
		shiftRepo:         shift.NewRepository(in.GormDB),
		timeEntryRepo:     timeentry.NewRepository(in.GormDB),
		profileRepo:       profile.NewRepository(in.GormDB),
		businessHoursRepo: businesshours.NewRepository(in.GormDB),
		outboxRepo:        kafka.NewOutboxRepository(in.SQLDB),
	}

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return nil, err
	}
	m.rbacService = rbac.NewService(rbac.NewRepository(in.GormDB), enforcer, logger)

	// --- Services ---
	m.businessHoursService = businesshours.NewService(m.businessHoursRepo, in.Redis, logger)
	m.timeEntryService = timeentry.NewService(in.SQLDB, m.timeEntryRepo, conv, logger)
	m.reconciliationService = reconciliation.NewService(
		m.shiftRepo,
		m.timeEntryRepo,
		m.profileRepo,
		m.businessHoursService,
		m.resolver,
		logger,
	)
	m.normalizerService = normalizer.NewService(in.SQLDB, m.shiftRepo, m.timeEntryRepo, conv, logger)

	// --- Jobs ---
	punchIn := autopunch.NewPunchInJob(
		m.shiftRepo,
		m.timeEntryRepo,
		m.profileRepo,
		kafka.NewOutboxNotifier(m.outboxRepo),
		cfg.Scheduling,
		logger,
	)
	punchOut := autopunch.NewPunchOutJob(
		m.timeEntryRepo,
		m.shiftRepo,
		m.businessHoursRepo,
		m.resolver,
		m.normalizerService,
		cfg.Scheduling,
		logger,
	)
	m.autoPunchService = autopunch.NewService(punchIn, punchOut)

	return m, nil
}

func (m *modules) registerRoutes(router *gin.Engine, in *Infra) {
	cfg := in.Config

	// --- Handlers ---
	businessHoursHandler := businesshours.NewHandler(m.businessHoursService)
	timeEntryHandler := timeentry.NewHandler(m.timeEntryService)
	reconciliationHandler := reconciliation.NewHandler(m.reconciliationService, m.rbacService, m.conv)
	autoPunchHandler := autopunch.NewHandler(m.autoPunchService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		businesshours.RegisterRoutes(api, businessHoursHandler, m.rbacService, cfg.JWTSecret)
		timeentry.RegisterRoutes(api, timeEntryHandler, m.rbacService, in.Redis, cfg.JWTSecret)
		reconciliation.RegisterRoutes(api, reconciliationHandler, m.rbacService, cfg.JWTSecret)
	}

	autopunch.RegisterRoutes(router, autoPunchHandler, cfg.CronSecret)
}
