package app

import (
	"context"
	"fmt"

	"go-timeclock/internal/autopunch"
	"go-timeclock/internal/bootstrap"
	"go-timeclock/internal/config"
	"go-timeclock/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	JobAutoPunchIn  = "auto-punch-in"
	JobAutoPunchOut = "auto-punch-out"
)

// RunCron executes one scheduler job and returns its summary. It is the
// command-line twin of the /internal/cron endpoints.
func RunCron(ctx context.Context, cfg *config.Config, job string, req autopunch.PunchOutRequest) (any, error) {
	logger := zap.L().Named("app.cron")

	// redis backs only the HTTP-side caches
	in, err := connectInfra(ctx, cfg, false)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	m, err := buildModules(in, logger)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	ctx = contextutil.WithRunID(ctx, runID)
	audit := bootstrap.NewStdoutAuditLogger(logger)

	var summary any
	switch job {
	case JobAutoPunchIn:
		summary, err = m.autoPunchService.AutoPunchIn(ctx)
	case JobAutoPunchOut:
		summary, err = m.autoPunchService.AutoPunchOut(ctx, req)
	default:
		return nil, fmt.Errorf("unknown job %q", job)
	}

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  "CRON_RUN",
		Message: job,
		Meta: map[string]any{
			"failed": err != nil,
		},
	})
	return summary, err
}
