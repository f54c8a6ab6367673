package autopunch

import (
	"context"
	"errors"
	"time"

	"go-timeclock/internal/config"
	"go-timeclock/internal/events"
	"go-timeclock/internal/profile"
	"go-timeclock/internal/shared/contextutil"
	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"
	timeentryerrors "go-timeclock/internal/timeentry/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier receives the downstream trigger after an automatic punch-in.
type Notifier interface {
	NotifyAutoPunchIn(ctx context.Context, evt events.AutoPunchInEvent) error
}

type PunchInJob struct {
	shifts   shift.Repository
	entries  timeentry.Repository
	profiles profile.Repository
	notifier Notifier
	sched    config.Scheduling
	now      func() time.Time
	logger   *zap.Logger
}

func NewPunchInJob(
	shifts shift.Repository,
	entries timeentry.Repository,
	profiles profile.Repository,
	notifier Notifier,
	sched config.Scheduling,
	logger ...*zap.Logger,
) *PunchInJob {
	l := zap.L().Named("autopunch.punch_in")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("autopunch.punch_in")
	}
	return &PunchInJob{
		shifts:   shifts,
		entries:  entries,
		profiles: profiles,
		notifier: notifier,
		sched:    sched,
		now:      time.Now,
		logger:   l,
	}
}

type candidateOutcome int

const (
	outcomeProcessed candidateOutcome = iota
	outcomeAlreadyPunchedIn
	outcomeDuplicate
)

// Run clocks in every auto-punch shift that starts within the look-ahead or is
// already running. A failing shift is counted and skipped.
func (j *PunchInJob) Run(ctx context.Context) (PunchInSummary, error) {
	ctx, runID := ensureRunID(ctx)
	now := j.now().UTC()
	log := j.logger.With(zap.String("run_id", runID))
	sum := PunchInSummary{RunID: runID, RanAt: now, Punches: []PunchRecord{}}

	candidates, err := j.shifts.FindAutoPunchInCandidates(ctx, now, j.sched.PunchInLookAhead)
	if err != nil {
		log.Error("load auto punch-in candidates failed", zap.Error(err))
		return sum, err
	}

	for _, sh := range candidates {
		sum.ShiftsChecked++
		rec, outcome, err := j.punchIn(ctx, sh)
		if err != nil {
			sum.ErrorCount++
			log.Error("auto punch-in failed",
				zap.String("shift_id", sh.ID.String()),
				zap.String("employee_id", sh.EmployeeID.String()),
				zap.Error(err),
			)
			continue
		}

		switch outcome {
		case outcomeAlreadyPunchedIn:
			sum.AlreadyPunchedInCount++
		case outcomeDuplicate:
			sum.DuplicateCount++
		default:
			sum.ProcessedCount++
			sum.Punches = append(sum.Punches, rec)
			j.notify(ctx, log, sh, rec)
		}
	}

	log.Info("auto punch-in run finished",
		zap.Int("shifts_checked", sum.ShiftsChecked),
		zap.Int("processed", sum.ProcessedCount),
		zap.Int("already_punched_in", sum.AlreadyPunchedInCount),
		zap.Int("duplicates", sum.DuplicateCount),
		zap.Int("errors", sum.ErrorCount),
	)
	return sum, nil
}

func (j *PunchInJob) punchIn(ctx context.Context, sh shift.Shift) (PunchRecord, candidateOutcome, error) {
	if !sh.Valid() {
		return PunchRecord{}, 0, errors.New("shift ends before it starts")
	}

	companyID, err := j.resolveCompany(ctx, sh)
	if err != nil {
		return PunchRecord{}, 0, err
	}

	employeeID := sh.EmployeeID.String()
	latest, err := j.entries.FindLatestByEmployee(ctx, employeeID)
	if err != nil {
		return PunchRecord{}, 0, err
	}
	if latest != nil && latest.IsPunchIn() {
		return PunchRecord{}, outcomeAlreadyPunchedIn, nil
	}

	exists, err := j.entries.ExistsAutomaticPunchIn(ctx, employeeID, sh.StartTime, sh.StartTime.Add(j.sched.DuplicateWindow))
	if err != nil {
		return PunchRecord{}, 0, err
	}
	if exists {
		return PunchRecord{}, outcomeDuplicate, nil
	}

	entry := timeentry.NewAutomatic(sh.EmployeeID, companyID, timeentry.PunchIn, sh.StartTime)
	if err := j.entries.Create(ctx, entry); err != nil {
		if errors.Is(err, timeentryerrors.ErrDuplicateEntry) {
			return PunchRecord{}, outcomeDuplicate, nil
		}
		return PunchRecord{}, 0, err
	}

	return PunchRecord{
		EmployeeID: employeeID,
		CompanyID:  companyID.String(),
		ShiftID:    sh.ID.String(),
		EntryID:    entry.ID.String(),
		Timestamp:  entry.Timestamp,
	}, outcomeProcessed, nil
}

// resolveCompany prefers the shift's own tenant and falls back to the
// employee's profile.
func (j *PunchInJob) resolveCompany(ctx context.Context, sh shift.Shift) (uuid.UUID, error) {
	if id := sh.CompanyIDString(); id != "" {
		return *sh.CompanyID, nil
	}
	raw, err := j.profiles.FindCompanyID(ctx, sh.EmployeeID.String())
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(raw)
}

// notify is best effort; the punch-in stands either way.
func (j *PunchInJob) notify(ctx context.Context, log *zap.Logger, sh shift.Shift, rec PunchRecord) {
	if j.notifier == nil {
		return
	}
	err := j.notifier.NotifyAutoPunchIn(ctx, events.AutoPunchInEvent{
		EntryID:    rec.EntryID,
		EmployeeID: rec.EmployeeID,
		CompanyID:  rec.CompanyID,
		ShiftID:    sh.ID.String(),
		Timestamp:  rec.Timestamp,
		RunID:      contextutil.GetRunID(ctx),
	})
	if err != nil {
		log.Warn("auto punch-in side effect failed",
			zap.String("employee_id", rec.EmployeeID),
			zap.Error(err),
		)
	}
}

func ensureRunID(ctx context.Context) (context.Context, string) {
	if id := contextutil.GetRunID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return contextutil.WithRunID(ctx, id), id
}
