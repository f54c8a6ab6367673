package autopunch

import (
	"context"
	"slices"
	"time"

	"go-timeclock/internal/businesshours"
	"go-timeclock/internal/config"
	"go-timeclock/internal/normalizer"
	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"
	"go-timeclock/internal/timezone"

	"go.uber.org/zap"
)

// StaleOffset separates a synthetic punch-out from the punch-in it closes.
const StaleOffset = time.Second

type PunchOutJob struct {
	entries    timeentry.Repository
	shifts     shift.Repository
	hours      businesshours.Repository
	resolver   *businesshours.Resolver
	normalizer normalizer.Service
	sched      config.Scheduling
	now        func() time.Time
	logger     *zap.Logger
}

func NewPunchOutJob(
	entries timeentry.Repository,
	shifts shift.Repository,
	hours businesshours.Repository,
	resolver *businesshours.Resolver,
	norm normalizer.Service,
	sched config.Scheduling,
	logger ...*zap.Logger,
) *PunchOutJob {
	l := zap.L().Named("autopunch.punch_out")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("autopunch.punch_out")
	}
	return &PunchOutJob{
		entries:    entries,
		shifts:     shifts,
		hours:      hours,
		resolver:   resolver,
		normalizer: norm,
		sched:      sched,
		now:        time.Now,
		logger:     l,
	}
}

// Run closes stale punches from earlier days, then punches out everyone still
// clocked in at tenants whose closing boundary has passed, then normalizes the
// affected business dates.
func (j *PunchOutJob) Run(ctx context.Context, req PunchOutRequest) (PunchOutSummary, error) {
	ctx, runID := ensureRunID(ctx)
	now := j.now().UTC()
	log := j.logger.With(zap.String("run_id", runID))
	sum := PunchOutSummary{
		RunID:           runID,
		RanAt:           now,
		NormalizedDates: []timezone.Date{},
		Punches:         []PunchRecord{},
	}

	if req.Force && req.TargetDate != nil {
		log.Info("forced normalization", zap.Stringer("date", *req.TargetDate))
		j.normalize(ctx, log, &sum, []timezone.Date{*req.TargetDate})
		return sum, nil
	}

	j.closeStale(ctx, log, now, &sum)

	settings, err := j.hours.FindAll(ctx)
	if err != nil {
		log.Error("load business hours failed", zap.Error(err))
		return sum, err
	}

	dates := make(map[timezone.Date]struct{})
	for _, s := range settings {
		sum.TenantsChecked++
		companyID := s.CompanyID.String()

		res := j.resolver.Resolve(s.BusinessHours, now)
		if !res.Configured {
			sum.TenantsSkipped++
			log.Warn("business hours not configured, skipping tenant", zap.String("company_id", companyID))
			continue
		}
		shouldPunchOut, isLate := res.PunchOutWindow(now, j.sched.PunchOutGraceWindow, j.sched.PunchOutLateThreshold)
		if !shouldPunchOut && !isLate {
			sum.TenantsSkipped++
			continue
		}

		if j.closeTenant(ctx, log, now, companyID, res, isLate, &sum) > 0 {
			dates[res.BusinessDate] = struct{}{}
		}
	}

	if req.TargetDate != nil {
		dates[*req.TargetDate] = struct{}{}
	}
	j.normalize(ctx, log, &sum, sortedDates(dates))

	log.Info("auto punch-out run finished",
		zap.Int("stale_closed", sum.StaleClosedCount),
		zap.Int("tenants_checked", sum.TenantsChecked),
		zap.Int("tenants_skipped", sum.TenantsSkipped),
		zap.Int("processed", sum.ProcessedCount),
		zap.Int("normalized", sum.NormalizedCount),
		zap.Int("errors", sum.ErrorCount),
	)
	return sum, nil
}

// closeStale punches out every open punch-in dated before local today.
func (j *PunchOutJob) closeStale(ctx context.Context, log *zap.Logger, now time.Time, sum *PunchOutSummary) {
	conv := j.resolver.Converter()
	todayStart := conv.StartOfDay(conv.LocalDate(now))

	latest, err := j.entries.FindLatestPerEmployee(ctx, "")
	if err != nil {
		sum.ErrorCount++
		log.Error("load latest entries for stale cleanup failed", zap.Error(err))
		return
	}

	for _, in := range timeentry.ClockedIn(timeentry.LatestByEmployee(latest)) {
		if !in.Timestamp.Before(todayStart) {
			continue
		}
		rec, err := j.insertPunchOut(ctx, in, in.Timestamp.Add(StaleOffset), "", ReasonStale)
		if err != nil {
			sum.ErrorCount++
			log.Error("stale punch-out failed", zap.String("employee_id", in.EmployeeID.String()), zap.Error(err))
			continue
		}
		sum.StaleClosedCount++
		sum.Punches = append(sum.Punches, rec)
	}
}

func (j *PunchOutJob) closeTenant(
	ctx context.Context,
	log *zap.Logger,
	now time.Time,
	companyID string,
	res businesshours.Resolution,
	isLate bool,
	sum *PunchOutSummary,
) int {
	log = log.With(zap.String("company_id", companyID), zap.Stringer("business_date", res.BusinessDate))

	latest, err := j.entries.FindLatestPerEmployee(ctx, companyID)
	if err != nil {
		sum.ErrorCount++
		log.Error("load clocked-in employees failed", zap.Error(err))
		return 0
	}

	dayStart, dayEnd := j.resolver.Converter().DayBounds(res.BusinessDate)
	processed := 0
	for _, in := range timeentry.ClockedIn(timeentry.LatestByEmployee(latest)) {
		employeeID := in.EmployeeID.String()

		at, shiftID, reason := now, "", ReasonLate
		if !isLate {
			shifts, err := j.shifts.FindByEmployeeInRange(ctx, companyID, employeeID, dayStart, dayEnd)
			if err != nil {
				sum.ErrorCount++
				log.Error("load shift failed", zap.String("employee_id", employeeID), zap.Error(err))
				continue
			}
			at, shiftID, reason = punchOutTime(shifts, in.Timestamp, now)
		}

		rec, err := j.insertPunchOut(ctx, in, at, shiftID, reason)
		if err != nil {
			sum.ErrorCount++
			log.Error("auto punch-out failed", zap.String("employee_id", employeeID), zap.Error(err))
			continue
		}
		processed++
		sum.ProcessedCount++
		sum.Punches = append(sum.Punches, rec)
	}
	return processed
}

// punchOutTime uses the end of the shift the employee is working, capped at
// now. Without a usable shift the punch-out happens now.
func punchOutTime(shifts []shift.Shift, punchedIn, now time.Time) (time.Time, string, string) {
	if len(shifts) == 0 {
		return now, "", ReasonNoShift
	}
	sh := shifts[len(shifts)-1]
	for _, candidate := range shifts {
		if candidate.EndTime.After(punchedIn) {
			sh = candidate
			break
		}
	}
	if sh.EndTime.Before(punchedIn) {
		return now, sh.ID.String(), ReasonNoShift
	}
	if sh.EndTime.After(now) {
		return now, sh.ID.String(), ReasonShiftEnd
	}
	return sh.EndTime, sh.ID.String(), ReasonShiftEnd
}

func (j *PunchOutJob) insertPunchOut(ctx context.Context, in timeentry.TimeEntry, at time.Time, shiftID, reason string) (PunchRecord, error) {
	entry := timeentry.NewAutomatic(in.EmployeeID, in.CompanyID, timeentry.PunchOut, at)
	if err := j.entries.Create(ctx, entry); err != nil {
		return PunchRecord{}, err
	}
	return PunchRecord{
		EmployeeID: in.EmployeeID.String(),
		CompanyID:  in.CompanyID.String(),
		ShiftID:    shiftID,
		EntryID:    entry.ID.String(),
		Timestamp:  entry.Timestamp,
		Reason:     reason,
	}, nil
}

func (j *PunchOutJob) normalize(ctx context.Context, log *zap.Logger, sum *PunchOutSummary, dates []timezone.Date) {
	if j.normalizer == nil {
		return
	}
	for _, d := range dates {
		res, err := j.normalizer.NormalizeDate(ctx, d)
		if err != nil {
			sum.ErrorCount++
			log.Error("normalize date failed", zap.Stringer("date", d), zap.Error(err))
			continue
		}
		sum.NormalizedDates = append(sum.NormalizedDates, d)
		sum.NormalizedCount += res.Normalized
		sum.ErrorCount += res.Errors
	}
}

func sortedDates(set map[timezone.Date]struct{}) []timezone.Date {
	out := make([]timezone.Date, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b timezone.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		}
		return 0
	})
	return out
}
