package businesshours

import (
	"time"

	"go-timeclock/internal/timezone"
)

// WraparoundHold is how long after a wrapped window's close the previous day's
// boundary keeps applying. It has to outlast the late threshold so the
// escalated punch-out still sees the right boundary.
const WraparoundHold = 30 * time.Minute

type Resolution struct {
	// Configured is false when the week is missing or malformed.
	Configured bool

	LocalNow timezone.CivilTime
	// BusinessDate is the date whose window ClosingBoundary belongs to.
	BusinessDate    timezone.Date
	IsOpenNow       bool
	ClosedToday     bool
	FromPreviousDay bool
	ClosingBoundary time.Time
}

// PunchOutWindow reports whether now sits in the normal grace window after the
// boundary, and whether it is past the escalation threshold.
func (r Resolution) PunchOutWindow(now time.Time, grace, late time.Duration) (shouldPunchOut, isLate bool) {
	if !r.Configured {
		return false, false
	}
	shouldPunchOut = !now.Before(r.ClosingBoundary) && !now.After(r.ClosingBoundary.Add(grace))
	isLate = !now.Before(r.ClosingBoundary.Add(late))
	return shouldPunchOut, isLate
}

type Resolver struct {
	conv *timezone.Converter
}

func NewResolver(conv *timezone.Converter) *Resolver {
	return &Resolver{conv: conv}
}

func (r *Resolver) Converter() *timezone.Converter {
	return r.conv
}

func (r *Resolver) Resolve(week Week, now time.Time) Resolution {
	local := r.conv.ToLocal(now)
	res := Resolution{LocalNow: local, BusinessDate: local.Date}
	if week.Validate() != nil {
		return res
	}
	res.Configured = true

	today := local.Date
	yesterday := today.AddDays(-1)

	// Early morning may still belong to yesterday's wrapped window, even when
	// today is closed.
	if prev, _ := week.Window(yesterday.Weekday()); prev.Wraps() {
		boundary := r.conv.ToUTC(today, prev.Close)
		if now.Before(boundary.Add(WraparoundHold)) {
			res.BusinessDate = yesterday
			res.FromPreviousDay = true
			res.ClosingBoundary = boundary
			res.IsOpenNow = now.Before(boundary)
			return res
		}
	}

	win, _ := week.Window(today.Weekday())
	if !win.IsOpen {
		res.ClosedToday = true
		res.ClosingBoundary = r.conv.StartOfDay(today)
		return res
	}

	res.ClosingBoundary = r.boundary(today, win)
	openAt := r.conv.ToUTC(today, win.Open)
	res.IsOpenNow = !now.Before(openAt) && now.Before(res.ClosingBoundary)
	return res
}

// BoundaryFor returns the closing instant of date's window. ok is false when the
// business is closed that weekday or the week is not configured.
func (r *Resolver) BoundaryFor(week Week, date timezone.Date) (boundary time.Time, ok bool) {
	if week.Validate() != nil {
		return time.Time{}, false
	}
	win, _ := week.Window(date.Weekday())
	if !win.IsOpen {
		return time.Time{}, false
	}
	return r.boundary(date, win), true
}

// ClosedForDay reports whether date's business day is over at now. Weekdays
// marked closed count as closed all day. Without configuration the local
// calendar day end is used.
func (r *Resolver) ClosedForDay(week Week, date timezone.Date, now time.Time) bool {
	if week.Validate() != nil {
		_, end := r.conv.DayBounds(date)
		return !now.Before(end)
	}
	boundary, ok := r.BoundaryFor(week, date)
	if !ok {
		return true
	}
	return !now.Before(boundary)
}

func (r *Resolver) boundary(date timezone.Date, win Window) time.Time {
	if win.Wraps() {
		return r.conv.ToUTC(date.AddDays(1), win.Close)
	}
	return r.conv.ToUTC(date, win.Close)
}
