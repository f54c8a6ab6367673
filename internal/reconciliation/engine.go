// Package reconciliation folds a day's shift and raw clock events into the one
// record a timesheet shows for that day.
package reconciliation

import (
	"time"

	"go-timeclock/internal/shift"
	"go-timeclock/internal/timeentry"
	"go-timeclock/internal/timezone"

	"github.com/google/uuid"
)

const (
	// LunchThresholdMinutes is the worked span above which a lunch break is reported.
	LunchThresholdMinutes = 330
	// LunchMinutes is reported alongside TotalMinutes and never subtracted from it.
	LunchMinutes = 30
)

type Source string

const (
	SourceActual   Source = "actual"
	SourceSchedule Source = "schedule"
	SourceNone     Source = "none"
)

type DayInput struct {
	Date  timezone.Date
	Shift *shift.Shift
	// Punches are the employee's events on Date, oldest first.
	Punches      []timeentry.TimeEntry
	Now          time.Time
	IsToday      bool
	ClosedForDay bool
}

type ReconciledDay struct {
	Date         timezone.Date `json:"date"`
	PunchIn      *time.Time    `json:"punch_in"`
	PunchOut     *time.Time    `json:"punch_out"`
	TotalMinutes int           `json:"total_minutes"`
	LunchMinutes int           `json:"lunch_minutes"`
	Source       Source        `json:"source"`
	IsOngoing    bool          `json:"is_ongoing"`
	HasData      bool          `json:"has_data"`
	ShiftID      *uuid.UUID    `json:"shift_id,omitempty"`
}

// Reconcile picks, in order: an ongoing punch-in today, a complete punch pair,
// the scheduled shift, a lone past punch, or nothing. Once the business day has
// closed, an open punch-in on a scheduled day no longer counts as ongoing.
func Reconcile(in DayInput) ReconciledDay {
	day := ReconciledDay{Date: in.Date, Source: SourceNone}
	if in.Shift != nil {
		id := in.Shift.ID
		day.ShiftID = &id
	}

	firstIn, lastOut := pair(in.Punches)

	// A punch-in after an earlier pair still means the employee is at work.
	if in.IsToday && latestIsPunchIn(in.Punches) && !(in.ClosedForDay && in.Shift != nil) {
		day = fill(day, SourceActual, firstIn.Timestamp, in.Now)
		day.PunchOut = nil
		day.IsOngoing = true
		return day
	}

	if firstIn != nil && lastOut != nil {
		return fill(day, SourceActual, firstIn.Timestamp, lastOut.Timestamp)
	}

	if in.Shift != nil && (len(in.Punches) == 0 || in.ClosedForDay) {
		return fill(day, SourceSchedule, in.Shift.StartTime, in.Shift.EndTime)
	}

	if len(in.Punches) > 0 {
		day.Source = SourceActual
		day.HasData = true
		if firstIn != nil {
			t := firstIn.Timestamp
			day.PunchIn = &t
		}
		return day
	}

	return day
}

// pair returns the day's first punch-in and the last punch-out after it.
func pair(punches []timeentry.TimeEntry) (firstIn, lastOut *timeentry.TimeEntry) {
	for i := range punches {
		p := &punches[i]
		switch {
		case p.EntryType == timeentry.PunchIn && firstIn == nil:
			firstIn = p
		case p.EntryType == timeentry.PunchOut && firstIn != nil && p.Timestamp.After(firstIn.Timestamp):
			lastOut = p
		}
	}
	return firstIn, lastOut
}

func latestIsPunchIn(punches []timeentry.TimeEntry) bool {
	if len(punches) == 0 {
		return false
	}
	latest := punches[0]
	for _, p := range punches[1:] {
		if !p.Timestamp.Before(latest.Timestamp) {
			latest = p
		}
	}
	return latest.IsPunchIn()
}

func fill(day ReconciledDay, source Source, start, end time.Time) ReconciledDay {
	start, end = start.UTC(), end.UTC()
	day.Source = source
	day.HasData = true
	day.PunchIn = &start
	day.PunchOut = &end
	day.TotalMinutes = elapsedMinutes(start, end)
	day.LunchMinutes = lunchFor(day.TotalMinutes)
	return day
}

func elapsedMinutes(start, end time.Time) int {
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

func lunchFor(totalMinutes int) int {
	if totalMinutes > LunchThresholdMinutes {
		return LunchMinutes
	}
	return 0
}
