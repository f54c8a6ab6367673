package reconciliation

import (
	"fmt"
	"io"
	"time"

	"go-timeclock/internal/timezone"

	"github.com/xuri/excelize/v2"
)

const timesheetSheet = "Timesheet"

var timesheetHeader = []any{"Date", "Punch In", "Punch Out", "Total Minutes", "Lunch Minutes", "Source", "Ongoing"}

// WriteXLSX renders a timesheet as a single-sheet workbook with clock times in
// the business timezone.
func WriteXLSX(w io.Writer, conv *timezone.Converter, ts TimesheetResponse) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), timesheetSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(timesheetSheet, "A1", &timesheetHeader); err != nil {
		return err
	}

	for i, d := range ts.Days {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			d.Date.String(),
			localClock(conv, d.PunchIn),
			localClock(conv, d.PunchOut),
			d.TotalMinutes,
			d.LunchMinutes,
			string(d.Source),
			d.IsOngoing,
		}
		if err := f.SetSheetRow(timesheetSheet, cell, &row); err != nil {
			return err
		}
	}

	totalCell, err := excelize.CoordinatesToCellName(1, len(ts.Days)+3)
	if err != nil {
		return err
	}
	totalRow := []any{"Total", "", "", ts.TotalMinutes}
	if err := f.SetSheetRow(timesheetSheet, totalCell, &totalRow); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write timesheet workbook: %w", err)
	}
	return nil
}

func localClock(conv *timezone.Converter, t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(conv.Location()).Format("15:04")
}
