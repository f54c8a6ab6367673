package businesshours

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-timeclock/internal/timezone"
)

// DayHours is one weekday entry as stored in company_settings.business_hours.
type DayHours struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// Week holds seven entries indexed by time.Weekday (0 = Sunday).
type Week []DayHours

// Window is a parsed DayHours.
type Window struct {
	IsOpen bool
	Open   timezone.TimeOfDay
	Close  timezone.TimeOfDay
}

// Wraps reports whether the window closes on the following calendar day.
func (w Window) Wraps() bool {
	return w.IsOpen && w.Close.Before(w.Open)
}

func (d DayHours) Parse() (Window, error) {
	if !d.IsOpen {
		return Window{}, nil
	}
	open, err := timezone.ParseTimeOfDay(d.OpenTime)
	if err != nil {
		return Window{}, err
	}
	closeAt, err := timezone.ParseTimeOfDay(d.CloseTime)
	if err != nil {
		return Window{}, err
	}
	if open == closeAt {
		return Window{}, fmt.Errorf("open and close time are both %s", open)
	}
	return Window{IsOpen: true, Open: open, Close: closeAt}, nil
}

func (w Week) Validate() error {
	if len(w) != 7 {
		return fmt.Errorf("business hours need 7 weekday entries, got %d", len(w))
	}
	for i, d := range w {
		if _, err := d.Parse(); err != nil {
			return fmt.Errorf("%s: %w", time.Weekday(i), err)
		}
	}
	return nil
}

func (w Week) Window(day time.Weekday) (Window, error) {
	if int(day) >= len(w) {
		return Window{}, fmt.Errorf("no business hours for %s", day)
	}
	return w[day].Parse()
}

func (w Week) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	return json.Marshal(w)
}

func (w *Week) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*w = nil
		return nil
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	default:
		return errors.New("business_hours: unsupported column type")
	}
}
