// Package timezone converts between stored UTC instants and the business's local
// civil time. All zone math goes through Converter so DST is handled by the tz database.
package timezone

import (
	"fmt"
	"time"

	"github.com/maypok86/otter/v2"
)

var locations = otter.Must(&otter.Options[string, *time.Location]{
	MaximumSize: 64,
})

// LoadLocation is time.LoadLocation behind a small cache; zoneinfo reads hit disk.
func LoadLocation(name string) (*time.Location, error) {
	if loc, ok := locations.GetIfPresent(name); ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	locations.Set(name, loc)
	return loc, nil
}

type Converter struct {
	loc *time.Location
}

func NewConverter(name string) (*Converter, error) {
	loc, err := LoadLocation(name)
	if err != nil {
		return nil, err
	}
	return &Converter{loc: loc}, nil
}

// MustConverter panics on unknown zones; for wiring constants and tests.
func MustConverter(name string) *Converter {
	c, err := NewConverter(name)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Converter) Location() *time.Location {
	return c.loc
}

func (c *Converter) ToLocal(instant time.Time) CivilTime {
	l := instant.In(c.loc)
	return CivilTime{
		Date:   dateOf(l),
		Clock:  TimeOfDay{Hour: l.Hour(), Minute: l.Minute()},
		Second: l.Second(),
	}
}

// ToUTC resolves a local date and wall-clock time. Times inside a DST gap are
// normalized forward by time.Date; ambiguous fall-back times pick the first occurrence.
func (c *Converter) ToUTC(date Date, clock TimeOfDay) time.Time {
	return time.Date(date.Year, date.Month, date.Day, clock.Hour, clock.Minute, 0, 0, c.loc).UTC()
}

func (c *Converter) LocalDate(instant time.Time) Date {
	return dateOf(instant.In(c.loc))
}

func (c *Converter) StartOfDay(date Date) time.Time {
	return c.ToUTC(date, TimeOfDay{})
}

// DayBounds returns [start, end) of a local calendar day; 23h or 25h on DST days.
func (c *Converter) DayBounds(date Date) (time.Time, time.Time) {
	return c.StartOfDay(date), c.StartOfDay(date.AddDays(1))
}
