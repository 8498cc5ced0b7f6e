package tz

import (
	"time"

	"github.com/flachnetz/timeutil/lib/clock"
)

// Chronology is the ISO-8601 calendar bound to a single zone. It converts
// between instants and the calendar fields of that zone.
type Chronology struct {
	id       string
	location *time.Location
}

// Fields are the calendar fields of an instant in a chronology.
type Fields struct {
	Year        int
	Month       time.Month
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int

	Weekday time.Weekday
	YearDay int

	// ISO week numbering, the week year can differ from Year around new year.
	WeekYear int
	Week     int

	Offset time.Duration
}

func newChronology(id string, location *time.Location) *Chronology {
	return &Chronology{id: id, location: location}
}

func (c *Chronology) ID() string {
	return c.id
}

func (c *Chronology) Zone() *time.Location {
	return c.location
}

func (c *Chronology) String() string {
	return "ISOChronology[" + c.id + "]"
}

// Now returns the current time of the given clock in this zone.
// A nil clock reads the global clock.
func (c *Chronology) Now(clk clock.Clock) time.Time {
	if clk == nil {
		clk = clock.GlobalClock
	}

	return clk.Now().In(c.location)
}

func (c *Chronology) FromMillis(millis int64) time.Time {
	return time.UnixMilli(millis).In(c.location)
}

func (c *Chronology) Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// Date returns the instant for the given local fields. Fields out of range are
// normalized, local times falling into a gap or overlap behave like time.Date.
func (c *Chronology) Date(year int, month time.Month, day, hour, minute, second, millis int) time.Time {
	return time.Date(year, month, day, hour, minute, second, millis*int(time.Millisecond), c.location)
}

func (c *Chronology) Fields(t time.Time) Fields {
	t = t.In(c.location)

	weekYear, week := t.ISOWeek()

	return Fields{
		Year:        t.Year(),
		Month:       t.Month(),
		Day:         t.Day(),
		Hour:        t.Hour(),
		Minute:      t.Minute(),
		Second:      t.Second(),
		Millisecond: t.Nanosecond() / int(time.Millisecond),
		Weekday:     t.Weekday(),
		YearDay:     t.YearDay(),
		WeekYear:    weekYear,
		Week:        week,
		Offset:      c.Offset(t),
	}
}

// StartOfDay returns the first instant of the local day containing t.
func (c *Chronology) StartOfDay(t time.Time) time.Time {
	year, month, day := t.In(c.location).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, c.location)
}

// Offset returns the offset to UTC that is in effect at t.
func (c *Chronology) Offset(t time.Time) time.Duration {
	_, seconds := t.In(c.location).Zone()
	return time.Duration(seconds) * time.Second
}
