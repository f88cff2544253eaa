// Package clinic holds the clinic-facing data the assistant works from:
// the business calendar, operating hours, and the instruction script.
package clinic

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for booking dates.
	DateLayout = "2006-01-02"

	// SpokenLayout renders a timestamp the way the assistant reads it out.
	SpokenLayout = "Monday, January 2, 2006 at 3:04 PM"

	// CompactLayout is the shorter form used in session-start context.
	CompactLayout = "January 2, 2006, 3:04 PM"
)

// Calendar answers date questions in the clinic's timezone.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar builds a Calendar for the given IANA timezone name.
func NewCalendar(timezone string) (*Calendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("clinic: load timezone %q: %w", timezone, err)
	}
	return &Calendar{loc: loc, now: time.Now}, nil
}

// NextBusinessDay returns the first weekday strictly after now, formatted
// as YYYY-MM-DD. Saturdays and Sundays are skipped.
func (c *Calendar) NextBusinessDay() string {
	return NextBusinessDayFrom(c.now().In(c.loc))
}

// NextBusinessDayFrom is NextBusinessDay anchored at an explicit instant.
func NextBusinessDayFrom(t time.Time) string {
	day := t.AddDate(0, 0, 1)
	for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return day.Format(DateLayout)
}

// CurrentSpoken returns the current clinic time in the spoken format.
func (c *Calendar) CurrentSpoken() string {
	return c.now().In(c.loc).Format(SpokenLayout)
}

// CurrentCompact returns the current clinic time in the compact format.
func (c *Calendar) CurrentCompact() string {
	return c.now().In(c.loc).Format(CompactLayout)
}
