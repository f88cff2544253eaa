package clinic

import (
	"testing"
	"time"
)

func toronto(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Toronto")
	if err != nil {
		t.Fatalf("load timezone: %v", err)
	}
	return loc
}

func TestNextBusinessDayFrom(t *testing.T) {
	loc := toronto(t)
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "Friday rolls to Monday",
			now:  time.Date(2025, 9, 19, 14, 0, 0, 0, loc), // Friday
			want: "2025-09-22",
		},
		{
			name: "Saturday rolls to Monday",
			now:  time.Date(2025, 9, 20, 10, 0, 0, 0, loc), // Saturday
			want: "2025-09-22",
		},
		{
			name: "Tuesday rolls to Wednesday",
			now:  time.Date(2025, 9, 16, 9, 30, 0, 0, loc), // Tuesday
			want: "2025-09-17",
		},
		{
			name: "Sunday rolls to Monday",
			now:  time.Date(2025, 9, 21, 23, 59, 0, 0, loc), // Sunday
			want: "2025-09-22",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextBusinessDayFrom(tt.now); got != tt.want {
				t.Errorf("NextBusinessDayFrom(%s) = %s, want %s", tt.now.Weekday(), got, tt.want)
			}
		})
	}
}

func TestCalendarFormats(t *testing.T) {
	cal, err := NewCalendar("America/Toronto")
	if err != nil {
		t.Fatalf("NewCalendar: %v", err)
	}
	fixed := time.Date(2025, 9, 22, 15, 30, 0, 0, toronto(t))
	cal.now = func() time.Time { return fixed }

	if got := cal.CurrentSpoken(); got != "Monday, September 22, 2025 at 3:30 PM" {
		t.Errorf("CurrentSpoken() = %q", got)
	}
	if got := cal.CurrentCompact(); got != "September 22, 2025, 3:30 PM" {
		t.Errorf("CurrentCompact() = %q", got)
	}
	if got := cal.NextBusinessDay(); got != "2025-09-23" {
		t.Errorf("NextBusinessDay() = %q, want 2025-09-23", got)
	}
}

func TestNewCalendarBadZone(t *testing.T) {
	if _, err := NewCalendar("Not/AZone"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestHoursDescribe(t *testing.T) {
	got := DefaultHours.Describe()
	want := "Monday - Friday: 9:00 AM - 5:00 PM, Saturday & Sunday: Closed"
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
