package clinic

import "fmt"

// Hours describes the clinic's weekday operating window. The clinic is
// closed on Saturday and Sunday.
type Hours struct {
	OpenHour  int // 24-hour clock
	CloseHour int
}

// DefaultHours matches the published schedule: Mon-Fri 9 AM to 5 PM.
var DefaultHours = Hours{OpenHour: 9, CloseHour: 17}

// Describe renders the hours for spoken or written use.
func (h Hours) Describe() string {
	return fmt.Sprintf("Monday - Friday: %s - %s, Saturday & Sunday: Closed",
		formatHour(h.OpenHour), formatHour(h.CloseHour))
}

func formatHour(hour int) string {
	switch {
	case hour == 0:
		return "12:00 AM"
	case hour < 12:
		return fmt.Sprintf("%d:00 AM", hour)
	case hour == 12:
		return "12:00 PM"
	default:
		return fmt.Sprintf("%d:00 PM", hour-12)
	}
}
