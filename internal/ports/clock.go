package ports

import "time"

// DayWindow is the caller-supplied definition of "today": a half-open
// interval [Start, End) on the caller's local calendar.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w DayWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Contract for obtaining the current time and the local day boundary.
type Clock interface {
	Now() time.Time
	// Today returns the local calendar-day window containing Now().
	Today() DayWindow
}

// SystemClock implements Clock using the host's local time zone.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Today() DayWindow {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return DayWindow{Start: start, End: start.AddDate(0, 0, 1)}
}
