package solar

import (
	"time"
)

// Golden hour elevation thresholds in degrees. The window opens when the
// sun descends through the upper threshold and closes when it passes the
// lower one.
const (
	DefaultUpperElevation = 6.0
	DefaultLowerElevation = -4.0
)

// The evening search interval: the scan starts mid-afternoon local time
// so it always catches the descending crossing, and ends just before
// midnight.
const (
	searchStartHour = 15
	searchEndHour   = 23
	searchEndMinute = 59
	scanStepMinutes = 1
)

// Window is a golden-hour time interval. Start and End carry the
// location's timezone.
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the length of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the window, inclusive at both
// ends.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// WindowConfig holds the elevation thresholds for the golden-hour search.
type WindowConfig struct {
	// UpperElevation is the elevation (degrees) at which the window
	// opens. Default: 6.
	UpperElevation float64

	// LowerElevation is the elevation (degrees) at which the window
	// closes. Default: -4.
	LowerElevation float64
}

// DefaultWindowConfig returns the standard golden-hour thresholds.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		UpperElevation: DefaultUpperElevation,
		LowerElevation: DefaultLowerElevation,
	}
}

// FindGoldenHour locates the evening golden-hour window for a date and
// location using the default thresholds.
func FindGoldenHour(date time.Time, lat, lon float64, loc *time.Location) Window {
	return FindGoldenHourWithConfig(date, lat, lon, loc, DefaultWindowConfig())
}

// FindGoldenHourWithConfig scans the afternoon-to-night interval at
// one-minute resolution and returns the interval during which the sun
// descends from the upper threshold through the lower one.
//
// High-latitude edge cases fall back asymmetrically so the window is
// always non-empty: if the sun never descends to the upper threshold the
// window opens at the scan start; if it never reaches the lower threshold
// the window closes at the scan end.
func FindGoldenHourWithConfig(date time.Time, lat, lon float64, loc *time.Location, cfg WindowConfig) Window {
	if cfg.UpperElevation == 0 && cfg.LowerElevation == 0 {
		cfg = DefaultWindowConfig()
	}

	year, month, day := date.Date()
	scanStart := time.Date(year, month, day, searchStartHour, 0, 0, 0, loc)
	scanEnd := time.Date(year, month, day, searchEndHour, searchEndMinute, 0, 0, loc)

	var start, end time.Time
	step := scanStepMinutes * time.Minute

	for t := scanStart; !t.After(scanEnd); t = t.Add(step) {
		elev := Elevation(t, lat, lon)

		if start.IsZero() && elev <= cfg.UpperElevation {
			start = t
		}
		if !start.IsZero() && elev <= cfg.LowerElevation {
			end = t
			break
		}
	}

	if start.IsZero() {
		start = scanStart
	}
	if end.IsZero() {
		end = scanEnd
	}

	return Window{Start: start, End: end}
}
