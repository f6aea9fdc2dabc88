package solar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetcast/sunsetcast/internal/solar"
)

func TestFindGoldenHour_KnownLocations(t *testing.T) {
	testDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		lat  float64
		lon  float64
		tz   string
	}{
		{"Toronto", 43.688763, -79.29532, "America/Toronto"},
		{"Quito", -0.1807, -78.4678, "America/Guayaquil"},
		{"Sydney", -33.8688, 151.2093, "Australia/Sydney"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := time.LoadLocation(tt.tz)
			require.NoError(t, err)

			w := solar.FindGoldenHour(testDate, tt.lat, tt.lon, loc)

			assert.True(t, w.Start.Before(w.End), "window must be non-empty")

			duration := w.Duration()
			assert.GreaterOrEqual(t, duration, 20*time.Minute)
			assert.LessOrEqual(t, duration, 4*time.Hour)

			// The one-minute scan lands within a step of the thresholds.
			startElev := solar.Elevation(w.Start, tt.lat, tt.lon)
			endElev := solar.Elevation(w.End, tt.lat, tt.lon)
			assert.InDelta(t, solar.DefaultUpperElevation, startElev, 0.75)
			assert.InDelta(t, solar.DefaultLowerElevation, endElev, 0.75)
		})
	}
}

func TestFindGoldenHour_EquatorIsShorterThanMidLatitude(t *testing.T) {
	testDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	toronto, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	quito, err := time.LoadLocation("America/Guayaquil")
	require.NoError(t, err)

	torontoWindow := solar.FindGoldenHour(testDate, 43.688763, -79.29532, toronto)
	quitoWindow := solar.FindGoldenHour(testDate, -0.1807, -78.4678, quito)

	// The sun descends near-vertically at the equator, so the golden hour
	// is shorter there.
	assert.Less(t, quitoWindow.Duration(), torontoWindow.Duration())
}

func TestFindGoldenHour_HighLatitudeSummerFallback(t *testing.T) {
	// Reykjavik near the solstice: the sun skims the horizon and never
	// reaches -4 degrees before midnight, so the window closes at the end
	// of the scan interval.
	loc, err := time.LoadLocation("Atlantic/Reykjavik")
	require.NoError(t, err)
	testDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	w := solar.FindGoldenHour(testDate, 64.1466, -21.9426, loc)

	assert.True(t, w.Start.Before(w.End))
	assert.Equal(t, 23, w.End.Hour())
	assert.Equal(t, 59, w.End.Minute())

	endElev := solar.Elevation(w.End, 64.1466, -21.9426)
	assert.GreaterOrEqual(t, endElev, solar.DefaultLowerElevation)
}

func TestFindGoldenHour_PolarDayStartFallback(t *testing.T) {
	// Longyearbyen at midsummer: the sun stays well above 6 degrees all
	// day, so both fallbacks apply and the window spans the whole scan
	// interval.
	loc, err := time.LoadLocation("Arctic/Longyearbyen")
	require.NoError(t, err)
	testDate := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	w := solar.FindGoldenHour(testDate, 78.2232, 15.6267, loc)

	assert.Equal(t, 15, w.Start.Hour())
	assert.Equal(t, 0, w.Start.Minute())
	assert.Equal(t, 23, w.End.Hour())
	assert.Equal(t, 59, w.End.Minute())
}

func TestFindGoldenHourWithConfig_CustomThresholds(t *testing.T) {
	loc, err := time.LoadLocation("America/Toronto")
	require.NoError(t, err)
	testDate := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	wide := solar.FindGoldenHourWithConfig(testDate, 43.688763, -79.29532, loc, solar.WindowConfig{
		UpperElevation: 10,
		LowerElevation: -6,
	})
	narrow := solar.FindGoldenHour(testDate, 43.688763, -79.29532, loc)

	assert.True(t, wide.Start.Before(narrow.Start))
	assert.True(t, wide.End.After(narrow.End))
}

func TestWindow_Contains(t *testing.T) {
	loc := time.UTC
	w := solar.Window{
		Start: time.Date(2025, 6, 5, 20, 0, 0, 0, loc),
		End:   time.Date(2025, 6, 5, 21, 30, 0, 0, loc),
	}

	assert.True(t, w.Contains(w.Start), "inclusive at start")
	assert.True(t, w.Contains(w.End), "inclusive at end")
	assert.True(t, w.Contains(time.Date(2025, 6, 5, 21, 0, 0, 0, loc)))
	assert.False(t, w.Contains(time.Date(2025, 6, 5, 19, 59, 0, 0, loc)))
	assert.False(t, w.Contains(time.Date(2025, 6, 5, 21, 31, 0, 0, loc)))
}
