package sunset_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetcast/sunsetcast/internal/sunset"
)

// torontoWeather replicates a real provider response for Toronto on
// 2025-06-05 (sunset 20:55 local).
func torontoWeather() *sunset.WeatherDocument {
	return &sunset.WeatherDocument{
		Latitude:             43.688763,
		Longitude:            -79.29532,
		Timezone:             "America/Toronto",
		TimezoneAbbreviation: "EDT",
		Daily: sunset.DailyWeather{
			Time:             []string{"2025-06-05"},
			Sunrise:          []string{"2025-06-05T05:36"},
			Sunset:           []string{"2025-06-05T20:55"},
			WindSpeed10mMax:  []float64{20},
			Temperature2mMax: []float64{25.3},
			Temperature2mMin: []float64{15.2},
		},
		Hourly: sunset.HourlyWeather{
			Time:            []string{"2025-06-05T18:00", "2025-06-05T19:00", "2025-06-05T20:00", "2025-06-05T21:00"},
			CloudCoverLow:   []float64{82, 32, 100, 55},
			CloudCoverMid:   []float64{39, 0, 0, 0},
			CloudCoverHigh:  []float64{52, 0, 0, 0},
			Visibility:      []float64{21400, 20600, 19900, 17600},
			Rain:            []float64{0, 0, 0, 0},
			Showers:         []float64{0, 0, 0, 0},
			SurfacePressure: []float64{1001.2, 1000.6, 1000.5, 1000.8},
			Temperature2m:   []float64{21.1, 20.7, 20.3, 19.3},
		},
	}
}

func torontoAirQuality() *sunset.AirQualityDocument {
	return &sunset.AirQualityDocument{
		Latitude:  43.688763,
		Longitude: -79.29532,
		Hourly: sunset.HourlyAirQuality{
			Time:  []string{"2025-06-05T18:00", "2025-06-05T19:00", "2025-06-05T20:00", "2025-06-05T21:00"},
			PM10:  []float64{8.5, 7.8, 9.0, 10.2},
			PM25:  []float64{5.2, 4.9, 6.1, 7.3},
			USAQI: []int{32, 29, 35, 38},
		},
	}
}

func newTestAnalyzer() *sunset.Analyzer {
	return sunset.NewAnalyzer(sunset.AnalyzerConfig{Logger: zerolog.Nop()})
}

func torontoDate() time.Time {
	return time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
}

func TestAnalyze_TorontoWorkedExample(t *testing.T) {
	analyzer := newTestAnalyzer()

	result, err := analyzer.Analyze(context.Background(), torontoDate(), torontoWeather(), torontoAirQuality())
	require.NoError(t, err)

	assert.Greater(t, result.PeakScore, 0.0)
	assert.Contains(t, []sunset.Rating{
		sunset.RatingExceptional, sunset.RatingVeryGood, sunset.RatingGood,
		sunset.RatingFair, sunset.RatingPoor, sunset.RatingAwful,
	}, result.Rating)

	assert.Equal(t, "20:55", result.SunsetTime)
	assert.Equal(t, 43.688763, result.Location.Latitude)
	assert.Equal(t, "America/Toronto", result.Location.Timezone)

	// The golden-hour window opens shortly before sunset, so of the four
	// sample hours only 21:00 falls inside it.
	require.Len(t, result.HourlyAnalysis, 1)
	peak := result.HourlyAnalysis[0]
	assert.Equal(t, "21:00", result.PeakTime)
	assert.Equal(t, "21:00", peak.Time)

	// 21:00 conditions: 17.6 km visibility, 55% low cloud, clean air.
	// Raw score = 26.4 (visibility) - 1.5 (low cloud) + 18.46 (air).
	assert.InDelta(t, 43.4, peak.RawScore, 0.1)
	assert.InDelta(t, 26.4, peak.VisibilityScore, 1e-9)
	assert.InDelta(t, -1.5, peak.CloudScore, 1e-9)
	assert.InDelta(t, 18.46, peak.AirQualityScore, 1e-9)

	// Just after sunset: slightly negative elevation, 0.95 weight.
	assert.Less(t, peak.SunElevation, 0.0)
	assert.Greater(t, peak.SunElevation, -2.0)
	assert.Equal(t, 0.95, peak.ElevationWeight)
	assert.InDelta(t, 41.2, result.PeakScore, 0.5)

	// PM2.5 of 7.3 sits in clean-but-unremarkable territory.
	assert.NotContains(t, result.Flags, "hazy_conditions")
	assert.NotContains(t, result.Flags, "unhealthy_air_quality")

	assert.Equal(t, "Clear conditions", peak.Notes)
	assert.True(t, peak.RawConditions.HasAirQuality)
	assert.Equal(t, 38, result.ConditionsSummary.AQI)
	assert.InDelta(t, 17.6, result.ConditionsSummary.VisibilityKm, 1e-9)
}

func TestAnalyze_Deterministic(t *testing.T) {
	analyzer := newTestAnalyzer()

	first, err := analyzer.Analyze(context.Background(), torontoDate(), torontoWeather(), torontoAirQuality())
	require.NoError(t, err)

	second, err := analyzer.Analyze(context.Background(), torontoDate(), torontoWeather(), torontoAirQuality())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// longyearbyenFixture builds a midsummer polar-day document where the
// golden-hour fallbacks cover the whole 15:00-23:59 scan interval, so
// many hours land in the window.
func longyearbyenFixture(hours []string, mid []float64) *sunset.WeatherDocument {
	n := len(hours)
	repeat := func(v float64) []float64 {
		vs := make([]float64, n)
		for i := range vs {
			vs[i] = v
		}
		return vs
	}

	return &sunset.WeatherDocument{
		Latitude:  78.2232,
		Longitude: 15.6267,
		Timezone:  "Arctic/Longyearbyen",
		Daily: sunset.DailyWeather{
			Time:   []string{"2025-06-21"},
			Sunset: []string{"2025-06-21T23:59"},
		},
		Hourly: sunset.HourlyWeather{
			Time:            hours,
			CloudCoverLow:   repeat(0),
			CloudCoverMid:   mid,
			CloudCoverHigh:  repeat(0),
			Visibility:      repeat(30000),
			SurfacePressure: repeat(1010),
			Temperature2m:   repeat(5),
		},
	}
}

func TestAnalyze_PeakTieKeepsEarliestHour(t *testing.T) {
	hours := []string{"2025-06-21T16:00", "2025-06-21T17:00", "2025-06-21T18:00"}
	weather := longyearbyenFixture(hours, []float64{40, 40, 40})
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	analyzer := newTestAnalyzer()
	result, err := analyzer.Analyze(context.Background(), date, weather, nil)
	require.NoError(t, err)

	// Identical conditions and identical 0.5 weights (midnight sun stays
	// above 6 degrees): every hour ties, the first one wins.
	require.Len(t, result.HourlyAnalysis, 3)
	assert.Equal(t, "16:00", result.PeakTime)
	assert.Contains(t, result.Flags, "sun_too_high")
}

func TestAnalyze_HigherScoreBeatsEarlierHour(t *testing.T) {
	hours := []string{"2025-06-21T16:00", "2025-06-21T17:00", "2025-06-21T18:00"}
	// 40% mid cloud scores highest, so the middle hour must win.
	weather := longyearbyenFixture(hours, []float64{10, 40, 10})
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	analyzer := newTestAnalyzer()
	result, err := analyzer.Analyze(context.Background(), date, weather, nil)
	require.NoError(t, err)

	assert.Equal(t, "17:00", result.PeakTime)
}

func TestAnalyze_NeutralAirQualityWithoutDocument(t *testing.T) {
	hours := []string{"2025-06-21T17:00"}
	weather := longyearbyenFixture(hours, []float64{40})
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	analyzer := newTestAnalyzer()
	result, err := analyzer.Analyze(context.Background(), date, weather, nil)
	require.NoError(t, err)

	peak := result.HourlyAnalysis[0]
	assert.Equal(t, 10.0, peak.AirQualityScore)
	assert.False(t, peak.RawConditions.HasAirQuality)
	assert.NotContains(t, result.Flags, "very_clean_air")
	assert.NotContains(t, result.Flags, "optimal_particulates")
}

func TestAnalyze_DateNotFound(t *testing.T) {
	analyzer := newTestAnalyzer()

	missing := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	_, err := analyzer.Analyze(context.Background(), missing, torontoWeather(), torontoAirQuality())

	assert.ErrorIs(t, err, sunset.ErrDateNotFound)
}

func TestAnalyze_NoHoursInWindow(t *testing.T) {
	weather := torontoWeather()
	// Morning hours only: nothing can fall inside the evening window.
	weather.Hourly = sunset.HourlyWeather{
		Time:            []string{"2025-06-05T06:00", "2025-06-05T07:00"},
		CloudCoverLow:   []float64{10, 10},
		CloudCoverMid:   []float64{10, 10},
		CloudCoverHigh:  []float64{10, 10},
		Visibility:      []float64{20000, 20000},
		SurfacePressure: []float64{1010, 1010},
		Temperature2m:   []float64{15, 16},
	}

	analyzer := newTestAnalyzer()
	_, err := analyzer.Analyze(context.Background(), torontoDate(), weather, torontoAirQuality())

	assert.ErrorIs(t, err, sunset.ErrNoHoursInWindow)
}

func TestAnalyze_MisalignedAirQualitySeries(t *testing.T) {
	aq := torontoAirQuality()
	// Offset air quality series: the 21:00 weather hour has no
	// counterpart timestamp.
	aq.Hourly.Time = []string{"2025-06-05T14:00", "2025-06-05T15:00", "2025-06-05T16:00", "2025-06-05T17:00"}

	analyzer := newTestAnalyzer()
	_, err := analyzer.Analyze(context.Background(), torontoDate(), torontoWeather(), aq)

	assert.ErrorIs(t, err, sunset.ErrHourNotAligned)
}

func TestAnalyze_OffsetButOverlappingAirQualitySeries(t *testing.T) {
	aq := torontoAirQuality()
	// The air quality provider starts one hour earlier than the weather
	// provider. Positional indexing would misattribute every hour;
	// timestamp alignment must still pick the right entries.
	aq.Hourly.Time = []string{"2025-06-05T17:00", "2025-06-05T18:00", "2025-06-05T19:00", "2025-06-05T20:00", "2025-06-05T21:00"}
	aq.Hourly.PM10 = []float64{7.0, 8.5, 7.8, 9.0, 10.2}
	aq.Hourly.PM25 = []float64{4.0, 5.2, 4.9, 6.1, 7.3}
	aq.Hourly.USAQI = []int{25, 32, 29, 35, 38}

	analyzer := newTestAnalyzer()
	result, err := analyzer.Analyze(context.Background(), torontoDate(), torontoWeather(), aq)
	require.NoError(t, err)

	// The 21:00 hour still resolves to PM2.5 7.3 / AQI 38.
	peak := result.HourlyAnalysis[0]
	assert.Equal(t, 7.3, peak.RawConditions.PM25)
	assert.Equal(t, 38, peak.RawConditions.AQI)
}

func TestAnalyze_BadTimezone(t *testing.T) {
	weather := torontoWeather()
	weather.Timezone = "Not/AZone"

	analyzer := newTestAnalyzer()
	_, err := analyzer.Analyze(context.Background(), torontoDate(), weather, torontoAirQuality())

	assert.ErrorIs(t, err, sunset.ErrBadTimezone)
}

func TestAnalyze_BadHourlyTimestamp(t *testing.T) {
	weather := torontoWeather()
	weather.Hourly.Time[3] = "garbage"

	analyzer := newTestAnalyzer()
	_, err := analyzer.Analyze(context.Background(), torontoDate(), weather, torontoAirQuality())

	assert.ErrorIs(t, err, sunset.ErrBadTimestamp)
}

func TestAnalyze_MissingRainSeriesDefaultsToZero(t *testing.T) {
	weather := torontoWeather()
	weather.Hourly.Rain = nil
	weather.Hourly.Showers = nil

	analyzer := newTestAnalyzer()
	result, err := analyzer.Analyze(context.Background(), torontoDate(), weather, torontoAirQuality())
	require.NoError(t, err)

	peak := result.HourlyAnalysis[0]
	assert.Zero(t, peak.RawConditions.Precipitation)
	assert.Zero(t, peak.PrecipitationPenalty)
}

func TestAnalyze_HourlyOrderIsChronological(t *testing.T) {
	hours := []string{"2025-06-21T16:00", "2025-06-21T17:00", "2025-06-21T18:00", "2025-06-21T19:00"}
	weather := longyearbyenFixture(hours, []float64{0, 10, 20, 30})
	date := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	analyzer := newTestAnalyzer()
	result, err := analyzer.Analyze(context.Background(), date, weather, nil)
	require.NoError(t, err)

	require.Len(t, result.HourlyAnalysis, 4)
	for i, want := range []string{"16:00", "17:00", "18:00", "19:00"} {
		assert.Equal(t, want, result.HourlyAnalysis[i].Time)
	}
}
