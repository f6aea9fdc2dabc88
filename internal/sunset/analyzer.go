package sunset

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sunsetcast/sunsetcast/internal/solar"
	"github.com/sunsetcast/sunsetcast/internal/telemetry"
)

// Timestamp layouts used by the weather provider. Hourly and daily
// timestamps are local wall-clock times without an offset.
const (
	hourlyTimeLayout = "2006-01-02T15:04"
	dailyDateLayout  = "2006-01-02"
	clockLayout      = "15:04"
)

// AnalyzerConfig holds configuration for an Analyzer.
type AnalyzerConfig struct {
	// Logger for analysis progress. Defaults to a disabled logger.
	Logger zerolog.Logger

	// Window overrides the golden-hour elevation thresholds.
	// Zero value uses the defaults (+6 / -4 degrees).
	Window solar.WindowConfig
}

// Analyzer computes sunset viewing quality analyses. Each Analyze call
// is independent and side-effect free, so a single Analyzer is safe for
// concurrent use across dates and locations.
type Analyzer struct {
	logger zerolog.Logger
	window solar.WindowConfig
	tracer trace.Tracer
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(cfg AnalyzerConfig) *Analyzer {
	window := cfg.Window
	if window.UpperElevation == 0 && window.LowerElevation == 0 {
		window = solar.DefaultWindowConfig()
	}

	return &Analyzer{
		logger: cfg.Logger,
		window: window,
		tracer: telemetry.Tracer("sunset"),
	}
}

// Analyze scores every hour of the target date's golden-hour window and
// reduces the result to a peak score, rating, and explanation.
//
// Returns ErrDateNotFound when the daily record lacks the target date
// and ErrNoHoursInWindow when no hourly timestamps fall inside the
// golden-hour window. Air quality hours are aligned to weather hours by
// timestamp; ErrHourNotAligned signals a structurally inconsistent pair
// of documents.
func (a *Analyzer) Analyze(ctx context.Context, targetDate time.Time, weather *WeatherDocument, airQuality *AirQualityDocument) (*AnalysisResult, error) {
	_, span := a.tracer.Start(ctx, "sunset.analyze", trace.WithAttributes(
		attribute.Float64("location.lat", weather.Latitude),
		attribute.Float64("location.lon", weather.Longitude),
		attribute.String("analysis.date", targetDate.Format(dailyDateLayout)),
	))
	defer span.End()

	loc, err := time.LoadLocation(weather.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadTimezone, weather.Timezone)
	}

	sunsetTime, err := a.lookupSunset(targetDate, weather, loc)
	if err != nil {
		return nil, err
	}

	window := solar.FindGoldenHourWithConfig(targetDate, weather.Latitude, weather.Longitude, loc, a.window)

	a.logger.Debug().
		Time("window_start", window.Start).
		Time("window_end", window.End).
		Str("date", targetDate.Format(dailyDateLayout)).
		Msg("golden-hour window located")

	hours, weighted, err := a.analyzeWindowHours(weather, airQuality, window, loc)
	if err != nil {
		return nil, err
	}
	if len(hours) == 0 {
		return nil, ErrNoHoursInWindow
	}

	// Peak selection on the unrounded weighted scores: strict comparison
	// keeps the chronologically earliest hour on ties.
	peakIdx := 0
	for i := 1; i < len(weighted); i++ {
		if weighted[i] > weighted[peakIdx] {
			peakIdx = i
		}
	}
	peak := hours[peakIdx]

	// The rating thresholds apply to the exact score, not the rounded
	// one reported in the result.
	rating := RatingFromScore(weighted[peakIdx])

	a.logger.Info().
		Float64("peak_score", peak.TotalScore).
		Str("peak_time", peak.Time).
		Str("rating", string(rating)).
		Int("hours_analyzed", len(hours)).
		Msg("sunset analysis complete")

	span.SetAttributes(
		attribute.Float64("analysis.peak_score", peak.TotalScore),
		attribute.String("analysis.rating", string(rating)),
	)

	return &AnalysisResult{
		PeakScore:        peak.TotalScore,
		PeakTime:         peak.Time,
		PeakSunElevation: peak.SunElevation,
		Rating:           rating,
		SunsetTime:       sunsetTime.Format(clockLayout),
		GoldenHourStart:  window.Start.Format(clockLayout),
		GoldenHourEnd:    window.End.Format(clockLayout),
		HourlyAnalysis:   hours,
		ConditionsSummary: ConditionsSummary{
			SunElevation:       peak.SunElevation,
			VisibilityKm:       round1(peak.RawConditions.VisibilityKm()),
			CloudLow:           peak.RawConditions.CloudLow,
			CloudMid:           peak.RawConditions.CloudMid,
			CloudHigh:          peak.RawConditions.CloudHigh,
			TotalCloudCoverage: peak.RawConditions.TotalCloudCoverage(),
			PrecipitationMm:    peak.RawConditions.Precipitation,
			PressureHpa:        peak.RawConditions.Pressure,
			TemperatureC:       peak.RawConditions.Temperature,
			PM10:               peak.RawConditions.PM10,
			PM25:               peak.RawConditions.PM25,
			AQI:                peak.RawConditions.AQI,
		},
		Location: LocationInfo{
			Latitude:  weather.Latitude,
			Longitude: weather.Longitude,
			Timezone:  weather.Timezone,
		},
		Flags: analysisFlags(peak),
	}, nil
}

// lookupSunset finds the target date's reported sunset timestamp in the
// daily record.
func (a *Analyzer) lookupSunset(targetDate time.Time, weather *WeatherDocument, loc *time.Location) (time.Time, error) {
	want := targetDate.Format(dailyDateLayout)

	for i, day := range weather.Daily.Time {
		if day != want {
			continue
		}
		if i >= len(weather.Daily.Sunset) {
			return time.Time{}, fmt.Errorf("%w: %s", ErrDateNotFound, want)
		}
		sunset, err := time.ParseInLocation(hourlyTimeLayout, weather.Daily.Sunset[i], loc)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: sunset %q", ErrBadTimestamp, weather.Daily.Sunset[i])
		}
		return sunset, nil
	}

	return time.Time{}, fmt.Errorf("%w: %s", ErrDateNotFound, want)
}

// analyzeWindowHours extracts, scores, and weights every hourly index
// whose timestamp falls within the window, in chronological order.
// The second return value carries the unrounded weighted score per hour
// for peak selection.
func (a *Analyzer) analyzeWindowHours(weather *WeatherDocument, airQuality *AirQualityDocument, window solar.Window, loc *time.Location) ([]HourlyAnalysis, []float64, error) {
	var aqHourly HourlyAirQuality
	if airQuality != nil {
		aqHourly = airQuality.Hourly
	}
	aqIdx := buildAirQualityIndex(aqHourly)

	var (
		hours    []HourlyAnalysis
		weighted []float64
	)

	for i, ts := range weather.Hourly.Time {
		t, err := time.ParseInLocation(hourlyTimeLayout, ts, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: hourly %q", ErrBadTimestamp, ts)
		}
		if !window.Contains(t) {
			continue
		}

		conditions, err := extractHourConditions(weather.Hourly, aqHourly, aqIdx, i)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", err, ts)
		}

		scores := HourlyScore(conditions)

		elevation := solar.Elevation(t, weather.Latitude, weather.Longitude)
		weight := solar.ElevationWeight(elevation)
		weightedScore := scores.TotalScore * weight
		weighted = append(weighted, weightedScore)

		hours = append(hours, HourlyAnalysis{
			Time:                 t.Format(clockLayout),
			ISOTime:              t.Format(time.RFC3339),
			SunElevation:         round2(elevation),
			ElevationWeight:      round2(weight),
			TotalScore:           round1(weightedScore),
			RawScore:             round1(scores.TotalScore),
			VisibilityScore:      scores.VisibilityScore,
			CloudScore:           scores.CloudScore,
			AirQualityScore:      scores.AirQualityScore,
			PrecipitationPenalty: scores.PrecipitationPenalty,
			PressureBonus:        scores.PressureBonus,
			Notes:                hourNotes(conditions),
			RawConditions:        conditions,
		})
	}

	return hours, weighted, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
