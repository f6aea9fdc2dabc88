package sunset

import (
	"math"
)

// Scoring constants. The raw score is the sum of the component scores
// below; the practical ceiling is around 90-95 for an ideal hour.
const (
	maxVisibilityScore = 30.0
	maxAirQualityScore = 20.0

	// neutralAirQualityScore applies when no particulate data exists.
	neutralAirQualityScore = 10.0

	// Total layered coverage at or above these marks triggers the
	// overcast overrides.
	overcastCoverage      = 100.0
	heavyOvercastCoverage = 180.0
	overcastPenalty       = -30.0
	heavyOvercastPenalty  = -40.0

	// Pressure above this reads as a stable high.
	stablePressureHpa = 1020.0
	pressureBonus     = 5.0

	precipitationPenaltyPerMm = -10.0
)

// VisibilityScore scores atmospheric visibility on 0-30. Full marks from
// 20 km up; linear below that.
func VisibilityScore(visibilityMeters float64) float64 {
	visibilityKm := visibilityMeters / 1000

	if visibilityKm >= 20 {
		return maxVisibilityScore
	}
	return math.Min(maxVisibilityScore, visibilityKm*1.5)
}

// CloudScore scores the cloud layers. Mid-level cloud is the primary
// signal: a broken mid deck around 40% coverage catches the most color.
// Total layered coverage at or past 100 is treated as a hard failure
// mode, zeroing the mid contribution on top of the overcast penalty.
func CloudScore(conditions HourConditions) CloudScoreBreakdown {
	totalCoverage := conditions.TotalCloudCoverage()

	// Mid-level cloud, 0-40 points peaking at 40% coverage.
	var midScore float64
	switch {
	case conditions.CloudMid >= 20 && conditions.CloudMid <= 60:
		midScore = 40 - math.Abs(conditions.CloudMid-40)*0.5
	case conditions.CloudMid < 20:
		midScore = conditions.CloudMid * 1.5
	default: // CloudMid > 60
		midScore = math.Max(0, 40-(conditions.CloudMid-60)*0.8)
	}

	var ovcPenalty float64
	switch {
	case totalCoverage >= heavyOvercastCoverage:
		ovcPenalty = heavyOvercastPenalty
		midScore = 0
	case totalCoverage >= overcastCoverage:
		ovcPenalty = overcastPenalty
		midScore = 0
	}

	// Low cloud obstructs the horizon view.
	var lowPenalty float64
	if conditions.CloudLow > 50 {
		lowPenalty = -(conditions.CloudLow - 50) * 0.3
	}

	// High cloud catches post-sunset light, but only matters when the
	// sky is not overcast.
	var highBonus float64
	if totalCoverage < overcastCoverage {
		highBonus = math.Min(15, conditions.CloudHigh*0.2)
	}

	return CloudScoreBreakdown{
		MidScore:        midScore,
		OvercastPenalty: ovcPenalty,
		LowPenalty:      lowPenalty,
		HighBonus:       highBonus,
		Total:           midScore + ovcPenalty + lowPenalty + highBonus,
	}
}

// AirQualityScore scores particulates on 0-20. The response to PM2.5 is
// an inverted U: light particulate loading enhances red and orange
// scattering while heavy loading washes the colors out. Sweet spot is
// around 10-25 µg/m³.
func AirQualityScore(conditions HourConditions) float64 {
	if !conditions.HasAirQuality {
		return neutralAirQualityScore
	}

	pm25 := conditions.PM25

	var pm25Score float64
	switch {
	case pm25 <= 5:
		// Very clean air: great visibility, minimal color enhancement.
		pm25Score = 12
	case pm25 <= 15:
		pm25Score = 18 + (pm25-5)*0.2
	case pm25 <= 25:
		pm25Score = 20 - (pm25-15)*0.3
	case pm25 <= 35:
		pm25Score = 17 - (pm25-25)*0.5
	case pm25 <= 55:
		pm25Score = 12 - (pm25-35)*0.3
	default:
		pm25Score = math.Max(0, 6-(pm25-55)*0.1)
	}

	// Coarse particles reduce clarity without adding color.
	var pm10Penalty float64
	if conditions.PM10 > 50 {
		pm10Penalty = -(conditions.PM10 - 50) * 0.1
	}

	total := pm25Score + pm10Penalty
	return math.Max(0, math.Min(maxAirQualityScore, total))
}

// HourlyScore computes the full raw score breakdown for one hour.
// Pure and deterministic; out-of-range inputs are scored as-is without
// validation.
func HourlyScore(conditions HourConditions) HourlyScores {
	visibilityScore := VisibilityScore(conditions.Visibility)

	cloudBreakdown := CloudScore(conditions)

	airQualityScore := AirQualityScore(conditions)

	precipPenalty := conditions.Precipitation * precipitationPenaltyPerMm

	var pressBonus float64
	if conditions.Pressure > stablePressureHpa {
		pressBonus = pressureBonus
	}

	total := visibilityScore + cloudBreakdown.Total + airQualityScore + precipPenalty + pressBonus

	return HourlyScores{
		VisibilityScore:      visibilityScore,
		CloudScore:           cloudBreakdown.Total,
		CloudBreakdown:       cloudBreakdown,
		AirQualityScore:      airQualityScore,
		PrecipitationPenalty: precipPenalty,
		PressureBonus:        pressBonus,
		TotalScore:           math.Max(0, total),
	}
}
