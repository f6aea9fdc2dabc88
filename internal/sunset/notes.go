package sunset

import (
	"strings"
)

// hourNotes builds the human-readable note fragments for one hour,
// joined by "; ". Falls back to "Clear conditions" when nothing is
// notable.
func hourNotes(conditions HourConditions) string {
	var notes []string

	if conditions.VisibilityKm() < 15 {
		notes = append(notes, "Poor visibility")
	} else if conditions.VisibilityKm() > 30 {
		notes = append(notes, "Excellent visibility")
	}

	switch {
	case conditions.TotalCloudCoverage() >= overcastCoverage:
		notes = append(notes, "Overcast conditions")
	case conditions.CloudLow > 60:
		notes = append(notes, "Low clouds may obstruct horizon")
	case conditions.CloudMid >= 20 && conditions.CloudMid <= 60:
		notes = append(notes, "Ideal mid-level clouds for color")
	}

	if conditions.HasAirQuality {
		switch {
		case conditions.PM25 <= 5:
			notes = append(notes, "Very clean air")
		case conditions.PM25 >= 10 && conditions.PM25 <= 25:
			notes = append(notes, "Optimal particulates for color enhancement")
		case conditions.PM25 > 35:
			notes = append(notes, "Hazy conditions from air pollution")
		}
	}

	if conditions.Precipitation > 0.1 {
		notes = append(notes, "Light precipitation")
	}

	if conditions.Pressure > stablePressureHpa {
		notes = append(notes, "Stable high pressure")
	}

	if len(notes) == 0 {
		return "Clear conditions"
	}
	return strings.Join(notes, "; ")
}

// analysisFlags derives the whole-result condition flags from the peak
// hour.
func analysisFlags(peak HourlyAnalysis) []string {
	flags := []string{}
	conditions := peak.RawConditions

	switch {
	case peak.SunElevation >= 0 && peak.SunElevation <= 3:
		flags = append(flags, "optimal_sun_elevation")
	case peak.SunElevation > 6:
		flags = append(flags, "sun_too_high")
	case peak.SunElevation < -4:
		flags = append(flags, "past_golden_hour")
	}

	if conditions.TotalCloudCoverage() >= overcastCoverage {
		flags = append(flags, "overcast_penalty_applied")
	}

	if conditions.VisibilityKm() >= 30 {
		flags = append(flags, "excellent_visibility")
	} else if conditions.VisibilityKm() < 15 {
		flags = append(flags, "poor_visibility")
	}

	if conditions.CloudMid >= 20 && conditions.CloudMid <= 60 &&
		conditions.TotalCloudCoverage() < overcastCoverage {
		flags = append(flags, "ideal_mid_clouds")
	}

	if conditions.Precipitation > 0.5 {
		flags = append(flags, "precipitation_impact")
	}

	if conditions.Pressure > stablePressureHpa {
		flags = append(flags, "stable_pressure")
	}

	if conditions.HasAirQuality {
		switch {
		case conditions.PM25 <= 5:
			flags = append(flags, "very_clean_air")
		case conditions.PM25 >= 10 && conditions.PM25 <= 25:
			flags = append(flags, "optimal_particulates")
		case conditions.PM25 > 35:
			flags = append(flags, "hazy_conditions")
		}

		if conditions.AQI > 100 {
			flags = append(flags, "unhealthy_air_quality")
		}
	}

	return flags
}
