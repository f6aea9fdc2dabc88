// Package sunset computes an hour-resolved sunset viewing quality score
// from weather and air quality time series, locates the evening
// golden-hour window, and reduces the result to a peak score, rating,
// and structured explanation for downstream consumers.
package sunset

import (
	"errors"
)

// Analysis errors.
var (
	ErrDateNotFound    = errors.New("target date not found in daily weather data")
	ErrNoHoursInWindow = errors.New("no hourly data within golden-hour window")
	ErrHourNotAligned  = errors.New("weather hour missing from air quality series")
	ErrBadTimestamp    = errors.New("malformed timestamp in hourly series")
	ErrBadTimezone     = errors.New("unknown timezone in weather document")
)

// DailyWeather holds per-day parallel arrays from the weather provider.
// Index i in one array corresponds to the same calendar day in every
// other array.
type DailyWeather struct {
	Time             []string  `json:"time"`
	Sunrise          []string  `json:"sunrise"`
	Sunset           []string  `json:"sunset"`
	WindSpeed10mMax  []float64 `json:"wind_speed_10m_max"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	Temperature2mMin []float64 `json:"temperature_2m_min"`
}

// HourlyWeather holds per-hour parallel arrays from the weather provider.
// Rain and Showers may be shorter than Time; missing entries are treated
// as zero.
type HourlyWeather struct {
	Time            []string  `json:"time"`
	CloudCoverLow   []float64 `json:"cloud_cover_low"`
	CloudCoverMid   []float64 `json:"cloud_cover_mid"`
	CloudCoverHigh  []float64 `json:"cloud_cover_high"`
	Visibility      []float64 `json:"visibility"`
	Rain            []float64 `json:"rain,omitempty"`
	Showers         []float64 `json:"showers,omitempty"`
	SurfacePressure []float64 `json:"surface_pressure"`
	Temperature2m   []float64 `json:"temperature_2m"`
}

// WeatherDocument is a parsed weather provider response.
type WeatherDocument struct {
	Latitude             float64       `json:"latitude"`
	Longitude            float64       `json:"longitude"`
	Timezone             string        `json:"timezone"`
	TimezoneAbbreviation string        `json:"timezone_abbreviation,omitempty"`
	Daily                DailyWeather  `json:"daily"`
	Hourly               HourlyWeather `json:"hourly"`
}

// HourlyAirQuality holds per-hour parallel arrays from the air quality
// provider. USAQI and Dust are optional and may be empty.
type HourlyAirQuality struct {
	Time  []string  `json:"time"`
	PM10  []float64 `json:"pm10"`
	PM25  []float64 `json:"pm2_5"`
	USAQI []int     `json:"us_aqi,omitempty"`
	Dust  []float64 `json:"dust,omitempty"`
}

// AirQualityDocument is a parsed air quality provider response.
type AirQualityDocument struct {
	Latitude             float64          `json:"latitude"`
	Longitude            float64          `json:"longitude"`
	Timezone             string           `json:"timezone,omitempty"`
	TimezoneAbbreviation string           `json:"timezone_abbreviation,omitempty"`
	Hourly               HourlyAirQuality `json:"hourly"`
}

// HourConditions is one hour's flattened view across the weather and air
// quality series. Constructed once per analysis and never mutated.
type HourConditions struct {
	// Visibility in meters.
	Visibility float64 `json:"visibility"`

	// Cloud layer coverage percentages (each 0-100). The layers are
	// independent, so their sum can exceed 100; that is the signal for
	// multi-layer overcast.
	CloudLow  float64 `json:"cloud_low"`
	CloudMid  float64 `json:"cloud_mid"`
	CloudHigh float64 `json:"cloud_high"`

	// Precipitation is rain plus showers in mm.
	Precipitation float64 `json:"precipitation"`

	// Pressure is surface pressure in hPa.
	Pressure float64 `json:"pressure"`

	// Temperature in Celsius.
	Temperature float64 `json:"temperature"`

	// Particulate matter in µg/m³.
	PM10 float64 `json:"pm10"`
	PM25 float64 `json:"pm2_5"`

	// AQI is the US Air Quality Index; 0 when unavailable.
	AQI int `json:"aqi"`

	// HasAirQuality records whether the PM values came from a real air
	// quality series rather than defaults. Without it the scoring engine
	// falls back to the neutral air quality score.
	HasAirQuality bool `json:"has_air_quality"`
}

// TotalCloudCoverage returns the sum of the three cloud layers. Values
// at or above 100 indicate overcast; at or above 180, multi-layer
// overcast.
func (c HourConditions) TotalCloudCoverage() float64 {
	return c.CloudLow + c.CloudMid + c.CloudHigh
}

// VisibilityKm returns visibility in kilometers.
func (c HourConditions) VisibilityKm() float64 {
	return c.Visibility / 1000
}

// CloudScoreBreakdown details the components of the cloud score.
type CloudScoreBreakdown struct {
	// MidScore is the contribution of mid-level cloud, zeroed when the
	// overcast override applies.
	MidScore float64 `json:"mid_score"`

	// OvercastPenalty is 0, -30, or -40.
	OvercastPenalty float64 `json:"overcast_penalty"`

	// LowPenalty is the horizon-obstruction penalty for low cloud.
	LowPenalty float64 `json:"low_penalty"`

	// HighBonus rewards high cloud that catches post-sunset light.
	HighBonus float64 `json:"high_bonus"`

	// Total is the sum of the components above.
	Total float64 `json:"total"`
}

// HourlyScores is the breakdown of one hour's raw score.
type HourlyScores struct {
	VisibilityScore      float64             `json:"visibility_score"`
	CloudScore           float64             `json:"cloud_score"`
	CloudBreakdown       CloudScoreBreakdown `json:"cloud_breakdown"`
	AirQualityScore      float64             `json:"air_quality_score"`
	PrecipitationPenalty float64             `json:"precipitation_penalty"`
	PressureBonus        float64             `json:"pressure_bonus"`

	// TotalScore is the sum of all components, floored at zero.
	TotalScore float64 `json:"total_score"`
}

// HourlyAnalysis is one hour's complete analysis record.
type HourlyAnalysis struct {
	// Time is the local wall-clock time in HH:MM format.
	Time string `json:"time"`

	// ISOTime is the full timestamp in RFC 3339 layout.
	ISOTime string `json:"iso_time"`

	SunElevation    float64 `json:"sun_elevation"`
	ElevationWeight float64 `json:"elevation_weight"`

	// TotalScore is the elevation-weighted score used for peak selection.
	TotalScore float64 `json:"total_score"`

	// RawScore is the score before elevation weighting.
	RawScore float64 `json:"raw_score"`

	VisibilityScore      float64 `json:"visibility_score"`
	CloudScore           float64 `json:"cloud_score"`
	AirQualityScore      float64 `json:"air_quality_score"`
	PrecipitationPenalty float64 `json:"precipitation_penalty"`
	PressureBonus        float64 `json:"pressure_bonus"`

	Notes string `json:"notes"`

	RawConditions HourConditions `json:"raw_conditions"`
}

// ConditionsSummary summarizes conditions at the peak hour.
type ConditionsSummary struct {
	SunElevation       float64 `json:"sun_elevation"`
	VisibilityKm       float64 `json:"visibility_km"`
	CloudLow           float64 `json:"cloud_low"`
	CloudMid           float64 `json:"cloud_mid"`
	CloudHigh          float64 `json:"cloud_high"`
	TotalCloudCoverage float64 `json:"total_cloud_coverage"`
	PrecipitationMm    float64 `json:"precipitation_mm"`
	PressureHpa        float64 `json:"pressure_hpa"`
	TemperatureC       float64 `json:"temperature_c"`
	PM10               float64 `json:"pm10"`
	PM25               float64 `json:"pm2_5"`
	AQI                int     `json:"aqi"`
}

// LocationInfo carries the geographic metadata of an analysis.
type LocationInfo struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// AnalysisResult is the final output of one analysis run.
type AnalysisResult struct {
	// PeakScore is the highest elevation-weighted score in the window.
	PeakScore float64 `json:"peak_score"`

	// PeakTime is the local time (HH:MM) of the peak hour.
	PeakTime string `json:"peak_time"`

	PeakSunElevation float64 `json:"peak_sun_elevation"`

	Rating Rating `json:"rating"`

	// SunsetTime is the provider-reported sunset (HH:MM local).
	SunsetTime string `json:"sunset_time"`

	GoldenHourStart string `json:"golden_hour_start"`
	GoldenHourEnd   string `json:"golden_hour_end"`

	// HourlyAnalysis is ordered chronologically.
	HourlyAnalysis []HourlyAnalysis `json:"hourly_analysis"`

	ConditionsSummary ConditionsSummary `json:"conditions_summary"`

	Location LocationInfo `json:"location"`

	// Flags describe notable conditions at the peak hour.
	Flags []string `json:"flags"`
}
