// Package solar provides solar geometry calculations: sun position,
// golden-hour window location, and elevation-based scoring weights.
package solar

import (
	"math"
	"time"
)

// Position represents the sun's position in the sky as seen from a
// location on the ground.
type Position struct {
	// Elevation is the angular height above the horizon in degrees.
	// Negative values mean the sun is below the horizon.
	Elevation float64

	// Azimuth is the compass bearing in degrees (0=N, 90=E, 180=S, 270=W).
	Azimuth float64
}

// SunPosition calculates the sun's elevation and azimuth for a given
// time and location. Uses the NOAA solar calculator algorithm, accurate
// to about one arcminute. Defined for all real lat/lon; out-of-range
// coordinates produce geometrically meaningless but finite results.
func SunPosition(t time.Time, lat, lon float64) Position {
	utc := t.UTC()

	jd := julianDate(utc)

	// Julian century from J2000.0
	jc := (jd - 2451545.0) / 36525.0

	// Sun's geometric mean longitude (degrees)
	l0 := math.Mod(280.46646+jc*(36000.76983+jc*0.0003032), 360.0)

	// Sun's mean anomaly (degrees)
	m := 357.52911 + jc*(35999.05029-0.0001537*jc)
	mRad := deg2rad(m)

	// Equation of center
	c := math.Sin(mRad)*(1.914602-jc*(0.004817+0.000014*jc)) +
		math.Sin(2*mRad)*(0.019993-0.000101*jc) +
		math.Sin(3*mRad)*0.000289

	trueLong := l0 + c

	// Apparent longitude, corrected for aberration and nutation
	omega := 125.04 - 1934.136*jc
	lambda := trueLong - 0.00569 - 0.00478*math.Sin(deg2rad(omega))

	// Obliquity of the ecliptic (degrees)
	epsilon0 := 23.0 + (26.0+(21.448-jc*(46.815+jc*(0.00059-jc*0.001813))))/60.0/60.0
	epsilon := epsilon0 + 0.00256*math.Cos(deg2rad(omega))

	lambdaRad := deg2rad(lambda)
	epsilonRad := deg2rad(epsilon)

	// Right ascension (degrees)
	ra := rad2deg(math.Atan2(math.Cos(epsilonRad)*math.Sin(lambdaRad), math.Cos(lambdaRad)))
	if ra < 0 {
		ra += 360
	}

	// Declination (degrees)
	dec := rad2deg(math.Asin(math.Sin(epsilonRad) * math.Sin(lambdaRad)))

	// Greenwich mean sidereal time (degrees)
	gmst := math.Mod(280.46061837+360.98564736629*(jd-2451545.0)+
		0.000387933*jc*jc-jc*jc*jc/38710000.0, 360.0)

	// Local sidereal time and hour angle (degrees)
	lst := math.Mod(gmst+lon, 360.0)
	ha := lst - ra
	if ha < 0 {
		ha += 360
	}
	if ha > 180 {
		ha -= 360
	}

	latRad := deg2rad(lat)
	decRad := deg2rad(dec)
	haRad := deg2rad(ha)

	// Horizontal coordinates
	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
	elevation := rad2deg(math.Asin(sinAlt))

	azNum := -math.Sin(haRad)
	azDen := math.Tan(decRad)*math.Cos(latRad) - math.Sin(latRad)*math.Cos(haRad)
	azimuth := rad2deg(math.Atan2(azNum, azDen))
	if azimuth < 0 {
		azimuth += 360
	}

	return Position{Elevation: elevation, Azimuth: azimuth}
}

// Elevation returns just the sun's elevation angle in degrees.
func Elevation(t time.Time, lat, lon float64) float64 {
	return SunPosition(t, lat, lon).Elevation
}

// julianDate converts a UTC time to a Julian date.
func julianDate(utc time.Time) float64 {
	year := utc.Year()
	month := int(utc.Month())
	day := utc.Day()

	if month <= 2 {
		year--
		month += 12
	}

	a := year / 100
	b := 2 - a + a/4

	jd := math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + float64(b) - 1524.5

	// Fraction of day
	jd += (float64(utc.Hour()) +
		float64(utc.Minute())/60.0 +
		float64(utc.Second())/3600.0 +
		float64(utc.Nanosecond())/3600.0/1e9) / 24.0

	return jd
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }

func rad2deg(r float64) float64 { return r * 180 / math.Pi }
