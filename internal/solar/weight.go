package solar

// ElevationWeight maps a sun elevation angle to a scoring weight in
// [0.5, 1.0]. Elevation near the horizon (0-3 degrees) scores full
// weight: the sun is low enough for color while its disc is least
// obscured by near-horizon haze. The weight decays linearly toward the
// window edges instead of cutting off.
func ElevationWeight(elevation float64) float64 {
	switch {
	case elevation >= 0 && elevation <= 3:
		return 1.0
	case elevation >= -2 && elevation < 0:
		return 0.95
	case elevation > 3 && elevation <= 6:
		// 1.0 at 3 degrees down to 0.7 at 6
		return 1.0 - (elevation-3)*0.1
	case elevation >= -4 && elevation < -2:
		// 0.9 at -2 degrees down to 0.7 at -4
		return 0.9 + (elevation+2)*0.1
	default:
		return 0.5
	}
}
