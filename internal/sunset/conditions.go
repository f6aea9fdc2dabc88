package sunset

// airQualityIndex maps hourly timestamps of an air quality series to
// their array index, so weather hours can be aligned explicitly instead
// of assuming the two providers sample identical positions.
type airQualityIndex map[string]int

// buildAirQualityIndex indexes the air quality series by timestamp.
// An empty or PM-less series yields a nil index, which downgrades every
// hour to the neutral air quality path.
func buildAirQualityIndex(aq HourlyAirQuality) airQualityIndex {
	if len(aq.Time) == 0 || len(aq.PM10) == 0 || len(aq.PM25) == 0 {
		return nil
	}

	idx := make(airQualityIndex, len(aq.Time))
	for i, ts := range aq.Time {
		idx[ts] = i
	}
	return idx
}

// extractHourConditions flattens weather index i plus the aligned air
// quality entry into one HourConditions. Rain and showers entries past
// their array's length default to zero. Returns ErrHourNotAligned when
// air quality data exists but lacks this hour's timestamp.
func extractHourConditions(weather HourlyWeather, aq HourlyAirQuality, aqIdx airQualityIndex, i int) (HourConditions, error) {
	var rain, showers float64
	if i < len(weather.Rain) {
		rain = weather.Rain[i]
	}
	if i < len(weather.Showers) {
		showers = weather.Showers[i]
	}

	conditions := HourConditions{
		Visibility:    weather.Visibility[i],
		CloudLow:      weather.CloudCoverLow[i],
		CloudMid:      weather.CloudCoverMid[i],
		CloudHigh:     weather.CloudCoverHigh[i],
		Precipitation: rain + showers,
		Pressure:      weather.SurfacePressure[i],
		Temperature:   weather.Temperature2m[i],
	}

	if aqIdx == nil {
		return conditions, nil
	}

	j, ok := aqIdx[weather.Time[i]]
	if !ok || j >= len(aq.PM10) || j >= len(aq.PM25) {
		return HourConditions{}, ErrHourNotAligned
	}

	conditions.PM10 = aq.PM10[j]
	conditions.PM25 = aq.PM25[j]
	conditions.HasAirQuality = true
	if j < len(aq.USAQI) {
		conditions.AQI = aq.USAQI[j]
	}

	return conditions, nil
}
