package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunsetcast/sunsetcast/internal/batch"
)

func TestSiteSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Toronto Beaches", "toronto-beaches"},
		{"Humber Bay", "humber-bay"},
		{"  Padded  Name ", "padded-name"},
		{"single", "single"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, batch.SiteSlug(tt.name))
	}
}

func TestFileSource_LoadsDocuments(t *testing.T) {
	dir := t.TempDir()
	siteDir := filepath.Join(dir, "toronto-beaches")
	require.NoError(t, os.MkdirAll(siteDir, 0o755))

	weatherJSON := `{
		"latitude": 43.688763,
		"longitude": -79.29532,
		"timezone": "America/Toronto",
		"daily": {"time": ["2025-06-05"], "sunset": ["2025-06-05T20:55"]},
		"hourly": {"time": ["2025-06-05T21:00"], "cloud_cover_mid": [40]}
	}`
	aqJSON := `{
		"hourly": {"time": ["2025-06-05T21:00"], "pm10": [10], "pm2_5": [12], "us_aqi": [40]}
	}`

	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "2025-06-05-weather.json"), []byte(weatherJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "2025-06-05-airquality.json"), []byte(aqJSON), 0o644))

	source := batch.NewFileSource(dir)
	site := batch.Site{Name: "Toronto Beaches", Lat: 43.67, Lon: -79.30}
	date := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	weather, err := source.Weather(context.Background(), site, date)
	require.NoError(t, err)
	assert.Equal(t, "America/Toronto", weather.Timezone)
	assert.Equal(t, []string{"2025-06-05T20:55"}, weather.Daily.Sunset)
	assert.Equal(t, []float64{40}, weather.Hourly.CloudCoverMid)

	aq, err := source.AirQuality(context.Background(), site, date)
	require.NoError(t, err)
	assert.Equal(t, []float64{12}, aq.Hourly.PM25)
	assert.Equal(t, []int{40}, aq.Hourly.USAQI)
}

func TestFileSource_MissingDocument(t *testing.T) {
	source := batch.NewFileSource(t.TempDir())
	site := batch.Site{Name: "Nowhere"}
	date := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	_, err := source.Weather(context.Background(), site, date)
	assert.Error(t, err)

	_, err = source.AirQuality(context.Background(), site, date)
	assert.Error(t, err)
}

func TestFileSource_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	siteDir := filepath.Join(dir, "bad-site")
	require.NoError(t, os.MkdirAll(siteDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(siteDir, "2025-06-05-weather.json"), []byte("{not json"), 0o644))

	source := batch.NewFileSource(dir)
	date := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)

	_, err := source.Weather(context.Background(), batch.Site{Name: "Bad Site"}, date)
	assert.ErrorContains(t, err, "parse weather document")
}
