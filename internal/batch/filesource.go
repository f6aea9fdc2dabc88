package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sunsetcast/sunsetcast/internal/sunset"
)

// FileSource reads provider documents from a directory of saved JSON
// responses, laid out as <root>/<site-slug>/<date>-weather.json and
// <root>/<site-slug>/<date>-airquality.json.
type FileSource struct {
	root string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{root: dir}
}

// Weather loads the site's weather document for the date.
func (s *FileSource) Weather(_ context.Context, site Site, date time.Time) (*sunset.WeatherDocument, error) {
	var doc sunset.WeatherDocument
	if err := s.load(site, date, "weather", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// AirQuality loads the site's air quality document for the date.
func (s *FileSource) AirQuality(_ context.Context, site Site, date time.Time) (*sunset.AirQualityDocument, error) {
	var doc sunset.AirQualityDocument
	if err := s.load(site, date, "airquality", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *FileSource) load(site Site, date time.Time, kind string, v interface{}) error {
	name := fmt.Sprintf("%s-%s.json", date.Format("2006-01-02"), kind)
	path := filepath.Join(s.root, SiteSlug(site.Name), name)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s document: %w", kind, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s document %s: %w", kind, path, err)
	}
	return nil
}

// SiteSlug converts a site name to its directory name: lowercase with
// spaces collapsed to single hyphens.
func SiteSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(slug), "-")
}
