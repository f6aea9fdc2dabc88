// Package batch runs sunset analyses for many viewing sites
// concurrently.
package batch

import (
	"time"
)

// Site is one sunset viewing location to analyze.
type Site struct {
	// Name is the human-readable name of the site.
	Name string `json:"name"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Priority determines reporting order (lower = higher priority).
	Priority int `json:"priority,omitempty"`
}

// RunConfig holds configuration for a batch analysis run.
type RunConfig struct {
	// Sites are the viewing locations to analyze.
	// If empty, uses DefaultSites.
	Sites []Site

	// Concurrency is the number of concurrent analyses.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each site's document fetch and
	// analysis. Default: 30 seconds
	Timeout time.Duration
}

// DefaultRunConfig returns the default batch configuration.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Sites:       DefaultSites(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
	}
}

// DefaultSites returns the default viewing sites. Focuses on
// well-known west-facing waterfront spots around the Great Lakes.
func DefaultSites() []Site {
	return []Site{
		{Name: "Toronto Beaches", Priority: 1, Lat: 43.6689, Lon: -79.2952},
		{Name: "Humber Bay", Priority: 1, Lat: 43.6230, Lon: -79.4768},
		{Name: "Scarborough Bluffs", Priority: 1, Lat: 43.7054, Lon: -79.2367},
		{Name: "Hamilton Waterfront", Priority: 2, Lat: 43.2755, Lon: -79.8500},
		{Name: "Niagara-on-the-Lake", Priority: 2, Lat: 43.2552, Lon: -79.0717},
		{Name: "Sandbanks", Priority: 3, Lat: 43.9076, Lon: -77.2409},
		{Name: "Point Pelee", Priority: 3, Lat: 41.9634, Lon: -82.5182},
	}
}

// TotalSites returns the number of sites in the run.
func (c RunConfig) TotalSites() int {
	return len(c.Sites)
}
