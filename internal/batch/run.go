package batch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sunsetcast/sunsetcast/internal/sunset"
	"github.com/sunsetcast/sunsetcast/internal/telemetry"
)

// DocumentSource supplies the weather and air quality documents for a
// site. Implementations may read files, hit a cache, or call providers;
// the batch runner only needs parsed documents.
type DocumentSource interface {
	Weather(ctx context.Context, site Site, date time.Time) (*sunset.WeatherDocument, error)
	AirQuality(ctx context.Context, site Site, date time.Time) (*sunset.AirQualityDocument, error)
}

// Job analyzes a set of viewing sites for one date.
type Job struct {
	config   RunConfig
	logger   zerolog.Logger
	analyzer *sunset.Analyzer
	source   DocumentSource
	recorder *telemetry.AnalysisRecorder

	metrics *RunMetrics
}

// RunMetrics tracks batch run statistics.
type RunMetrics struct {
	mu sync.RWMutex

	TotalRuns       int64
	SitesAnalyzed   int64
	SitesFailed     int64
	LastRunAt       time.Time
	LastRunDuration time.Duration
	TotalDuration   time.Duration
}

// JobConfig holds configuration for creating a Job.
type JobConfig struct {
	Config   RunConfig
	Logger   zerolog.Logger
	Analyzer *sunset.Analyzer
	Source   DocumentSource

	// Recorder is optional; nil disables per-analysis metrics.
	Recorder *telemetry.AnalysisRecorder
}

// NewJob creates a batch analysis job.
func NewJob(cfg JobConfig) *Job {
	config := cfg.Config
	if len(config.Sites) == 0 {
		config = DefaultRunConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultRunConfig().Concurrency
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultRunConfig().Timeout
	}

	return &Job{
		config:   config,
		logger:   cfg.Logger,
		analyzer: cfg.Analyzer,
		source:   cfg.Source,
		recorder: cfg.Recorder,
		metrics:  &RunMetrics{},
	}
}

// SiteResult is one site's outcome within a batch run.
type SiteResult struct {
	Site     Site
	Analysis *sunset.AnalysisResult
	Err      error
	Duration time.Duration
}

// RunResult contains the result of one batch run.
type RunResult struct {
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalSites int
	Successful int
	Failed     int

	// Sites holds per-site results in the configured site order.
	Sites []SiteResult
}

// Run analyzes every configured site for the given date.
func (j *Job) Run(ctx context.Context, date time.Time) *RunResult {
	startTime := time.Now()
	result := &RunResult{
		StartTime:  startTime,
		TotalSites: j.config.TotalSites(),
		Sites:      make([]SiteResult, len(j.config.Sites)),
	}

	j.logger.Info().
		Int("total_sites", result.TotalSites).
		Int("concurrency", j.config.Concurrency).
		Str("date", date.Format("2006-01-02")).
		Msg("starting batch sunset analysis")

	type indexedSite struct {
		idx  int
		site Site
	}

	sitesChan := make(chan indexedSite, len(j.config.Sites))
	var wg sync.WaitGroup

	for w := 0; w < j.config.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for is := range sitesChan {
				select {
				case <-ctx.Done():
					return
				default:
					result.Sites[is.idx] = j.analyzeSite(ctx, is.site, date)
				}
			}
		}()
	}

	for i, site := range j.config.Sites {
		sitesChan <- indexedSite{idx: i, site: site}
	}
	close(sitesChan)
	wg.Wait()

	for _, sr := range result.Sites {
		if sr.Err != nil {
			result.Failed++
		} else if sr.Analysis != nil {
			result.Successful++
		}
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("batch sunset analysis completed")

	return result
}

func (j *Job) analyzeSite(ctx context.Context, site Site, date time.Time) SiteResult {
	siteCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	start := time.Now()
	analysis, err := j.runSite(siteCtx, site, date)
	elapsed := time.Since(start)

	if j.recorder != nil {
		j.recorder.Record(ctx, site.Name, elapsed, err)
	}

	if err != nil {
		j.logger.Warn().
			Err(err).
			Str("site", site.Name).
			Msg("site analysis failed")
		return SiteResult{Site: site, Err: err, Duration: elapsed}
	}

	j.logger.Debug().
		Str("site", site.Name).
		Float64("peak_score", analysis.PeakScore).
		Str("rating", string(analysis.Rating)).
		Msg("site analysis complete")

	return SiteResult{Site: site, Analysis: analysis, Duration: elapsed}
}

func (j *Job) runSite(ctx context.Context, site Site, date time.Time) (*sunset.AnalysisResult, error) {
	weather, err := j.source.Weather(ctx, site, date)
	if err != nil {
		return nil, err
	}

	// Air quality is optional: sites without a nearby monitor still get
	// analyzed on the neutral path.
	airQuality, err := j.source.AirQuality(ctx, site, date)
	if err != nil {
		j.logger.Debug().
			Err(err).
			Str("site", site.Name).
			Msg("air quality unavailable, using neutral score")
		airQuality = nil
	}

	return j.analyzer.Analyze(ctx, date, weather, airQuality)
}

func (j *Job) updateMetrics(result *RunResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRuns++
	j.metrics.SitesAnalyzed += int64(result.Successful)
	j.metrics.SitesFailed += int64(result.Failed)
	j.metrics.LastRunAt = result.EndTime
	j.metrics.LastRunDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
}

// GetMetrics returns a copy of the current metrics.
func (j *Job) GetMetrics() RunMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RunMetrics{
		TotalRuns:       j.metrics.TotalRuns,
		SitesAnalyzed:   j.metrics.SitesAnalyzed,
		SitesFailed:     j.metrics.SitesFailed,
		LastRunAt:       j.metrics.LastRunAt,
		LastRunDuration: j.metrics.LastRunDuration,
		TotalDuration:   j.metrics.TotalDuration,
	}
}

// MetricsSnapshot returns the current metrics as a map for logging.
func (j *Job) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_runs":        m.TotalRuns,
		"sites_analyzed":    m.SitesAnalyzed,
		"sites_failed":      m.SitesFailed,
		"last_run_at":       m.LastRunAt,
		"last_run_duration": m.LastRunDuration.String(),
		"total_duration":    m.TotalDuration.String(),
	}
}
