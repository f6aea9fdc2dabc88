// Package main provides the sunsetbatch runner: periodic sunset
// analyses for a configured set of viewing sites.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sunsetcast/sunsetcast/internal/batch"
	"github.com/sunsetcast/sunsetcast/internal/sunset"
	"github.com/sunsetcast/sunsetcast/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "sunsetbatch"

	_ = godotenv.Load()

	docsDir := flag.String("docs", "./documents", "root directory of saved provider documents")
	sitesPath := flag.String("sites", "", "path to sites JSON (default: built-in sites)")
	interval := flag.Duration("interval", 0, "rerun interval; 0 runs once and exits")
	concurrency := flag.Int("concurrency", 3, "concurrent site analyses")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting sunset batch runner")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        os.Getenv("OTEL_ENABLED") == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	recorder, err := telemetry.NewAnalysisRecorder(tp.Meter)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create analysis recorder")
	}

	sites := batch.DefaultSites()
	if *sitesPath != "" {
		sites, err = loadSites(*sitesPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *sitesPath).Msg("failed to load sites")
		}
	}

	job := batch.NewJob(batch.JobConfig{
		Config: batch.RunConfig{
			Sites:       sites,
			Concurrency: *concurrency,
		},
		Logger:   log,
		Analyzer: sunset.NewAnalyzer(sunset.AnalyzerConfig{Logger: log}),
		Source:   batch.NewFileSource(*docsDir),
		Recorder: recorder,
	})

	runOnce := func() {
		runLog := log.With().Str("run_id", uuid.NewString()).Logger()
		result := job.Run(ctx, time.Now())
		reportRun(runLog, result)
	}

	runOnce()

	if *interval <= 0 {
		log.Info().Msg("single run complete")
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			runOnce()
		case <-quit:
			log.Info().Msg("shutting down batch runner")
			cancel()
			log.Info().Fields(job.MetricsSnapshot()).Msg("final metrics")
			return
		}
	}
}

// reportRun logs the best site of the run and each site's outcome.
func reportRun(log zerolog.Logger, result *batch.RunResult) {
	var best *batch.SiteResult
	for i := range result.Sites {
		sr := &result.Sites[i]
		if sr.Analysis == nil {
			continue
		}
		if best == nil || sr.Analysis.PeakScore > best.Analysis.PeakScore {
			best = sr
		}
	}

	if best != nil {
		log.Info().
			Str("site", best.Site.Name).
			Float64("peak_score", best.Analysis.PeakScore).
			Str("peak_time", best.Analysis.PeakTime).
			Str("rating", string(best.Analysis.Rating)).
			Msg("best viewing site tonight")
	}

	log.Info().
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Dur("duration", result.Duration).
		Msg("run finished")
}

func loadSites(path string) ([]batch.Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sites []batch.Site
	if err := json.Unmarshal(data, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}
