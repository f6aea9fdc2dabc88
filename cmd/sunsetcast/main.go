// Package main provides the sunsetcast CLI: analyze one location's
// sunset viewing quality from saved provider documents.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sunsetcast/sunsetcast/internal/sunset"
	"github.com/sunsetcast/sunsetcast/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "sunsetcast"

	// Load .env if present; environment wins over file values.
	_ = godotenv.Load()

	weatherPath := flag.String("weather", "", "path to weather document JSON (required)")
	airQualityPath := flag.String("air-quality", "", "path to air quality document JSON (optional)")
	dateStr := flag.String("date", "", "target date YYYY-MM-DD (default: today)")
	pretty := flag.Bool("pretty", false, "indent JSON output")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}

	log := zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Str("run_id", uuid.NewString()).
		Logger()

	if *weatherPath == "" {
		log.Fatal().Msg("-weather is required")
	}

	targetDate := time.Now()
	if *dateStr != "" {
		var err error
		targetDate, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			log.Fatal().Err(err).Str("date", *dateStr).Msg("invalid -date, expected YYYY-MM-DD")
		}
	}

	ctx := context.Background()

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    envName(),
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        os.Getenv("OTEL_ENABLED") == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	weather, err := loadWeather(*weatherPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *weatherPath).Msg("failed to load weather document")
	}

	var airQuality *sunset.AirQualityDocument
	if *airQualityPath != "" {
		airQuality, err = loadAirQuality(*airQualityPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *airQualityPath).Msg("failed to load air quality document")
		}
	}

	analyzer := sunset.NewAnalyzer(sunset.AnalyzerConfig{Logger: log})

	result, err := analyzer.Analyze(ctx, targetDate, weather, airQuality)
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		log.Fatal().Err(err).Msg("failed to encode result")
	}
}

func envName() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}

func loadWeather(path string) (*sunset.WeatherDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc sunset.WeatherDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func loadAirQuality(path string) (*sunset.AirQualityDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc sunset.AirQualityDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
