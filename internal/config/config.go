package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // SCHEDULE_TIMEZONE without host zoneinfo

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Forecast target: a station and warning cell pair, or a location whose
	// nearest station is looked up. The pair wins when both are set.
	StationID    string
	WarnCellID   string
	Location     *domain.Location
	DWDTimeout   time.Duration
	DWDEndpoints DWDEndpoints
	CacheEntries int

	// Refresh schedule as offsets from local midnight in ScheduleLocation.
	RefreshSchedule  []time.Duration
	CheckInterval    time.Duration
	ScheduleLocation *time.Location

	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaTopic       string
	KafkaCreateTopic bool
}

// DWDEndpoints optionally points the DWD client at mirrors. Empty fields
// keep the public DWD locations.
type DWDEndpoints struct {
	StationCatalog  string
	WarnCellCatalog string
	OpenData        string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	dwdTimeout, err := parsePositiveDuration("DWD_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	checkInterval, err := parsePositiveDuration("REFRESH_CHECK_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}

	schedule, err := ParseSchedule(sharedcfg.EnvOrDefault("REFRESH_SCHEDULE", "05:30,11:30,17:30,23:30"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_SCHEDULE: %w", err)
	}

	tz, err := time.LoadLocation(sharedcfg.EnvOrDefault("SCHEDULE_TIMEZONE", "Europe/Berlin"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_TIMEZONE: %w", err)
	}

	cacheEntries, err := strconv.Atoi(sharedcfg.EnvOrDefault("CACHE_MAX_ENTRIES", "16"))
	if err != nil || cacheEntries <= 0 {
		return nil, errors.New("invalid CACHE_MAX_ENTRIES: must be a positive integer")
	}

	location, err := parseLocation()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		StationID:        strings.TrimSpace(os.Getenv("DWD_STATION_ID")),
		WarnCellID:       strings.TrimSpace(os.Getenv("DWD_WARNCELL_ID")),
		Location:         location,
		DWDTimeout:       dwdTimeout,
		CacheEntries:     cacheEntries,
		RefreshSchedule:  schedule,
		CheckInterval:    checkInterval,
		ScheduleLocation: tz,
		KafkaEnabled:     sharedcfg.EnvOrDefault("KAFKA_ENABLED", "false") == "true",
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:       sharedcfg.EnvOrDefault("KAFKA_TOPIC", "weather-forecast-views"),
		KafkaCreateTopic: sharedcfg.EnvOrDefault("KAFKA_CREATE_TOPIC", "false") == "true",
		DWDEndpoints: DWDEndpoints{
			StationCatalog:  os.Getenv("DWD_STATION_CATALOG_URL"),
			WarnCellCatalog: os.Getenv("DWD_WARNCELL_CATALOG_URL"),
			OpenData:        os.Getenv("DWD_OPENDATA_URL"),
		},
	}

	hasPair := cfg.StationID != "" && cfg.WarnCellID != ""
	if !hasPair && cfg.Location == nil {
		if cfg.StationID != "" || cfg.WarnCellID != "" {
			return nil, errors.New("DWD_STATION_ID and DWD_WARNCELL_ID must be set together")
		}
		return nil, errors.New("DWD_STATION_ID and DWD_WARNCELL_ID, or LOCATION_LAT and LOCATION_LON, are required")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_TOPIC is required when KAFKA_ENABLED is true")
		}
	}

	return cfg, nil
}

// ParseSchedule parses comma-separated HH:MM times of day.
func ParseSchedule(s string) ([]time.Duration, error) {
	var out []time.Duration
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		t, err := time.Parse("15:04", part)
		if err != nil {
			return nil, fmt.Errorf("time of day %q: want HH:MM", part)
		}
		out = append(out, time.Duration(t.Hour())*time.Hour+time.Duration(t.Minute())*time.Minute)
	}
	if len(out) == 0 {
		return nil, errors.New("at least one time of day is required")
	}
	return out, nil
}

func parseLocation() (*domain.Location, error) {
	latStr, lonStr := os.Getenv("LOCATION_LAT"), os.Getenv("LOCATION_LON")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("LOCATION_LAT and LOCATION_LON must be set together")
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, errors.New("invalid LOCATION_LAT: want decimal degrees in [-90, 90]")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, errors.New("invalid LOCATION_LON: want decimal degrees in [-180, 180]")
	}
	return &domain.Location{
		Name:      os.Getenv("LOCATION_NAME"),
		System:    domain.DecimalDegrees,
		Latitude:  lat,
		Longitude: lon,
	}, nil
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}
