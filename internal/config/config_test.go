package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
)

const (
	testStationID = "10384"
	testCellID    = "111000000"
)

func setStationPair(t *testing.T) {
	t.Helper()
	t.Setenv("DWD_STATION_ID", testStationID)
	t.Setenv("DWD_WARNCELL_ID", testCellID)
}

func TestLoad_Defaults(t *testing.T) {
	setStationPair(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, testStationID, cfg.StationID)
	assert.Equal(t, testCellID, cfg.WarnCellID)
	assert.Nil(t, cfg.Location)
	assert.Equal(t, 30*time.Second, cfg.DWDTimeout)
	assert.Equal(t, 16, cfg.CacheEntries)
	assert.Equal(t, []time.Duration{
		5*time.Hour + 30*time.Minute,
		11*time.Hour + 30*time.Minute,
		17*time.Hour + 30*time.Minute,
		23*time.Hour + 30*time.Minute,
	}, cfg.RefreshSchedule)
	assert.Equal(t, 5*time.Minute, cfg.CheckInterval)
	assert.Equal(t, "Europe/Berlin", cfg.ScheduleLocation.String())
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "weather-forecast-views", cfg.KafkaTopic)
	assert.False(t, cfg.KafkaCreateTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("LOCATION_LAT", "52.52")
	t.Setenv("LOCATION_LON", "13.405")
	t.Setenv("LOCATION_NAME", "Berlin Mitte")
	t.Setenv("REFRESH_SCHEDULE", "06:00, 18:15")
	t.Setenv("REFRESH_CHECK_INTERVAL", "1m")
	t.Setenv("SCHEDULE_TIMEZONE", "UTC")
	t.Setenv("DWD_TIMEOUT", "5s")
	t.Setenv("CACHE_MAX_ENTRIES", "4")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_TOPIC", "views")
	t.Setenv("KAFKA_CREATE_TOPIC", "true")
	t.Setenv("DWD_OPENDATA_URL", "http://mirror.local")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, &domain.Location{
		Name:      "Berlin Mitte",
		System:    domain.DecimalDegrees,
		Latitude:  52.52,
		Longitude: 13.405,
	}, cfg.Location)
	assert.Equal(t, []time.Duration{6 * time.Hour, 18*time.Hour + 15*time.Minute}, cfg.RefreshSchedule)
	assert.Equal(t, time.Minute, cfg.CheckInterval)
	assert.Equal(t, time.UTC, cfg.ScheduleLocation)
	assert.Equal(t, 5*time.Second, cfg.DWDTimeout)
	assert.Equal(t, 4, cfg.CacheEntries)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "views", cfg.KafkaTopic)
	assert.True(t, cfg.KafkaCreateTopic)
	assert.Equal(t, DWDEndpoints{OpenData: "http://mirror.local"}, cfg.DWDEndpoints)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "no target", env: map[string]string{}, want: "LOCATION_LAT"},
		{name: "station without cell", env: map[string]string{"DWD_STATION_ID": testStationID}, want: "DWD_WARNCELL_ID"},
		{name: "latitude without longitude", env: map[string]string{"LOCATION_LAT": "52.5"}, want: "LOCATION_LON"},
		{name: "latitude out of range", env: map[string]string{"LOCATION_LAT": "91", "LOCATION_LON": "13"}, want: "LOCATION_LAT"},
		{name: "bad longitude", env: map[string]string{"LOCATION_LAT": "52", "LOCATION_LON": "east"}, want: "LOCATION_LON"},
		{name: "bad shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "not-a-duration"}, want: "SHUTDOWN_TIMEOUT"},
		{name: "negative shutdown timeout", env: map[string]string{"SHUTDOWN_TIMEOUT": "-1s"}, want: "SHUTDOWN_TIMEOUT"},
		{name: "bad dwd timeout", env: map[string]string{"DWD_TIMEOUT": "bad"}, want: "DWD_TIMEOUT"},
		{name: "zero check interval", env: map[string]string{"REFRESH_CHECK_INTERVAL": "0s"}, want: "REFRESH_CHECK_INTERVAL"},
		{name: "bad schedule", env: map[string]string{"REFRESH_SCHEDULE": "05:30,25:00"}, want: "REFRESH_SCHEDULE"},
		{name: "unknown timezone", env: map[string]string{"SCHEDULE_TIMEZONE": "Mars/Olympus"}, want: "SCHEDULE_TIMEZONE"},
		{name: "zero cache", env: map[string]string{"CACHE_MAX_ENTRIES": "0"}, want: "CACHE_MAX_ENTRIES"},
		{name: "kafka without brokers", env: map[string]string{"KAFKA_ENABLED": "true", "KAFKA_BROKERS": " , "}, want: "KAFKA_BROKERS"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := tc.env["DWD_STATION_ID"]; !ok && tc.name != "no target" {
				if _, loc := tc.env["LOCATION_LAT"]; !loc {
					setStationPair(t)
				}
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoad_PairWinsOverLocation(t *testing.T) {
	setStationPair(t)
	t.Setenv("LOCATION_LAT", "52.52")
	t.Setenv("LOCATION_LON", "13.405")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testStationID, cfg.StationID)
	assert.NotNil(t, cfg.Location)
}

func TestParseSchedule(t *testing.T) {
	got, err := ParseSchedule("00:00,23:59")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{0, 23*time.Hour + 59*time.Minute}, got)

	_, err = ParseSchedule(" , ")
	require.Error(t, err)

	_, err = ParseSchedule("7am")
	require.Error(t, err)
}
