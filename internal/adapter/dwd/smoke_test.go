//go:build dwd

package dwd

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/observability"
)

// These tests hit the live DWD open-data servers.
// Run with: go test -tags=dwd ./internal/adapter/dwd/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	return NewClient(30*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
}

func TestSmoke_StationCatalog(t *testing.T) {
	c := smokeClient(t)

	s, err := c.Station(context.Background(), "10384")
	require.NoError(t, err)
	assert.Contains(t, s.Name(), "BERLIN")
	assert.InDelta(t, 52.5, s.Location.As(domain.DecimalDegrees).Latitude, 0.2)
}

func TestSmoke_ClosestStations(t *testing.T) {
	c := smokeClient(t)

	munich := domain.Location{System: domain.DecimalDegrees, Latitude: 48.14, Longitude: 11.58}
	stations, err := c.ClosestStations(context.Background(), munich)
	require.NoError(t, err)
	require.Len(t, stations, 10)
	assert.Less(t, stations[0].Location.DistanceKm(munich), 25.0)
}

func TestSmoke_Forecast(t *testing.T) {
	c := smokeClient(t)

	points, err := c.Forecast(context.Background(), domain.Station{ID: "10384"})
	require.NoError(t, err)
	require.NotEmpty(t, points)
	assert.True(t, points[len(points)-1].Time.After(points[0].Time))
	assert.InDelta(t, 10, points[0].Temperature, 40)
}

func TestSmoke_WarningCells(t *testing.T) {
	c := smokeClient(t)

	cells, err := c.SearchWarningCells(context.Background(), "Dortmund")
	require.NoError(t, err)
	require.NotEmpty(t, cells)

	_, err = c.WarningsForCell(context.Background(), cells[0])
	require.NoError(t, err)
}
