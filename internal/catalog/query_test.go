package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
)

func station(id, name string, lat, lon float64) domain.Station {
	return domain.Station{
		ID:       id,
		Location: domain.Location{Name: name, System: domain.DecimalDegrees, Latitude: lat, Longitude: lon},
	}
}

func ids(stations []domain.Station) []string {
	out := make([]string, len(stations))
	for i, s := range stations {
		out[i] = s.ID
	}
	return out
}

func TestNearest_ExcludesPlaceholder(t *testing.T) {
	target := domain.Location{System: domain.DecimalDegrees, Latitude: 52.5, Longitude: 13.4}
	stations := []domain.Station{
		station("far", "MUENCHEN", 48.1, 11.6),
		station("grid", "swis-punkt", 52.5, 13.4),
		station("near", "BERLIN", 52.47, 13.40),
		station("mid", "HAMBURG", 53.6, 10.0),
	}

	got := Nearest(stations, target)
	assert.Equal(t, []string{"near", "mid", "far"}, ids(got))
}

func TestNearest_LimitsResults(t *testing.T) {
	target := domain.Location{System: domain.DecimalDegrees}
	var stations []domain.Station
	for i := 15; i > 0; i-- {
		stations = append(stations, station(fmt.Sprint(i), "S", 0, float64(i)))
	}

	got := Nearest(stations, target)
	require.Len(t, got, ResultLimit)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "10", got[9].ID)
}

func TestNearest_ConvertsCatalogCoordinates(t *testing.T) {
	target := domain.Location{System: domain.DecimalDegrees, Latitude: 52.4667, Longitude: 13.4}
	ddm := domain.Station{ID: "ddm", Location: domain.Location{Name: "TEMPELHOF", System: domain.DegreesDecimalMinutes, Latitude: 52.28, Longitude: 13.24}}
	dd := station("dd", "OTHER", 52.28, 13.24)

	got := Nearest([]domain.Station{dd, ddm}, target)
	assert.Equal(t, []string{"ddm", "dd"}, ids(got))
}

func TestSearchStations(t *testing.T) {
	stations := []domain.Station{
		station("1", "HAMBURG", 0, 0),
		station("2", "BERLIN-TEMPELHOF", 0, 0),
		station("3", "BERLIN", 0, 0),
		station("4", "SWIS-PUNKT", 0, 0),
		station("5", "BERLIN", 0, 0),
	}

	got := SearchStations(stations, "berlin")
	require.Len(t, got, 4)
	// Exact matches first in catalog order.
	assert.Equal(t, []string{"3", "5", "1", "2"}, ids(got))

	assert.NotContains(t, ids(SearchStations(stations, "swis-punkt")), "4")
}

func TestSearchCells_UsesBestOfNameAndShortName(t *testing.T) {
	cells := []domain.WarningCell{
		{ID: "a", Name: "Kreis Mettmann", ShortName: "Mettmann"},
		{ID: "b", Name: "Stadt Düsseldorf", ShortName: "Düsseldorf"},
		{ID: "c", Name: "Düsseldorf-Nord", ShortName: "D-Nord"},
	}

	got := SearchCells(cells, "DÜSSELDORF")
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	assert.Equal(t, "a", got[2].ID)
}

func TestSearch_Empty(t *testing.T) {
	assert.Empty(t, SearchStations(nil, "x"))
	assert.Empty(t, SearchCells(nil, "x"))
	assert.Empty(t, Nearest(nil, domain.Location{}))
}
