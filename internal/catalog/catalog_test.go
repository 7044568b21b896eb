package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/table"
)

const stationCatalog = `
Stations of the MOSMIX point forecast

ID       ICAO Name           nb.    el.    elev
======== ==== ============== ====== ====== ----
10384    EDDI BERLIN-TEMPEL. 52.28  13.24    48
10147    EDDH HAMBURG-FUHL.  53.38  10.00    11
P0489    ---- SWIS-PUNKT     52.30  13.20    40
`

func TestStationsFromRows_FixedWidthCatalog(t *testing.T) {
	rows, err := table.ReadAll(table.NewFixedWidthReader(strings.NewReader(stationCatalog)))
	require.NoError(t, err)

	stations, err := StationsFromRows(rows)
	require.NoError(t, err)
	require.Len(t, stations, 3)

	berlin := stations[0]
	assert.Equal(t, "10384", berlin.ID)
	assert.Equal(t, "BERLIN-TEMPEL.", berlin.Name())
	assert.Equal(t, domain.DegreesDecimalMinutes, berlin.Location.System)
	assert.Equal(t, 52.28, berlin.Location.Latitude)
	assert.Equal(t, 13.24, berlin.Location.Longitude)
	assert.Equal(t, 48.0, berlin.Elevation)
}

func TestStationsFromRows_Synonyms(t *testing.T) {
	rows := []table.Row{
		{"id": " 10384 ", "name": "BERLIN", "lat": "52.28", "lon": "13.24", "elev": "48"},
		{"id": "10385", "name": "X", "nb.": "1", "el.": "2", "elev": "3", "lat": "9", "lon": "9"},
	}

	stations, err := StationsFromRows(rows)
	require.NoError(t, err)
	require.Len(t, stations, 2)
	assert.Equal(t, "10384", stations[0].ID)
	assert.Equal(t, 52.28, stations[0].Location.Latitude)
	// nb./el. take precedence over lat/lon.
	assert.Equal(t, 1.0, stations[1].Location.Latitude)
	assert.Equal(t, 2.0, stations[1].Location.Longitude)
}

func TestStationsFromRows_DropsIncompleteRows(t *testing.T) {
	rows := []table.Row{
		{"name": "NO ID", "lat": "1", "lon": "2", "elev": "3"},
		{"id": "1", "lat": "1", "lon": "2", "elev": "3"},
		{"id": "2", "name": "NO LAT", "lon": "2", "elev": "3"},
		{"id": "3", "name": "NO LON", "lat": "1", "elev": "3"},
		{"id": "4", "name": "NO ELEV", "lat": "1", "lon": "2"},
		{"id": "5", "name": "OK", "lat": "1", "lon": "2", "elev": "3"},
	}

	stations, err := StationsFromRows(rows)
	require.NoError(t, err)
	require.Len(t, stations, 1)
	assert.Equal(t, "5", stations[0].ID)
}

func TestStationsFromRows_MalformedNumber(t *testing.T) {
	rows := []table.Row{{"id": "1", "name": "BAD", "lat": "north", "lon": "2", "elev": "3"}}

	_, err := StationsFromRows(rows)
	require.ErrorIs(t, err, domain.ErrParse)
	assert.Contains(t, err.Error(), "latitude")
}

func TestCellsFromRows(t *testing.T) {
	csv := "# warncellid;NAME;KURZNAME;KURZNAME2\n" +
		"105111000; Stadt Düsseldorf ;Düsseldorf;x\n" +
		"805111000;Stadt Dortmund;Dortmund;y\n" +
		"truncated;row\n"
	rows, err := table.ReadAll(table.NewDelimitedReader(strings.NewReader(csv), ';'))
	require.NoError(t, err)

	cells := CellsFromRows(append(rows, table.Row{"name": "no id"}))
	require.Len(t, cells, 2)
	assert.Equal(t, domain.WarningCell{ID: "105111000", Name: "Stadt Düsseldorf", ShortName: "Düsseldorf"}, cells[0])
	assert.False(t, cells[0].IsCommune())
	assert.True(t, cells[1].IsCommune())
}
