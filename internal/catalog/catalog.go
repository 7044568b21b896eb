// Package catalog converts parsed catalog tables into stations and warning
// cells and answers proximity and name queries over them.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/table"
)

// Column names accepted for each station field.
var (
	stationIDColumns        = []string{"id"}
	stationNameColumns      = []string{"name"}
	stationLatitudeColumns  = []string{"nb.", "lat"}
	stationLongitudeColumns = []string{"el.", "lon"}
	stationElevationColumns = []string{"elev"}
)

// Column names of the warn-cell CSV.
const (
	cellIDColumn        = "# warncellid"
	cellNameColumn      = "name"
	cellShortNameColumn = "kurzname"
)

// StationsFromRows builds stations from MOSMIX station catalog rows. Rows
// missing a field are dropped; a present but malformed number fails the whole
// catalog. Coordinates are in degrees and decimal minutes.
func StationsFromRows(rows []table.Row) ([]domain.Station, error) {
	stations := make([]domain.Station, 0, len(rows))
	for i, row := range rows {
		id, ok := lookup(row, stationIDColumns)
		if !ok {
			continue
		}
		name, ok := lookup(row, stationNameColumns)
		if !ok {
			continue
		}
		latText, ok := lookup(row, stationLatitudeColumns)
		if !ok {
			continue
		}
		lonText, ok := lookup(row, stationLongitudeColumns)
		if !ok {
			continue
		}
		elevText, ok := lookup(row, stationElevationColumns)
		if !ok {
			continue
		}

		lat, err := parseNumber(latText)
		if err != nil {
			return nil, fmt.Errorf("station row %d latitude: %w", i, err)
		}
		lon, err := parseNumber(lonText)
		if err != nil {
			return nil, fmt.Errorf("station row %d longitude: %w", i, err)
		}
		elev, err := parseNumber(elevText)
		if err != nil {
			return nil, fmt.Errorf("station row %d elevation: %w", i, err)
		}

		stations = append(stations, domain.Station{
			ID: strings.TrimSpace(id),
			Location: domain.Location{
				Name:      strings.TrimSpace(name),
				System:    domain.DegreesDecimalMinutes,
				Longitude: lon,
				Latitude:  lat,
			},
			Elevation: elev,
		})
	}
	return stations, nil
}

// CellsFromRows builds warning cells from warn-cell CSV rows, dropping rows
// that lack any of the id, name or short name columns.
func CellsFromRows(rows []table.Row) []domain.WarningCell {
	cells := make([]domain.WarningCell, 0, len(rows))
	for _, row := range rows {
		id, ok := row[cellIDColumn]
		if !ok {
			continue
		}
		name, ok := row[cellNameColumn]
		if !ok {
			continue
		}
		short, ok := row[cellShortNameColumn]
		if !ok {
			continue
		}
		cells = append(cells, domain.WarningCell{
			ID:        strings.TrimSpace(id),
			Name:      strings.TrimSpace(name),
			ShortName: strings.TrimSpace(short),
		})
	}
	return cells
}

func lookup(row table.Row, names []string) (string, bool) {
	for _, n := range names {
		if v, ok := row[n]; ok {
			return v, true
		}
	}
	return "", false
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", domain.ErrParse, s)
	}
	return v, nil
}
