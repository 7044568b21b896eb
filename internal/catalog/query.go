package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
)

// ResultLimit caps the number of results of every query.
const ResultLimit = 10

// PlaceholderStationName is the catalog's name for synthetic grid points
// without a real station behind them.
const PlaceholderStationName = "SWIS-PUNKT"

func isPlaceholder(s domain.Station) bool {
	return strings.EqualFold(s.Name(), PlaceholderStationName)
}

type scored[T any] struct {
	item  T
	score float64
}

// rank sorts candidates by ascending score, keeping catalog order on ties,
// and returns at most ResultLimit items.
func rank[T any](candidates []scored[T]) []T {
	slices.SortStableFunc(candidates, func(a, b scored[T]) int {
		return cmp.Compare(a.score, b.score)
	})
	n := min(len(candidates), ResultLimit)
	out := make([]T, n)
	for i := range n {
		out[i] = candidates[i].item
	}
	return out
}

// Nearest returns the stations closest to loc by great-circle distance,
// skipping placeholder stations.
func Nearest(stations []domain.Station, loc domain.Location) []domain.Station {
	candidates := make([]scored[domain.Station], 0, len(stations))
	for _, s := range stations {
		if isPlaceholder(s) {
			continue
		}
		candidates = append(candidates, scored[domain.Station]{s, s.Location.DistanceKm(loc)})
	}
	return rank(candidates)
}

// SearchStations returns the stations whose names are closest to query by
// case-insensitive edit distance, skipping placeholder stations.
func SearchStations(stations []domain.Station, query string) []domain.Station {
	q := strings.ToLower(query)
	candidates := make([]scored[domain.Station], 0, len(stations))
	for _, s := range stations {
		if isPlaceholder(s) {
			continue
		}
		d := levenshtein.ComputeDistance(strings.ToLower(s.Name()), q)
		candidates = append(candidates, scored[domain.Station]{s, float64(d)})
	}
	return rank(candidates)
}

// SearchCells ranks cells by the smaller edit distance of their full and
// short names to query.
func SearchCells(cells []domain.WarningCell, query string) []domain.WarningCell {
	q := strings.ToLower(query)
	candidates := make([]scored[domain.WarningCell], 0, len(cells))
	for _, c := range cells {
		d := min(
			levenshtein.ComputeDistance(strings.ToLower(c.Name), q),
			levenshtein.ComputeDistance(strings.ToLower(c.ShortName), q),
		)
		candidates = append(candidates, scored[domain.WarningCell]{c, float64(d)})
	}
	return rank(candidates)
}
