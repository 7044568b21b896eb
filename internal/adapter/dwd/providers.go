package dwd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/refresh"
)

// StationProvider serves one MOSMIX station and one warning cell.
type StationProvider struct {
	client  *Client
	station domain.Station
	cell    domain.WarningCell
}

// NewStationProvider creates a provider for the given station and cell ids.
// The ids are used as given, without a catalog lookup.
func NewStationProvider(client *Client, stationID, cellID string) *StationProvider {
	return &StationProvider{
		client:  client,
		station: domain.Station{ID: stationID},
		cell:    domain.WarningCell{ID: cellID},
	}
}

// Identifier returns "<station>-<cell>".
func (p *StationProvider) Identifier() string {
	return p.station.ID + "-" + p.cell.ID
}

func (p *StationProvider) Forecast(ctx context.Context) ([]domain.DataPoint, error) {
	return p.client.Forecast(ctx, p.station)
}

func (p *StationProvider) Warnings(ctx context.Context) ([]domain.Warning, error) {
	return p.client.WarningsForCell(ctx, p.cell)
}

// LocationProvider serves an arbitrary location from its nearest station.
// The station is looked up once and then remembered.
type LocationProvider struct {
	client   *Client
	location domain.Location

	mu       sync.Mutex
	resolved bool
	station  *domain.Station
}

// NewLocationProvider creates a provider for loc.
func NewLocationProvider(client *Client, loc domain.Location) *LocationProvider {
	return &LocationProvider{client: client, location: loc}
}

// Identifier returns "<lon>-<lat>" in the location's own coordinate system.
func (p *LocationProvider) Identifier() string {
	return strconv.FormatFloat(p.location.Longitude, 'f', -1, 64) + "-" +
		strconv.FormatFloat(p.location.Latitude, 'f', -1, 64)
}

// Resolve looks up the nearest station unless that already succeeded. A
// catalog without any station resolves to no station.
func (p *LocationProvider) Resolve(ctx context.Context) error {
	_, err := p.nearest(ctx)
	return err
}

// Station returns the resolved station, if any.
func (p *LocationProvider) Station() (domain.Station, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.station == nil {
		return domain.Station{}, false
	}
	return *p.station, true
}

// Forecast returns the nearest station's forecast, or no points when there
// is no station.
func (p *LocationProvider) Forecast(ctx context.Context) ([]domain.DataPoint, error) {
	station, err := p.nearest(ctx)
	if err != nil {
		return nil, err
	}
	if station == nil {
		return []domain.DataPoint{}, nil
	}
	return p.client.Forecast(ctx, *station)
}

func (p *LocationProvider) Warnings(ctx context.Context) ([]domain.Warning, error) {
	return p.client.WarningsForLocation(ctx, p.location)
}

func (p *LocationProvider) nearest(ctx context.Context) (*domain.Station, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.resolved {
		return p.station, nil
	}
	stations, err := p.client.ClosestStations(ctx, p.location)
	if err != nil {
		return nil, fmt.Errorf("resolve nearest station: %w", err)
	}
	p.resolved = true
	if len(stations) > 0 {
		s := stations[0]
		p.station = &s
		p.client.logger.Info("resolved nearest station",
			"location", p.Identifier(), "station", s.ID, "name", s.Name())
	}
	return p.station, nil
}

// Target selects what a provider serves: either a station and warning cell
// pair or a location.
type Target struct {
	StationID string
	CellID    string
	Location  *domain.Location
}

// ErrNoTarget is returned by NewProvider when the target names neither a
// station pair nor a location.
var ErrNoTarget = errors.New("provider needs a station and warning cell or a location")

// NewProvider creates the provider variant matching t. A complete station
// pair wins over a location.
func NewProvider(client *Client, t Target) (refresh.Provider, error) {
	switch {
	case t.StationID != "" && t.CellID != "":
		return NewStationProvider(client, t.StationID, t.CellID), nil
	case t.Location != nil:
		return NewLocationProvider(client, *t.Location), nil
	default:
		return nil, ErrNoTarget
	}
}
