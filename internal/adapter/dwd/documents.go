package dwd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/couchcryptid/weather-forecast-service/internal/alert"
	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/mosmix"
)

// Forecast downloads the latest MOSMIX_L forecast of a station. Series of all
// archive documents carrying the station are concatenated in archive order.
func (c *Client) Forecast(ctx context.Context, station domain.Station) ([]domain.DataPoint, error) {
	body, err := c.fetch(ctx, resourceForecast, c.forecastURL(station.ID))
	if err != nil {
		return nil, err
	}
	entries, err := archiveEntries(body)
	if err != nil {
		return nil, fmt.Errorf("forecast %s: %w", station.ID, err)
	}

	points := make([]domain.DataPoint, 0)
	for _, e := range entries {
		doc, err := mosmix.Decode(bytes.NewReader(e.Data))
		if err != nil {
			c.logger.Warn("skipping undecodable forecast document", "entry", e.Name, "error", err)
			c.countSkipped(resourceForecast)
			continue
		}
		if !doc.HasStation(station.ID) {
			continue
		}
		series, err := doc.Series(station.ID)
		if err != nil {
			return nil, fmt.Errorf("forecast %s: %w", station.ID, err)
		}
		points = append(points, series...)
	}
	return points, nil
}

// WarningsForCell downloads the warning archive covering cell and returns
// the warnings that apply to it.
func (c *Client) WarningsForCell(ctx context.Context, cell domain.WarningCell) ([]domain.Warning, error) {
	return c.warnings(ctx, c.warningsURL(cell), func(doc *alert.Document) (bool, error) {
		return doc.AppliesToCell(cell), nil
	})
}

// WarningsForLocation reads the commune archive but CAP areas are not matched
// against coordinates, so it always fails, with [domain.ErrUnsupported]
// unless the download itself fails first.
func (c *Client) WarningsForLocation(ctx context.Context, loc domain.Location) ([]domain.Warning, error) {
	_, err := c.warnings(ctx, c.communeOrDistrictURL("COMMUNEUNION"), func(doc *alert.Document) (bool, error) {
		return doc.AppliesToLocation(loc)
	})
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("warnings for location: %w", domain.ErrUnsupported)
}

func (c *Client) warnings(ctx context.Context, url string, applies func(*alert.Document) (bool, error)) ([]domain.Warning, error) {
	body, err := c.fetch(ctx, resourceWarnings, url)
	if err != nil {
		return nil, err
	}
	entries, err := archiveEntries(body)
	if err != nil {
		return nil, fmt.Errorf("warnings: %w", err)
	}

	warnings := make([]domain.Warning, 0)
	for _, e := range entries {
		doc, err := alert.Decode(bytes.NewReader(e.Data))
		if err != nil {
			c.logger.Warn("skipping undecodable warning document", "entry", e.Name, "error", err)
			c.countSkipped(resourceWarnings)
			continue
		}
		ok, err := applies(doc)
		if err != nil {
			return nil, fmt.Errorf("warnings: %w", err)
		}
		if !ok {
			continue
		}
		w, ok, err := doc.Warning()
		if err != nil {
			return nil, fmt.Errorf("warnings: %w", err)
		}
		if ok {
			warnings = append(warnings, w)
		}
	}
	return warnings, nil
}
