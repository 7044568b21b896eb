package dwd

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/weather-forecast-service/internal/catalog"
	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/observability"
	"github.com/couchcryptid/weather-forecast-service/internal/table"
)

// Default DWD locations.
const (
	DefaultStationCatalogURL  = "https://www.dwd.de/DE/leistungen/met_verfahren_mosmix/mosmix_stationskatalog.cfg?view=nasPublication"
	DefaultWarnCellCatalogURL = "https://www.dwd.de/DE/leistungen/opendata/help/warnungen/cap_warncellids_csv.csv?__blob=publicationFile&v=3"
	DefaultOpenDataURL        = "https://opendata.dwd.de"
)

// Resource names used in logs and the metrics "resource" label.
const (
	resourceStationCatalog  = "station_catalog"
	resourceWarnCellCatalog = "warncell_catalog"
	resourceForecast        = "forecast"
	resourceWarnings        = "warnings"
)

// maxBodySize bounds a single download; the commune warning archive is the
// largest at a few megabytes.
const maxBodySize = 64 << 20

// Client reads catalogs, MOSMIX forecasts and CAP warnings from DWD open data.
type Client struct {
	httpClient        *http.Client
	stationCatalogURL string
	warnCellURL       string
	openDataURL       string
	logger            *slog.Logger
	metrics           *observability.Metrics
	catalogs          singleflight.Group
}

// NewClient creates a DWD open-data client.
func NewClient(timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		stationCatalogURL: DefaultStationCatalogURL,
		warnCellURL:       DefaultWarnCellCatalogURL,
		openDataURL:       DefaultOpenDataURL,
		logger:            logger.With("component", "dwd"),
		metrics:           metrics,
	}
}

// Endpoints overrides DWD locations, for mirrors and tests. Empty fields keep
// the current value.
type Endpoints struct {
	StationCatalog  string
	WarnCellCatalog string
	OpenData        string
}

// SetEndpoints replaces the configured DWD locations. It must be called
// before the client is used.
func (c *Client) SetEndpoints(e Endpoints) {
	if e.StationCatalog != "" {
		c.stationCatalogURL = e.StationCatalog
	}
	if e.WarnCellCatalog != "" {
		c.warnCellURL = e.WarnCellCatalog
	}
	if e.OpenData != "" {
		c.openDataURL = strings.TrimRight(e.OpenData, "/")
	}
}

// Stations returns the MOSMIX station catalog. Concurrent callers share one
// download.
func (c *Client) Stations(ctx context.Context) ([]domain.Station, error) {
	v, err, _ := c.catalogs.Do(resourceStationCatalog, func() (any, error) {
		body, err := c.fetch(ctx, resourceStationCatalog, c.stationCatalogURL)
		if err != nil {
			return nil, err
		}
		rows, err := table.ReadAll(table.NewFixedWidthReader(bytes.NewReader(body)))
		if err != nil {
			return nil, fmt.Errorf("station catalog: %w", err)
		}
		stations, err := catalog.StationsFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("station catalog: %w", err)
		}
		return stations, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Station), nil
}

// WarningCells returns the warn-cell catalog.
func (c *Client) WarningCells(ctx context.Context) ([]domain.WarningCell, error) {
	v, err, _ := c.catalogs.Do(resourceWarnCellCatalog, func() (any, error) {
		body, err := c.fetch(ctx, resourceWarnCellCatalog, c.warnCellURL)
		if err != nil {
			return nil, err
		}
		rows, err := table.ReadAll(table.NewDelimitedReader(bytes.NewReader(body), ';'))
		if err != nil {
			return nil, fmt.Errorf("warn-cell catalog: %w", err)
		}
		return catalog.CellsFromRows(rows), nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.WarningCell), nil
}

// Station looks up a station by id.
func (c *Client) Station(ctx context.Context, id string) (domain.Station, error) {
	stations, err := c.Stations(ctx)
	if err != nil {
		return domain.Station{}, err
	}
	for _, s := range stations {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Station{}, fmt.Errorf("station %q: %w", id, domain.ErrNotFound)
}

// ClosestStations returns the stations nearest to loc.
func (c *Client) ClosestStations(ctx context.Context, loc domain.Location) ([]domain.Station, error) {
	stations, err := c.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Nearest(stations, loc), nil
}

// SearchStations returns the stations whose names best match name.
func (c *Client) SearchStations(ctx context.Context, name string) ([]domain.Station, error) {
	stations, err := c.Stations(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.SearchStations(stations, name), nil
}

// SearchWarningCells returns the warning cells whose names best match name.
func (c *Client) SearchWarningCells(ctx context.Context, name string) ([]domain.WarningCell, error) {
	cells, err := c.WarningCells(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.SearchCells(cells, name), nil
}

func (c *Client) forecastURL(stationID string) string {
	return fmt.Sprintf("%s/weather/local_forecasts/mos/MOSMIX_L/single_stations/%s/kml/MOSMIX_L_LATEST_%s.kmz",
		c.openDataURL, stationID, stationID)
}

func (c *Client) warningsURL(cell domain.WarningCell) string {
	kind := "DISTRICT"
	if cell.IsCommune() {
		kind = "COMMUNEUNION"
	}
	return c.communeOrDistrictURL(kind)
}

func (c *Client) communeOrDistrictURL(kind string) string {
	return fmt.Sprintf("%s/weather/alerts/cap/%s_CELLS_STAT/Z_CAP_C_EDZW_LATEST_PVW_STATUS_PREMIUMCELLS_%s_DE.zip",
		c.openDataURL, kind, kind)
}

// fetch downloads url and returns the body. Network failures and non-200
// responses are transport errors.
func (c *Client) fetch(ctx context.Context, resource, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.observeDuration(resource, time.Since(start))
	if err != nil {
		c.countRequest(resource, "error")
		return nil, fmt.Errorf("%s request: %w: %w", resource, domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.countRequest(resource, "error")
		return nil, fmt.Errorf("%s request: %w: status %d", resource, domain.ErrTransport, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.countRequest(resource, "error")
		return nil, fmt.Errorf("%s read body: %w: %w", resource, domain.ErrTransport, err)
	}
	c.countRequest(resource, "success")
	c.logger.Debug("dwd request complete", "resource", resource, "bytes", len(body), "duration", time.Since(start))
	return body, nil
}

type archiveEntry struct {
	Name string
	Data []byte
}

// archiveEntries returns the regular files of a ZIP (or KMZ) archive.
func archiveEntries(data []byte) ([]archiveEntry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w: %w", domain.ErrParse, err)
	}
	entries := make([]archiveEntry, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		b, err := readArchiveFile(f)
		if err != nil {
			return nil, fmt.Errorf("read archive entry %s: %w: %w", f.Name, domain.ErrParse, err)
		}
		entries = append(entries, archiveEntry{Name: f.Name, Data: b})
	}
	return entries, nil
}

func readArchiveFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, maxBodySize))
}

func (c *Client) countRequest(resource, outcome string) {
	if c.metrics != nil {
		c.metrics.DWDRequests.WithLabelValues(resource, outcome).Inc()
	}
}

func (c *Client) observeDuration(resource string, d time.Duration) {
	if c.metrics != nil {
		c.metrics.DWDRequestDuration.WithLabelValues(resource).Observe(d.Seconds())
	}
}

func (c *Client) countSkipped(resource string) {
	if c.metrics != nil {
		c.metrics.SkippedDocuments.WithLabelValues(resource).Inc()
	}
}
