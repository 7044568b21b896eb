// Command stations looks up DWD MOSMIX stations and warning cells, the ids a
// forecast service instance is configured with.
//
// Usage:
//
//	go run ./cmd/stations -name tempelhof
//	go run ./cmd/stations -lat 52.52 -lon 13.405
//	go run ./cmd/stations -cells dortmund
//	go run ./cmd/stations -forecast 10384 -cell 111000000
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/weather-forecast-service/internal/adapter/dwd"
	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/observability"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	name := flag.String("name", "", "search stations by name")
	lat := flag.String("lat", "", "latitude in decimal degrees, with -lon")
	lon := flag.String("lon", "", "longitude in decimal degrees, with -lat")
	cells := flag.String("cells", "", "search warning cells by name")
	forecast := flag.String("forecast", "", "print the daily forecast of a station id")
	cell := flag.String("cell", "", "warning cell id to include with -forecast")
	timeout := flag.Duration("timeout", 30*time.Second, "DWD request timeout")
	verbose := flag.Bool("v", false, "log requests")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *verbose {
		logger = sharedobs.NewLogger("debug", "text")
	}
	client := dwd.NewClient(*timeout, logger, observability.NewUnregisteredMetrics())

	ctx, cancel := context.WithTimeout(context.Background(), 2*(*timeout))
	defer cancel()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	switch {
	case *name != "":
		stations, err := client.SearchStations(ctx, *name)
		if err != nil {
			return err
		}
		printStations(w, stations, nil)
	case *lat != "" || *lon != "":
		loc, err := parseLocation(*lat, *lon)
		if err != nil {
			return err
		}
		stations, err := client.ClosestStations(ctx, loc)
		if err != nil {
			return err
		}
		printStations(w, stations, &loc)
	case *cells != "":
		found, err := client.SearchWarningCells(ctx, *cells)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "ID\tNAME\tSHORT NAME\tKIND")
		for _, c := range found {
			kind := "district"
			if c.IsCommune() {
				kind = "commune"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.Name, c.ShortName, kind)
		}
	case *forecast != "":
		return printForecast(ctx, w, client, *forecast, *cell)
	default:
		flag.Usage()
		return errors.New("one of -name, -lat/-lon, -cells or -forecast is required")
	}
	return nil
}

func parseLocation(lat, lon string) (domain.Location, error) {
	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("invalid -lat %q", lat)
	}
	lo, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("invalid -lon %q", lon)
	}
	return domain.Location{System: domain.DecimalDegrees, Latitude: la, Longitude: lo}, nil
}

func printStations(w io.Writer, stations []domain.Station, from *domain.Location) {
	fmt.Fprintln(w, "ID\tNAME\tLAT\tLON\tELEV\tDISTANCE")
	for _, s := range stations {
		dd := s.Location.As(domain.DecimalDegrees)
		distance := "-"
		if from != nil {
			distance = fmt.Sprintf("%.1f km", s.Location.DistanceKm(*from))
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.4f\t%.0f\t%s\n", s.ID, s.Name(), dd.Latitude, dd.Longitude, s.Elevation, distance)
	}
}

func printForecast(ctx context.Context, w io.Writer, client *dwd.Client, stationID, cellID string) error {
	points, err := client.Forecast(ctx, domain.Station{ID: stationID})
	if err != nil {
		return err
	}
	var warnings []domain.Warning
	if cellID != "" {
		warnings, err = client.WarningsForCell(ctx, domain.WarningCell{ID: cellID})
		if err != nil {
			return err
		}
	}
	local := make([]domain.DataPoint, len(points))
	for i, p := range points {
		p.Time = p.Time.Local()
		local[i] = p
	}
	for _, day := range domain.Summarize(local, warnings) {
		fmt.Fprintln(w, day.String())
	}
	return nil
}
