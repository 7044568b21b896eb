// Package mosmix extracts per-station forecast series from MOSMIX KML
// documents.
package mosmix

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/xmlutil"
)

// MOSMIX element names read into a DataPoint.
const (
	ElementTemperature              = "TTT"
	ElementTemperatureError         = "E_TTT"
	ElementPrecipitation            = "RR1c"
	ElementPrecipitationProbability = "wwP"
	ElementWindSpeed                = "FF"
	ElementWindSpeedError           = "E_FF"
	ElementWindDirection            = "DD"
	ElementPressure                 = "PPPP"
	ElementPressureError            = "E_PPP"
	ElementCloudCover               = "Neff"
	ElementWeather                  = "ww"
)

const kelvinOffset = 273.15

type kmlDocument struct {
	IssueTime  string      `xml:"Document>ExtendedData>ProductDefinition>IssueTime"`
	TimeSteps  []string    `xml:"Document>ExtendedData>ProductDefinition>ForecastTimeSteps>TimeStep"`
	Placemarks []placemark `xml:"Document>Placemark"`
}

type placemark struct {
	Name        string     `xml:"name"`
	Description string     `xml:"description"`
	Forecasts   []forecast `xml:"ExtendedData>Forecast"`
}

type forecast struct {
	ElementName string `xml:"elementName,attr"`
	Value       string `xml:"value"`
}

// Document is a decoded MOSMIX KML document.
type Document struct {
	IssueTime  time.Time
	TimeSteps  []time.Time
	placemarks []placemark
}

// Decode reads a MOSMIX KML document. Timesteps are normalized to UTC.
func Decode(r io.Reader) (*Document, error) {
	var raw kmlDocument
	if err := xmlutil.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode kml: %w: %w", domain.ErrParse, err)
	}

	doc := &Document{
		TimeSteps:  make([]time.Time, 0, len(raw.TimeSteps)),
		placemarks: raw.Placemarks,
	}
	for _, s := range raw.TimeSteps {
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("decode kml timestep %q: %w", s, domain.ErrParse)
		}
		doc.TimeSteps = append(doc.TimeSteps, t.UTC())
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(raw.IssueTime)); err == nil {
		doc.IssueTime = t.UTC()
	}
	return doc, nil
}

func (d *Document) placemark(stationID string) (*placemark, bool) {
	for i := range d.placemarks {
		if strings.EqualFold(strings.TrimSpace(d.placemarks[i].Name), stationID) {
			return &d.placemarks[i], true
		}
	}
	return nil, false
}

// HasStation reports whether the document carries a placemark for the station.
func (d *Document) HasStation(stationID string) bool {
	_, ok := d.placemark(stationID)
	return ok
}

// Series returns one DataPoint per document timestep for the station. Element
// arrays shorter than the timestep list leave the trailing values NaN.
func (d *Document) Series(stationID string) ([]domain.DataPoint, error) {
	pm, ok := d.placemark(stationID)
	if !ok {
		return nil, fmt.Errorf("placemark %q: %w", stationID, domain.ErrNotFound)
	}

	elements := make(map[string][]float64, len(pm.Forecasts))
	for _, f := range pm.Forecasts {
		elements[f.ElementName] = parseValues(f.Value)
	}
	at := func(name string, i int) float64 {
		values := elements[name]
		if i < len(values) {
			return values[i]
		}
		return math.NaN()
	}

	points := make([]domain.DataPoint, len(d.TimeSteps))
	for i, ts := range d.TimeSteps {
		ww := at(ElementWeather, i)
		cloud := at(ElementCloudCover, i)
		code := -1
		if !math.IsNaN(ww) {
			code = int(ww)
		}
		points[i] = domain.DataPoint{
			Time:                     ts,
			Temperature:              at(ElementTemperature, i) - kelvinOffset,
			TemperatureError:         at(ElementTemperatureError, i),
			Precipitation:            at(ElementPrecipitation, i),
			PrecipitationProbability: at(ElementPrecipitationProbability, i),
			WindSpeed:                at(ElementWindSpeed, i),
			WindSpeedError:           at(ElementWindSpeedError, i),
			WindDirection:            at(ElementWindDirection, i),
			Pressure:                 at(ElementPressure, i),
			PressureError:            at(ElementPressureError, i),
			CloudCover:               cloud,
			Weather:                  domain.ClassifyWeather(ww, cloud),
			SynopCode:                code,
		}
	}
	return points, nil
}

// parseValues splits whitespace-separated decimals; "-" and other
// unparsable tokens become NaN.
func parseValues(s string) []float64 {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			v = math.NaN()
		}
		out[i] = v
	}
	return out
}
