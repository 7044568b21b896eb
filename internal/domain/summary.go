package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Section is a time-of-day window of a daily summary.
type Section int

const (
	SectionMorning Section = iota
	SectionNoon
	SectionEvening
)

var sectionNames = [...]string{
	SectionMorning: "morning",
	SectionNoon:    "noon",
	SectionEvening: "evening",
}

func (s Section) String() string {
	if s < 0 || int(s) >= len(sectionNames) {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return sectionNames[s]
}

// MarshalText encodes the section by name.
func (s Section) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// sectionWindow is a half-open [from, to) time-of-day range.
type sectionWindow struct {
	section Section
	from    time.Duration
	to      time.Duration
	pick    func(a, b float64) float64
}

// Morning and evening report the lowest temperature, noon the highest.
var sectionWindows = [...]sectionWindow{
	{SectionMorning, 5 * time.Hour, 10 * time.Hour, math.Min},
	{SectionNoon, 10 * time.Hour, 15*time.Hour + 30*time.Minute, math.Max},
	{SectionEvening, 15*time.Hour + 30*time.Minute, 23 * time.Hour, math.Min},
}

// SectionSummary rolls up the points of one section.
type SectionSummary struct {
	Section     Section     `json:"section"`
	Temperature float64     `json:"-"`
	Weather     WeatherType `json:"weather"`
}

// MarshalJSON encodes a missing temperature as null.
func (s SectionSummary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Section     Section       `json:"section"`
		Temperature nullableFloat `json:"temperature"`
		Weather     WeatherType   `json:"weather"`
	}{s.Section, nullableFloat(s.Temperature), s.Weather})
}

func (s SectionSummary) String() string {
	return fmt.Sprintf("%s: %.1f °C %s", s.Section, s.Temperature, s.Weather)
}

// DaySummary is the forecast of one calendar date. Sections are nil when no
// point falls into their window.
type DaySummary struct {
	Date             time.Time       `json:"date"`
	MinTemperature   float64         `json:"-"`
	MaxTemperature   float64         `json:"-"`
	Weather          WeatherType     `json:"weather"`
	Morning          *SectionSummary `json:"morning,omitempty"`
	Noon             *SectionSummary `json:"noon,omitempty"`
	Evening          *SectionSummary `json:"evening,omitempty"`
	DetailedForecast []DataPoint     `json:"detailed_forecast"`
	Warnings         []Warning       `json:"warnings"`
}

// MarshalJSON encodes missing temperatures as null.
func (d DaySummary) MarshalJSON() ([]byte, error) {
	type plain DaySummary
	return json.Marshal(struct {
		plain
		MinTemperature nullableFloat `json:"min_temperature"`
		MaxTemperature nullableFloat `json:"max_temperature"`
	}{plain(d), nullableFloat(d.MinTemperature), nullableFloat(d.MaxTemperature)})
}

func (d DaySummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %.1f - %.1f °C %s;", d.Date.Format("Mon 2006-01-02"), d.MinTemperature, d.MaxTemperature, d.Weather)
	for _, s := range []*SectionSummary{d.Morning, d.Noon, d.Evening} {
		if s != nil {
			fmt.Fprintf(&b, " %s", s)
		}
	}
	fmt.Fprintf(&b, "; warnings: %d", len(d.Warnings))
	return b.String()
}

// Summarize buckets points by calendar date, in the location their
// timestamps already carry, and attaches each warning whose date range covers
// the day. Summaries are sorted by date.
func Summarize(points []DataPoint, warnings []Warning) []DaySummary {
	type dateKey struct {
		year  int
		month time.Month
		day   int
		zone  string
	}
	groups := make(map[dateKey][]DataPoint)
	var dates []time.Time
	for _, p := range points {
		d := truncateToDate(p.Time)
		k := dateKey{d.Year(), d.Month(), d.Day(), d.Location().String()}
		if _, ok := groups[k]; !ok {
			dates = append(dates, d)
		}
		groups[k] = append(groups[k], p)
	}
	slices.SortStableFunc(dates, func(a, b time.Time) int { return a.Compare(b) })

	out := make([]DaySummary, 0, len(dates))
	for _, d := range dates {
		k := dateKey{d.Year(), d.Month(), d.Day(), d.Location().String()}
		out = append(out, summarizeDay(d, groups[k], warningsOn(d, warnings)))
	}
	return out
}

func summarizeDay(date time.Time, points []DataPoint, warnings []Warning) DaySummary {
	day := DaySummary{
		Date:             date,
		MinTemperature:   foldTemperature(points, math.Min),
		MaxTemperature:   foldTemperature(points, math.Max),
		Weather:          dominantWeather(points),
		DetailedForecast: points,
		Warnings:         warnings,
	}
	for _, w := range sectionWindows {
		var in []DataPoint
		for _, p := range points {
			if tod := timeOfDay(p.Time); tod >= w.from && tod < w.to {
				in = append(in, p)
			}
		}
		if len(in) == 0 {
			continue
		}
		s := &SectionSummary{
			Section:     w.section,
			Temperature: foldTemperature(in, w.pick),
			Weather:     dominantWeather(in),
		}
		switch w.section {
		case SectionMorning:
			day.Morning = s
		case SectionNoon:
			day.Noon = s
		case SectionEvening:
			day.Evening = s
		}
	}
	return day
}

// foldTemperature reduces temperatures with pick, skipping NaN. It returns
// NaN only when every temperature is missing.
func foldTemperature(points []DataPoint, pick func(a, b float64) float64) float64 {
	acc := math.NaN()
	for _, p := range points {
		switch {
		case math.IsNaN(p.Temperature):
		case math.IsNaN(acc):
			acc = p.Temperature
		default:
			acc = pick(acc, p.Temperature)
		}
	}
	return acc
}

// dominantWeather returns the most frequent weather type; ties go to the
// higher enumeration value.
func dominantWeather(points []DataPoint) WeatherType {
	counts := make(map[WeatherType]int)
	for _, p := range points {
		counts[p.Weather]++
	}
	best, bestCount := WeatherNone, 0
	for w, n := range counts {
		if n > bestCount || (n == bestCount && w > best) {
			best, bestCount = w, n
		}
	}
	return best
}

func warningsOn(date time.Time, warnings []Warning) []Warning {
	out := []Warning{}
	for _, w := range warnings {
		if !date.Before(truncateToDate(w.StartTime)) && !date.After(truncateToDate(w.EndTime)) {
			out = append(out, w)
		}
	}
	return out
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func timeOfDay(t time.Time) time.Duration {
	h, m, sec := t.Clock()
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second + time.Duration(t.Nanosecond())
}
