// Package alert extracts warnings from DWD CAP 1.2 alert documents.
package alert

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/couchcryptid/weather-forecast-service/internal/domain"
	"github.com/couchcryptid/weather-forecast-service/internal/xmlutil"
)

// eventCodeSystem is the valueName of the eventCode carrying the DWD event
// number.
const eventCodeSystem = "II"

const unknownVocabulary = "unknown"

type capAlert struct {
	Identifier string    `xml:"identifier"`
	Status     string    `xml:"status"`
	MsgType    string    `xml:"msgType"`
	Infos      []capInfo `xml:"info"`
}

type capInfo struct {
	Language    string       `xml:"language"`
	Event       string       `xml:"event"`
	Severity    string       `xml:"severity"`
	Certainty   string       `xml:"certainty"`
	EventCodes  []namedValue `xml:"eventCode"`
	Onset       string       `xml:"onset"`
	Expires     string       `xml:"expires"`
	Headline    string       `xml:"headline"`
	Description string       `xml:"description"`
	Areas       []capArea    `xml:"area"`
}

type capArea struct {
	Description string       `xml:"areaDesc"`
	Geocodes    []namedValue `xml:"geocode"`
}

type namedValue struct {
	Name  string `xml:"valueName"`
	Value string `xml:"value"`
}

// Document is a decoded CAP alert.
type Document struct {
	Identifier string
	Status     string
	MsgType    string
	infos      []capInfo
}

// Decode reads one CAP alert document.
func Decode(r io.Reader) (*Document, error) {
	var raw capAlert
	if err := xmlutil.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode cap: %w: %w", domain.ErrParse, err)
	}
	return &Document{
		Identifier: strings.TrimSpace(raw.Identifier),
		Status:     strings.TrimSpace(raw.Status),
		MsgType:    strings.TrimSpace(raw.MsgType),
		infos:      raw.Infos,
	}, nil
}

// Warning builds a warning from the first info block. It reports false when
// the document has no info block. Missing severity or certainty is read as
// unknown; a value outside the CAP vocabulary is an error. Onset and expiry
// that do not parse become domain.MinTime and domain.MaxTime.
func (d *Document) Warning() (domain.Warning, bool, error) {
	if len(d.infos) == 0 {
		return domain.Warning{}, false, nil
	}
	info := d.infos[0]

	severity, err := domain.ParseSeverity(orUnknown(info.Severity))
	if err != nil {
		return domain.Warning{}, false, fmt.Errorf("alert %s: %w", d.Identifier, err)
	}
	certainty, err := domain.ParseCertainty(orUnknown(info.Certainty))
	if err != nil {
		return domain.Warning{}, false, fmt.Errorf("alert %s: %w", d.Identifier, err)
	}

	code := "-1"
	for _, ec := range info.EventCodes {
		if strings.EqualFold(strings.TrimSpace(ec.Name), eventCodeSystem) {
			code = strings.TrimSpace(ec.Value)
			break
		}
	}

	return domain.Warning{
		StartTime: parseTime(info.Onset, domain.MinTime),
		EndTime:   parseTime(info.Expires, domain.MaxTime),
		Type:      domain.ClassifyWarningEvent(code),
		Severity:  severity,
		Certainty: certainty,
		ShortText: strings.TrimSpace(info.Event),
		Headline:  strings.TrimSpace(info.Headline),
		FullText:  strings.TrimSpace(info.Description),
	}, true, nil
}

// AppliesToCell reports whether any area geocode of the alert names the cell.
func (d *Document) AppliesToCell(cell domain.WarningCell) bool {
	for _, info := range d.infos {
		for _, area := range info.Areas {
			for _, g := range area.Geocodes {
				v := strings.TrimSpace(g.Value)
				if v != "" && strings.EqualFold(v, cell.ID) {
					return true
				}
			}
		}
	}
	return false
}

// AppliesToLocation is not implemented: CAP areas are matched by cell only.
func (d *Document) AppliesToLocation(domain.Location) (bool, error) {
	return false, fmt.Errorf("match alert by location: %w", domain.ErrUnsupported)
}

func orUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return unknownVocabulary
	}
	return s
}

func parseTime(s string, fallback time.Time) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return t.UTC()
}
