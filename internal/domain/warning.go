package domain

import (
	"fmt"
	"time"
)

// WarningType groups DWD warning events into user-facing categories.
type WarningType int

const (
	WarningGeneral WarningType = iota
	WarningFrost
	WarningThunder
	WarningThunderstorm
	WarningStorm
	WarningRain
	WarningSnow
	WarningHeat
)

var warningTypeNames = [...]string{
	WarningGeneral:      "general",
	WarningFrost:        "frost",
	WarningThunder:      "thunder",
	WarningThunderstorm: "thunderstorm",
	WarningStorm:        "storm",
	WarningRain:         "rain",
	WarningSnow:         "snow",
	WarningHeat:         "heat",
}

func (t WarningType) String() string {
	if t < 0 || int(t) >= len(warningTypeNames) {
		return fmt.Sprintf("warning(%d)", int(t))
	}
	return warningTypeNames[t]
}

// MarshalText encodes the warning type by name.
func (t WarningType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Severity follows the CAP 1.2 severity vocabulary. The zero value marks an
// unset severity and is never produced by [ParseSeverity].
type Severity int

const (
	SeverityNone Severity = iota
	SeverityUnknown
	SeverityMinor
	SeverityModerate
	SeveritySevere
	SeverityExtreme
)

var severityNames = [...]string{
	SeverityNone:     "none",
	SeverityUnknown:  "unknown",
	SeverityMinor:    "minor",
	SeverityModerate: "moderate",
	SeveritySevere:   "severe",
	SeverityExtreme:  "extreme",
}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Certainty follows the CAP 1.2 certainty vocabulary.
type Certainty int

const (
	CertaintyUnknown Certainty = iota
	CertaintyUnlikely
	CertaintyPossible
	CertaintyLikely
	CertaintyObserved
)

var certaintyNames = [...]string{
	CertaintyUnknown:  "unknown",
	CertaintyUnlikely: "unlikely",
	CertaintyPossible: "possible",
	CertaintyLikely:   "likely",
	CertaintyObserved: "observed",
}

func (c Certainty) String() string {
	if c < 0 || int(c) >= len(certaintyNames) {
		return fmt.Sprintf("certainty(%d)", int(c))
	}
	return certaintyNames[c]
}

// MarshalText encodes the certainty by name.
func (c Certainty) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// MinTime and MaxTime stand in for missing warning onset and expiry, so a
// warning without them counts as always started and never expiring.
var (
	MinTime = time.Time{}
	MaxTime = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// Warning is one active or forecast alert. EndTime is expected to be at or
// after StartTime but this is not enforced.
type Warning struct {
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	Type      WarningType `json:"type"`
	Severity  Severity    `json:"severity"`
	Certainty Certainty   `json:"certainty"`
	ShortText string      `json:"short_text"`
	Headline  string      `json:"headline"`
	FullText  string      `json:"full_text"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s-%s: %s (%s %s %s)",
		w.StartTime.Format(time.DateTime), w.EndTime.Format(time.DateTime),
		w.ShortText, w.Severity, w.Type, w.Certainty)
}
