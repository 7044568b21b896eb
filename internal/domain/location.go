package domain

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// CoordinateSystem names the notation of a Location's longitude and latitude.
type CoordinateSystem int

const (
	// DecimalDegrees is plain WGS-84 degrees: 52.5667.
	DecimalDegrees CoordinateSystem = iota
	// DegreesDecimalMinutes packs minutes into the fraction: 52.34 is 52°34'.
	DegreesDecimalMinutes
)

func (s CoordinateSystem) String() string {
	if s == DegreesDecimalMinutes {
		return "degrees_decimal_minutes"
	}
	return "decimal_degrees"
}

// MarshalText encodes the coordinate system by name.
func (s CoordinateSystem) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Location is a named point on the WGS-84 ellipsoid.
type Location struct {
	Name      string           `json:"name,omitempty"`
	System    CoordinateSystem `json:"system"`
	Longitude float64          `json:"longitude"`
	Latitude  float64          `json:"latitude"`
}

// As returns the location expressed in the target coordinate system.
func (l Location) As(target CoordinateSystem) Location {
	if l.System == target {
		return l
	}
	out := l
	out.System = target
	switch target {
	case DecimalDegrees:
		out.Longitude = ddmToDD(l.Longitude)
		out.Latitude = ddmToDD(l.Latitude)
	case DegreesDecimalMinutes:
		out.Longitude = ddToDDM(l.Longitude)
		out.Latitude = ddToDDM(l.Latitude)
	}
	return out
}

// DistanceKm returns the haversine distance between l and other in kilometers.
func (l Location) DistanceKm(other Location) float64 {
	a := l.As(DecimalDegrees)
	b := other.As(DecimalDegrees)
	return geo.DistanceHaversine(
		orb.Point{a.Longitude, a.Latitude},
		orb.Point{b.Longitude, b.Latitude},
	) / 1000
}

func ddmToDD(v float64) float64 {
	deg := math.Floor(v)
	minutes := (v - deg) * 100
	return deg + minutes/60
}

func ddToDDM(v float64) float64 {
	deg := math.Floor(v)
	minutes := (v - deg) * 60
	return deg + minutes/100
}

// Station is a MOSMIX forecast point from the station catalog.
type Station struct {
	ID        string   `json:"id"`
	Location  Location `json:"location"`
	Elevation float64  `json:"elevation"`
}

// Name returns the station's catalog name.
func (s Station) Name() string { return s.Location.Name }

// WarningCell is a DWD warn-cell (commune or district).
type WarningCell struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// IsCommune reports whether the cell is a commune (Gemeinde) rather than a
// district.
func (c WarningCell) IsCommune() bool {
	return c.ID != "" && c.ID[0] >= '5' && c.ID[0] <= '8'
}
