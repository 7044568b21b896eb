package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocation_As(t *testing.T) {
	ddm := Location{Name: "BERLIN-TEMPELHOF", System: DegreesDecimalMinutes, Longitude: 13.24, Latitude: 52.28}

	dd := ddm.As(DecimalDegrees)
	assert.Equal(t, DecimalDegrees, dd.System)
	assert.InDelta(t, 13.4, dd.Longitude, 1e-9)
	assert.InDelta(t, 52.4666667, dd.Latitude, 1e-6)
	assert.Equal(t, "BERLIN-TEMPELHOF", dd.Name)

	back := dd.As(DegreesDecimalMinutes)
	assert.InDelta(t, 13.24, back.Longitude, 1e-9)
	assert.InDelta(t, 52.28, back.Latitude, 1e-9)

	assert.Equal(t, ddm, ddm.As(DegreesDecimalMinutes))
}

func TestLocation_DistanceKm(t *testing.T) {
	berlin := Location{System: DecimalDegrees, Longitude: 13.405, Latitude: 52.52}
	hamburg := Location{System: DecimalDegrees, Longitude: 9.9937, Latitude: 53.5511}

	assert.InDelta(t, 255, berlin.DistanceKm(hamburg), 5)
	assert.InDelta(t, berlin.DistanceKm(hamburg), hamburg.DistanceKm(berlin), 1e-9)
	assert.Zero(t, berlin.DistanceKm(berlin))

	// Mixed systems are compared in decimal degrees.
	berlinDDM := berlin.As(DegreesDecimalMinutes)
	assert.InDelta(t, 0, berlinDDM.DistanceKm(berlin), 1e-6)
}

func TestWarningCell_IsCommune(t *testing.T) {
	tests := map[string]bool{
		"511000000": true,
		"608000000": true,
		"711000000": true,
		"811000000": true,
		"111000000": false,
		"911000000": false,
		"405000000": false,
		"":          false,
	}
	for id, want := range tests {
		assert.Equal(t, want, WarningCell{ID: id}.IsCommune(), id)
	}
}
