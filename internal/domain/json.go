package domain

import (
	"math"
	"strconv"
)

// nullableFloat is a float64 that encodes NaN and infinities as JSON null,
// which encoding/json otherwise rejects.
type nullableFloat float64

func (f nullableFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
}
