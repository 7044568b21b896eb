package domain

import (
	"encoding/json"
	"time"
)

// DataPoint is one MOSMIX forecast step for a station. Numeric fields are NaN
// when the source omits or garbles the value.
type DataPoint struct {
	Time                     time.Time
	Temperature              float64 // °C
	TemperatureError         float64 // K
	Precipitation            float64 // kg/m2 during the last hour
	PrecipitationProbability float64 // %
	WindSpeed                float64 // m/s
	WindSpeedError           float64 // m/s
	WindDirection            float64 // degrees
	Pressure                 float64 // Pa
	PressureError            float64 // Pa
	CloudCover               float64 // %
	Weather                  WeatherType
	SynopCode                int // raw ww code, -1 when missing
}

type dataPointJSON struct {
	Time                     time.Time     `json:"time"`
	Temperature              nullableFloat `json:"temperature"`
	TemperatureError         nullableFloat `json:"temperature_error"`
	Precipitation            nullableFloat `json:"precipitation"`
	PrecipitationProbability nullableFloat `json:"precipitation_probability"`
	WindSpeed                nullableFloat `json:"wind_speed"`
	WindSpeedError           nullableFloat `json:"wind_speed_error"`
	WindDirection            nullableFloat `json:"wind_direction"`
	Pressure                 nullableFloat `json:"pressure"`
	PressureError            nullableFloat `json:"pressure_error"`
	CloudCover               nullableFloat `json:"cloud_cover"`
	Weather                  WeatherType   `json:"weather"`
	SynopCode                int           `json:"synop_code"`
}

// MarshalJSON encodes missing (NaN) values as null.
func (p DataPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(dataPointJSON{
		Time:                     p.Time,
		Temperature:              nullableFloat(p.Temperature),
		TemperatureError:         nullableFloat(p.TemperatureError),
		Precipitation:            nullableFloat(p.Precipitation),
		PrecipitationProbability: nullableFloat(p.PrecipitationProbability),
		WindSpeed:                nullableFloat(p.WindSpeed),
		WindSpeedError:           nullableFloat(p.WindSpeedError),
		WindDirection:            nullableFloat(p.WindDirection),
		Pressure:                 nullableFloat(p.Pressure),
		PressureError:            nullableFloat(p.PressureError),
		CloudCover:               nullableFloat(p.CloudCover),
		Weather:                  p.Weather,
		SynopCode:                p.SynopCode,
	})
}
