package domain

import "fmt"

// WeatherType is the semantic sky or precipitation state of a forecast step.
// The numeric order matters: it breaks ties when picking a dominant weather.
type WeatherType int

const (
	WeatherNone WeatherType = iota
	WeatherClear
	WeatherCloudyLight
	WeatherCloudyMedium
	WeatherCloudyVery
	WeatherHaze
	WeatherSmoke
	WeatherDust
	WeatherDustWhirl
	WeatherDustStorm
	WeatherSevereDustStorm
	WeatherFog
	WeatherFrostFog
	WeatherSnowDrifts
	WeatherLightIntermittentDrizzle
	WeatherLightDrizzle
	WeatherIntermittentDrizzle
	WeatherDrizzle
	WeatherFreezingLightDrizzle
	WeatherFreezingDrizzle
	WeatherIntermittentLightRain
	WeatherLightRain
	WeatherIntermittentRain
	WeatherRain
	WeatherIntermittentHeavyRain
	WeatherHeavyRain
	WeatherFreezingLightRain
	WeatherFreezingRain
	WeatherLightSleet
	WeatherSleet
	WeatherIntermittentLightSnow
	WeatherLightSnow
	WeatherIntermittentSnow
	WeatherSnow
	WeatherIcy
	WeatherLightHail
	WeatherHail
	WeatherThunder
	WeatherStorm
	WeatherThunderStorm
	WeatherThunderStormHail
	WeatherHeavyThunderStorm
	WeatherHeavyThunderStormHail
)

var weatherNames = [...]string{
	WeatherNone:                     "none",
	WeatherClear:                    "clear",
	WeatherCloudyLight:              "cloudy_light",
	WeatherCloudyMedium:             "cloudy_medium",
	WeatherCloudyVery:               "cloudy_very",
	WeatherHaze:                     "haze",
	WeatherSmoke:                    "smoke",
	WeatherDust:                     "dust",
	WeatherDustWhirl:                "dust_whirl",
	WeatherDustStorm:                "dust_storm",
	WeatherSevereDustStorm:          "severe_dust_storm",
	WeatherFog:                      "fog",
	WeatherFrostFog:                 "frost_fog",
	WeatherSnowDrifts:               "snow_drifts",
	WeatherLightIntermittentDrizzle: "light_intermittent_drizzle",
	WeatherLightDrizzle:             "light_drizzle",
	WeatherIntermittentDrizzle:      "intermittent_drizzle",
	WeatherDrizzle:                  "drizzle",
	WeatherFreezingLightDrizzle:     "freezing_light_drizzle",
	WeatherFreezingDrizzle:          "freezing_drizzle",
	WeatherIntermittentLightRain:    "intermittent_light_rain",
	WeatherLightRain:                "light_rain",
	WeatherIntermittentRain:         "intermittent_rain",
	WeatherRain:                     "rain",
	WeatherIntermittentHeavyRain:    "intermittent_heavy_rain",
	WeatherHeavyRain:                "heavy_rain",
	WeatherFreezingLightRain:        "freezing_light_rain",
	WeatherFreezingRain:             "freezing_rain",
	WeatherLightSleet:               "light_sleet",
	WeatherSleet:                    "sleet",
	WeatherIntermittentLightSnow:    "intermittent_light_snow",
	WeatherLightSnow:                "light_snow",
	WeatherIntermittentSnow:         "intermittent_snow",
	WeatherSnow:                     "snow",
	WeatherIcy:                      "icy",
	WeatherLightHail:                "light_hail",
	WeatherHail:                     "hail",
	WeatherThunder:                  "thunder",
	WeatherStorm:                    "storm",
	WeatherThunderStorm:             "thunderstorm",
	WeatherThunderStormHail:         "thunderstorm_hail",
	WeatherHeavyThunderStorm:        "heavy_thunderstorm",
	WeatherHeavyThunderStormHail:    "heavy_thunderstorm_hail",
}

func (w WeatherType) String() string {
	if w < 0 || int(w) >= len(weatherNames) {
		return fmt.Sprintf("weather(%d)", int(w))
	}
	return weatherNames[w]
}

// MarshalText encodes the weather type by name.
func (w WeatherType) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}
