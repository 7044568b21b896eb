package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// synopWeather maps WMO present-weather codes (ww) to weather types. Codes not
// listed fall back to the cloud-cover bands in [ClassifySynopCode].
var synopWeather = map[int]WeatherType{
	// haze, smoke, dust or sand
	4: WeatherSmoke,     // visibility reduced by smoke
	5: WeatherHaze,      // haze
	6: WeatherDust,      // widespread dust in suspension not raised by wind
	7: WeatherDust,      // dust or sand raised by wind
	8: WeatherDustWhirl, // well developed dust or sand whirls
	9: WeatherDustStorm, // dust or sand storm within sight but not at station

	// non-precipitation events
	10: WeatherHaze,    // mist
	11: WeatherFog,     // patches of shallow fog
	12: WeatherFog,     // continuous shallow fog
	17: WeatherThunder, // thunderstorm but no precipitation at station
	18: WeatherStorm,   // squalls within sight
	19: WeatherNone,    // funnel clouds within sight

	// duststorm, sandstorm
	30: WeatherDustStorm,       // slight to moderate, decreasing
	31: WeatherDustStorm,       // slight to moderate, no change
	32: WeatherDustStorm,       // slight to moderate, increasing
	33: WeatherSevereDustStorm, // severe, decreasing
	34: WeatherSevereDustStorm, // severe, no change
	35: WeatherSevereDustStorm, // severe, increasing

	// drifting or blowing snow
	36: WeatherSnowDrifts, // slight to moderate, below eye level
	37: WeatherSnowDrifts, // heavy, below eye level
	38: WeatherSnowDrifts, // slight to moderate, above eye level
	39: WeatherSnowDrifts, // heavy, above eye level

	// fog or ice fog
	40: WeatherFog,      // fog at a distance
	41: WeatherFog,      // patches of fog
	42: WeatherFog,      // sky visible, thinning
	43: WeatherFog,      // sky not visible, thinning
	44: WeatherFog,      // sky visible, no change
	45: WeatherFog,      // sky not visible, no change
	46: WeatherFog,      // sky visible, becoming thicker
	47: WeatherFog,      // sky not visible, becoming thicker
	48: WeatherFrostFog, // depositing rime, sky visible
	49: WeatherFrostFog, // depositing rime, sky not visible

	// drizzle
	50: WeatherLightIntermittentDrizzle, // intermittent light
	51: WeatherLightDrizzle,             // continuous light
	52: WeatherIntermittentDrizzle,      // intermittent moderate
	53: WeatherDrizzle,                  // continuous moderate
	54: WeatherIntermittentDrizzle,      // intermittent heavy
	55: WeatherDrizzle,                  // continuous heavy
	56: WeatherFreezingLightDrizzle,     // light freezing
	57: WeatherFreezingDrizzle,          // moderate to heavy freezing
	58: WeatherRain,                     // light drizzle and rain
	59: WeatherRain,                     // moderate to heavy drizzle and rain

	// rain
	60: WeatherIntermittentLightRain, // intermittent light
	61: WeatherLightRain,             // continuous light
	62: WeatherIntermittentRain,      // intermittent moderate
	63: WeatherRain,                  // continuous moderate
	64: WeatherIntermittentHeavyRain, // intermittent heavy
	65: WeatherHeavyRain,             // continuous heavy
	66: WeatherFreezingLightRain,     // light freezing
	67: WeatherFreezingRain,          // moderate to heavy freezing
	68: WeatherLightSleet,            // light rain and snow
	69: WeatherSleet,                 // moderate to heavy rain and snow

	// snow
	70: WeatherIntermittentLightSnow, // intermittent light
	71: WeatherLightSnow,             // continuous light
	72: WeatherIntermittentSnow,      // intermittent moderate
	73: WeatherSnow,                  // continuous moderate
	74: WeatherIntermittentSnow,      // intermittent heavy
	75: WeatherSnow,                  // continuous heavy
	76: WeatherIcy,                   // diamond dust
	77: WeatherSnow,                  // snow grains
	78: WeatherSnow,                  // snow crystals
	79: WeatherIcy,                   // ice pellets

	// showers
	80: WeatherLightRain,  // light rain showers
	81: WeatherRain,       // moderate to heavy rain showers
	82: WeatherHeavyRain,  // violent rain showers
	83: WeatherLightSleet, // light rain and snow showers
	84: WeatherSleet,      // moderate to heavy rain and snow showers
	85: WeatherLightSnow,  // light snow showers
	86: WeatherSnow,       // moderate to heavy snow showers
	87: WeatherSnow,       // light snow/ice pellet showers
	88: WeatherSnow,       // moderate to heavy snow/ice pellet showers
	89: WeatherLightHail,  // light hail showers
	90: WeatherHail,       // moderate to heavy hail showers

	// thunderstorm
	91: WeatherLightRain,             // past hour, currently light rain
	92: WeatherRain,                  // past hour, currently moderate to heavy rain
	93: WeatherLightSnow,             // past hour, currently light snow or mix
	94: WeatherSnow,                  // past hour, currently moderate to heavy snow or mix
	95: WeatherThunderStorm,          // light to moderate
	96: WeatherThunderStormHail,      // light to moderate with hail
	97: WeatherHeavyThunderStorm,     // heavy
	98: WeatherHeavyThunderStorm,     // heavy with duststorm
	99: WeatherHeavyThunderStormHail, // heavy with hail
}

// warningEvents maps DWD warning event codes (CAP eventCode "II") to warning
// types. Unlisted codes are general warnings.
var warningEvents = map[int]WarningType{
	11:  WarningStorm,        // BÖEN (coast)
	12:  WarningStorm,        // WIND (coast)
	13:  WarningStorm,        // STURM (coast)
	14:  WarningStorm,        // Starkwind (sea)
	15:  WarningStorm,        // Sturm (sea)
	16:  WarningStorm,        // schwerer Sturm (sea)
	22:  WarningFrost,        // FROST
	24:  WarningGeneral,      // GLÄTTE
	31:  WarningThunder,      // GEWITTER
	33:  WarningThunder,      // STARKES GEWITTER
	34:  WarningThunder,      // STARKES GEWITTER
	36:  WarningThunder,      // STARKES GEWITTER
	38:  WarningThunder,      // STARKES GEWITTER
	40:  WarningThunderstorm, // SCHWERES GEWITTER mit ORKANBÖEN
	41:  WarningThunderstorm, // SCHWERES GEWITTER mit EXTREMEN ORKANBÖEN
	42:  WarningThunderstorm, // SCHWERES GEWITTER mit HEFTIGEM STARKREGEN
	44:  WarningThunderstorm, // SCHWERES GEWITTER mit ORKANBÖEN und HEFTIGEM STARKREGEN
	45:  WarningThunderstorm, // SCHWERES GEWITTER mit EXTREMEN ORKANBÖEN und HEFTIGEM STARKREGEN
	46:  WarningThunderstorm, // SCHWERES GEWITTER mit HEFTIGEM STARKREGEN und HAGEL
	48:  WarningThunderstorm, // SCHWERES GEWITTER mit ORKANBÖEN, HEFTIGEM STARKREGEN und HAGEL
	49:  WarningThunderstorm, // SCHWERES GEWITTER mit EXTREMEN ORKANBÖEN, HEFTIGEM STARKREGEN und HAGEL
	51:  WarningStorm,        // WINDBÖEN
	52:  WarningStorm,        // STURMBÖEN
	53:  WarningStorm,        // SCHWERE STURMBÖEN
	54:  WarningStorm,        // ORKANARTIGE BÖEN
	55:  WarningStorm,        // ORKANBÖEN
	56:  WarningStorm,        // EXTREME ORKANBÖEN
	57:  WarningStorm,        // STARKWIND
	58:  WarningStorm,        // STURM
	59:  WarningGeneral,      // NEBEL
	61:  WarningRain,         // STARKREGEN
	62:  WarningRain,         // HEFTIGER STARKREGEN
	63:  WarningRain,         // DAUERREGEN
	64:  WarningRain,         // ERGIEBIGER DAUERREGEN
	65:  WarningRain,         // EXTREM ERGIEBIGER DAUERREGEN
	66:  WarningRain,         // EXTREM HEFTIGER STARKREGEN
	70:  WarningSnow,         // LEICHTER SCHNEEFALL
	71:  WarningSnow,         // SCHNEEFALL
	72:  WarningSnow,         // STARKER SCHNEEFALL
	73:  WarningSnow,         // EXTREM STARKER SCHNEEFALL
	74:  WarningSnow,         // SCHNEEVERWEHUNG
	75:  WarningSnow,         // STARKE SCHNEEVERWEHUNG
	76:  WarningSnow,         // SCHNEEFALL und SCHNEEVERWEHUNG
	77:  WarningSnow,         // STARKER SCHNEEFALL und SCHNEEVERWEHUNG
	78:  WarningSnow,         // EXTREM STARKER SCHNEEFALL und SCHNEEVERWEHUNG
	79:  WarningGeneral,      // LEITERSEILSCHWINGUNGEN
	81:  WarningFrost,        // FROST
	82:  WarningFrost,        // STRENGER FROST
	84:  WarningGeneral,      // GLÄTTE
	85:  WarningGeneral,      // GLATTEIS
	87:  WarningGeneral,      // GLATTEIS (localized)
	88:  WarningGeneral,      // TAUWETTER
	89:  WarningGeneral,      // STARKES TAUWETTER
	90:  WarningThunder,      // GEWITTER
	91:  WarningThunder,      // STARKES GEWITTER
	92:  WarningThunder,      // SCHWERES GEWITTER
	93:  WarningThunderstorm, // EXTREMES GEWITTER
	95:  WarningThunderstorm, // SCHWERES GEWITTER mit EXTREM HEFTIGEM STARKREGEN und HAGEL
	96:  WarningThunderstorm, // SCHWERES GEWITTER mit ORKANBÖEN, EXTREM HEFTIGEM STARKREGEN und HAGEL
	98:  WarningGeneral,      // TEST-WARNUNG
	99:  WarningGeneral,      // TEST-UNWETTERWARNUNG
	246: WarningGeneral,      // UV-INDEX
	247: WarningHeat,         // HITZE
}

// ClassifyWeather classifies a possibly missing ww code. NaN yields
// WeatherNone.
func ClassifyWeather(code, cloudCover float64) WeatherType {
	if math.IsNaN(code) {
		return WeatherNone
	}
	return ClassifySynopCode(int(code), cloudCover)
}

// ClassifySynopCode classifies a ww code, falling back to the sky condition
// derived from cloud cover (percent) for codes without precipitation or
// obstruction meaning.
func ClassifySynopCode(code int, cloudCover float64) WeatherType {
	if w, ok := synopWeather[code]; ok {
		return w
	}
	switch {
	case cloudCover < 35:
		return WeatherClear
	case cloudCover < 55:
		return WeatherCloudyLight
	case cloudCover < 80:
		return WeatherCloudyMedium
	default:
		return WeatherCloudyVery
	}
}

// ClassifyWarningEvent classifies a DWD event code. Codes that are not
// integers are general warnings.
func ClassifyWarningEvent(code string) WarningType {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return WarningGeneral
	}
	if t, ok := warningEvents[n]; ok {
		return t
	}
	return WarningGeneral
}

// ParseSeverity maps a CAP severity string case-insensitively. Callers
// substitute "unknown" for missing source text.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "unknown":
		return SeverityUnknown, nil
	case "minor":
		return SeverityMinor, nil
	case "moderate":
		return SeverityModerate, nil
	case "severe":
		return SeveritySevere, nil
	case "extreme":
		return SeverityExtreme, nil
	}
	return SeverityNone, fmt.Errorf("%w: severity %q", ErrInvalidClassificationInput, s)
}

// ParseCertainty maps a CAP certainty string case-insensitively.
func ParseCertainty(s string) (Certainty, error) {
	switch strings.ToLower(s) {
	case "unknown":
		return CertaintyUnknown, nil
	case "unlikely":
		return CertaintyUnlikely, nil
	case "possible":
		return CertaintyPossible, nil
	case "likely":
		return CertaintyLikely, nil
	case "observed":
		return CertaintyObserved, nil
	}
	return CertaintyUnknown, fmt.Errorf("%w: certainty %q", ErrInvalidClassificationInput, s)
}
