// Package domain models Deutscher Wetterdienst (DWD) open-data forecasts and
// warnings and the daily summaries built from them.
//
// # Data Sources
//
// Forecasts come from the MOSMIX_L point forecast, published per station as a
// KMZ archive (a ZIP holding one KML document) at
// https://opendata.dwd.de/weather/local_forecasts/mos/MOSMIX_L/single_stations/.
// Warnings come from the CAP status archives at
// https://opendata.dwd.de/weather/alerts/cap/, one CAP document per active
// warning and language.
//
// # MOSMIX Conventions
//
// Element values are whitespace-separated decimals aligned with the document's
// ForecastTimeSteps. A "-" marks a missing value and is read as NaN.
//
//	TTT    temperature 2m above surface (K)
//	E_TTT  absolute error of TTT (K)
//	RR1c   total precipitation during the last hour (kg/m2)
//	wwP    probability of any precipitation within the last hour (%)
//	FF     wind speed (m/s), E_FF its absolute error
//	DD     wind direction (0..360 degrees)
//	PPPP   surface pressure reduced (Pa), E_PPP its absolute error
//	Neff   effective cloud cover (%)
//	ww     significant weather, WMO present-weather code 0..99
//
// Temperatures are stored in degrees Celsius (TTT - 273.15).
//
// # Station Catalog
//
// The MOSMIX station catalog is a fixed-width table whose coordinates are
// written in degrees and decimal minutes: 52.34 means 52 degrees 34 minutes.
// [Location.As] converts between that notation and decimal degrees.
//
// # Warning Cells
//
// Warn-cell ids starting with 5..8 identify communes (Gemeinden); the rest are
// districts (Kreise). The two families are published in separate archives.
//
// # Daily Summaries
//
// [Summarize] groups points by calendar date and rolls them up into three
// sections:
//
//	morning  05:00-10:00  lowest temperature
//	noon     10:00-15:30  highest temperature
//	evening  15:30-23:00  lowest temperature
//
// The dominant weather of a set of points is the most frequent [WeatherType];
// ties go to the higher enumeration value.
package domain
