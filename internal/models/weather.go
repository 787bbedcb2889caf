package models

import (
	"time"
)

// Condition is the normalized weather condition reported by the upstream
// provider's "main" field.
type Condition string

const (
	ConditionClear   Condition = "Clear"
	ConditionClouds  Condition = "Clouds"
	ConditionRain    Condition = "Rain"
	ConditionDrizzle Condition = "Drizzle"
	ConditionSnow    Condition = "Snow"
	ConditionMist    Condition = "Mist"
	ConditionFog     Condition = "Fog"
	ConditionOther   Condition = "Other"
)

// ParseCondition maps a provider condition string to a known Condition.
// Unrecognized values collapse to ConditionOther.
func ParseCondition(s string) Condition {
	switch Condition(s) {
	case ConditionClear, ConditionClouds, ConditionRain, ConditionDrizzle,
		ConditionSnow, ConditionMist, ConditionFog:
		return Condition(s)
	default:
		return ConditionOther
	}
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Location struct {
	Name        string      `json:"name"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// CurrentConditions is the current-weather block of a WeatherData response.
// Temperatures are rounded to whole degrees Celsius at the provider boundary.
// UVIndex is always zero: the upstream endpoints used here do not supply it.
type CurrentConditions struct {
	Temperature int       `json:"temperature"`
	FeelsLike   int       `json:"feelsLike"`
	Condition   Condition `json:"condition"`
	Description string    `json:"description"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Visibility  float64   `json:"visibility"` // km
	UVIndex     float64   `json:"uvIndex"`
	Icon        string    `json:"icon"`
}

// Observation pairs a resolved location with its current conditions,
// as parsed from one upstream "current weather" response.
type Observation struct {
	Location Location
	Current  CurrentConditions
}

// ForecastSample is one raw timestamped sample from the upstream forecast
// feed (3-hour resolution). PrecipitationProbability is in 0..1.
type ForecastSample struct {
	Timestamp                time.Time
	Temperature              float64
	Condition                Condition
	Description              string
	PrecipitationProbability float64
	Icon                     string
}

type TemperatureRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ForecastDay is the daily aggregate of a calendar date's samples.
// Date is a stable YYYY-MM-DD key in UTC.
type ForecastDay struct {
	Date                string           `json:"date"`
	Temperature         TemperatureRange `json:"temperature"`
	Condition           Condition        `json:"condition"`
	Description         string           `json:"description"`
	PrecipitationChance int              `json:"precipitationChance"`
	Icon                string           `json:"icon"`
}

// WeatherData is the full weather payload returned to clients. It is built
// fresh on every request and never cached.
type WeatherData struct {
	Location  Location          `json:"location"`
	Current   CurrentConditions `json:"current"`
	Forecast  []ForecastDay     `json:"forecast"`
	Timestamp time.Time         `json:"timestamp"`
}
