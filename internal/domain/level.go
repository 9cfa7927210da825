package domain

import (
	"fmt"
	"slices"
)

// Level is the concentration bucket used to pick planning recommendations.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Thresholds holds the inclusive lower bounds of the medium and high levels.
type Thresholds struct {
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Classify buckets v. Higher values never produce a lower level.
func (t Thresholds) Classify(v float64) Level {
	switch {
	case v >= t.High:
		return LevelHigh
	case v >= t.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// ThresholdTable maps each gas to its level thresholds. These are independent
// of the gas normalization ranges.
type ThresholdTable map[GasKey]Thresholds

// DefaultThresholds are the built-in per-gas level thresholds in ppm.
var DefaultThresholds = ThresholdTable{
	GasCO2: {Medium: 410, High: 420},
	GasCH4: {Medium: 1.8, High: 2.0},
	GasN2O: {Medium: 0.32, High: 0.35},
}

// Classify buckets value for gas.
func (tt ThresholdTable) Classify(value float64, gas GasKey) (Level, error) {
	t, ok := tt[gas]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGas, gas)
	}
	return t.Classify(value), nil
}

// ClassifyLevel buckets value for gas using DefaultThresholds.
func ClassifyLevel(value float64, gas GasKey) (Level, error) {
	return DefaultThresholds.Classify(value, gas)
}

var planningRecommendations = map[Level][]string{
	LevelHigh: {
		"Implement strict emission controls",
		"Increase public transportation",
		"Mandate green building standards",
		"Create more urban forests",
	},
	LevelMedium: {
		"Promote electric vehicle adoption",
		"Improve energy efficiency",
		"Expand green corridors",
		"Develop carbon offset programs",
	},
	LevelLow: {
		"Monitor air quality trends",
		"Maintain current green spaces",
		"Encourage sustainable practices",
		"Plan for future growth",
	},
}

// Recommendations returns a copy of the planning actions for level.
func Recommendations(level Level) []string {
	return slices.Clone(planningRecommendations[level])
}

// AirQualityBand is the status label shown next to a city's AQI.
type AirQualityBand string

const (
	AirQualityGood      AirQualityBand = "good"
	AirQualityModerate  AirQualityBand = "moderate"
	AirQualitySensitive AirQualityBand = "unhealthy_for_sensitive_groups"
	AirQualityUnhealthy AirQualityBand = "unhealthy"
)

// AirQualityStatus buckets an air-quality index using the US AQI breakpoints
// at 50, 100 and 150.
func AirQualityStatus(aqi int) AirQualityBand {
	switch {
	case aqi <= 50:
		return AirQualityGood
	case aqi <= 100:
		return AirQualityModerate
	case aqi <= 150:
		return AirQualitySensitive
	default:
		return AirQualityUnhealthy
	}
}
