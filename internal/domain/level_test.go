package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		gas      GasKey
		value    float64
		expected Level
	}{
		{GasCO2, 395, LevelLow},
		{GasCO2, 409.99, LevelLow},
		{GasCO2, 410, LevelMedium},
		{GasCO2, 419.99, LevelMedium},
		{GasCO2, 420, LevelHigh},
		{GasCH4, 1.79, LevelLow},
		{GasCH4, 1.8, LevelMedium},
		{GasCH4, 2.0, LevelHigh},
		{GasN2O, 0.31, LevelLow},
		{GasN2O, 0.32, LevelMedium},
		{GasN2O, 0.35, LevelHigh},
	}

	for _, tt := range tests {
		level, err := ClassifyLevel(tt.value, tt.gas)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, level, "%s %g", tt.gas, tt.value)
	}
}

func TestClassifyLevel_Monotonic(t *testing.T) {
	rank := map[Level]int{LevelLow: 0, LevelMedium: 1, LevelHigh: 2}

	for _, spec := range DefaultGases.Specs() {
		prev := -1
		step := (spec.Range.Max - spec.Range.Min) / 500
		for v := spec.Range.Min - 50*step; v <= spec.Range.Max+50*step; v += step {
			level, err := ClassifyLevel(v, spec.Key)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, rank[level], prev, "%s at %g", spec.Key, v)
			prev = rank[level]
		}
		assert.Equal(t, rank[LevelHigh], prev, "%s should reach high within its range", spec.Key)
	}
}

func TestClassifyLevel_UnknownGas(t *testing.T) {
	_, err := ClassifyLevel(1, GasKey("o3"))
	require.ErrorIs(t, err, ErrUnknownGas)
}

func TestRecommendations(t *testing.T) {
	for _, level := range []Level{LevelLow, LevelMedium, LevelHigh} {
		assert.Len(t, Recommendations(level), 4, level)
	}
	assert.Equal(t, "Implement strict emission controls", Recommendations(LevelHigh)[0])

	recs := Recommendations(LevelLow)
	recs[0] = "mutated"
	assert.Equal(t, "Monitor air quality trends", Recommendations(LevelLow)[0])
}

func TestAirQualityStatus(t *testing.T) {
	tests := []struct {
		aqi      int
		expected AirQualityBand
	}{
		{0, AirQualityGood},
		{50, AirQualityGood},
		{51, AirQualityModerate},
		{100, AirQualityModerate},
		{105, AirQualitySensitive},
		{150, AirQualitySensitive},
		{151, AirQualityUnhealthy},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, AirQualityStatus(tt.aqi), "aqi %d", tt.aqi)
	}
}
