package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Measurement is the static reference record for one city. Gas values are
// baseline concentrations in ppm.
type Measurement struct {
	City              string  `json:"city"`
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	CO2               float64 `json:"co2"`
	CH4               float64 `json:"ch4"`
	N2O               float64 `json:"n2o"`
	Population        int     `json:"population"`
	AirQualityIndex   int     `json:"airQualityIndex"`
	GreenSpacePercent int     `json:"greenSpacePercent"`
}

// Baseline returns the measurement's baseline concentration for gas.
func (m Measurement) Baseline(gas GasKey) (float64, error) {
	switch gas {
	case GasCO2:
		return m.CO2, nil
	case GasCH4:
		return m.CH4, nil
	case GasN2O:
		return m.N2O, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGas, gas)
	}
}

var sampleCities = []Measurement{
	{City: "New York", Lat: 40.7128, Lon: -74.0060, CO2: 415, CH4: 1.9, N2O: 0.33, Population: 8400000, AirQualityIndex: 65, GreenSpacePercent: 27},
	{City: "Los Angeles", Lat: 34.0522, Lon: -118.2437, CO2: 420, CH4: 2.1, N2O: 0.35, Population: 4000000, AirQualityIndex: 78, GreenSpacePercent: 15},
	{City: "London", Lat: 51.5074, Lon: -0.1278, CO2: 410, CH4: 1.8, N2O: 0.32, Population: 9000000, AirQualityIndex: 55, GreenSpacePercent: 47},
	{City: "Tokyo", Lat: 35.6762, Lon: 139.6503, CO2: 418, CH4: 1.85, N2O: 0.34, Population: 14000000, AirQualityIndex: 60, GreenSpacePercent: 13},
	{City: "Mumbai", Lat: 19.0760, Lon: 72.8777, CO2: 425, CH4: 2.3, N2O: 0.38, Population: 20000000, AirQualityIndex: 95, GreenSpacePercent: 8},
	{City: "São Paulo", Lat: -23.5505, Lon: -46.6333, CO2: 422, CH4: 2.0, N2O: 0.36, Population: 12000000, AirQualityIndex: 72, GreenSpacePercent: 12},
	{City: "Beijing", Lat: 39.9042, Lon: 116.4074, CO2: 430, CH4: 2.2, N2O: 0.37, Population: 21000000, AirQualityIndex: 88, GreenSpacePercent: 16},
	{City: "Cairo", Lat: 30.0444, Lon: 31.2357, CO2: 428, CH4: 2.4, N2O: 0.39, Population: 10000000, AirQualityIndex: 92, GreenSpacePercent: 5},
	{City: "Sydney", Lat: -33.8688, Lon: 151.2093, CO2: 405, CH4: 1.7, N2O: 0.31, Population: 5000000, AirQualityIndex: 45, GreenSpacePercent: 35},
	{City: "Vancouver", Lat: 49.2827, Lon: -123.1207, CO2: 400, CH4: 1.6, N2O: 0.30, Population: 675000, AirQualityIndex: 38, GreenSpacePercent: 45},
	{City: "Berlin", Lat: 52.5200, Lon: 13.4050, CO2: 408, CH4: 1.75, N2O: 0.32, Population: 3700000, AirQualityIndex: 52, GreenSpacePercent: 40},
	{City: "Mexico City", Lat: 19.4326, Lon: -99.1332, CO2: 435, CH4: 2.5, N2O: 0.40, Population: 22000000, AirQualityIndex: 98, GreenSpacePercent: 7},
	{City: "Lagos", Lat: 6.5244, Lon: 3.3792, CO2: 440, CH4: 2.8, N2O: 0.42, Population: 15000000, AirQualityIndex: 105, GreenSpacePercent: 3},
	{City: "Singapore", Lat: 1.3521, Lon: 103.8198, CO2: 412, CH4: 1.82, N2O: 0.33, Population: 6000000, AirQualityIndex: 48, GreenSpacePercent: 50},
	{City: "Stockholm", Lat: 59.3293, Lon: 18.0686, CO2: 395, CH4: 1.5, N2O: 0.29, Population: 1000000, AirQualityIndex: 35, GreenSpacePercent: 55},
}

// Cities returns a copy of the built-in city dataset. A city's position in the
// slice is its phase seed for ComputeValue.
func Cities() []Measurement {
	return slices.Clone(sampleCities)
}

// FindCity looks up a city by case-insensitive name and returns its index
// alongside the record.
func FindCity(cities []Measurement, name string) (int, Measurement, error) {
	name = strings.TrimSpace(name)
	for i, m := range cities {
		if strings.EqualFold(m.City, name) {
			return i, m, nil
		}
	}
	return -1, Measurement{}, fmt.Errorf("%w: %q", ErrUnknownCity, name)
}
