package domain

import (
	"fmt"
	"strings"
)

// GasKey identifies one of the supported greenhouse gases.
type GasKey string

const (
	GasCO2 GasKey = "co2"
	GasCH4 GasKey = "ch4"
	GasN2O GasKey = "n2o"
)

// SupportedGases lists every gas key in display order.
var SupportedGases = []GasKey{GasCO2, GasCH4, GasN2O}

// ParseGas validates a raw gas key. Matching ignores case and surrounding space.
func ParseGas(s string) (GasKey, error) {
	key := GasKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case GasCO2, GasCH4, GasN2O:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGas, s)
	}
}

// Range is the fixed normalization window used for both colour and size.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Normalize maps v onto the range without clamping. A degenerate range
// (Max == Min) maps every value to the midpoint 0.5.
func (r Range) Normalize(v float64) float64 {
	span := r.Max - r.Min
	if span == 0 {
		return 0.5
	}
	return (v - r.Min) / span
}

// GasSpec is the display metadata for one gas.
type GasSpec struct {
	Key         GasKey `json:"key"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
	Color       string `json:"color"` // swatch used by legends, not by markers
	Description string `json:"description"`
	Range       Range  `json:"range"`
}

// GasRegistry maps gas keys to their display metadata.
type GasRegistry map[GasKey]GasSpec

// DefaultGases holds the built-in gas metadata and normalization ranges.
var DefaultGases = GasRegistry{
	GasCO2: {
		Key:         GasCO2,
		Name:        "Carbon Dioxide",
		Unit:        "ppm",
		Color:       "#FF4444",
		Description: "Primary greenhouse gas from fossil fuel combustion",
		Range:       Range{Min: 390, Max: 450},
	},
	GasCH4: {
		Key:         GasCH4,
		Name:        "Methane",
		Unit:        "ppm",
		Color:       "#44FF44",
		Description: "Potent greenhouse gas from agriculture and waste",
		Range:       Range{Min: 1.4, Max: 3.0},
	},
	GasN2O: {
		Key:         GasN2O,
		Name:        "Nitrous Oxide",
		Unit:        "ppm",
		Color:       "#4444FF",
		Description: "Greenhouse gas from agriculture and industry",
		Range:       Range{Min: 0.25, Max: 0.45},
	},
}

// Lookup returns the spec for gas or ErrUnknownGas.
func (r GasRegistry) Lookup(gas GasKey) (GasSpec, error) {
	spec, ok := r[gas]
	if !ok {
		return GasSpec{}, fmt.Errorf("%w: %q", ErrUnknownGas, gas)
	}
	return spec, nil
}

// Specs returns the registered specs in SupportedGases order.
func (r GasRegistry) Specs() []GasSpec {
	specs := make([]GasSpec, 0, len(r))
	for _, key := range SupportedGases {
		if spec, ok := r[key]; ok {
			specs = append(specs, spec)
		}
	}
	return specs
}
