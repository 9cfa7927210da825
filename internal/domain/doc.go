// Package domain implements the data-to-visual encoding behind the
// greenhouse-gas globe: it turns a city measurement, a gas and a year into a
// marker colour, size and details payload, and it builds community reports.
//
// # Data
//
// City measurements are static reference data (see [Cities]). Each carries a
// baseline concentration in ppm for three gases:
//
//	co2  Carbon Dioxide   range 390-450
//	ch4  Methane          range 1.4-3.0
//	n2o  Nitrous Oxide    range 0.25-0.45
//
// The range of a gas drives both colour and size normalization. Gas keys
// outside this set fail with [ErrUnknownGas].
//
// # Time Variation
//
// There is no historical data. A year is turned into a synthetic value by a
// bounded sine perturbation of the baseline:
//
//	offset    = (year - 2023) / 46
//	variation = base * 0.1 * sin(offset*pi + seed)
//	value     = base + variation
//
// so the value always stays within 10% of the baseline. The seed is the
// city's index in the dataset and only desynchronizes neighbouring cities.
// The constants live in [Calibration].
//
// # Encoding
//
// With t = (value - min) / (max - min):
//
//	colour  blue -> yellow for t in [0, 0.5), yellow -> red for t in [0.5, 1]
//	        (t clamped to [0, 1])
//	size    15 + t*25, clamped to [15, 40] under [ClampSize]
//
// A degenerate range (max == min) normalizes to the midpoint t = 0.5.
//
// # Levels
//
// Planning recommendations are chosen by a per-gas threshold table that is
// independent of the normalization ranges:
//
//	co2:  medium >= 410   high >= 420
//	ch4:  medium >= 1.8   high >= 2.0
//	n2o:  medium >= 0.32  high >= 0.35
//
// # Community Reports
//
// Reports need a location and a description. The location is resolved
// against a small fixed table; unknown names get random coordinates tagged
// [LocationRandom]. Reports are appended to [State] and are never removed.
package domain
