package domain

import "math"

// Calibration holds the constants of the synthetic time variation:
//
//	offset    = (year - ReferenceYear) / HalfSpan
//	variation = base * Amplitude * sin(offset*pi + seed)
//
// With the defaults the year slider range 1977-2069 maps onto offset [-1, 1].
// Changing the slider bounds without recalibrating shifts that mapping.
type Calibration struct {
	ReferenceYear int
	HalfSpan      float64
	Amplitude     float64
}

// DefaultCalibration matches the 1977-2069 year slider.
var DefaultCalibration = Calibration{
	ReferenceYear: 2023,
	HalfSpan:      46,
	Amplitude:     0.1,
}

// Offset maps year onto the normalized time axis.
func (c Calibration) Offset(year int) float64 {
	return float64(year-c.ReferenceYear) / c.HalfSpan
}

// SizePolicy controls whether SizeFor clamps the normalized value.
type SizePolicy int

const (
	// ClampSize keeps marker sizes within [MinMarkerSize, MaxMarkerSize].
	ClampSize SizePolicy = iota
	// UnclampedSize extrapolates linearly for values outside the gas range.
	UnclampedSize
)

const (
	MinMarkerSize  = 15.0
	MaxMarkerSize  = 40.0
	markerSizeSpan = MaxMarkerSize - MinMarkerSize
)

// VisualEncoding is the derived display encoding of one measurement. It is
// recomputed on every refresh and never stored.
type VisualEncoding struct {
	CurrentValue float64 `json:"currentValue"`
	Color        RGBA    `json:"color"`
	Size         float64 `json:"size"`
}

// Encoder maps measurements to visual encodings. The zero value is not usable;
// build one with NewEncoder.
type Encoder struct {
	Gases       GasRegistry
	Thresholds  ThresholdTable
	Calibration Calibration
	SizePolicy  SizePolicy
}

// NewEncoder returns an Encoder over the built-in gas and threshold tables.
func NewEncoder(policy SizePolicy) *Encoder {
	return &Encoder{
		Gases:       DefaultGases,
		Thresholds:  DefaultThresholds,
		Calibration: DefaultCalibration,
		SizePolicy:  policy,
	}
}

var defaultEncoder = NewEncoder(ClampSize)

// ComputeValue returns the perturbed concentration of gas for m at year.
// seed desynchronizes neighbouring cities and is usually the city's index in
// its source list.
func (e *Encoder) ComputeValue(m Measurement, gas GasKey, year, seed int) (float64, error) {
	base, err := m.Baseline(gas)
	if err != nil {
		return 0, err
	}
	offset := e.Calibration.Offset(year)
	variation := base * e.Calibration.Amplitude * math.Sin(offset*math.Pi+float64(seed))
	return base + variation, nil
}

// Normalize maps value onto gas's range. The result is not clamped.
func (e *Encoder) Normalize(value float64, gas GasKey) (float64, error) {
	spec, err := e.Gases.Lookup(gas)
	if err != nil {
		return 0, err
	}
	return spec.Range.Normalize(value), nil
}

// ColorFor maps value to an opaque colour on a blue-yellow-red gradient.
// Values outside the gas range saturate at the end colours.
func (e *Encoder) ColorFor(value float64, gas GasKey) (RGBA, error) {
	t, err := e.Normalize(value, gas)
	if err != nil {
		return RGBA{}, err
	}
	t = clamp01(t)
	if t < 0.5 {
		return Lerp(Blue, Yellow, t*2), nil
	}
	return Lerp(Yellow, Red, (t-0.5)*2), nil
}

// SizeFor maps value to a marker size, 15 at the gas minimum and 40 at the
// maximum.
func (e *Encoder) SizeFor(value float64, gas GasKey) (float64, error) {
	t, err := e.Normalize(value, gas)
	if err != nil {
		return 0, err
	}
	if e.SizePolicy == ClampSize {
		t = clamp01(t)
	}
	return MinMarkerSize + t*markerSizeSpan, nil
}

// ClassifyLevel buckets value using the encoder's threshold table.
func (e *Encoder) ClassifyLevel(value float64, gas GasKey) (Level, error) {
	return e.Thresholds.Classify(value, gas)
}

// Encode computes the current value of m and its colour and size.
func (e *Encoder) Encode(m Measurement, gas GasKey, year, seed int) (VisualEncoding, error) {
	value, err := e.ComputeValue(m, gas, year, seed)
	if err != nil {
		return VisualEncoding{}, err
	}
	color, err := e.ColorFor(value, gas)
	if err != nil {
		return VisualEncoding{}, err
	}
	size, err := e.SizeFor(value, gas)
	if err != nil {
		return VisualEncoding{}, err
	}
	return VisualEncoding{CurrentValue: value, Color: color, Size: size}, nil
}

// ComputeValue runs Encoder.ComputeValue with the default encoder.
func ComputeValue(m Measurement, gas GasKey, year, seed int) (float64, error) {
	return defaultEncoder.ComputeValue(m, gas, year, seed)
}

// ColorFor runs Encoder.ColorFor with the default encoder.
func ColorFor(value float64, gas GasKey) (RGBA, error) {
	return defaultEncoder.ColorFor(value, gas)
}

// SizeFor runs Encoder.SizeFor with the default encoder (clamped sizes).
func SizeFor(value float64, gas GasKey) (float64, error) {
	return defaultEncoder.SizeFor(value, gas)
}
