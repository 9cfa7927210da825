package domain

import "fmt"

// MarkerKind distinguishes city markers from community report markers.
type MarkerKind string

const (
	MarkerCity   MarkerKind = "city"
	MarkerReport MarkerKind = "report"
)

// Fixed presentation of report markers. They ignore the opacity selection.
const (
	CityMarkerHeight   = 50000.0
	ReportMarkerHeight = 10000.0
	ReportMarkerSize   = 15.0
	ReportMarkerLabel  = "Community Report"
)

// Marker is everything a globe host needs to draw and pick one point.
// Exactly one of City or Report is set, matching Kind.
type Marker struct {
	ID     string      `json:"id"`
	Kind   MarkerKind  `json:"kind"`
	Lat    float64     `json:"lat"`
	Lon    float64     `json:"lon"`
	Height float64     `json:"height"`
	Color  RGBA        `json:"color"`
	Size   float64     `json:"size"`
	Label  string      `json:"label"`
	City   *CityInfo   `json:"city,omitempty"`
	Report *ReportInfo `json:"report,omitempty"`
}

// BuildScene encodes every city for the state's selection, followed by one
// marker per community report in submission order. Each call produces a fresh
// marker set; nothing is reused from earlier scenes.
func (e *Encoder) BuildScene(state State, cities []Measurement) ([]Marker, error) {
	sel := state.Selection
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	markers := make([]Marker, 0, len(cities)+len(state.Reports))
	for i, m := range cities {
		marker, err := e.cityMarker(m, i, sel)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", m.City, err)
		}
		markers = append(markers, marker)
	}
	for _, r := range state.Reports {
		markers = append(markers, reportMarker(r))
	}
	return markers, nil
}

// CityDetails returns the details payload for the named city under sel. The
// city's index in cities is its phase seed, as in BuildScene.
func (e *Encoder) CityDetails(cities []Measurement, name string, sel Selection) (CityInfo, error) {
	if err := sel.Validate(); err != nil {
		return CityInfo{}, err
	}
	idx, m, err := FindCity(cities, name)
	if err != nil {
		return CityInfo{}, err
	}
	value, err := e.ComputeValue(m, sel.Gas, sel.Year, idx)
	if err != nil {
		return CityInfo{}, err
	}
	return e.NewCityInfo(m, sel.Gas, value)
}

func (e *Encoder) cityMarker(m Measurement, seed int, sel Selection) (Marker, error) {
	enc, err := e.Encode(m, sel.Gas, sel.Year, seed)
	if err != nil {
		return Marker{}, err
	}
	info, err := e.NewCityInfo(m, sel.Gas, enc.CurrentValue)
	if err != nil {
		return Marker{}, err
	}
	return Marker{
		ID:     fmt.Sprintf("city-%d", seed),
		Kind:   MarkerCity,
		Lat:    m.Lat,
		Lon:    m.Lon,
		Height: CityMarkerHeight,
		Color:  enc.Color.WithAlpha(sel.Opacity),
		Size:   enc.Size,
		Label:  m.City,
		City:   &info,
	}, nil
}

func reportMarker(r CommunityReport) Marker {
	info := NewReportInfo(r)
	return Marker{
		ID:     "report-" + r.ID,
		Kind:   MarkerReport,
		Lat:    r.Lat,
		Lon:    r.Lon,
		Height: ReportMarkerHeight,
		Color:  Yellow,
		Size:   ReportMarkerSize,
		Label:  ReportMarkerLabel,
		Report: &info,
	}
}
