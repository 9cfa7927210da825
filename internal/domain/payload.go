package domain

import "time"

// CityInfo is the details-panel payload for a picked city marker.
type CityInfo struct {
	City              string         `json:"city"`
	CurrentValue      float64        `json:"currentValue"`
	Gas               GasKey         `json:"gas"`
	GasName           string         `json:"gasName"`
	Unit              string         `json:"unit"`
	Population        int            `json:"population"`
	AirQualityIndex   int            `json:"airQualityIndex"`
	AirQualityStatus  AirQualityBand `json:"airQualityStatus"`
	GreenSpacePercent int            `json:"greenSpacePercent"`
	Level             Level          `json:"level"`
	Recommendations   []string       `json:"recommendationList"`
	GasDescription    string         `json:"gasDescription"`
}

// NewCityInfo builds the details payload for m at an already computed value.
func (e *Encoder) NewCityInfo(m Measurement, gas GasKey, currentValue float64) (CityInfo, error) {
	spec, err := e.Gases.Lookup(gas)
	if err != nil {
		return CityInfo{}, err
	}
	level, err := e.ClassifyLevel(currentValue, gas)
	if err != nil {
		return CityInfo{}, err
	}
	return CityInfo{
		City:              m.City,
		CurrentValue:      currentValue,
		Gas:               gas,
		GasName:           spec.Name,
		Unit:              spec.Unit,
		Population:        m.Population,
		AirQualityIndex:   m.AirQualityIndex,
		AirQualityStatus:  AirQualityStatus(m.AirQualityIndex),
		GreenSpacePercent: m.GreenSpacePercent,
		Level:             level,
		Recommendations:   Recommendations(level),
		GasDescription:    spec.Description,
	}, nil
}

// ReportInfo is the details-panel payload for a picked report marker.
type ReportInfo struct {
	ID             string         `json:"id"`
	Category       string         `json:"reportCategory"`
	Description    string         `json:"reportDescription"`
	SubmittedAt    time.Time      `json:"reportTimestamp"`
	Location       string         `json:"reportLocation"`
	Lat            float64        `json:"lat"`
	Lon            float64        `json:"lon"`
	LocationSource LocationSource `json:"locationSource"`
}

// NewReportInfo builds the details payload for r.
func NewReportInfo(r CommunityReport) ReportInfo {
	return ReportInfo{
		ID:             r.ID,
		Category:       DisplayCategory(r.Category),
		Description:    r.Description,
		SubmittedAt:    r.SubmittedAt,
		Location:       r.Location,
		Lat:            r.Lat,
		Lon:            r.Lon,
		LocationSource: r.LocationSource,
	}
}
