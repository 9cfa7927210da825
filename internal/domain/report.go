package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is assigned to reports submitted without a category.
const DefaultCategory = "other"

// ReportInput is the raw form submission for a community report.
type ReportInput struct {
	Category    string `json:"category"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// CommunityReport is a user-submitted observation pinned to the globe. Reports
// live only for the lifetime of the process.
type CommunityReport struct {
	ID             string         `json:"id"`
	Category       string         `json:"category"`
	Location       string         `json:"location"`
	Description    string         `json:"description"`
	SubmittedAt    time.Time      `json:"submittedAt"`
	Lat            float64        `json:"lat"`
	Lon            float64        `json:"lon"`
	LocationSource LocationSource `json:"locationSource"`
}

// NewCommunityReport validates in and resolves its location. Location and
// description are required; a blank category becomes DefaultCategory.
func NewCommunityReport(in ReportInput, loc Locator) (CommunityReport, error) {
	location := strings.TrimSpace(in.Location)
	description := strings.TrimSpace(in.Description)
	category := strings.TrimSpace(in.Category)

	if location == "" {
		return CommunityReport{}, &ValidationError{Field: "location"}
	}
	if description == "" {
		return CommunityReport{}, &ValidationError{Field: "description"}
	}
	if category == "" {
		category = DefaultCategory
	}

	res := loc.Locate(location)
	return CommunityReport{
		ID:             uuid.NewString(),
		Category:       category,
		Location:       location,
		Description:    description,
		SubmittedAt:    clock.Now().UTC(),
		Lat:            res.Lat,
		Lon:            res.Lon,
		LocationSource: res.Source,
	}, nil
}

// DisplayCategory formats a category key for the details panel:
// "air-quality" -> "AIR QUALITY". Every hyphen becomes a space, so
// "green-space-loss" -> "GREEN SPACE LOSS".
func DisplayCategory(category string) string {
	return strings.ToUpper(strings.ReplaceAll(category, "-", " "))
}
