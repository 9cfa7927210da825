package domain

import (
	"fmt"
	"math"
	"slices"
)

// Year slider bounds.
const (
	MinYear = 1977
	MaxYear = 2069
)

// Selection is the user's current view: gas, year and marker opacity.
type Selection struct {
	Gas     GasKey  `json:"gas"`
	Year    int     `json:"year"`
	Opacity float64 `json:"opacity"`
}

// DefaultSelection is the view shown before the user touches any control.
var DefaultSelection = Selection{Gas: GasCO2, Year: 2023, Opacity: 0.8}

// NewSelection parses and validates a raw selection.
func NewSelection(gas string, year int, opacity float64) (Selection, error) {
	key, err := ParseGas(gas)
	if err != nil {
		return Selection{}, err
	}
	sel := Selection{Gas: key, Year: year, Opacity: opacity}
	if err := sel.Validate(); err != nil {
		return Selection{}, err
	}
	return sel, nil
}

// Validate checks every field against its recognised options. The gas key
// must already be canonical; use NewSelection or ParseGas for raw input.
func (s Selection) Validate() error {
	if key, err := ParseGas(string(s.Gas)); err != nil {
		return err
	} else if key != s.Gas {
		return fmt.Errorf("%w: %q", ErrUnknownGas, s.Gas)
	}
	if s.Year < MinYear || s.Year > MaxYear {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrYearOutOfRange, s.Year, MinYear, MaxYear)
	}
	if math.IsNaN(s.Opacity) || s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("%w: %g not in [0, 1]", ErrOpacityOutOfRange, s.Opacity)
	}
	return nil
}

// State is the complete application state. It is a value: operations return
// a new State and leave the receiver untouched.
type State struct {
	Selection Selection         `json:"selection"`
	Reports   []CommunityReport `json:"reports"`
}

// NewState returns an empty state with the given selection.
func NewState(sel Selection) State {
	return State{Selection: sel}
}

// WithSelection returns a copy of s using sel.
func (s State) WithSelection(sel Selection) (State, error) {
	if err := sel.Validate(); err != nil {
		return s, err
	}
	s.Selection = sel
	return s, nil
}

// SubmitReport validates in and returns a copy of s with the new report
// appended. On error s is returned unchanged.
func (s State) SubmitReport(in ReportInput, loc Locator) (State, CommunityReport, error) {
	report, err := NewCommunityReport(in, loc)
	if err != nil {
		return s, CommunityReport{}, err
	}
	s.Reports = append(slices.Clip(s.Reports), report)
	return s, report, nil
}

// FindReport returns the report with the given ID.
func (s State) FindReport(id string) (CommunityReport, error) {
	for _, r := range s.Reports {
		if r.ID == id {
			return r, nil
		}
	}
	return CommunityReport{}, fmt.Errorf("%w: %q", ErrReportNotFound, id)
}
