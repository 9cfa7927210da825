package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownGas        = errors.New("unknown gas")
	ErrYearOutOfRange    = errors.New("year out of range")
	ErrOpacityOutOfRange = errors.New("opacity out of range")
	ErrUnknownCity       = errors.New("unknown city")
	ErrMissingField      = errors.New("missing required field")
	ErrReportNotFound    = errors.New("report not found")
)

// ValidationError reports a required report field that was left blank.
// It unwraps to ErrMissingField.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, e.Field)
}

func (e *ValidationError) Unwrap() error { return ErrMissingField }
