package domain

import "fmt"

// MalformedHistoryError reports a development history that violates its
// construction invariants (ages not strictly increasing from zero, or
// cumulative paid decreasing). Histories are rejected whole; nothing is
// silently corrected.
type MalformedHistoryError struct {
	ClaimID string
	Message string
}

func (e MalformedHistoryError) Error() string {
	if e.ClaimID != "" {
		return fmt.Sprintf("malformed development history (claim %s): %s", e.ClaimID, e.Message)
	}
	return fmt.Sprintf("malformed development history: %s", e.Message)
}

// InsufficientDataError reports an aggregation with no valid inputs, e.g. a
// factor request against a transition where no origin period contributes a
// ratio. Surfaced instead of a misleading default.
type InsufficientDataError struct {
	Operation string
	Message   string
}

func (e InsufficientDataError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s: insufficient data: %s", e.Operation, e.Message)
	}
	return fmt.Sprintf("insufficient data: %s", e.Message)
}

// FittingError reports a curve fit that cannot produce a valid decay for the
// requested family. The caller decides whether to fall back to the last
// observed factor.
type FittingError struct {
	Family  CurveFamily
	Message string
}

func (e FittingError) Error() string {
	return fmt.Sprintf("curve fit (%s): %s", e.Family, e.Message)
}

// ConfigurationError reports an unrecognised mode selector (averaging method,
// curve family, year basis, value type).
type ConfigurationError struct {
	Field string
	Value string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("unrecognized %s: %q", e.Field, e.Value)
}
