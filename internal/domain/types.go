// Package domain provides the shared domain types for the claims
// development engine: currency and year-basis selectors, value types,
// averaging methods, curve families and the error taxonomy.
package domain

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyGBP Currency = "GBP"
)

// YearBasis selects how a claim's origin (modelling) year is derived.
type YearBasis string

const (
	// YearBasisAccident attributes the claim to the year of the loss date
	YearBasisAccident YearBasis = "ACCIDENT_YEAR"
	// YearBasisUnderwriting attributes the claim to the year of the policy inception date
	YearBasisUnderwriting YearBasis = "UNDERWRITING_YEAR"
	// YearBasisReport attributes the claim to the year of the report date
	YearBasisReport YearBasis = "REPORT_YEAR"
)

// ParseYearBasis maps a config/CLI string to a YearBasis.
func ParseYearBasis(s string) (YearBasis, error) {
	switch s {
	case "accident", string(YearBasisAccident):
		return YearBasisAccident, nil
	case "underwriting", string(YearBasisUnderwriting):
		return YearBasisUnderwriting, nil
	case "report", string(YearBasisReport):
		return YearBasisReport, nil
	}
	return "", ConfigurationError{Field: "year_basis", Value: s}
}

// ValueType selects which development amount a triangle aggregates.
type ValueType string

const (
	ValuePaid     ValueType = "paid"
	ValueIncurred ValueType = "incurred"
)

// ParseValueType maps a config/CLI string to a ValueType.
func ParseValueType(s string) (ValueType, error) {
	switch s {
	case string(ValuePaid):
		return ValuePaid, nil
	case string(ValueIncurred):
		return ValueIncurred, nil
	}
	return "", ConfigurationError{Field: "value_type", Value: s}
}

// ClaimStatus represents the lifecycle state of a claim.
type ClaimStatus string

const (
	StatusOpen   ClaimStatus = "Open"
	StatusClosed ClaimStatus = "Closed"
)

// AveragingMethod selects how per-origin age-to-age ratios are aggregated
// into one selected factor per transition.
type AveragingMethod string

const (
	// AverageSimple is the unweighted mean of the ratios
	AverageSimple AveragingMethod = "simple"
	// AverageVolume weights each ratio by its younger-age denominator,
	// i.e. sum(older values) / sum(younger values)
	AverageVolume AveragingMethod = "volume"
	// AverageMedial is the simple average after dropping the highest and
	// lowest ratio; below five ratios it falls back to the simple average
	AverageMedial AveragingMethod = "medial"
)

// ParseAveragingMethod maps a config/CLI string to an AveragingMethod.
func ParseAveragingMethod(s string) (AveragingMethod, error) {
	switch s {
	case string(AverageSimple):
		return AverageSimple, nil
	case string(AverageVolume):
		return AverageVolume, nil
	case string(AverageMedial):
		return AverageMedial, nil
	}
	return "", ConfigurationError{Field: "averaging_method", Value: s}
}

// CurveFamily selects the parametric family used for tail extrapolation.
type CurveFamily string

const (
	// CurveExponential fits f(t) = 1 + a*exp(-b*t)
	CurveExponential CurveFamily = "exponential"
	// CurvePower fits f(t) = 1 + a*t^(-b)
	CurvePower CurveFamily = "power"
	// CurveInversePower fits the Sherman curve f(t) = 1 + a*(t+c)^b over a
	// caller-supplied grid of c candidates
	CurveInversePower CurveFamily = "inverse_power"
)

// ParseCurveFamily maps a config/CLI string to a CurveFamily.
func ParseCurveFamily(s string) (CurveFamily, error) {
	switch s {
	case string(CurveExponential):
		return CurveExponential, nil
	case string(CurvePower):
		return CurvePower, nil
	case string(CurveInversePower):
		return CurveInversePower, nil
	}
	return "", ConfigurationError{Field: "curve_family", Value: s}
}
