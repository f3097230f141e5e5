// Package formulas provides the shared numeric helpers used by the factor
// and curve-fitting modules. Everything here is a thin wrapper over gonum.
package formulas

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// LinearRegression performs an ordinary least squares fit of y against x and
// returns the slope and intercept of the regression line.
func LinearRegression(x, y []float64) (slope, intercept float64) {
	intercept, slope = stat.LinearRegression(x, y, nil, false)
	return slope, intercept
}

// RSquared calculates the coefficient of determination between observed
// values and model expectations.
func RSquared(actual, expected []float64) float64 {
	if len(actual) == 0 || len(actual) != len(expected) {
		return 0
	}

	meanActual := stat.Mean(actual, nil)

	var totalSS, residualSS float64
	for i := range actual {
		totalSS += (actual[i] - meanActual) * (actual[i] - meanActual)
		residualSS += (actual[i] - expected[i]) * (actual[i] - expected[i])
	}

	if totalSS == 0 {
		return 0
	}

	return 1 - residualSS/totalSS
}

// StandardizedResiduals returns the residuals actual-expected scaled by the
// bias-corrected residual standard deviation. numParameters is the number of
// fitted model parameters and enters the degrees-of-freedom correction.
func StandardizedResiduals(actual, expected []float64, numParameters int) []float64 {
	n := len(actual)
	if n == 0 || n != len(expected) || n <= numParameters {
		return nil
	}

	residuals := make([]float64, n)
	var sumSquares float64
	for i := range actual {
		residuals[i] = actual[i] - expected[i]
		sumSquares += residuals[i] * residuals[i]
	}

	sigma := math.Sqrt(sumSquares / float64(n-numParameters))
	if sigma == 0 {
		return nil
	}

	for i := range residuals {
		residuals[i] /= sigma
	}

	return residuals
}

// ErrorAssumptions summarises how well a fit's standardised residuals behave
// like white noise.
type ErrorAssumptions struct {
	ProportionPositive     float64 // share of residuals above zero
	ProportionOutsideRange float64 // share of residuals outside (-2, 2)
	MeanResidual           float64
	StdResidual            float64
}

// AssessErrorAssumptions computes the residual diagnostics for a fitted model.
func AssessErrorAssumptions(actual, expected []float64, numParameters int) ErrorAssumptions {
	residuals := StandardizedResiduals(actual, expected, numParameters)
	if len(residuals) == 0 {
		return ErrorAssumptions{}
	}

	var positive, outside int
	for _, r := range residuals {
		if r > 0 {
			positive++
		}
		if r < -2 || r > 2 {
			outside++
		}
	}

	n := float64(len(residuals))
	mean := stat.Mean(residuals, nil)

	var sumSquares float64
	for _, r := range residuals {
		sumSquares += (r - mean) * (r - mean)
	}

	return ErrorAssumptions{
		ProportionPositive:     float64(positive) / n,
		ProportionOutsideRange: float64(outside) / n,
		MeanResidual:           mean,
		StdResidual:            math.Sqrt(sumSquares / n),
	}
}
