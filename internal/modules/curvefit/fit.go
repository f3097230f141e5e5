// Package curvefit extrapolates development factors beyond the observed
// maturity by fitting a parametric decay curve to the selected age-to-age
// factors. Fitting is least squares on the log-linearised form, solved by
// ordinary linear regression, so results are reproducible bit-for-bit.
//
// Source for the fitted forms: Lyons, Forster, Kedney, Warren & Wilkinson,
// Claims Reserving Working Party Paper,
// https://www.actuaries.org.uk/system/files/documents/pdf/lyons.pdf
package curvefit

import (
	"fmt"
	"math"

	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/pkg/formulas"
)

// Point is one observed (development age, age-to-age factor) pair.
type Point struct {
	Age    float64
	Factor float64
}

// DefaultCGrid is the candidate offset grid used for the inverse-power
// family when the caller does not supply one.
var DefaultCGrid = []float64{0.0, 0.5, 1.0, 2.0, 5.0}

// Curve is a fitted decay curve. Immutable; query it with Factor.
type Curve struct {
	family   domain.CurveFamily
	a, b, c  float64
	residual float64 // sum of squared log-residuals
	points   []Point // points the fit used, after filtering
}

// Fit fits the requested family to the factor sequence. Points with a factor
// not exceeding 1 are filtered out (their decay residual has no logarithm);
// the power and inverse-power families additionally require a positive age.
// Fewer than two usable points is a FittingError: a flat or negative tail
// cannot be fit with these families.
func Fit(family domain.CurveFamily, points []Point) (*Curve, error) {
	switch family {
	case domain.CurveExponential:
		return fitExponential(points)
	case domain.CurvePower:
		return fitPower(points)
	case domain.CurveInversePower:
		return FitInversePower(points, DefaultCGrid)
	}
	return nil, domain.ConfigurationError{Field: "curve_family", Value: string(family)}
}

// fitExponential fits f(t) = 1 + a*exp(-b*t) via ln(f-1) = ln(a) - b*t.
func fitExponential(points []Point) (*Curve, error) {
	usable := filter(points, false)
	if len(usable) < 2 {
		return nil, tooFewPoints(domain.CurveExponential, len(usable))
	}

	x := make([]float64, len(usable))
	y := make([]float64, len(usable))
	for i, p := range usable {
		x[i] = p.Age
		y[i] = math.Log(p.Factor - 1)
	}

	slope, intercept := formulas.LinearRegression(x, y)
	c := &Curve{
		family: domain.CurveExponential,
		a:      math.Exp(intercept),
		b:      -slope,
		points: usable,
	}
	c.residual = logResidual(x, y, slope, intercept)
	return c, nil
}

// fitPower fits f(t) = 1 + a*t^(-b) via ln(f-1) = ln(a) - b*ln(t).
func fitPower(points []Point) (*Curve, error) {
	usable := filter(points, true)
	if len(usable) < 2 {
		return nil, tooFewPoints(domain.CurvePower, len(usable))
	}

	x := make([]float64, len(usable))
	y := make([]float64, len(usable))
	for i, p := range usable {
		x[i] = math.Log(p.Age)
		y[i] = math.Log(p.Factor - 1)
	}

	slope, intercept := formulas.LinearRegression(x, y)
	c := &Curve{
		family: domain.CurvePower,
		a:      math.Exp(intercept),
		b:      -slope,
		points: usable,
	}
	c.residual = logResidual(x, y, slope, intercept)
	return c, nil
}

// FitInversePower fits the Sherman curve f(t) = 1 + a*(t+c)^b via
// ln(f-1) = ln(a) + b*ln(t+c), trying every candidate c and keeping the one
// with the smallest standard error on the untransformed factor scale.
func FitInversePower(points []Point, cValues []float64) (*Curve, error) {
	usable := filter(points, true)
	if len(usable) < 2 {
		return nil, tooFewPoints(domain.CurveInversePower, len(usable))
	}
	if len(cValues) == 0 {
		cValues = DefaultCGrid
	}

	var best *Curve
	bestErr := math.Inf(1)

	for _, c := range cValues {
		valid := true
		x := make([]float64, len(usable))
		y := make([]float64, len(usable))
		for i, p := range usable {
			if p.Age+c <= 0 {
				valid = false
				break
			}
			x[i] = math.Log(p.Age + c)
			y[i] = math.Log(p.Factor - 1)
		}
		if !valid {
			continue
		}

		slope, intercept := formulas.LinearRegression(x, y)
		candidate := &Curve{
			family:   domain.CurveInversePower,
			a:        math.Exp(intercept),
			b:        slope,
			c:        c,
			points:   usable,
			residual: logResidual(x, y, slope, intercept),
		}

		se := candidate.standardError()
		if se < bestErr {
			bestErr = se
			best = candidate
		}
	}

	if best == nil {
		return nil, domain.FittingError{
			Family:  domain.CurveInversePower,
			Message: "no candidate offset produced a valid fit",
		}
	}
	return best, nil
}

// Family returns the fitted curve family.
func (c *Curve) Family() domain.CurveFamily { return c.family }

// Params returns the fitted parameters. The offset is zero except for the
// inverse-power family.
func (c *Curve) Params() (a, b, offset float64) { return c.a, c.b, c.c }

// Residual returns the sum of squared log-residuals of the fit, the
// goodness-of-fit quality signal.
func (c *Curve) Residual() float64 { return c.residual }

// Factor projects the development factor at any age.
func (c *Curve) Factor(age float64) float64 {
	switch c.family {
	case domain.CurveExponential:
		return 1 + c.a*math.Exp(-c.b*age)
	case domain.CurvePower:
		return 1 + c.a*math.Pow(age, -c.b)
	case domain.CurveInversePower:
		return 1 + c.a*math.Pow(age+c.c, c.b)
	}
	return math.NaN()
}

// RSquared returns the coefficient of determination on the factor scale.
func (c *Curve) RSquared() float64 {
	actual, expected := c.actualExpected()
	return formulas.RSquared(actual, expected)
}

// Diagnostics returns the standardised-residual summary of the fit on the
// factor scale.
func (c *Curve) Diagnostics() formulas.ErrorAssumptions {
	actual, expected := c.actualExpected()
	return formulas.AssessErrorAssumptions(actual, expected, c.parameterCount())
}

func (c *Curve) actualExpected() (actual, expected []float64) {
	actual = make([]float64, len(c.points))
	expected = make([]float64, len(c.points))
	for i, p := range c.points {
		actual[i] = p.Factor
		expected[i] = c.Factor(p.Age)
	}
	return actual, expected
}

func (c *Curve) standardError() float64 {
	actual, expected := c.actualExpected()
	var sum float64
	for i := range actual {
		sum += (actual[i] - expected[i]) * (actual[i] - expected[i])
	}
	return math.Sqrt(sum / float64(len(actual)))
}

func (c *Curve) parameterCount() int {
	if c.family == domain.CurveInversePower {
		return 3
	}
	return 2
}

// filter keeps points usable for log-linearisation: factor above 1, and a
// positive age when the transform takes log(t).
func filter(points []Point, requirePositiveAge bool) []Point {
	usable := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Factor <= 1 {
			continue
		}
		if requirePositiveAge && p.Age <= 0 {
			continue
		}
		usable = append(usable, p)
	}
	return usable
}

func logResidual(x, y []float64, slope, intercept float64) float64 {
	var sum float64
	for i := range x {
		r := y[i] - (intercept + slope*x[i])
		sum += r * r
	}
	return sum
}

func tooFewPoints(family domain.CurveFamily, n int) error {
	return domain.FittingError{
		Family:  family,
		Message: fmt.Sprintf("need at least 2 usable points with factor > 1, have %d", n),
	}
}
