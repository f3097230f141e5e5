// Package development derives age-to-age development factors from a claims
// triangle and aggregates them into selected factors per transition using a
// configurable averaging method.
package development

import (
	"fmt"
	"sort"

	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/modules/triangles"
	"github.com/aristath/rely/pkg/formulas"
)

// Transition identifies one adjacent pair of development ages.
type Transition struct {
	FromAge int
	ToAge   int
}

func (t Transition) String() string {
	return fmt.Sprintf("%d->%d", t.FromAge, t.ToAge)
}

// SelectedFactor is the aggregated factor for one transition.
type SelectedFactor struct {
	Transition   Transition
	Factor       float64
	Contributors int // origin periods contributing a ratio
}

// CumulativeFactor is the product of selected factors from an age to the
// latest observed age.
type CumulativeFactor struct {
	FromAge int
	Factor  float64
}

type contribution struct {
	origin  int
	ratio   float64
	younger float64
	older   float64
}

// Factors holds the per-origin age-to-age ratios of one triangle. Derived
// strictly from the triangle, never mutated.
type Factors struct {
	triangle      *triangles.Triangle
	transitions   []Transition
	byOrigin      map[int]map[Transition]float64
	contributions map[Transition][]contribution
}

// Calculate computes the per-origin age-to-age ratios of a triangle. An
// incremental triangle is converted to cumulative first. For each transition
// between adjacent ages in the triangle's age union, an origin period
// contributes value(older)/value(younger) only when both cells are present
// and the younger value is non-zero; absent cells and zero denominators are
// skip conditions, not errors.
func Calculate(tri *triangles.Triangle) *Factors {
	tri = tri.ToCumulative()

	ages := tri.DevelopmentAges()
	transitions := make([]Transition, 0, len(ages))
	for i := 0; i+1 < len(ages); i++ {
		transitions = append(transitions, Transition{FromAge: ages[i], ToAge: ages[i+1]})
	}

	byOrigin := make(map[int]map[Transition]float64)
	contributions := make(map[Transition][]contribution)

	for _, origin := range tri.OriginYears() {
		for _, tr := range transitions {
			younger, okY := tri.Value(origin, tr.FromAge)
			older, okO := tri.Value(origin, tr.ToAge)
			if !okY || !okO || younger == 0 {
				continue
			}

			ratio := older / younger
			if byOrigin[origin] == nil {
				byOrigin[origin] = make(map[Transition]float64)
			}
			byOrigin[origin][tr] = ratio
			contributions[tr] = append(contributions[tr], contribution{
				origin:  origin,
				ratio:   ratio,
				younger: younger,
				older:   older,
			})
		}
	}

	return &Factors{
		triangle:      tri,
		transitions:   transitions,
		byOrigin:      byOrigin,
		contributions: contributions,
	}
}

// Transitions returns the adjacent age pairs of the triangle, ascending.
func (f *Factors) Transitions() []Transition {
	return append([]Transition(nil), f.transitions...)
}

// OriginFactors returns the age-to-age ratios one origin period contributes.
func (f *Factors) OriginFactors(origin int) map[Transition]float64 {
	out := make(map[Transition]float64, len(f.byOrigin[origin]))
	for tr, ratio := range f.byOrigin[origin] {
		out[tr] = ratio
	}
	return out
}

// Selected aggregates the per-origin ratios into one factor per transition
// using the given averaging method. Every transition must have at least one
// contributing origin period; otherwise an InsufficientDataError is returned
// rather than a misleading default.
func (f *Factors) Selected(method domain.AveragingMethod) ([]SelectedFactor, error) {
	if len(f.transitions) == 0 {
		return nil, domain.InsufficientDataError{
			Operation: "selected factors",
			Message:   "triangle has no adjacent development ages",
		}
	}

	out := make([]SelectedFactor, 0, len(f.transitions))
	for _, tr := range f.transitions {
		contribs := f.contributions[tr]
		if len(contribs) == 0 {
			return nil, domain.InsufficientDataError{
				Operation: "selected factors",
				Message:   fmt.Sprintf("no contributing origin periods for transition %s", tr),
			}
		}

		factor, err := aggregate(method, contribs)
		if err != nil {
			return nil, err
		}

		out = append(out, SelectedFactor{Transition: tr, Factor: factor, Contributors: len(contribs)})
	}

	return out, nil
}

// ToLatest returns, for every development age, the cumulative factor from
// that age to the latest observed age: the product of the selected factors of
// all intervening transitions, ascending. The latest age carries factor 1.
func (f *Factors) ToLatest(method domain.AveragingMethod) ([]CumulativeFactor, error) {
	selected, err := f.Selected(method)
	if err != nil {
		return nil, err
	}

	out := make([]CumulativeFactor, len(selected)+1)
	product := 1.0
	out[len(selected)] = CumulativeFactor{FromAge: selected[len(selected)-1].Transition.ToAge, Factor: 1.0}
	for i := len(selected) - 1; i >= 0; i-- {
		product *= selected[i].Factor
		out[i] = CumulativeFactor{FromAge: selected[i].Transition.FromAge, Factor: product}
	}

	return out, nil
}

// Ultimates projects each origin period to ultimate by the chain-ladder
// method: the latest diagonal value times the cumulative factor from the
// diagonal age to the latest observed age.
func (f *Factors) Ultimates(method domain.AveragingMethod) (map[int]float64, error) {
	selected, err := f.Selected(method)
	if err != nil {
		return nil, err
	}

	diagonal := f.triangle.LatestDiagonal()
	out := make(map[int]float64, len(diagonal))
	for origin, cell := range diagonal {
		product := 1.0
		for _, sf := range selected {
			if sf.Transition.FromAge >= cell.Age {
				product *= sf.Factor
			}
		}
		out[origin] = cell.Value * product
	}

	return out, nil
}

func aggregate(method domain.AveragingMethod, contribs []contribution) (float64, error) {
	switch method {
	case domain.AverageSimple:
		return simpleAverage(ratios(contribs)), nil
	case domain.AverageVolume:
		var sumOlder, sumYounger float64
		for _, c := range contribs {
			sumOlder += c.older
			sumYounger += c.younger
		}
		if sumYounger == 0 {
			return 0, domain.InsufficientDataError{
				Operation: "volume-weighted average",
				Message:   "younger-age volumes sum to zero",
			}
		}
		return sumOlder / sumYounger, nil
	case domain.AverageMedial:
		return medialAverage(ratios(contribs)), nil
	}
	return 0, domain.ConfigurationError{Field: "averaging_method", Value: string(method)}
}

func ratios(contribs []contribution) []float64 {
	out := make([]float64, len(contribs))
	for i, c := range contribs {
		out[i] = c.ratio
	}
	return out
}

func simpleAverage(values []float64) float64 {
	return formulas.Mean(values)
}

// medialAverage drops exactly one highest and one lowest ratio when at least
// five are available; below that it falls back to the simple average.
func medialAverage(values []float64) float64 {
	if len(values) < 5 {
		return simpleAverage(values)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return simpleAverage(sorted[1 : len(sorted)-1])
}
