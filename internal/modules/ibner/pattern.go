// Package ibner derives incurred-development adjustment patterns from paid
// and incurred triangles. The ratio pattern flags reserve-strengthening or
// release dynamics; values near 1.0 mean paid and incurred develop alike.
//
// Methodology source: Schnieper, Separating True IBNR and IBNER Claims,
// ASTIN Bulletin 21(1),
// https://www.casact.org/sites/default/files/database/astin_vol21no1_111.pdf
package ibner

import (
	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/modules/development"
	"github.com/aristath/rely/internal/modules/triangles"
)

// PatternPoint is the IBNER adjustment ratio for one age transition: the
// incurred development factor divided by the paid development factor.
type PatternPoint struct {
	Transition development.Transition
	Ratio      float64
}

// Extract computes the IBNER pattern from a paid and an incurred triangle
// over the same origin periods and ages. Both factor sets are aggregated
// with the given averaging method. No smoothing is applied here; feed the
// resulting sequence through the curve fitter if a smoothed pattern is
// wanted.
func Extract(paid, incurred *triangles.Triangle, method domain.AveragingMethod) ([]PatternPoint, error) {
	paidSelected, err := development.Calculate(paid).Selected(method)
	if err != nil {
		return nil, err
	}
	incurredSelected, err := development.Calculate(incurred).Selected(method)
	if err != nil {
		return nil, err
	}

	incurredByTransition := make(map[development.Transition]float64, len(incurredSelected))
	for _, sf := range incurredSelected {
		incurredByTransition[sf.Transition] = sf.Factor
	}

	if len(paidSelected) != len(incurredSelected) {
		return nil, domain.InsufficientDataError{
			Operation: "ibner pattern",
			Message:   "paid and incurred triangles do not share the same development ages",
		}
	}

	pattern := make([]PatternPoint, 0, len(paidSelected))
	for _, sf := range paidSelected {
		incurredFactor, ok := incurredByTransition[sf.Transition]
		if !ok {
			return nil, domain.InsufficientDataError{
				Operation: "ibner pattern",
				Message:   "paid and incurred triangles do not share the same development ages",
			}
		}
		if sf.Factor == 0 {
			return nil, domain.InsufficientDataError{
				Operation: "ibner pattern",
				Message:   "paid development factor is zero at transition " + sf.Transition.String(),
			}
		}
		pattern = append(pattern, PatternPoint{
			Transition: sf.Transition,
			Ratio:      incurredFactor / sf.Factor,
		})
	}

	return pattern, nil
}
