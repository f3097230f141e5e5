// Package claims provides the claim-level data model: a validated
// development history, claim metadata, the claim record and an ordered
// collection with aggregate views.
package claims

import (
	"fmt"
	"math"

	"github.com/aristath/rely/internal/domain"
)

// DevelopmentHistory is an ordered sequence of cumulative paid/incurred
// observations by development age (months since the start of the origin
// period). It is validated once at construction and never mutated;
// re-evaluation produces a new history via WithObservation.
type DevelopmentHistory struct {
	ages     []int
	paid     []float64
	incurred []float64
}

// NewDevelopmentHistory builds a validated history. Invariants:
// ages strictly increase and start at 0, cumulative paid is non-decreasing.
// Cumulative incurred may decrease (reserve releases).
func NewDevelopmentHistory(ages []int, paid, incurred []float64) (DevelopmentHistory, error) {
	if len(ages) == 0 {
		return DevelopmentHistory{}, domain.MalformedHistoryError{Message: "history must contain at least one observation"}
	}
	if len(ages) != len(paid) || len(ages) != len(incurred) {
		return DevelopmentHistory{}, domain.MalformedHistoryError{
			Message: fmt.Sprintf("ages (%d), paid (%d) and incurred (%d) must have equal length", len(ages), len(paid), len(incurred)),
		}
	}
	if ages[0] != 0 {
		return DevelopmentHistory{}, domain.MalformedHistoryError{
			Message: fmt.Sprintf("history must start at development age 0, got %d", ages[0]),
		}
	}

	for i := 1; i < len(ages); i++ {
		if ages[i] <= ages[i-1] {
			return DevelopmentHistory{}, domain.MalformedHistoryError{
				Message: fmt.Sprintf("development ages must strictly increase: %d followed by %d", ages[i-1], ages[i]),
			}
		}
		if paid[i] < paid[i-1] {
			return DevelopmentHistory{}, domain.MalformedHistoryError{
				Message: fmt.Sprintf("cumulative paid must not decrease: %.2f followed by %.2f at age %d", paid[i-1], paid[i], ages[i]),
			}
		}
	}

	return DevelopmentHistory{
		ages:     append([]int(nil), ages...),
		paid:     append([]float64(nil), paid...),
		incurred: append([]float64(nil), incurred...),
	}, nil
}

// WithObservation returns a new history extended by one observation at a
// development age beyond the current latest. The receiver is unchanged.
func (h DevelopmentHistory) WithObservation(age int, paid, incurred float64) (DevelopmentHistory, error) {
	return NewDevelopmentHistory(
		append(append([]int(nil), h.ages...), age),
		append(append([]float64(nil), h.paid...), paid),
		append(append([]float64(nil), h.incurred...), incurred),
	)
}

// Len returns the number of observations.
func (h DevelopmentHistory) Len() int { return len(h.ages) }

// Ages returns a copy of the development ages.
func (h DevelopmentHistory) Ages() []int { return append([]int(nil), h.ages...) }

// CumulativePaid returns a copy of the cumulative paid amounts.
func (h DevelopmentHistory) CumulativePaid() []float64 {
	return append([]float64(nil), h.paid...)
}

// CumulativeIncurred returns a copy of the cumulative incurred amounts.
func (h DevelopmentHistory) CumulativeIncurred() []float64 {
	return append([]float64(nil), h.incurred...)
}

// LatestAge returns the most mature development age observed.
func (h DevelopmentHistory) LatestAge() int {
	if len(h.ages) == 0 {
		return 0
	}
	return h.ages[len(h.ages)-1]
}

// LatestPaid returns the cumulative paid amount at the latest observation.
func (h DevelopmentHistory) LatestPaid() float64 {
	if len(h.paid) == 0 {
		return 0
	}
	return h.paid[len(h.paid)-1]
}

// LatestIncurred returns the cumulative incurred amount at the latest observation.
func (h DevelopmentHistory) LatestIncurred() float64 {
	if len(h.incurred) == 0 {
		return 0
	}
	return h.incurred[len(h.incurred)-1]
}

// LatestReserved returns the case reserve implied by the latest observation.
func (h DevelopmentHistory) LatestReserved() float64 {
	return h.LatestIncurred() - h.LatestPaid()
}

// ValueAt returns the cumulative value of the selected type as of the given
// development age: the value at the most recent observation at or before that
// age. ok is false when the history has no observation at or before the age.
func (h DevelopmentHistory) ValueAt(valueType domain.ValueType, age int) (value float64, ok bool) {
	idx := -1
	for i, a := range h.ages {
		if a > age {
			break
		}
		idx = i
	}
	if idx < 0 {
		return 0, false
	}
	if valueType == domain.ValuePaid {
		return h.paid[idx], true
	}
	return h.incurred[idx], true
}

// IncrementalPaid returns the period-over-period paid movements.
func (h DevelopmentHistory) IncrementalPaid() []float64 {
	return incremental(h.paid)
}

// IncrementalIncurred returns the period-over-period incurred movements.
func (h DevelopmentHistory) IncrementalIncurred() []float64 {
	return incremental(h.incurred)
}

// MeanPaymentDuration returns the average development age weighted by
// incremental paid amounts, or NaN when nothing has been paid.
func (h DevelopmentHistory) MeanPaymentDuration() float64 {
	increments := h.IncrementalPaid()

	var weighted, total float64
	for i, inc := range increments {
		weighted += float64(h.ages[i]) * inc
		total += inc
	}
	if total == 0 {
		return math.NaN()
	}
	return weighted / total
}

// netted returns a copy of the history with the deductible subtracted and the
// contract limit applied. Used by Record for its capped/uncapped views.
func (h DevelopmentHistory) netted(deductible, limit float64) DevelopmentHistory {
	paid := make([]float64, len(h.paid))
	incurred := make([]float64, len(h.incurred))

	for i := range h.paid {
		paid[i] = math.Max(h.paid[i]-deductible, 0)
		incurred[i] = math.Max(h.incurred[i]-deductible, 0)
		if limit > 0 {
			paid[i] = math.Min(paid[i], limit)
			incurred[i] = math.Min(incurred[i], limit)
		}
	}

	return DevelopmentHistory{
		ages:     append([]int(nil), h.ages...),
		paid:     paid,
		incurred: incurred,
	}
}

func incremental(cumulative []float64) []float64 {
	if len(cumulative) == 0 {
		return nil
	}

	out := make([]float64, len(cumulative))
	out[0] = cumulative[0]
	for i := 1; i < len(cumulative); i++ {
		out[i] = cumulative[i] - cumulative[i-1]
	}

	return out
}
