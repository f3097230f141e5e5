package triangles

import (
	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/modules/claims"
)

// FromClaims aggregates a collection into a cumulative triangle of the
// selected value type. Records are grouped by modelling year; within each
// group, every development age observed by any member becomes a cell, summed
// over the members whose history reaches at least that age. Claims that have
// not yet reached an age do not contribute there - the cell total never
// treats immaturity as zero.
//
// Values are taken from each record's capped history (net of deductible,
// capped at the contract limit). An empty collection yields a valid empty
// triangle.
func FromClaims(collection *claims.Collection, valueType domain.ValueType) (*Triangle, error) {
	grouped := make(map[int][]claims.DevelopmentHistory)
	for _, record := range collection.Records() {
		year, err := record.ModellingYear()
		if err != nil {
			return nil, err
		}
		grouped[year] = append(grouped[year], record.CappedHistory())
	}

	cells := make(map[int]map[int]float64, len(grouped))
	for year, histories := range grouped {
		ageSet := make(map[int]bool)
		for _, h := range histories {
			for _, age := range h.Ages() {
				ageSet[age] = true
			}
		}

		row := make(map[int]float64, len(ageSet))
		for age := range ageSet {
			var total float64
			contributed := false
			for _, h := range histories {
				if h.LatestAge() < age {
					continue
				}
				value, ok := h.ValueAt(valueType, age)
				if !ok {
					continue
				}
				total += value
				contributed = true
			}
			if contributed {
				row[age] = total
			}
		}
		cells[year] = row
	}

	return New(ModeCumulative, cells), nil
}
