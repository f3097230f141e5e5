package ibner

import (
	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/modules/development"
	"github.com/aristath/rely/internal/modules/triangles"
)

// FactorTriangle returns the per-origin development-factor triangle of a
// cumulative triangle: each origin's first observed age carries 1.0 and every
// later observed age carries value/previous value. Cells whose predecessor is
// absent or zero stay absent.
func FactorTriangle(tri *triangles.Triangle) *triangles.Triangle {
	tri = tri.ToCumulative()

	cells := make(map[int]map[int]float64)
	for _, origin := range tri.OriginYears() {
		ages := tri.OriginAges(origin)
		if len(ages) == 0 {
			continue
		}

		row := make(map[int]float64, len(ages))
		for i, age := range ages {
			current, _ := tri.Value(origin, age)
			if i == 0 {
				row[age] = 1.0
				continue
			}
			prev, ok := tri.Value(origin, ages[i-1])
			if !ok || prev == 0 {
				continue
			}
			row[age] = current / prev
		}
		cells[origin] = row
	}

	return triangles.New(triangles.ModeFactor, cells)
}

// Completion returns, per origin year, the factor that develops its latest
// diagonal value to the latest observed age of the whole triangle: the
// product of the selected factors for every transition at or beyond the
// origin's diagonal age. Mature origins carry 1.0.
func Completion(tri *triangles.Triangle, method domain.AveragingMethod) (map[int]float64, error) {
	tri = tri.ToCumulative()

	toLatest, err := development.Calculate(tri).ToLatest(method)
	if err != nil {
		return nil, err
	}

	byAge := make(map[int]float64, len(toLatest))
	for _, cf := range toLatest {
		byAge[cf.FromAge] = cf.Factor
	}

	out := make(map[int]float64)
	for origin, cell := range tri.LatestDiagonal() {
		factor, ok := byAge[cell.Age]
		if !ok {
			// Diagonal age sits outside the factor grid; nothing to develop.
			factor = 1.0
		}
		out[origin] = factor
	}

	return out, nil
}
