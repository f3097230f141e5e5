// Package triangles provides the claims development triangle: a sparse grid
// of cumulative or incremental values indexed by origin year and development
// age, built by aggregation from a claims collection. Absent cells are
// represented as absent, never as zero.
package triangles

import "sort"

// Mode declares whether a triangle's cells hold running totals or
// period-over-period movements.
type Mode string

const (
	ModeCumulative  Mode = "cumulative"
	ModeIncremental Mode = "incremental"
	// ModeFactor marks derived triangles whose cells are ratios rather than
	// amounts; they are not convertible.
	ModeFactor Mode = "factor"
)

// DiagonalCell is one entry of the valuation diagonal: the most mature
// observed cell of an origin year.
type DiagonalCell struct {
	Age   int
	Value float64
}

// Triangle is immutable once built. Construct one with New or FromClaims,
// or derive one via ToIncremental/ToCumulative.
type Triangle struct {
	mode    Mode
	cells   map[int]map[int]float64
	origins []int // sorted origin years
	ages    []int // sorted union of development ages
}

// New builds a triangle from a nested origin-year -> development-age -> value
// mapping. The input is copied; origin years and ages are derived sorted.
func New(mode Mode, cells map[int]map[int]float64) *Triangle {
	copied := make(map[int]map[int]float64, len(cells))
	ageSet := make(map[int]bool)
	origins := make([]int, 0, len(cells))

	for origin, row := range cells {
		if len(row) == 0 {
			continue
		}
		rowCopy := make(map[int]float64, len(row))
		for age, value := range row {
			rowCopy[age] = value
			ageSet[age] = true
		}
		copied[origin] = rowCopy
		origins = append(origins, origin)
	}

	ages := make([]int, 0, len(ageSet))
	for age := range ageSet {
		ages = append(ages, age)
	}
	sort.Ints(origins)
	sort.Ints(ages)

	return &Triangle{mode: mode, cells: copied, origins: origins, ages: ages}
}

// Mode reports whether the cells are cumulative or incremental.
func (t *Triangle) Mode() Mode { return t.mode }

// Empty reports whether the triangle has no origin years.
func (t *Triangle) Empty() bool { return len(t.origins) == 0 }

// OriginYears returns the origin years present, ascending.
func (t *Triangle) OriginYears() []int { return append([]int(nil), t.origins...) }

// DevelopmentAges returns the union of development ages present, ascending.
func (t *Triangle) DevelopmentAges() []int { return append([]int(nil), t.ages...) }

// Value returns the cell for (origin year, development age). ok is false for
// absent cells; absent is never conflated with zero.
func (t *Triangle) Value(origin, age int) (value float64, ok bool) {
	row, ok := t.cells[origin]
	if !ok {
		return 0, false
	}
	value, ok = row[age]
	return value, ok
}

// OriginAges returns the development ages present for one origin year,
// ascending.
func (t *Triangle) OriginAges(origin int) []int {
	row, ok := t.cells[origin]
	if !ok {
		return nil
	}

	ages := make([]int, 0, len(row))
	for age := range row {
		ages = append(ages, age)
	}
	sort.Ints(ages)
	return ages
}

// LatestDiagonal returns the most mature observed cell per origin year: the
// valuation diagonal as of the data's evaluation date.
func (t *Triangle) LatestDiagonal() map[int]DiagonalCell {
	diagonal := make(map[int]DiagonalCell, len(t.origins))
	for _, origin := range t.origins {
		ages := t.OriginAges(origin)
		if len(ages) == 0 {
			continue
		}
		last := ages[len(ages)-1]
		diagonal[origin] = DiagonalCell{Age: last, Value: t.cells[origin][last]}
	}
	return diagonal
}

// ToIncremental returns the incremental counterpart of a cumulative
// triangle: cell[i] = cumulative[i] - cumulative[i-1] along each origin's
// observed ages, with the first observed cell carried as-is. Calling it on an
// incremental triangle returns the receiver.
func (t *Triangle) ToIncremental() *Triangle {
	if t.mode != ModeCumulative {
		return t
	}

	cells := make(map[int]map[int]float64, len(t.cells))
	for origin := range t.cells {
		ages := t.OriginAges(origin)
		row := make(map[int]float64, len(ages))
		for i, age := range ages {
			if i == 0 {
				row[age] = t.cells[origin][age]
				continue
			}
			row[age] = t.cells[origin][age] - t.cells[origin][ages[i-1]]
		}
		cells[origin] = row
	}

	return New(ModeIncremental, cells)
}

// ToCumulative returns the cumulative counterpart of an incremental
// triangle: a running total along each origin's observed ages. Calling it on
// a cumulative triangle returns the receiver. The transform is the exact
// inverse of ToIncremental.
func (t *Triangle) ToCumulative() *Triangle {
	if t.mode != ModeIncremental {
		return t
	}

	cells := make(map[int]map[int]float64, len(t.cells))
	for origin := range t.cells {
		ages := t.OriginAges(origin)
		row := make(map[int]float64, len(ages))
		var running float64
		for _, age := range ages {
			running += t.cells[origin][age]
			row[age] = running
		}
		cells[origin] = row
	}

	return New(ModeCumulative, cells)
}
