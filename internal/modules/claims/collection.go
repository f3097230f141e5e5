package claims

import (
	"sort"

	"github.com/aristath/rely/internal/domain"
)

// Collection is an ordered, appendable set of claim records. Insertion order
// is preserved for reproducibility. Append copies, so snapshots handed to
// downstream consumers never observe later additions.
type Collection struct {
	records []Record
}

// NewCollection builds a collection from the given records.
func NewCollection(records ...Record) *Collection {
	return &Collection{records: append([]Record(nil), records...)}
}

// Append returns a new collection with the record added. The receiver is
// unchanged.
func (c *Collection) Append(r Record) *Collection {
	records := make([]Record, 0, len(c.records)+1)
	records = append(records, c.records...)
	records = append(records, r)
	return &Collection{records: records}
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// At returns the record at position i in insertion order.
func (c *Collection) At(i int) Record { return c.records[i] }

// Records returns a copy of the records in insertion order.
func (c *Collection) Records() []Record {
	return append([]Record(nil), c.records...)
}

// ModellingYears returns the distinct origin years present, ascending.
// Records whose year basis cannot be resolved are skipped here; triangle
// construction surfaces that error instead.
func (c *Collection) ModellingYears() []int {
	seen := make(map[int]bool)
	for _, r := range c.records {
		year, err := r.ModellingYear()
		if err != nil {
			continue
		}
		seen[year] = true
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Currencies returns the distinct currencies present, sorted.
func (c *Collection) Currencies() []domain.Currency {
	seen := make(map[domain.Currency]bool)
	for _, r := range c.records {
		seen[r.Metadata().Currency] = true
	}

	currencies := make([]domain.Currency, 0, len(seen))
	for cur := range seen {
		currencies = append(currencies, cur)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })
	return currencies
}

// Summary aggregates the latest capped positions across a set of claims.
type Summary struct {
	ClaimCount        int
	OpenClaimCount    int
	TotalPaid         float64
	TotalIncurred     float64
	TotalPaidOpen     float64
	TotalIncurredOpen float64
}

// Summarize totals the latest capped paid/incurred amounts across the whole
// collection, with open-claim subtotals.
func (c *Collection) Summarize() Summary {
	var s Summary
	for _, r := range c.records {
		capped := r.CappedHistory()
		s.ClaimCount++
		s.TotalPaid += capped.LatestPaid()
		s.TotalIncurred += capped.LatestIncurred()
		if r.Metadata().Status == domain.StatusOpen {
			s.OpenClaimCount++
			s.TotalPaidOpen += capped.LatestPaid()
			s.TotalIncurredOpen += capped.LatestIncurred()
		}
	}
	return s
}

// SummarizeByYear groups the collection by modelling year and summarises each
// group. Records whose year cannot be resolved are reported by the error.
func (c *Collection) SummarizeByYear() (map[int]Summary, error) {
	out := make(map[int]Summary)
	for _, r := range c.records {
		year, err := r.ModellingYear()
		if err != nil {
			return nil, err
		}

		s := out[year]
		capped := r.CappedHistory()
		s.ClaimCount++
		s.TotalPaid += capped.LatestPaid()
		s.TotalIncurred += capped.LatestIncurred()
		if r.Metadata().Status == domain.StatusOpen {
			s.OpenClaimCount++
			s.TotalPaidOpen += capped.LatestPaid()
			s.TotalIncurredOpen += capped.LatestIncurred()
		}
		out[year] = s
	}
	return out, nil
}
