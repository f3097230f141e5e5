package claims

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/rely/internal/domain"
)

func makeRecord(t *testing.T, id string, currency domain.Currency, lossYear int, status domain.ClaimStatus, paid, incurred []float64, ages []int) Record {
	t.Helper()

	history, err := NewDevelopmentHistory(ages, paid, incurred)
	require.NoError(t, err)

	record, err := NewRecord(Metadata{
		ClaimID:   id,
		Currency:  currency,
		LossDate:  time.Date(lossYear, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:    status,
		YearBasis: domain.YearBasisAccident,
	}, history)
	require.NoError(t, err)
	return record
}

func TestCollectionOrderAndAppend(t *testing.T) {
	r1 := makeRecord(t, "1", domain.CurrencyUSD, 2020, domain.StatusOpen, []float64{500, 900}, []float64{700, 1100}, []int{0, 12})
	r2 := makeRecord(t, "2", domain.CurrencyEUR, 2021, domain.StatusClosed, []float64{1000, 1500}, []float64{1200, 1700}, []int{0, 12})

	c := NewCollection(r1)
	c2 := c.Append(r2)

	// Append is copy-on-write: the original snapshot is unchanged.
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c2.Len())
	assert.Equal(t, "1", c2.At(0).Metadata().ClaimID)
	assert.Equal(t, "2", c2.At(1).Metadata().ClaimID)
}

func TestCollectionModellingYears(t *testing.T) {
	c := NewCollection(
		makeRecord(t, "1", domain.CurrencyUSD, 2021, domain.StatusOpen, []float64{100}, []float64{150}, []int{0}),
		makeRecord(t, "2", domain.CurrencyUSD, 2020, domain.StatusOpen, []float64{100}, []float64{150}, []int{0}),
		makeRecord(t, "3", domain.CurrencyUSD, 2021, domain.StatusOpen, []float64{100}, []float64{150}, []int{0}),
	)

	assert.Equal(t, []int{2020, 2021}, c.ModellingYears())
}

func TestCollectionCurrencies(t *testing.T) {
	c := NewCollection(
		makeRecord(t, "1", domain.CurrencyUSD, 2020, domain.StatusOpen, []float64{100}, []float64{150}, []int{0}),
		makeRecord(t, "2", domain.CurrencyEUR, 2021, domain.StatusOpen, []float64{100}, []float64{150}, []int{0}),
		makeRecord(t, "3", domain.CurrencyEUR, 2021, domain.StatusOpen, []float64{100}, []float64{150}, []int{0}),
	)

	assert.Equal(t, []domain.Currency{domain.CurrencyEUR, domain.CurrencyUSD}, c.Currencies())
}

func TestCollectionSummarize(t *testing.T) {
	c := NewCollection(
		makeRecord(t, "1", domain.CurrencyUSD, 2020, domain.StatusOpen, []float64{500, 900}, []float64{700, 1100}, []int{0, 12}),
		makeRecord(t, "2", domain.CurrencyUSD, 2020, domain.StatusClosed, []float64{1000, 1500}, []float64{1200, 1700}, []int{0, 12}),
	)

	s := c.Summarize()
	assert.Equal(t, 2, s.ClaimCount)
	assert.Equal(t, 1, s.OpenClaimCount)
	assert.Equal(t, 2400.0, s.TotalPaid)
	assert.Equal(t, 2800.0, s.TotalIncurred)
	assert.Equal(t, 900.0, s.TotalPaidOpen)
	assert.Equal(t, 1100.0, s.TotalIncurredOpen)
}

func TestCollectionSummarizeByYear(t *testing.T) {
	c := NewCollection(
		makeRecord(t, "1", domain.CurrencyUSD, 2020, domain.StatusOpen, []float64{500}, []float64{700}, []int{0}),
		makeRecord(t, "2", domain.CurrencyUSD, 2021, domain.StatusOpen, []float64{1000}, []float64{1200}, []int{0}),
	)

	byYear, err := c.SummarizeByYear()
	require.NoError(t, err)
	require.Len(t, byYear, 2)
	assert.Equal(t, 500.0, byYear[2020].TotalPaid)
	assert.Equal(t, 1200.0, byYear[2021].TotalIncurred)
}

func TestEmptyCollection(t *testing.T) {
	c := NewCollection()

	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.ModellingYears())
	assert.Empty(t, c.Currencies())
	assert.Equal(t, Summary{}, c.Summarize())
}
