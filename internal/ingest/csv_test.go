package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/rely/internal/domain"
)

const sampleCSV = `claim_id,policy_id,currency,loss_date,report_date,policy_inception_date,line_of_business,status,contract_limit,contract_deductible,in_excess_of_deductible,development_age,cumulative_paid,cumulative_incurred
C1,P1,USD,2020-03-01,2020-04-01,2019-12-01,Motor,Open,2000,500,false,0,1000,1500
C1,P1,USD,2020-03-01,2020-04-01,2019-12-01,Motor,Open,2000,500,false,12,1800,2200
C2,P2,EUR,2021-06-15,2021-07-01,,Property,Closed,,,,0,300,350
`

func TestFromCSVGroupsRowsIntoRecords(t *testing.T) {
	collection, err := FromCSV(strings.NewReader(sampleCSV), domain.YearBasisAccident)
	require.NoError(t, err)
	require.Equal(t, 2, collection.Len())

	first := collection.At(0)
	assert.Equal(t, "C1", first.Metadata().ClaimID)
	assert.Equal(t, "P1", first.Metadata().PolicyID)
	assert.Equal(t, domain.CurrencyUSD, first.Metadata().Currency)
	assert.Equal(t, "Motor", first.Metadata().LineOfBusiness)
	assert.Equal(t, domain.StatusOpen, first.Metadata().Status)
	assert.Equal(t, 2000.0, first.Metadata().ContractLimit)
	assert.Equal(t, 500.0, first.Metadata().ContractDeductible)
	assert.False(t, first.Metadata().InExcessOfDeductible)
	assert.Equal(t, domain.YearBasisAccident, first.Metadata().YearBasis)
	assert.Equal(t, time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC), first.Metadata().LossDate)

	history := first.History()
	assert.Equal(t, []int{0, 12}, history.Ages())
	assert.Equal(t, []float64{1000, 1800}, history.CumulativePaid())
	assert.Equal(t, []float64{1500, 2200}, history.CumulativeIncurred())

	second := collection.At(1)
	assert.Equal(t, "C2", second.Metadata().ClaimID)
	assert.Equal(t, domain.StatusClosed, second.Metadata().Status)
	assert.True(t, second.Metadata().PolicyInceptionDate.IsZero())
	assert.Equal(t, 1, second.History().Len())
}

func TestFromCSVSortsObservationsByAge(t *testing.T) {
	input := `claim_id,currency,loss_date,development_age,cumulative_paid,cumulative_incurred
C1,USD,2020-03-01,12,1800,2200
C1,USD,2020-03-01,0,1000,1500
`
	collection, err := FromCSV(strings.NewReader(input), domain.YearBasisAccident)
	require.NoError(t, err)
	require.Equal(t, 1, collection.Len())

	assert.Equal(t, []int{0, 12}, collection.At(0).History().Ages())
}

func TestFromCSVBlankClaimIDGetsGeneratedID(t *testing.T) {
	input := `claim_id,currency,loss_date,development_age,cumulative_paid,cumulative_incurred
,USD,2020-03-01,0,100,150
,USD,2020-03-01,0,200,250
`
	collection, err := FromCSV(strings.NewReader(input), domain.YearBasisAccident)
	require.NoError(t, err)

	// Each blank-ID row becomes its own single-observation record.
	require.Equal(t, 2, collection.Len())
	assert.NotEmpty(t, collection.At(0).Metadata().ClaimID)
	assert.NotEqual(t, collection.At(0).Metadata().ClaimID, collection.At(1).Metadata().ClaimID)
}

func TestFromCSVMissingRequiredColumn(t *testing.T) {
	input := `claim_id,currency,loss_date,cumulative_paid,cumulative_incurred
C1,USD,2020-03-01,100,150
`
	_, err := FromCSV(strings.NewReader(input), domain.YearBasisAccident)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "development_age")
}

func TestFromCSVMalformedHistory(t *testing.T) {
	// Paid decreases from age 0 to age 12.
	input := `claim_id,currency,loss_date,development_age,cumulative_paid,cumulative_incurred
C1,USD,2020-03-01,0,1000,1500
C1,USD,2020-03-01,12,900,1600
`
	_, err := FromCSV(strings.NewReader(input), domain.YearBasisAccident)
	var malformed domain.MalformedHistoryError
	require.Error(t, err)
	assert.ErrorAs(t, err, &malformed)
}

func TestFromCSVBadFieldValues(t *testing.T) {
	tests := []struct {
		name string
		rows string
		want string
	}{
		{
			"bad age",
			"C1,USD,2020-03-01,twelve,100,150\n",
			"development_age",
		},
		{
			"bad paid",
			"C1,USD,2020-03-01,0,lots,150\n",
			"cumulative_paid",
		},
		{
			"bad loss date",
			"C1,USD,01/03/2020,0,100,150\n",
			"loss_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "claim_id,currency,loss_date,development_age,cumulative_paid,cumulative_incurred\n" + tt.rows
			_, err := FromCSV(strings.NewReader(input), domain.YearBasisAccident)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile("does-not-exist.csv", domain.YearBasisAccident)
	assert.Error(t, err)
}
