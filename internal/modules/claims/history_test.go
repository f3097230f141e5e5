package claims

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/rely/internal/domain"
)

func TestNewDevelopmentHistory(t *testing.T) {
	tests := []struct {
		name     string
		ages     []int
		paid     []float64
		incurred []float64
		wantErr  bool
	}{
		{
			name:     "valid history",
			ages:     []int{0, 12, 24},
			paid:     []float64{1000, 2000, 3000},
			incurred: []float64{1500, 2500, 3500},
		},
		{
			name:     "single observation at age zero",
			ages:     []int{0},
			paid:     []float64{100},
			incurred: []float64{150},
		},
		{
			name:     "incurred may decrease",
			ages:     []int{0, 12},
			paid:     []float64{100, 200},
			incurred: []float64{500, 300},
		},
		{
			name:     "empty history",
			ages:     nil,
			paid:     nil,
			incurred: nil,
			wantErr:  true,
		},
		{
			name:     "length mismatch",
			ages:     []int{0, 12},
			paid:     []float64{100, 200},
			incurred: []float64{150},
			wantErr:  true,
		},
		{
			name:     "does not start at age zero",
			ages:     []int{12, 24},
			paid:     []float64{100, 200},
			incurred: []float64{150, 250},
			wantErr:  true,
		},
		{
			name:     "ages not strictly increasing",
			ages:     []int{0, 12, 12},
			paid:     []float64{100, 200, 300},
			incurred: []float64{150, 250, 350},
			wantErr:  true,
		},
		{
			name:     "paid decreases",
			ages:     []int{0, 12},
			paid:     []float64{200, 100},
			incurred: []float64{250, 250},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDevelopmentHistory(tt.ages, tt.paid, tt.incurred)
			if tt.wantErr {
				var malformed domain.MalformedHistoryError
				require.Error(t, err)
				assert.ErrorAs(t, err, &malformed)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDevelopmentHistoryLatestValues(t *testing.T) {
	h, err := NewDevelopmentHistory(
		[]int{0, 12, 24},
		[]float64{1000, 2000, 3000},
		[]float64{1500, 2500, 3500},
	)
	require.NoError(t, err)

	assert.Equal(t, 24, h.LatestAge())
	assert.Equal(t, 3000.0, h.LatestPaid())
	assert.Equal(t, 3500.0, h.LatestIncurred())
	assert.Equal(t, 500.0, h.LatestReserved())
}

func TestDevelopmentHistoryIncremental(t *testing.T) {
	h, err := NewDevelopmentHistory(
		[]int{0, 12, 24},
		[]float64{1000, 2000, 3000},
		[]float64{1500, 2500, 3500},
	)
	require.NoError(t, err)

	assert.Equal(t, []float64{1000, 1000, 1000}, h.IncrementalPaid())
	assert.Equal(t, []float64{1500, 1000, 1000}, h.IncrementalIncurred())
}

func TestDevelopmentHistoryValueAt(t *testing.T) {
	h, err := NewDevelopmentHistory(
		[]int{0, 12, 24},
		[]float64{1000, 2000, 3000},
		[]float64{1500, 2500, 3500},
	)
	require.NoError(t, err)

	tests := []struct {
		name      string
		valueType domain.ValueType
		age       int
		want      float64
		wantOK    bool
	}{
		{"paid at exact age", domain.ValuePaid, 12, 2000, true},
		{"incurred at exact age", domain.ValueIncurred, 24, 3500, true},
		{"steps to prior observation", domain.ValuePaid, 18, 2000, true},
		{"beyond latest stays at latest", domain.ValueIncurred, 48, 3500, true},
		{"before first observation", domain.ValuePaid, -1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := h.ValueAt(tt.valueType, tt.age)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDevelopmentHistoryMeanPaymentDuration(t *testing.T) {
	h, err := NewDevelopmentHistory(
		[]int{0, 12, 24},
		[]float64{0, 1000, 2000},
		[]float64{1500, 2500, 3500},
	)
	require.NoError(t, err)

	// Increments of 1000 at ages 12 and 24.
	assert.InDelta(t, 18.0, h.MeanPaymentDuration(), 1e-9)

	unpaid, err := NewDevelopmentHistory([]int{0}, []float64{0}, []float64{100})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(unpaid.MeanPaymentDuration()))
}

func TestDevelopmentHistoryWithObservation(t *testing.T) {
	h, err := NewDevelopmentHistory([]int{0, 12}, []float64{100, 200}, []float64{150, 250})
	require.NoError(t, err)

	extended, err := h.WithObservation(24, 300, 320)
	require.NoError(t, err)

	// The receiver is unchanged; the result carries the new observation.
	assert.Equal(t, 12, h.LatestAge())
	assert.Equal(t, 24, extended.LatestAge())
	assert.Equal(t, 300.0, extended.LatestPaid())

	// An observation older than the latest is rejected.
	_, err = h.WithObservation(6, 250, 260)
	assert.Error(t, err)
}

func TestDevelopmentHistoryImmutableAccessors(t *testing.T) {
	h, err := NewDevelopmentHistory([]int{0, 12}, []float64{100, 200}, []float64{150, 250})
	require.NoError(t, err)

	ages := h.Ages()
	ages[0] = 99
	assert.Equal(t, []int{0, 12}, h.Ages())

	paid := h.CumulativePaid()
	paid[0] = 99
	assert.Equal(t, []float64{100, 200}, h.CumulativePaid())
}
