package claims

import (
	"fmt"
	"time"

	"github.com/aristath/rely/internal/domain"
)

// Metadata holds the identity and contract context of a claim. Contract
// limit and deductible are optional; zero means "not set".
type Metadata struct {
	ClaimID             string
	PolicyID            string
	Currency            domain.Currency
	LossDate            time.Time
	ReportDate          time.Time
	PolicyInceptionDate time.Time
	LineOfBusiness      string
	Status              domain.ClaimStatus
	ContractLimit       float64
	ContractDeductible  float64
	// InExcessOfDeductible marks claim amounts already reported net of the
	// deductible, so it is not subtracted again.
	InExcessOfDeductible bool
	YearBasis            domain.YearBasis
}

// ModellingYear derives the origin year under the metadata's year basis.
func (m Metadata) ModellingYear() (int, error) {
	switch m.YearBasis {
	case domain.YearBasisAccident, "":
		if m.LossDate.IsZero() {
			return 0, fmt.Errorf("claim %s: loss date required for accident-year basis", m.ClaimID)
		}
		return m.LossDate.Year(), nil
	case domain.YearBasisUnderwriting:
		if m.PolicyInceptionDate.IsZero() {
			return 0, fmt.Errorf("claim %s: policy inception date required for underwriting-year basis", m.ClaimID)
		}
		return m.PolicyInceptionDate.Year(), nil
	case domain.YearBasisReport:
		if m.ReportDate.IsZero() {
			return 0, fmt.Errorf("claim %s: report date required for report-year basis", m.ClaimID)
		}
		return m.ReportDate.Year(), nil
	}
	return 0, domain.ConfigurationError{Field: "year_basis", Value: string(m.YearBasis)}
}

// Record is an immutable claim: metadata plus exactly one development
// history, owned exclusively by the record.
type Record struct {
	meta    Metadata
	history DevelopmentHistory
}

// NewRecord pairs metadata with a validated development history.
func NewRecord(meta Metadata, history DevelopmentHistory) (Record, error) {
	if history.Len() == 0 {
		return Record{}, domain.MalformedHistoryError{
			ClaimID: meta.ClaimID,
			Message: "record requires a non-empty development history",
		}
	}
	return Record{meta: meta, history: history}, nil
}

// Metadata returns the claim metadata.
func (r Record) Metadata() Metadata { return r.meta }

// History returns the development history exactly as reported.
func (r Record) History() DevelopmentHistory { return r.history }

// UncappedHistory returns the history net of the contract deductible (unless
// the claim is reported in excess of it) with no limit applied.
func (r Record) UncappedHistory() DevelopmentHistory {
	return r.history.netted(r.effectiveDeductible(), 0)
}

// CappedHistory returns the history net of the deductible and capped at the
// contract limit. This is the view triangles are aggregated from.
func (r Record) CappedHistory() DevelopmentHistory {
	return r.history.netted(r.effectiveDeductible(), r.meta.ContractLimit)
}

// ModellingYear derives the record's origin year under its year basis.
func (r Record) ModellingYear() (int, error) {
	return r.meta.ModellingYear()
}

func (r Record) effectiveDeductible() float64 {
	if r.meta.InExcessOfDeductible {
		return 0
	}
	return r.meta.ContractDeductible
}

// String summarises the claim for diagnostics.
func (r Record) String() string {
	year, err := r.ModellingYear()
	if err != nil {
		return fmt.Sprintf("Claim(claim_id=%s, modelling_year=?, latest_incurred=%.2f)", r.meta.ClaimID, r.history.LatestIncurred())
	}
	return fmt.Sprintf("Claim(claim_id=%s, modelling_year=%d, latest_incurred=%.2f, latest_capped_incurred=%.2f)",
		r.meta.ClaimID, year, r.history.LatestIncurred(), r.CappedHistory().LatestIncurred())
}
