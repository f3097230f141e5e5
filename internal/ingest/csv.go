// Package ingest loads claim records from CSV files into a collection. This
// is a host-side concern: the engine itself only requires the development
// history contract, not any particular source format.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aristath/rely/internal/domain"
	"github.com/aristath/rely/internal/modules/claims"
)

// Expected columns. One row per observation; rows sharing a claim_id are
// grouped into one record. A blank claim_id gets a generated UUID and forms
// a single-observation record.
const (
	colClaimID            = "claim_id"
	colPolicyID           = "policy_id"
	colCurrency           = "currency"
	colLossDate           = "loss_date"
	colReportDate         = "report_date"
	colPolicyInception    = "policy_inception_date"
	colLineOfBusiness     = "line_of_business"
	colStatus             = "status"
	colContractLimit      = "contract_limit"
	colContractDeductible = "contract_deductible"
	colInExcess           = "in_excess_of_deductible"
	colDevelopmentAge     = "development_age"
	colCumulativePaid     = "cumulative_paid"
	colCumulativeIncurred = "cumulative_incurred"
)

const dateLayout = "2006-01-02"

type observation struct {
	age      int
	paid     float64
	incurred float64
}

type pending struct {
	meta         claims.Metadata
	observations []observation
}

// FromFile reads a claims CSV from disk.
func FromFile(path string, basis domain.YearBasis) (*claims.Collection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims file: %w", err)
	}
	defer f.Close()

	collection, err := FromCSV(f, basis)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return collection, nil
}

// FromCSV parses claim observations from r and groups them into records.
// The year basis is stamped onto every record's metadata.
func FromCSV(r io.Reader, basis domain.YearBasis) (*claims.Collection, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colClaimID, colCurrency, colLossDate, colDevelopmentAge, colCumulativePaid, colCumulativeIncurred} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	byID := make(map[string]*pending)
	var order []string

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		get := func(col string) string {
			idx, ok := columns[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		claimID := get(colClaimID)
		if claimID == "" {
			claimID = uuid.NewString()
		}

		age, err := strconv.Atoi(get(colDevelopmentAge))
		if err != nil {
			return nil, fmt.Errorf("line %d: development_age: %w", line, err)
		}
		paid, err := strconv.ParseFloat(get(colCumulativePaid), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: cumulative_paid: %w", line, err)
		}
		incurred, err := strconv.ParseFloat(get(colCumulativeIncurred), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: cumulative_incurred: %w", line, err)
		}

		p, ok := byID[claimID]
		if !ok {
			meta, err := parseMetadata(claimID, basis, get)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			p = &pending{meta: meta}
			byID[claimID] = p
			order = append(order, claimID)
		}

		p.observations = append(p.observations, observation{age: age, paid: paid, incurred: incurred})
	}

	collection := claims.NewCollection()
	for _, id := range order {
		p := byID[id]
		sort.Slice(p.observations, func(i, j int) bool { return p.observations[i].age < p.observations[j].age })

		ages := make([]int, len(p.observations))
		paid := make([]float64, len(p.observations))
		incurred := make([]float64, len(p.observations))
		for i, obs := range p.observations {
			ages[i] = obs.age
			paid[i] = obs.paid
			incurred[i] = obs.incurred
		}

		history, err := claims.NewDevelopmentHistory(ages, paid, incurred)
		if err != nil {
			return nil, fmt.Errorf("claim %s: %w", id, err)
		}
		record, err := claims.NewRecord(p.meta, history)
		if err != nil {
			return nil, err
		}
		collection = collection.Append(record)
	}

	return collection, nil
}

func parseMetadata(claimID string, basis domain.YearBasis, get func(string) string) (claims.Metadata, error) {
	meta := claims.Metadata{
		ClaimID:        claimID,
		PolicyID:       get(colPolicyID),
		Currency:       domain.Currency(get(colCurrency)),
		LineOfBusiness: get(colLineOfBusiness),
		YearBasis:      basis,
	}

	if status := get(colStatus); status != "" {
		meta.Status = domain.ClaimStatus(status)
	} else {
		meta.Status = domain.StatusOpen
	}

	var err error
	if meta.LossDate, err = parseDate(get(colLossDate)); err != nil {
		return claims.Metadata{}, fmt.Errorf("loss_date: %w", err)
	}
	if meta.ReportDate, err = parseDate(get(colReportDate)); err != nil {
		return claims.Metadata{}, fmt.Errorf("report_date: %w", err)
	}
	if meta.PolicyInceptionDate, err = parseDate(get(colPolicyInception)); err != nil {
		return claims.Metadata{}, fmt.Errorf("policy_inception_date: %w", err)
	}

	if s := get(colContractLimit); s != "" {
		if meta.ContractLimit, err = strconv.ParseFloat(s, 64); err != nil {
			return claims.Metadata{}, fmt.Errorf("contract_limit: %w", err)
		}
	}
	if s := get(colContractDeductible); s != "" {
		if meta.ContractDeductible, err = strconv.ParseFloat(s, 64); err != nil {
			return claims.Metadata{}, fmt.Errorf("contract_deductible: %w", err)
		}
	}
	if s := get(colInExcess); s != "" {
		if meta.InExcessOfDeductible, err = strconv.ParseBool(s); err != nil {
			return claims.Metadata{}, fmt.Errorf("in_excess_of_deductible: %w", err)
		}
	}

	return meta, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}
