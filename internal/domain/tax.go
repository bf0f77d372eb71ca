package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FilingStatus is a federal income tax filing status
type FilingStatus string

const (
	FilingSingle            FilingStatus = "single"
	FilingMarriedJointly    FilingStatus = "marriedJointly"
	FilingMarriedSeparately FilingStatus = "marriedSeparately"
	FilingHeadOfHousehold   FilingStatus = "headOfHousehold"
)

// FilingStatuses lists every status in display order
var FilingStatuses = []FilingStatus{
	FilingSingle,
	FilingMarriedJointly,
	FilingMarriedSeparately,
	FilingHeadOfHousehold,
}

// Valid reports whether fs is one of the known statuses
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingSingle, FilingMarriedJointly, FilingMarriedSeparately, FilingHeadOfHousehold:
		return true
	}
	return false
}

// Label returns the human readable name of the status
func (fs FilingStatus) Label() string {
	switch fs {
	case FilingSingle:
		return "Single"
	case FilingMarriedJointly:
		return "Married Filing Jointly"
	case FilingMarriedSeparately:
		return "Married Filing Separately"
	case FilingHeadOfHousehold:
		return "Head of Household"
	}
	return string(fs)
}

var filingStatusAliases = map[string]FilingStatus{
	"single":                    FilingSingle,
	"s":                         FilingSingle,
	"marriedjointly":            FilingMarriedJointly,
	"married_jointly":           FilingMarriedJointly,
	"married-jointly":           FilingMarriedJointly,
	"married_filing_jointly":    FilingMarriedJointly,
	"mfj":                       FilingMarriedJointly,
	"marriedseparately":         FilingMarriedSeparately,
	"married_separately":        FilingMarriedSeparately,
	"married-separately":        FilingMarriedSeparately,
	"married_filing_separately": FilingMarriedSeparately,
	"mfs":                       FilingMarriedSeparately,
	"headofhousehold":           FilingHeadOfHousehold,
	"head_of_household":         FilingHeadOfHousehold,
	"head-of-household":         FilingHeadOfHousehold,
	"hoh":                       FilingHeadOfHousehold,
}

// ParseFilingStatus resolves a status from its canonical value or a common alias
func ParseFilingStatus(s string) (FilingStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if fs, ok := filingStatusAliases[key]; ok {
		return fs, nil
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

// UnmarshalYAML accepts any spelling understood by ParseFilingStatus
func (fs *FilingStatus) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseFilingStatus(s)
	if err != nil {
		return err
	}
	*fs = parsed
	return nil
}

// TaxBracket is one band of a progressive rate schedule. The last bracket of a
// schedule is Unbounded and its Max is ignored.
type TaxBracket struct {
	Min       decimal.Decimal `yaml:"min" json:"min"`
	Max       decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Unbounded bool            `yaml:"unbounded,omitempty" json:"unbounded,omitempty"`
}

// Contains reports whether income falls in (Min, Max]
func (b TaxBracket) Contains(income decimal.Decimal) bool {
	if income.LessThanOrEqual(b.Min) {
		return false
	}
	return b.Unbounded || income.LessThanOrEqual(b.Max)
}

// StateName is the full name of a US state, e.g. "New York"
type StateName string

// StateTaxProfile describes how income tax is estimated for one state.
// Brackets is nil for states that only have a flat approximation; when set it
// holds single and marriedJointly schedules only.
type StateTaxProfile struct {
	Name         StateName                     `yaml:"name" json:"name"`
	Code         string                        `yaml:"code" json:"code"`
	FlatRate     decimal.Decimal               `yaml:"flat_rate" json:"flat_rate"`
	HasIncomeTax bool                          `yaml:"has_income_tax" json:"has_income_tax"`
	Brackets     map[FilingStatus][]TaxBracket `yaml:"brackets,omitempty" json:"brackets,omitempty"`
}

// HasBrackets reports whether a progressive schedule is available
func (p StateTaxProfile) HasBrackets() bool {
	return len(p.Brackets[FilingSingle]) > 0
}

// TaxBasis tells how a state tax figure was derived
type TaxBasis string

const (
	TaxBasisNone     TaxBasis = "none"
	TaxBasisExact    TaxBasis = "exact"
	TaxBasisEstimate TaxBasis = "estimate"
)

// StateTaxResult is a state income tax amount and whether it is only an estimate
type StateTaxResult struct {
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
	IsEstimate bool            `yaml:"is_estimate" json:"is_estimate"`
}

// Basis returns the derivation of the result
func (r StateTaxResult) Basis() TaxBasis {
	switch {
	case r.IsEstimate:
		return TaxBasisEstimate
	case r.Amount.IsZero():
		return TaxBasisNone
	default:
		return TaxBasisExact
	}
}

// SaltScenarioKind identifies one of the compared deduction caps
type SaltScenarioKind string

const (
	SaltScenarioCurrent  SaltScenarioKind = "current"
	SaltScenarioProposed SaltScenarioKind = "proposed"
	SaltScenarioNoCap    SaltScenarioKind = "noCap"
)

// CapPhase describes where an effective proposed cap sits on the phase-down
type CapPhase string

const (
	CapPhaseUnphased  CapPhase = "unphased"
	CapPhasePartial   CapPhase = "partial"
	CapPhasePhasedOut CapPhase = "phasedOut"
)

// SaltScenarioResult is the tax outcome under one SALT cap. Figures are rounded
// to whole dollars.
type SaltScenarioResult struct {
	Kind          SaltScenarioKind `yaml:"kind" json:"kind"`
	Scenario      string           `yaml:"scenario" json:"scenario"`
	TotalTax      decimal.Decimal  `yaml:"total_tax" json:"total_tax"`
	SaltDeduction decimal.Decimal  `yaml:"salt_deduction" json:"salt_deduction"`
	TaxSavings    decimal.Decimal  `yaml:"tax_savings" json:"tax_savings"`
}
