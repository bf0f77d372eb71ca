package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Configuration is the full set of inputs for a batch run
type Configuration struct {
	Households []HouseholdInput `yaml:"households" json:"households"`
	LoanPlans  []LoanPlan       `yaml:"loan_plans" json:"loan_plans"`
	Options    RunOptions       `yaml:"options,omitempty" json:"options,omitempty"`
}

// RunOptions tunes a batch run
type RunOptions struct {
	// MarginalRate overrides the bracket-derived marginal rate for every household
	MarginalRate *decimal.Decimal `yaml:"marginal_rate,omitempty" json:"marginal_rate,omitempty"`
	Concurrency  int              `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`
}

// HouseholdInput describes one taxpayer for SALT cap analysis
type HouseholdInput struct {
	Name         string          `yaml:"name" json:"name"`
	AGI          decimal.Decimal `yaml:"agi" json:"agi"`
	FilingStatus FilingStatus    `yaml:"filing_status" json:"filing_status"`
	State        StateName       `yaml:"state" json:"state"`
	PropertyTax  decimal.Decimal `yaml:"property_tax,omitempty" json:"property_tax,omitempty"`

	// Optional user-supplied figures replacing the estimates
	StateTaxOverride   *decimal.Decimal `yaml:"state_tax,omitempty" json:"state_tax,omitempty"`
	FederalTaxOverride *decimal.Decimal `yaml:"federal_tax,omitempty" json:"federal_tax,omitempty"`
	MarginalRate       *decimal.Decimal `yaml:"marginal_rate,omitempty" json:"marginal_rate,omitempty"`
}

// UnmarshalYAML decodes the optional override figures from plain strings so
// that quoted and unquoted numbers are both accepted
func (h *HouseholdInput) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Name               string          `yaml:"name"`
		AGI                decimal.Decimal `yaml:"agi"`
		FilingStatus       FilingStatus    `yaml:"filing_status"`
		State              StateName       `yaml:"state"`
		PropertyTax        decimal.Decimal `yaml:"property_tax,omitempty"`
		StateTaxOverride   *string         `yaml:"state_tax,omitempty"`
		FederalTaxOverride *string         `yaml:"federal_tax,omitempty"`
		MarginalRate       *string         `yaml:"marginal_rate,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	h.Name = aux.Name
	h.AGI = aux.AGI
	h.FilingStatus = aux.FilingStatus
	h.State = aux.State
	h.PropertyTax = aux.PropertyTax

	var err error
	if h.StateTaxOverride, err = optionalDecimal(aux.StateTaxOverride); err != nil {
		return fmt.Errorf("state_tax: %w", err)
	}
	if h.FederalTaxOverride, err = optionalDecimal(aux.FederalTaxOverride); err != nil {
		return fmt.Errorf("federal_tax: %w", err)
	}
	if h.MarginalRate, err = optionalDecimal(aux.MarginalRate); err != nil {
		return fmt.Errorf("marginal_rate: %w", err)
	}
	return nil
}

func optionalDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	val, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &val, nil
}

// HouseholdAnalysis is the SALT comparison for one household. Money figures are
// rounded to whole dollars.
type HouseholdAnalysis struct {
	Household    HouseholdInput        `yaml:"household" json:"household"`
	FederalTax   decimal.Decimal       `yaml:"federal_tax" json:"federal_tax"`
	StateTax     StateTaxResult        `yaml:"state_tax" json:"state_tax"`
	SaltBase     decimal.Decimal       `yaml:"salt_base" json:"salt_base"`
	MarginalRate decimal.Decimal       `yaml:"marginal_rate" json:"marginal_rate"`
	ProposedCap  decimal.Decimal       `yaml:"proposed_cap" json:"proposed_cap"`
	CapPhase     CapPhase              `yaml:"cap_phase" json:"cap_phase"`
	Scenarios    [3]SaltScenarioResult `yaml:"scenarios" json:"scenarios"`
}

// LoanPlan describes one program of study for loan cap analysis. When Preset is
// set, zero-valued StudentType, ProgramYears and AnnualCost are taken from it.
type LoanPlan struct {
	Name                 string          `yaml:"name" json:"name"`
	Preset               string          `yaml:"preset,omitempty" json:"preset,omitempty"`
	StudentType          StudentType     `yaml:"student_type,omitempty" json:"student_type,omitempty"`
	ProgramYears         int             `yaml:"program_years,omitempty" json:"program_years,omitempty"`
	AnnualCost           decimal.Decimal `yaml:"annual_cost,omitempty" json:"annual_cost,omitempty"`
	SchoolType           SchoolType      `yaml:"school_type,omitempty" json:"school_type,omitempty"`
	ExistingLoans        decimal.Decimal `yaml:"existing_loans,omitempty" json:"existing_loans,omitempty"`
	EnrollmentPercentage int             `yaml:"enrollment_percentage,omitempty" json:"enrollment_percentage,omitempty"`
	EnrollmentStart      *time.Time      `yaml:"enrollment_start,omitempty" json:"enrollment_start,omitempty"`
}

// LoanPlanAnalysis is the borrowing schedule for one resolved plan
type LoanPlanAnalysis struct {
	Plan       LoanPlan              `yaml:"plan" json:"plan"`
	LimitLabel string                `yaml:"limit_label" json:"limit_label"`
	Result     LoanCalculationResult `yaml:"result" json:"result"`
}

// Report is the output of a batch run, in input order
type Report struct {
	ID          string              `yaml:"id" json:"id"`
	GeneratedAt time.Time           `yaml:"generated_at" json:"generated_at"`
	Households  []HouseholdAnalysis `yaml:"households" json:"households"`
	LoanPlans   []LoanPlanAnalysis  `yaml:"loan_plans" json:"loan_plans"`
}
