package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/saltcap/policy-calculator/internal/calculation"
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidInput marks configuration that parsed but failed validation
var ErrInvalidInput = errors.New("invalid input")

// MaxProgramYears bounds the length of a loan plan
const MaxProgramYears = 10

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ValidateConfiguration validates the configuration and normalizes state names
// to their full form
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Households) == 0 && len(config.LoanPlans) == 0 {
		return invalid("no households or loan plans provided")
	}

	for i := range config.Households {
		if err := ip.validateHousehold(&config.Households[i]); err != nil {
			return fmt.Errorf("household %d (%s) validation failed: %w", i, config.Households[i].Name, err)
		}
	}

	for i := range config.LoanPlans {
		if err := ip.validateLoanPlan(&config.LoanPlans[i]); err != nil {
			return fmt.Errorf("loan plan %d (%s) validation failed: %w", i, config.LoanPlans[i].Name, err)
		}
	}

	if err := ip.validateOptions(&config.Options); err != nil {
		return fmt.Errorf("options validation failed: %w", err)
	}

	return nil
}

func validateRate(name string, rate *decimal.Decimal) error {
	if rate == nil {
		return nil
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return invalid("%s must be between 0 and 1, got %s", name, rate)
	}
	return nil
}

func validateNonNegative(name string, amount *decimal.Decimal) error {
	if amount != nil && amount.IsNegative() {
		return invalid("%s cannot be negative", name)
	}
	return nil
}

// validateHousehold validates a single household
func (ip *InputParser) validateHousehold(h *domain.HouseholdInput) error {
	if h.AGI.IsNegative() {
		return invalid("agi cannot be negative")
	}
	if h.FilingStatus == "" {
		return invalid("filing status is required")
	}
	if !h.FilingStatus.Valid() {
		return invalid("unknown filing status %q", h.FilingStatus)
	}

	profile, ok := calculation.LookupState(string(h.State))
	if !ok {
		return invalid("unknown state %q", h.State)
	}
	h.State = profile.Name

	if err := validateNonNegative("property tax", &h.PropertyTax); err != nil {
		return err
	}
	if err := validateNonNegative("state tax", h.StateTaxOverride); err != nil {
		return err
	}
	if err := validateNonNegative("federal tax", h.FederalTaxOverride); err != nil {
		return err
	}
	return validateRate("marginal rate", h.MarginalRate)
}

// validateLoanPlan validates a loan plan as it will look after preset resolution
func (ip *InputParser) validateLoanPlan(plan *domain.LoanPlan) error {
	if plan.Preset != "" {
		if _, ok := calculation.PresetByID(plan.Preset); !ok {
			return invalid("unknown program preset %q", plan.Preset)
		}
	}
	if plan.StudentType != "" && !plan.StudentType.Valid() {
		return invalid("unknown student type %q", plan.StudentType)
	}
	if _, ok := calculation.SchoolTypeMultiplier(plan.SchoolType); !ok {
		return invalid("unknown school type %q", plan.SchoolType)
	}

	resolved := calculation.ResolveLoanPlan(*plan)
	if resolved.ProgramYears < 1 || resolved.ProgramYears > MaxProgramYears {
		return invalid("program years must be between 1 and %d, got %d", MaxProgramYears, resolved.ProgramYears)
	}
	if resolved.AnnualCost.IsNegative() {
		return invalid("annual cost cannot be negative")
	}
	if plan.ExistingLoans.IsNegative() {
		return invalid("existing loans cannot be negative")
	}
	if !calculation.ValidEnrollment(resolved.EnrollmentPercentage) {
		return invalid("enrollment percentage must be 50, 75 or 100, got %d", resolved.EnrollmentPercentage)
	}
	return nil
}

func (ip *InputParser) validateOptions(opts *domain.RunOptions) error {
	if opts.Concurrency < 0 {
		return invalid("concurrency cannot be negative")
	}
	return validateRate("marginal rate", opts.MarginalRate)
}

// CreateExampleConfiguration creates an example configuration covering each
// cap phase and a few loan plans
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	fallStart := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	continuing := time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)

	return &domain.Configuration{
		Households: []domain.HouseholdInput{
			{
				Name:         "Two educators in Illinois",
				AGI:          decimal.NewFromInt(160000),
				FilingStatus: domain.FilingMarriedJointly,
				State:        "Illinois",
				PropertyTax:  decimal.NewFromInt(7500),
			},
			{
				Name:         "Dual income in New Jersey",
				AGI:          decimal.NewFromInt(420000),
				FilingStatus: domain.FilingMarriedJointly,
				State:        "New Jersey",
				PropertyTax:  decimal.NewFromInt(14000),
			},
			{
				Name:         "Engineer in California",
				AGI:          decimal.NewFromInt(560000),
				FilingStatus: domain.FilingSingle,
				State:        "California",
				PropertyTax:  decimal.NewFromInt(11000),
			},
			{
				Name:         "Executive in New York",
				AGI:          decimal.NewFromInt(900000),
				FilingStatus: domain.FilingMarriedJointly,
				State:        "New York",
				PropertyTax:  decimal.NewFromInt(22000),
			},
			{
				Name:         "Retiree in Texas",
				AGI:          decimal.NewFromInt(120000),
				FilingStatus: domain.FilingSingle,
				State:        "Texas",
				PropertyTax:  decimal.NewFromInt(6000),
			},
		},
		LoanPlans: []domain.LoanPlan{
			{
				Name:            "Medical school, private",
				Preset:          "medical",
				SchoolType:      domain.SchoolPrivate,
				EnrollmentStart: &fallStart,
			},
			{
				Name:            "Law school, out of state",
				Preset:          "law",
				SchoolType:      domain.SchoolPublicOutOfState,
				EnrollmentStart: &continuing,
			},
			{
				Name:                 "Part-time masters",
				Preset:               "masters",
				EnrollmentPercentage: domain.EnrollmentHalfTime,
			},
			{
				Name:         "Long graduate program",
				StudentType:  domain.StudentGraduate,
				ProgramYears: 6,
				AnnualCost:   decimal.NewFromInt(20000),
			},
		},
	}
}
