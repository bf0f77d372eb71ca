package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleConfig = `
households:
  - name: Suburban couple
    agi: 450000
    filing_status: mfj
    state: nj
    property_tax: 16000
  - name: Separate filer
    agi: 300000
    filing_status: married_filing_separately
    state: Oregon
    state_tax: "27000"
loan_plans:
  - name: Dental school
    preset: dental
    school_type: private
    enrollment_start: 2026-08-20
  - name: Custom masters
    student_type: graduate
    program_years: 2
    annual_cost: 26000
    existing_loans: 30000
    enrollment_percentage: 75
options:
  marginal_rate: 0.32
  concurrency: 2
`

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	config, err := NewInputParser().LoadFromFile(path)
	require.NoError(t, err)

	require.Len(t, config.Households, 2)
	first := config.Households[0]
	assert.Equal(t, domain.FilingMarriedJointly, first.FilingStatus)
	assert.Equal(t, domain.StateName("New Jersey"), first.State, "state codes are normalized to names")
	assert.True(t, first.PropertyTax.Equal(decimal.NewFromInt(16000)))

	second := config.Households[1]
	assert.Equal(t, domain.FilingMarriedSeparately, second.FilingStatus)
	require.NotNil(t, second.StateTaxOverride)
	assert.True(t, second.StateTaxOverride.Equal(decimal.NewFromInt(27000)))

	require.Len(t, config.LoanPlans, 2)
	assert.Equal(t, "dental", config.LoanPlans[0].Preset)
	assert.Equal(t, domain.SchoolPrivate, config.LoanPlans[0].SchoolType)
	require.NotNil(t, config.LoanPlans[0].EnrollmentStart)
	assert.Equal(t, 2026, config.LoanPlans[0].EnrollmentStart.Year())
	assert.Equal(t, 75, config.LoanPlans[1].EnrollmentPercentage)

	require.NotNil(t, config.Options.MarginalRate)
	assert.True(t, config.Options.MarginalRate.Equal(decimal.NewFromFloat(0.32)))
	assert.Equal(t, 2, config.Options.Concurrency)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	config, err := NewInputParser().LoadFromFile("nonexistent_file.yaml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("households: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestParse_StudentTypeCasing(t *testing.T) {
	cfg, err := NewInputParser().Parse([]byte("loan_plans:\n  - name: MD\n    student_type: Professional\n    program_years: 4\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.StudentProfessional, cfg.LoanPlans[0].StudentType)

	_, err = NewInputParser().Parse([]byte("loan_plans:\n  - student_type: undergraduate\n    program_years: 4\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown student type")
}

func TestParse_UnknownFilingStatus(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("households:\n  - agi: 1\n    filing_status: widowed\n    state: Texas\n"))
	assert.Error(t, err)
}

func TestValidateConfiguration(t *testing.T) {
	validHousehold := func() domain.HouseholdInput {
		return domain.HouseholdInput{
			Name:         "h",
			AGI:          decimal.NewFromInt(200000),
			FilingStatus: domain.FilingSingle,
			State:        "Texas",
		}
	}
	negative := decimal.NewFromInt(-1)
	tooHigh := decimal.NewFromFloat(1.5)

	tests := []struct {
		name    string
		modify  func(*domain.Configuration)
		wantErr string
	}{
		{"valid", func(*domain.Configuration) {}, ""},
		{"empty", func(c *domain.Configuration) { c.Households = nil }, "no households or loan plans"},
		{"negative agi", func(c *domain.Configuration) { c.Households[0].AGI = negative }, "agi cannot be negative"},
		{"missing status", func(c *domain.Configuration) { c.Households[0].FilingStatus = "" }, "filing status is required"},
		{"unknown status", func(c *domain.Configuration) { c.Households[0].FilingStatus = "widowed" }, "unknown filing status"},
		{"unknown state", func(c *domain.Configuration) { c.Households[0].State = "Atlantis" }, "unknown state"},
		{"negative property tax", func(c *domain.Configuration) { c.Households[0].PropertyTax = negative }, "property tax cannot be negative"},
		{"negative state override", func(c *domain.Configuration) { c.Households[0].StateTaxOverride = &negative }, "state tax cannot be negative"},
		{"marginal rate above one", func(c *domain.Configuration) { c.Households[0].MarginalRate = &tooHigh }, "marginal rate must be between 0 and 1"},
		{"unknown preset", func(c *domain.Configuration) {
			c.LoanPlans = []domain.LoanPlan{{Preset: "mba"}}
		}, "unknown program preset"},
		{"unknown student type", func(c *domain.Configuration) {
			c.LoanPlans = []domain.LoanPlan{{StudentType: "undergraduate", ProgramYears: 2}}
		}, "unknown student type"},
		{"unknown school type", func(c *domain.Configuration) {
			c.LoanPlans = []domain.LoanPlan{{Preset: "law", SchoolType: "online"}}
		}, "unknown school type"},
		{"zero years", func(c *domain.Configuration) {
			c.LoanPlans = []domain.LoanPlan{{StudentType: domain.StudentGraduate}}
		}, "program years must be between 1 and 10"},
		{"too many years", func(c *domain.Configuration) {
			c.LoanPlans = []domain.LoanPlan{{StudentType: domain.StudentGraduate, ProgramYears: 11}}
		}, "program years must be between 1 and 10"},
		{"bad enrollment", func(c *domain.Configuration) {
			c.LoanPlans = []domain.LoanPlan{{Preset: "masters", EnrollmentPercentage: 60}}
		}, "enrollment percentage must be 50, 75 or 100"},
		{"negative existing loans", func(c *domain.Configuration) {
			c.LoanPlans = []domain.LoanPlan{{Preset: "masters", ExistingLoans: negative}}
		}, "existing loans cannot be negative"},
		{"negative concurrency", func(c *domain.Configuration) { c.Options.Concurrency = -1 }, "concurrency cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &domain.Configuration{Households: []domain.HouseholdInput{validHousehold()}}
			tt.modify(config)

			err := NewInputParser().ValidateConfiguration(config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	parser := NewInputParser()
	config := parser.CreateExampleConfiguration()

	assert.NotEmpty(t, config.Households)
	assert.NotEmpty(t, config.LoanPlans)
	require.NoError(t, parser.ValidateConfiguration(config))

	// the example survives a YAML round trip through the parser
	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	parsed, err := parser.Parse(data)
	require.NoError(t, err)

	require.Len(t, parsed.Households, len(config.Households))
	for i := range config.Households {
		assert.Equal(t, config.Households[i].Name, parsed.Households[i].Name)
		assert.Equal(t, config.Households[i].FilingStatus, parsed.Households[i].FilingStatus)
		assert.True(t, config.Households[i].AGI.Equal(parsed.Households[i].AGI))
	}
	require.Len(t, parsed.LoanPlans, len(config.LoanPlans))
	assert.Equal(t, config.LoanPlans[0].EnrollmentStart.Unix(), parsed.LoanPlans[0].EnrollmentStart.Unix())
}
