package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// StudentType selects the federal borrowing limits that apply to a borrower
type StudentType string

const (
	StudentGraduate     StudentType = "graduate"
	StudentProfessional StudentType = "professional"
	StudentParent       StudentType = "parent"
)

// Valid reports whether st is a known student type
func (st StudentType) Valid() bool {
	switch st {
	case StudentGraduate, StudentProfessional, StudentParent:
		return true
	}
	return false
}

// Label returns a display name for the student type
func (st StudentType) Label() string {
	switch st {
	case StudentGraduate:
		return "Graduate (Masters, PhD)"
	case StudentProfessional:
		return "Professional (MD, JD, DDS, PharmD, etc.)"
	case StudentParent:
		return "Parent PLUS"
	}
	return string(st)
}

// ParseStudentType resolves a student type, case-insensitively
func ParseStudentType(s string) (StudentType, error) {
	st := StudentType(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("unknown student type %q", s)
	}
	return st, nil
}

// UnmarshalYAML accepts any casing of a student type. An empty value leaves
// the type unset so a preset can supply it.
func (st *StudentType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*st = ""
		return nil
	}
	parsed, err := ParseStudentType(s)
	if err != nil {
		return err
	}
	*st = parsed
	return nil
}

// SchoolType adjusts a public in-state base cost for other kinds of schools
type SchoolType string

const (
	SchoolPublicInState    SchoolType = "public-in-state"
	SchoolPublicOutOfState SchoolType = "public-out-of-state"
	SchoolPrivate          SchoolType = "private"
)

// Enrollment percentages accepted for pro-rating annual limits
const (
	EnrollmentFullTime         = 100
	EnrollmentThreeQuarterTime = 75
	EnrollmentHalfTime         = 50
)

// ProgramPreset is a typical program with a public in-state annual cost
type ProgramPreset struct {
	ID          string          `yaml:"id" json:"id"`
	Label       string          `yaml:"label" json:"label"`
	StudentType StudentType     `yaml:"student_type" json:"student_type"`
	Years       int             `yaml:"years" json:"years"`
	AnnualCost  decimal.Decimal `yaml:"annual_cost" json:"annual_cost"`
	IsFunded    bool            `yaml:"is_funded,omitempty" json:"is_funded,omitempty"`
	FundedNote  string          `yaml:"funded_note,omitempty" json:"funded_note,omitempty"`
}

// YearBreakdown is one program year of the borrowing schedule
type YearBreakdown struct {
	Year               int             `yaml:"year" json:"year"`
	AcademicYear       string          `yaml:"academic_year,omitempty" json:"academic_year,omitempty"`
	AnnualCost         decimal.Decimal `yaml:"annual_cost" json:"annual_cost"`
	MaxBorrowing       decimal.Decimal `yaml:"max_borrowing" json:"max_borrowing"`
	CumulativeBorrowed decimal.Decimal `yaml:"cumulative_borrowed" json:"cumulative_borrowed"`
	RemainingCapacity  decimal.Decimal `yaml:"remaining_capacity" json:"remaining_capacity"`
	AnnualGap          decimal.Decimal `yaml:"annual_gap" json:"annual_gap"`
}

// LoanScenario summarizes borrowing under one policy regime
type LoanScenario struct {
	Scenario     string          `yaml:"scenario" json:"scenario"`
	LoanCapacity decimal.Decimal `yaml:"loan_capacity" json:"loan_capacity"`
	ProgramCost  decimal.Decimal `yaml:"program_cost" json:"program_cost"`
	FundingGap   decimal.Decimal `yaml:"funding_gap" json:"funding_gap"`
}

// LoanCalculationResult aggregates the capped borrowing schedule for a program
type LoanCalculationResult struct {
	TotalProgramCost         decimal.Decimal `yaml:"total_program_cost" json:"total_program_cost"`
	TotalBorrowingCapacity   decimal.Decimal `yaml:"total_borrowing_capacity" json:"total_borrowing_capacity"`
	FundingGap               decimal.Decimal `yaml:"funding_gap" json:"funding_gap"`
	AnnualLimit              decimal.Decimal `yaml:"annual_limit" json:"annual_limit"`
	AggregateLimit           decimal.Decimal `yaml:"aggregate_limit" json:"aggregate_limit"`
	YearBreakdown            []YearBreakdown `yaml:"year_breakdown" json:"year_breakdown"`
	Comparison               [2]LoanScenario `yaml:"comparison" json:"comparison"`
	InterimExceptionEligible bool            `yaml:"interim_exception_eligible" json:"interim_exception_eligible"`
}
