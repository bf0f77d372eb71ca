package calculation

import (
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Base annual costs reflect public in-state tuition (2025 averages)
var programPresets = []domain.ProgramPreset{
	{ID: "masters", Label: "Master's Degree", StudentType: domain.StudentGraduate, Years: 2, AnnualCost: decimal.NewFromInt(22000)},
	{ID: "phd", Label: "PhD Program", StudentType: domain.StudentGraduate, Years: 5, AnnualCost: decimal.Zero, IsFunded: true,
		FundedNote: "Most PhD programs are fully funded with tuition waiver + stipend"},
	{ID: "phd-unfunded", Label: "PhD (Unfunded)", StudentType: domain.StudentGraduate, Years: 5, AnnualCost: decimal.NewFromInt(30000)},
	{ID: "law", Label: "Law School (JD)", StudentType: domain.StudentProfessional, Years: 3, AnnualCost: decimal.NewFromInt(31000)},
	{ID: "medical", Label: "Medical School (MD/DO)", StudentType: domain.StudentProfessional, Years: 4, AnnualCost: decimal.NewFromInt(42000)},
	{ID: "dental", Label: "Dental School (DDS/DMD)", StudentType: domain.StudentProfessional, Years: 4, AnnualCost: decimal.NewFromInt(42000)},
	{ID: "pharmacy", Label: "Pharmacy School (PharmD)", StudentType: domain.StudentProfessional, Years: 4, AnnualCost: decimal.NewFromInt(30000)},
}

var schoolTypeMultipliers = map[domain.SchoolType]decimal.Decimal{
	domain.SchoolPublicInState:    decimal.NewFromFloat(1.0),
	domain.SchoolPublicOutOfState: decimal.NewFromFloat(1.5),
	domain.SchoolPrivate:          decimal.NewFromFloat(1.8),
}

// Presets returns the program presets in display order
func Presets() []domain.ProgramPreset {
	out := make([]domain.ProgramPreset, len(programPresets))
	copy(out, programPresets)
	return out
}

// PresetByID finds a program preset
func PresetByID(id string) (domain.ProgramPreset, bool) {
	for _, p := range programPresets {
		if p.ID == id {
			return p, true
		}
	}
	return domain.ProgramPreset{}, false
}

// SchoolTypeMultiplier returns the cost multiplier for a school type and
// whether the type is known. The empty type is public in-state.
func SchoolTypeMultiplier(st domain.SchoolType) (decimal.Decimal, bool) {
	if st == "" {
		st = domain.SchoolPublicInState
	}
	m, ok := schoolTypeMultipliers[st]
	return m, ok
}

// ApplySchoolType scales a public in-state cost to the given school type and
// rounds to whole dollars. Unknown types leave the cost unchanged.
func ApplySchoolType(annualCost decimal.Decimal, st domain.SchoolType) decimal.Decimal {
	m, ok := SchoolTypeMultiplier(st)
	if !ok {
		return annualCost
	}
	return annualCost.Mul(m).Round(0)
}

// ValidEnrollment reports whether pct is a supported enrollment intensity
func ValidEnrollment(pct int) bool {
	switch pct {
	case domain.EnrollmentFullTime, domain.EnrollmentThreeQuarterTime, domain.EnrollmentHalfTime:
		return true
	}
	return false
}

// ResolveLoanPlan fills zero-valued fields from the plan's preset, applies the
// school type multiplier and defaults enrollment to full time. Zero means
// unset: an annual cost of 0 on a preset plan takes the preset's cost. Model
// a funded program with the phd preset or a plan without a preset.
func ResolveLoanPlan(plan domain.LoanPlan) domain.LoanPlan {
	if preset, ok := PresetByID(plan.Preset); ok {
		if plan.StudentType == "" {
			plan.StudentType = preset.StudentType
		}
		if plan.ProgramYears == 0 {
			plan.ProgramYears = preset.Years
		}
		if plan.AnnualCost.IsZero() {
			plan.AnnualCost = preset.AnnualCost
		}
	}
	if plan.StudentType == "" {
		plan.StudentType = domain.StudentGraduate
	}
	if plan.EnrollmentPercentage == 0 {
		plan.EnrollmentPercentage = domain.EnrollmentFullTime
	}
	plan.AnnualCost = ApplySchoolType(plan.AnnualCost, plan.SchoolType)
	return plan
}
