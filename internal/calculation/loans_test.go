package calculation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func yearRow(year int, cost, borrow, cumulative, remaining, gap string) domain.YearBreakdown {
	return domain.YearBreakdown{
		Year:               year,
		AnnualCost:         dec(cost),
		MaxBorrowing:       dec(borrow),
		CumulativeBorrowed: dec(cumulative),
		RemainingCapacity:  dec(remaining),
		AnnualGap:          dec(gap),
	}
}

func TestGetAnnualLimit(t *testing.T) {
	tests := []struct {
		studentType domain.StudentType
		enrollment  int
		expected    string
	}{
		{domain.StudentGraduate, 100, "20500"},
		{domain.StudentGraduate, 75, "15375"},
		{domain.StudentGraduate, 50, "10250"},
		{domain.StudentProfessional, 100, "50000"},
		{domain.StudentProfessional, 50, "25000"},
		{domain.StudentParent, 75, "15000"},
		{domain.StudentGraduate, 33, "6765"},
	}

	for _, tt := range tests {
		limit := GetAnnualLimit(tt.studentType, tt.enrollment)
		assert.True(t, limit.Equal(dec(tt.expected)), "%s at %d%%: got %s", tt.studentType, tt.enrollment, limit)
	}
}

func TestGetAggregateLimit(t *testing.T) {
	tests := []struct {
		name        string
		studentType domain.StudentType
		existing    string
		expected    string
	}{
		{"graduate no prior loans", domain.StudentGraduate, "0", "100000"},
		{"professional no prior loans", domain.StudentProfessional, "0", "200000"},
		{"parent no prior loans", domain.StudentParent, "0", "65000"},
		{"lifetime binds", domain.StudentProfessional, "200000", "57500"},
		{"lifetime exhausted", domain.StudentGraduate, "257500", "0"},
		{"over lifetime", domain.StudentGraduate, "300000", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit := GetAggregateLimit(tt.studentType, dec(tt.existing))
			assert.True(t, limit.Equal(dec(tt.expected)), "got %s", limit)
		})
	}
}

func TestCalculateLoanMetrics_GraduateSixYears(t *testing.T) {
	result := CalculateLoanMetrics(domain.StudentGraduate, 6, dec("20000"), decimal.Zero, 100)

	expected := []domain.YearBreakdown{
		yearRow(1, "20000", "20500", "20500", "79500", "0"),
		yearRow(2, "20000", "20500", "41000", "59000", "0"),
		yearRow(3, "20000", "20500", "61500", "38500", "0"),
		yearRow(4, "20000", "20500", "82000", "18000", "0"),
		yearRow(5, "20000", "18000", "100000", "0", "2000"),
		yearRow(6, "20000", "0", "100000", "0", "20000"),
	}
	if diff := cmp.Diff(expected, result.YearBreakdown, decimalComparer); diff != "" {
		t.Errorf("year breakdown mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, result.TotalProgramCost.Equal(dec("120000")))
	assert.True(t, result.TotalBorrowingCapacity.Equal(dec("100000")))
	assert.True(t, result.FundingGap.Equal(dec("20000")))
	assert.True(t, result.AnnualLimit.Equal(dec("20500")))
	assert.True(t, result.AggregateLimit.Equal(dec("100000")))

	wantComparison := [2]domain.LoanScenario{
		{Scenario: "New BBB Limits", LoanCapacity: dec("100000"), ProgramCost: dec("120000"), FundingGap: dec("20000")},
		{Scenario: "Old System (Unlimited)", LoanCapacity: dec("120000"), ProgramCost: dec("120000"), FundingGap: decimal.Zero},
	}
	if diff := cmp.Diff(wantComparison, result.Comparison, decimalComparer); diff != "" {
		t.Errorf("comparison mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculateLoanMetrics_NoGapWhenFullyCovered(t *testing.T) {
	result := CalculateLoanMetrics(domain.StudentProfessional, 4, dec("42000"), decimal.Zero, 100)

	assert.True(t, result.TotalProgramCost.Equal(dec("168000")))
	assert.True(t, result.TotalBorrowingCapacity.Equal(dec("200000")), "capacity follows the annual limit, not cost")
	assert.True(t, result.FundingGap.IsZero())
	assert.True(t, result.Comparison[0].LoanCapacity.Equal(dec("168000")))
	for _, row := range result.YearBreakdown {
		assert.True(t, row.AnnualGap.IsZero(), "year %d", row.Year)
	}
}

func TestCalculateLoanMetrics_Invariants(t *testing.T) {
	cases := []struct {
		studentType domain.StudentType
		years       int
		cost        string
		existing    string
		enrollment  int
	}{
		{domain.StudentGraduate, 2, "22000", "0", 100},
		{domain.StudentGraduate, 5, "30000", "40000", 75},
		{domain.StudentProfessional, 4, "75600", "0", 100},
		{domain.StudentProfessional, 3, "55800", "220000", 50},
		{domain.StudentParent, 4, "35000", "0", 100},
		{domain.StudentGraduate, 10, "0", "0", 100},
	}

	for _, c := range cases {
		result := CalculateLoanMetrics(c.studentType, c.years, dec(c.cost), dec(c.existing), c.enrollment)
		require.Len(t, result.YearBreakdown, c.years)

		prev := decimal.Zero
		for _, row := range result.YearBreakdown {
			assert.True(t, row.MaxBorrowing.LessThanOrEqual(result.AnnualLimit), "%+v", c)
			assert.True(t, row.CumulativeBorrowed.GreaterThanOrEqual(prev), "%+v", c)
			assert.True(t, row.CumulativeBorrowed.LessThanOrEqual(result.AggregateLimit), "%+v", c)
			assert.True(t, row.RemainingCapacity.Equal(result.AggregateLimit.Sub(row.CumulativeBorrowed)), "%+v", c)
			assert.False(t, row.AnnualGap.IsNegative(), "%+v", c)
			prev = row.CumulativeBorrowed
		}
		assert.False(t, result.FundingGap.IsNegative())
		assert.True(t, result.FundingGap.Equal(decimal.Max(decimal.Zero, result.TotalProgramCost.Sub(result.TotalBorrowingCapacity))))
	}
}

func TestCalculateLoanMetrics_EmptyProgram(t *testing.T) {
	for _, years := range []int{0, -3} {
		result := CalculateLoanMetrics(domain.StudentGraduate, years, dec("20000"), decimal.Zero, 100)
		assert.Empty(t, result.YearBreakdown)
		assert.True(t, result.TotalProgramCost.IsZero())
		assert.True(t, result.TotalBorrowingCapacity.IsZero())
		assert.True(t, result.FundingGap.IsZero())
	}
}

func TestCalculateLoanMetrics_LifetimeExhausted(t *testing.T) {
	result := CalculateLoanMetrics(domain.StudentGraduate, 2, dec("20000"), dec("257500"), 100)

	for _, row := range result.YearBreakdown {
		assert.True(t, row.MaxBorrowing.IsZero())
		assert.True(t, row.AnnualGap.Equal(dec("20000")))
	}
	assert.True(t, result.FundingGap.Equal(dec("40000")))
}

func TestIsInterimExceptionEligible(t *testing.T) {
	assert.True(t, IsInterimExceptionEligible(2024))
	assert.True(t, IsInterimExceptionEligible(2025))
	assert.False(t, IsInterimExceptionEligible(2026))
	assert.False(t, IsInterimExceptionEligible(2027))
}

func TestGetLimitLabel(t *testing.T) {
	assert.Equal(t, "Graduate Student", GetLimitLabel(domain.StudentGraduate))
	assert.Equal(t, "Professional Student", GetLimitLabel(domain.StudentProfessional))
	assert.Equal(t, "Parent PLUS", GetLimitLabel(domain.StudentParent))
}

func TestAnalyzeLoanPlan(t *testing.T) {
	start := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)
	analysis := AnalyzeLoanPlan(domain.LoanPlan{
		Name:            "Med school",
		Preset:          "medical",
		SchoolType:      domain.SchoolPrivate,
		EnrollmentStart: &start,
	})

	assert.Equal(t, domain.StudentProfessional, analysis.Plan.StudentType)
	assert.Equal(t, 4, analysis.Plan.ProgramYears)
	assert.Equal(t, 100, analysis.Plan.EnrollmentPercentage)
	assert.True(t, analysis.Plan.AnnualCost.Equal(dec("75600")), "42000 * 1.8, got %s", analysis.Plan.AnnualCost)
	assert.Equal(t, "Professional Student", analysis.LimitLabel)

	result := analysis.Result
	assert.False(t, result.InterimExceptionEligible)
	require.Len(t, result.YearBreakdown, 4)
	assert.Equal(t, "2026-27", result.YearBreakdown[0].AcademicYear)
	assert.Equal(t, "2029-30", result.YearBreakdown[3].AcademicYear)
	assert.True(t, result.TotalProgramCost.Equal(dec("302400")))
	assert.True(t, result.TotalBorrowingCapacity.Equal(dec("200000")))
	assert.True(t, result.FundingGap.Equal(dec("102400")))
}

func TestAnalyzeLoanPlan_InterimException(t *testing.T) {
	start := time.Date(2025, time.September, 2, 0, 0, 0, 0, time.UTC)
	analysis := AnalyzeLoanPlan(domain.LoanPlan{
		StudentType:     domain.StudentGraduate,
		ProgramYears:    2,
		AnnualCost:      dec("25000"),
		EnrollmentStart: &start,
	})

	assert.True(t, analysis.Result.InterimExceptionEligible)
	assert.Equal(t, "2025-26", analysis.Result.YearBreakdown[0].AcademicYear)

	noDate := AnalyzeLoanPlan(domain.LoanPlan{StudentType: domain.StudentGraduate, ProgramYears: 2, AnnualCost: dec("25000")})
	assert.False(t, noDate.Result.InterimExceptionEligible)
	assert.Empty(t, noDate.Result.YearBreakdown[0].AcademicYear)
}

func TestDefaultLoanCapConstants_EffectiveDate(t *testing.T) {
	c := DefaultLoanCapConstants()
	assert.Equal(t, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), c.EffectiveDate)
}

func TestCalculateLoanMetrics_ComparisonUsesScheduledCapacity(t *testing.T) {
	// the annual limit binds long before the aggregate does
	result := CalculateLoanMetrics(domain.StudentGraduate, 2, dec("30000"), decimal.Zero, 100)

	capped := result.Comparison[0]
	assert.True(t, capped.LoanCapacity.Equal(dec("41000")), "got %s", capped.LoanCapacity)
	assert.True(t, capped.FundingGap.Equal(dec("19000")), "got %s", capped.FundingGap)
	assert.True(t, capped.LoanCapacity.Equal(result.TotalBorrowingCapacity))
	assert.True(t, result.AggregateLimit.Equal(dec("100000")))
}
