package calculation

import (
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/saltcap/policy-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// LoanCapCalculator computes federal student loan limits and the capped
// year-by-year borrowing schedule
type LoanCapCalculator struct {
	Constants LoanCapConstants
}

// NewLoanCapCalculator creates a loan calculator with the enacted limits
func NewLoanCapCalculator() *LoanCapCalculator {
	return &LoanCapCalculator{Constants: DefaultLoanCapConstants()}
}

func (lc *LoanCapCalculator) baseLimits(st domain.StudentType) (annual, aggregate decimal.Decimal) {
	switch st {
	case domain.StudentProfessional:
		return lc.Constants.ProfessionalAnnual, lc.Constants.ProfessionalAggregate
	case domain.StudentParent:
		return lc.Constants.ParentAnnual, lc.Constants.ParentAggregate
	default:
		return lc.Constants.GraduateAnnual, lc.Constants.GraduateAggregate
	}
}

// AnnualLimit pro-rates the annual cap by enrollment and rounds to whole dollars
func (lc *LoanCapCalculator) AnnualLimit(st domain.StudentType, enrollmentPercentage int) decimal.Decimal {
	annual, _ := lc.baseLimits(st)
	return annual.Mul(decimal.NewFromInt(int64(enrollmentPercentage))).Div(decimal.NewFromInt(100)).Round(0)
}

// AggregateLimit is the smaller of the program aggregate and the lifetime
// capacity left after existing loans, never below zero
func (lc *LoanCapCalculator) AggregateLimit(st domain.StudentType, existingLoans decimal.Decimal) decimal.Decimal {
	_, aggregate := lc.baseLimits(st)
	lifetimeRemaining := lc.Constants.LifetimeMax.Sub(existingLoans)
	return decimal.Max(decimal.Zero, decimal.Min(aggregate, lifetimeRemaining))
}

// YearByYear builds the sequential schedule. Each year borrows the lesser of
// the annual limit and the aggregate capacity left, so once the aggregate is
// exhausted later years borrow nothing.
func (lc *LoanCapCalculator) YearByYear(st domain.StudentType, programYears int, annualCost, existingLoans decimal.Decimal, enrollmentPercentage int) []domain.YearBreakdown {
	annualLimit := lc.AnnualLimit(st, enrollmentPercentage)
	aggregateLimit := lc.AggregateLimit(st, existingLoans)

	breakdown := make([]domain.YearBreakdown, 0, max(programYears, 0))
	cumulative := decimal.Zero
	for year := 1; year <= programYears; year++ {
		remaining := aggregateLimit.Sub(cumulative)
		maxThisYear := decimal.Min(annualLimit, remaining)
		annualGap := decimal.Max(decimal.Zero, annualCost.Sub(maxThisYear))

		cumulative = cumulative.Add(maxThisYear)

		breakdown = append(breakdown, domain.YearBreakdown{
			Year:               year,
			AnnualCost:         annualCost,
			MaxBorrowing:       maxThisYear,
			CumulativeBorrowed: cumulative,
			RemainingCapacity:  aggregateLimit.Sub(cumulative),
			AnnualGap:          annualGap,
		})
	}
	return breakdown
}

// Metrics computes the full capped result for a program
func (lc *LoanCapCalculator) Metrics(st domain.StudentType, programYears int, annualCost, existingLoans decimal.Decimal, enrollmentPercentage int) domain.LoanCalculationResult {
	if programYears < 0 {
		programYears = 0
	}
	totalCost := decimal.NewFromInt(int64(programYears)).Mul(annualCost)
	breakdown := lc.YearByYear(st, programYears, annualCost, existingLoans, enrollmentPercentage)

	capacity := decimal.Zero
	if n := len(breakdown); n > 0 {
		capacity = breakdown[n-1].CumulativeBorrowed
	}
	gap := decimal.Max(decimal.Zero, totalCost.Sub(capacity))

	return domain.LoanCalculationResult{
		TotalProgramCost:       totalCost,
		TotalBorrowingCapacity: capacity,
		FundingGap:             gap,
		AnnualLimit:            lc.AnnualLimit(st, enrollmentPercentage),
		AggregateLimit:         lc.AggregateLimit(st, existingLoans),
		YearBreakdown:          breakdown,
		Comparison: [2]domain.LoanScenario{
			{
				Scenario:     "New BBB Limits",
				LoanCapacity: decimal.Min(capacity, totalCost),
				ProgramCost:  totalCost,
				FundingGap:   gap,
			},
			{
				// Grad PLUS allowed borrowing up to the full cost of attendance
				Scenario:     "Old System (Unlimited)",
				LoanCapacity: totalCost,
				ProgramCost:  totalCost,
				FundingGap:   decimal.Zero,
			},
		},
	}
}

// InterimExceptionEligible reports whether the plan's program began before the
// new limits took effect
func (lc *LoanCapCalculator) InterimExceptionEligible(plan domain.LoanPlan) bool {
	if plan.EnrollmentStart == nil {
		return false
	}
	return dateutil.StartsBefore(*plan.EnrollmentStart, lc.Constants.EffectiveDate)
}

// Plan resolves presets and school type on plan, then computes its schedule
func (lc *LoanCapCalculator) Plan(plan domain.LoanPlan) domain.LoanPlanAnalysis {
	resolved := ResolveLoanPlan(plan)
	result := lc.Metrics(resolved.StudentType, resolved.ProgramYears, resolved.AnnualCost, resolved.ExistingLoans, resolved.EnrollmentPercentage)

	if resolved.EnrollmentStart != nil {
		for i, label := range dateutil.ProgramAcademicYears(*resolved.EnrollmentStart, len(result.YearBreakdown)) {
			result.YearBreakdown[i].AcademicYear = label
		}
		result.InterimExceptionEligible = lc.InterimExceptionEligible(resolved)
	}

	return domain.LoanPlanAnalysis{
		Plan:       resolved,
		LimitLabel: GetLimitLabel(resolved.StudentType),
		Result:     result,
	}
}

var defaultLoans = NewLoanCapCalculator()

// GetAnnualLimit returns the pro-rated annual borrowing limit
func GetAnnualLimit(st domain.StudentType, enrollmentPercentage int) decimal.Decimal {
	return defaultLoans.AnnualLimit(st, enrollmentPercentage)
}

// GetAggregateLimit returns the aggregate limit left for this program
func GetAggregateLimit(st domain.StudentType, existingLoans decimal.Decimal) decimal.Decimal {
	return defaultLoans.AggregateLimit(st, existingLoans)
}

// GenerateYearByYearBreakdown returns the capped borrowing schedule
func GenerateYearByYearBreakdown(st domain.StudentType, programYears int, annualCost, existingLoans decimal.Decimal, enrollmentPercentage int) []domain.YearBreakdown {
	return defaultLoans.YearByYear(st, programYears, annualCost, existingLoans, enrollmentPercentage)
}

// CalculateLoanMetrics computes program totals, borrowing capacity, funding gap,
// the yearly schedule and the old-versus-new comparison
func CalculateLoanMetrics(st domain.StudentType, programYears int, annualCost, existingLoans decimal.Decimal, enrollmentPercentage int) domain.LoanCalculationResult {
	return defaultLoans.Metrics(st, programYears, annualCost, existingLoans, enrollmentPercentage)
}

// AnalyzeLoanPlan resolves and evaluates a loan plan with the enacted limits
func AnalyzeLoanPlan(plan domain.LoanPlan) domain.LoanPlanAnalysis {
	return defaultLoans.Plan(plan)
}

// IsInterimExceptionEligible reports whether a student who enrolled in
// enrollmentYear keeps the prior limits during the interim period
func IsInterimExceptionEligible(enrollmentYear int) bool {
	return enrollmentYear < defaultLoans.Constants.EffectiveDate.Year()
}

// GetLimitLabel names the limit category for display
func GetLimitLabel(st domain.StudentType) string {
	switch st {
	case domain.StudentProfessional:
		return "Professional Student"
	case domain.StudentParent:
		return "Parent PLUS"
	default:
		return "Graduate Student"
	}
}
