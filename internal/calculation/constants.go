package calculation

import (
	"time"

	"github.com/saltcap/policy-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// POLICY ASSUMPTIONS:
//
// 1. Federal brackets: 2024 tables, no inflation indexing, no standard
//    deduction. Tax is computed directly on the AGI the caller supplies.
//
// 2. State tax: progressive 2024 tables for CA, NY, NJ, OR and MN (single and
//    married filing jointly only). Other taxing states are approximated as
//    AGI * top flat rate * 0.8 and flagged as estimates.
//
// 3. SALT cap (One Big Beautiful Bill): $40,000 base cap reduced by 30% of AGI
//    over $500,000 ($250,000 married filing separately), never below the
//    current $10,000 cap.
//
// 4. Student loans (Section 81001): graduate $20,500/yr and $100,000 aggregate,
//    professional $50,000/yr and $200,000 aggregate, $257,500 lifetime across
//    all federal loans. Effective for new borrowers on July 1, 2026.

// SaltCapConstants holds the fixed SALT policy parameters
type SaltCapConstants struct {
	CurrentCap                   decimal.Decimal
	ProposedBaseCap              decimal.Decimal
	PhaseDownRate                decimal.Decimal
	PhaseDownThreshold           decimal.Decimal
	PhaseDownThresholdSeparate   decimal.Decimal // married filing separately
	DefaultMarginalRate          decimal.Decimal
	StateEffectiveRateMultiplier decimal.Decimal
}

// DefaultSaltCapConstants returns the enacted SALT parameters
func DefaultSaltCapConstants() SaltCapConstants {
	return SaltCapConstants{
		CurrentCap:                   decimal.NewFromInt(10000),
		ProposedBaseCap:              decimal.NewFromInt(40000),
		PhaseDownRate:                decimal.NewFromFloat(0.30),
		PhaseDownThreshold:           decimal.NewFromInt(500000),
		PhaseDownThresholdSeparate:   decimal.NewFromInt(250000),
		DefaultMarginalRate:          decimal.NewFromFloat(0.22),
		StateEffectiveRateMultiplier: decimal.NewFromFloat(0.8),
	}
}

// LoanCapConstants holds the fixed federal student loan limits
type LoanCapConstants struct {
	GraduateAnnual        decimal.Decimal
	GraduateAggregate     decimal.Decimal
	ProfessionalAnnual    decimal.Decimal
	ProfessionalAggregate decimal.Decimal
	ParentAnnual          decimal.Decimal
	ParentAggregate       decimal.Decimal
	LifetimeMax           decimal.Decimal
	EffectiveDate         time.Time
	InterimExceptionYears int
}

// DefaultLoanCapConstants returns the enacted loan limits
func DefaultLoanCapConstants() LoanCapConstants {
	return LoanCapConstants{
		GraduateAnnual:        decimal.NewFromInt(20500),
		GraduateAggregate:     decimal.NewFromInt(100000),
		ProfessionalAnnual:    decimal.NewFromInt(50000),
		ProfessionalAggregate: decimal.NewFromInt(200000),
		ParentAnnual:          decimal.NewFromInt(20000),
		ParentAggregate:       decimal.NewFromInt(65000),
		LifetimeMax:           decimal.NewFromInt(257500),
		EffectiveDate:         dateutil.AcademicYearStart(2026),
		InterimExceptionYears: 3,
	}
}
