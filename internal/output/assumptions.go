package output

import (
	"fmt"

	"github.com/saltcap/policy-calculator/internal/calculation"
)

// DefaultAssumptions lists key modeling assumptions rendered in console output.
var DefaultAssumptions = GenerateAssumptions(calculation.DefaultSaltCapConstants(), calculation.DefaultLoanCapConstants())

// GenerateAssumptions creates the assumptions list from the policy parameters in use
func GenerateAssumptions(salt calculation.SaltCapConstants, loans calculation.LoanCapConstants) []string {
	return []string{
		"Federal tax: 2024 brackets applied directly to AGI (no standard deduction)",
		fmt.Sprintf("State tax: progressive tables for CA, NY, NJ, OR, MN; other states estimated at top rate x %s", salt.StateEffectiveRateMultiplier),
		fmt.Sprintf("SALT cap: %s current; %s proposed, reduced %s of AGI over %s (%s married filing separately), floor %s",
			FormatCurrency(salt.CurrentCap), FormatCurrency(salt.ProposedBaseCap), FormatPercentage(salt.PhaseDownRate),
			FormatCurrency(salt.PhaseDownThreshold), FormatCurrency(salt.PhaseDownThresholdSeparate), FormatCurrency(salt.CurrentCap)),
		fmt.Sprintf("Deduction value: SALT deduction x marginal rate (default %s)", FormatPercentage(salt.DefaultMarginalRate)),
		fmt.Sprintf("Student loans: graduate %s/yr (%s total), professional %s/yr (%s total), %s lifetime; effective %s",
			FormatCurrency(loans.GraduateAnnual), FormatCurrency(loans.GraduateAggregate),
			FormatCurrency(loans.ProfessionalAnnual), FormatCurrency(loans.ProfessionalAggregate),
			FormatCurrency(loans.LifetimeMax), loans.EffectiveDate.Format("January 2, 2006")),
	}
}
