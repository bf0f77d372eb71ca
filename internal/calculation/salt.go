package calculation

import (
	"fmt"

	"github.com/saltcap/policy-calculator/internal/domain"
	pkgdecimal "github.com/saltcap/policy-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// SaltCapCalculator computes the phased-down SALT cap and the three-way
// deduction comparison
type SaltCapCalculator struct {
	Constants SaltCapConstants
}

// NewSaltCapCalculator creates a SALT calculator with the enacted parameters
func NewSaltCapCalculator() *SaltCapCalculator {
	return &SaltCapCalculator{Constants: DefaultSaltCapConstants()}
}

// SaltComparisonInput carries the figures needed to compare SALT caps.
// A nil MarginalRate uses the default rate. PropertyTax is added, uncapped,
// to state tax to form the SALT base.
type SaltComparisonInput struct {
	FederalTax   decimal.Decimal
	StateTax     decimal.Decimal
	PropertyTax  decimal.Decimal
	MarginalRate *decimal.Decimal
	AGI          decimal.Decimal
	FilingStatus domain.FilingStatus
}

// PhaseDownThreshold returns the AGI above which the proposed cap shrinks
func (scc *SaltCapCalculator) PhaseDownThreshold(status domain.FilingStatus) decimal.Decimal {
	if status == domain.FilingMarriedSeparately {
		return scc.Constants.PhaseDownThresholdSeparate
	}
	return scc.Constants.PhaseDownThreshold
}

// IsAbovePhaseDownThreshold reports whether agi triggers the phase-down
func (scc *SaltCapCalculator) IsAbovePhaseDownThreshold(agi decimal.Decimal, status domain.FilingStatus) bool {
	return agi.GreaterThan(scc.PhaseDownThreshold(status))
}

// ProposedCap returns the effective proposed cap: the base cap reduced by the
// phase-down rate on AGI over the threshold, floored at the current cap.
func (scc *SaltCapCalculator) ProposedCap(agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	if !scc.IsAbovePhaseDownThreshold(agi, status) {
		return scc.Constants.ProposedBaseCap
	}
	reduction := agi.Sub(scc.PhaseDownThreshold(status)).Mul(scc.Constants.PhaseDownRate)
	return decimal.Max(scc.Constants.ProposedBaseCap.Sub(reduction), scc.Constants.CurrentCap)
}

// Phase classifies an effective proposed cap
func (scc *SaltCapCalculator) Phase(effectiveCap decimal.Decimal) domain.CapPhase {
	switch {
	case effectiveCap.Equal(scc.Constants.ProposedBaseCap):
		return domain.CapPhaseUnphased
	case effectiveCap.Equal(scc.Constants.CurrentCap):
		return domain.CapPhasePhasedOut
	default:
		return domain.CapPhasePartial
	}
}

// ScenarioLabel names the proposed-cap scenario after its effective cap
func (scc *SaltCapCalculator) ScenarioLabel(effectiveCap decimal.Decimal) string {
	switch scc.Phase(effectiveCap) {
	case domain.CapPhaseUnphased:
		return fmt.Sprintf("BBB (%s Cap)", pkgdecimal.FormatThousands(scc.Constants.ProposedBaseCap))
	case domain.CapPhasePhasedOut:
		return fmt.Sprintf("BBB (%s Cap - Phased Out)", pkgdecimal.FormatThousands(scc.Constants.CurrentCap))
	default:
		return fmt.Sprintf("BBB (%s Cap)", pkgdecimal.FormatThousands(effectiveCap))
	}
}

func (scc *SaltCapCalculator) currentLabel() string {
	return fmt.Sprintf("Current (%s Cap)", pkgdecimal.FormatThousands(scc.Constants.CurrentCap))
}

func (scc *SaltCapCalculator) rate(marginalRate *decimal.Decimal) decimal.Decimal {
	if marginalRate == nil {
		return scc.Constants.DefaultMarginalRate
	}
	return *marginalRate
}

// TaxSavings values a deduction at the marginal rate
func (scc *SaltCapCalculator) TaxSavings(deduction decimal.Decimal, marginalRate *decimal.Decimal) decimal.Decimal {
	return deduction.Mul(scc.rate(marginalRate))
}

// TotalTaxWithSalt is federal plus state tax less the value of the deduction
func (scc *SaltCapCalculator) TotalTaxWithSalt(federalTax, stateTax, deduction decimal.Decimal, marginalRate *decimal.Decimal) decimal.Decimal {
	return federalTax.Add(stateTax).Sub(scc.TaxSavings(deduction, marginalRate))
}

// Compare produces the current, proposed and no-cap scenarios in that order.
// All arithmetic is unrounded; only the returned figures are rounded.
func (scc *SaltCapCalculator) Compare(in SaltComparisonInput) [3]domain.SaltScenarioResult {
	base := in.StateTax.Add(in.PropertyTax)
	effectiveCap := scc.ProposedCap(in.AGI, in.FilingStatus)

	deductions := [3]decimal.Decimal{
		decimal.Min(base, scc.Constants.CurrentCap),
		decimal.Min(base, effectiveCap),
		base,
	}
	kinds := [3]domain.SaltScenarioKind{domain.SaltScenarioCurrent, domain.SaltScenarioProposed, domain.SaltScenarioNoCap}
	labels := [3]string{scc.currentLabel(), scc.ScenarioLabel(effectiveCap), "No Cap"}

	var out [3]domain.SaltScenarioResult
	for i, d := range deductions {
		out[i] = domain.SaltScenarioResult{
			Kind:          kinds[i],
			Scenario:      labels[i],
			TotalTax:      scc.TotalTaxWithSalt(in.FederalTax, in.StateTax, d, in.MarginalRate).Round(0),
			SaltDeduction: d.Round(0),
			TaxSavings:    scc.TaxSavings(d, in.MarginalRate).Round(0),
		}
	}
	return out
}

var defaultSalt = NewSaltCapCalculator()

// CalculateProposedSaltCap returns the effective SALT cap for agi and status
func CalculateProposedSaltCap(agi decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return defaultSalt.ProposedCap(agi, status)
}

// PhaseDownThreshold returns the AGI threshold of the cap phase-down for status
func PhaseDownThreshold(status domain.FilingStatus) decimal.Decimal {
	return defaultSalt.PhaseDownThreshold(status)
}

// IsAbovePhaseDownThreshold reports whether agi is past the phase-down threshold
func IsAbovePhaseDownThreshold(agi decimal.Decimal, status domain.FilingStatus) bool {
	return defaultSalt.IsAbovePhaseDownThreshold(agi, status)
}

// ProposedCapPhase classifies an effective cap as unphased, partial or phased out
func ProposedCapPhase(effectiveCap decimal.Decimal) domain.CapPhase {
	return defaultSalt.Phase(effectiveCap)
}

// CalculateSaltTaxSavings values a SALT deduction at marginalRate (nil: 22%)
func CalculateSaltTaxSavings(deduction decimal.Decimal, marginalRate *decimal.Decimal) decimal.Decimal {
	return defaultSalt.TaxSavings(deduction, marginalRate)
}

// CalculateTotalTaxWithSalt returns federal + state tax less the deduction's value
func CalculateTotalTaxWithSalt(federalTax, stateTax, deduction decimal.Decimal, marginalRate *decimal.Decimal) decimal.Decimal {
	return defaultSalt.TotalTaxWithSalt(federalTax, stateTax, deduction, marginalRate)
}

// GenerateSaltComparisonData compares the current, proposed and no-cap SALT
// scenarios for a taxpayer whose SALT base is the state tax alone
func GenerateSaltComparisonData(federalTax, stateTax decimal.Decimal, marginalRate *decimal.Decimal, agi decimal.Decimal, status domain.FilingStatus) [3]domain.SaltScenarioResult {
	return defaultSalt.Compare(SaltComparisonInput{
		FederalTax:   federalTax,
		StateTax:     stateTax,
		MarginalRate: marginalRate,
		AGI:          agi,
		FilingStatus: status,
	})
}

// GenerateSaltComparison is GenerateSaltComparisonData with property tax support
func GenerateSaltComparison(in SaltComparisonInput) [3]domain.SaltScenarioResult {
	return defaultSalt.Compare(in)
}
