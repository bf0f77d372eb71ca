package calculation

import (
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// HouseholdCalculator ties the federal, state and SALT calculators together
// for one taxpayer
type HouseholdCalculator struct {
	Federal *FederalTaxCalculator
	State   *StateTaxCalculator
	Salt    *SaltCapCalculator
	Logger  Logger
}

// NewHouseholdCalculator creates a household calculator with the default tables
func NewHouseholdCalculator() *HouseholdCalculator {
	return &HouseholdCalculator{
		Federal: NewFederalTaxCalculator2024(),
		State:   NewStateTaxCalculator(),
		Salt:    NewSaltCapCalculator(),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger used by the household and state calculators
func (hc *HouseholdCalculator) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	hc.Logger = l
	hc.State.Logger = l
}

// Analyze estimates a household's taxes and compares the three SALT caps.
// Overrides on the input replace the estimated federal tax, state tax and
// marginal rate. Figures are rounded only in the returned analysis.
func (hc *HouseholdCalculator) Analyze(in domain.HouseholdInput) domain.HouseholdAnalysis {
	federal := hc.Federal.CalculateTax(in.AGI, in.FilingStatus)
	if in.FederalTaxOverride != nil {
		federal = *in.FederalTaxOverride
	}

	state := hc.State.EstimateTax(in.AGI, in.State, in.FilingStatus)
	if in.StateTaxOverride != nil {
		state = domain.StateTaxResult{Amount: *in.StateTaxOverride}
	} else if state.IsEstimate {
		hc.Logger.Warnf("state tax for %q in %s is a flat-rate estimate", in.Name, in.State)
	}

	rate := hc.Federal.MarginalRate(in.AGI, in.FilingStatus)
	if in.MarginalRate != nil {
		rate = *in.MarginalRate
	}

	effectiveCap := hc.Salt.ProposedCap(in.AGI, in.FilingStatus)
	scenarios := hc.Salt.Compare(SaltComparisonInput{
		FederalTax:   federal,
		StateTax:     state.Amount,
		PropertyTax:  in.PropertyTax,
		MarginalRate: &rate,
		AGI:          in.AGI,
		FilingStatus: in.FilingStatus,
	})
	hc.Logger.Debugf("household %q: proposed cap %s, marginal rate %s", in.Name, effectiveCap, rate)

	return domain.HouseholdAnalysis{
		Household:    in,
		FederalTax:   federal.Round(0),
		StateTax:     domain.StateTaxResult{Amount: state.Amount.Round(0), IsEstimate: state.IsEstimate},
		SaltBase:     state.Amount.Add(in.PropertyTax).Round(0),
		MarginalRate: rate,
		ProposedCap:  effectiveCap.Round(0),
		CapPhase:     hc.Salt.Phase(effectiveCap),
		Scenarios:    scenarios,
	}
}

// AnalyzeHousehold evaluates a household with the default tables
func AnalyzeHousehold(in domain.HouseholdInput) domain.HouseholdAnalysis {
	return NewHouseholdCalculator().Analyze(in)
}

// proposedCapDelta is the extra deduction value of the proposed cap over the
// current cap for a household, used for log summaries
func proposedCapDelta(a domain.HouseholdAnalysis) decimal.Decimal {
	return a.Scenarios[1].TaxSavings.Sub(a.Scenarios[0].TaxSavings)
}
