package calculation

import (
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// StateTaxCalculator estimates state income tax. States with a progressive
// schedule are computed exactly; other taxing states get a flat approximation
// that is flagged as an estimate.
type StateTaxCalculator struct {
	EffectiveRateMultiplier decimal.Decimal
	Logger                  Logger
}

// NewStateTaxCalculator creates a state calculator with the default multiplier
func NewStateTaxCalculator() *StateTaxCalculator {
	return &StateTaxCalculator{
		EffectiveRateMultiplier: DefaultSaltCapConstants().StateEffectiveRateMultiplier,
		Logger:                  NopLogger{},
	}
}

// EstimateTax computes state tax on income. Unknown and no-tax states owe 0.
func (stc *StateTaxCalculator) EstimateTax(income decimal.Decimal, state domain.StateName, status domain.FilingStatus) domain.StateTaxResult {
	profile, ok := stateProfiles[state]
	if !ok {
		// also accept codes / odd casing from callers
		var found bool
		if profile, found = LookupState(string(state)); !found {
			stc.logger().Debugf("unknown state %q, assuming no state income tax", state)
			return domain.StateTaxResult{Amount: decimal.Zero}
		}
	}
	return stc.EstimateTaxForProfile(income, profile, status)
}

// EstimateTaxForProfile applies the two-tier policy to a resolved profile
func (stc *StateTaxCalculator) EstimateTaxForProfile(income decimal.Decimal, profile domain.StateTaxProfile, status domain.FilingStatus) domain.StateTaxResult {
	if !profile.HasIncomeTax {
		return domain.StateTaxResult{Amount: decimal.Zero}
	}

	if profile.HasBrackets() {
		return domain.StateTaxResult{Amount: progressiveTax(income, stateSchedule(profile, status))}
	}

	if !income.IsPositive() {
		return domain.StateTaxResult{Amount: decimal.Zero, IsEstimate: true}
	}
	stc.logger().Debugf("%s has no bracket table, estimating at %s x %s", profile.Name, profile.FlatRate, stc.EffectiveRateMultiplier)
	return domain.StateTaxResult{
		Amount:     income.Mul(profile.FlatRate).Mul(stc.EffectiveRateMultiplier),
		IsEstimate: true,
	}
}

// stateSchedule picks the married-jointly table for joint filers and the single
// table for everyone else.
func stateSchedule(profile domain.StateTaxProfile, status domain.FilingStatus) []domain.TaxBracket {
	if status == domain.FilingMarriedJointly {
		if b := profile.Brackets[domain.FilingMarriedJointly]; len(b) > 0 {
			return b
		}
	}
	return profile.Brackets[domain.FilingSingle]
}

func (stc *StateTaxCalculator) logger() Logger {
	if stc.Logger == nil {
		return NopLogger{}
	}
	return stc.Logger
}

var defaultState = NewStateTaxCalculator()

// EstimateStateTax estimates state income tax and reports whether the figure
// is an approximation
func EstimateStateTax(income decimal.Decimal, state domain.StateName, status domain.FilingStatus) domain.StateTaxResult {
	return defaultState.EstimateTax(income, state, status)
}
