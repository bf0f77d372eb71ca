package calculation

import (
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// FederalTaxCalculator handles federal income tax calculations
type FederalTaxCalculator struct {
	Year                int
	Brackets            map[domain.FilingStatus][]domain.TaxBracket
	DefaultMarginalRate decimal.Decimal
}

// NewFederalTaxCalculator2024 creates a federal tax calculator for the 2024 tables
func NewFederalTaxCalculator2024() *FederalTaxCalculator {
	return &FederalTaxCalculator{
		Year:                2024,
		Brackets:            federalBrackets2024,
		DefaultMarginalRate: DefaultSaltCapConstants().DefaultMarginalRate,
	}
}

// BracketsFor returns a copy of the schedule for status. Unknown statuses use
// the single schedule.
func (ftc *FederalTaxCalculator) BracketsFor(status domain.FilingStatus) []domain.TaxBracket {
	return copyBrackets(ftc.schedule(status))
}

func (ftc *FederalTaxCalculator) schedule(status domain.FilingStatus) []domain.TaxBracket {
	if b, ok := ftc.Brackets[status]; ok {
		return b
	}
	return ftc.Brackets[domain.FilingSingle]
}

// CalculateTax applies the progressive schedule for status to income.
// Income at or below zero owes nothing.
func (ftc *FederalTaxCalculator) CalculateTax(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return progressiveTax(income, ftc.schedule(status))
}

// MarginalRate returns the rate of the bracket containing income, or the
// default marginal rate when no bracket contains it (income <= 0).
func (ftc *FederalTaxCalculator) MarginalRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	for _, b := range ftc.schedule(status) {
		if b.Contains(income) {
			return b.Rate
		}
	}
	return ftc.DefaultMarginalRate
}

var defaultFederal = NewFederalTaxCalculator2024()

// FederalBrackets returns a copy of the 2024 federal schedule for status
func FederalBrackets(status domain.FilingStatus) []domain.TaxBracket {
	return defaultFederal.BracketsFor(status)
}

// CalculateFederalTax computes 2024 federal income tax on income for status
func CalculateFederalTax(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return defaultFederal.CalculateTax(income, status)
}

// GetEstimatedMarginalTaxRate returns the federal marginal rate used to value
// a SALT deduction
func GetEstimatedMarginalTaxRate(income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return defaultFederal.MarginalRate(income, status)
}
