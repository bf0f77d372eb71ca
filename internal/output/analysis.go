package output

import (
	"sort"

	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CapImpact summarizes what the proposed cap is worth to one household
// compared with the current cap.
type CapImpact struct {
	Household        string
	Phase            domain.CapPhase
	ProposedSavings  decimal.Decimal // current total tax - proposed total tax
	NoCapSavings     decimal.Decimal // current total tax - uncapped total tax
	PercentageChange decimal.Decimal // ProposedSavings as a share of current total tax, in percent
}

// AnalyzeCapImpact ranks households by how much the proposed cap lowers their
// total tax, largest first. Ties keep report order.
// Extracted from embedded console logic for testability.
func AnalyzeCapImpact(report *domain.Report) []CapImpact {
	impacts := make([]CapImpact, 0, len(report.Households))
	for _, h := range report.Households {
		current := h.Scenarios[0].TotalTax
		proposed := current.Sub(h.Scenarios[1].TotalTax)
		pct := decimal.Zero
		if !current.IsZero() {
			pct = proposed.Div(current).Mul(decimal.NewFromInt(100)).Round(2)
		}
		impacts = append(impacts, CapImpact{
			Household:        h.Household.Name,
			Phase:            h.CapPhase,
			ProposedSavings:  proposed,
			NoCapSavings:     current.Sub(h.Scenarios[2].TotalTax),
			PercentageChange: pct,
		})
	}
	sort.SliceStable(impacts, func(i, j int) bool {
		return impacts[i].ProposedSavings.GreaterThan(impacts[j].ProposedSavings)
	})
	return impacts
}

// LoanShortfall is the total funding gap across all loan plans in a report.
func LoanShortfall(report *domain.Report) decimal.Decimal {
	total := decimal.Zero
	for _, lp := range report.LoanPlans {
		total = total.Add(lp.Result.FundingGap)
	}
	return total
}
