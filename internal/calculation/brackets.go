package calculation

import (
	"fmt"

	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

func bracket(min, max int64, rate float64) domain.TaxBracket {
	return domain.TaxBracket{Min: decimal.NewFromInt(min), Max: decimal.NewFromInt(max), Rate: decimal.NewFromFloat(rate)}
}

func topBracket(min int64, rate float64) domain.TaxBracket {
	return domain.TaxBracket{Min: decimal.NewFromInt(min), Rate: decimal.NewFromFloat(rate), Unbounded: true}
}

// federalBrackets2024 are the 2024 federal schedules by filing status
var federalBrackets2024 = map[domain.FilingStatus][]domain.TaxBracket{
	domain.FilingSingle: {
		bracket(0, 11000, 0.10),
		bracket(11000, 44725, 0.12),
		bracket(44725, 95375, 0.22),
		bracket(95375, 182050, 0.24),
		bracket(182050, 231250, 0.32),
		bracket(231250, 578125, 0.35),
		topBracket(578125, 0.37),
	},
	domain.FilingMarriedJointly: {
		bracket(0, 22000, 0.10),
		bracket(22000, 89450, 0.12),
		bracket(89450, 190750, 0.22),
		bracket(190750, 364200, 0.24),
		bracket(364200, 462500, 0.32),
		bracket(462500, 693750, 0.35),
		topBracket(693750, 0.37),
	},
	domain.FilingMarriedSeparately: {
		bracket(0, 11000, 0.10),
		bracket(11000, 44725, 0.12),
		bracket(44725, 95375, 0.22),
		bracket(95375, 182100, 0.24),
		bracket(182100, 231250, 0.32),
		bracket(231250, 346875, 0.35),
		topBracket(346875, 0.37),
	},
	domain.FilingHeadOfHousehold: {
		bracket(0, 15700, 0.10),
		bracket(15700, 59850, 0.12),
		bracket(59850, 95350, 0.22),
		bracket(95350, 182050, 0.24),
		bracket(182050, 231250, 0.32),
		bracket(231250, 578100, 0.35),
		topBracket(578100, 0.37),
	},
}

// copyBrackets returns a copy so callers can never mutate the static tables
func copyBrackets(src []domain.TaxBracket) []domain.TaxBracket {
	if src == nil {
		return nil
	}
	out := make([]domain.TaxBracket, len(src))
	copy(out, src)
	return out
}

// progressiveTax applies a marginal schedule: each bracket taxes only the part
// of income above its Min, and accrues only while income > Min.
func progressiveTax(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Min) {
			break
		}
		upper := income
		if !b.Unbounded {
			upper = decimal.Min(income, b.Max)
		}
		total = total.Add(upper.Sub(b.Min).Mul(b.Rate))
	}
	return total
}

// ValidateBrackets checks that a schedule starts at zero, is contiguous and
// ascending, and ends with an unbounded bracket.
func ValidateBrackets(brackets []domain.TaxBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("bracket schedule is empty")
	}
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, got %s", brackets[0].Min)
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return fmt.Errorf("bracket %d has negative rate %s", i, b.Rate)
		}
		last := i == len(brackets)-1
		if b.Unbounded != last {
			if last {
				return fmt.Errorf("last bracket must be unbounded")
			}
			return fmt.Errorf("bracket %d is unbounded but not last", i)
		}
		if last {
			break
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("bracket %d max %s must exceed min %s", i, b.Max, b.Min)
		}
		if next := brackets[i+1]; !next.Min.Equal(b.Max) {
			return fmt.Errorf("bracket %d ends at %s but bracket %d starts at %s", i, b.Max, i+1, next.Min)
		}
	}
	return nil
}
