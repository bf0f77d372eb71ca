package output

import (
	"bytes"
	"encoding/csv"

	"github.com/saltcap/policy-calculator/internal/domain"
)

// CSVSummarizer implements the SALT summary CSV output (one row per household
// and scenario, in report order).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string      { return "csv" }
func (c CSVSummarizer) Extension() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Household", "AGI", "FilingStatus", "State", "FederalTax", "StateTax", "StateTaxBasis", "MarginalRate", "ProposedCap", "Scenario", "SaltDeduction", "TaxSavings", "TotalTax"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, h := range report.Households {
		for _, sc := range h.Scenarios {
			row := []string{
				h.Household.Name,
				plain(h.Household.AGI),
				string(h.Household.FilingStatus),
				string(h.Household.State),
				plain(h.FederalTax),
				plain(h.StateTax.Amount),
				string(h.StateTax.Basis()),
				h.MarginalRate.String(),
				plain(h.ProposedCap),
				sc.Scenario,
				plain(sc.SaltDeduction),
				plain(sc.TaxSavings),
				plain(sc.TotalTax),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
