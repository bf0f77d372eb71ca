package output

import (
	"bytes"
	"encoding/csv"

	"github.com/saltcap/policy-calculator/internal/domain"
)

// CSVDetailedExporter provides the loan borrowing schedule, one row per plan
// and program year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string      { return "detailed-csv" }
func (c CSVDetailedExporter) Extension() string { return "loans.csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Plan", "StudentType", "Year", "AcademicYear", "AnnualCost", "MaxBorrowing", "CumulativeBorrowed", "RemainingCapacity", "AnnualGap", "InterimExceptionEligible"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, lp := range report.LoanPlans {
		for _, yr := range lp.Result.YearBreakdown {
			row := []string{
				lp.Plan.Name,
				string(lp.Plan.StudentType),
				intToString(yr.Year),
				yr.AcademicYear,
				plain(yr.AnnualCost),
				plain(yr.MaxBorrowing),
				plain(yr.CumulativeBorrowed),
				plain(yr.RemainingCapacity),
				plain(yr.AnnualGap),
				boolToString(lp.Result.InterimExceptionEligible),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
