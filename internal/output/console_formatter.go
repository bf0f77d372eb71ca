package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/saltcap/policy-calculator/internal/calculation"
	"github.com/saltcap/policy-calculator/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	headingStyle = lipgloss.NewStyle().Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
)

// ConsoleFormatter renders a human-readable report for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, titleStyle.Render("SALT CAP AND STUDENT LOAN POLICY ANALYSIS"))
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintln(&buf, mutedStyle.Render(fmt.Sprintf("Report %s generated %s", report.ID, report.GeneratedAt.Format("2006-01-02 15:04 MST"))))
	}
	fmt.Fprintln(&buf)

	for _, h := range report.Households {
		writeHousehold(&buf, h)
	}
	if len(report.Households) > 1 {
		writeCapImpact(&buf, AnalyzeCapImpact(report))
	}

	for _, lp := range report.LoanPlans {
		writeLoanPlan(&buf, lp)
	}

	fmt.Fprintln(&buf, headingStyle.Render("KEY ASSUMPTIONS"))
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeHousehold(buf *bytes.Buffer, h domain.HouseholdAnalysis) {
	name := h.Household.Name
	if name == "" {
		name = "Household"
	}
	fmt.Fprintln(buf, headingStyle.Render(fmt.Sprintf("%s: %s, %s, AGI %s", name,
		h.Household.FilingStatus.Label(), h.Household.State, FormatCurrency(h.Household.AGI))))
	fmt.Fprintf(buf, "Federal tax %s | State tax %s | Property tax %s | Marginal rate %s\n",
		FormatCurrency(h.FederalTax), FormatCurrency(h.StateTax.Amount),
		FormatCurrency(h.Household.PropertyTax), FormatPercentage(h.MarginalRate))
	if h.StateTax.IsEstimate {
		fmt.Fprintln(buf, warningStyle.Render(fmt.Sprintf("! State tax for %s is an estimate (flat rate approximation)", h.Household.State)))
	}

	rows := make([][]string, 0, len(h.Scenarios))
	for _, sc := range h.Scenarios {
		rows = append(rows, []string{sc.Scenario, FormatCurrency(sc.SaltDeduction), FormatCurrency(sc.TaxSavings), FormatCurrency(sc.TotalTax)})
	}
	buf.WriteString(renderTable([]string{"Scenario", "SALT Deduction", "Tax Savings", "Total Tax"}, rows))
	fmt.Fprintln(buf)
}

func writeCapImpact(buf *bytes.Buffer, impacts []CapImpact) {
	fmt.Fprintln(buf, headingStyle.Render("PROPOSED CAP IMPACT"))
	rows := make([][]string, 0, len(impacts))
	for _, im := range impacts {
		rows = append(rows, []string{im.Household, string(im.Phase), FormatCurrency(im.ProposedSavings), im.PercentageChange.StringFixed(2) + "%", FormatCurrency(im.NoCapSavings)})
	}
	buf.WriteString(renderTable([]string{"Household", "Phase", "Saved vs Current", "Change", "Saved with No Cap"}, rows))
	fmt.Fprintln(buf)
}

func writeLoanPlan(buf *bytes.Buffer, lp domain.LoanPlanAnalysis) {
	r := lp.Result
	name := lp.Plan.Name
	if name == "" {
		name = "Loan plan"
	}
	fmt.Fprintln(buf, headingStyle.Render(fmt.Sprintf("%s: %s, %d years at %s/yr", name, lp.LimitLabel, lp.Plan.ProgramYears, FormatCurrency(lp.Plan.AnnualCost))))
	fmt.Fprintf(buf, "Annual limit %s | Aggregate limit %s | Enrollment %d%%\n",
		FormatCurrency(r.AnnualLimit), FormatCurrency(r.AggregateLimit), lp.Plan.EnrollmentPercentage)
	if preset, ok := presetNote(lp.Plan.Preset); ok {
		fmt.Fprintln(buf, mutedStyle.Render(preset))
	}
	if r.InterimExceptionEligible {
		fmt.Fprintln(buf, warningStyle.Render("! Enrolled before July 1, 2026: prior limits may continue under the interim exception"))
	}

	rows := make([][]string, 0, len(r.YearBreakdown))
	for _, yr := range r.YearBreakdown {
		label := intToString(yr.Year)
		if yr.AcademicYear != "" {
			label += " (" + yr.AcademicYear + ")"
		}
		rows = append(rows, []string{label, FormatCurrency(yr.AnnualCost), FormatCurrency(yr.MaxBorrowing), FormatCurrency(yr.CumulativeBorrowed), FormatCurrency(yr.RemainingCapacity), FormatCurrency(yr.AnnualGap)})
	}
	buf.WriteString(renderTable([]string{"Year", "Cost", "Max Borrowing", "Cumulative", "Remaining", "Gap"}, rows))

	comparison := make([][]string, 0, len(r.Comparison))
	for _, sc := range r.Comparison {
		comparison = append(comparison, []string{sc.Scenario, FormatCurrency(sc.LoanCapacity), FormatCurrency(sc.ProgramCost), FormatCurrency(sc.FundingGap)})
	}
	buf.WriteString(renderTable([]string{"System", "Loan Capacity", "Program Cost", "Funding Gap"}, comparison))

	if r.FundingGap.IsPositive() {
		fmt.Fprintln(buf, warningStyle.Render(fmt.Sprintf("! Funding gap of %s must come from savings, aid or private loans", FormatCurrency(r.FundingGap))))
	}
	fmt.Fprintln(buf)
}

func presetNote(id string) (string, bool) {
	preset, ok := calculation.PresetByID(id)
	if !ok {
		return "", false
	}
	if preset.IsFunded {
		return fmt.Sprintf("Preset: %s. %s", preset.Label, preset.FundedNote), true
	}
	return "Preset: " + preset.Label, true
}

// renderTable lays out rows in padded columns separated by "|"
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// padding is part of the rendered width
	for i := range widths {
		widths[i] += 2
	}

	var sb strings.Builder
	writeRow := func(cells []string, style lipgloss.Style) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(cells)-1 {
				sb.WriteString(mutedStyle.Render("|"))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers, cellStyle.Bold(true))
	total := len(headers) - 1
	for _, w := range widths {
		total += w
	}
	sb.WriteString(mutedStyle.Render(strings.Repeat("-", total)) + "\n")
	for _, row := range rows {
		writeRow(row, cellStyle)
	}
	return sb.String()
}
