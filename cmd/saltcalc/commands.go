package main

import (
	"fmt"
	"time"

	"github.com/saltcap/policy-calculator/internal/calculation"
	"github.com/saltcap/policy-calculator/internal/config"
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/saltcap/policy-calculator/internal/output"
	pkgdecimal "github.com/saltcap/policy-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// decimalFlag parses a numeric flag. Empty values yield nil.
func decimalFlag(flag, value string) (*decimal.Decimal, error) {
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", flag, value, err)
	}
	return &d, nil
}

func newSaltCmd(a *app) *cobra.Command {
	var (
		name, agi, status, state                        string
		propertyTax, stateTax, federalTax, marginalRate string
	)

	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Compare a household's tax under the current, proposed and no SALT cap",
		Example: `  saltcalc salt --agi 550000 --status single --state NY
  saltcalc salt --agi 180000 --status mfj --state IL --property-tax 9000 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, err := domain.ParseFilingStatus(status)
			if err != nil {
				return err
			}
			in := domain.HouseholdInput{Name: name, FilingStatus: fs, State: domain.StateName(state)}

			income, err := decimalFlag("agi", agi)
			if err != nil {
				return err
			}
			if income == nil {
				return fmt.Errorf("--agi is required")
			}
			in.AGI = *income

			property, err := decimalFlag("property-tax", propertyTax)
			if err != nil {
				return err
			}
			if property != nil {
				in.PropertyTax = *property
			}
			if in.StateTaxOverride, err = decimalFlag("state-tax", stateTax); err != nil {
				return err
			}
			if in.FederalTaxOverride, err = decimalFlag("federal-tax", federalTax); err != nil {
				return err
			}
			if in.MarginalRate, err = decimalFlag("marginal-rate", marginalRate); err != nil {
				return err
			}

			return a.analyze(cmd, &domain.Configuration{Households: []domain.HouseholdInput{in}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "Household", "Label for the household")
	cmd.Flags().StringVar(&agi, "agi", "", "Adjusted gross income (required)")
	cmd.Flags().StringVar(&status, "status", "single", "Filing status (single, mfj, mfs, hoh)")
	cmd.Flags().StringVar(&state, "state", "", "State name or postal code (required)")
	cmd.Flags().StringVar(&propertyTax, "property-tax", "", "Annual property tax paid")
	cmd.Flags().StringVar(&stateTax, "state-tax", "", "Known state income tax, replacing the estimate")
	cmd.Flags().StringVar(&federalTax, "federal-tax", "", "Known federal income tax, replacing the bracket calculation")
	cmd.Flags().StringVar(&marginalRate, "marginal-rate", "", "Marginal rate used to value deductions, e.g. 0.32")
	_ = cmd.MarkFlagRequired("agi")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func newLoanCmd(a *app) *cobra.Command {
	var (
		name, studentType, preset, schoolType string
		cost, existing, start                 string
		years, enrollment                     int
	)

	cmd := &cobra.Command{
		Use:   "loan",
		Short: "Project borrowing and the funding gap under the new federal loan limits",
		Example: `  saltcalc loan --preset medical --school-type private
  saltcalc loan --type graduate --years 6 --cost 20000 --start 2025-08-25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plan := domain.LoanPlan{
				Name:                 name,
				Preset:               preset,
				ProgramYears:         years,
				SchoolType:           domain.SchoolType(schoolType),
				EnrollmentPercentage: enrollment,
			}

			if studentType != "" {
				st, err := domain.ParseStudentType(studentType)
				if err != nil {
					return err
				}
				plan.StudentType = st
			}

			annual, err := decimalFlag("cost", cost)
			if err != nil {
				return err
			}
			if annual != nil {
				plan.AnnualCost = *annual
			}
			prior, err := decimalFlag("existing", existing)
			if err != nil {
				return err
			}
			if prior != nil {
				plan.ExistingLoans = *prior
			}
			if start != "" {
				t, err := time.Parse("2006-01-02", start)
				if err != nil {
					return fmt.Errorf("invalid --start %q: expected YYYY-MM-DD", start)
				}
				plan.EnrollmentStart = &t
			}

			return a.analyze(cmd, &domain.Configuration{LoanPlans: []domain.LoanPlan{plan}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "Loan plan", "Label for the plan")
	cmd.Flags().StringVar(&studentType, "type", "", "Student type (graduate, professional, parent)")
	cmd.Flags().StringVar(&preset, "preset", "", "Program preset (see 'saltcalc presets')")
	cmd.Flags().StringVar(&schoolType, "school-type", "", "School type (public-in-state, public-out-of-state, private)")
	cmd.Flags().IntVar(&years, "years", 0, "Program length in years")
	cmd.Flags().StringVar(&cost, "cost", "", "Annual cost of attendance")
	cmd.Flags().StringVar(&existing, "existing", "", "Federal loans already borrowed")
	cmd.Flags().IntVar(&enrollment, "enrollment", 0, "Enrollment percentage (50, 75 or 100)")
	cmd.Flags().StringVar(&start, "start", "", "Program start date, YYYY-MM-DD")
	return cmd
}

func newRunCmd(a *app) *cobra.Command {
	var configFile, outputDir string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Analyze every household and loan plan in a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(configFile)
			if err != nil {
				return err
			}
			if outputDir == "" {
				return a.analyze(cmd, cfg)
			}

			report, err := a.report(cmd, cfg)
			if err != nil {
				return err
			}
			files, err := output.GenerateReport(report, a.format, outputDir)
			if err != nil {
				return err
			}
			for _, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Configuration file (YAML)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write report files here instead of stdout; --format all writes every format")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newStatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List supported states and how their income tax is computed",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-16s %-4s %-8s %s\n", "State", "Code", "Top Rate", "Method")
			for _, s := range calculation.States() {
				method := "flat-rate estimate"
				switch {
				case !s.HasIncomeTax:
					method = "no income tax"
				case s.HasBrackets():
					method = "progressive brackets"
				}
				fmt.Fprintf(w, "%-16s %-4s %-8s %s\n", s.Name, s.Code, pkgdecimal.FormatPercent(s.FlatRate), method)
			}
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List program presets for the loan command",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-14s %-26s %-13s %-6s %s\n", "ID", "Program", "Type", "Years", "Annual Cost")
			for _, p := range calculation.Presets() {
				fmt.Fprintf(w, "%-14s %-26s %-13s %-6d %s\n", p.ID, p.Label, p.StudentType, p.Years, pkgdecimal.FormatUSD(p.AnnualCost))
			}
			fmt.Fprintln(w, "Costs are public in-state; --school-type scales them by 1.5 (out-of-state) or 1.8 (private).")
			return nil
		},
	}
}

func newExampleConfigCmd() *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "example-config",
		Short: "Print an example configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.NewInputParser().CreateExampleConfiguration()
			if outputFile == "" {
				return output.WriteConfiguration(cmd.OutOrStdout(), cfg)
			}
			if err := output.SaveConfiguration(cfg, outputFile); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", outputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
