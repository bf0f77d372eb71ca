package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/saltcap/policy-calculator/internal/calculation"
	"github.com/saltcap/policy-calculator/internal/config"
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/saltcap/policy-calculator/internal/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries the global flags and the logger shared by every command
type app struct {
	format  string
	verbose bool

	logger      *zap.Logger
	buildLogger func(verbose bool) (*zap.Logger, error)
}

func productionLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func newRootCmd(a *app) *cobra.Command {
	if a.buildLogger == nil {
		a.buildLogger = productionLogger
	}

	rootCmd := &cobra.Command{
		Use:   "saltcalc",
		Short: "SALT cap and student loan cap policy calculator",
		Long: `saltcalc models two provisions of the 2025 budget reconciliation law.

It compares household tax under the current $10,000 SALT cap, the proposed
$40,000 cap with its income phase-down, and no cap at all. It also projects
graduate and professional borrowing under the new federal loan limits and
reports the funding gap each program leaves.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.buildLogger(a.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.format, "format", "f", "console", "Output format (console, csv, detailed-csv, json, yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newSaltCmd(a))
	rootCmd.AddCommand(newLoanCmd(a))
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newStatesCmd())
	rootCmd.AddCommand(newPresetsCmd())
	rootCmd.AddCommand(newExampleConfigCmd())
	return rootCmd
}

// report validates cfg and runs the engine over it
func (a *app) report(cmd *cobra.Command, cfg *domain.Configuration) (*domain.Report, error) {
	if err := config.NewInputParser().ValidateConfiguration(cfg); err != nil {
		return nil, err
	}

	engine := calculation.NewCalculationEngine()
	engine.SetLogger(a.logger.Sugar())
	return engine.Run(cmd.Context(), cfg)
}

// analyze runs cfg and renders the report to the command's output
func (a *app) analyze(cmd *cobra.Command, cfg *domain.Configuration) error {
	report, err := a.report(cmd, cfg)
	if err != nil {
		return err
	}
	return output.Render(cmd.OutOrStdout(), report, a.format)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
