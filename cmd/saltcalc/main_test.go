package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/saltcap/policy-calculator/internal/config"
	"github.com/saltcap/policy-calculator/internal/domain"
	"github.com/saltcap/policy-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func execute(t *testing.T, args ...string) (string, *observer.ObservedLogs, error) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	a := &app{buildLogger: func(bool) (*zap.Logger, error) { return zap.New(core), nil }}

	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), logs, err
}

func TestSaltCommand_JSON(t *testing.T) {
	out, logs, err := execute(t, "salt", "--agi", "180000", "--status", "mfj", "--state", "IL", "--property-tax", "9000", "--format", "json")
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Households, 1)

	h := report.Households[0]
	assert.Equal(t, domain.StateName("Illinois"), h.Household.State)
	assert.True(t, h.StateTax.IsEstimate)
	assert.True(t, h.SaltBase.Equal(decimal.NewFromInt(16128)), "7128 estimated state tax plus 9000 property tax, got %s", h.SaltBase)
	assert.Equal(t, "BBB ($40k Cap)", h.Scenarios[1].Scenario)

	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 1, logs.FilterMessage("analysed 1 households and 0 loan plans").Len())
}

func TestSaltCommand_Console(t *testing.T) {
	out, _, err := execute(t, "salt", "--name", "Manhattan", "--agi", "550000", "--state", "New York")
	require.NoError(t, err)
	assert.Contains(t, out, "Manhattan: Single, New York, AGI $550,000")
	assert.Contains(t, out, "BBB ($25k Cap)")
}

func TestSaltCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "salt", "--agi", "100000", "--state", "Atlantis")
	assert.ErrorIs(t, err, config.ErrInvalidInput)

	_, _, err = execute(t, "salt", "--agi", "lots", "--state", "TX")
	assert.ErrorContains(t, err, "invalid --agi")

	_, _, err = execute(t, "salt", "--agi", "100000", "--state", "TX", "--status", "widowed")
	assert.Error(t, err)

	_, _, err = execute(t, "salt", "--agi", "100000", "--state", "TX", "--format", "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, _, err = execute(t, "salt", "--state", "TX")
	assert.Error(t, err, "agi is required")
}

func TestLoanCommand(t *testing.T) {
	out, _, err := execute(t, "loan", "--preset", "medical", "--school-type", "private")
	require.NoError(t, err)
	assert.Contains(t, out, "Professional Student, 4 years at $75,600/yr")
	assert.Contains(t, out, "Funding gap of $102,400")
}

func TestLoanCommand_MixedCaseType(t *testing.T) {
	out, _, err := execute(t, "loan", "--type", "Professional", "--years", "3", "--cost", "50000", "--format", "json")
	require.NoError(t, err)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.LoanPlans, 1)
	assert.Equal(t, domain.StudentProfessional, report.LoanPlans[0].Plan.StudentType)
	assert.Equal(t, "Professional Student", report.LoanPlans[0].LimitLabel)

	_, _, err = execute(t, "loan", "--type", "undergraduate", "--years", "3", "--cost", "50000")
	assert.ErrorContains(t, err, "unknown student type")
}

func TestLoanCommand_InterimCSV(t *testing.T) {
	out, _, err := execute(t, "loan", "--type", "graduate", "--years", "6", "--cost", "20000", "--start", "2025-08-25", "--format", "detailed-csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Loan plan,graduate,6,2030-31,20000,0,100000,0,20000,true")

	_, _, err = execute(t, "loan", "--type", "graduate", "--years", "2", "--cost", "20000", "--start", "08/25/2025")
	assert.ErrorContains(t, err, "invalid --start")

	_, _, err = execute(t, "loan", "--type", "graduate", "--years", "2", "--cost", "20000", "--enrollment", "60")
	assert.ErrorIs(t, err, config.ErrInvalidInput)
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	out, _, err := execute(t, "example-config", "--output", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)

	out, logs, err := execute(t, "run", "--config", cfgPath, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Household,AGI,FilingStatus")
	assert.Equal(t, 1, logs.FilterMessage("analysed 5 households and 4 loan plans").Len())

	reportDir := filepath.Join(dir, "reports")
	require.NoError(t, os.Mkdir(reportDir, 0o755))
	out, _, err = execute(t, "run", "--config", cfgPath, "--format", "all", "--output-dir", reportDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	entries, err := os.ReadDir(reportDir)
	require.NoError(t, err)
	assert.Len(t, entries, len(output.AvailableFormatterNames()))

	_, _, err = execute(t, "run", "--config", filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read file")
}

func TestExampleConfigCommand_Stdout(t *testing.T) {
	out, _, err := execute(t, "example-config")
	require.NoError(t, err)

	cfg, err := config.NewInputParser().Parse([]byte(out))
	require.NoError(t, err)
	assert.Len(t, cfg.Households, 5)
	assert.Len(t, cfg.LoanPlans, 4)
}

func TestListingCommands(t *testing.T) {
	out, _, err := execute(t, "states")
	require.NoError(t, err)
	assert.Contains(t, out, "California")
	assert.Contains(t, out, "progressive brackets")
	assert.Contains(t, out, "no income tax")
	assert.Contains(t, out, "flat-rate estimate")

	out, _, err = execute(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "phd-unfunded")
	assert.Contains(t, out, "$42,000")
}
