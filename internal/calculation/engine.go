package calculation

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/saltcap/policy-calculator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ErrNilConfiguration is returned when Run is given no configuration
var ErrNilConfiguration = errors.New("nil configuration")

// CalculationEngine orchestrates household SALT analysis and loan plan analysis
// for a whole configuration
type CalculationEngine struct {
	Households  *HouseholdCalculator
	Loans       *LoanCapCalculator
	Concurrency int
	Logger      Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Households:  NewHouseholdCalculator(),
		Loans:       NewLoanCapCalculator(),
		Concurrency: runtime.GOMAXPROCS(0),
		Logger:      NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Households.SetLogger(l)
}

func (ce *CalculationEngine) limit(config *domain.Configuration) int {
	if config.Options.Concurrency > 0 {
		return config.Options.Concurrency
	}
	if ce.Concurrency > 0 {
		return ce.Concurrency
	}
	return 1
}

// Run analyses every household and loan plan. Results keep input order
// regardless of completion order. A cancelled context aborts the run.
func (ce *CalculationEngine) Run(ctx context.Context, config *domain.Configuration) (*domain.Report, error) {
	if config == nil {
		return nil, fmt.Errorf("run: %w", ErrNilConfiguration)
	}

	households := make([]domain.HouseholdAnalysis, len(config.Households))
	plans := make([]domain.LoanPlanAnalysis, len(config.LoanPlans))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ce.limit(config))

	for i, in := range config.Households {
		i, in := i, in // per-iteration copies (go < 1.22 loop semantics)
		if in.MarginalRate == nil && config.Options.MarginalRate != nil {
			rate := *config.Options.MarginalRate
			in.MarginalRate = &rate
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			households[i] = ce.Households.Analyze(in)
			ce.Logger.Debugf("household %q: proposed cap worth $%s over current", in.Name, proposedCapDelta(households[i]))
			return nil
		})
	}

	for i, plan := range config.LoanPlans {
		i, plan := i, plan // per-iteration copies (go < 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plans[i] = ce.Loans.Plan(plan)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}
	// errgroup may finish all work before noticing a cancelled parent
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	ce.Logger.Infof("analysed %d households and %d loan plans", len(households), len(plans))

	return &domain.Report{
		ID:          idFunc(),
		GeneratedAt: nowFunc(),
		Households:  households,
		LoanPlans:   plans,
	}, nil
}

// AnalyzeHousehold runs a single household through the engine's calculators
func (ce *CalculationEngine) AnalyzeHousehold(in domain.HouseholdInput) domain.HouseholdAnalysis {
	return ce.Households.Analyze(in)
}

// AnalyzeLoanPlan runs a single loan plan through the engine's calculators
func (ce *CalculationEngine) AnalyzeLoanPlan(plan domain.LoanPlan) domain.LoanPlanAnalysis {
	return ce.Loans.Plan(plan)
}
