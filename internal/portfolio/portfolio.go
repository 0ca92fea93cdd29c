package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"fundcli/internal/align"
	"fundcli/internal/analytics"
	"fundcli/internal/regression"
	"fundcli/pkg/contracts/domain"
)

// FundLoader loads one fund series from disk. *dataprocessing.NavLoader
// satisfies it; tests substitute stubs.
type FundLoader interface {
	LoadFund(ctx context.Context, path, name string) (*domain.Series, error)
}

// Portfolio holds named fund series and runs the per-fund analyses.
// Report columns keep first-add order no matter how the concurrent
// computations interleave.
type Portfolio struct {
	funds          map[string]*domain.Series
	order          []string
	loadedPaths    map[string]struct{}
	logger         *slog.Logger
	maxConcurrency int
}

// Option configures a Portfolio
type Option func(*Portfolio)

// WithLogger sets the portfolio logger
func WithLogger(logger *slog.Logger) Option {
	return func(p *Portfolio) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithMaxConcurrency caps the number of funds analyzed in parallel
func WithMaxConcurrency(n int) Option {
	return func(p *Portfolio) {
		if n > 0 {
			p.maxConcurrency = n
		}
	}
}

// New creates an empty portfolio
func New(opts ...Option) *Portfolio {
	p := &Portfolio{
		funds:          make(map[string]*domain.Series),
		loadedPaths:    make(map[string]struct{}),
		logger:         slog.Default(),
		maxConcurrency: 4,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddFund registers a series under name. Re-adding a name overwrites the
// series but keeps its original column position.
func (p *Portfolio) AddFund(name string, series *domain.Series) {
	if _, exists := p.funds[name]; !exists {
		p.order = append(p.order, name)
	}
	p.funds[name] = series
}

// Fill loads every path into the portfolio, naming funds "fund 1",
// "fund 2", ... by running count. A path already loaded (identity is the
// cleaned absolute path) is skipped and noted; a load failure aborts the
// fill.
func (p *Portfolio) Fill(ctx context.Context, loader FundLoader, paths []string) error {
	for _, path := range paths {
		identity, err := filepath.Abs(path)
		if err != nil {
			identity = filepath.Clean(path)
		}
		if _, seen := p.loadedPaths[identity]; seen {
			p.logger.InfoContext(ctx, "fund already added to the portfolio",
				slog.String("path", path))
			continue
		}

		name := fmt.Sprintf("fund %d", len(p.funds)+1)
		series, err := loader.LoadFund(ctx, path, name)
		if err != nil {
			return err
		}
		p.AddFund(name, series)
		p.loadedPaths[identity] = struct{}{}
	}
	return nil
}

// Reporting computes the consolidated statistics report, one 14-value
// column per fund in insertion order. Funds are independent and computed
// concurrently; the first failure cancels the rest and fails the call.
func (p *Portfolio) Reporting(ctx context.Context, rf domain.RiskFreePanel, bench *domain.Series) (*domain.StatsReport, error) {
	columns := make([]domain.FundStats, len(p.order))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrency)
	for i, name := range p.order {
		i, name := i, name
		g.Go(func() error {
			data, err := align.MarketDataset(p.funds[name], rf, bench)
			if err != nil {
				return err
			}
			columns[i] = analytics.NewCalculator(data).Report(name)
			p.logger.DebugContext(ctx, "fund statistics computed",
				slog.String("fund", name),
				slog.String("periodicity", data.Periodicity.String()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.StatsReport{Metrics: domain.MetricNames, Funds: columns}, nil
}

// Analysis bundles the factor-loading report with the detailed per-fund
// regression results, both in insertion order.
type Analysis struct {
	Report      *domain.FactorReport
	Regressions []*regression.Result
}

// FactorialAnalysis regresses every fund on the factor panel matching its
// periodicity, with the same concurrency and all-or-error semantics as
// Reporting.
func (p *Portfolio) FactorialAnalysis(ctx context.Context, factors domain.FactorPanel) (*Analysis, error) {
	loadings := make([]domain.FundLoadings, len(p.order))
	results := make([]*regression.Result, len(p.order))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrency)
	for i, name := range p.order {
		i, name := i, name
		g.Go(func() error {
			data, err := align.FactorDataset(p.funds[name], factors)
			if err != nil {
				return err
			}
			result, err := regression.Fit(name, data)
			if err != nil {
				return err
			}
			results[i] = result
			loadings[i] = result.Loadings
			p.logger.DebugContext(ctx, "factor regression fitted",
				slog.String("fund", name),
				slog.Float64("r_squared", result.R2))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Analysis{
		Report:      &domain.FactorReport{Factors: domain.FactorNames, Funds: loadings},
		Regressions: results,
	}, nil
}

// Funds returns the fund names in insertion order
func (p *Portfolio) Funds() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

// Len returns the number of funds held
func (p *Portfolio) Len() int {
	return len(p.funds)
}

// Fund returns the series registered under name
func (p *Portfolio) Fund(name string) (*domain.Series, bool) {
	s, ok := p.funds[name]
	return s, ok
}
