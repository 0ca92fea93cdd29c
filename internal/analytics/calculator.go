package analytics

import (
	"math"

	"fundcli/internal/align"
	"fundcli/pkg/contracts/domain"
)

// Calculator computes the fourteen performance statistics for one aligned
// fund. Every metric is a pure computation over the aligned columns:
// undefined values surface as NaN or ±Inf, never as errors or panics.
type Calculator struct {
	data        *align.MarketData
	factor      float64
	returns     []float64
	excess      []float64
	benchRet    []float64
	benchExcess []float64
}

// NewCalculator derives the return and excess-return columns once so the
// individual metrics can share them. A return at slice index i sits on
// date index i+1 and pairs with the risk-free rate at that same date.
func NewCalculator(data *align.MarketData) *Calculator {
	c := &Calculator{
		data:   data,
		factor: data.Periodicity.Factor(),
	}
	c.returns = pctChange(data.NAV)
	c.excess = make([]float64, len(c.returns))
	for i := range c.returns {
		c.excess[i] = c.returns[i] - data.RF[i+1]
	}
	c.benchRet = pctChange(data.Benchmark)
	c.benchExcess = make([]float64, len(c.benchRet))
	for i := range c.benchRet {
		c.benchExcess[i] = c.benchRet[i] - data.RF[i+1]
	}
	return c
}

// TotalReturn is NAV[last]/NAV[first] - 1
func (c *Calculator) TotalReturn() float64 {
	nav := c.data.NAV
	if len(nav) == 0 {
		return math.NaN()
	}
	return nav[len(nav)-1]/nav[0] - 1
}

// AnnualizedReturn compounds the total return to a one-year horizon using
// a fractional exponent.
func (c *Calculator) AnnualizedReturn() float64 {
	n := len(c.returns)
	if n == 0 {
		return math.NaN()
	}
	return math.Pow(1+c.TotalReturn(), c.factor/float64(n)) - 1
}

// Volatility is the annualized sample standard deviation of returns
func (c *Calculator) Volatility() float64 {
	return sampleStdDev(c.returns) * math.Sqrt(c.factor)
}

// SharpeRatio divides the annualized excess return by volatility. An
// exactly-zero volatility saturates to ±Inf by the sign of the excess.
func (c *Calculator) SharpeRatio() float64 {
	return c.AnnualizedExcessReturn() / c.Volatility()
}

// TotalExcessReturn compounds the per-period excess returns
func (c *Calculator) TotalExcessReturn() float64 {
	if len(c.excess) == 0 {
		return math.NaN()
	}
	total := 1.0
	for _, e := range c.excess {
		total *= 1 + e
	}
	return total - 1
}

// AnnualizedExcessReturn compounds the total excess return to one year
func (c *Calculator) AnnualizedExcessReturn() float64 {
	n := len(c.excess)
	if n == 0 {
		return math.NaN()
	}
	return math.Pow(1+c.TotalExcessReturn(), c.factor/float64(n)) - 1
}

// DownsideVolatility annualizes the sample deviation of the negative
// excess returns. An empty subset is exactly zero, not NaN: a fund that
// never underperformed the risk-free rate has no downside.
func (c *Calculator) DownsideVolatility() float64 {
	var downside []float64
	for _, e := range c.excess {
		if e < 0 {
			downside = append(downside, e)
		}
	}
	if len(downside) == 0 {
		return 0
	}
	return sampleStdDev(downside) * math.Sqrt(c.factor)
}

// SortinoRatio divides the annualized excess return by the downside
// volatility, with the same ±Inf saturation as the Sharpe ratio.
func (c *Calculator) SortinoRatio() float64 {
	return c.AnnualizedExcessReturn() / c.DownsideVolatility()
}

// MaxDrawdown is the deepest peak-to-trough loss of cumulative wealth
func (c *Calculator) MaxDrawdown() float64 {
	if len(c.returns) == 0 {
		return math.NaN()
	}
	wealth := 1.0
	peak := math.Inf(-1)
	worst := math.Inf(1)
	for _, r := range c.returns {
		wealth *= 1 + r
		if wealth > peak {
			peak = wealth
		}
		if dd := wealth/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

// Beta divides the sample covariance of fund and benchmark excess returns
// by the population variance of the benchmark excess. The divisors differ
// on purpose: covariance is ddof=1, variance ddof=0.
func (c *Calculator) Beta() float64 {
	return sampleCovariance(c.excess, c.benchExcess) / populationVariance(c.benchExcess)
}

// TrackingError annualizes the deviation of fund-minus-benchmark returns
func (c *Calculator) TrackingError() float64 {
	if len(c.benchRet) == 0 || len(c.benchRet) != len(c.returns) {
		return math.NaN()
	}
	diffs := make([]float64, len(c.returns))
	for i := range diffs {
		diffs[i] = c.returns[i] - c.benchRet[i]
	}
	return sampleStdDev(diffs) * math.Sqrt(c.factor)
}

// Alpha is the annualized mean excess return left unexplained by beta
func (c *Calculator) Alpha() float64 {
	return (mean(c.excess) - c.Beta()*mean(c.benchExcess)) * c.factor
}

// BetaUp recomputes beta over the observations where the benchmark excess
// is at or above its full-sample mean.
func (c *Calculator) BetaUp() float64 {
	return c.betaPartition(true)
}

// BetaDown recomputes beta over the observations where the benchmark
// excess is below its full-sample mean.
func (c *Calculator) BetaDown() float64 {
	return c.betaPartition(false)
}

// betaPartition splits the sample at the mean benchmark excess. A
// partition with at most one point has no defined covariance.
func (c *Calculator) betaPartition(up bool) float64 {
	if len(c.benchExcess) == 0 {
		return math.NaN()
	}
	m := mean(c.benchExcess)
	var fund, bench []float64
	for i, b := range c.benchExcess {
		if (up && b >= m) || (!up && b < m) {
			fund = append(fund, c.excess[i])
			bench = append(bench, b)
		}
	}
	if len(bench) <= 1 {
		return math.NaN()
	}
	return sampleCovariance(fund, bench) / populationVariance(bench)
}

// Report computes every metric in domain.MetricNames order
func (c *Calculator) Report(fund string) domain.FundStats {
	return domain.FundStats{
		Fund: fund,
		Values: []float64{
			c.AnnualizedReturn(),
			c.TotalReturn(),
			c.Volatility(),
			c.SharpeRatio(),
			c.SortinoRatio(),
			c.DownsideVolatility(),
			c.TotalExcessReturn(),
			c.AnnualizedExcessReturn(),
			c.Beta(),
			c.TrackingError(),
			c.Alpha(),
			c.BetaUp(),
			c.BetaDown(),
			c.MaxDrawdown(),
		},
	}
}
