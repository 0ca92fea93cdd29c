// Package analytics computes fund performance statistics over aligned
// market data: returns, volatilities, risk-adjusted ratios, benchmark
// regressors and drawdown. Metrics never fail; inputs too short or too
// degenerate to define a value produce NaN (or ±Inf where a zero
// denominator has a meaningful sign).
//
// Scalar moments come from github.com/montanaflynn/stats with divisor
// conventions pinned per metric: standard deviations and covariances are
// sample (ddof=1), the variance in the beta denominator is population
// (ddof=0).
package analytics
