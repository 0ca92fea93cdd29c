package domain

// MetricNames lists the statistics report rows in canonical order. Every
// fund column carries exactly these values, in this order.
var MetricNames = []string{
	"Annualized Return",
	"Total Return",
	"Volatility",
	"Sharpe Ratio",
	"Sortino Ratio",
	"Downside Volatility",
	"Total Excess Return",
	"Annualized Excess Return",
	"Beta",
	"Tracking Error",
	"Alpha",
	"Beta Up",
	"Beta Down",
	"Maximum Drawdown",
}

// FundStats represents the statistics column for one fund
type FundStats struct {
	Fund   string    `json:"fund"`
	Values []float64 `json:"values"`
}

// StatsReport represents the consolidated statistics report: one row per
// metric, one column per fund, fund columns in portfolio insertion order
type StatsReport struct {
	Metrics []string    `json:"metrics"`
	Funds   []FundStats `json:"funds"`
}

// Column returns the metric values for the named fund
func (r *StatsReport) Column(fund string) ([]float64, bool) {
	for _, fs := range r.Funds {
		if fs.Fund == fund {
			return fs.Values, true
		}
	}
	return nil, false
}

// FundLoadings represents the factor loadings column for one fund, in
// FactorNames order, excluding the regression intercept
type FundLoadings struct {
	Fund     string    `json:"fund"`
	Loadings []float64 `json:"loadings"`
}

// FactorReport represents the consolidated factor-loading report: one row
// per factor, one column per fund
type FactorReport struct {
	Factors []string       `json:"factors"`
	Funds   []FundLoadings `json:"funds"`
}

// Column returns the loadings for the named fund
func (r *FactorReport) Column(fund string) ([]float64, bool) {
	for _, fl := range r.Funds {
		if fl.Fund == fund {
			return fl.Loadings, true
		}
	}
	return nil, false
}
