package exporter

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundcli/internal/config"
	"fundcli/internal/regression"
	"fundcli/pkg/contracts/domain"
)

func newTestExporter(t *testing.T) (*ReportExporter, string) {
	t.Helper()
	reportsDir := filepath.Join(t.TempDir(), "reports")
	exp := NewReportExporter(&config.Paths{ReportsDir: reportsDir}, quietLogger())
	return exp, reportsDir
}

// statsFixture builds a two-fund report where the second fund carries
// every non-finite value the formatter has to handle.
func statsFixture() *domain.StatsReport {
	alpha := make([]float64, len(domain.MetricNames))
	beta := make([]float64, len(domain.MetricNames))
	for i := range alpha {
		alpha[i] = 0.1 * float64(i+1)
		beta[i] = -0.01 * float64(i+1)
	}
	beta[2] = math.NaN()
	beta[3] = math.Inf(1)
	beta[4] = math.Inf(-1)

	return &domain.StatsReport{
		Metrics: domain.MetricNames,
		Funds: []domain.FundStats{
			{Fund: "alpha fund", Values: alpha},
			{Fund: "beta fund", Values: beta},
		},
	}
}

func summaryFixture(fund string) *regression.Result {
	six := func(v float64) []float64 {
		out := make([]float64, 6)
		for i := range out {
			out[i] = v
		}
		return out
	}
	return &regression.Result{
		Fund:      fund,
		NObs:      42,
		Intercept: 0.0004,
		Loadings: domain.FundLoadings{
			Fund:     fund,
			Loadings: []float64{0.9, 0.35, -0.2, 0.15, -0.05},
		},
		StdErrors: six(0.01),
		TStats:    six(2.5),
		PValues:   six(0.02),
		R2:        0.87,
		AdjR2:     0.85,
	}
}

func TestReportExporter_WriteStatsReport(t *testing.T) {
	exp, reportsDir := newTestExporter(t)

	require.NoError(t, exp.WriteStatsReport("statistics.csv", statsFixture()))

	rows := readCSVFile(t, filepath.Join(reportsDir, "statistics.csv"))
	require.Len(t, rows, len(domain.MetricNames)+1)
	assert.Equal(t, []string{"Metric", "alpha fund", "beta fund"}, rows[0])
	assert.Equal(t, domain.MetricNames[0], rows[1][0])
	assert.Equal(t, "0.100000", rows[1][1])
	assert.Equal(t, "", rows[3][2], "NaN cells render empty")
	assert.Equal(t, "+Inf", rows[4][2])
	assert.Equal(t, "-Inf", rows[5][2])
}

func TestReportExporter_WriteFactorReport(t *testing.T) {
	exp, reportsDir := newTestExporter(t)

	report := &domain.FactorReport{
		Factors: domain.FactorNames,
		Funds: []domain.FundLoadings{
			{Fund: "alpha fund", Loadings: []float64{0.9, 0.35, -0.2, 0.15, -0.05}},
		},
	}
	require.NoError(t, exp.WriteFactorReport("factor_loadings.csv", report))

	rows := readCSVFile(t, filepath.Join(reportsDir, "factor_loadings.csv"))
	require.Len(t, rows, len(domain.FactorNames)+1)
	assert.Equal(t, []string{"Factor", "alpha fund"}, rows[0])
	assert.Equal(t, "MKT", rows[1][0])
	assert.Equal(t, "0.900000", rows[1][1])
	assert.Equal(t, "UMD", rows[5][0])
	assert.Equal(t, "-0.050000", rows[5][1])
}

func TestReportExporter_WriteSummaries(t *testing.T) {
	exp, reportsDir := newTestExporter(t)

	results := []*regression.Result{
		summaryFixture("alpha fund"),
		summaryFixture("beta fund"),
	}
	require.NoError(t, exp.WriteSummaries("regressions.txt", results))

	data, err := os.ReadFile(filepath.Join(reportsDir, "regressions.txt"))
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "OLS regression: alpha fund")
	assert.Contains(t, text, "OLS regression: beta fund")
	assert.Contains(t, text, "R-squared")
	assert.Contains(t, text, "const")
	assert.Less(t,
		len("OLS regression: alpha fund"),
		len(text),
		"both summaries should be concatenated")
}

func TestReportExporter_WriteReportJSON(t *testing.T) {
	exp, reportsDir := newTestExporter(t)

	require.NoError(t, exp.WriteReportJSON("report.json", map[string]string{"universe": "Global"}))

	data, err := os.ReadFile(filepath.Join(reportsDir, "report.json"))
	require.NoError(t, err)

	var decoded struct {
		GeneratedAt time.Time         `json:"generated_at"`
		Report      map[string]string `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.WithinDuration(t, time.Now().UTC(), decoded.GeneratedAt, time.Minute)
	assert.Equal(t, "Global", decoded.Report["universe"])
}

func TestReportExporter_WriteStatsReportJSON(t *testing.T) {
	exp, reportsDir := newTestExporter(t)

	require.NoError(t, exp.WriteStatsReportJSON("statistics.json", statsFixture()))

	data, err := os.ReadFile(filepath.Join(reportsDir, "statistics.json"))
	require.NoError(t, err)

	var decoded struct {
		GeneratedAt time.Time `json:"generated_at"`
		Report      struct {
			Metrics []string `json:"metrics"`
			Funds   []struct {
				Fund   string     `json:"fund"`
				Values []*float64 `json:"values"`
			} `json:"funds"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, domain.MetricNames, decoded.Report.Metrics)
	require.Len(t, decoded.Report.Funds, 2)

	beta := decoded.Report.Funds[1]
	assert.Equal(t, "beta fund", beta.Fund)
	require.Len(t, beta.Values, len(domain.MetricNames))
	require.NotNil(t, beta.Values[0])
	assert.InDelta(t, -0.01, *beta.Values[0], 1e-12)
	assert.Nil(t, beta.Values[2], "NaN has no JSON encoding")
	assert.Nil(t, beta.Values[3])
	assert.Nil(t, beta.Values[4])
}
