package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fundcli/internal/errors"
)

func validRequest() AnalysisRequest {
	return AnalysisRequest{
		FundPaths:         []string{"funds/a.xlsx", "funds/b.csv"},
		BenchmarkPath:     "bench.csv",
		DailyFactorPath:   "factors_daily.xlsx",
		MonthlyFactorPath: "factors_monthly.xlsx",
		Universe:          "Global",
		OutDir:            "reports",
	}
}

func TestAnalysisRequest_Valid(t *testing.T) {
	r := validRequest()
	assert.NoError(t, r.Validate())
}

func TestAnalysisRequest_FundsDirInsteadOfPaths(t *testing.T) {
	r := validRequest()
	r.FundPaths = nil
	r.FundsDir = "funds"
	assert.NoError(t, r.Validate())
}

func TestAnalysisRequest_NoBenchmark(t *testing.T) {
	r := validRequest()
	r.BenchmarkPath = ""
	assert.NoError(t, r.Validate())
}

func TestAnalysisRequest_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AnalysisRequest)
		wantMsg string
	}{
		{
			name: "no fund source",
			mutate: func(r *AnalysisRequest) {
				r.FundPaths = nil
				r.FundsDir = ""
			},
			wantMsg: "FundPaths",
		},
		{
			name: "empty fund path entry",
			mutate: func(r *AnalysisRequest) {
				r.FundPaths = []string{"a.csv", ""}
			},
			wantMsg: "FundPaths",
		},
		{
			name: "unknown universe",
			mutate: func(r *AnalysisRequest) {
				r.Universe = "France"
			},
			wantMsg: "Universe",
		},
		{
			name: "missing daily factors",
			mutate: func(r *AnalysisRequest) {
				r.DailyFactorPath = ""
			},
			wantMsg: "DailyFactorPath",
		},
		{
			name: "missing output directory",
			mutate: func(r *AnalysisRequest) {
				r.OutDir = ""
			},
			wantMsg: "OutDir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(&r)

			err := r.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}
