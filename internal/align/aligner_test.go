package align

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fundcli/internal/errors"
	"fundcli/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func seriesAt(name string, dates []time.Time, values []float64) *domain.Series {
	observations := make([]domain.Observation, len(dates))
	for i := range dates {
		observations[i] = domain.Observation{Date: dates[i], Value: values[i]}
	}
	return domain.NewSeries(name, observations)
}

func dailySeries(name string, startDay int, values ...float64) *domain.Series {
	dates := make([]time.Time, len(values))
	for i := range values {
		dates[i] = day(startDay + i)
	}
	return seriesAt(name, dates, values)
}

func TestInferPeriodicity(t *testing.T) {
	monthEnds := []time.Time{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		series  *domain.Series
		want    domain.Periodicity
		wantErr bool
	}{
		{
			name:   "daily spacing",
			series: dailySeries("f", 1, 100, 101, 102, 103),
			want:   domain.Daily,
		},
		{
			name:   "monthly spacing",
			series: seriesAt("f", monthEnds, []float64{100, 101, 102}),
			want:   domain.Monthly,
		},
		{
			name: "first interval ignored",
			series: seriesAt("f",
				[]time.Time{day(1), day(20), day(21), day(22)},
				[]float64{100, 101, 102, 103}),
			want: domain.Daily,
		},
		{
			name: "weekly spacing rejected",
			series: seriesAt("f",
				[]time.Time{day(1), day(8), day(15), day(22)},
				[]float64{100, 101, 102, 103}),
			wantErr: true,
		},
		{
			name:    "too short",
			series:  dailySeries("f", 1, 100, 101),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := InferPeriodicity(tt.series)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypePeriodicity))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarketDataset(t *testing.T) {
	fund := dailySeries("fund 1", 1, 100, 101, 102, 103, 104)
	rf := domain.RiskFreePanel{
		domain.Daily: dailySeries("RF", 2, 0.0001, 0.0002, 0.0003, 0.0004),
	}
	bench := dailySeries("bench", 2, 50, 51, 52)

	data, err := MarketDataset(fund, rf, bench)
	require.NoError(t, err)

	// fund days 1..5, RF days 2..5, bench days 2..4
	assert.Equal(t, []time.Time{day(2), day(3), day(4)}, data.Dates)
	assert.Equal(t, []float64{101, 102, 103}, data.NAV)
	assert.Equal(t, []float64{0.0001, 0.0002, 0.0003}, data.RF)
	assert.Equal(t, []float64{50, 51, 52}, data.Benchmark)
	assert.Equal(t, domain.Daily, data.Periodicity)
}

func TestMarketDataset_NoBenchmark(t *testing.T) {
	fund := dailySeries("fund 1", 1, 100, 101, 102, 103)
	rf := domain.RiskFreePanel{
		domain.Daily: dailySeries("RF", 1, 0.0001, 0.0002, 0.0003, 0.0004),
	}

	data, err := MarketDataset(fund, rf, nil)
	require.NoError(t, err)

	assert.Len(t, data.NAV, 4)
	assert.Nil(t, data.Benchmark)
}

func TestMarketDataset_MissingPanelKey(t *testing.T) {
	monthEnds := []time.Time{
		time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	fund := seriesAt("monthly fund", monthEnds, []float64{100, 101, 102})
	rf := domain.RiskFreePanel{
		domain.Daily: dailySeries("RF", 1, 0.0001, 0.0002, 0.0003),
	}

	_, err := MarketDataset(fund, rf, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.Contains(t, err.Error(), "Monthly")
}

func TestMarketDataset_EmptyJoin(t *testing.T) {
	fund := dailySeries("fund 1", 1, 100, 101, 102)
	rf := domain.RiskFreePanel{
		domain.Daily: dailySeries("RF", 10, 0.0001, 0.0002, 0.0003),
	}

	_, err := MarketDataset(fund, rf, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestMarketDataset_Idempotent(t *testing.T) {
	fund := dailySeries("fund 1", 1, 100, 101, 102, 103, 104)
	rf := domain.RiskFreePanel{
		domain.Daily: dailySeries("RF", 1, 0.0001, 0.0002, 0.0003, 0.0004, 0.0005),
	}

	first, err := MarketDataset(fund, rf, nil)
	require.NoError(t, err)

	again, err := MarketDataset(seriesAt(fund.Name, first.Dates, first.NAV), rf, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Dates, again.Dates)
	assert.Equal(t, first.NAV, again.NAV)
	assert.Equal(t, first.RF, again.RF)
}

func TestFactorDataset(t *testing.T) {
	fund := dailySeries("fund 1", 1, 100, 101, 102, 103)
	rows := make([]domain.FactorRow, 3)
	for i := range rows {
		rows[i] = domain.FactorRow{
			Date: day(i + 2),
			MKT:  float64(i) * 0.01,
			UMD:  float64(i) * 0.001,
		}
	}
	panel := domain.FactorPanel{
		domain.Daily: &domain.FactorTable{Universe: "Global", Rows: rows},
	}

	data, err := FactorDataset(fund, panel)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day(2), day(3), day(4)}, data.Dates)
	assert.Equal(t, []float64{101, 102, 103}, data.NAV)
	require.Len(t, data.Rows, 3)
	for i, row := range data.Rows {
		assert.Equal(t, data.Dates[i], row.Date)
	}
	assert.InDelta(t, 0.02, data.Rows[2].MKT, 1e-12)
}

func TestFactorDataset_MissingPanelKey(t *testing.T) {
	fund := dailySeries("fund 1", 1, 100, 101, 102)

	_, err := FactorDataset(fund, domain.FactorPanel{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}
