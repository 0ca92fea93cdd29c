package align

import (
	"fmt"
	"time"

	apperrors "fundcli/internal/errors"
	"fundcli/pkg/contracts/domain"
)

// MarketData is a fund series inner-joined with the risk-free rate and an
// optional benchmark on one date grid. The slices are parallel and sorted
// ascending by date. Benchmark is nil when no benchmark was supplied.
type MarketData struct {
	Dates       []time.Time
	NAV         []float64
	RF          []float64
	Benchmark   []float64
	Periodicity domain.Periodicity
}

// FactorData is a fund series inner-joined with factor rows, the input to
// the regression step.
type FactorData struct {
	Dates       []time.Time
	NAV         []float64
	Rows        []domain.FactorRow
	Periodicity domain.Periodicity
}

// InferPeriodicity classifies a series as daily or monthly from the gap
// between its second and third observations. The first interval is
// skipped: exports often open on an off-grid date.
func InferPeriodicity(s *domain.Series) (domain.Periodicity, error) {
	if s.Len() < 3 {
		return "", apperrors.NewPeriodicityError(fmt.Sprintf(
			"series %q has %d observations, need at least 3 to infer periodicity", s.Name, s.Len()))
	}
	dates := s.Dates()
	days := dates[2].Sub(dates[1]).Hours() / 24

	switch {
	case days < 7:
		return domain.Daily, nil
	case days > 27 && days <= 31:
		return domain.Monthly, nil
	default:
		return "", apperrors.NewPeriodicityError(fmt.Sprintf(
			"series %q: %.0f-day spacing matches neither daily nor monthly data", s.Name, days))
	}
}

// MarketDataset aligns a fund with the risk-free panel and an optional
// benchmark. The join is an inner join on exact dates; an empty result is
// an error because every statistic downstream would be undefined.
func MarketDataset(fund *domain.Series, rf domain.RiskFreePanel, bench *domain.Series) (*MarketData, error) {
	periodicity, err := InferPeriodicity(fund)
	if err != nil {
		return nil, err
	}

	rfSeries, ok := rf[periodicity]
	if !ok || rfSeries == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("risk-free series for %s periodicity", periodicity))
	}

	rfByDate := indexByDate(rfSeries)
	var benchByDate map[int64]float64
	if bench != nil {
		benchByDate = indexByDate(bench)
	}

	data := &MarketData{Periodicity: periodicity}
	for _, obs := range fund.Observations {
		key := obs.Date.Unix()
		rfValue, ok := rfByDate[key]
		if !ok {
			continue
		}
		if bench != nil {
			benchValue, ok := benchByDate[key]
			if !ok {
				continue
			}
			data.Benchmark = append(data.Benchmark, benchValue)
		}
		data.Dates = append(data.Dates, obs.Date)
		data.NAV = append(data.NAV, obs.Value)
		data.RF = append(data.RF, rfValue)
	}

	if len(data.Dates) == 0 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf(
			"fund %q shares no dates with the %s risk-free series", fund.Name, periodicity))
	}
	return data, nil
}

// FactorDataset aligns a fund with the factor panel matching its
// periodicity.
func FactorDataset(fund *domain.Series, panel domain.FactorPanel) (*FactorData, error) {
	periodicity, err := InferPeriodicity(fund)
	if err != nil {
		return nil, err
	}

	table, ok := panel[periodicity]
	if !ok || table == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("factor table for %s periodicity", periodicity))
	}

	rowByDate := make(map[int64]domain.FactorRow, table.Len())
	for _, row := range table.Rows {
		rowByDate[row.Date.Unix()] = row
	}

	data := &FactorData{Periodicity: periodicity}
	for _, obs := range fund.Observations {
		row, ok := rowByDate[obs.Date.Unix()]
		if !ok {
			continue
		}
		data.Dates = append(data.Dates, obs.Date)
		data.NAV = append(data.NAV, obs.Value)
		data.Rows = append(data.Rows, row)
	}

	if len(data.Dates) == 0 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf(
			"fund %q shares no dates with the %s factor table", fund.Name, periodicity))
	}
	return data, nil
}

// indexByDate builds a date-keyed lookup. Fund observations are already
// unique by date, so insertion order never matters.
func indexByDate(s *domain.Series) map[int64]float64 {
	index := make(map[int64]float64, s.Len())
	for _, obs := range s.Observations {
		index[obs.Date.Unix()] = obs.Value
	}
	return index
}
