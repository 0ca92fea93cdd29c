package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "fundcli/internal/errors"
	"fundcli/pkg/contracts/domain"
)

// factorSheets are the workbook sheets holding one factor each, in
// domain.FactorNames order.
var factorSheets = []string{"MKT", "SMB", "HML FF", "HML Devil", "UMD"}

// riskFreeSheet holds the risk-free rate, dates in the first column and
// rates in the second.
const riskFreeSheet = "RF"

// FactorLoader reads AQR-style factor workbooks: one sheet per factor,
// universes as columns, plus an RF sheet. The same workbook layout exists
// at daily and monthly periodicity.
type FactorLoader struct {
	logger *slog.Logger
}

// NewFactorLoader creates a factor loader with the given logger
func NewFactorLoader(logger *slog.Logger) *FactorLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FactorLoader{logger: logger}
}

// LoadFactorTable loads the five factor columns for one universe from the
// workbook at path. The date grid is taken from the first factor sheet;
// rows with any missing cell are dropped before parsing.
func (l *FactorLoader) LoadFactorTable(ctx context.Context, path, universe string) (*domain.FactorTable, error) {
	if !domain.IsValidUniverse(universe) {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadFactorTable",
			fmt.Errorf("unknown universe %q", universe), path, universe)
	}
	f, err := l.openWorkbook(path)
	if err != nil {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadFactorTable", err, path, universe)
	}
	defer f.Close()

	var dateCells []string
	columns := make([][]string, len(factorSheets))

	for i, sheet := range factorSheets {
		dates, values, err := l.readFactorSheet(f, sheet, universe)
		if err != nil {
			return nil, apperrors.NewLoadError("FactorLoader", "LoadFactorTable", err, path, universe)
		}
		if i == 0 {
			dateCells = dates
		}
		columns[i] = values
	}

	// sheets are assumed to share the first sheet's date grid; trailing
	// rows beyond the shortest sheet are discarded
	n := len(dateCells)
	for _, col := range columns {
		if len(col) < n {
			n = len(col)
		}
	}

	keptDates := make([]string, 0, n)
	keptCols := make([][]string, len(columns))
	for k := 0; k < n; k++ {
		if strings.TrimSpace(dateCells[k]) == "" {
			continue
		}
		missing := false
		for _, col := range columns {
			if strings.TrimSpace(col[k]) == "" {
				missing = true
				break
			}
		}
		if missing {
			continue
		}
		keptDates = append(keptDates, dateCells[k])
		for c := range columns {
			keptCols[c] = append(keptCols[c], columns[c][k])
		}
	}

	dates, err := ParseDates(keptDates)
	if err != nil {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadFactorTable", err, path, universe)
	}
	parsedCols := make([][]float64, len(keptCols))
	for c := range keptCols {
		values, err := ParseNumbers(keptCols[c])
		if err != nil {
			return nil, apperrors.NewLoadError("FactorLoader", "LoadFactorTable", err, path, universe).
				WithContext("sheet", factorSheets[c])
		}
		parsedCols[c] = values
	}

	table := &domain.FactorTable{
		Universe: universe,
		Rows:     make([]domain.FactorRow, len(dates)),
	}
	for k := range dates {
		table.Rows[k] = domain.FactorRow{
			Date:     dates[k],
			MKT:      parsedCols[0][k],
			SMB:      parsedCols[1][k],
			HMLFF:    parsedCols[2][k],
			HMLDevil: parsedCols[3][k],
			UMD:      parsedCols[4][k],
		}
	}
	table.SortByDate()
	if err := table.Validate(); err != nil {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadFactorTable", err, path, universe)
	}

	l.logger.InfoContext(ctx, "factor table loaded",
		slog.String("path", path),
		slog.String("universe", universe),
		slog.Int("rows", table.Len()))

	return table, nil
}

// LoadRiskFree loads the RF sheet: first column dates, second column the
// per-period risk-free rate
func (l *FactorLoader) LoadRiskFree(ctx context.Context, path string) (*domain.Series, error) {
	f, err := l.openWorkbook(path)
	if err != nil {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadRiskFree", err, path)
	}
	defer f.Close()

	rows, err := f.GetRows(riskFreeSheet)
	if err != nil {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadRiskFree",
			fmt.Errorf("sheet %q: %w", riskFreeSheet, err), path)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadRiskFree",
			fmt.Errorf("sheet %q is empty", riskFreeSheet), path)
	}

	start, found := HeaderRow(rows)
	if !found {
		start = 1
	}

	var dateCells, rateCells []string
	for _, row := range rows[start:] {
		if len(row) < 2 {
			continue
		}
		if strings.TrimSpace(row[0]) == "" || strings.TrimSpace(row[1]) == "" {
			continue
		}
		dateCells = append(dateCells, row[0])
		rateCells = append(rateCells, row[1])
	}

	dates, err := ParseDates(dateCells)
	if err != nil {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadRiskFree", err, path)
	}
	rates, err := ParseNumbers(rateCells)
	if err != nil {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadRiskFree", err, path)
	}

	observations := make([]domain.Observation, len(dates))
	for i := range dates {
		observations[i] = domain.Observation{Date: dates[i], Value: rates[i]}
	}
	series := domain.NewSeries("RF", observations)
	if err := series.Validate(); err != nil {
		return nil, apperrors.NewLoadError("FactorLoader", "LoadRiskFree", err, path)
	}

	l.logger.InfoContext(ctx, "risk-free series loaded",
		slog.String("path", path),
		slog.Int("observations", series.Len()))

	return series, nil
}

// FillPanels loads the factor and risk-free panels from the daily and
// monthly workbooks. The path order is positional: paths[0] daily,
// paths[1] monthly.
func (l *FactorLoader) FillPanels(ctx context.Context, paths [2]string, universe string) (domain.FactorPanel, domain.RiskFreePanel, error) {
	periodicities := [2]domain.Periodicity{domain.Daily, domain.Monthly}

	factors := make(domain.FactorPanel, len(periodicities))
	rates := make(domain.RiskFreePanel, len(periodicities))

	for i, periodicity := range periodicities {
		table, err := l.LoadFactorTable(ctx, paths[i], universe)
		if err != nil {
			return nil, nil, err
		}
		rf, err := l.LoadRiskFree(ctx, paths[i])
		if err != nil {
			return nil, nil, err
		}
		factors[periodicity] = table
		rates[periodicity] = rf
	}

	return factors, rates, nil
}

// openWorkbook opens an Excel workbook, rejecting other file types
func (l *FactorLoader) openWorkbook(path string) (*excelize.File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
	default:
		return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return f, nil
}

// readFactorSheet extracts the date and universe columns from one factor
// sheet, preserving row positions so sheets stay aligned
func (l *FactorLoader) readFactorSheet(f *excelize.File, sheet, universe string) ([]string, []string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	start, found := HeaderRow(rows)
	if !found {
		start = 1
	}
	header := rows[start-1]

	dateIdx, ok := FindColumn(header, []string{"DATE"})
	if !ok {
		return nil, nil, fmt.Errorf("sheet %q: no DATE column among %v", sheet, header)
	}
	universeIdx, ok := FindColumn(header, []string{universe})
	if !ok {
		return nil, nil, fmt.Errorf("sheet %q: no %q column among %v", sheet, universe, header)
	}

	var dates, values []string
	for _, row := range rows[start:] {
		date, value := "", ""
		if dateIdx < len(row) {
			date = row[dateIdx]
		}
		if universeIdx < len(row) {
			value = row[universeIdx]
		}
		dates = append(dates, date)
		values = append(values, value)
	}
	return dates, values, nil
}
