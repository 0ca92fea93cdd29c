package dataprocessing

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "fundcli/internal/errors"
	"fundcli/pkg/contracts/domain"
)

// NavLoader reads a fund net-asset-value series from a CSV or Excel file.
// Files may carry junk rows before the real header, aliased column names,
// decimal-comma numbers and several date formats.
type NavLoader struct {
	logger *slog.Logger
}

// NewNavLoader creates a NAV loader with the given logger
func NewNavLoader(logger *slog.Logger) *NavLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &NavLoader{logger: logger}
}

// LoadFund loads the series stored at path and names it
func (l *NavLoader) LoadFund(ctx context.Context, path, name string) (*domain.Series, error) {
	rows, err := l.readRows(path)
	if err != nil {
		return nil, apperrors.NewLoadError("NavLoader", "LoadFund", err, path)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewLoadError("NavLoader", "LoadFund",
			fmt.Errorf("file contains no rows"), path)
	}

	start, found := HeaderRow(rows)
	if !found {
		// no sentinel anywhere: row 0 must be the header, and the alias
		// lookup below decides whether this file is loadable at all
		start = 1
	}
	header := rows[start-1]

	l.logger.DebugContext(ctx, "header row located",
		slog.String("path", path),
		slog.Int("data_start", start),
		slog.Bool("sentinel_found", found))

	dateIdx, ok := DateColumn(header)
	if !ok {
		return nil, apperrors.NewLoadError("NavLoader", "LoadFund",
			fmt.Errorf("no date column among %v", header), path)
	}
	valueIdx, ok := ValueColumn(header)
	if !ok {
		return nil, apperrors.NewLoadError("NavLoader", "LoadFund",
			fmt.Errorf("no value column among %v", header), path)
	}

	// drop rows where either cell is missing before any parsing
	var dateCells, valueCells []string
	for _, row := range rows[start:] {
		if dateIdx >= len(row) || valueIdx >= len(row) {
			continue
		}
		date := strings.TrimSpace(row[dateIdx])
		value := strings.TrimSpace(row[valueIdx])
		if date == "" || value == "" {
			continue
		}
		dateCells = append(dateCells, row[dateIdx])
		valueCells = append(valueCells, row[valueIdx])
	}

	dates, err := ParseDates(dateCells)
	if err != nil {
		return nil, apperrors.NewLoadError("NavLoader", "LoadFund", err, path)
	}
	values, err := ParseNumbers(valueCells)
	if err != nil {
		return nil, apperrors.NewLoadError("NavLoader", "LoadFund", err, path)
	}

	observations := make([]domain.Observation, len(dates))
	for i := range dates {
		observations[i] = domain.Observation{Date: dates[i], Value: values[i]}
	}

	series := domain.NewSeries(name, observations)
	if err := series.Validate(); err != nil {
		return nil, apperrors.NewLoadError("NavLoader", "LoadFund", err, path)
	}

	l.logger.InfoContext(ctx, "fund series loaded",
		slog.String("path", path),
		slog.String("fund", name),
		slog.Int("observations", series.Len()))

	return series, nil
}

// readRows reads the raw cell grid from a CSV or Excel file
func (l *NavLoader) readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVRows(path)
	case ".xlsx", ".xls":
		return readExcelRows(path)
	default:
		return nil, fmt.Errorf("unsupported file extension %q", filepath.Ext(path))
	}
}

// readCSVRows reads all records from a CSV file, tolerating ragged rows
// and a UTF-8 byte order mark
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\uFEFF")
	}
	return rows, nil
}

// readExcelRows reads the first sheet of an Excel workbook
func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
