package dataprocessing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "fundcli/internal/errors"
)

// headerSentinels are the cell values that mark a header row during the
// top-down scan of a raw sheet.
var headerSentinels = []string{"Date", "DATE", "Date de valorisation"}

// dateAliases are the column labels accepted for the date column. Matching
// is exact: the leading-space variant appears verbatim in some exports.
var dateAliases = []string{"Date", " Date de valorisation", "Date de valorisation", "DATE"}

// navAliases are the column labels accepted for the value column.
var navAliases = []string{"NAV", "Price", "VL", "NAV ($)", "Clôture/Dernier", "Close", "Nav"}

// genericDateLayouts are tried first and cover ISO-style datetime cells.
// fallbackDateLayouts are the explicit formats, in fixed order. Layout
// elements are unpadded so both "01/31/2024" and "1/31/2024" match.
var genericDateLayouts = []string{
	time.RFC3339,
	"2006-1-2T15:4:5",
	"2006-1-2 15:4:5",
}

var fallbackDateLayouts = []string{
	"2006-1-2",
	"2.1.2006",
	"2/1/2006",
	"1/2/2006",
}

// HeaderRow scans rows top-down for the first row containing a header
// sentinel and returns the index of the first data row (the row after the
// match). The second return is false when no sentinel is present; callers
// then fall back to treating row 0 as the header and fail the load unless
// a known column alias resolves there.
func HeaderRow(rows [][]string) (int, bool) {
	for i, row := range rows {
		for _, cell := range row {
			for _, sentinel := range headerSentinels {
				if cell == sentinel {
					return i + 1, true
				}
			}
		}
	}
	return 0, false
}

// FindColumn returns the index of the first column whose label matches one
// of the aliases. Matching is exact, without trimming.
func FindColumn(header []string, aliases []string) (int, bool) {
	for i, cell := range header {
		for _, alias := range aliases {
			if cell == alias {
				return i, true
			}
		}
	}
	return 0, false
}

// DateColumn returns the index of the date column in the header
func DateColumn(header []string) (int, bool) {
	return FindColumn(header, dateAliases)
}

// ValueColumn returns the index of the value column in the header
func ValueColumn(header []string) (int, bool) {
	return FindColumn(header, navAliases)
}

// ParseDates converts a column of date cells to UTC-midnight times. A
// layout is selected only if it parses every cell; on any failure the
// whole column falls to the next layout.
func ParseDates(values []string) ([]time.Time, error) {
	if len(values) == 0 {
		return nil, nil
	}

	layouts := make([]string, 0, len(genericDateLayouts)+len(fallbackDateLayouts))
	layouts = append(layouts, genericDateLayouts...)
	layouts = append(layouts, fallbackDateLayouts...)

	for _, layout := range layouts {
		parsed, ok := parseAll(values, layout)
		if ok {
			return parsed, nil
		}
	}

	return nil, apperrors.NewParsingError(
		fmt.Sprintf("no date format parses the column (first cell %q)", strings.TrimSpace(values[0])), nil)
}

// parseAll parses every value with one layout, normalizing to UTC midnight
func parseAll(values []string, layout string) ([]time.Time, bool) {
	parsed := make([]time.Time, len(values))
	for i, value := range values {
		t, err := time.Parse(layout, strings.TrimSpace(value))
		if err != nil {
			return nil, false
		}
		parsed[i] = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return parsed, true
}

// ParseNumbers converts a column of numeric cells to floats. Decimal
// commas are rewritten to decimal points; cells already in dot-decimal
// form pass through unchanged.
func ParseNumbers(values []string) ([]float64, error) {
	parsed := make([]float64, len(values))
	for i, value := range values {
		cell := strings.ReplaceAll(strings.TrimSpace(value), ",", ".")
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, apperrors.NewParsingError(
				fmt.Sprintf("cannot parse numeric cell %q", strings.TrimSpace(value)), err).
				WithContext("row", i)
		}
		parsed[i] = v
	}
	return parsed, nil
}
