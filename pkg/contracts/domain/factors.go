package domain

import (
	"fmt"
	"sort"
	"time"
)

// FactorNames lists the market factors in canonical order. Regression
// design matrices and loading reports follow this order.
var FactorNames = []string{"MKT", "SMB", "HML FF", "HML Devil", "UMD"}

// Universes lists the supported factor universes
var Universes = []string{"Global", "US", "Europe", "Japan"}

// IsValidUniverse checks if the universe is a supported column name
func IsValidUniverse(universe string) bool {
	for _, u := range Universes {
		if u == universe {
			return true
		}
	}
	return false
}

// FactorRow represents one period of factor returns for a single universe
type FactorRow struct {
	Date     time.Time `json:"date"`
	MKT      float64   `json:"mkt"`
	SMB      float64   `json:"smb"`
	HMLFF    float64   `json:"hml_ff"`
	HMLDevil float64   `json:"hml_devil"`
	UMD      float64   `json:"umd"`
}

// Vector returns the factor values in canonical FactorNames order
func (r FactorRow) Vector() []float64 {
	return []float64{r.MKT, r.SMB, r.HMLFF, r.HMLDevil, r.UMD}
}

// FactorTable represents factor returns for one universe at one periodicity
type FactorTable struct {
	Universe string      `json:"universe"`
	Rows     []FactorRow `json:"rows"`
}

// Len returns the number of factor rows
func (t *FactorTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Dates returns the row dates in table order
func (t *FactorTable) Dates() []time.Time {
	dates := make([]time.Time, len(t.Rows))
	for i, row := range t.Rows {
		dates[i] = row.Date
	}
	return dates
}

// SortByDate sorts rows ascending by date
func (t *FactorTable) SortByDate() {
	sort.Slice(t.Rows, func(i, j int) bool {
		return t.Rows[i].Date.Before(t.Rows[j].Date)
	})
}

// Validate checks that dates are strictly increasing and unique
func (t *FactorTable) Validate() error {
	for i := 1; i < len(t.Rows); i++ {
		if !t.Rows[i].Date.After(t.Rows[i-1].Date) {
			return fmt.Errorf("factor table %q: dates not strictly increasing at %s",
				t.Universe, t.Rows[i].Date.Format("2006-01-02"))
		}
	}
	return nil
}

// FactorPanel maps a periodicity to its factor table. A complete panel
// carries exactly the Daily and Monthly keys.
type FactorPanel map[Periodicity]*FactorTable

// RiskFreePanel maps a periodicity to its risk-free rate series
type RiskFreePanel map[Periodicity]*Series
