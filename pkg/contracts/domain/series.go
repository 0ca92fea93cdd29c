package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Observation represents a single dated value in a time series
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series represents an ordered sequence of dated values for one instrument,
// typically net asset values or per-period rates. Loaders emit series with
// strictly increasing, unique dates normalized to UTC midnight; consumers
// treat a series as immutable once produced.
type Series struct {
	Name         string        `json:"name"`
	Observations []Observation `json:"observations"`
}

// NewSeries creates a series and sorts its observations by date
func NewSeries(name string, observations []Observation) *Series {
	s := &Series{
		Name:         name,
		Observations: observations,
	}
	s.SortByDate()
	return s
}

// Len returns the number of observations
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Observations)
}

// Dates returns the observation dates in series order
func (s *Series) Dates() []time.Time {
	dates := make([]time.Time, len(s.Observations))
	for i, obs := range s.Observations {
		dates[i] = obs.Date
	}
	return dates
}

// Values returns the observation values in series order
func (s *Series) Values() []float64 {
	values := make([]float64, len(s.Observations))
	for i, obs := range s.Observations {
		values[i] = obs.Value
	}
	return values
}

// First returns the earliest observation and false when the series is empty
func (s *Series) First() (Observation, bool) {
	if s.Len() == 0 {
		return Observation{}, false
	}
	return s.Observations[0], true
}

// Last returns the latest observation and false when the series is empty
func (s *Series) Last() (Observation, bool) {
	if s.Len() == 0 {
		return Observation{}, false
	}
	return s.Observations[len(s.Observations)-1], true
}

// SortByDate sorts observations ascending by date
func (s *Series) SortByDate() {
	sort.Slice(s.Observations, func(i, j int) bool {
		return s.Observations[i].Date.Before(s.Observations[j].Date)
	})
}

// Validate checks the series invariants: dates strictly increasing and
// unique, values finite
func (s *Series) Validate() error {
	for i, obs := range s.Observations {
		if math.IsNaN(obs.Value) || math.IsInf(obs.Value, 0) {
			return fmt.Errorf("series %q: non-finite value at %s", s.Name, obs.Date.Format("2006-01-02"))
		}
		if i == 0 {
			continue
		}
		prev := s.Observations[i-1].Date
		if !obs.Date.After(prev) {
			return fmt.Errorf("series %q: dates not strictly increasing at %s", s.Name, obs.Date.Format("2006-01-02"))
		}
	}
	return nil
}
