package analytics

import (
	"math"

	"github.com/montanaflynn/stats"
)

// The scalar moments below wrap github.com/montanaflynn/stats and map its
// empty-input errors to NaN, so degenerate inputs flow through metric
// arithmetic as values instead of branching into error handling.

func mean(values []float64) float64 {
	m, err := stats.Mean(values)
	if err != nil {
		return math.NaN()
	}
	return m
}

// sampleStdDev is the ddof=1 standard deviation. A single observation
// divides zero by zero and comes out NaN rather than erroring.
func sampleStdDev(values []float64) float64 {
	s, err := stats.StandardDeviationSample(values)
	if err != nil {
		return math.NaN()
	}
	return s
}

// sampleCovariance is the ddof=1 covariance of two parallel columns
func sampleCovariance(x, y []float64) float64 {
	c, err := stats.Covariance(x, y)
	if err != nil {
		return math.NaN()
	}
	return c
}

// populationVariance is the ddof=0 variance
func populationVariance(values []float64) float64 {
	v, err := stats.PopulationVariance(values)
	if err != nil {
		return math.NaN()
	}
	return v
}

// pctChange returns values[i+1]/values[i] - 1, one element shorter than
// its input. Fewer than two values yield nil.
func pctChange(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	changes := make([]float64, len(values)-1)
	for i := range changes {
		changes[i] = values[i+1]/values[i] - 1
	}
	return changes
}
