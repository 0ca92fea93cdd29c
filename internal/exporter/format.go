package exporter

import (
	"fmt"
	"math"
)

// formatMetric renders a statistic with exactly six decimal places. NaN
// cells are empty; infinities keep their sign so saturated ratios stay
// readable in the table.
func formatMetric(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return fmt.Sprintf("%.6f", f)
	}
}
