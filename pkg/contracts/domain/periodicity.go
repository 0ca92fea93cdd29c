package domain

// Periodicity represents the observation frequency of a series. It is
// inferred once from date spacing and threaded explicitly through every
// downstream computation.
type Periodicity string

const (
	Daily   Periodicity = "Daily"
	Monthly Periodicity = "Monthly"
)

// Factor returns the annualization factor: periods per year
func (p Periodicity) Factor() float64 {
	switch p {
	case Daily:
		return 252
	case Monthly:
		return 12
	default:
		return 0
	}
}

// IsValid checks if the periodicity is a known value
func (p Periodicity) IsValid() bool {
	return p == Daily || p == Monthly
}

// String returns the periodicity name
func (p Periodicity) String() string {
	return string(p)
}
