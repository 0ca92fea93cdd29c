// Package align infers series periodicity and inner-joins fund, risk-free,
// benchmark and factor data onto shared date grids. Everything downstream
// (statistics, regression) consumes its parallel-slice datasets.
package align
