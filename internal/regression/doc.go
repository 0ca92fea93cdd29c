// Package regression fits fund returns against the five-factor panel by
// ordinary least squares. The normal equations are solved through a
// Cholesky factorization (gonum/mat); inference (standard errors,
// t-statistics, two-sided p-values via gonum/stat/distuv) follows the
// classical homoskedastic formulas.
package regression
