package regression

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"fundcli/internal/align"
	apperrors "fundcli/internal/errors"
	"fundcli/pkg/contracts/domain"
)

// factorCount is the number of regressors excluding the intercept
const factorCount = 5

// minObservations is the smallest usable sample: one more than the
// parameter count, leaving at least one residual degree of freedom.
const minObservations = factorCount + 2

// Result holds one fund's factor regression. StdErrors, TStats and
// PValues are indexed intercept-first, then the factors in
// domain.FactorNames order.
type Result struct {
	Fund      string
	NObs      int
	Intercept float64
	Loadings  domain.FundLoadings
	StdErrors []float64
	TStats    []float64
	PValues   []float64
	R2        float64
	AdjR2     float64
}

// Fit regresses a fund's returns on the five factors with an intercept,
// solving the normal equations through a Cholesky factorization of XᵀX.
//
// The factor panel's first aligned row is dropped: a return spans two
// dates and pairs with the factor values of its later one.
func Fit(fund string, data *align.FactorData) (*Result, error) {
	n := len(data.NAV)
	m := n - 1
	if m < minObservations {
		return nil, apperrors.NewRegressionError(fmt.Sprintf(
			"fund %q has %d return observations, need at least %d", fund, max(m, 0), minObservations), nil)
	}

	p := factorCount + 1
	x := mat.NewDense(m, p, nil)
	y := mat.NewVecDense(m, nil)
	for i := 0; i < m; i++ {
		y.SetVec(i, data.NAV[i+1]/data.NAV[i]-1)
		x.Set(i, 0, 1)
		for j, v := range data.Rows[i+1].Vector() {
			x.Set(i, j+1, v)
		}
	}

	var xtx mat.SymDense
	xtx.SymOuterK(1, x.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return nil, apperrors.NewRegressionError(fmt.Sprintf(
			"fund %q: design matrix is singular", fund), nil)
	}

	xty := mat.NewVecDense(p, nil)
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, xty); err != nil {
		return nil, apperrors.NewRegressionError(fmt.Sprintf(
			"fund %q: normal equations could not be solved", fund), err)
	}

	var fitted mat.VecDense
	fitted.MulVec(x, &beta)

	meanY := mat.Sum(y) / float64(m)
	var rss, tss float64
	for i := 0; i < m; i++ {
		r := y.AtVec(i) - fitted.AtVec(i)
		rss += r * r
		d := y.AtVec(i) - meanY
		tss += d * d
	}

	dof := float64(m - p)
	sigma2 := rss / dof

	var xtxInv mat.SymDense
	if err := chol.InverseTo(&xtxInv); err != nil {
		return nil, apperrors.NewRegressionError(fmt.Sprintf(
			"fund %q: covariance of estimates is unavailable", fund), err)
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: dof}
	stdErrs := make([]float64, p)
	tStats := make([]float64, p)
	pValues := make([]float64, p)
	for j := 0; j < p; j++ {
		stdErrs[j] = math.Sqrt(sigma2 * xtxInv.At(j, j))
		tStats[j] = beta.AtVec(j) / stdErrs[j]
		pValues[j] = 2 * dist.CDF(-math.Abs(tStats[j]))
	}

	r2 := 1 - rss/tss
	loadings := make([]float64, factorCount)
	for j := range loadings {
		loadings[j] = beta.AtVec(j + 1)
	}

	return &Result{
		Fund:      fund,
		NObs:      m,
		Intercept: beta.AtVec(0),
		Loadings:  domain.FundLoadings{Fund: fund, Loadings: loadings},
		StdErrors: stdErrs,
		TStats:    tStats,
		PValues:   pValues,
		R2:        r2,
		AdjR2:     1 - (1-r2)*float64(m-1)/dof,
	}, nil
}

// Summary renders a fixed-width coefficient table
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "OLS regression: %s\n", r.Fund)
	fmt.Fprintf(&b, "observations: %d    R-squared: %.4f    adj R-squared: %.4f\n\n",
		r.NObs, r.R2, r.AdjR2)
	fmt.Fprintf(&b, "%-12s %12s %12s %12s %12s\n", "term", "coef", "std err", "t", "P>|t|")

	terms := append([]string{"const"}, domain.FactorNames...)
	coefs := append([]float64{r.Intercept}, r.Loadings.Loadings...)
	for i, term := range terms {
		fmt.Fprintf(&b, "%-12s %12.6f %12.6f %12.4f %12.4f\n",
			term, coefs[i], r.StdErrors[i], r.TStats[i], r.PValues[i])
	}
	return b.String()
}
