// Package polyfit provides least-squares polynomial fitting shared by the
// pre-edge normalization and background modelling packages.
package polyfit

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnderdetermined is returned when a fit is requested with fewer points
// than free coefficients.
var ErrUnderdetermined = errors.New("polyfit: fewer points than coefficients")

// ErrSingular is returned when the normal equations are numerically singular
// (all abscissae identical, degenerate weighting, etc.).
var ErrSingular = errors.New("polyfit: singular normal equations")

// Fit computes the least-squares polynomial of the given degree through the
// points (x[i], y[i]) and returns its coefficients in ascending power order.
// The normal equations are accumulated directly and solved by Gaussian
// elimination with partial pivoting, which is adequate for the low degrees
// used by the spectroscopy pipeline. Callers fitting over large absolute
// abscissae (photon energies in the hundreds of eV) should shift x to a
// local origin first to keep the system well conditioned.
func Fit(x, y []float64, degree int) ([]float64, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("polyfit: length mismatch: %d vs %d", len(x), len(y))
	}
	if degree < 0 {
		return nil, fmt.Errorf("polyfit: negative degree %d", degree)
	}

	n := degree + 1
	if len(x) < n {
		return nil, fmt.Errorf("%w: %d points for degree %d", ErrUnderdetermined, len(x), degree)
	}

	// Moment sums sum(x^k) for k = 0..2*degree and right-hand side sums
	// sum(y*x^k) for k = 0..degree.
	moments := make([]float64, 2*n-1)
	rhs := make([]float64, n)
	for i := range x {
		xp := 1.0
		for k := range moments {
			moments[k] += xp
			if k < n {
				rhs[k] += y[i] * xp
			}
			xp *= x[i]
		}
	}

	aug := make([][]float64, n)
	for r := range aug {
		aug[r] = make([]float64, n+1)
		for c := range n {
			aug[r][c] = moments[r+c]
		}
		aug[r][n] = rhs[r]
	}

	return solve(aug)
}

// solve performs in-place Gaussian elimination with partial pivoting on an
// n x (n+1) augmented system and back-substitutes the solution.
func solve(aug [][]float64) ([]float64, error) {
	n := len(aug)
	for col := range n {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[pivot][col]) {
				pivot = r
			}
		}
		if aug[pivot][col] == 0 || math.IsNaN(aug[pivot][col]) {
			return nil, ErrSingular
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		inv := 1 / aug[col][col]
		for r := col + 1; r < n; r++ {
			f := aug[r][col] * inv
			if f == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				aug[r][c] -= f * aug[col][c]
			}
		}
	}

	out := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		acc := aug[r][n]
		for c := r + 1; c < n; c++ {
			acc -= aug[r][c] * out[c]
		}
		out[r] = acc / aug[r][r]
	}
	return out, nil
}

// Eval evaluates the polynomial with ascending-order coefficients at x using
// Horner's scheme. An empty coefficient slice evaluates to zero.
func Eval(coeffs []float64, x float64) float64 {
	acc := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc*x + coeffs[i]
	}
	return acc
}

// EvalAll evaluates the polynomial at every abscissa and returns the values.
func EvalAll(coeffs, xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = Eval(coeffs, x)
	}
	return out
}
