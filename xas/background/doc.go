// Package background models and removes the continuum absorption underneath
// X-ray absorption spectra.
//
// The continuum onset is modelled as an arctangent step centered on the
// absorption edge plus a smooth polynomial baseline:
//
//	b(E) = h*(atan((E - e0)/w)/pi + 1/2) + sum_k c_k*(E - center)^k
//
// with step height h, edge position e0 and width w free, and the polynomial
// expressed around the seeded edge energy to keep the system well
// conditioned. The resonant white lines near the edge would bias the
// continuum estimate, so a configurable exclusion window centered on the
// edge is removed from the residuals before the model is fitted by
// Levenberg-Marquardt. The fitted step height is what a subsequent
// normalization divides by so the post-edge level approaches one.
//
// # Usage
//
// Fit the default step+quadratic model around the Fe L3 edge:
//
//	cfg := background.DefaultConfig(706.8)
//	fit, err := background.FitStepEdge(energy, signal, cfg)
//	if err != nil {
//	    // not enough usable points, bad window, ...
//	}
//	if !fit.Converged {
//	    // best-effort parameters, flagged rather than fatal
//	}
//
// The solver always terminates within the configured iteration budget and
// reports non-convergence through [Fit.Converged] instead of an error.
package background
