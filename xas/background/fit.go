package background

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xas/internal/polyfit"
)

// gradTol bounds the residual gradient accepted as a first-order stationary
// point when deciding the Converged flag.
const gradTol = 1e-4

// FitStepEdge fits the configured background model to the sampled (energy,
// signal) series and returns the fit evaluated over the full axis. Points
// inside the exclusion window around cfg.EdgeEnergy do not constrain the
// model. The solver stops after cfg.MaxIterations at the latest; a fit that
// did not reach a stationary point is returned with Converged set to false
// rather than as an error.
//
//nolint:funlen
func FitStepEdge(energy, signal []float64, cfg Config) (*Fit, error) {
	if len(energy) != len(signal) {
		return nil, fmt.Errorf("background: energy and signal lengths differ: %d vs %d", len(energy), len(signal))
	}
	if len(energy) == 0 {
		return nil, fmt.Errorf("background: empty input")
	}

	cfg = normalizeConfig(cfg)
	if cfg.EdgeEnergy < energy[0] || cfg.EdgeEnergy > energy[len(energy)-1] {
		return nil, fmt.Errorf("%w: %g not in [%g, %g]",
			ErrEdgeOutOfRange, cfg.EdgeEnergy, energy[0], energy[len(energy)-1])
	}

	winLo := cfg.EdgeEnergy - cfg.PeakWidth/2
	winHi := cfg.EdgeEnergy + cfg.PeakWidth/2

	var included, pre, post []int
	for i, e := range energy {
		if e >= winLo && e <= winHi {
			continue
		}
		included = append(included, i)
		if e < cfg.EdgeEnergy {
			pre = append(pre, i)
		} else {
			post = append(post, i)
		}
	}

	dim := 3
	if cfg.Model == ModelStepPoly {
		dim += cfg.PolyDegree + 1
	}
	if len(included) <= dim {
		return nil, fmt.Errorf("%w: %d points for %d parameters", ErrInsufficientData, len(included), dim)
	}
	if len(pre) == 0 || len(post) == 0 {
		return nil, fmt.Errorf("%w: %d pre-edge and %d post-edge points", ErrInsufficientData, len(pre), len(post))
	}

	seed := seedParams(energy, signal, pre, post, cfg, dim)

	residual := func(dst, params []float64) {
		for i, idx := range included {
			dst[i] = evalModel(params, energy[idx], cfg) - signal[idx]
		}
	}

	initParams := make([]float64, dim)
	copy(initParams, seed)

	numJac := lm.NumJac{Func: residual}
	problem := lm.LMProblem{
		Dim:        dim,
		Size:       len(included),
		Func:       residual,
		Jac:        numJac.Jac,
		InitParams: initParams,
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	params := seed
	solved := false
	results, err := lm.LM(problem, &lm.Settings{Iterations: cfg.MaxIterations, ObjectiveTol: 1e-16})
	if err == nil {
		params = results.X
		solved = true
	}
	for _, p := range params {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			params = seed
			solved = false
			break
		}
	}

	res := make([]float64, len(included))
	residual(res, params)
	chiSq := 0.0
	for _, r := range res {
		chiSq += r * r
	}
	redChiSq := chiSq / float64(len(included)-dim)

	jac := jacobianAt(residual, params, len(included))
	converged := solved && gradientMax(jac, res) <= gradTol*(1+chiSq)
	stddev := paramStddevs(jac, redChiSq, dim)

	curve := make([]float64, len(energy))
	baseline := make([]float64, len(energy))
	for i, e := range energy {
		curve[i] = evalModel(params, e, cfg)
		if cfg.Model == ModelStepPoly {
			baseline[i] = polyfit.Eval(params[3:], e-cfg.EdgeEnergy)
		}
	}

	fitted := map[string]Param{
		"height": {Value: params[0], Stddev: stddev[0]},
		"center": {Value: params[1], Stddev: stddev[1]},
		"width":  {Value: math.Abs(params[2]), Stddev: stddev[2]},
	}
	if cfg.Model == ModelStepPoly {
		for k := 0; k <= cfg.PolyDegree; k++ {
			fitted[fmt.Sprintf("c%d", k)] = Param{Value: params[3+k], Stddev: stddev[3+k]}
		}
	}

	return &Fit{
		Model:        cfg.Model,
		Params:       fitted,
		Window:       [2]float64{winLo, winHi},
		Curve:        curve,
		Baseline:     baseline,
		StepHeight:   params[0],
		ReducedChiSq: redChiSq,
		Converged:    converged,
	}, nil
}

// evalModel evaluates the background model at energy e. The step width
// enters in absolute value so the solver can roam through zero, and the
// baseline polynomial is expressed around the seeded edge energy.
func evalModel(params []float64, e float64, cfg Config) float64 {
	h, e0 := params[0], params[1]
	w := math.Abs(params[2])
	if w < 1e-12 {
		w = 1e-12
	}
	v := h * (math.Atan((e-e0)/w)/math.Pi + 0.5)
	if cfg.Model == ModelStepPoly {
		v += polyfit.Eval(params[3:], e-cfg.EdgeEnergy)
	}
	return v
}

// seedParams builds the initial parameter vector: step height from the
// pre/post level difference, center at the configured edge energy, width
// from the seed, and the baseline from a pre-edge polynomial fit where
// enough points exist.
func seedParams(energy, signal []float64, pre, post []int, cfg Config, dim int) []float64 {
	preLevel := meanAt(signal, pre)
	postLevel := meanAt(signal, post)

	seed := make([]float64, dim)
	seed[0] = postLevel - preLevel
	seed[1] = cfg.EdgeEnergy
	seed[2] = cfg.WidthSeed
	if cfg.Model != ModelStepPoly {
		return seed
	}

	seed[3] = preLevel
	if cfg.PolyDegree+1 > len(pre) {
		return seed
	}

	xs := make([]float64, len(pre))
	ys := make([]float64, len(pre))
	for i, idx := range pre {
		xs[i] = energy[idx] - cfg.EdgeEnergy
		ys[i] = signal[idx]
	}
	coeffs, err := polyfit.Fit(xs, ys, cfg.PolyDegree)
	if err != nil {
		return seed
	}
	copy(seed[3:], coeffs)
	return seed
}

func meanAt(data []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		sum += data[i]
	}
	return sum / float64(len(idx))
}

// jacobianAt numerically differentiates the residual vector at p using
// forward differences.
func jacobianAt(f func(dst, p []float64), p []float64, size int) *mat.Dense {
	jac := mat.NewDense(size, len(p), nil)
	base := make([]float64, size)
	f(base, p)

	bumped := make([]float64, size)
	shifted := make([]float64, len(p))
	for j := range p {
		copy(shifted, p)
		h := 1e-8 * max(1, math.Abs(p[j]))
		shifted[j] += h
		f(bumped, shifted)
		for i := range size {
			jac.Set(i, j, (bumped[i]-base[i])/h)
		}
	}
	return jac
}

// gradientMax returns the largest absolute component of J^T r, the residual
// gradient used as the stationarity measure.
func gradientMax(jac *mat.Dense, res []float64) float64 {
	rows, cols := jac.Dims()
	gmax := 0.0
	for j := range cols {
		g := 0.0
		for i := range rows {
			g += jac.At(i, j) * res[i]
		}
		if a := math.Abs(g); a > gmax {
			gmax = a
		}
	}
	return gmax
}

// paramStddevs estimates one-sigma parameter uncertainties from the local
// curvature J^T J, scaled by the reduced chi-square. All zeros when the
// curvature matrix is singular at the solution.
func paramStddevs(jac *mat.Dense, redChiSq float64, dim int) []float64 {
	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	var cov mat.Dense
	if err := cov.Inverse(&jtj); err != nil {
		return make([]float64, dim)
	}

	out := make([]float64, dim)
	for i := range out {
		if v := cov.At(i, i) * redChiSq; v > 0 {
			out[i] = math.Sqrt(v)
		}
	}
	return out
}
