package background

import (
	"errors"
	"fmt"
)

const (
	defaultPolyDegree    = 2
	defaultPeakWidth     = 10.0
	defaultWidthSeed     = 1.0
	defaultMaxIterations = 200
)

// Model selects the background parameterization.
type Model int

const (
	// ModelStepPoly fits an arctangent step plus a polynomial baseline.
	ModelStepPoly Model = iota
	// ModelStep fits the arctangent step alone.
	ModelStep
)

// String returns the model name used in reports and persisted fits.
func (m Model) String() string {
	switch m {
	case ModelStepPoly:
		return "step+poly"
	case ModelStep:
		return "step"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// ErrInsufficientData is returned when too few points survive the exclusion
// window to constrain the model on both sides of the edge.
var ErrInsufficientData = errors.New("background: insufficient data outside exclusion window")

// ErrEdgeOutOfRange is returned when the configured edge energy does not lie
// on the sampled energy axis.
var ErrEdgeOutOfRange = errors.New("background: edge energy outside sampled axis")

// Config holds background fit parameters. The zero value is not usable on
// its own; start from DefaultConfig.
type Config struct {
	// Model selects the background parameterization.
	Model Model
	// PolyDegree is the baseline polynomial degree for ModelStepPoly.
	// Degree zero fits a constant offset.
	PolyDegree int
	// EdgeEnergy seeds the step center and anchors the exclusion window, in
	// the units of the energy axis. It must lie on the sampled axis.
	EdgeEnergy float64
	// PeakWidth is the width of the exclusion window centered on EdgeEnergy.
	// Points inside it do not constrain the fit.
	PeakWidth float64
	// WidthSeed seeds the step width parameter.
	WidthSeed float64
	// MaxIterations bounds the Levenberg-Marquardt iteration count.
	MaxIterations int
}

// DefaultConfig returns the step+quadratic configuration centered on the
// given edge energy with a 10 eV peak exclusion window.
func DefaultConfig(edgeEnergy float64) Config {
	return Config{
		Model:         ModelStepPoly,
		PolyDegree:    defaultPolyDegree,
		EdgeEnergy:    edgeEnergy,
		PeakWidth:     defaultPeakWidth,
		WidthSeed:     defaultWidthSeed,
		MaxIterations: defaultMaxIterations,
	}
}

func normalizeConfig(cfg Config) Config {
	if cfg.PolyDegree < 0 {
		cfg.PolyDegree = 0
	}

	if cfg.PeakWidth <= 0 {
		cfg.PeakWidth = defaultPeakWidth
	}

	if cfg.WidthSeed <= 0 {
		cfg.WidthSeed = defaultWidthSeed
	}

	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}

	return cfg
}

// Param is one fitted parameter with its one-sigma uncertainty estimate.
// Stddev is zero when the curvature matrix was singular at the solution.
type Param struct {
	Value  float64 `json:"value"`
	Stddev float64 `json:"stddev"`
}

// Fit holds the result of a background fit. Curve and Baseline are the model
// and its polynomial part evaluated over the full energy axis the fit was
// computed on, so downstream stages can subtract without re-evaluating the
// model. Parameter keys are "height", "center", "width" and "c0".."cN" for
// the baseline coefficients in powers of (E - seeded edge energy).
type Fit struct {
	Model        Model            `json:"model"`
	Params       map[string]Param `json:"params"`
	Window       [2]float64       `json:"window"`
	Curve        []float64        `json:"curve"`
	Baseline     []float64        `json:"baseline"`
	StepHeight   float64          `json:"step_height"`
	ReducedChiSq float64          `json:"reduced_chi_sq"`
	Converged    bool             `json:"converged"`
}
