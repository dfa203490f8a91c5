package spectrum

import (
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-xas/internal/polyfit"
	"github.com/cwbudde/algo-xas/xas/background"
)

const defaultWindowFraction = 0.2

// PreEdgeConfig controls pre-edge normalization.
type PreEdgeConfig struct {
	// Window bounds the pre-edge region in axis units. When both bounds are
	// zero the lowest WindowFraction of the axis is used.
	Window [2]float64
	// WindowFraction is the fraction of the low-energy end of the axis used
	// when Window is unset.
	WindowFraction float64
	// Order is the baseline order: 0 divides by the window mean, 1 by a
	// fitted line evaluated pointwise.
	Order int
	// MinPoints is the smallest acceptable number of window points.
	MinPoints int
}

// DefaultPreEdgeConfig divides by the mean of the lowest fifth of the axis.
func DefaultPreEdgeConfig() PreEdgeConfig {
	return PreEdgeConfig{WindowFraction: defaultWindowFraction, Order: 0, MinPoints: 3}
}

func normalizePreEdgeConfig(cfg PreEdgeConfig) PreEdgeConfig {
	if cfg.WindowFraction <= 0 || cfg.WindowFraction > 1 {
		cfg.WindowFraction = defaultWindowFraction
	}

	if cfg.MinPoints <= 0 {
		cfg.MinPoints = 3
	}

	if cfg.Order < 0 {
		cfg.Order = 0
	}

	if cfg.Order > 1 {
		cfg.Order = 1
	}

	return cfg
}

// NormalizePreEdge divides the signal by a baseline fitted to the pre-edge
// window and returns the normalized stage. Applying it twice with the same
// window is a no-op up to floating-point noise, since the normalized window
// level is one by construction.
func (s *Spectrum) NormalizePreEdge(cfg PreEdgeConfig) (*Spectrum, error) {
	cfg = normalizePreEdgeConfig(cfg)

	lo, hi := cfg.Window[0], cfg.Window[1]
	if lo == 0 && hi == 0 {
		lo = s.Energy[0]
		hi = s.Energy[0] + cfg.WindowFraction*(s.Energy[len(s.Energy)-1]-s.Energy[0])
	}
	if hi < lo {
		return nil, fmt.Errorf("spectrum: invalid pre-edge window [%g, %g]", lo, hi)
	}

	i0 := sort.SearchFloat64s(s.Energy, lo)
	i1 := sort.Search(len(s.Energy), func(k int) bool { return s.Energy[k] > hi })

	n := i1 - i0
	required := max(cfg.MinPoints, cfg.Order+2)
	if n < required {
		return nil, fmt.Errorf("%w: %d pre-edge points in [%g, %g], need %d",
			ErrInsufficientData, n, lo, hi, required)
	}

	out := make([]float64, len(s.Signal))
	switch cfg.Order {
	case 0:
		level := vecmath.Sum(s.Signal[i0:i1]) / float64(n)
		if level == 0 {
			return nil, fmt.Errorf("spectrum: pre-edge level is zero in [%g, %g]", lo, hi)
		}
		vecmath.ScaleBlock(out, s.Signal, 1/level)
	default:
		pivot := s.Energy[i0]
		xs := make([]float64, n)
		for i := range xs {
			xs[i] = s.Energy[i0+i] - pivot
		}
		coeffs, err := polyfit.Fit(xs, s.Signal[i0:i1], 1)
		if err != nil {
			return nil, fmt.Errorf("spectrum: pre-edge line fit: %w", err)
		}
		for i, e := range s.Energy {
			b := polyfit.Eval(coeffs, e-pivot)
			if b == 0 {
				return nil, fmt.Errorf("spectrum: pre-edge baseline crosses zero at %g", e)
			}
			out[i] = s.Signal[i] / b
		}
	}

	return s.derive(out, StagePreEdgeNormalized), nil
}

// FitBackground fits the continuum model to this spectrum's series. It is a
// thin wrapper over background.FitStepEdge.
func (s *Spectrum) FitBackground(cfg background.Config) (*background.Fit, error) {
	return background.FitStepEdge(s.Energy, s.Signal, cfg)
}

// SubtractBackground removes the fitted polynomial baseline and scales by
// the fitted step height, so the continuum jump carries the post-edge level
// to one. The fit must have been computed on this spectrum's axis; it is
// attached to the returned stage.
func (s *Spectrum) SubtractBackground(fit *background.Fit) (*Spectrum, error) {
	if fit == nil {
		return nil, fmt.Errorf("spectrum: nil background fit")
	}
	if len(fit.Baseline) != len(s.Signal) {
		return nil, fmt.Errorf("%w: fit over %d points vs %d samples", ErrAxisMismatch, len(fit.Baseline), len(s.Signal))
	}
	if math.Abs(fit.StepHeight) < 1e-12 {
		return nil, fmt.Errorf("spectrum: degenerate step height %g", fit.StepHeight)
	}

	neg := make([]float64, len(fit.Baseline))
	vecmath.ScaleBlock(neg, fit.Baseline, -1)

	out := make([]float64, len(s.Signal))
	vecmath.AddMulBlock(out, s.Signal, neg, 1/fit.StepHeight)

	child := s.derive(out, StageBackgroundSubtracted)
	child.Fit = fit
	return child, nil
}
