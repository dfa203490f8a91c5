package sumrules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-xas/xas/spectrum"
)

// ErrBounds is returned when an integration bound falls outside the
// sampled energy range or a window does not increase. The result would be
// an extrapolation, so it is refused rather than substituted.
var ErrBounds = errors.New("sumrules: bad integration bounds")

// ErrConfig is returned when a required analysis input is missing.
var ErrConfig = errors.New("sumrules: incomplete configuration")

// Report carries the sum-rule moments together with the integrals and
// windows they were derived from.
type Report struct {
	// OrbitalMoment is m_orb in Bohr magnetons per atom.
	OrbitalMoment float64 `json:"orbital_moment"`
	// SpinMoment is the effective spin moment; the magnetic dipole term
	// remains folded in.
	SpinMoment float64 `json:"spin_moment"`
	// P, Q and R are the raw sum-rule integrals.
	P float64 `json:"p"`
	Q float64 `json:"q"`
	R float64 `json:"r"`
	// HoleCount and the windows echo the analysis inputs.
	HoleCount float64    `json:"hole_count"`
	L3Window  [2]float64 `json:"l3_window"`
	L2Window  [2]float64 `json:"l2_window"`
}

// Analyze applies the sum rules to a background-subtracted XMCD difference
// spectrum. The hole count, both windows (directly or via the edge pair)
// and the isotropic XAS integral (directly or via a companion spectrum)
// are required.
func Analyze(diff *spectrum.Spectrum, opts ...Option) (Report, error) {
	cfg := applyOptions(opts...)

	if diff == nil || diff.Len() == 0 {
		return Report{}, fmt.Errorf("%w: no difference spectrum", ErrConfig)
	}
	if cfg.HoleCount <= 0 {
		return Report{}, fmt.Errorf("%w: hole count %g", ErrConfig, cfg.HoleCount)
	}

	l3, l2, err := resolveWindows(cfg, diff.Energy)
	if err != nil {
		return Report{}, err
	}

	p, err := integrate(diff.Energy, diff.Signal, l3[0], l3[1])
	if err != nil {
		return Report{}, fmt.Errorf("l3 window: %w", err)
	}

	// q is the running XMCD integral at the far end of the L2 window.
	q, err := integrate(diff.Energy, diff.Signal, l3[0], l2[1])
	if err != nil {
		return Report{}, fmt.Errorf("l2 window: %w", err)
	}

	r := cfg.XASIntegral
	if r == 0 && cfg.XAS != nil {
		r, err = integrate(cfg.XAS.Energy, cfg.XAS.Signal, l3[0], l2[1])
		if err != nil {
			return Report{}, fmt.Errorf("xas companion: %w", err)
		}
	}
	if r == 0 {
		return Report{}, fmt.Errorf("%w: isotropic XAS integral", ErrConfig)
	}

	nh := cfg.HoleCount
	return Report{
		OrbitalMoment: -4 * q * nh / (3 * r),
		SpinMoment:    -(6*p - 4*q) * nh / r,
		P:             p,
		Q:             q,
		R:             r,
		HoleCount:     nh,
		L3Window:      l3,
		L2Window:      l2,
	}, nil
}

// resolveWindows fills unset windows from the edge pair and validates
// ordering: each window must increase and L3 must not reach into L2.
func resolveWindows(cfg Config, energy []float64) ([2]float64, [2]float64, error) {
	l3, l2 := cfg.L3Window, cfg.L2Window

	if cfg.EdgePair != ([2]float64{}) {
		mid := (cfg.EdgePair[0] + cfg.EdgePair[1]) / 2
		if l3 == ([2]float64{}) {
			l3 = [2]float64{energy[0], mid}
		}
		if l2 == ([2]float64{}) {
			l2 = [2]float64{mid, energy[len(energy)-1]}
		}
	}

	if l3 == ([2]float64{}) || l2 == ([2]float64{}) {
		return l3, l2, fmt.Errorf("%w: integration windows", ErrConfig)
	}
	if l3[0] >= l3[1] || l2[0] >= l2[1] {
		return l3, l2, fmt.Errorf("%w: l3 [%g, %g], l2 [%g, %g]", ErrBounds, l3[0], l3[1], l2[0], l2[1])
	}
	if l3[1] > l2[0] {
		return l3, l2, fmt.Errorf("%w: l3 window reaches past the l2 window start", ErrBounds)
	}
	return l3, l2, nil
}

// integrate computes the trapezoid integral of signal over [lo, hi] with
// linear interpolation at fractional bounds.
func integrate(energy, signal []float64, lo, hi float64) (float64, error) {
	if lo >= hi {
		return 0, fmt.Errorf("%w: [%g, %g] does not increase", ErrBounds, lo, hi)
	}

	n := len(energy)
	if n < 2 {
		return 0, fmt.Errorf("%w: %d samples", ErrBounds, n)
	}
	if lo < energy[0] || hi > energy[n-1] {
		return 0, fmt.Errorf("%w: [%g, %g] outside sampled [%g, %g]", ErrBounds, lo, hi, energy[0], energy[n-1])
	}

	yLo := valueAt(energy, signal, lo)
	yHi := valueAt(energy, signal, hi)

	i0 := sort.SearchFloat64s(energy, lo)
	i1 := sort.Search(n, func(k int) bool { return energy[k] > hi }) - 1

	if i0 > i1 {
		// Both bounds fall inside a single sampling panel.
		return (hi - lo) * (yLo + yHi) / 2, nil
	}

	total := (energy[i0] - lo) * (yLo + signal[i0]) / 2
	for i := i0; i < i1; i++ {
		total += (energy[i+1] - energy[i]) * (signal[i] + signal[i+1]) / 2
	}
	total += (hi - energy[i1]) * (signal[i1] + yHi) / 2
	return total, nil
}

// valueAt linearly interpolates the signal at e, which must lie inside the
// sampled range.
func valueAt(energy, signal []float64, e float64) float64 {
	i := sort.SearchFloat64s(energy, e)
	if i < len(energy) && energy[i] == e {
		return signal[i]
	}
	t := (e - energy[i-1]) / (energy[i] - energy[i-1])
	return signal[i-1] + t*(signal[i]-signal[i-1])
}
