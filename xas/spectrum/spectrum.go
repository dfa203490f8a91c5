// Package spectrum provides the per-channel data series of an X-ray
// absorption scan and its stage-by-stage transformations.
//
// A Spectrum never mutates. Every processing step (monitor division,
// pre-edge normalization, background subtraction, smoothing, differencing)
// returns a new Spectrum whose Parent field points at the stage it was
// derived from, forming a linear provenance chain back to the raw data.
// Stages share the energy axis; signals are freshly allocated per stage.
package spectrum

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-xas/xas/background"
)

// AxisTol is the absolute pointwise tolerance within which two energy axes
// count as the same grid.
const AxisTol = 1e-6

var (
	// ErrShape is returned when energies and samples disagree in length, the
	// axis is empty, or the axis is not strictly increasing.
	ErrShape = errors.New("spectrum: invalid data shape")
	// ErrAxisMismatch is returned when series on different energy grids are
	// combined.
	ErrAxisMismatch = errors.New("spectrum: energy axes differ")
	// ErrInsufficientData is returned when a required window holds fewer
	// points than the operation needs.
	ErrInsufficientData = errors.New("spectrum: insufficient points in window")
)

// Stage tags the processing stage that produced a Spectrum.
type Stage int

const (
	StageRaw Stage = iota
	StageMonitorNormalized
	StagePreEdgeNormalized
	StageBackgroundSubtracted
	StageSmoothed
	StageDifference
	StageAveraged
)

var stageNames = [...]string{
	"raw",
	"monitor-normalized",
	"pre-edge-normalized",
	"background-subtracted",
	"smoothed",
	"difference",
	"averaged",
}

// String returns the stage slug used in persisted files and reports.
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage maps a stage slug back to its Stage.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("spectrum: unknown stage %q", name)
}

// Spectrum is one detection channel sampled over a strictly increasing
// energy axis. The slices are owned by the Spectrum and must be treated as
// read-only; transformations return new instances instead of mutating.
type Spectrum struct {
	Energy []float64       // eV, strictly increasing
	Signal []float64       // same length as Energy
	Stage  Stage           // stage that produced this view
	Parent *Spectrum       // immediate ancestor, nil for raw data
	Fit    *background.Fit // attached by background subtraction
}

// New validates and copies the series into a raw-stage Spectrum.
func New(energy, signal []float64) (*Spectrum, error) {
	if err := validateAxis(energy, signal); err != nil {
		return nil, err
	}
	return &Spectrum{
		Energy: append([]float64(nil), energy...),
		Signal: append([]float64(nil), signal...),
		Stage:  StageRaw,
	}, nil
}

// NewStage builds a validated Spectrum at an explicit stage with optional
// parent and fit. It exists for loaders that reconstruct persisted
// provenance chains; pipeline code should use the transformation methods.
func NewStage(energy, signal []float64, stage Stage, parent *Spectrum, fit *background.Fit) (*Spectrum, error) {
	if err := validateAxis(energy, signal); err != nil {
		return nil, err
	}
	return &Spectrum{
		Energy: append([]float64(nil), energy...),
		Signal: append([]float64(nil), signal...),
		Stage:  stage,
		Parent: parent,
		Fit:    fit,
	}, nil
}

func validateAxis(energy, signal []float64) error {
	if len(energy) == 0 {
		return fmt.Errorf("%w: empty axis", ErrShape)
	}
	if len(energy) != len(signal) {
		return fmt.Errorf("%w: %d energies vs %d samples", ErrShape, len(energy), len(signal))
	}
	for i := 1; i < len(energy); i++ {
		if energy[i] <= energy[i-1] {
			return fmt.Errorf("%w: axis not strictly increasing at index %d (%g after %g)",
				ErrShape, i, energy[i], energy[i-1])
		}
	}
	return nil
}

// derive wraps a transformed signal as a child stage sharing the energy axis.
func (s *Spectrum) derive(signal []float64, stage Stage) *Spectrum {
	return &Spectrum{Energy: s.Energy, Signal: signal, Stage: stage, Parent: s}
}

// Len returns the number of samples.
func (s *Spectrum) Len() int {
	return len(s.Energy)
}

// SameAxis reports whether two spectra sample the same energy grid within
// AxisTol.
func (s *Spectrum) SameAxis(o *Spectrum) bool {
	if len(s.Energy) != len(o.Energy) {
		return false
	}
	for i := range s.Energy {
		if d := s.Energy[i] - o.Energy[i]; d > AxisTol || d < -AxisTol {
			return false
		}
	}
	return true
}

// Sub returns the pointwise difference s - o as a difference-stage Spectrum
// with s as its parent. Both spectra must share the energy grid.
func (s *Spectrum) Sub(o *Spectrum) (*Spectrum, error) {
	if len(s.Signal) != len(o.Signal) {
		return nil, fmt.Errorf("%w: %d vs %d samples", ErrAxisMismatch, len(s.Signal), len(o.Signal))
	}
	if !s.SameAxis(o) {
		return nil, fmt.Errorf("%w: grids deviate beyond %g", ErrAxisMismatch, AxisTol)
	}

	out := make([]float64, len(s.Signal))
	vecmath.ScaleBlock(out, o.Signal, -1)
	vecmath.AddBlockInPlace(out, s.Signal)
	return s.derive(out, StageDifference), nil
}

// DivideByMonitor normalizes the signal by the beamline monitor channel
// (incident intensity), sample by sample.
func (s *Spectrum) DivideByMonitor(monitor []float64) (*Spectrum, error) {
	if len(monitor) != len(s.Signal) {
		return nil, fmt.Errorf("%w: %d monitor counts vs %d samples", ErrAxisMismatch, len(monitor), len(s.Signal))
	}

	out := make([]float64, len(s.Signal))
	for i, m := range monitor {
		if m == 0 {
			return nil, fmt.Errorf("spectrum: zero monitor count at index %d", i)
		}
		out[i] = s.Signal[i] / m
	}
	return s.derive(out, StageMonitorNormalized), nil
}

// Chain returns the provenance chain from the raw ancestor to s, in
// processing order.
func (s *Spectrum) Chain() []*Spectrum {
	var rev []*Spectrum
	for cur := s; cur != nil; cur = cur.Parent {
		rev = append(rev, cur)
	}
	out := make([]*Spectrum, len(rev))
	for i, sp := range rev {
		out[len(rev)-1-i] = sp
	}
	return out
}
