// Package scan groups the detection-mode spectra of one measurement with
// its beamline metadata, and applies pipeline stages across all modes.
package scan

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-xas/xas/background"
	"github.com/cwbudde/algo-xas/xas/edge"
	"github.com/cwbudde/algo-xas/xas/spectrum"
)

// ErrModeMismatch is returned when two containers with different mode sets
// are combined. A difference over an incomplete mode set is physically
// meaningless, so a missing mode is never skipped silently.
var ErrModeMismatch = errors.New("scan: mode sets differ")

// ErrNoEdge is returned when an operation needs a resolved absorption edge
// but neither the config nor the metadata provides one.
var ErrNoEdge = errors.New("scan: no resolved edge")

// ErrDuplicateMode is returned when a mode label is registered twice.
var ErrDuplicateMode = errors.New("scan: duplicate mode label")

// Metadata describes the beamline conditions of one scan. It is attached at
// load time and treated as immutable afterwards. Sources is only set on
// derived containers and records the scan numbers combined into them.
type Metadata struct {
	ScanNo     int     `json:"scan_no"`
	EdgeLabel  string  `json:"edge_label,omitempty"`
	Temp       float64 `json:"temperature_k"`
	MagField   float64 `json:"field_t"`
	Pol        string  `json:"polarization,omitempty"`
	Endstation string  `json:"endstation,omitempty"`
	Sample     string  `json:"sample,omitempty"`
	Sources    []int   `json:"sources,omitempty"`
}

// Container holds one spectrum per detection mode, in detection order. All
// modes share the energy axis of the first registered mode.
type Container struct {
	Name string
	Meta Metadata

	labels  []string
	spectra map[string]*spectrum.Spectrum
}

// New creates an empty container for the given scan.
func New(name string, meta Metadata) *Container {
	return &Container{
		Name:    name,
		Meta:    meta,
		spectra: make(map[string]*spectrum.Spectrum),
	}
}

// AddMode registers a detection mode. Modes keep registration order and
// must share the energy axis of the first mode.
func (c *Container) AddMode(label string, s *spectrum.Spectrum) error {
	if label == "" {
		return fmt.Errorf("scan: empty mode label")
	}
	if s == nil {
		return fmt.Errorf("scan: nil spectrum for mode %q", label)
	}
	if _, ok := c.spectra[label]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMode, label)
	}
	if len(c.labels) > 0 && !c.spectra[c.labels[0]].SameAxis(s) {
		return fmt.Errorf("%w: mode %q is not on the container axis", spectrum.ErrAxisMismatch, label)
	}

	c.labels = append(c.labels, label)
	c.spectra[label] = s
	return nil
}

// Modes returns the mode labels in registration order.
func (c *Container) Modes() []string {
	return append([]string(nil), c.labels...)
}

// Get returns the current stage of the named mode.
func (c *Container) Get(label string) (*spectrum.Spectrum, bool) {
	s, ok := c.spectra[label]
	return s, ok
}

// Energy returns the shared energy axis, or nil for an empty container.
func (c *Container) Energy() []float64 {
	if len(c.labels) == 0 {
		return nil
	}
	return c.spectra[c.labels[0]].Energy
}

// DivideByPreEdge normalizes every mode by its pre-edge baseline and
// advances the container to the normalized stage. The update is atomic: on
// any failure no mode is replaced.
func (c *Container) DivideByPreEdge(cfg spectrum.PreEdgeConfig) error {
	next := make(map[string]*spectrum.Spectrum, len(c.labels))
	for _, label := range c.labels {
		norm, err := c.spectra[label].NormalizePreEdge(cfg)
		if err != nil {
			return fmt.Errorf("mode %q: %w", label, err)
		}
		next[label] = norm
	}

	for label, s := range next {
		c.spectra[label] = s
	}
	return nil
}

// AutoEdgeBackground fits and subtracts the step-edge background on every
// mode, centering the peak exclusion window on the container's resolved
// edge when the config does not pin one. Modes are independent: a failed
// fit is recorded under its label and the remaining modes still advance.
// The returned map is empty when every mode succeeded.
func (c *Container) AutoEdgeBackground(cfg background.Config) (map[string]error, error) {
	if cfg.EdgeEnergy == 0 {
		center, ok := edge.CenterEnergy(c.Meta.EdgeLabel)
		if !ok {
			return nil, fmt.Errorf("%w: label %q", ErrNoEdge, c.Meta.EdgeLabel)
		}
		cfg.EdgeEnergy = center
	}

	failures := make(map[string]error)
	for _, label := range c.labels {
		s := c.spectra[label]

		fit, err := s.FitBackground(cfg)
		if err != nil {
			failures[label] = err
			continue
		}

		sub, err := s.SubtractBackground(fit)
		if err != nil {
			failures[label] = err
			continue
		}

		c.spectra[label] = sub
	}
	return failures, nil
}

// Sub computes the per-mode difference c - o and returns it as a new
// container named after the dichroism classification of the two scans. The
// mode sets must match exactly and all pairs must share the energy axis.
// The result metadata records both source scan numbers.
func (c *Container) Sub(o *Container) (*Container, error) {
	if len(c.labels) != len(o.labels) {
		return nil, fmt.Errorf("%w: %d vs %d modes", ErrModeMismatch, len(c.labels), len(o.labels))
	}
	for _, label := range c.labels {
		if _, ok := o.spectra[label]; !ok {
			return nil, fmt.Errorf("%w: mode %q missing from subtrahend", ErrModeMismatch, label)
		}
	}

	kind := Classify(c.Meta, o.Meta)

	meta := c.Meta
	meta.ScanNo = 0
	meta.Pol = joinPols(c.Meta.Pol, o.Meta.Pol)
	meta.Sources = []int{c.Meta.ScanNo, o.Meta.ScanNo}

	out := New(fmt.Sprintf("%s_%d-%d", kind, c.Meta.ScanNo, o.Meta.ScanNo), meta)
	for _, label := range c.labels {
		diff, err := c.spectra[label].Sub(o.spectra[label])
		if err != nil {
			return nil, fmt.Errorf("mode %q: %w", label, err)
		}
		if err := out.AddMode(label, diff); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func joinPols(a, b string) string {
	if a == "" && b == "" {
		return ""
	}
	return a + "-" + b
}
