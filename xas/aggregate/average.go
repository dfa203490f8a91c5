package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/algo-xas/xas/scan"
	"github.com/cwbudde/algo-xas/xas/spectrum"
)

// AveragePolarized partitions the scans by polarization label and averages
// each group mode by mode. Exactly two polarization states must be present
// since the downstream dichroism is a binary comparison. The two averaged
// containers return in first-seen polarization order. Axes must be
// identical within a group: averaging never resamples, so a mismatched
// axis is an error rather than a silent distortion.
func AveragePolarized(scans ...*scan.Container) (*scan.Container, *scan.Container, error) {
	var pols []string
	groups := make(map[string][]*scan.Container)
	for _, c := range scans {
		if c == nil {
			return nil, nil, fmt.Errorf("aggregate: nil scan")
		}
		pol := c.Meta.Pol
		if _, ok := groups[pol]; !ok {
			pols = append(pols, pol)
		}
		groups[pol] = append(groups[pol], c)
	}

	if len(pols) != 2 {
		return nil, nil, fmt.Errorf("%w: got %d (%s) across %d scans",
			ErrAmbiguousPolarization, len(pols), strings.Join(pols, ", "), len(scans))
	}

	first, err := averageGroup(groups[pols[0]])
	if err != nil {
		return nil, nil, fmt.Errorf("polarization %q: %w", pols[0], err)
	}

	second, err := averageGroup(groups[pols[1]])
	if err != nil {
		return nil, nil, fmt.Errorf("polarization %q: %w", pols[1], err)
	}

	return first, second, nil
}

// averageGroup computes the per-mode elementwise mean over same-polarized
// scans. The result records the source scan numbers and carries the first
// scan's conditions.
func averageGroup(group []*scan.Container) (*scan.Container, error) {
	lead := group[0]
	labels := lead.Modes()

	sources := make([]int, 0, len(group))
	for _, c := range group {
		if got := len(c.Modes()); got != len(labels) {
			return nil, fmt.Errorf("%w: scan %d has %d modes, lead has %d",
				scan.ErrModeMismatch, c.Meta.ScanNo, got, len(labels))
		}
		sources = append(sources, c.Meta.ScanNo)
	}
	sort.Ints(sources)

	meta := lead.Meta
	meta.ScanNo = 0
	meta.Sources = sources

	out := scan.New("avg_"+lead.Meta.Pol, meta)

	for _, label := range labels {
		leadSpec, _ := lead.Get(label)

		acc := make([]float64, leadSpec.Len())
		for _, c := range group {
			s, ok := c.Get(label)
			if !ok {
				return nil, fmt.Errorf("%w: mode %q missing from scan %d",
					scan.ErrModeMismatch, label, c.Meta.ScanNo)
			}
			if !s.SameAxis(leadSpec) {
				return nil, fmt.Errorf("%w: scan %d mode %q",
					spectrum.ErrAxisMismatch, c.Meta.ScanNo, label)
			}
			vecmath.AddBlockInPlace(acc, s.Signal)
		}
		vecmath.ScaleBlockInPlace(acc, 1/float64(len(group)))

		avg, err := spectrum.NewStage(leadSpec.Energy, acc, spectrum.StageAveraged, nil, nil)
		if err != nil {
			return nil, err
		}
		if err := out.AddMode(label, avg); err != nil {
			return nil, err
		}
	}

	return out, nil
}
