// Package aggregate combines related scans: it finds prior measurements
// taken under matching conditions, averages them by polarization, and runs
// the background pipeline across scans on a bounded worker pool.
package aggregate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-xas/xas/scan"
)

// ErrAmbiguousPolarization is returned when the scans to average do not
// split into exactly two polarization states.
var ErrAmbiguousPolarization = errors.New("aggregate: need exactly two polarization states")

// Loader resolves a scan number to a loaded container. Implementations
// live with the persistence layer; the aggregator only needs this seam.
type Loader interface {
	Load(ctx context.Context, scanNo int) (*scan.Container, error)
}

const (
	defaultLookback = 10
	defaultTempTol  = 1.0
	defaultFieldTol = 0.1
)

// SearchConfig bounds the similarity search. Zero values take the
// defaults.
type SearchConfig struct {
	// Lookback is how many scan numbers before the reference to try.
	Lookback int
	// TempTol is the accepted temperature deviation in Kelvin.
	TempTol float64
	// FieldTol is the accepted deviation of the field magnitude in Tesla.
	FieldTol float64
}

// DefaultSearchConfig returns the usual beamline-practice tolerances.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Lookback: defaultLookback,
		TempTol:  defaultTempTol,
		FieldTol: defaultFieldTol,
	}
}

func normalizeSearchConfig(cfg SearchConfig) SearchConfig {
	if cfg.Lookback <= 0 {
		cfg.Lookback = defaultLookback
	}

	if cfg.TempTol <= 0 {
		cfg.TempTol = defaultTempTol
	}

	if cfg.FieldTol <= 0 {
		cfg.FieldTol = defaultFieldTol
	}

	return cfg
}

// FindSimilar walks backward from the reference scan number and loads up
// to cfg.Lookback prior scans, keeping those measured under the same
// conditions: equal edge label, temperature within TempTol, field
// magnitude within FieldTol. The field sign is deliberately ignored so
// that the two halves of an XMCD pair find each other. Scans that fail to
// load or do not match are skipped, not fatal. Survivors come back in
// ascending scan order.
func FindSimilar(ctx context.Context, ld Loader, ref *scan.Container, cfg SearchConfig) ([]*scan.Container, error) {
	if ld == nil || ref == nil {
		return nil, fmt.Errorf("aggregate: nil loader or reference scan")
	}
	cfg = normalizeSearchConfig(cfg)

	var out []*scan.Container
	for no := ref.Meta.ScanNo - 1; no >= ref.Meta.ScanNo-cfg.Lookback; no-- {
		if no <= 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cand, err := ld.Load(ctx, no)
		if err != nil {
			continue
		}
		if similar(ref.Meta, cand.Meta, cfg) {
			out = append(out, cand)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Meta.ScanNo < out[j].Meta.ScanNo })
	return out, nil
}

// similar applies the condition-matching policy. An unlabeled reference
// matches nothing: without a resolved edge the comparison is undefined.
func similar(ref, cand scan.Metadata, cfg SearchConfig) bool {
	if ref.EdgeLabel == "" || cand.EdgeLabel != ref.EdgeLabel {
		return false
	}
	if math.Abs(cand.Temp-ref.Temp) > cfg.TempTol {
		return false
	}
	return math.Abs(math.Abs(cand.MagField)-math.Abs(ref.MagField)) <= cfg.FieldTol
}
