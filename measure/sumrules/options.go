package sumrules

import "github.com/cwbudde/algo-xas/xas/spectrum"

// Config collects the analysis inputs. Windows and hole count have no
// physically meaningful defaults and must be supplied through options.
type Config struct {
	L3Window    [2]float64
	L2Window    [2]float64
	EdgePair    [2]float64
	HoleCount   float64
	XASIntegral float64
	XAS         *spectrum.Spectrum
}

// Option mutates a Config.
type Option func(*Config)

// WithL3Window sets the integration window covering the L3 edge.
func WithL3Window(lo, hi float64) Option {
	return func(cfg *Config) {
		cfg.L3Window = [2]float64{lo, hi}
	}
}

// WithL2Window sets the integration window covering the L2 edge.
func WithL2Window(lo, hi float64) Option {
	return func(cfg *Config) {
		cfg.L2Window = [2]float64{lo, hi}
	}
}

// WithEdgeEnergies records the L3 and L2 onsets. Windows not pinned
// explicitly are derived from them at analysis time: L3 from the spectrum
// start to the midpoint between the onsets, L2 from the midpoint to the
// spectrum end.
func WithEdgeEnergies(l3, l2 float64) Option {
	return func(cfg *Config) {
		cfg.EdgePair = [2]float64{l3, l2}
	}
}

// WithHoleCount sets the number of unoccupied d-shell holes.
func WithHoleCount(nh float64) Option {
	return func(cfg *Config) {
		cfg.HoleCount = nh
	}
}

// WithXASIntegral supplies the isotropic XAS integral r directly.
func WithXASIntegral(r float64) Option {
	return func(cfg *Config) {
		cfg.XASIntegral = r
	}
}

// WithXAS supplies a companion isotropic XAS spectrum from which r is
// integrated over both windows. WithXASIntegral takes precedence.
func WithXAS(s *spectrum.Spectrum) Option {
	return func(cfg *Config) {
		cfg.XAS = s
	}
}

// applyOptions folds the options into an empty config.
func applyOptions(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
