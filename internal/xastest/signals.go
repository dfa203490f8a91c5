// Package xastest provides deterministic synthetic spectra and tolerance
// helpers shared by the processing-pipeline tests.
package xastest

import (
	"math"
	"math/rand"
)

// EnergyAxis generates a strictly increasing linear axis of n points
// spanning [lo, hi].
func EnergyAxis(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

// StepEdge evaluates an arctangent absorption step of the given height,
// center and width over the energy axis. It saturates to zero well below
// the center and to height well above it.
func StepEdge(energy []float64, height, center, width float64) []float64 {
	out := make([]float64, len(energy))
	for i, e := range energy {
		out[i] = height * (math.Atan((e-center)/width)/math.Pi + 0.5)
	}
	return out
}

// Lorentzian evaluates a Lorentzian line of the given peak amplitude, center
// and full width at half maximum over the energy axis.
func Lorentzian(energy []float64, amp, center, fwhm float64) []float64 {
	out := make([]float64, len(energy))
	hw := fwhm / 2
	for i, e := range energy {
		d := e - center
		out[i] = amp * hw * hw / (d*d + hw*hw)
	}
	return out
}

// Polynomial evaluates sum_k coeffs[k]*(e-pivot)^k over the energy axis.
func Polynomial(energy []float64, pivot float64, coeffs ...float64) []float64 {
	out := make([]float64, len(energy))
	for i, e := range energy {
		u := e - pivot
		up := 1.0
		for _, c := range coeffs {
			out[i] += c * up
			up *= u
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for
// reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Constant generates a constant-valued signal.
func Constant(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Add sums any number of equal-length signals elementwise.
func Add(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, s := range signals {
		for i, v := range s {
			out[i] += v
		}
	}
	return out
}
