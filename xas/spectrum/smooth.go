package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Smooth convolves the signal with a unit-area Gaussian kernel of the given
// sigma in samples, using FFT convolution with reflective padding so flat
// regions and endpoints keep their level. The axis is assumed uniformly
// sampled; sigma expresses the kernel width in grid steps. The kernel is
// truncated at four sigma.
func (s *Spectrum) Smooth(sigma float64) (*Spectrum, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("spectrum: smoothing sigma must be positive: %g", sigma)
	}

	half := int(math.Ceil(4 * sigma))
	if half < 1 {
		half = 1
	}
	if half >= len(s.Signal) {
		return nil, fmt.Errorf("%w: kernel half-width %d for %d samples", ErrInsufficientData, half, len(s.Signal))
	}

	kernel := gaussianKernel(sigma, half)
	padded := reflectPad(s.Signal, half)

	full, err := fftConvolve(padded, kernel)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(s.Signal))
	copy(out, full[2*half:2*half+len(s.Signal)])
	return s.derive(out, StageSmoothed), nil
}

// gaussianKernel builds a unit-area Gaussian of 2*half+1 taps.
func gaussianKernel(sigma float64, half int) []float64 {
	kernel := make([]float64, 2*half+1)
	sum := 0.0
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	vecmath.ScaleBlockInPlace(kernel, 1/sum)
	return kernel
}

// reflectPad mirrors half samples around each end of the signal, excluding
// the boundary sample itself.
func reflectPad(signal []float64, half int) []float64 {
	n := len(signal)
	out := make([]float64, n+2*half)
	for i := range half {
		out[i] = signal[half-i]
		out[n+half+i] = signal[n-2-i]
	}
	copy(out[half:half+n], signal)
	return out
}

// fftConvolve returns the full linear convolution of signal and kernel via a
// single zero-padded FFT round trip.
func fftConvolve(signal, kernel []float64) ([]float64, error) {
	outLen := len(signal) + len(kernel) - 1
	fftSize := nextPowerOf2(outLen)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	a := make([]complex128, fftSize)
	for i, v := range signal {
		a[i] = complex(v, 0)
	}
	b := make([]complex128, fftSize)
	for i, v := range kernel {
		b[i] = complex(v, 0)
	}

	if err := plan.Forward(a, a); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	if err := plan.Forward(b, b); err != nil {
		return nil, fmt.Errorf("spectrum: forward FFT failed: %w", err)
	}
	for i := range a {
		a[i] *= b[i]
	}
	if err := plan.Inverse(a, a); err != nil {
		return nil, fmt.Errorf("spectrum: inverse FFT failed: %w", err)
	}

	out := make([]float64, outLen)
	for i := range out {
		out[i] = real(a[i])
	}
	return out, nil
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
