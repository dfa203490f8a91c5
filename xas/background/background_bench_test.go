package background

import (
	"testing"

	"github.com/cwbudde/algo-xas/internal/xastest"
)

func benchEdgeSignal(n int) ([]float64, []float64) {
	energy := xastest.EnergyAxis(680, 750, n)
	signal := xastest.Add(
		xastest.StepEdge(energy, 1.0, 706.8, 1.2),
		xastest.Polynomial(energy, 706.8, 0.3, 0.002),
		xastest.Lorentzian(energy, 2.0, 706.8, 1.0),
	)
	return energy, signal
}

func BenchmarkFitStepEdge(b *testing.B) {
	energy, signal := benchEdgeSignal(351)
	cfg := DefaultConfig(706.8)

	b.ResetTimer()

	for b.Loop() {
		if _, err := FitStepEdge(energy, signal, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFitStepEdgeQuartic(b *testing.B) {
	energy, signal := benchEdgeSignal(351)
	cfg := DefaultConfig(706.8)
	cfg.PolyDegree = 4

	b.ResetTimer()

	for b.Loop() {
		if _, err := FitStepEdge(energy, signal, cfg); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFitStepEdgeDense(b *testing.B) {
	energy, signal := benchEdgeSignal(1401)
	cfg := DefaultConfig(706.8)

	b.ResetTimer()

	for b.Loop() {
		if _, err := FitStepEdge(energy, signal, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
