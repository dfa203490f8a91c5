package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-xas/internal/xastest"
)

func TestNewValidation(t *testing.T) {
	energy := xastest.EnergyAxis(700, 710, 11)
	signal := xastest.Constant(1.0, 11)

	if _, err := New(nil, nil); !errors.Is(err, ErrShape) {
		t.Fatalf("New(nil, nil) error = %v, want ErrShape", err)
	}

	if _, err := New(energy, signal[:10]); !errors.Is(err, ErrShape) {
		t.Fatalf("New with mismatched lengths error = %v, want ErrShape", err)
	}

	decreasing := []float64{700, 699, 698}
	if _, err := New(decreasing, []float64{1, 2, 3}); !errors.Is(err, ErrShape) {
		t.Fatalf("New with decreasing axis error = %v, want ErrShape", err)
	}

	duplicated := []float64{700, 700, 701}
	if _, err := New(duplicated, []float64{1, 2, 3}); !errors.Is(err, ErrShape) {
		t.Fatalf("New with duplicated axis value error = %v, want ErrShape", err)
	}

	s, err := New(energy, signal)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s.Stage != StageRaw {
		t.Fatalf("Stage = %v, want %v", s.Stage, StageRaw)
	}

	if s.Parent != nil {
		t.Fatalf("Parent = %v, want nil", s.Parent)
	}

	if s.Len() != 11 {
		t.Fatalf("Len = %d, want 11", s.Len())
	}
}

func TestNewCopiesInput(t *testing.T) {
	energy := []float64{700, 701, 702}
	signal := []float64{1, 2, 3}

	s, err := New(energy, signal)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	energy[0] = -1
	signal[0] = -1

	if s.Energy[0] != 700 || s.Signal[0] != 1 {
		t.Fatalf("spectrum aliases caller slices: energy=%v signal=%v", s.Energy[0], s.Signal[0])
	}
}

func TestStageStringRoundTrip(t *testing.T) {
	stages := []Stage{
		StageRaw,
		StageMonitorNormalized,
		StagePreEdgeNormalized,
		StageBackgroundSubtracted,
		StageSmoothed,
		StageDifference,
		StageAveraged,
	}

	for _, stage := range stages {
		parsed, err := ParseStage(stage.String())
		if err != nil {
			t.Fatalf("ParseStage(%q): %v", stage.String(), err)
		}

		if parsed != stage {
			t.Fatalf("ParseStage(%q) = %v, want %v", stage.String(), parsed, stage)
		}
	}

	if _, err := ParseStage("bogus"); err == nil {
		t.Fatal("ParseStage(bogus) succeeded, want error")
	}

	if got := Stage(99).String(); got != "Stage(99)" {
		t.Fatalf("Stage(99).String() = %q, want %q", got, "Stage(99)")
	}
}

func TestSub(t *testing.T) {
	energy := xastest.EnergyAxis(700, 720, 41)
	a, err := New(energy, xastest.StepEdge(energy, 1.0, 710, 1.0))
	if err != nil {
		t.Fatalf("New a: %v", err)
	}

	b, err := New(energy, xastest.StepEdge(energy, 0.8, 710, 1.0))
	if err != nil {
		t.Fatalf("New b: %v", err)
	}

	ab, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}

	ba, err := b.Sub(a)
	if err != nil {
		t.Fatalf("Sub reversed: %v", err)
	}

	if ab.Stage != StageDifference {
		t.Fatalf("Stage = %v, want %v", ab.Stage, StageDifference)
	}

	if ab.Parent != a {
		t.Fatal("difference parent is not the left operand")
	}

	for i := range ab.Signal {
		if math.Abs(ab.Signal[i]+ba.Signal[i]) > 1e-15 {
			t.Fatalf("a-b and b-a are not antisymmetric at %d: %v vs %v", i, ab.Signal[i], ba.Signal[i])
		}

		want := a.Signal[i] - b.Signal[i]
		if math.Abs(ab.Signal[i]-want) > 1e-15 {
			t.Fatalf("difference[%d] = %v, want %v", i, ab.Signal[i], want)
		}
	}
}

func TestSubAxisMismatch(t *testing.T) {
	energy := xastest.EnergyAxis(700, 720, 41)
	a, _ := New(energy, xastest.Constant(1, 41))

	short, _ := New(energy[:40], xastest.Constant(1, 40))
	if _, err := a.Sub(short); !errors.Is(err, ErrAxisMismatch) {
		t.Fatalf("Sub with shorter axis error = %v, want ErrAxisMismatch", err)
	}

	shifted := make([]float64, len(energy))
	for i, e := range energy {
		shifted[i] = e + 1e-3
	}

	other, _ := New(shifted, xastest.Constant(1, 41))
	if _, err := a.Sub(other); !errors.Is(err, ErrAxisMismatch) {
		t.Fatalf("Sub with shifted axis error = %v, want ErrAxisMismatch", err)
	}
}

func TestSameAxisTolerance(t *testing.T) {
	energy := xastest.EnergyAxis(700, 720, 41)
	a, _ := New(energy, xastest.Constant(1, 41))

	within := make([]float64, len(energy))
	for i, e := range energy {
		within[i] = e + 1e-8
	}

	b, _ := New(within, xastest.Constant(1, 41))
	if !a.SameAxis(b) {
		t.Fatal("axes differing by 1e-8 reported as distinct")
	}

	beyond := make([]float64, len(energy))
	for i, e := range energy {
		beyond[i] = e + 1e-3
	}

	c, _ := New(beyond, xastest.Constant(1, 41))
	if a.SameAxis(c) {
		t.Fatal("axes differing by 1e-3 reported as equal")
	}
}

func TestDivideByMonitor(t *testing.T) {
	energy := xastest.EnergyAxis(700, 710, 11)
	signal := []float64{2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22}

	s, err := New(energy, signal)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	monitor := xastest.Constant(2.0, 11)

	norm, err := s.DivideByMonitor(monitor)
	if err != nil {
		t.Fatalf("DivideByMonitor: %v", err)
	}

	if norm.Stage != StageMonitorNormalized {
		t.Fatalf("Stage = %v, want %v", norm.Stage, StageMonitorNormalized)
	}

	for i := range norm.Signal {
		want := signal[i] / 2
		if math.Abs(norm.Signal[i]-want) > 1e-15 {
			t.Fatalf("normalized[%d] = %v, want %v", i, norm.Signal[i], want)
		}
	}

	if _, err := s.DivideByMonitor(monitor[:10]); !errors.Is(err, ErrAxisMismatch) {
		t.Fatalf("short monitor error = %v, want ErrAxisMismatch", err)
	}

	monitor[5] = 0
	if _, err := s.DivideByMonitor(monitor); err == nil {
		t.Fatal("zero monitor sample accepted, want error")
	}
}

func TestChainOrdersRootFirst(t *testing.T) {
	energy := xastest.EnergyAxis(700, 710, 11)
	raw, err := New(energy, xastest.Constant(4.0, 11))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	norm, err := raw.DivideByMonitor(xastest.Constant(2.0, 11))
	if err != nil {
		t.Fatalf("DivideByMonitor: %v", err)
	}

	smooth, err := norm.Smooth(1.0)
	if err != nil {
		t.Fatalf("Smooth: %v", err)
	}

	chain := smooth.Chain()
	if len(chain) != 3 {
		t.Fatalf("len(chain) = %d, want 3", len(chain))
	}

	wantStages := []Stage{StageRaw, StageMonitorNormalized, StageSmoothed}
	for i, s := range chain {
		if s.Stage != wantStages[i] {
			t.Fatalf("chain[%d].Stage = %v, want %v", i, s.Stage, wantStages[i])
		}
	}

	if chain[0] != raw || chain[2] != smooth {
		t.Fatal("chain endpoints do not match the originating spectra")
	}
}
