package aggregate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cwbudde/algo-xas/internal/xastest"
	"github.com/cwbudde/algo-xas/xas/background"
	"github.com/cwbudde/algo-xas/xas/scan"
	"github.com/cwbudde/algo-xas/xas/spectrum"
)

// edgeScan builds a container with a clean Fe L3 step in its tey mode.
func edgeScan(t *testing.T, no int, label string) *scan.Container {
	t.Helper()

	energy := xastest.EnergyAxis(680, 750, 351)
	signal := xastest.Add(
		xastest.StepEdge(energy, 1.0, 706.8, 1.2),
		xastest.Constant(0.2, len(energy)),
	)

	s, err := spectrum.New(energy, signal)
	if err != nil {
		t.Fatalf("spectrum.New: %v", err)
	}

	c := scan.New(fmt.Sprintf("scan_%d", no), scan.Metadata{ScanNo: no, EdgeLabel: label})
	if err := c.AddMode("tey", s); err != nil {
		t.Fatalf("AddMode: %v", err)
	}
	return c
}

func TestFitBackgroundsAdvancesAllScans(t *testing.T) {
	scans := []*scan.Container{
		edgeScan(t, 101, "Fe L2,3"),
		edgeScan(t, 102, "Fe L2,3"),
		edgeScan(t, 103, "Fe L2,3"),
	}

	results := FitBackgrounds(context.Background(), background.Config{}, scans...)

	if len(results) != len(scans) {
		t.Fatalf("got %d results, want %d", len(results), len(scans))
	}

	for i, res := range results {
		if res.ScanNo != scans[i].Meta.ScanNo {
			t.Fatalf("results[%d].ScanNo = %d, want input order %d", i, res.ScanNo, scans[i].Meta.ScanNo)
		}
		if res.Failed() {
			t.Fatalf("scan %d failed: err=%v modes=%v", res.ScanNo, res.Err, res.Modes)
		}

		tey, _ := scans[i].Get("tey")
		if tey.Stage != spectrum.StageBackgroundSubtracted {
			t.Fatalf("scan %d stage = %v, want %v", res.ScanNo, tey.Stage, spectrum.StageBackgroundSubtracted)
		}
	}
}

func TestFitBackgroundsIsolatesScanFailures(t *testing.T) {
	good := edgeScan(t, 101, "Fe L2,3")
	unresolvable := edgeScan(t, 102, "")

	results := FitBackgrounds(context.Background(), background.Config{}, good, unresolvable)

	if results[0].Failed() {
		t.Fatalf("good scan failed: %v", results[0].Err)
	}

	if !errors.Is(results[1].Err, scan.ErrNoEdge) {
		t.Fatalf("results[1].Err = %v, want ErrNoEdge", results[1].Err)
	}

	tey, _ := good.Get("tey")
	if tey.Stage != spectrum.StageBackgroundSubtracted {
		t.Fatal("good scan did not advance despite sibling failure")
	}
}

func TestFitBackgroundsRecordsModeFailures(t *testing.T) {
	c := edgeScan(t, 101, "Fe L2,3")

	flat, err := spectrum.New(xastest.EnergyAxis(680, 750, 351), xastest.Constant(1, 351))
	if err != nil {
		t.Fatalf("spectrum.New: %v", err)
	}
	if err := c.AddMode("flat", flat); err != nil {
		t.Fatalf("AddMode: %v", err)
	}

	results := FitBackgrounds(context.Background(), background.Config{}, c)

	if results[0].Err != nil {
		t.Fatalf("scan-level error = %v, want per-mode isolation", results[0].Err)
	}
	if _, ok := results[0].Modes["flat"]; !ok {
		t.Fatalf("Modes = %v, want an entry for the flat mode", results[0].Modes)
	}
	if !results[0].Failed() {
		t.Fatal("Failed() = false with a mode failure present")
	}

	tey, _ := c.Get("tey")
	if tey.Stage != spectrum.StageBackgroundSubtracted {
		t.Fatal("tey mode did not advance despite flat-mode failure")
	}
}

func TestFitBackgroundsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := FitBackgrounds(ctx, background.Config{}, edgeScan(t, 101, "Fe L2,3"))

	if !errors.Is(results[0].Err, context.Canceled) {
		t.Fatalf("results[0].Err = %v, want context.Canceled", results[0].Err)
	}
}

func TestFitResultFailed(t *testing.T) {
	if (FitResult{}).Failed() {
		t.Fatal("zero FitResult reports failure")
	}
	if !(FitResult{Err: errors.New("x")}).Failed() {
		t.Fatal("scan error not reported as failure")
	}
	if !(FitResult{Modes: map[string]error{"tey": errors.New("x")}}).Failed() {
		t.Fatal("mode error not reported as failure")
	}
}
