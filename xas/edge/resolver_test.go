package edge

import (
	"testing"
)

func TestEdgesInRangeSortedAndBounded(t *testing.T) {
	all := []Shell{ShellK, ShellL1, ShellL2, ShellL3, ShellM4, ShellM5}

	cases := []struct {
		name      string
		low, high float64
		shells    []Shell
	}{
		{"full table", 0, 2000, all},
		{"soft range L only", 400, 1000, nil},
		{"k edges", 250, 600, []Shell{ShellK}},
		{"m edges", 800, 1300, []Shell{ShellM4, ShellM5}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := EdgesInRange(c.low, c.high, c.shells...)
			for i, e := range got {
				if e.Energy < c.low || e.Energy > c.high {
					t.Fatalf("edge %s energy %v outside [%v, %v]", e.Label(), e.Energy, c.low, c.high)
				}
				if i > 0 && got[i-1].Energy > e.Energy {
					t.Fatalf("edges not sorted: %v before %v", got[i-1].Energy, e.Energy)
				}
			}
		})
	}
}

func TestEdgesInRangeDefaultFilterIsLOnly(t *testing.T) {
	// F K sits at 696.7 eV, inside the window; the default working set must
	// not surface it.
	got := EdgesInRange(690, 730)
	for _, e := range got {
		if e.Shell == ShellK || e.Shell == ShellM4 || e.Shell == ShellM5 {
			t.Fatalf("default filter returned non-L edge %s", e.Label())
		}
	}

	withK := EdgesInRange(690, 730, ShellK, ShellL2, ShellL3)
	foundF := false
	for _, e := range withK {
		if e.Element == "F" && e.Shell == ShellK {
			foundF = true
		}
	}
	if !foundF {
		t.Fatal("explicit K filter should surface F K at 696.7 eV")
	}
}

func TestEdgesInRangeEmpty(t *testing.T) {
	if got := EdgesInRange(100, 200); len(got) != 0 {
		t.Fatalf("expected no edges in [100, 200], got %d", len(got))
	}
	// Inverted window matches nothing.
	if got := EdgesInRange(800, 700); len(got) != 0 {
		t.Fatalf("expected no edges for inverted range, got %d", len(got))
	}
}

func TestRangeLabel(t *testing.T) {
	cases := []struct {
		name      string
		low, high float64
		want      string
	}{
		{"single edge", 705, 710, "Fe L3"},
		{"iron doublet", 700, 730, "Fe L2,3"},
		{"cobalt doublet", 770, 800, "Co L2,3"},
		{"multiple elements", 700, 780, "Fe L2,3 Mn L1 Co L3"},
		{"no match", 100, 200, ""},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := RangeLabel(c.low, c.high); got != c.want {
				t.Fatalf("RangeLabel(%v, %v) = %q, want %q", c.low, c.high, got, c.want)
			}
		})
	}
}

func TestExpandRoundTrip(t *testing.T) {
	windows := [][2]float64{
		{700, 730},
		{770, 800},
		{700, 780},
		{845, 875},
	}

	for _, w := range windows {
		label := RangeLabel(w[0], w[1])
		want := EdgesInRange(w[0], w[1])
		got := Expand(label)
		if len(got) != len(want) {
			t.Fatalf("window %v: Expand(%q) returned %d edges, want %d", w, label, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("window %v index %d: got %+v, want %+v", w, i, got[i], want[i])
			}
		}
	}
}

func TestExpandComposite(t *testing.T) {
	got := Expand("Fe L2,3")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Ascending energy: L3 before L2.
	if got[0].Shell != ShellL3 || got[1].Shell != ShellL2 {
		t.Fatalf("order = %v, %v; want L3, L2", got[0].Shell, got[1].Shell)
	}

	if got := Expand("nonsense"); got != nil {
		t.Fatalf("Expand(nonsense) = %v, want nil", got)
	}
}

func TestCenterEnergy(t *testing.T) {
	cases := []struct {
		label string
		want  float64
		ok    bool
	}{
		{"Fe L3", 706.8, true},
		{"Fe L2,3", 706.8, true},
		{"Gd M4,5", 1189.6, true},
		{"", 0, false},
		{"Xx L3", 0, false},
	}

	for _, c := range cases {
		got, ok := CenterEnergy(c.label)
		if ok != c.ok || got != c.want {
			t.Fatalf("CenterEnergy(%q) = %v, %v; want %v, %v", c.label, got, ok, c.want, c.ok)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	edges := All()
	if len(edges) == 0 {
		t.Fatal("empty table")
	}

	var found bool
	for _, e := range edges {
		if e.Element == "Fe" && e.Shell == ShellL3 {
			found = true
			if e.Energy != 706.8 {
				t.Fatalf("Fe L3 energy = %v, want 706.8", e.Energy)
			}
		}
	}
	if !found {
		t.Fatal("Fe L3 missing from All()")
	}

	// Mutating the copy must not corrupt the table.
	for i := range edges {
		edges[i].Energy = -1
	}
	if got, ok := Lookup("Fe L3"); !ok || got.Energy != 706.8 {
		t.Fatalf("Lookup after mutation = %+v, %v; want Fe L3 at 706.8", got, ok)
	}
}
