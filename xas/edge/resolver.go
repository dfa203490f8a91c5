package edge

import (
	"sort"
	"strings"
)

// lShells is the default query filter: the L edges dominate the soft X-ray
// working range of the dichroism endstations this table serves.
var lShells = [...]Shell{ShellL1, ShellL2, ShellL3}

// EdgesInRange returns the tabulated edges whose energy lies in [low, high],
// ordered by ascending energy with ties broken by atomic number, then shell
// order. Without an explicit shell filter the search is restricted to the L
// edges; pass shells to widen or narrow the working set. An empty result is
// not an error: a window may legitimately contain no tabulated edge.
func EdgesInRange(low, high float64, shells ...Shell) []Edge {
	filter := shells
	if len(filter) == 0 {
		filter = lShells[:]
	}

	allowed := make(map[Shell]bool, len(filter))
	for _, s := range filter {
		allowed[s] = true
	}

	var out []Edge
	for _, e := range table {
		if allowed[e.Shell] && e.Energy >= low && e.Energy <= high {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Energy != out[j].Energy {
			return out[i].Energy < out[j].Energy
		}
		if out[i].Z != out[j].Z {
			return out[i].Z < out[j].Z
		}
		return out[i].Shell < out[j].Shell
	})
	return out
}

// RangeLabel resolves an energy window to a conventional edge label using
// the default L-edge working set. A single match yields its plain label
// ("Fe L3"). Same-element subshells collapse into the doublet notation
// ("Fe L2,3"). Matches from several elements are space-joined in ascending
// order of each element's first in-range energy. An empty string means no
// tabulated edge fell inside the window.
func RangeLabel(low, high float64) string {
	edges := EdgesInRange(low, high)
	if len(edges) == 0 {
		return ""
	}

	type group struct {
		element string
		shells  []Shell
	}
	var groups []group
	index := make(map[string]int)
	for _, e := range edges {
		i, ok := index[e.Element]
		if !ok {
			i = len(groups)
			index[e.Element] = i
			groups = append(groups, group{element: e.Element})
		}
		groups[i].shells = append(groups[i].shells, e.Shell)
	}

	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = g.element + " " + joinShells(g.shells)
	}
	return strings.Join(parts, " ")
}

// joinShells renders a shell set in conventional notation: one shell stays
// plain, same-family numbered shells collapse ("L2,3", "M4,5"), and mixed
// families fall back to space-joined names.
func joinShells(shells []Shell) string {
	if len(shells) == 1 {
		return shells[0].String()
	}

	sorted := make([]Shell, len(shells))
	copy(sorted, shells)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	family := sorted[0].family()
	nums := make([]string, 0, len(sorted))
	for _, s := range sorted {
		if s.family() != family || s.number() == "" {
			names := make([]string, len(sorted))
			for i, sh := range sorted {
				names[i] = sh.String()
			}
			return strings.Join(names, " ")
		}
		nums = append(nums, s.number())
	}
	return family + strings.Join(nums, ",")
}

// All returns a copy of the full reference table in its curated order.
func All() []Edge {
	out := make([]Edge, len(table))
	copy(out, table)
	return out
}

// Lookup returns the tabulated edge with the given plain label, e.g. "Ni L3".
// Element symbols match case-insensitively.
func Lookup(label string) (Edge, bool) {
	fields := strings.Fields(label)
	if len(fields) != 2 {
		return Edge{}, false
	}
	shell, err := ParseShell(fields[1])
	if err != nil {
		return Edge{}, false
	}
	for _, e := range table {
		if e.Shell == shell && strings.EqualFold(e.Element, fields[0]) {
			return e, true
		}
	}
	return Edge{}, false
}

// ElementEdges returns every tabulated edge of the given element symbol in
// shell order, or nil when the element is not tabulated.
func ElementEdges(element string) []Edge {
	var out []Edge
	for _, e := range table {
		if strings.EqualFold(e.Element, element) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Shell < out[j].Shell })
	return out
}

// Expand resolves a label back to its individual tabulated edges, accepting
// the composite and space-joined forms produced by RangeLabel ("Fe L2,3",
// "Fe L3 Co L3"). The result is ordered by ascending energy; unknown tokens
// are dropped. Expand(RangeLabel(lo, hi)) recovers the edges the resolver
// saw, which makes the label itself sufficient provenance.
func Expand(label string) []Edge {
	fields := strings.Fields(label)
	var out []Edge
	for i := 0; i+1 < len(fields); i += 2 {
		element, spec := fields[i], fields[i+1]
		for _, name := range expandShellSpec(spec) {
			if e, ok := Lookup(element + " " + name); ok {
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Energy < out[j].Energy })
	return out
}

// expandShellSpec turns "L2,3" into ["L2", "L3"] and leaves plain names as a
// single element.
func expandShellSpec(spec string) []string {
	if !strings.Contains(spec, ",") {
		return []string{spec}
	}
	family := spec[:1]
	var out []string
	for _, num := range strings.Split(spec[1:], ",") {
		out = append(out, family+num)
	}
	return out
}

// CenterEnergy resolves a label (plain or composite) to the energy used to
// center fit and exclusion windows: the lowest-energy edge it names, which
// for an L2,3 doublet is the L3 onset.
func CenterEnergy(label string) (float64, bool) {
	edges := Expand(label)
	if len(edges) == 0 {
		return 0, false
	}
	return edges[0].Energy, true
}
