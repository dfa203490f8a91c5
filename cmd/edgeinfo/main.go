// Command edgeinfo prints tabulated X-ray absorption edge energies.
//
// Usage:
//
//	edgeinfo [flags] [label ...]
//
// Labels accept the composite doublet notation produced by the range
// resolver ("Fe L2,3") as well as plain element/shell pairs ("Ni L3").
// Without arguments it prints the whole reference table.
//
// Examples:
//
//	edgeinfo "Fe L2,3"
//	edgeinfo -element Gd
//	edgeinfo -range 700:740
//	edgeinfo -range 520:560 -shells K,L3
//	edgeinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-xas/xas/edge"
)

func main() {
	element := flag.String("element", "", "print every tabulated edge of one element symbol")
	window := flag.String("range", "", "print edges inside an energy window, given as lo:hi in eV")
	shells := flag.String("shells", "", "comma-separated shell filter for -range, full shell names (default: L shells)")
	list := flag.Bool("list", false, "list tabulated element symbols")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: edgeinfo [flags] [label ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints tabulated X-ray absorption edge energies.\n")
		fmt.Fprintf(os.Stderr, "Without arguments, prints the whole reference table.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  edgeinfo \"Fe L2,3\" \"Ni L3\"\n")
		fmt.Fprintf(os.Stderr, "  edgeinfo -element Gd\n")
		fmt.Fprintf(os.Stderr, "  edgeinfo -range 700:740\n")
		fmt.Fprintf(os.Stderr, "  edgeinfo -list\n")
	}
	flag.Parse()

	switch {
	case *list:
		printElements()
		return

	case *element != "":
		edges := edge.ElementEdges(*element)
		if len(edges) == 0 {
			fmt.Fprintf(os.Stderr, "error: element %q is not tabulated (use -list to see symbols)\n", *element)
			os.Exit(1)
		}
		printEdges(edges)
		return

	case *window != "":
		lo, hi, err := parseRange(*window)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		filter, err := parseShells(*shells)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		edges := edge.EdgesInRange(lo, hi, filter...)
		if len(edges) == 0 {
			fmt.Fprintf(os.Stderr, "error: no tabulated edge in [%g, %g] eV\n", lo, hi)
			os.Exit(1)
		}
		printEdges(edges)
		if *shells == "" {
			if label := edge.RangeLabel(lo, hi); label != "" {
				fmt.Printf("\nlabel: %s\n", label)
			}
		}
		return
	}

	labels := flag.Args()
	if len(labels) == 0 {
		printEdges(edge.All())
		return
	}

	var edges []edge.Edge
	for _, label := range labels {
		expanded := edge.Expand(label)
		if len(expanded) == 0 {
			fmt.Fprintf(os.Stderr, "warning: unknown edge %q (use -list to see elements)\n", label)
			continue
		}
		edges = append(edges, expanded...)
	}
	if len(edges) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching edges\n")
		os.Exit(1)
	}
	printEdges(edges)
}

// parseRange splits a "lo:hi" energy window, swapping reversed bounds.
func parseRange(s string) (lo, hi float64, err error) {
	loStr, hiStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("range must be lo:hi in eV, got %q", s)
	}
	lo, err = strconv.ParseFloat(strings.TrimSpace(loStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad lower bound %q", loStr)
	}
	hi, err = strconv.ParseFloat(strings.TrimSpace(hiStr), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad upper bound %q", hiStr)
	}
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi, nil
}

func parseShells(s string) ([]edge.Shell, error) {
	if s == "" {
		return nil, nil
	}
	var out []edge.Shell
	for _, name := range strings.Split(s, ",") {
		sh, err := edge.ParseShell(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, nil
}

func printElements() {
	type elem struct {
		symbol string
		z      int
	}
	seen := make(map[string]bool)
	var elems []elem
	for _, e := range edge.All() {
		if seen[e.Element] {
			continue
		}
		seen[e.Element] = true
		elems = append(elems, elem{e.Element, e.Z})
	}
	sort.Slice(elems, func(i, j int) bool { return elems[i].z < elems[j].z })
	for _, el := range elems {
		fmt.Println(el.symbol)
	}
}

func printEdges(edges []edge.Edge) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Label\tElement\tZ\tShell\tEnergy [eV]\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-----\t-------\t-\t-----\t-----------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, e := range edges {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%.1f\n",
			e.Label(), e.Element, e.Z, e.Shell, e.Energy,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
