// Package edge provides the absorption-edge reference table used to label
// X-ray absorption scans and to seed background fits.
//
// The table maps element/shell pairs (Fe L3, Ni L2, Gd M5, ...) to tabulated
// edge energies in eV and supports range queries: given the energy window of
// a scan, the resolver returns the candidate edges inside it and a
// conventional label, collapsing same-element spin-orbit pairs into the
// composite doublet notation ("Fe L2,3"). Energies follow the electron
// binding energies of the X-ray Data Booklet (LBNL), curated to the soft
// X-ray working range of typical dichroism beamlines.
package edge

import (
	"fmt"
	"strings"
)

// Shell identifies the core-level shell of an absorption edge. The constant
// order doubles as the conventional edge order used for tie-breaking.
type Shell int

const (
	ShellK Shell = iota
	ShellL1
	ShellL2
	ShellL3
	ShellM4
	ShellM5
)

var shellNames = [...]string{"K", "L1", "L2", "L3", "M4", "M5"}

// String returns the conventional shell name, e.g. "L3".
func (s Shell) String() string {
	if s < 0 || int(s) >= len(shellNames) {
		return fmt.Sprintf("Shell(%d)", int(s))
	}
	return shellNames[s]
}

// family returns the shell family letter ("K", "L", "M").
func (s Shell) family() string {
	return s.String()[:1]
}

// number returns the subshell index as a string, empty for K.
func (s Shell) number() string {
	return s.String()[1:]
}

// ParseShell maps a shell name such as "L3" to its Shell constant. Matching
// is case-insensitive.
func ParseShell(name string) (Shell, error) {
	for i, n := range shellNames {
		if strings.EqualFold(name, n) {
			return Shell(i), nil
		}
	}
	return 0, fmt.Errorf("edge: unknown shell %q", name)
}

// Edge is one tabulated absorption edge.
type Edge struct {
	Element string // chemical symbol, e.g. "Fe"
	Z       int    // atomic number
	Shell   Shell
	Energy  float64 // edge energy in eV
}

// Label returns the conventional "<element> <shell>" form, e.g. "Fe L3".
func (e Edge) Label() string {
	return e.Element + " " + e.Shell.String()
}
