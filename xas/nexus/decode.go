package nexus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cwbudde/algo-xas/xas/scan"
	"github.com/cwbudde/algo-xas/xas/spectrum"
)

// Read loads every container from the NXxas document at path.
func Read(path string) ([]*scan.Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nexus: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode parses an NXxas document and rebuilds the containers with their
// provenance chains re-linked in stage order. Containers come back sorted
// by scan number, derived entries (which have none) last by name.
func Decode(r io.Reader) ([]*scan.Container, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("nexus: decode: %w", err)
	}
	if doc.Class != classRoot {
		return nil, fmt.Errorf("%w: root class %q", ErrFormat, doc.Class)
	}

	keys := make([]string, 0, len(doc.Entries))
	for key := range doc.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]*scan.Container, 0, len(keys))
	for _, key := range keys {
		c, err := decodeEntry(doc.Entries[key])
		if err != nil {
			return nil, fmt.Errorf("nexus: entry %q: %w", key, err)
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Meta.ScanNo, out[j].Meta.ScanNo
		switch {
		case a == b:
			return out[i].Name < out[j].Name
		case a == 0:
			return false
		case b == 0:
			return true
		default:
			return a < b
		}
	})
	return out, nil
}

func decodeEntry(entry entryDoc) (*scan.Container, error) {
	if entry.Definition != definition {
		return nil, fmt.Errorf("%w: definition %q", ErrFormat, entry.Definition)
	}

	c := scan.New(entry.Name, docToMeta(entry.Meta))
	for _, mode := range entry.Modes {
		s, err := decodeMode(entry.Energy, mode)
		if err != nil {
			return nil, fmt.Errorf("mode %q: %w", mode.Label, err)
		}
		if err := c.AddMode(mode.Label, s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// decodeMode rebuilds the stage chain of one mode, raw stage first.
func decodeMode(energy []float64, mode modeDoc) (*spectrum.Spectrum, error) {
	if len(mode.Stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrFormat)
	}

	var cur *spectrum.Spectrum
	for _, st := range mode.Stages {
		stage, err := spectrum.ParseStage(st.Stage)
		if err != nil {
			return nil, err
		}
		cur, err = spectrum.NewStage(energy, st.Signal, stage, cur, st.Fit)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// Candidate key lists per logical metadata quantity, canonical name first.
// Resolution is first match wins, which lets the reader ingest documents
// whose metadata vocabulary differs from ours.
var (
	scanNoKeys     = []string{"scan_no", "scan_number", "entry_identifier"}
	edgeLabelKeys  = []string{"edge_label", "edge", "element_edge"}
	tempKeys       = []string{"temperature_k", "temperature", "t_sample", "lakeshore336_sample"}
	fieldKeys      = []string{"field_t", "magnetic_field", "field", "magnet_field"}
	polKeys        = []string{"polarization", "polarisation", "pol_mode", "id_pol"}
	endstationKeys = []string{"endstation", "instrument", "beamline"}
	sampleKeys     = []string{"sample", "sample_name"}
)

func docToMeta(doc map[string]any) scan.Metadata {
	return scan.Metadata{
		ScanNo:     intField(doc, scanNoKeys),
		EdgeLabel:  stringField(doc, edgeLabelKeys),
		Temp:       floatField(doc, tempKeys),
		MagField:   floatField(doc, fieldKeys),
		Pol:        stringField(doc, polKeys),
		Endstation: stringField(doc, endstationKeys),
		Sample:     stringField(doc, sampleKeys),
		Sources:    intsField(doc, "sources"),
	}
}

func floatField(doc map[string]any, keys []string) float64 {
	for _, key := range keys {
		if f, ok := doc[key].(float64); ok {
			return f
		}
	}
	return 0
}

func intField(doc map[string]any, keys []string) int {
	return int(floatField(doc, keys))
}

func stringField(doc map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := doc[key].(string); ok {
			return s
		}
	}
	return ""
}

func intsField(doc map[string]any, key string) []int {
	list, ok := doc[key].([]any)
	if !ok {
		return nil
	}

	out := make([]int, 0, len(list))
	for _, item := range list {
		if f, ok := item.(float64); ok {
			out = append(out, int(f))
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
