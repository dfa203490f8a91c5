package nexus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-xas/xas/background"
	"github.com/cwbudde/algo-xas/xas/scan"
)

const (
	classRoot  = "NXroot"
	classEntry = "NXentry"
	classData  = "NXdata"
	definition = "NXxas"
	axisName   = "energy"
)

// ErrFormat is returned when a document is not a readable NXxas file.
var ErrFormat = errors.New("nexus: not an NXxas document")

// document is the serialized NXroot.
type document struct {
	Class   string              `json:"NX_class"` //nolint:tagliatelle
	Entries map[string]entryDoc `json:"entries"`
}

// entryDoc is one NXentry: a full container.
type entryDoc struct {
	Class      string         `json:"NX_class"` //nolint:tagliatelle
	Definition string         `json:"definition"`
	Name       string         `json:"name"`
	Meta       map[string]any `json:"metadata"`
	Energy     []float64      `json:"energy"`
	Modes      []modeDoc      `json:"modes"`
}

// modeDoc is one NXdata group: a detection mode with all its stages.
type modeDoc struct {
	Class  string     `json:"NX_class"` //nolint:tagliatelle
	Label  string     `json:"label"`
	Signal string     `json:"signal"`
	Axes   string     `json:"axes"`
	Stages []stageDoc `json:"stages"`
}

// stageDoc is one processing stage of a mode.
type stageDoc struct {
	Stage  string          `json:"stage"`
	Signal []float64       `json:"signal"`
	Fit    *background.Fit `json:"fit,omitempty"`
}

// Write persists the containers to path as one NXxas document.
func Write(path string, containers ...*scan.Container) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("nexus: %w", err)
	}

	if err := Encode(f, containers...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes the containers to w as an indented NXxas JSON document.
func Encode(w io.Writer, containers ...*scan.Container) error {
	doc := document{
		Class:   classRoot,
		Entries: make(map[string]entryDoc, len(containers)),
	}

	for _, c := range containers {
		if c == nil {
			return fmt.Errorf("nexus: nil container")
		}

		key := entryKey(c)
		if key == "" {
			return fmt.Errorf("nexus: container has neither scan number nor name")
		}
		if _, ok := doc.Entries[key]; ok {
			return fmt.Errorf("nexus: duplicate entry %q", key)
		}

		entry, err := encodeEntry(c)
		if err != nil {
			return fmt.Errorf("nexus: entry %q: %w", key, err)
		}
		doc.Entries[key] = entry
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("nexus: encode: %w", err)
	}
	return nil
}

// entryKey names an entry after its scan number, falling back to the
// container name for derived data.
func entryKey(c *scan.Container) string {
	if c.Meta.ScanNo > 0 {
		return fmt.Sprintf("scan_%d", c.Meta.ScanNo)
	}
	return c.Name
}

func encodeEntry(c *scan.Container) (entryDoc, error) {
	entry := entryDoc{
		Class:      classEntry,
		Definition: definition,
		Name:       c.Name,
		Meta:       metaToDoc(c.Meta),
		Energy:     c.Energy(),
	}

	for _, label := range c.Modes() {
		s, _ := c.Get(label)

		mode := modeDoc{
			Class:  classData,
			Label:  label,
			Signal: s.Stage.String(),
			Axes:   axisName,
		}
		for _, stage := range s.Chain() {
			mode.Stages = append(mode.Stages, stageDoc{
				Stage:  stage.Stage.String(),
				Signal: stage.Signal,
				Fit:    stage.Fit,
			})
		}
		entry.Modes = append(entry.Modes, mode)
	}

	return entry, nil
}

// metaToDoc writes the metadata block under the canonical key of each
// logical quantity, dropping unset fields.
func metaToDoc(m scan.Metadata) map[string]any {
	doc := map[string]any{
		"scan_no": m.ScanNo,
	}
	if m.EdgeLabel != "" {
		doc["edge_label"] = m.EdgeLabel
	}
	if m.Temp != 0 {
		doc["temperature_k"] = m.Temp
	}
	if m.MagField != 0 {
		doc["field_t"] = m.MagField
	}
	if m.Pol != "" {
		doc["polarization"] = m.Pol
	}
	if m.Endstation != "" {
		doc["endstation"] = m.Endstation
	}
	if m.Sample != "" {
		doc["sample"] = m.Sample
	}
	if len(m.Sources) > 0 {
		doc["sources"] = m.Sources
	}
	return doc
}
