// Package nexus persists processed scans as self-describing JSON documents
// modeled on the NeXus NXxas application definition, and loads them back
// with the full provenance chain intact.
//
// A document is an NXroot holding one NXentry per container, keyed
// "scan_<no>" for measured scans and by container name for derived ones.
// Each entry carries the metadata block, the shared energy axis, and one
// NXdata group per detection mode. A mode group stores every processing
// stage in derivation order (raw first), each with its signal array and,
// where one was computed, the background fit parameters:
//
//	{
//	  "NX_class": "NXroot",
//	  "entries": {
//	    "scan_108": {
//	      "NX_class": "NXentry",
//	      "definition": "NXxas",
//	      "metadata": {"scan_no": 108, "temperature_k": 4.2, ...},
//	      "energy": [680, 680.2, ...],
//	      "modes": [
//	        {"NX_class": "NXdata", "label": "tey", "signal": "background-subtracted",
//	         "axes": "energy", "stages": [{"stage": "raw", "signal": [...]}, ...]}
//	      ]
//	    }
//	  }
//	}
//
// Reading reverses the process without recomputation: stages are re-linked
// parent to child, so a decoded spectrum reports the same chain the
// pipeline produced. Metadata keys are resolved against an ordered list of
// candidate names per logical quantity (first match wins), which lets the
// reader ingest documents written by beamline tools that use different
// field vocabularies.
package nexus
