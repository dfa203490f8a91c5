package nexus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/algo-xas/xas/scan"
)

// defaultPatterns are the candidate filenames tried per scan number, in
// order, first existing file wins.
var defaultPatterns = []string{"scan_%d.json", "%d.json"}

// DirLoader serves scan containers from NXxas documents in a directory,
// resolving scan numbers to files by candidate name patterns. It satisfies
// the aggregate loader seam.
type DirLoader struct {
	// Dir is the directory holding the documents.
	Dir string
	// Patterns overrides the candidate printf patterns; each must consume
	// one integer verb.
	Patterns []string
}

// Load reads the container for scanNo. When a document holds several
// entries, the one whose metadata carries the requested scan number is
// returned.
func (l DirLoader) Load(ctx context.Context, scanNo int) (*scan.Container, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patterns := l.Patterns
	if len(patterns) == 0 {
		patterns = defaultPatterns
	}

	for _, pattern := range patterns {
		path := filepath.Join(l.Dir, fmt.Sprintf(pattern, scanNo))
		if _, err := os.Stat(path); err != nil {
			continue
		}

		containers, err := Read(path)
		if err != nil {
			return nil, fmt.Errorf("nexus: scan %d: %w", scanNo, err)
		}
		for _, c := range containers {
			if c.Meta.ScanNo == scanNo {
				return c, nil
			}
		}
		return nil, fmt.Errorf("nexus: %s holds no entry for scan %d", path, scanNo)
	}

	return nil, fmt.Errorf("nexus: no document for scan %d under %s", scanNo, l.Dir)
}
