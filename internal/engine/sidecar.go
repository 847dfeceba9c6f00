package engine

import (
	"fmt"
	"path/filepath"

	"github.com/danieljhkim/renamr/internal/planner"
)

// SidecarExtensions are the companion file extensions moved with a primary file.
var SidecarExtensions = []string{".txt", ".json", ".xml"}

// sidecar is a companion file found next to a primary file.
type sidecar struct {
	path  string
	final string
}

// findSidecars returns the companions of source that exist on disk, with
// the final path each takes when the primary is renamed to finalName.
// Companions that are themselves eligible primaries are left to their own
// entry.
func (e *Engine) findSidecars(source, finalName string, primaries map[string]bool) ([]sidecar, error) {
	dir := filepath.Dir(source)
	stem, _ := planner.SplitExt(filepath.Base(source))
	newStem, _ := planner.SplitExt(finalName)

	var found []sidecar
	for _, ext := range SidecarExtensions {
		path := filepath.Join(dir, stem+ext)
		if path == source || primaries[path] {
			continue
		}

		exists, err := e.fs.Exists(path)
		if err != nil {
			return nil, fmt.Errorf("failed to check sidecar %s: %w", path, err)
		}
		if !exists {
			continue
		}

		found = append(found, sidecar{
			path:  path,
			final: filepath.Join(dir, newStem+ext),
		})
	}
	return found, nil
}
