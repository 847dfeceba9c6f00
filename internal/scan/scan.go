// Package scan lists the candidate files of a directory for a preview pass.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/renamr/internal/engine"
)

// ListFiles returns the absolute paths of the regular files directly inside
// dir whose extension is in exts (case-insensitive). An empty exts accepts
// every file. Hidden engine temp files are never listed.
func ListFiles(dir string, exts []string) ([]string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	allow := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allow[strings.ToLower(ext)] = true
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if engine.IsTempName(name) {
			continue
		}
		if len(allow) > 0 && !allow[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		files = append(files, filepath.Join(abs, name))
	}

	return files, nil
}
