// Package config manages renamr configuration and filesystem paths.
//
// The data root holds the persisted undo history and the optional
// config.yaml of default rules. The default root is ~/.renamr/ and can be
// moved with the RENAMR_ROOT environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by renamr.
type Paths struct {
	// Root is the base directory for all renamr data (default: ~/.renamr)
	Root string

	// History is the path to the persisted history stack
	History string

	// Config is the path to the global config file
	Config string
}

// DefaultPaths returns the default paths for renamr.
// Paths can be overridden with environment variables:
// - RENAMR_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("RENAMR_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".renamr")
	}

	return PathsAt(root), nil
}

// PathsAt returns the paths rooted at root.
func PathsAt(root string) *Paths {
	return &Paths{
		Root:    root,
		History: filepath.Join(root, "history.json"),
		Config:  filepath.Join(root, "config.yaml"),
	}
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.Root, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", p.Root, err)
	}
	return nil
}
