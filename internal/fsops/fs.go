// Package fsops provides filesystem operations with safety guarantees.
//
// All filesystem mutations in renamr go through the FS interface, which
// provides abstractions for the handful of operations a rename batch needs
// along with name validation so a proposed name can never escape its
// directory.
//
// Key features:
//   - Atomic writes using temp file + rename
//   - Rename that refuses to clobber an existing path
//   - File name validation for proposed names
//   - Testable via the FS interface
package fsops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists is returned by RenameNoReplace when the destination is occupied.
var ErrExists = errors.New("destination already exists")

// FS provides an abstraction for filesystem operations.
// All filesystem mutations in renamr must go through this interface.
type FS interface {
	// RenameNoReplace renames oldpath to newpath, failing with ErrExists
	// if newpath is already present.
	RenameNoReplace(oldpath, newpath string) error

	// Remove removes a file or empty directory.
	Remove(path string) error

	// AtomicWrite writes data to path atomically using temp file + rename.
	AtomicWrite(path string, data []byte, perm os.FileMode) error

	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// Exists checks if a path exists.
	Exists(path string) (bool, error)

	// ValidateFileName validates a single path element for use as a new name.
	ValidateFileName(name string) error
}

// RealFS implements FS using actual OS operations.
type RealFS struct{}

// NewRealFS creates a new RealFS.
func NewRealFS() *RealFS {
	return &RealFS{}
}

// RenameNoReplace renames oldpath to newpath unless newpath exists.
//
// The check and the rename are two syscalls, so a file created in between
// can still be replaced. That window is accepted: renamr assumes a single
// batch operates on a directory at a time.
func (fs *RealFS) RenameNoReplace(oldpath, newpath string) error {
	exists, err := fs.Exists(newpath)
	if err != nil {
		return fmt.Errorf("failed to check destination: %w", err)
	}
	if exists && !sameFile(oldpath, newpath) {
		return fmt.Errorf("%w: %s", ErrExists, newpath)
	}
	return os.Rename(oldpath, newpath)
}

// sameFile reports whether both paths resolve to the same file, which is
// the case for a case-only rename on a case-insensitive filesystem.
func sameFile(a, b string) bool {
	ai, err := os.Lstat(a)
	if err != nil {
		return false
	}
	bi, err := os.Lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// Remove removes a file or empty directory.
func (fs *RealFS) Remove(path string) error {
	return os.Remove(path)
}

// AtomicWrite writes data to path atomically using temp file + rename.
func (fs *RealFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	// Create parent directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	// Create temp file in the same directory as target
	tmpFile, err := os.CreateTemp(dir, ".renamr-write-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if tmpFile != nil {
			_ = tmpFile.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	// Success - don't clean up temp file
	tmpFile = nil
	return nil
}

// ReadFile reads the entire contents of a file.
func (fs *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Exists checks if a path exists.
func (fs *RealFS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// ValidateFileName validates a proposed file name.
// Returns an error if the name is empty, a directory reference, or contains
// a path separator (a rename must stay inside the source directory).
func (fs *RealFS) ValidateFileName(name string) error {
	return ValidateFileName(name)
}

// ValidateFileName is the package-level form of RealFS.ValidateFileName so
// fakes can share the same rules.
func ValidateFileName(name string) error {
	if name == "" {
		return fmt.Errorf("invalid file name: empty")
	}

	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.ContainsRune(name, filepath.Separator) {
		return fmt.Errorf("invalid file name %q: must not contain path separators", name)
	}

	if name == "." || name == ".." {
		return fmt.Errorf("invalid file name %q: directory reference not allowed", name)
	}

	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("invalid file name %q: contains NUL byte", name)
	}

	return nil
}
