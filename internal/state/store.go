package state

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danieljhkim/renamr/internal/clock"
	"github.com/danieljhkim/renamr/internal/engine"
	"github.com/danieljhkim/renamr/internal/fsops"
)

// HistoryStore provides an interface for persisting the history stack.
type HistoryStore interface {
	// Load returns the persisted logs, oldest first.
	// A missing file yields an empty stack, not an error.
	Load() ([]engine.OperationLog, error)

	// Save replaces the persisted stack atomically.
	Save(logs []engine.OperationLog) error

	// Clear deletes the persisted stack.
	Clear() error
}

// FileHistoryStore implements HistoryStore using a JSON file on disk.
type FileHistoryStore struct {
	fs    fsops.FS
	clock clock.Clock
	path  string
}

// NewFileHistoryStore creates a new FileHistoryStore writing to path.
func NewFileHistoryStore(fs fsops.FS, clk clock.Clock, path string) *FileHistoryStore {
	return &FileHistoryStore{
		fs:    fs,
		clock: clk,
		path:  path,
	}
}

// Path returns the history file location.
func (s *FileHistoryStore) Path() string {
	return s.path
}

// Load returns the persisted logs.
func (s *FileHistoryStore) Load() ([]engine.OperationLog, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []engine.OperationLog{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var file HistoryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	if file.Version > SchemaVersion {
		return nil, fmt.Errorf("history file version %d is newer than supported version %d", file.Version, SchemaVersion)
	}

	if file.Logs == nil {
		return []engine.OperationLog{}, nil
	}
	return file.Logs, nil
}

// Save writes logs atomically.
func (s *FileHistoryStore) Save(logs []engine.OperationLog) error {
	data, err := json.MarshalIndent(NewHistoryFile(logs, s.clock.Now()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := s.fs.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}

	return nil
}

// Clear deletes the history file.
func (s *FileHistoryStore) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete history: %w", err)
	}
	return nil
}
