package state

import (
	"time"

	"github.com/danieljhkim/renamr/internal/engine"
)

// SchemaVersion is the current history file format.
const SchemaVersion = 1

// HistoryFile is the on-disk form of the history stack.
type HistoryFile struct {
	// Version is the schema version
	Version int `json:"version"`

	// UpdatedAt is when the file was last written
	UpdatedAt time.Time `json:"updatedAt"`

	// Logs is the history stack, oldest first
	Logs []engine.OperationLog `json:"logs"`
}

// NewHistoryFile creates a HistoryFile for logs.
func NewHistoryFile(logs []engine.OperationLog, now time.Time) *HistoryFile {
	if logs == nil {
		logs = []engine.OperationLog{}
	}
	return &HistoryFile{
		Version:   SchemaVersion,
		UpdatedAt: now,
		Logs:      logs,
	}
}
