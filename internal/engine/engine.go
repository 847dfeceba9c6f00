// Package engine provides the transactional execution side of renamr.
//
// The engine consumes preview entries produced by the planner and applies
// them to disk with a two-phase rename, keeping an in-memory history of
// operation logs so the most recent batch can be reversed.
//
// Key components:
//   - Engine: owns the filesystem, clock, logger and history stack
//   - ExecuteRename: stage every eligible file under a temp name, then commit
//   - UndoLastOperation: pop the last log and rename every file back
//   - History: LIFO stack of OperationLog, one per execution call
//
// The engine is synchronous and not safe for concurrent use; callers run at
// most one batch at a time.
package engine

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/danieljhkim/renamr/internal/clock"
	"github.com/danieljhkim/renamr/internal/fsops"
)

// tempPrefix marks files parked between the two rename phases.
const tempPrefix = ".renamr-tmp-"

// Engine executes rename batches and undoes them.
type Engine struct {
	fs      fsops.FS
	clock   clock.Clock
	history *History
	logger  *zap.Logger
}

// New creates a new Engine with the given dependencies. A nil history starts
// empty; a nil logger discards output.
func New(fs fsops.FS, clk clock.Clock, history *History, logger *zap.Logger) *Engine {
	if history == nil {
		history = NewHistory()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		fs:      fs,
		clock:   clk,
		history: history,
		logger:  logger,
	}
}

// History returns the engine's history stack.
func (e *Engine) History() *History {
	return e.history
}

// tempPath returns the parking path for path: same directory, prefixed base name.
func tempPath(path string) string {
	return filepath.Join(filepath.Dir(path), tempPrefix+filepath.Base(path))
}

// IsTempName returns true if name looks like a file parked by the engine.
func IsTempName(name string) bool {
	return strings.HasPrefix(name, tempPrefix)
}
