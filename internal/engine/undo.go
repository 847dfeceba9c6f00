package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// UndoLastOperation pops the most recent operation log and renames every
// file it recorded back to its original path. It returns how many files
// were restored.
//
// Records whose destination no longer exists are skipped without error.
// The reversal is two-phase like the forward path, so rotations such as
// a→b, b→c, c→a reverse cleanly. An original path occupied by a file outside
// the log is refused with ErrTargetExists.
//
// The log is consumed even when the undo fails part-way; there is no redo.
func (e *Engine) UndoLastOperation(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	log, ok := e.history.Pop()
	if !ok {
		return 0, ErrNothingToUndo
	}

	staged := make([]stagedItem, 0, len(log.Records))
	var err error
	for _, rec := range log.Records {
		var exists bool
		exists, err = e.fs.Exists(rec.To)
		if err != nil {
			err = fmt.Errorf("failed to check %s: %w", rec.To, err)
			break
		}
		if !exists {
			e.logger.Debug("undo skipped missing file", zap.String("path", rec.To))
			continue
		}

		temp := tempPath(rec.To)
		if err = e.fs.RenameNoReplace(rec.To, temp); err != nil {
			err = fmt.Errorf("failed to stage %s: %w", rec.To, err)
			break
		}
		staged = append(staged, stagedItem{temp: temp, final: rec.From, original: rec.To})
	}

	count := 0
	if err == nil {
		for _, item := range staged {
			if err = e.fs.RenameNoReplace(item.temp, item.final); err != nil {
				err = fmt.Errorf("failed to restore %s to %s: %w", item.original, item.final, err)
				break
			}
			count++
			e.logger.Debug("restored", zap.String("from", item.original), zap.String("to", item.final))
		}
	}

	if err != nil {
		if stranded := e.unstage(staged[count:]); len(stranded) > 0 {
			err = errors.Join(err, fmt.Errorf("%w: %s", ErrStranded, strings.Join(stranded, ", ")))
		}
		e.logger.Warn("undo stopped",
			zap.String("log", log.ID),
			zap.Int("restored", count),
			zap.Error(err))
		return count, err
	}

	e.logger.Info("undo complete",
		zap.String("log", log.ID),
		zap.Int("restored", count),
		zap.Int("records", len(log.Records)))

	return count, nil
}
