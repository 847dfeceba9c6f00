package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danieljhkim/renamr/internal/planner"
)

// ExecuteRename applies the eligible entries to disk and returns how many
// files reached their final name.
//
// Algorithm:
// 1. Keep only entries with status ok; fail with ErrNothingToDo if none
// 2. Validate every proposed name before touching the disk
// 3. Phase 1: rename each source (and, with syncSidecar, its sidecars) to a
//    temp name in the same directory
// 4. Phase 2: rename each temp name to its final name, logging each success
// 5. Push the log onto the history if anything was renamed
//
// The first failure stops the batch. Renames already committed stay in
// place and are logged so they can be undone; files still under a temp name
// are moved back to their original path. The returned count is authoritative
// whether or not an error is returned.
func (e *Engine) ExecuteRename(ctx context.Context, entries []planner.PreviewEntry, syncSidecar bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	eligible := make([]planner.PreviewEntry, 0, len(entries))
	primaries := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if entry.Eligible() {
			eligible = append(eligible, entry)
			primaries[entry.SourcePath] = true
		}
	}
	if len(eligible) == 0 {
		return 0, ErrNothingToDo
	}

	for _, entry := range eligible {
		if err := e.fs.ValidateFileName(entry.ProposedName); err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrValidation, entry.SourcePath, err)
		}
	}

	log := OperationLog{
		ID:        uuid.NewString(),
		CreatedAt: e.clock.Now(),
	}

	staged, err := e.stage(eligible, syncSidecar, primaries)
	count := 0
	if err == nil {
		count, err = e.commit(staged, &log)
	}

	if len(log.Records) > 0 {
		e.history.Push(log)
	}

	if err != nil {
		if stranded := e.unstage(staged[count:]); len(stranded) > 0 {
			err = errors.Join(err, fmt.Errorf("%w: %s", ErrStranded, strings.Join(stranded, ", ")))
		}
		e.logger.Warn("rename batch stopped",
			zap.String("log", log.ID),
			zap.Int("renamed", count),
			zap.Int("staged", len(staged)),
			zap.Error(err))
		return count, err
	}

	e.logger.Info("rename batch complete",
		zap.String("log", log.ID),
		zap.Int("renamed", count),
		zap.Int("entries", len(eligible)))

	return count, nil
}

// stage is phase 1. It returns everything parked so far even on error.
func (e *Engine) stage(eligible []planner.PreviewEntry, syncSidecar bool, primaries map[string]bool) ([]stagedItem, error) {
	staged := make([]stagedItem, 0, len(eligible))

	for _, entry := range eligible {
		final := entry.ProposedPath()
		temp := tempPath(entry.SourcePath)

		if err := e.fs.RenameNoReplace(entry.SourcePath, temp); err != nil {
			return staged, fmt.Errorf("failed to stage %s: %w", entry.SourcePath, err)
		}
		staged = append(staged, stagedItem{temp: temp, final: final, original: entry.SourcePath})
		e.logger.Debug("staged", zap.String("from", entry.SourcePath), zap.String("temp", temp))

		if !syncSidecar {
			continue
		}

		sidecars, err := e.findSidecars(entry.SourcePath, entry.ProposedName, primaries)
		if err != nil {
			return staged, err
		}
		for _, sc := range sidecars {
			scTemp := tempPath(sc.path)
			if err := e.fs.RenameNoReplace(sc.path, scTemp); err != nil {
				return staged, fmt.Errorf("failed to stage sidecar %s: %w", sc.path, err)
			}
			staged = append(staged, stagedItem{temp: scTemp, final: sc.final, original: sc.path})
			e.logger.Debug("staged sidecar", zap.String("from", sc.path), zap.String("temp", scTemp))
		}
	}

	return staged, nil
}

// commit is phase 2. It returns the number of items that reached their final
// name; staged[count:] are still parked when an error is returned.
func (e *Engine) commit(staged []stagedItem, log *OperationLog) (int, error) {
	for i, item := range staged {
		if err := e.fs.RenameNoReplace(item.temp, item.final); err != nil {
			return i, fmt.Errorf("failed to rename %s to %s: %w", item.original, item.final, err)
		}
		log.Records = append(log.Records, RenameRecord{From: item.original, To: item.final})
		e.logger.Debug("renamed", zap.String("from", item.original), zap.String("to", item.final))
	}
	return len(staged), nil
}

// unstage moves parked files back to their original path, best effort.
// It returns the temp paths it could not restore.
func (e *Engine) unstage(items []stagedItem) []string {
	var stranded []string
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if err := e.fs.RenameNoReplace(item.temp, item.original); err != nil {
			e.logger.Warn("could not restore staged file",
				zap.String("temp", item.temp),
				zap.String("original", item.original),
				zap.Error(err))
			stranded = append(stranded, item.temp)
		}
	}
	return stranded
}
