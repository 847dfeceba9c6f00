package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/renamr/internal/engine"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Revert the most recent rename",
	Long: `Rename every file of the most recent batch back to its original name.

Files that were moved or deleted since are skipped. The batch is removed from
the history even if the undo stops part-way; there is no redo.

Each rename batch is recorded in history.json under the renamr data root
(RENAMR_ROOT, default ~/.renamr), so undo works from a later invocation, not
only the process that renamed. 'renamr history --clear' forgets every batch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		count, err := s.engine.UndoLastOperation(cmd.Context())
		if errors.Is(err, engine.ErrNothingToUndo) {
			if jsonOutput {
				return outputJSON(map[string]int{"restored": 0})
			}
			PrintEmptyState("Nothing to undo")
			return nil
		}

		// the log is consumed whether or not the undo succeeded
		if saveErr := s.saveHistory(); saveErr != nil {
			err = errors.Join(err, saveErr)
		}

		if jsonOutput {
			if jerr := outputJSON(map[string]int{"restored": count}); jerr != nil {
				return jerr
			}
			return err
		}

		if count > 0 {
			PrintSuccess(fmt.Sprintf("Restored %s", PrintCount(count, "file", "files")))
		}
		if remaining := s.engine.History().Len(); remaining > 0 && err == nil {
			PrintEmptyState(fmt.Sprintf("%s left in history", PrintCount(remaining, "operation", "operations")))
		}
		return err
	},
}
