package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/renamr/internal/engine"
	"github.com/danieljhkim/renamr/internal/planner"
)

var (
	renameRules   ruleFlags
	renameSidecar bool
	renameDryRun  bool
)

// renameOutput is the --json shape of rename output.
type renameOutput struct {
	Renamed int                    `json:"renamed"`
	LogID   string                 `json:"logId,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Entries []planner.PreviewEntry `json:"entries"`
}

var renameCmd = &cobra.Command{
	Use:   "rename [dir]",
	Short: "Rename the files of a directory",
	Long: `Preview the directory (default: the current one) and rename every file whose
status is ok. Renames run in two phases through temporary names, so swaps and
chains are safe. The batch is recorded and can be reverted with 'renamr undo'.

With --sidecar, a .txt, .json or .xml file sharing an image's base name is
renamed alongside it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		rules, exts, err := renameRules.resolve(cmd, s.cfg)
		if err != nil {
			return err
		}

		sidecar := s.cfg.SyncSidecar
		if cmd.Flags().Changed("sidecar") {
			sidecar = renameSidecar
		}

		entries, err := s.preview(dirArg(args), rules, exts)
		if err != nil {
			return err
		}
		sum := planner.Summarize(entries)

		if renameDryRun {
			if jsonOutput {
				return outputJSON(previewOutput{Entries: entries, Summary: sum})
			}
			PrintSection("Dry Run")
			PrintPreview(entries, sum)
			return nil
		}

		if sum.HasDuplicates() {
			if !jsonOutput {
				PrintPreview(entries, sum)
			}
			return fmt.Errorf("refusing to rename: %s would collide",
				PrintCount(len(sum.Duplicates), "proposed name", "proposed names"))
		}

		before := s.engine.History().Len()
		count, err := s.engine.ExecuteRename(cmd.Context(), entries, sidecar)
		if errors.Is(err, engine.ErrNothingToDo) {
			if jsonOutput {
				return outputJSON(renameOutput{Entries: entries})
			}
			PrintEmptyState("Nothing to rename")
			return nil
		}

		if saveErr := s.saveHistory(); saveErr != nil {
			err = errors.Join(err, saveErr)
		}

		var logID string
		if s.engine.History().Len() > before {
			if log, ok := s.engine.History().Peek(); ok {
				logID = log.ID
			}
		}

		if jsonOutput {
			out := renameOutput{Renamed: count, LogID: logID, Entries: entries}
			if err != nil {
				out.Error = err.Error()
			}
			if jerr := outputJSON(out); jerr != nil {
				return jerr
			}
			return err
		}

		if count > 0 {
			PrintSuccess(fmt.Sprintf("Renamed %s", PrintCount(count, "file", "files")))
			PrintLabelValue("Operation", logID)
			PrintEmptyState("Run 'renamr undo' to revert.")
		}
		if sum.Errors > 0 {
			PrintWarning(fmt.Sprintf("Skipped %s that could not be named", PrintCount(sum.Errors, "file", "files")))
		}
		return err
	},
}

func init() {
	renameRules.register(renameCmd)
	renameCmd.Flags().BoolVar(&renameSidecar, "sidecar", false, "Rename .txt/.json/.xml sidecars with their image (default from config)")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Show what would be renamed without renaming")
}
