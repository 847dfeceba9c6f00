package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/renamr/internal/planner"
)

var previewRules ruleFlags

// previewOutput is the --json shape of preview and dry-run output.
type previewOutput struct {
	Entries []planner.PreviewEntry `json:"entries"`
	Summary planner.Summary        `json:"summary"`
}

var previewCmd = &cobra.Command{
	Use:   "preview [dir]",
	Short: "Show the names a rename would produce",
	Long: `Scan a directory (default: the current one) and show the proposed name and
status of every matching file. Nothing on disk is changed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		rules, exts, err := previewRules.resolve(cmd, s.cfg)
		if err != nil {
			return err
		}

		entries, err := s.preview(dirArg(args), rules, exts)
		if err != nil {
			return err
		}
		sum := planner.Summarize(entries)

		if jsonOutput {
			return outputJSON(previewOutput{Entries: entries, Summary: sum})
		}

		PrintPreview(entries, sum)
		return nil
	},
}

func init() {
	previewRules.register(previewCmd)
}
