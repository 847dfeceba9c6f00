package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/renamr/internal/engine"
)

var (
	historyLong  bool
	historyClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the operations that can be undone",
	Long: `List the recorded rename batches, newest first. 'renamr undo' reverts the
first one listed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		if historyClear {
			if err := s.store.Clear(); err != nil {
				return err
			}
			PrintSuccess("History cleared")
			return nil
		}

		logs := s.engine.History().Logs()
		newest := make([]engine.OperationLog, 0, len(logs))
		for i := len(logs) - 1; i >= 0; i-- {
			newest = append(newest, logs[i])
		}

		if jsonOutput {
			return outputJSON(newest)
		}

		if len(newest) == 0 {
			PrintEmptyState("No operations recorded")
			return nil
		}

		rows := make([][]string, 0, len(newest))
		for _, log := range newest {
			rows = append(rows, []string{
				shortID(log.ID),
				log.CreatedAt.Local().Format(time.DateTime),
				PrintCount(len(log.Records), "file", "files"),
			})
		}
		PrintTable([]string{"ID", "CREATED", "RENAMED"}, rows)

		if historyLong {
			for _, log := range newest {
				PrintSection(shortID(log.ID))
				items := make([]string, 0, len(log.Records))
				for _, rec := range log.Records {
					items = append(items, fmt.Sprintf("%s -> %s", rec.From, rec.To))
				}
				PrintList(items, 1)
			}
		}
		return nil
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().BoolVarP(&historyLong, "long", "l", false, "Show every rename of each operation")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Forget all recorded operations")
}
