package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/renamr/internal/config"
	"github.com/danieljhkim/renamr/internal/fsops"
)

var configInitForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the renamr config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default rules",
	Long: `Write config.yaml under the renamr data root (RENAMR_ROOT, default ~/.renamr)
with the default rules, extension list and sidecar setting. An existing file is
kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get config paths: %w", err)
		}

		fs := fsops.NewRealFS()
		exists, err := fs.Exists(paths.Config)
		if err != nil {
			return fmt.Errorf("failed to check config: %w", err)
		}
		if exists && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", paths.Config)
		}

		if err := config.DefaultConfig().Save(fs, paths.Config); err != nil {
			return err
		}

		if jsonOutput {
			return outputJSON(map[string]string{"path": paths.Config})
		}
		PrintSuccess("Wrote default config")
		PrintLabelValue("Path", paths.Config)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := config.DefaultPaths()
		if err != nil {
			return fmt.Errorf("failed to get config paths: %w", err)
		}
		_, err = fmt.Fprintln(stdout, paths.Config)
		return err
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}
