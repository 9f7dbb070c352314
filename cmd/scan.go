package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regenkit/regen/internal/config"
	"github.com/regenkit/regen/internal/enumerate"
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Enumerate the site's source files",
	Long: `Enumerate every source file under the site root, pruning ignored paths.
Nothing beneath an ignored directory is visited.

Examples:
  regen scan                      # Enumerate the configured site root
  regen scan content              # Enumerate a specific directory
  regen scan --count              # Print only the file count`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var scanCount bool

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&scanCount, "count", false, "Print only the number of files")
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	root := cfg.Site.Root
	if len(args) == 1 {
		root = args[0]
	}

	matcher := newIgnoreMatcher(cfg)
	files := enumerate.FilesAt(root, matcher.Match)

	if scanCount {
		fmt.Fprintln(cmd.OutOrStdout(), len(files))
		return nil
	}
	for _, ref := range files {
		fmt.Fprintln(cmd.OutOrStdout(), ref.Path)
	}
	return nil
}
