package cmd

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/regenkit/regen/internal/config"
	"github.com/regenkit/regen/internal/sitemap"
	"github.com/regenkit/regen/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the site root and resolve stale outputs on change",
	Long: `Watch the site root for file changes and, after each debounced batch,
print the outputs invalidated by the changed files. The changed files
themselves are listed first, prefixed with "changed:"; invalidated related
sources follow, prefixed with "stale:".

Examples:
  regen watch
  regen watch --verbose`,
	RunE: runWatch,
}

var watchVerbose bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "Log every change event")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := newLogger().WithComponent("watch")

	manifest, err := sitemap.Load(cfg.Site.Sitemap)
	if err != nil {
		return err
	}
	candidates := manifest.Candidates()
	resolver := newResolver(cfg)
	matcher := newIgnoreMatcher(cfg)

	fileWatcher, err := watcher.NewFileWatcher(time.Duration(cfg.Watch.DebounceMs) * time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fileWatcher.Stop()

	fileWatcher.AddFilter(watcher.IgnoreFilter(matcher.Match))
	fileWatcher.AddHandler(func(events []watcher.ChangeEvent) error {
		changed := make([]string, 0, len(events))
		for _, event := range events {
			changed = append(changed, event.Path)
			if watchVerbose {
				logger.Info(cmd.Context(), "change detected", "type", event.Type.String(), "path", event.Path)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "changed: %s\n", event.Path)
		}
		for _, path := range resolver.FindRelated(changed, candidates) {
			fmt.Fprintf(cmd.OutOrStdout(), "stale: %s\n", path)
		}
		return nil
	})

	if err := fileWatcher.AddRecursive(cfg.Site.Root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", cfg.Site.Root, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fileWatcher.Start(ctx)
	logger.Info(ctx, "watching", "root", cfg.Site.Root, "debounce_ms", cfg.Watch.DebounceMs)

	<-ctx.Done()
	logger.Info(cmd.Context(), "shutting down")
	return nil
}
