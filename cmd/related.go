package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regenkit/regen/internal/config"
	"github.com/regenkit/regen/internal/sitemap"
)

var relatedCmd = &cobra.Command{
	Use:   "related <changed>...",
	Short: "Show which outputs a change invalidates",
	Long: `Resolve the outputs invalidated by the given changed source files,
using the sitemap manifest as the candidate list.

A candidate is invalidated when its source shares a template or stylesheet
extension (after alias expansion) with any changed file and is not itself
one of the changed files.

Examples:
  regen related src/partials/_base.scss
  regen related layouts/header.haml pages/index.html.erb
  regen related --sitemap build/sitemap.yml src/style.scss`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRelated,
}

var relatedSitemap string

func init() {
	rootCmd.AddCommand(relatedCmd)

	relatedCmd.Flags().StringVar(&relatedSitemap, "sitemap", "", "Sitemap manifest path (overrides config)")
}

func runRelated(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	manifestPath := cfg.Site.Sitemap
	if relatedSitemap != "" {
		manifestPath = relatedSitemap
	}

	manifest, err := sitemap.Load(manifestPath)
	if err != nil {
		return err
	}

	resolver := newResolver(cfg)
	for _, path := range resolver.FindRelated(args, manifest.Candidates()) {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
