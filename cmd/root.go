// Package cmd provides the command-line interface for regen with
// configuration management supporting multiple configuration sources.
//
// Configuration precedence, highest first:
//  1. Command-line flags (--config, --sitemap, ...)
//  2. REGEN_-prefixed environment variables (REGEN_SITE_ROOT, ...)
//  3. Configuration file (.regen.yml)
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/regenkit/regen/internal/config"
	"github.com/regenkit/regen/internal/extensions"
	"github.com/regenkit/regen/internal/ignore"
	"github.com/regenkit/regen/internal/logging"
	"github.com/regenkit/regen/internal/registry"
	"github.com/regenkit/regen/internal/related"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "regen",
	Short: "Incremental-rebuild dependency resolver for static sites",
	Long: `Regen determines which already-rendered outputs of a static site must be
re-rendered after a set of source files changes, and fingerprints file
contents so byte-identical files are never rebuilt on an mtime touch.

Key features:
  • Ignore-aware source enumeration (.gitignore plus glob patterns)
  • Template extension chains (index.html.erb -> .erb over .html)
  • Extension aliasing (.scss/.sass, .erb/.haml/.slim)
  • Local SHA-1 or delegated (git hash-object) fingerprints

Quick start:
  regen scan                      List enumerated source files
  regen related changed.scss      Show outputs invalidated by a change
  regen hash file.html            Fingerprint files
  regen watch                     Resolve continuously on change`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .regen.yml)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

// initConfig initializes viper with the config file and REGEN_ environment
// variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("REGEN_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".regen")
	}

	viper.SetEnvPrefix("REGEN")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; defaults and env vars apply.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger from persistent flags.
func newLogger() logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: viper.GetString("log-format"),
		Output: os.Stderr,
	})
}

// newResolver wires the registry, extension cache, and related-file
// resolver for one invocation. The cache lives exactly as long as the run.
func newResolver(cfg *config.Config) *related.Resolver {
	reg := registry.NewEngineRegistry(cfg.Templates.Extensions...)
	cache := extensions.NewCache(extensions.NewResolver(reg))
	return related.NewResolver(cache)
}

// newIgnoreMatcher builds the enumeration/watch pruning predicate.
func newIgnoreMatcher(cfg *config.Config) *ignore.Matcher {
	return ignore.NewMatcher(ignore.Options{
		RootDir:  cfg.Site.Root,
		Patterns: cfg.Site.IgnorePatterns,
	})
}
