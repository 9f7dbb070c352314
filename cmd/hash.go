package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/regenkit/regen/internal/config"
	"github.com/regenkit/regen/internal/hash"
)

var hashCmd = &cobra.Command{
	Use:   "hash <file>...",
	Short: "Fingerprint file contents",
	Long: `Compute a content fingerprint for each file. Fingerprints depend only on
bytes, never on mtime or size, so an untouched rewrite hashes identically.

The local backend digests contents in-process; the delegated backend shells
out to a version-control hashing command (git hash-object by default) and a
failed delegation is reported, never silently replaced by a local hash.

Examples:
  regen hash src/index.html.erb
  regen hash --backend delegated src/style.scss`,
	Args: cobra.MinimumNArgs(1),
	RunE: runHash,
}

var hashBackend string

func init() {
	rootCmd.AddCommand(hashCmd)

	hashCmd.Flags().StringVar(&hashBackend, "backend", "", "Hash backend: local or delegated (overrides config)")
}

func runHash(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	backend := cfg.Hash.Backend
	if hashBackend != "" {
		backend = hashBackend
	}

	hasher, err := hash.New(hash.Backend(backend), cfg.Hash.Command)
	if err != nil {
		return err
	}

	for _, path := range args {
		fingerprint, err := hasher.HashFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", fingerprint, path)
	}
	return nil
}
