// Package hash computes content fingerprints used to detect whether a
// file's bytes actually changed, independent of mtime or size.
//
// Two interchangeable strategies are provided: Local reads and digests file
// contents in-process, Delegated shells out to a version-control hashing
// command (git hash-object by default) and trusts its output. The strategy
// is selected by configuration, not by call sites.
package hash

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"os/exec"
	"strings"

	"github.com/regenkit/regen/internal/errors"
)

// Backend names a fingerprinting strategy.
type Backend string

const (
	BackendLocal     Backend = "local"
	BackendDelegated Backend = "delegated"
)

// DefaultDelegatedCommand is the external hashing command used when none is
// configured. The file path is appended as the final argument.
var DefaultDelegatedCommand = []string{"git", "hash-object"}

// Hasher computes a content fingerprint for a file on disk. Fingerprints
// are fixed-length lowercase hexadecimal strings.
type Hasher interface {
	HashFile(ctx context.Context, path string) (string, error)
}

// New returns the hasher for the configured backend. command is only
// consulted for BackendDelegated; an empty command falls back to
// DefaultDelegatedCommand.
func New(backend Backend, command []string) (Hasher, error) {
	switch backend {
	case BackendLocal, "":
		return Local{}, nil
	case BackendDelegated:
		return NewDelegated(command), nil
	default:
		return nil, errors.New(errors.TypeConfig, "unknown_backend",
			"unknown hash backend "+string(backend))
	}
}

// Sum returns the SHA-1 fingerprint of data as 40 lowercase hex characters.
// In-memory payloads are always hashed locally, never delegated.
func Sum(data []byte) string {
	digest := sha1.Sum(data)
	return hex.EncodeToString(digest[:])
}

// SumString is Sum over a string payload.
func SumString(data string) string {
	return Sum([]byte(data))
}

// Local digests file contents in-process with SHA-1.
type Local struct{}

// HashFile reads the file's full contents and returns its SHA-1 fingerprint.
func (Local) HashFile(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrap(err, errors.TypeIO, "read_failed", "reading file for hashing").WithPath(path)
	}
	return Sum(data), nil
}

// Delegated invokes an external version-control hashing command against the
// path, synchronously, and captures its combined output. No timeout is
// imposed here; callers needing bounded latency pass a context with a
// deadline, and expiry surfaces as a DelegationError.
type Delegated struct {
	command []string
}

// NewDelegated creates a delegated hasher running the given command with
// the file path appended as the final argument. An empty command uses
// DefaultDelegatedCommand.
func NewDelegated(command []string) Delegated {
	if len(command) == 0 {
		command = DefaultDelegatedCommand
	}
	return Delegated{command: command}
}

// HashFile runs the delegated command and returns its trimmed output as the
// fingerprint. A non-zero exit status or empty output fails with a
// DelegationError carrying the path; failures are never retried and never
// silently substituted with a local hash.
func (d Delegated) HashFile(ctx context.Context, path string) (string, error) {
	args := make([]string, 0, len(d.command))
	args = append(args, d.command[1:]...)
	args = append(args, path)

	cmd := exec.CommandContext(ctx, d.command[0], args...)
	out, err := cmd.CombinedOutput()
	fingerprint := strings.TrimSpace(string(out))
	if err != nil {
		return "", &errors.DelegationError{Path: path, Output: fingerprint, Cause: err}
	}
	if fingerprint == "" {
		return "", &errors.DelegationError{Path: path, Cause: errors.New(errors.TypeHash, "empty_output", "delegated command produced no output")}
	}
	return fingerprint, nil
}
