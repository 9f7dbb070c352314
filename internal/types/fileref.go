// Package types provides common type definitions used throughout the regen
// tool. This package contains shared types to avoid circular dependencies
// between packages.
package types

import (
	"os"
	"path/filepath"
)

// FileKind discriminates what a path refers to on disk at the time it was
// inspected.
type FileKind int

const (
	// KindAbsent marks a path that does not resolve to anything usable:
	// a nonexistent file, a broken symlink, or a special file such as a
	// socket or device node.
	KindAbsent FileKind = iota
	// KindFile marks a regular file (or a symlink resolving to one).
	KindFile
	// KindDir marks a directory (or a symlink resolving to one).
	KindDir
)

// String returns the string representation of the FileKind.
func (k FileKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	default:
		return "unknown"
	}
}

// FileRef is a path paired with what it referred to when it was inspected.
// Refs are plain values owned by the caller; nothing in this module mutates
// a ref after producing it.
type FileRef struct {
	// Path is the absolute or repo-relative path.
	Path string
	// Kind records whether the path was a file, a directory, or nothing
	// usable when the ref was produced.
	Kind FileKind
}

// Stat inspects path on disk and returns a ref for it. Symlinks are followed;
// any stat failure or non-regular, non-directory target yields KindAbsent
// rather than an error.
func Stat(path string) FileRef {
	info, err := os.Stat(path)
	if err != nil {
		return FileRef{Path: path, Kind: KindAbsent}
	}
	switch {
	case info.IsDir():
		return FileRef{Path: path, Kind: KindDir}
	case info.Mode().IsRegular():
		return FileRef{Path: path, Kind: KindFile}
	default:
		return FileRef{Path: path, Kind: KindAbsent}
	}
}

// Base returns the last element of the ref's path.
func (r FileRef) Base() string {
	return filepath.Base(r.Path)
}
