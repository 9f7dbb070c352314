// Package enumerate lists the files under a root path with ignore-aware
// pruning.
//
// Traversal uses an explicit worklist rather than call recursion, so depth
// is bounded only by memory. Unreadable directories, vanished paths, and
// special files are skipped silently: enumeration has no error conditions.
package enumerate

import (
	"os"
	"path/filepath"

	"github.com/regenkit/regen/internal/types"
)

// IgnoreFunc reports whether a ref should be pruned. Pruning a directory
// prunes everything beneath it; nothing under an ignored directory is ever
// visited.
type IgnoreFunc func(ref types.FileRef) bool

// Files returns every regular file reachable under root, excluding ignored
// refs and everything beneath ignored directories. Symlinks are followed
// transparently. Sibling order follows the directory listing, so results
// are deterministic for a fixed snapshot, but callers should compare as
// sets rather than rely on a particular order.
func Files(root types.FileRef, ignore IgnoreFunc) []types.FileRef {
	if ignore != nil && ignore(root) {
		return nil
	}

	var out []types.FileRef
	stack := []types.FileRef{root}
	for len(stack) > 0 {
		ref := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch ref.Kind {
		case types.KindFile:
			out = append(out, ref)
		case types.KindDir:
			entries, err := os.ReadDir(ref.Path)
			if err != nil {
				continue
			}
			// Push in reverse so the listing order is preserved
			// when popping.
			for i := len(entries) - 1; i >= 0; i-- {
				child := types.Stat(filepath.Join(ref.Path, entries[i].Name()))
				if ignore != nil && ignore(child) {
					continue
				}
				stack = append(stack, child)
			}
		}
	}
	return out
}

// FilesAt is Files over a freshly stat'ed path.
func FilesAt(path string, ignore IgnoreFunc) []types.FileRef {
	return Files(types.Stat(path), ignore)
}
