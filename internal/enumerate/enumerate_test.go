package enumerate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regenkit/regen/internal/types"
)

// writeTree creates the given relative files under root, making parent
// directories as needed.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(rel), 0o644))
	}
}

func pathSet(refs []types.FileRef) map[string]struct{} {
	s := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		s[ref.Path] = struct{}{}
	}
	return s
}

func expectedSet(root string, files ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(files))
	for _, rel := range files {
		s[filepath.Join(root, filepath.FromSlash(rel))] = struct{}{}
	}
	return s
}

func TestFilesWalksWholeTree(t *testing.T) {
	root := t.TempDir()
	tree := []string{
		"index.html.erb",
		"style.scss",
		"posts/one.md",
		"posts/drafts/two.md",
		"assets/img/logo.png",
	}
	writeTree(t, root, tree...)

	got := FilesAt(root, nil)
	assert.Equal(t, expectedSet(root, tree...), pathSet(got))
}

func TestFilesIgnoredRootReturnsNothing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.txt", "sub/b.txt")

	got := FilesAt(root, func(types.FileRef) bool { return true })
	assert.Empty(t, got)
}

func TestFilesPrunesIgnoredDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "keep.txt", "node_modules/dep/index.js", "src/app.js")

	visited := make(map[string]bool)
	ignore := func(ref types.FileRef) bool {
		visited[ref.Path] = true
		return ref.Kind == types.KindDir && ref.Base() == "node_modules"
	}

	got := FilesAt(root, ignore)
	assert.Equal(t, expectedSet(root, "keep.txt", "src/app.js"), pathSet(got))

	// Nothing beneath the pruned directory was ever offered to the
	// predicate.
	for path := range visited {
		assert.NotContains(t, path, filepath.Join("node_modules", "dep"))
	}
}

func TestFilesIgnoresIndividualFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "keep.txt", "skip.tmp")

	got := FilesAt(root, func(ref types.FileRef) bool {
		return strings.HasSuffix(ref.Path, ".tmp")
	})
	assert.Equal(t, expectedSet(root, "keep.txt"), pathSet(got))
}

func TestFilesSingleFileRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "only.txt")

	got := FilesAt(filepath.Join(root, "only.txt"), nil)
	require.Len(t, got, 1)
	assert.Equal(t, types.KindFile, got[0].Kind)
}

func TestFilesAbsentRootReturnsNothing(t *testing.T) {
	got := FilesAt(filepath.Join(t.TempDir(), "does-not-exist"), nil)
	assert.Empty(t, got)
}

func TestFilesFollowsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "real/inner.txt")
	linked := filepath.Join(root, "linked")
	if err := os.Symlink(filepath.Join(root, "real"), linked); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got := FilesAt(linked, nil)
	assert.Equal(t, expectedSet(root, "linked/inner.txt"), pathSet(got))
}

func TestFilesBrokenSymlinkIsAbsent(t *testing.T) {
	root := t.TempDir()
	broken := filepath.Join(root, "broken")
	if err := os.Symlink(filepath.Join(root, "gone"), broken); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	assert.Empty(t, FilesAt(broken, nil))
}

func TestFilesDeterministicForFixedSnapshot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "b.txt", "a.txt", "c/d.txt")

	first := FilesAt(root, nil)
	second := FilesAt(root, nil)
	assert.Equal(t, first, second)
}
