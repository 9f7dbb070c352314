package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regenkit/regen/internal/types"
)

func TestMatchSkipListDirectories(t *testing.T) {
	root := t.TempDir()
	m := NewMatcher(Options{RootDir: root})

	for _, dir := range []string{".git", "node_modules", ".sass-cache"} {
		ref := types.FileRef{Path: filepath.Join(root, dir), Kind: types.KindDir}
		assert.True(t, m.Match(ref), "expected directory %s to be pruned", dir)
	}

	// The skip list applies to directories only; a file named .git
	// elsewhere is not a VCS directory.
	fileRef := types.FileRef{Path: filepath.Join(root, "src", "app.js"), Kind: types.KindFile}
	assert.False(t, m.Match(fileRef))
}

func TestMatchGlobPatterns(t *testing.T) {
	root := t.TempDir()
	m := NewMatcher(Options{
		RootDir:  root,
		Patterns: []string{"**/*.tmp", "drafts/**", "*.bak"},
	})

	testCases := []struct {
		name    string
		rel     string
		kind    types.FileKind
		ignored bool
	}{
		{"tmp anywhere", "deep/nested/scratch.tmp", types.KindFile, true},
		{"drafts subtree", "drafts/post.md", types.KindFile, true},
		{"bak by basename", "content/notes.bak", types.KindFile, true},
		{"ordinary source", "content/index.html.erb", types.KindFile, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref := types.FileRef{Path: filepath.Join(root, filepath.FromSlash(tc.rel)), Kind: tc.kind}
			assert.Equal(t, tc.ignored, m.Match(ref))
		})
	}
}

func TestMatchGitignoreRules(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, ".gitignore"),
		[]byte("_site/\n*.log\n"),
		0o644,
	))

	m := NewMatcher(Options{RootDir: root})

	assert.True(t, m.Match(types.FileRef{Path: filepath.Join(root, "_site"), Kind: types.KindDir}))
	assert.True(t, m.Match(types.FileRef{Path: filepath.Join(root, "build.log"), Kind: types.KindFile}))
	assert.False(t, m.Match(types.FileRef{Path: filepath.Join(root, "index.html.erb"), Kind: types.KindFile}))
}

func TestMatchWithoutGitignore(t *testing.T) {
	m := NewMatcher(Options{RootDir: t.TempDir()})
	assert.False(t, m.Match(types.FileRef{Path: "anything.txt", Kind: types.KindFile}))
}
