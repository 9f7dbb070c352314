// Package ignore builds the pruning predicate fed to the file enumerator.
//
// A Matcher combines three rule sources: a fixed skip list of VCS and
// tooling directories, the site's .gitignore, and configured glob patterns
// (doublestar syntax, so "**" spans directories).
package ignore

import (
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"

	"github.com/regenkit/regen/internal/types"
)

// skipDirs are directory basenames pruned unconditionally.
var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	".sass-cache":  {},
	".bundle":      {},
}

// Matcher decides which refs the enumerator should prune.
type Matcher struct {
	rootDir   string
	gitIgnore gitignore.GitIgnore
	patterns  []string
}

// Options configures a Matcher.
type Options struct {
	// RootDir anchors relative pattern matching and locates .gitignore.
	RootDir string
	// Patterns are doublestar globs matched against the root-relative
	// path and against the basename.
	Patterns []string
}

// NewMatcher creates a matcher for the given root. A missing .gitignore is
// not an error; gitignore rules are simply not applied.
func NewMatcher(options Options) *Matcher {
	return &Matcher{
		rootDir:   options.RootDir,
		gitIgnore: loadGitignore(filepath.Join(options.RootDir, ".gitignore"), options.RootDir),
		patterns:  options.Patterns,
	}
}

// Match reports whether ref should be pruned. Usable directly as an
// enumerate.IgnoreFunc.
func (m *Matcher) Match(ref types.FileRef) bool {
	base := ref.Base()
	if ref.Kind == types.KindDir {
		if _, ok := skipDirs[base]; ok {
			return true
		}
	}

	rel, err := filepath.Rel(m.rootDir, ref.Path)
	if err != nil {
		rel = ref.Path
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range m.patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}

	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(rel, ref.Kind == types.KindDir); match != nil && match.Ignore() {
			return true
		}
	}

	return false
}

// loadGitignore reads an ignore file and creates a matcher from it, or nil
// when the file cannot be opened.
func loadGitignore(path, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, baseDir, nil)
}
