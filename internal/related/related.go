// Package related determines which already-rendered outputs are invalidated
// by a set of changed source files.
//
// A candidate output is related to a change when its source file's
// alias-expanded extension set intersects the alias-expanded extension set
// of the changed files. Editing one .scss partial therefore marks every
// output built from a .scss or .sass source as stale, and editing a .haml
// partial invalidates anything built through .haml, .erb, or .slim.
package related

import (
	"path/filepath"

	"github.com/regenkit/regen/internal/extensions"
)

// aliasGroups are the closed sets of extensions considered mutually
// substitutable for invalidation purposes. Groups are disjoint; an
// extension outside every group aliases only to itself.
var aliasGroups = [][]string{
	{".scss", ".sass"},
	{".erb", ".haml", ".slim"},
}

// ExpandAliases returns exts closed over the alias groups: whenever the
// input intersects a group, the whole group joins the result. Expansion is
// idempotent.
func ExpandAliases(exts map[string]struct{}) map[string]struct{} {
	expanded := make(map[string]struct{}, len(exts))
	for ext := range exts {
		expanded[ext] = struct{}{}
	}
	for _, group := range aliasGroups {
		for _, ext := range group {
			if _, ok := exts[ext]; ok {
				for _, alias := range group {
					expanded[alias] = struct{}{}
				}
				break
			}
		}
	}
	return expanded
}

// Resource is a candidate output that may be backed by a source file.
// Satisfied by sitemap entries; outputs synthesized without a source
// (generated feeds, redirects) report ok == false and are never related.
type Resource interface {
	// SourceFile returns the path of the backing source file. ok is
	// false for resources not generated from a file.
	SourceFile() (path string, ok bool)
}

// Resolver finds the outputs invalidated by changed sources, sharing one
// extension cache across all lookups in a build run.
type Resolver struct {
	exts *extensions.Cache
}

// NewResolver creates a resolver over the given extension cache.
func NewResolver(exts *extensions.Cache) *Resolver {
	return &Resolver{exts: exts}
}

// FindRelated returns the source files of every candidate invalidated by
// the changed paths, in candidate input order. A changed file never appears
// in its own result, and candidates without a backing file are skipped.
// An empty changed set yields nil immediately.
func (r *Resolver) FindRelated(changed []string, candidates []Resource) []string {
	if len(changed) == 0 {
		return nil
	}

	changedPaths := make(map[string]struct{}, len(changed))
	changedExts := make(map[string]struct{})
	for _, path := range changed {
		changedPaths[path] = struct{}{}
		for _, ext := range r.exts.ExtensionsOf(filepath.Base(path)) {
			changedExts[ext] = struct{}{}
		}
	}
	changedExts = ExpandAliases(changedExts)

	var out []string
	for _, candidate := range candidates {
		path, ok := candidate.SourceFile()
		if !ok {
			continue
		}
		if _, self := changedPaths[path]; self {
			continue
		}
		if r.sharesExtension(path, changedExts) {
			out = append(out, path)
		}
	}
	return out
}

func (r *Resolver) sharesExtension(path string, changedExts map[string]struct{}) bool {
	exts := make(map[string]struct{})
	for _, ext := range r.exts.ExtensionsOf(filepath.Base(path)) {
		exts[ext] = struct{}{}
	}
	for ext := range ExpandAliases(exts) {
		if _, ok := changedExts[ext]; ok {
			return true
		}
	}
	return false
}
