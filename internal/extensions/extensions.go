// Package extensions decomposes filenames into their ordered stacks of
// template-engine extensions.
//
// A templated filename such as "index.html.erb" carries zero or more
// template-engine layers (".erb") over one residual extension (".html").
// The resolver peels layers from the outside in, consulting the engine
// registry for each candidate, and stops at the first extension no engine
// owns. The residual extension is whatever remains at that point, possibly
// the empty string for names with no extension at all.
package extensions

import (
	"path/filepath"
	"strings"
	"sync"
)

// Registry reports whether an extension belongs to a registered template
// engine. Satisfied by registry.EngineRegistry.
type Registry interface {
	IsTemplateExtension(ext string) bool
}

// Chain is the ordered extension stack of a filename: template-engine
// extensions outer-most first, terminated by exactly one residual extension
// that no engine owns (possibly "").
type Chain []string

// Residual returns the chain's final, non-template extension.
func (c Chain) Residual() string {
	if len(c) == 0 {
		return ""
	}
	return c[len(c)-1]
}

// Resolver decomposes filenames against a template-engine registry.
type Resolver struct {
	registry Registry
}

// NewResolver creates a resolver backed by the given registry.
func NewResolver(registry Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve returns the extension chain of name. The chain always ends with
// the residual extension, so a name with no extension yields Chain{""}.
func (r *Resolver) Resolve(name string) Chain {
	var chain Chain
	for {
		ext := trailingExt(name)
		if ext == "" || !r.registry.IsTemplateExtension(ext) {
			break
		}
		chain = append(chain, ext)
		name = strings.TrimSuffix(name, ext)
	}
	return append(chain, trailingExt(name))
}

// StripTemplateExtensions returns name with every template-engine layer
// removed, leaving the residual extension in place: "index.html.erb"
// becomes "index.html".
func (r *Resolver) StripTemplateExtensions(name string) string {
	for {
		ext := trailingExt(name)
		if ext == "" || !r.registry.IsTemplateExtension(ext) {
			return name
		}
		name = strings.TrimSuffix(name, ext)
	}
}

// trailingExt returns the trailing extension of name including its leading
// period, or "" when name has none. A leading period that starts the whole
// name (a hidden file like ".gitignore") does not count as an extension.
func trailingExt(name string) string {
	ext := filepath.Ext(name)
	if len(ext) == len(name) {
		return ""
	}
	return ext
}

// Cache memoizes extension chains per file basename for the lifetime of a
// build run. Chains are a pure function of a basename's suffix structure,
// so two files sharing a basename in different directories share an entry.
// Entries are never evicted and never recomputed, even if the registry is
// reconfigured afterwards; construct a fresh Cache per run.
type Cache struct {
	resolver *Resolver
	chains   map[string]Chain
	mutex    sync.RWMutex
}

// NewCache creates an empty cache over the given resolver.
func NewCache(resolver *Resolver) *Cache {
	return &Cache{
		resolver: resolver,
		chains:   make(map[string]Chain),
	}
}

// ExtensionsOf returns the extension chain for a file basename, computing
// it on first use. Basenames with a leading period (hidden files) resolve
// to an empty chain without consulting the registry.
//
// Concurrent callers for the same basename may redundantly compute, but
// the computation is pure so every caller observes an equal chain.
func (c *Cache) ExtensionsOf(basename string) Chain {
	c.mutex.RLock()
	chain, ok := c.chains[basename]
	c.mutex.RUnlock()
	if ok {
		return chain
	}

	if strings.HasPrefix(basename, ".") {
		chain = Chain{}
	} else {
		chain = c.resolver.Resolve(basename)
	}

	c.mutex.Lock()
	c.chains[basename] = chain
	c.mutex.Unlock()
	return chain
}

// Len returns the number of memoized basenames.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.chains)
}
