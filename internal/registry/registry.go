// Package registry tracks the filename extensions owned by registered
// template engines. The extension-chain resolver consults it to decide how
// many layers to peel off a templated filename.
package registry

import (
	"sort"
	"sync"
)

// DefaultExtensions lists the template-engine extensions registered when no
// configuration overrides them.
var DefaultExtensions = []string{".erb", ".haml", ".slim", ".builder", ".liquid"}

// EngineRegistry manages the set of known template-engine extensions.
type EngineRegistry struct {
	extensions map[string]struct{}
	mutex      sync.RWMutex
}

// NewEngineRegistry creates a registry seeded with the given extensions.
// Extensions may be given with or without the leading period.
func NewEngineRegistry(extensions ...string) *EngineRegistry {
	r := &EngineRegistry{
		extensions: make(map[string]struct{}, len(extensions)),
	}
	for _, ext := range extensions {
		r.Register(ext)
	}
	return r
}

// NewDefaultRegistry creates a registry seeded with DefaultExtensions.
func NewDefaultRegistry() *EngineRegistry {
	return NewEngineRegistry(DefaultExtensions...)
}

// Register adds an extension to the registry.
func (r *EngineRegistry) Register(ext string) {
	ext = normalize(ext)
	if ext == "." {
		return
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.extensions[ext] = struct{}{}
}

// IsTemplateExtension reports whether ext belongs to a registered template
// engine. The extension must include its leading period (e.g. ".erb").
func (r *EngineRegistry) IsTemplateExtension(ext string) bool {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	_, ok := r.extensions[ext]
	return ok
}

// Extensions returns all registered extensions in sorted order.
func (r *EngineRegistry) Extensions() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := make([]string, 0, len(r.extensions))
	for ext := range r.extensions {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func normalize(ext string) string {
	if ext == "" {
		return "."
	}
	if ext[0] != '.' {
		return "." + ext
	}
	return ext
}
