package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/regenkit/regen/internal/registry"
)

func newTestResolver(exts ...string) *Resolver {
	return NewResolver(registry.NewEngineRegistry(exts...))
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected Chain
	}{
		{"single template layer", "index.html.erb", Chain{".erb", ".html"}},
		{"nested template layers", "index.html.md.erb", Chain{".erb", ".md", ".html"}},
		{"no template layer", "style.scss", Chain{".scss"}},
		{"no extension", "README", Chain{""}},
		{"only template layers", "partial.erb", Chain{".erb", ""}},
		{"unknown trailing extension stops the loop", "data.erb.json", Chain{".json"}},
	}

	resolver := newTestResolver(".erb", ".haml", ".slim", ".md")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, resolver.Resolve(tc.input))
		})
	}
}

func TestStripTemplateExtensions(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"single template layer", "index.html.erb", "index.html"},
		{"nested template layers", "index.html.md.erb", "index.html"},
		{"nothing to strip", "style.scss", "style.scss"},
		{"no extension", "README", "README"},
		{"strips down to bare name", "partial.erb", "partial"},
	}

	resolver := newTestResolver(".erb", ".md")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, resolver.StripTemplateExtensions(tc.input))
		})
	}
}

func TestChainResidual(t *testing.T) {
	assert.Equal(t, ".html", Chain{".erb", ".html"}.Residual())
	assert.Equal(t, "", Chain{""}.Residual())
	assert.Equal(t, "", Chain{}.Residual())
}

func TestCacheComputesOnceAndReuses(t *testing.T) {
	reg := registry.NewEngineRegistry(".erb")
	cache := NewCache(NewResolver(reg))

	first := cache.ExtensionsOf("index.html.erb")
	assert.Equal(t, Chain{".erb", ".html"}, first)
	assert.Equal(t, 1, cache.Len())

	// Registry changes after the first lookup are deliberately not
	// observed: the entry is keyed by basename and never recomputed.
	reg.Register(".html")
	second := cache.ExtensionsOf("index.html.erb")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())

	// A fresh cache sees the updated registry.
	fresh := NewCache(NewResolver(reg))
	assert.Equal(t, Chain{".erb", ".html", ""}, fresh.ExtensionsOf("index.html.erb"))
}

func TestCacheSharedAcrossDirectories(t *testing.T) {
	cache := NewCache(newTestResolver(".erb"))

	// Callers strip the directory before lookup; two distinct paths with
	// the same basename hit the same entry.
	a := cache.ExtensionsOf("page.html.erb")
	b := cache.ExtensionsOf("page.html.erb")
	assert.Equal(t, a, b)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheHiddenFileShortCircuits(t *testing.T) {
	cache := NewCache(newTestResolver(".erb"))

	assert.Equal(t, Chain{}, cache.ExtensionsOf(".gitignore"))
	assert.Equal(t, Chain{}, cache.ExtensionsOf(".config.erb"))
	assert.Equal(t, 2, cache.Len())
}

func TestCacheConcurrentLookups(t *testing.T) {
	cache := NewCache(newTestResolver(".erb"))

	done := make(chan Chain, 16)
	for i := 0; i < 16; i++ {
		go func() {
			done <- cache.ExtensionsOf("index.html.erb")
		}()
	}
	for i := 0; i < 16; i++ {
		assert.Equal(t, Chain{".erb", ".html"}, <-done)
	}
}
