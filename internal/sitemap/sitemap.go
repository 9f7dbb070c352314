// Package sitemap loads the candidate output resources of a site build
// from a YAML manifest.
//
// The manifest stands in for the site-map collaborator at its interface
// boundary: each entry names a destination (the rendered output) and, for
// file-backed outputs, the source it is rendered from. Synthesized outputs
// such as redirects or generated feeds omit the source.
package sitemap

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/regenkit/regen/internal/errors"
	"github.com/regenkit/regen/internal/related"
)

// Entry is one candidate output resource.
type Entry struct {
	// Destination is the rendered output path, relative to the build dir.
	Destination string `yaml:"destination"`
	// Source is the backing source file, empty for synthesized outputs.
	Source string `yaml:"source,omitempty"`
}

// SourceFile implements related.Resource.
func (e Entry) SourceFile() (string, bool) {
	return e.Source, e.Source != ""
}

var _ related.Resource = Entry{}

// Manifest is the declared resource list of a site.
type Manifest struct {
	Resources []Entry `yaml:"resources"`
}

// Load reads and parses a manifest file. Unknown fields are rejected to
// catch manifest typos early.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.TypeIO, "manifest_open", "opening sitemap manifest").WithPath(path)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	var manifest Manifest
	if err := decoder.Decode(&manifest); err != nil {
		return nil, errors.Wrap(err, errors.TypeConfig, "manifest_parse", "parsing sitemap manifest").WithPath(path)
	}

	for _, entry := range manifest.Resources {
		if entry.Destination == "" {
			return nil, errors.New(errors.TypeConfig, "manifest_entry",
				"sitemap resource without destination").WithPath(path)
		}
	}
	return &manifest, nil
}

// Candidates returns the manifest's entries as resolver candidates, in
// manifest order.
func (m *Manifest) Candidates() []related.Resource {
	out := make([]related.Resource, len(m.Resources))
	for i, entry := range m.Resources {
		out[i] = entry
	}
	return out
}
