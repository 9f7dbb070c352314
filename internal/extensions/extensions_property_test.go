//go:build property

package extensions

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/regenkit/regen/internal/registry"
)

// TestResolveProperties validates structural invariants of extension-chain
// resolution over randomly assembled filenames.
func TestResolveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1337)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	templateExts := []string{".erb", ".haml", ".slim", ".liquid"}
	residualExts := []string{".html", ".css", ".xml", ".txt", ""}

	reg := registry.NewEngineRegistry(templateExts...)
	resolver := NewResolver(reg)

	// Filenames are a plain stem, an optional residual extension, and a
	// random stack of template extensions.
	genName := gopter.CombineGens(
		gen.RegexMatch("[a-z][a-z0-9]{0,8}"),
		gen.IntRange(0, len(residualExts)-1),
		gen.SliceOf(gen.IntRange(0, len(templateExts)-1)),
	).Map(func(values []interface{}) string {
		name := values[0].(string) + residualExts[values[1].(int)]
		for _, i := range values[2].([]int) {
			name += templateExts[i]
		}
		return name
	})

	properties.Property("chain ends with exactly one non-template extension", prop.ForAll(
		func(name string) bool {
			chain := resolver.Resolve(name)
			if len(chain) == 0 {
				return false
			}
			for _, ext := range chain[:len(chain)-1] {
				if !reg.IsTemplateExtension(ext) {
					return false
				}
			}
			return !reg.IsTemplateExtension(chain.Residual())
		},
		genName,
	))

	properties.Property("stripped name plus peeled layers reconstructs the input", prop.ForAll(
		func(name string) bool {
			chain := resolver.Resolve(name)
			rebuilt := resolver.StripTemplateExtensions(name)
			for i := len(chain) - 2; i >= 0; i-- {
				rebuilt += chain[i]
			}
			return rebuilt == name
		},
		genName,
	))

	properties.Property("stripped name carries no trailing template extension", prop.ForAll(
		func(name string) bool {
			stripped := resolver.StripTemplateExtensions(name)
			for _, ext := range templateExts {
				if strings.HasSuffix(stripped, ext) {
					return false
				}
			}
			return true
		},
		genName,
	))

	properties.TestingRun(t)
}
