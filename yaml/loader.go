// Package yaml loads CLI configuration files for kong.
package yaml

import (
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/insight"
	"gopkg.in/yaml.v3"
)

var _ kong.ConfigurationLoader = Loader

// Resolver resolves flag values from a parsed YAML document. Keys are flag
// names with dashes replaced by underscores, matching the yaml tags of
// insight.Config.
type Resolver struct {
	values map[string]any
}

// Loader parses a YAML configuration file. Use it with kong.Configuration.
func Loader(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, insight.Errorf(insight.EINVALID, "invalid configuration file: %v", err)
	}
	return &Resolver{values: values}, nil
}

// Validate returns an error if the file sets a key that no flag accepts.
func (r *Resolver) Validate(app *kong.Application) error {
	known := map[string]bool{}
	collectFlags(app.Node, known)

	var unknown []string
	for k := range r.values {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return insight.Errorf(insight.EINVALID, "unknown configuration keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// Resolve returns the configured value of flag, or nil if it is not set.
func (r *Resolver) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	v, ok := r.values[key(flag.Name)]
	if !ok {
		return nil, nil
	}
	return v, nil
}

// collectFlags records the flags of node and every command below it.
func collectFlags(node *kong.Node, known map[string]bool) {
	for _, flag := range node.Flags {
		known[key(flag.Name)] = true
	}
	for _, child := range node.Children {
		collectFlags(child, known)
	}
}

func key(flagName string) string {
	return strings.ReplaceAll(flagName, "-", "_")
}
