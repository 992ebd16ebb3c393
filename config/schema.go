package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// SchemaConfig drives the resolver: which JSON paths to try, in order, and
// which key marks a group wrapper. The site's shape moves between
// deployments, so operators can override the defaults with a YAML file
// instead of a new build.
type SchemaConfig struct {
	CandidatePaths []string `yaml:"candidate_paths"`
	GroupKey       string   `yaml:"group_key"`
}

// DefaultSchema returns the built-in candidate paths, ordered by how often
// each shape has been observed in the wild. The first path that resolves to
// a non-empty list wins.
func DefaultSchema() *SchemaConfig {
	return &SchemaConfig{
		CandidatePaths: []string{
			"props.pageProps.data.listings",
			"props.pageProps.initialState.search.result.list",
			"props.pageProps.searchResult.list",
			"props.pageProps.listings",
			"data.listings",
			"data.result",
			"listings",
			"results",
		},
		GroupKey: "data",
	}
}

// LoadSchema reads a SchemaConfig from the given YAML file. An empty path
// yields the defaults; fields missing from the file fall back to defaults.
func LoadSchema(path string) (*SchemaConfig, error) {
	def := DefaultSchema()
	if path == "" {
		return def, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %q: %w", path, err)
	}

	var sc SchemaConfig
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("schema: parse %q: %w", path, err)
	}

	if len(sc.CandidatePaths) == 0 {
		sc.CandidatePaths = def.CandidatePaths
	}
	if sc.GroupKey == "" {
		sc.GroupKey = def.GroupKey
	}
	return &sc, nil
}
