// Package config provides the configuration loader for glow.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/glow/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up in the working directory.
const DefaultFilename = "glow.yaml"

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
}

// NewLoader creates a loader for the given filename. An empty filename
// falls back to DefaultFilename.
func NewLoader(filename string) *FileConfigLoader {
	if filename == "" {
		filename = DefaultFilename
	}
	return &FileConfigLoader{Filename: filename}
}

// Load reads the configuration from the given working directory.
func (l *FileConfigLoader) Load(cwd string) ([]domain.ModuleDef, error) {
	path := filepath.Join(cwd, l.Filename)
	return Load(path)
}

// Glowfile represents the structure of the glow.yaml configuration file.
type Glowfile struct {
	Version string               `yaml:"version"`
	Modules map[string]ModuleDTO `yaml:"modules"`
}

// ModuleDTO represents a module definition in the configuration.
type ModuleDTO struct {
	Inputs []string  `yaml:"inputs"`
	Nodes  []NodeDTO `yaml:"nodes"`
	Output string    `yaml:"output"`
}

// NodeDTO represents one call node of a module graph.
type NodeDTO struct {
	Name  string             `yaml:"name"`
	Op    string             `yaml:"op"`
	Args  []string           `yaml:"args"`
	Attrs map[string]float64 `yaml:"attrs"`
}

// Load reads a configuration file from the given path and returns the
// module definitions sorted by name.
func Load(path string) ([]domain.ModuleDef, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	var glowfile Glowfile
	if err := yaml.Unmarshal(data, &glowfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	defs := make([]domain.ModuleDef, 0, len(glowfile.Modules))
	for name, dto := range glowfile.Modules {
		g, err := buildGraph(dto)
		if err != nil {
			return nil, zerr.With(err, "module", name)
		}
		defs = append(defs, domain.ModuleDef{Name: name, Graph: g})
	}

	slices.SortFunc(defs, func(a, b domain.ModuleDef) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})

	return defs, nil
}

// buildGraph assembles and validates the graph of one module definition.
// Node order in the file is program order, so forward references are
// rejected by Append the same way as programmatic construction.
func buildGraph(dto ModuleDTO) (*domain.Graph, error) {
	g := domain.NewGraph()

	for _, in := range dto.Inputs {
		if err := g.Append(domain.Node{
			Name: domain.NewInternedString(in),
			Op:   domain.OpPlaceholder,
		}); err != nil {
			return nil, err
		}
	}

	for _, node := range dto.Nodes {
		if err := g.Append(domain.Node{
			Name:   domain.NewInternedString(node.Name),
			Op:     domain.OpCall,
			Target: domain.NewInternedString(node.Op),
			Args:   internStrings(node.Args),
			Attrs:  node.Attrs,
		}); err != nil {
			return nil, err
		}
	}

	if err := g.Append(domain.Node{
		Name: domain.NewInternedString("output"),
		Op:   domain.OpOutput,
		Args: []domain.InternedString{domain.NewInternedString(dto.Output)},
	}); err != nil {
		return nil, err
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

func internStrings(strs []string) []domain.InternedString {
	res := make([]domain.InternedString, len(strs))
	for i, s := range strs {
		res[i] = domain.NewInternedString(s)
	}
	return res
}
