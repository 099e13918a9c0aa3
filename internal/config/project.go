package config

import (
	"maps"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project holds per-project generation defaults loaded from frontgen.yml.
type Project struct {
	Framework   string         `yaml:"framework,omitempty"`
	OutputDir   string         `yaml:"outputDir,omitempty"`
	TemplateDir string         `yaml:"templateDir,omitempty"`
	Schema      map[string]any `yaml:"schema,omitempty"`
	Params      map[string]any `yaml:"params,omitempty"`
}

// LoadProject attempts to read frontgen.yml or frontgen.yaml from the given
// directory. Returns a zero-value project (not an error) if no file exists.
func LoadProject(dir string) (*Project, error) {
	for _, name := range []string{"frontgen.yml", "frontgen.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var p Project
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, err
		}
		return &p, nil
	}
	return &Project{}, nil
}

// TaskParams builds an operation parameter bag: the project's params, then
// its framework, output directory and schema, then overrides. Later sources
// win; empty project values are skipped.
func (p *Project) TaskParams(overrides map[string]any) map[string]any {
	out := make(map[string]any, len(p.Params)+len(overrides)+3)
	maps.Copy(out, p.Params)
	if p.Framework != "" {
		out["framework"] = p.Framework
	}
	if p.OutputDir != "" {
		out["output_path"] = p.OutputDir
	}
	if len(p.Schema) > 0 {
		out["schema"] = p.Schema
	}
	maps.Copy(out, overrides)
	return out
}
