package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dusk-indust/frontgen/internal/graph"
)

// GenerationExport is the JSON summary of one project generation.
type GenerationExport struct {
	Framework   string            `json:"framework" mapstructure:"framework"`
	OutputPath  string            `json:"outputPath" mapstructure:"output_path"`
	ExportedAt  string            `json:"exportedAt" mapstructure:"-"`
	Files       []FileExport      `json:"files" mapstructure:"-"`
	Directories []string          `json:"directories,omitempty" mapstructure:"directories"`
	Changes     map[string]int    `json:"changes" mapstructure:"changes"`
	Warnings    []string          `json:"warnings" mapstructure:"warnings"`
	NextSteps   []string          `json:"nextSteps,omitempty" mapstructure:"next_steps"`
	Commands    map[string]string `json:"commands,omitempty" mapstructure:"run_commands"`
	Graph       *graph.Report     `json:"graph,omitempty" mapstructure:"-"`
}

// FileExport is one emitted file and the tier that produced it.
type FileExport struct {
	Path   string `json:"path"`
	Source string `json:"source,omitempty"`
}

// resultFields mirrors the file fields of an operation result.
type resultFields struct {
	Files   []string          `mapstructure:"generated_files"`
	Setup   []string          `mapstructure:"files"`
	Sources map[string]string `mapstructure:"sources"`
}

// FromResult builds an export from an operation result map, as returned by
// an agent in process or decoded from JSON. Project results list
// generated_files; setup results list files.
func FromResult(result map[string]any, now time.Time) (*GenerationExport, error) {
	var out GenerationExport
	if err := decode(result, &out); err != nil {
		return nil, err
	}
	var fields resultFields
	if err := decode(result, &fields); err != nil {
		return nil, err
	}

	paths := fields.Files
	if len(paths) == 0 {
		paths = fields.Setup
	}
	out.Files = make([]FileExport, 0, len(paths))
	for _, p := range paths {
		out.Files = append(out.Files, FileExport{Path: p, Source: fields.Sources[p]})
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	out.ExportedAt = now.UTC().Format(time.RFC3339)
	return &out, nil
}

func decode(in map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("export: decode result: %w", err)
	}
	return nil
}

// TierCounts counts files per producing tier.
func (g *GenerationExport) TierCounts() map[string]int {
	out := make(map[string]int)
	for _, f := range g.Files {
		if f.Source != "" {
			out[f.Source]++
		}
	}
	return out
}

// SortedFiles returns the file paths in lexical order.
func (g *GenerationExport) SortedFiles() []string {
	out := make([]string, len(g.Files))
	for i, f := range g.Files {
		out[i] = f.Path
	}
	sort.Strings(out)
	return out
}

// WriteJSON writes the export as indented JSON.
func WriteJSON(w io.Writer, g *GenerationExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("export: encode: %w", err)
	}
	return nil
}
