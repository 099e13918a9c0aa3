// Package pipeline materializes a framework's project plan: it scaffolds the
// directory skeleton, produces every artifact through a Producer, annotates
// the sources and emits them in plan order.
package pipeline

import (
	"context"

	"github.com/dusk-indust/frontgen/internal/generation"
	"github.com/dusk-indust/frontgen/internal/scaffold"
)

// Tier names the strategy that produced an artifact's content.
type Tier string

const (
	TierTemplate  Tier = "template"
	TierGenerated Tier = "generated"
	TierStatic    Tier = "static"
)

// Artifact is one file of a plan.
type Artifact struct {
	// Path is relative to the output root.
	Path string
	// Template names a template to render first. Empty skips the template tier.
	Template string
	// Context is the data for the template and the generation request.
	Context map[string]any
	// Prompt describes the file for the generation backend. Empty means the
	// producer synthesizes one.
	Prompt string
	// Language selects code annotation ("typescript", "tsx", "vue", "json").
	// Empty skips annotation.
	Language string
	// Format tells the generation backend what shape to return.
	Format generation.Format
	// Fallback returns the hand-authored body used when the other tiers fail.
	Fallback func() string
	// Deterministic skips the template and generation tiers; the content
	// always comes from Fallback.
	Deterministic bool
}

// Plan is everything one generation call writes.
type Plan struct {
	Framework string
	Dirs      []string
	Artifacts []Artifact
}

// Add appends artifacts to the plan.
func (p *Plan) Add(arts ...Artifact) {
	p.Artifacts = append(p.Artifacts, arts...)
}

// Paths lists artifact paths in plan order.
func (p Plan) Paths() []string {
	out := make([]string, len(p.Artifacts))
	for i, a := range p.Artifacts {
		out[i] = a.Path
	}
	return out
}

// Producer turns an artifact into content. It must always return usable
// content and report which tier produced it.
type Producer interface {
	Produce(ctx context.Context, art Artifact) (string, Tier)
}

// ProducerFunc adapts a function to Producer.
type ProducerFunc func(ctx context.Context, art Artifact) (string, Tier)

func (f ProducerFunc) Produce(ctx context.Context, art Artifact) (string, Tier) {
	return f(ctx, art)
}

// Result describes one run.
type Result struct {
	Dirs     []string         `json:"dirs"`
	Files    []string         `json:"files"`
	Sources  map[string]Tier  `json:"sources"`
	Warnings []string         `json:"warnings,omitempty"`
	Changes  scaffold.Summary `json:"changes"`
}
