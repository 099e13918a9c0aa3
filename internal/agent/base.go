package agent

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/generation"
	"github.com/dusk-indust/frontgen/internal/graph"
	"github.com/dusk-indust/frontgen/internal/metrics"
	"github.com/dusk-indust/frontgen/internal/observability"
	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/scaffold"
	"github.com/dusk-indust/frontgen/internal/validation"
)

// Compile-time interface checks.
var (
	_ Agent             = (*BaseAgent)(nil)
	_ pipeline.Producer = (*BaseAgent)(nil)
)

// TemplateBackend renders a named template. render.Engine implements it.
type TemplateBackend interface {
	Render(name string, data map[string]any) (string, error)
}

// BaseAgent provides the shared contract for framework agents: capability
// tags, the operation and handler tables, metadata, the catch-all dispatch
// boundary and tiered content production. Framework agents embed BaseAgent
// and register their operations at construction.
//
// Capabilities, operations and handlers are written only during
// construction; registering while tasks run is not supported.
type BaseAgent struct {
	id             string
	name           string
	specialization Specialization

	capabilities map[string]struct{}
	operations   map[string]OperationFunc
	opOrder      []string
	handlers     map[string]OperationFunc

	mu       sync.RWMutex
	metadata map[string]any

	generator   *generation.Adapter
	templates   TemplateBackend
	syntax      validation.SyntaxChecker
	coherence   graph.Parser
	parallelism int
	progress    func(pipeline.ProgressEvent)
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// Option configures a BaseAgent.
type Option func(*BaseAgent)

// WithGenerator sets the generation backend adapter. Without one every
// generated tier falls through to static content.
func WithGenerator(a *generation.Adapter) Option {
	return func(b *BaseAgent) { b.generator = a }
}

// WithTemplates sets the template backend.
func WithTemplates(t TemplateBackend) Option {
	return func(b *BaseAgent) { b.templates = t }
}

// WithSyntaxChecker adds parser-backed findings to generated code checks.
func WithSyntaxChecker(sc validation.SyntaxChecker) Option {
	return func(b *BaseAgent) { b.syntax = sc }
}

// WithCoherence checks that imports in emitted projects resolve.
func WithCoherence(p graph.Parser) Option {
	return func(b *BaseAgent) { b.coherence = p }
}

// WithParallelism produces up to n artifacts of a plan at once.
func WithParallelism(n int) Option {
	return func(b *BaseAgent) { b.parallelism = n }
}

// WithProgress receives artifact progress events.
func WithProgress(fn func(pipeline.ProgressEvent)) Option {
	return func(b *BaseAgent) { b.progress = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *BaseAgent) { b.logger = observability.OrDiscard(l) }
}

// WithMetrics records task outcomes and artifact tiers.
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *BaseAgent) { b.metrics = m }
}

// NewBaseAgent creates a BaseAgent with empty tables.
func NewBaseAgent(spec Specialization, name string, opts ...Option) *BaseAgent {
	b := &BaseAgent{
		id:             uuid.NewString(),
		name:           name,
		specialization: spec,
		capabilities:   make(map[string]struct{}),
		operations:     make(map[string]OperationFunc),
		handlers:       make(map[string]OperationFunc),
		metadata:       make(map[string]any),
		parallelism:    1,
		logger:         observability.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("agent", string(spec))
	return b
}

// ID returns the instance id.
func (b *BaseAgent) ID() string { return b.id }

// Name returns the display name.
func (b *BaseAgent) Name() string { return b.name }

// Specialization returns the framework the agent covers.
func (b *BaseAgent) Specialization() Specialization { return b.specialization }

// AddCapability advertises tag. Adding a tag twice is a no-op.
func (b *BaseAgent) AddCapability(tag string) {
	b.capabilities[tag] = struct{}{}
}

// HasCapability reports whether tag is advertised.
func (b *BaseAgent) HasCapability(tag string) bool {
	_, ok := b.capabilities[tag]
	return ok
}

// Capabilities returns the advertised tags in sorted order.
func (b *BaseAgent) Capabilities() []string {
	return slices.Sorted(maps.Keys(b.capabilities))
}

// RegisterHandler sets the handler for action. The last registration wins.
func (b *BaseAgent) RegisterHandler(action string, fn OperationFunc) {
	b.handlers[normalizeName(action)] = fn
}

// Handlers lists the registered actions in sorted order.
func (b *BaseAgent) Handlers() []string {
	return slices.Sorted(maps.Keys(b.handlers))
}

// RegisterOperation makes fn reachable both as a task name and as a request
// action.
func (b *BaseAgent) RegisterOperation(name string, fn OperationFunc) {
	name = normalizeName(name)
	if _, ok := b.operations[name]; !ok {
		b.opOrder = append(b.opOrder, name)
	}
	b.operations[name] = fn
	b.RegisterHandler(name, fn)
}

// Operations lists operation names in registration order.
func (b *BaseAgent) Operations() []string {
	return slices.Clone(b.opOrder)
}

// SetMetadata stores a metadata value.
func (b *BaseAgent) SetMetadata(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metadata[key] = value
}

// GetMetadata returns the value for key, or def when unset.
func (b *BaseAgent) GetMetadata(key string, def any) any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if v, ok := b.metadata[key]; ok {
		return v
	}
	return def
}

// Metadata returns a copy of all metadata.
func (b *BaseAgent) Metadata() map[string]any {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return maps.Clone(b.metadata)
}

// Initialize records the agent's identity in metadata. Framework agents
// add their version metadata on top.
func (b *BaseAgent) Initialize() {
	b.initialize(nil)
}

func (b *BaseAgent) initialize(versions map[string]any) {
	b.SetMetadata("specialization", string(b.specialization))
	b.SetMetadata("name", b.name)
	b.SetMetadata("operations", len(b.opOrder))
	for k, v := range versions {
		b.SetMetadata(k, v)
	}
	b.logger.Info("agent initialized", "id", b.id, "operations", len(b.opOrder), "capabilities", len(b.capabilities))
}

// CanHandleFramework reports whether name is contained in the agent's
// specialization, ignoring case. "next" and "NEXTJS" both match "nextjs".
func (b *BaseAgent) CanHandleFramework(name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	return strings.Contains(strings.ToLower(string(b.specialization)), strings.ToLower(name))
}

// ValidateFrontendRequest returns every problem with params: a missing
// output_path, a missing framework (not required by the UI design agent)
// and a framework this agent does not cover.
func (b *BaseAgent) ValidateFrontendRequest(params map[string]any) []string {
	var problems []string
	if stringParam(params, "output_path") == "" {
		problems = append(problems, "output_path is required")
	}

	framework := stringParam(params, "framework")
	switch {
	case b.specialization == SpecUIDesign:
		if framework != "" && !validation.IsSupportedFramework(framework) {
			problems = append(problems, fmt.Sprintf("framework %q is not supported (supported: %s)", framework, strings.Join(validation.SupportedFrameworks, ", ")))
		}
	case framework == "":
		problems = append(problems, "framework is required")
	case !b.CanHandleFramework(framework):
		problems = append(problems, fmt.Sprintf("framework %q is not handled by the %s agent", framework, b.specialization))
	}
	return problems
}

// checkRequest turns ValidateFrontendRequest problems plus extra into one
// error. A framework mismatch makes it an unsupported-framework error.
func (b *BaseAgent) checkRequest(op string, params map[string]any, extra ...string) error {
	problems := append(b.ValidateFrontendRequest(params), extra...)
	if len(problems) == 0 {
		return nil
	}
	kind := errs.KindValidation
	if fw := stringParam(params, "framework"); fw != "" {
		if b.specialization == SpecUIDesign && !validation.IsSupportedFramework(fw) ||
			b.specialization != SpecUIDesign && !b.CanHandleFramework(fw) {
			kind = errs.KindUnsupportedFramework
		}
	}
	return &errs.Error{Kind: kind, Op: op, Problems: problems}
}

// CallLLMForGeneration asks the generation backend for text and falls back
// to deterministic placeholder source when the backend is absent, fails or
// answers with something unusable. The result is never empty.
func (b *BaseAgent) CallLLMForGeneration(ctx context.Context, prompt string, genCtx map[string]any) string {
	out := b.generator.Generate(ctx, generation.Request{
		Prompt:         prompt,
		Context:        genCtx,
		Specialization: string(b.specialization),
	})
	if out.OK() {
		return out.Text
	}
	if b.generator.Configured() {
		b.logger.Warn("generation failed, using placeholder", "status", out.Status.String(), "err", out.Err)
	}
	return generation.Placeholder(b.name, string(b.specialization), genCtx)
}

// RenderTemplate renders name through the template backend and falls back
// to CallLLMForGeneration with a prompt describing the template.
func (b *BaseAgent) RenderTemplate(ctx context.Context, name string, data map[string]any) string {
	if b.templates != nil {
		out, err := b.render(name, data)
		if err == nil && strings.TrimSpace(out) != "" {
			return out
		}
		b.logger.Warn("template render failed", "template", name, "err", err)
	}
	prompt := fmt.Sprintf("Generate %s code for the %q template.", b.specialization, name)
	return b.CallLLMForGeneration(ctx, prompt, data)
}

// ValidateGeneratedCode annotates code. Only empty code is an error.
func (b *BaseAgent) ValidateGeneratedCode(code, language string) validation.Result {
	return validation.Code(code, language, b.syntax)
}

// Produce implements pipeline.Producer with four decreasing-cost steps:
// the artifact's template, the generation backend, the artifact's static
// body and finally the placeholder generator. Deterministic artifacts start
// at the static body.
func (b *BaseAgent) Produce(ctx context.Context, art pipeline.Artifact) (string, pipeline.Tier) {
	if art.Deterministic {
		return b.static(art), pipeline.TierStatic
	}
	if b.templates != nil && art.Template != "" {
		out, err := b.render(art.Template, art.Context)
		if err == nil && strings.TrimSpace(out) != "" {
			return out, pipeline.TierTemplate
		}
		b.logger.Warn("template render failed", "artifact", art.Path, "template", art.Template, "err", err)
	}

	prompt := art.Prompt
	if prompt == "" {
		prompt = fmt.Sprintf("Generate the file %s for a %s project.", art.Path, b.specialization)
	}
	out := b.generator.Generate(ctx, generation.Request{
		Prompt:         prompt,
		Context:        art.Context,
		Specialization: string(b.specialization),
		Format:         art.Format,
	})
	if out.OK() {
		return out.Text, pipeline.TierGenerated
	}
	if b.generator.Configured() {
		b.logger.Warn("generation failed, using static content", "artifact", art.Path, "status", out.Status.String(), "err", out.Err)
	}

	return b.static(art), pipeline.TierStatic
}

// render shields the caller from panicking template backends.
func (b *BaseAgent) render(name string, data map[string]any) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("template backend panicked: %v", r)
		}
	}()
	return b.templates.Render(name, data)
}

func (b *BaseAgent) static(art pipeline.Artifact) string {
	if body := b.fallback(art); strings.TrimSpace(body) != "" {
		return body
	}
	return generation.Placeholder(b.name, string(b.specialization), art.Context)
}

func (b *BaseAgent) fallback(art pipeline.Artifact) (body string) {
	if art.Fallback == nil {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("static body panicked", "artifact", art.Path, "panic", r)
			body = ""
		}
	}()
	return art.Fallback()
}

// RunPlan materializes plan under outputPath.
func (b *BaseAgent) RunPlan(ctx context.Context, outputPath string, plan pipeline.Plan) (*pipeline.Result, error) {
	repo, err := scaffold.NewRepo(outputPath)
	if err != nil {
		return nil, err
	}
	opts := []pipeline.Option{
		pipeline.WithParallelism(b.parallelism),
		pipeline.WithLogger(b.logger),
		pipeline.WithMetrics(b.metrics),
	}
	if b.syntax != nil {
		opts = append(opts, pipeline.WithSyntaxChecker(b.syntax))
	}
	if b.coherence != nil {
		opts = append(opts, pipeline.WithCoherence(b.coherence))
	}
	if b.progress != nil {
		opts = append(opts, pipeline.WithProgress(b.progress))
	}
	return pipeline.NewRunner(b, opts...).Run(ctx, repo, plan)
}

// framework is the name templates and manifests use for the agent.
func (b *BaseAgent) framework() string {
	if b.specialization == SpecUIDesign {
		return "ui"
	}
	return string(b.specialization)
}

func boolParam(params map[string]any, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func stringParam(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return strings.TrimSpace(s)
}
