package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/graph"
	"github.com/dusk-indust/frontgen/internal/metrics"
	"github.com/dusk-indust/frontgen/internal/observability"
	"github.com/dusk-indust/frontgen/internal/scaffold"
	"github.com/dusk-indust/frontgen/internal/validation"
)

// Runner executes plans.
type Runner struct {
	producer    Producer
	parallelism int
	syntax      validation.SyntaxChecker
	parser      graph.Parser
	logger      *slog.Logger
	metrics     *metrics.Metrics
	onProgress  func(ProgressEvent)
}

// Option configures a Runner.
type Option func(*Runner)

// WithParallelism produces up to n artifacts at once. Values below 1 mean
// sequential production.
func WithParallelism(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.parallelism = n
		}
	}
}

// WithSyntaxChecker adds parser-backed syntax findings to code annotation.
func WithSyntaxChecker(sc validation.SyntaxChecker) Option {
	return func(r *Runner) { r.syntax = sc }
}

// WithCoherence indexes the output after emission and reports imports that
// do not resolve as warnings.
func WithCoherence(p graph.Parser) Option {
	return func(r *Runner) { r.parser = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = observability.OrDiscard(l) }
}

// WithMetrics counts produced artifacts by tier.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithProgress registers a callback invoked for every progress event. It is
// called from producing goroutines and must be safe for concurrent use.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(r *Runner) { r.onProgress = fn }
}

// NewRunner creates a Runner around producer.
func NewRunner(producer Producer, opts ...Option) *Runner {
	r := &Runner{
		producer:    producer,
		parallelism: 1,
		logger:      observability.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type produced struct {
	content string
	tier    Tier
}

// Run scaffolds plan.Dirs, produces every artifact and emits them in plan
// order. Production may run in parallel; emission never does. A write
// failure stops the run and returns the partial result: files already
// written stay on disk. A producer panic fails the run as an internal
// error before anything is emitted.
func (r *Runner) Run(ctx context.Context, repo *scaffold.Repo, plan Plan) (*Result, error) {
	dirs, err := scaffold.Scaffold(repo, plan.Dirs)
	if err != nil {
		return nil, err
	}
	result := &Result{Dirs: dirs, Sources: make(map[string]Tier, len(plan.Artifacts))}

	out, err := r.produceAll(ctx, plan)
	if err != nil {
		return result, err
	}

	emitter := scaffold.NewEmitter(repo)
	for i, art := range plan.Artifacts {
		if art.Language != "" {
			result.Warnings = append(result.Warnings, r.annotate(art, out[i].content)...)
		}
		path, err := emitter.Emit(art.Path, out[i].content)
		if err != nil {
			r.emit(ProgressEvent{Framework: plan.Framework, Artifact: art.Path, Status: ProgressFailed, Message: err.Error()})
			result.Files = emitter.Files()
			result.Changes = emitter.Summary()
			return result, fmt.Errorf("emit %s: %w", art.Path, err)
		}
		result.Sources[path] = out[i].tier
		r.metrics.ObserveArtifact(plan.Framework, string(out[i].tier))
		r.emit(ProgressEvent{Framework: plan.Framework, Artifact: path, Status: ProgressComplete, Tier: out[i].tier})
	}
	result.Files = emitter.Files()
	result.Changes = emitter.Summary()

	if r.parser != nil {
		result.Warnings = append(result.Warnings, r.coherence(ctx, repo, plan.Framework)...)
	}
	return result, nil
}

// produceAll fills one slot per artifact so results keep plan order
// regardless of completion order.
func (r *Runner) produceAll(ctx context.Context, plan Plan) ([]produced, error) {
	out := make([]produced, len(plan.Artifacts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)

	for i, art := range plan.Artifacts {
		r.emit(ProgressEvent{Framework: plan.Framework, Artifact: art.Path, Status: ProgressPending})
		g.Go(func() (err error) {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() {
				if rec := recover(); rec != nil {
					err = errs.Newf(errs.KindInternal, "produce "+art.Path, "panic: %v", rec)
					r.emit(ProgressEvent{Framework: plan.Framework, Artifact: art.Path, Status: ProgressFailed, Message: err.Error()})
				}
			}()
			r.emit(ProgressEvent{Framework: plan.Framework, Artifact: art.Path, Status: ProgressWorking})
			content, tier := r.producer.Produce(gctx, art)
			out[i] = produced{content: content, tier: tier}
			r.logger.Debug("artifact produced", "framework", plan.Framework, "artifact", art.Path, "tier", tier)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// annotate runs the code heuristics; findings never block emission.
func (r *Runner) annotate(art Artifact, content string) []string {
	res := validation.Code(content, art.Language, r.syntax)
	res.InFile(art.Path)
	var warnings []string
	for _, is := range res.Issues {
		if is.Severity == validation.SeverityInfo {
			continue
		}
		warnings = append(warnings, is.String())
		r.logger.Warn("generated code", "artifact", art.Path, "issue", is.Message)
	}
	return warnings
}

func (r *Runner) coherence(ctx context.Context, repo *scaffold.Repo, framework string) []string {
	aliases := graph.ProjectAliases(repo, framework)
	store := graph.NewMemStore()
	defer store.Close()
	report, err := graph.Index(ctx, repo, store, r.parser, graph.IndexOptions{Aliases: aliases})
	if err != nil {
		r.logger.Warn("import coherence check skipped", "err", err)
		return nil
	}
	problems := report.Problems()
	for _, p := range problems {
		r.logger.Warn("import coherence", "problem", p)
	}
	return problems
}

func (r *Runner) emit(ev ProgressEvent) {
	if r.onProgress != nil {
		r.onProgress(ev)
	}
}
