package main

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/config"
	"github.com/dusk-indust/frontgen/internal/generation"
	"github.com/dusk-indust/frontgen/internal/graph"
	"github.com/dusk-indust/frontgen/internal/metrics"
	"github.com/dusk-indust/frontgen/internal/observability"
	"github.com/dusk-indust/frontgen/internal/pipeline"
	"github.com/dusk-indust/frontgen/internal/render"
)

// app carries the settings and shared services of one invocation.
type app struct {
	configPath string
	logLevel   string
	jsonOut    bool

	settings *config.Settings
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	parser   *graph.TreeSitterParser
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "frontgen",
		Short: "Scaffold frontend projects with framework agents",
		Long: `frontgen generates Next.js, React and Vue projects and design systems.

Each framework has an agent that plans the project's files, renders them
from templates (or an optional LLM backend) and writes them under an
output directory. The agents can also be served over JSON-RPC and MCP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.parser != nil {
				_ = a.parser.Close()
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "settings file (default ./frontgen.yaml)")
	f.StringVar(&a.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	f.BoolVar(&a.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		newGenerateCmd(a),
		newTaskCmd(a),
		newRequestCmd(a),
		newBatchCmd(a),
		newValidateCmd(a),
		newStatusCmd(a),
		newGraphCmd(a),
		newAgentsCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newInitCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	s, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		s.Log.Level = a.logLevel
	}
	a.settings = s
	a.logger = observability.NewLogger(observability.LogConfig{
		Level:  s.Log.Level,
		Format: s.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.MustNew(a.registry)
	a.parser = graph.NewTreeSitterParser()
	return nil
}

// agentOptions wires templates, the generation backend, syntax and import
// checks, metrics and logging into every spawned agent.
func (a *app) agentOptions(progress func(pipeline.ProgressEvent)) ([]agent.Option, error) {
	engine, err := render.New(render.WithDir(a.settings.Templates.Dir))
	if err != nil {
		return nil, err
	}
	opts := []agent.Option{
		agent.WithTemplates(engine),
		agent.WithSyntaxChecker(a.parser),
		agent.WithCoherence(a.parser),
		agent.WithParallelism(a.settings.Pipeline.Parallelism),
		agent.WithLogger(a.logger),
		agent.WithMetrics(a.metrics),
	}
	if progress != nil {
		opts = append(opts, agent.WithProgress(progress))
	}

	gen, err := a.generator()
	if err != nil {
		return nil, err
	}
	if gen != nil {
		opts = append(opts, agent.WithGenerator(gen))
	}
	return opts, nil
}

// generator builds the LLM adapter, or nil when generation.provider is none.
func (a *app) generator() (*generation.Adapter, error) {
	g := a.settings.Generation
	if g.Provider != config.ProviderAnthropic {
		return nil, nil
	}
	backend, err := generation.NewAnthropicBackend(generation.AnthropicConfig{
		APIKey:    g.APIKey,
		BaseURL:   g.BaseURL,
		Model:     g.Model,
		MaxTokens: g.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generation backend: %w", err)
	}
	cached, err := generation.NewCached(generation.NewRetrying(backend, g.MaxRetries), g.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("generation cache: %w", err)
	}
	a.logger.Debug("generation backend configured", "provider", g.Provider, "model", g.Model)
	return generation.NewAdapter(cached,
		generation.WithTimeout(g.Timeout),
		generation.WithBudget(generation.NewBudget(g.TokenBudget)),
		generation.WithLogger(a.logger),
		generation.WithMetrics(a.metrics),
	), nil
}

// spawn creates the agent for a framework name or alias.
func (a *app) spawn(framework string, progress func(pipeline.ProgressEvent)) (agent.Agent, error) {
	spec, err := agent.ForFramework(framework)
	if err != nil {
		return nil, err
	}
	opts, err := a.agentOptions(progress)
	if err != nil {
		return nil, err
	}
	return agent.NewRegistry().Spawn(spec, opts...)
}

// spawnAll creates one agent per framework.
func (a *app) spawnAll() ([]agent.Agent, error) {
	opts, err := a.agentOptions(nil)
	if err != nil {
		return nil, err
	}
	return agent.NewRegistry().SpawnAll(opts...)
}
