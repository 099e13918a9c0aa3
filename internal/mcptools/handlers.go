// Package mcptools exposes the agents, name validation and the project
// import graph as MCP tools.
package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/graph"
	"github.com/dusk-indust/frontgen/internal/observability"
	"github.com/dusk-indust/frontgen/internal/scaffold"
	"github.com/dusk-indust/frontgen/internal/validation"
)

// errNotIndexed is returned by graph queries before index_project ran.
var errNotIndexed = errors.New("no project indexed; call index_project first")

// Service holds the agents and the project graph used by the tool handlers.
type Service struct {
	agents map[agent.Specialization]agent.Agent
	order  []agent.Agent
	parser graph.Parser
	open   func() (graph.Store, error)
	logger *slog.Logger

	mu    sync.Mutex
	store graph.Store
	root  string
}

// Option configures a Service.
type Option func(*Service)

// WithGraph sets the parser and the store factory used by index_project.
func WithGraph(parser graph.Parser, open func() (graph.Store, error)) Option {
	return func(s *Service) {
		s.parser = parser
		s.open = open
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = observability.OrDiscard(l) }
}

// NewService creates a Service over initialized agents.
func NewService(agents []agent.Agent, opts ...Option) *Service {
	s := &Service{
		agents: make(map[agent.Specialization]agent.Agent, len(agents)),
		parser: graph.NewTreeSitterParser(),
		open:   func() (graph.Store, error) { return graph.NewMemStore(), nil },
		logger: observability.Discard(),
	}
	var extra []agent.Agent
	for _, ag := range agents {
		if _, dup := s.agents[ag.Specialization()]; !dup && !slices.Contains(agent.Specializations, ag.Specialization()) {
			extra = append(extra, ag)
		}
		s.agents[ag.Specialization()] = ag
	}
	for _, spec := range agent.Specializations {
		if ag, ok := s.agents[spec]; ok {
			s.order = append(s.order, ag)
		}
	}
	s.order = append(s.order, extra...)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the indexed graph, if any.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}

func (s *Service) resolve(name string) (agent.Agent, error) {
	spec, err := agent.ForFramework(name)
	if err != nil {
		return nil, err
	}
	ag, ok := s.agents[spec]
	if !ok {
		return nil, fmt.Errorf("agent %q is not available", spec)
	}
	return ag, nil
}

// ListAgents reports every hosted agent with its operations.
func (s *Service) ListAgents(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListAgentsInput,
) (*mcp.CallToolResult, ListAgentsOutput, error) {
	out := ListAgentsOutput{Agents: make([]AgentInfo, 0, len(s.agents))}
	for _, ag := range s.order {
		ag = s.agents[ag.Specialization()]
		out.Agents = append(out.Agents, AgentInfo{
			ID:             ag.ID(),
			Name:           ag.Name(),
			Specialization: ag.Specialization(),
			Capabilities:   ag.Capabilities(),
			Operations:     ag.Operations(),
		})
	}
	return nil, out, nil
}

// ExecuteTask runs an operation on an agent.
func (s *Service) ExecuteTask(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExecuteTaskInput,
) (*mcp.CallToolResult, OutcomeOutput, error) {
	if input.Task == "" {
		return nil, OutcomeOutput{}, fmt.Errorf("task is required")
	}
	ag, err := s.resolve(input.Agent)
	if err != nil {
		return nil, OutcomeOutput{}, err
	}

	res := ag.ExecuteTask(ctx, agent.Task{ID: input.TaskID, Name: input.Task, Params: input.Params})
	s.logger.Info("mcp task", "agent", ag.Specialization(), "task", input.Task, "success", res.Success)
	return nil, OutcomeOutput{
		ID:      res.TaskID,
		Success: res.Success,
		Result:  res.Result,
		Error:   res.Error,
		Kind:    res.Kind,
	}, nil
}

// HandleRequest runs a handler action on an agent.
func (s *Service) HandleRequest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HandleRequestInput,
) (*mcp.CallToolResult, OutcomeOutput, error) {
	if input.Action == "" {
		return nil, OutcomeOutput{}, fmt.Errorf("action is required")
	}
	ag, err := s.resolve(input.Agent)
	if err != nil {
		return nil, OutcomeOutput{}, err
	}

	resp := ag.HandleRequest(ctx, agent.Request{ID: input.RequestID, Action: input.Action, Data: input.Data})
	s.logger.Info("mcp request", "agent", ag.Specialization(), "action", input.Action, "success", resp.Success)
	return nil, OutcomeOutput{
		ID:      resp.RequestID,
		Success: resp.Success,
		Result:  resp.Result,
		Error:   resp.Error,
		Kind:    resp.Kind,
	}, nil
}

// ValidateProjectName checks a project name and suggests a valid one.
func (s *Service) ValidateProjectName(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ValidateProjectNameInput,
) (*mcp.CallToolResult, ValidateProjectNameOutput, error) {
	res := validation.ProjectName(input.Name)
	out := ValidateProjectNameOutput{
		Valid:    res.Valid(),
		Errors:   nonNil(res.Errors()),
		Warnings: nonNil(res.Warnings()),
	}
	if !out.Valid {
		out.Suggestion = validation.SuggestProjectName(input.Name)
	}
	return nil, out, nil
}

// IndexProject parses a generated project into a fresh graph, replacing the
// previously indexed one.
func (s *Service) IndexProject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexProjectInput,
) (*mcp.CallToolResult, IndexProjectOutput, error) {
	if input.Path == "" {
		return nil, IndexProjectOutput{}, fmt.Errorf("path is required")
	}
	info, err := os.Stat(input.Path)
	if err != nil {
		return nil, IndexProjectOutput{}, fmt.Errorf("cannot access path: %w", err)
	}
	if !info.IsDir() {
		return nil, IndexProjectOutput{}, fmt.Errorf("path is not a directory: %s", input.Path)
	}

	repo, err := scaffold.NewRepo(input.Path)
	if err != nil {
		return nil, IndexProjectOutput{}, err
	}
	framework := ""
	if input.Framework != "" {
		spec, err := agent.ForFramework(input.Framework)
		if err != nil {
			return nil, IndexProjectOutput{}, err
		}
		framework = string(spec)
	}

	store, err := s.open()
	if err != nil {
		return nil, IndexProjectOutput{}, fmt.Errorf("open graph: %w", err)
	}
	report, err := graph.Index(ctx, repo, store, s.parser, graph.IndexOptions{
		Aliases: graph.ProjectAliases(repo, framework),
		Include: input.Include,
	})
	if err != nil {
		store.Close()
		return nil, IndexProjectOutput{}, err
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		store.Close()
		return nil, IndexProjectOutput{}, fmt.Errorf("stats: %w", err)
	}

	s.mu.Lock()
	old := s.store
	s.store, s.root = store, repo.Root()
	s.mu.Unlock()
	if old != nil {
		old.Close()
	}

	s.logger.Info("project indexed", "root", repo.Root(), "files", stats.FileCount, "coherent", report.Coherent())
	return nil, IndexProjectOutput{Stats: *stats, Report: *report}, nil
}

func (s *Service) indexed() (graph.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return nil, errNotIndexed
	}
	return s.store, nil
}

// QuerySymbols searches for symbols by name substring match.
func (s *Service) QuerySymbols(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QuerySymbolsInput,
) (*mcp.CallToolResult, QuerySymbolsOutput, error) {
	store, err := s.indexed()
	if err != nil {
		return nil, QuerySymbolsOutput{}, err
	}
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	symbols, err := store.QuerySymbols(ctx, input.Query, limit)
	if err != nil {
		return nil, QuerySymbolsOutput{}, fmt.Errorf("query symbols: %w", err)
	}
	if input.Kind != "" {
		kind := graph.SymbolKind(strings.ToLower(input.Kind))
		filtered := symbols[:0]
		for _, sym := range symbols {
			if sym.Kind == kind {
				filtered = append(filtered, sym)
			}
		}
		symbols = filtered
	}
	if symbols == nil {
		symbols = []graph.SymbolNode{}
	}

	return nil, QuerySymbolsOutput{Symbols: symbols, Total: len(symbols)}, nil
}

// GetDependencies traverses the import graph from a file.
func (s *Service) GetDependencies(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetDependenciesInput,
) (*mcp.CallToolResult, GetDependenciesOutput, error) {
	if input.Path == "" {
		return nil, GetDependenciesOutput{}, fmt.Errorf("path is required")
	}
	store, err := s.indexed()
	if err != nil {
		return nil, GetDependenciesOutput{}, err
	}

	direction := graph.DirectionDownstream
	if strings.EqualFold(input.Direction, string(graph.DirectionUpstream)) {
		direction = graph.DirectionUpstream
	}
	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}

	chains, err := store.GetDependencies(ctx, input.Path, direction, maxDepth)
	if err != nil {
		return nil, GetDependenciesOutput{}, fmt.Errorf("get dependencies: %w", err)
	}
	if chains == nil {
		chains = []graph.DependencyChain{}
	}
	return nil, GetDependenciesOutput{Chains: chains}, nil
}

// AssessImpact lists the files affected by changing a set of files.
func (s *Service) AssessImpact(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AssessImpactInput,
) (*mcp.CallToolResult, AssessImpactOutput, error) {
	if len(input.ChangedFiles) == 0 {
		return nil, AssessImpactOutput{}, fmt.Errorf("changedFiles is required")
	}
	store, err := s.indexed()
	if err != nil {
		return nil, AssessImpactOutput{}, err
	}

	impact, err := store.AssessImpact(ctx, input.ChangedFiles)
	if err != nil {
		return nil, AssessImpactOutput{}, fmt.Errorf("assess impact: %w", err)
	}
	return nil, AssessImpactOutput{Impact: *impact}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
