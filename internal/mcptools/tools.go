package mcptools

import (
	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/graph"
)

// --- MCP Tool Input and Output Types ---
// The MCP Go SDK derives each tool's JSON schema from these struct tags.

// ListAgentsInput is the input for the list_agents tool.
type ListAgentsInput struct{}

// AgentInfo describes one hosted agent.
type AgentInfo struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Specialization agent.Specialization `json:"specialization"`
	Capabilities   []string             `json:"capabilities"`
	Operations     []string             `json:"operations"`
}

// ListAgentsOutput is the result of the list_agents tool.
type ListAgentsOutput struct {
	Agents []AgentInfo `json:"agents"`
}

// ExecuteTaskInput is the input for the execute_task tool.
type ExecuteTaskInput struct {
	Agent  string         `json:"agent" jsonschema:"agent to run: nextjs, react, vue or ui_design (framework aliases such as Next.js are accepted)"`
	Task   string         `json:"task" jsonschema:"operation name, e.g. generate_react_app or generate_component"`
	TaskID string         `json:"taskId,omitempty" jsonschema:"optional task id; generated when empty"`
	Params map[string]any `json:"params,omitempty" jsonschema:"operation parameters, e.g. output_path, project_name, typescript"`
}

// HandleRequestInput is the input for the handle_request tool.
type HandleRequestInput struct {
	Agent     string         `json:"agent" jsonschema:"agent to run: nextjs, react, vue or ui_design"`
	Action    string         `json:"action" jsonschema:"handler action name"`
	RequestID string         `json:"requestId,omitempty" jsonschema:"optional request id; generated when empty"`
	Data      map[string]any `json:"data,omitempty" jsonschema:"handler data"`
}

// OutcomeOutput is the result of execute_task and handle_request. A failed
// operation is reported here with Success false, not as a tool error.
type OutcomeOutput struct {
	ID      string         `json:"id"`
	Success bool           `json:"success"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    errs.Kind      `json:"kind,omitempty"`
}

// ValidateProjectNameInput is the input for the validate_project_name tool.
type ValidateProjectNameInput struct {
	Name string `json:"name" jsonschema:"candidate project name"`
}

// ValidateProjectNameOutput is the result of the validate_project_name tool.
type ValidateProjectNameOutput struct {
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors"`
	Warnings   []string `json:"warnings"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// IndexProjectInput is the input for the index_project tool.
type IndexProjectInput struct {
	Path      string `json:"path" jsonschema:"absolute path of a generated project"`
	Framework string `json:"framework,omitempty" jsonschema:"project framework, used for the default @/ alias"`
	Include   string `json:"include,omitempty" jsonschema:"optional glob restricting the indexed files, e.g. src/**"`
}

// IndexProjectOutput is the result of the index_project tool.
type IndexProjectOutput struct {
	Stats  graph.GraphStats `json:"stats"`
	Report graph.Report     `json:"report"`
}

// QuerySymbolsInput is the input for the query_symbols tool.
type QuerySymbolsInput struct {
	Query string `json:"query" jsonschema:"search query for symbol names (substring match)"`
	Kind  string `json:"kind,omitempty" jsonschema:"filter by symbol kind: function, class, type, interface, variable"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// QuerySymbolsOutput is the result of the query_symbols tool.
type QuerySymbolsOutput struct {
	Symbols []graph.SymbolNode `json:"symbols"`
	Total   int                `json:"total"`
}

// GetDependenciesInput is the input for the get_dependencies tool.
type GetDependenciesInput struct {
	Path      string `json:"path" jsonschema:"project-relative file path"`
	Direction string `json:"direction,omitempty" jsonschema:"downstream (files it imports) or upstream (files importing it). Default: downstream"`
	MaxDepth  int    `json:"maxDepth,omitempty" jsonschema:"maximum traversal depth (default: 5)"`
}

// GetDependenciesOutput is the result of the get_dependencies tool.
type GetDependenciesOutput struct {
	Chains []graph.DependencyChain `json:"chains"`
}

// AssessImpactInput is the input for the assess_impact tool.
type AssessImpactInput struct {
	ChangedFiles []string `json:"changedFiles" jsonschema:"project-relative paths that will be modified"`
}

// AssessImpactOutput is the result of the assess_impact tool.
type AssessImpactOutput struct {
	Impact graph.ImpactResult `json:"impact"`
}
