package mcptools

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/errs"
)

// setupServerClient wires an MCP server and client together over in-memory
// transports.
func setupServerClient(t *testing.T) (*mcp.ClientSession, *Service) {
	t.Helper()

	agents, err := agent.NewRegistry().SpawnAll()
	require.NoError(t, err)
	svc := NewService(agents)
	t.Cleanup(func() { svc.Close() })
	server := NewMCPServer(svc, "test")

	st, ct := mcp.NewInMemoryTransports()
	ctx := context.Background()

	_, err = server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { session.Close() })

	return session, svc
}

// callTool calls a tool that must succeed and decodes its structured output.
func callTool[T any](t *testing.T, session *mcp.ClientSession, name string, args any) T {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, result.IsError, "%s returned a tool error: %v", name, result.Content)
	require.NotNil(t, result.StructuredContent)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func callToolError(t *testing.T, session *mcp.ClientSession, name string, args any) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return
	}
	require.NotNil(t, result)
	assert.True(t, result.IsError, "%s should fail", name)
}

func TestMCP_ListTools(t *testing.T) {
	session, _ := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	assert.Equal(t, []string{
		"assess_impact",
		"execute_task",
		"get_dependencies",
		"handle_request",
		"index_project",
		"list_agents",
		"query_symbols",
		"validate_project_name",
	}, names)
}

func TestMCP_ListAgents(t *testing.T) {
	session, _ := setupServerClient(t)

	out := callTool[ListAgentsOutput](t, session, "list_agents", map[string]any{})

	require.Len(t, out.Agents, 4)
	assert.Equal(t, agent.SpecNextJS, out.Agents[0].Specialization)
	assert.Equal(t, "Next.js Agent", out.Agents[0].Name)
	assert.Contains(t, out.Agents[3].Operations, "create_design_system")
}

func TestMCP_ExecuteTask(t *testing.T) {
	session, _ := setupServerClient(t)
	dir := t.TempDir()

	out := callTool[OutcomeOutput](t, session, "execute_task", ExecuteTaskInput{
		Agent:  "vue",
		Task:   "generate_composable",
		TaskID: "t-1",
		Params: map[string]any{"output_path": dir, "composable_name": "useCounter"},
	})

	require.True(t, out.Success, out.Error)
	assert.Equal(t, "t-1", out.ID)
	assert.Equal(t, "vue", out.Result["framework"])
	file, ok := out.Result["file"].(string)
	require.True(t, ok)
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(file)))
	assert.NoError(t, err)
}

func TestMCP_ExecuteTaskFailureIsStructured(t *testing.T) {
	session, _ := setupServerClient(t)

	out := callTool[OutcomeOutput](t, session, "execute_task", ExecuteTaskInput{Agent: "react", Task: "juggle"})

	assert.False(t, out.Success)
	assert.Equal(t, errs.KindUnknownOperation, out.Kind)
	assert.NotEmpty(t, out.ID)
}

func TestMCP_ExecuteTaskRejects(t *testing.T) {
	session, _ := setupServerClient(t)

	callToolError(t, session, "execute_task", ExecuteTaskInput{Agent: "angular", Task: "generate_component"})
	callToolError(t, session, "execute_task", ExecuteTaskInput{Agent: "react"})
}

func TestMCP_HandleRequest(t *testing.T) {
	session, _ := setupServerClient(t)
	dir := t.TempDir()

	out := callTool[OutcomeOutput](t, session, "handle_request", HandleRequestInput{
		Agent:  "Next.js",
		Action: "generate_api_route",
		Data:   map[string]any{"output_path": dir, "route": "orders"},
	})

	require.True(t, out.Success, out.Error)
	assert.Equal(t, "nextjs", out.Result["framework"])
}

func TestMCP_ValidateProjectName(t *testing.T) {
	session, _ := setupServerClient(t)

	bad := callTool[ValidateProjectNameOutput](t, session, "validate_project_name", ValidateProjectNameInput{Name: "Node_Modules"})
	assert.False(t, bad.Valid)
	assert.NotEmpty(t, bad.Errors)
	assert.NotEmpty(t, bad.Suggestion)

	good := callTool[ValidateProjectNameOutput](t, session, "validate_project_name", ValidateProjectNameInput{Name: "my-awesome-app"})
	assert.True(t, good.Valid)
	assert.Empty(t, good.Errors)
	assert.Empty(t, good.Suggestion)
}

func TestMCP_GraphToolsNeedIndex(t *testing.T) {
	session, _ := setupServerClient(t)

	callToolError(t, session, "get_dependencies", GetDependenciesInput{Path: "src/main.tsx"})
	callToolError(t, session, "query_symbols", QuerySymbolsInput{Query: "App"})
}

func TestMCP_IndexGeneratedProject(t *testing.T) {
	session, _ := setupServerClient(t)
	dir := t.TempDir()

	gen := callTool[OutcomeOutput](t, session, "execute_task", ExecuteTaskInput{
		Agent:  "react",
		Task:   "generate_react_app",
		Params: map[string]any{"output_path": dir, "project_name": "graph-demo"},
	})
	require.True(t, gen.Success, gen.Error)

	idx := callTool[IndexProjectOutput](t, session, "index_project", IndexProjectInput{Path: dir, Framework: "react"})
	assert.Positive(t, idx.Stats.FileCount)
	assert.Positive(t, idx.Stats.EdgeCount)
	assert.True(t, idx.Report.Coherent(), idx.Report.Problems())

	deps := callTool[GetDependenciesOutput](t, session, "get_dependencies", GetDependenciesInput{Path: "src/main.tsx"})
	var reached []string
	for _, c := range deps.Chains {
		reached = append(reached, c.Nodes...)
	}
	assert.Contains(t, reached, "src/App.tsx")

	impact := callTool[AssessImpactOutput](t, session, "assess_impact", AssessImpactInput{ChangedFiles: []string{"src/App.tsx"}})
	assert.Contains(t, impact.Impact.DirectlyAffected, "src/main.tsx")

	syms := callTool[QuerySymbolsOutput](t, session, "query_symbols", QuerySymbolsInput{Query: "App"})
	assert.Positive(t, syms.Total)
}

func TestMCP_IndexProjectRejectsMissingPath(t *testing.T) {
	session, _ := setupServerClient(t)

	callToolError(t, session, "index_project", IndexProjectInput{})
	callToolError(t, session, "index_project", IndexProjectInput{Path: filepath.Join(t.TempDir(), "absent")})
}

func TestMCP_CallUnknownTool(t *testing.T) {
	session, _ := setupServerClient(t)
	callToolError(t, session, "nonexistent_tool", map[string]any{})
}
