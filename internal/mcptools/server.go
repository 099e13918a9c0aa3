package mcptools

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer creates an MCP server with every frontgen tool registered.
func NewMCPServer(svc *Service, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "frontgen",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_agents",
		Description: "List the framework agents (Next.js, React, Vue, UI design) with their capabilities and operation names.",
	}, svc.ListAgents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "execute_task",
		Description: "Run an agent operation such as generate_react_app, generate_component or integrate_tailwind. Files are written under params.output_path. A failed operation returns success=false with an error kind.",
	}, svc.ExecuteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "handle_request",
		Description: "Run an agent handler action with a data bag. Behaves like execute_task but addresses handlers by action name.",
	}, svc.HandleRequest)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_project_name",
		Description: "Check a project name against npm naming rules and reserved words. Returns every problem found and a suggested valid name.",
	}, svc.ValidateProjectName)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "index_project",
		Description: "Parse a generated project with tree-sitter into an import graph and report unresolved imports and undeclared packages.",
	}, svc.IndexProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_symbols",
		Description: "Search the indexed project for top-level declarations by name substring.",
	}, svc.QuerySymbols)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dependencies",
		Description: "Traverse the indexed import graph downstream (files imported) or upstream (importers) from a file.",
	}, svc.GetDependencies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "assess_impact",
		Description: "Compute the files directly and transitively affected by modifying a set of files, with a risk score.",
	}, svc.AssessImpact)

	return server
}

// RunStdio serves server on stdin/stdout until the client disconnects or ctx
// is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves server over streamable HTTP on addr until ctx is cancelled.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
