package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/dusk-indust/frontgen/internal/graph"
	"github.com/dusk-indust/frontgen/internal/mcptools"
	"github.com/dusk-indust/frontgen/internal/rpc"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the agents over JSON-RPC",
		Long: `Serve every agent over JSON-RPC 2.0 on POST /, with the agent card at
GET /.well-known/agent-card.json and, when serve.metrics is set,
Prometheus metrics at GET /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.settings.Serve.Addr
			}
			agents, err := a.spawnAll()
			if err != nil {
				return err
			}
			opts := []rpc.ServerOption{rpc.WithLogger(a.logger), rpc.WithVersion(version)}
			if a.settings.Serve.Metrics {
				opts = append(opts, rpc.WithRoute("GET /metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
			}
			srv := rpc.NewServer(agents, opts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := srv.Start(ctx, addr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", green("serving agents on"), addr)
			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Stop(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address (default serve.addr)")
	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	var httpAddr string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the agents, name validation and import graph as MCP tools",
		Long: `Run an MCP server on stdin/stdout, or over streamable HTTP with --http.

Register it with an MCP client as:
  {"type": "stdio", "command": "frontgen", "args": ["mcp"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			agents, err := a.spawnAll()
			if err != nil {
				return err
			}
			backend, path := a.settings.Graph.Backend, a.settings.Graph.Path
			svc := mcptools.NewService(agents,
				mcptools.WithLogger(a.logger),
				mcptools.WithGraph(a.parser, func() (graph.Store, error) { return graph.Open(backend, path) }),
			)
			defer svc.Close()
			server := mcptools.NewMCPServer(svc, version)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if httpAddr != "" {
				a.logger.Info("serving MCP over HTTP", "addr", httpAddr)
				return mcptools.RunHTTP(ctx, server, httpAddr)
			}
			return mcptools.RunStdio(ctx, server)
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	return cmd
}
