package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/frontgen/internal/export"
	"github.com/dusk-indust/frontgen/internal/graph"
	"github.com/dusk-indust/frontgen/internal/scaffold"
)

func newGraphCmd(a *app) *cobra.Command {
	var (
		framework string
		include   string
		format    string
	)
	cmd := &cobra.Command{
		Use:   "graph [dir]",
		Short: "Index a project's imports and print a diagram or coherence report",
		Long: `Parse every TypeScript, JavaScript and Vue file under dir with tree-sitter,
build the import graph and check that each import resolves.

Formats:
  mermaid  Mermaid "graph TD" diagram grouped by directory (default)
  report   unresolved imports and undeclared packages
  json     the report as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			repo, err := scaffold.NewRepo(dir)
			if err != nil {
				return err
			}

			path := a.settings.Graph.Path
			if a.settings.Graph.Backend == graph.BackendKuzu && path == "" {
				path = filepath.Join(repo.Root(), ".frontgen", "graph")
			}
			store, err := graph.Open(a.settings.Graph.Backend, path)
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := graph.Index(cmd.Context(), repo, store, a.parser, graph.IndexOptions{
				Aliases: graph.ProjectAliases(repo, frameworkName(framework)),
				Include: include,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("project indexed", "files", report.Files, "edges", report.Edges)

			out := cmd.OutOrStdout()
			switch {
			case a.jsonOut || format == "json":
				return writeJSON(out, report)
			case format == "report":
				fmt.Fprintf(out, "%d files, %d symbols, %d edges\n", report.Files, report.Symbols, report.Edges)
				for _, p := range report.Problems() {
					fmt.Fprintf(out, "  %s %s\n", yellow("!"), p)
				}
				if report.Coherent() {
					fmt.Fprintln(out, green("every import resolves"))
					return nil
				}
				return fmt.Errorf("%d import problems", len(report.Problems()))
			case format == "mermaid":
				diagram, err := export.GenerateMermaid(cmd.Context(), store)
				if err != nil {
					return err
				}
				fmt.Fprint(out, diagram)
				return nil
			}
			return fmt.Errorf("unknown format %q (want mermaid, report or json)", format)
		},
	}
	cmd.Flags().StringVar(&framework, "framework", "react", "framework whose default import aliases apply")
	cmd.Flags().StringVar(&include, "include", "", "only index files matching this glob")
	cmd.Flags().StringVar(&format, "format", "mermaid", "output format: mermaid, report or json")
	return cmd
}
