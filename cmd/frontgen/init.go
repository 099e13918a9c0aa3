package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/config"
	"github.com/dusk-indust/frontgen/internal/validation"
)

// mcpConfig represents the structure of a .mcp.json file.
type mcpConfig struct {
	MCPServers map[string]json.RawMessage `json:"mcpServers"`
}

// frontgenMCPEntry is the MCP server configuration for the frontgen binary.
var frontgenMCPEntry = json.RawMessage(`{
  "type": "stdio",
  "command": "frontgen",
  "args": ["mcp"]
}`)

func newInitCmd(_ *app) *cobra.Command {
	var (
		framework string
		outputDir string
		force     bool
		withMCP   bool
	)
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a frontgen.yml project file and register the MCP server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			spec, err := agent.ForFramework(framework)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			project := config.Project{
				Framework: string(spec),
				OutputDir: outputDir,
				Schema:    map[string]any{"project_name": validation.SuggestProjectName(filepath.Base(absOr(dir)))},
			}
			if err := writeProjectFile(out, filepath.Join(dir, "frontgen.yml"), project, force); err != nil {
				return err
			}
			if withMCP {
				if err := mergeMCPConfig(out, filepath.Join(dir, ".mcp.json"), force); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&framework, "framework", "react", "framework to generate")
	cmd.Flags().StringVar(&outputDir, "output-dir", "web", "directory generated files go to, relative to the project file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing entries")
	cmd.Flags().BoolVar(&withMCP, "mcp", true, "add the frontgen server to .mcp.json")
	return cmd
}

func writeProjectFile(w io.Writer, path string, project config.Project, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprintf(w, "  skipped %s (exists, use --force to overwrite)\n", filepath.Base(path))
		return nil
	}
	data, err := yaml.Marshal(project)
	if err != nil {
		return fmt.Errorf("marshal project file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(w, "  created %s\n", filepath.Base(path))
	return nil
}

// mergeMCPConfig creates or merges the frontgen entry into .mcp.json.
func mergeMCPConfig(w io.Writer, mcpPath string, force bool) error {
	var cfg mcpConfig

	data, err := os.ReadFile(mcpPath)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", mcpPath, err)
		}
	}
	if cfg.MCPServers == nil {
		cfg.MCPServers = make(map[string]json.RawMessage)
	}

	if _, exists := cfg.MCPServers["frontgen"]; exists && !force {
		fmt.Fprintf(w, "  skipped .mcp.json frontgen entry (exists, use --force to overwrite)\n")
		return nil
	}
	cfg.MCPServers["frontgen"] = frontgenMCPEntry

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling .mcp.json: %w", err)
	}
	if err := os.WriteFile(mcpPath, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", mcpPath, err)
	}

	action := "created"
	if data != nil {
		action = "updated"
	}
	fmt.Fprintf(w, "  %s .mcp.json with frontgen MCP server\n", action)
	return nil
}

func absOr(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
