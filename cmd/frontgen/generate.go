package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/config"
	"github.com/dusk-indust/frontgen/internal/export"
	"github.com/dusk-indust/frontgen/internal/pipeline"
)

type paramFlags struct {
	projectDir string
	output     string
	name       string
	sets       []string
}

func (p *paramFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&p.projectDir, "project-dir", ".", "directory holding frontgen.yml project defaults")
	f.StringVarP(&p.output, "output", "o", "", "output directory (overrides the project outputDir)")
	f.StringVar(&p.name, "name", "", "project name")
	f.StringArrayVar(&p.sets, "set", nil, "operation parameter as key=value (repeatable)")
}

// params layers frontgen.yml defaults, then --output and --name, then --set.
func (p *paramFlags) params() (*config.Project, map[string]any, error) {
	project, err := config.LoadProject(p.projectDir)
	if err != nil {
		return nil, nil, fmt.Errorf("load project file: %w", err)
	}
	overrides, err := parseSets(p.sets)
	if err != nil {
		return nil, nil, err
	}
	if p.output != "" {
		if _, set := overrides["output_path"]; !set {
			overrides["output_path"] = p.output
		}
	}
	if p.name != "" {
		if _, set := overrides["project_name"]; !set {
			overrides["project_name"] = p.name
		}
	}
	_, explicit := overrides["output_path"]
	if !explicit && project.OutputDir != "" && !filepath.IsAbs(project.OutputDir) {
		project.OutputDir = filepath.Join(p.projectDir, project.OutputDir)
	}
	return project, project.TaskParams(overrides), nil
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		pf         paramFlags
		exportPath string
		progress   bool
	)
	cmd := &cobra.Command{
		Use:   "generate [framework]",
		Short: "Generate a complete project",
		Long: `Generate a complete project for a framework: nextjs, react, vue or ui.

The framework may come from frontgen.yml instead of the argument.

Examples:
  frontgen generate react -o web --set state_management=zustand
  frontgen generate nextjs --name shop --set tailwind_css=true
  frontgen generate vue --set vue_version=2 --export gen.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, params, err := pf.params()
			if err != nil {
				return err
			}
			framework := project.Framework
			if len(args) == 1 {
				framework = args[0]
			}
			if framework == "" {
				return fmt.Errorf("no framework given and none set in frontgen.yml")
			}
			if _, ok := params["output_path"]; !ok {
				params["output_path"] = "."
			}

			var onProgress func(pipeline.ProgressEvent)
			if progress && !a.jsonOut {
				onProgress = progressPrinter(cmd.ErrOrStderr())
			}
			ag, err := a.spawn(framework, onProgress)
			if err != nil {
				return err
			}
			if _, ok := params["framework"]; !ok && ag.Specialization() != agent.SpecUIDesign {
				params["framework"] = string(ag.Specialization())
			}
			res := ag.ExecuteTask(cmd.Context(), agent.Task{
				Name:   agent.ProjectOperation(ag.Specialization()),
				Params: params,
			})

			if exportPath != "" && res.Success {
				if err := writeExport(exportPath, res.Result); err != nil {
					return err
				}
			}
			return a.report(cmd, res.Success, res, res.Result, res.Error, string(res.Kind))
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&exportPath, "export", "", "write a JSON generation summary to this file")
	cmd.Flags().BoolVar(&progress, "progress", false, "print per-file progress to stderr")
	return cmd
}

func newTaskCmd(a *app) *cobra.Command {
	var (
		pf paramFlags
		id string
	)
	cmd := &cobra.Command{
		Use:   "task <framework> <operation>",
		Short: "Run one agent operation",
		Long: `Run one agent operation, such as generate_component or integrate_tailwind.

Examples:
  frontgen task react generate_component --set component_name=UserCard
  frontgen task nextjs generate_api_route --set route=orders
  frontgen task ui generate_color_palette --set primary_color=#0ea5e9`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, params, err := pf.params()
			if err != nil {
				return err
			}
			if _, ok := params["output_path"]; !ok {
				params["output_path"] = "."
			}
			ag, err := a.spawn(args[0], nil)
			if err != nil {
				return err
			}
			res := ag.ExecuteTask(cmd.Context(), agent.Task{ID: id, Name: args[1], Params: params})
			return a.report(cmd, res.Success, res, res.Result, res.Error, string(res.Kind))
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "task ID (generated when empty)")
	return cmd
}

func newRequestCmd(a *app) *cobra.Command {
	var (
		pf paramFlags
		id string
	)
	cmd := &cobra.Command{
		Use:   "request <framework> <action>",
		Short: "Send a request to an agent handler",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, data, err := pf.params()
			if err != nil {
				return err
			}
			if _, ok := data["output_path"]; !ok {
				data["output_path"] = "."
			}
			ag, err := a.spawn(args[0], nil)
			if err != nil {
				return err
			}
			resp := ag.HandleRequest(cmd.Context(), agent.Request{ID: id, Action: args[1], Data: data})
			return a.report(cmd, resp.Success, resp, resp.Result, resp.Error, string(resp.Kind))
		},
	}
	pf.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "request ID")
	return cmd
}

// report prints an outcome and turns a failed operation into a command error.
func (a *app) report(cmd *cobra.Command, success bool, raw any, result map[string]any, errMsg, kind string) error {
	if a.jsonOut {
		if err := writeJSON(cmd.OutOrStdout(), raw); err != nil {
			return err
		}
	} else {
		printOutcome(cmd.OutOrStdout(), success, result, errMsg, kind)
	}
	if !success {
		return fmt.Errorf("operation failed (%s)", kind)
	}
	return nil
}

func writeExport(path string, result map[string]any) error {
	summary, err := export.FromResult(result, time.Now())
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer f.Close()
	return export.WriteJSON(f, summary)
}
