package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/status"
)

func newStatusCmd(a *app) *cobra.Command {
	var (
		pf     paramFlags
		ignore []string
	)
	cmd := &cobra.Command{
		Use:   "status [framework]",
		Short: "Compare an output directory against the files a project plan emits",
		Long: `Plan a project with the same parameters as generate, without writing
anything, and report which planned files exist under the output directory.

Files that the plan does not name are listed as extra; build output,
logs and lockfiles are ignored unless --ignore replaces the list.`,
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
			root, _ := params["output_path"].(string)
			if root == "" {
				root = "."
			}

			ag, err := a.spawn(framework, nil)
			if err != nil {
				return err
			}
			planner, ok := ag.(agent.Planner)
			if !ok {
				return fmt.Errorf("%s agent cannot plan projects", ag.Specialization())
			}
			plan, err := planner.PlanProject(params)
			if err != nil {
				return err
			}

			opts := status.Options{}
			if cmd.Flags().Changed("ignore") {
				opts.Ignore = ignore
			}
			report, err := status.Check(root, plan.Paths(), opts)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			fmt.Fprint(cmd.OutOrStdout(), status.Format(report))
			if !report.Complete() {
				return fmt.Errorf("%d planned files missing", report.Missing)
			}
			return nil
		},
	}
	pf.register(cmd)
	cmd.Flags().StringArrayVar(&ignore, "ignore", nil, "glob of unplanned files to leave out of the extra list (repeatable)")
	return cmd
}
