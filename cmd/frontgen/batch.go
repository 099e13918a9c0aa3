package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/frontgen/internal/dispatch"
	"github.com/dusk-indust/frontgen/internal/pipeline"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		remotes     []string
		parallelism int
		probe       time.Duration
	)
	cmd := &cobra.Command{
		Use:   "batch <jobs.yml>",
		Short: "Run a file of agent tasks in parallel, locally or on remote servers",
		Long: `Run every job in a YAML batch file. Jobs whose framework is hosted by a
--remote frontgen server run there; the rest, and any job whose server
cannot be reached, run in process.

  jobs:
    - id: web
      framework: react
      operation: generate_react_app
      params: {output_path: web, state_management: zustand}
    - framework: ui
      operation: create_design_system
      params: {output_path: web}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, err := dispatch.LoadJobs(args[0])
			if err != nil {
				return err
			}
			agents, err := a.spawnAll()
			if err != nil {
				return err
			}
			opts := []dispatch.Option{dispatch.WithLogger(a.logger)}
			if len(remotes) > 0 {
				opts = append(opts, dispatch.WithRemotes(dispatch.Detect(cmd.Context(), remotes, probe, a.logger)))
			}
			router := dispatch.NewRouter(agents, opts...)

			errOut := cmd.ErrOrStderr()
			var onProgress func(dispatch.Event)
			if !a.jsonOut {
				onProgress = func(ev dispatch.Event) {
					switch ev.Status {
					case pipeline.ProgressComplete:
						fmt.Fprintf(errOut, "  %s %s %s\n", green("done"), ev.Job, gray(string(ev.Route)))
					case pipeline.ProgressFailed:
						fmt.Fprintf(errOut, "  %s %s\n", red("fail"), ev.Job)
					}
				}
			}
			results, err := dispatch.FanOut(cmd.Context(), router, jobs, parallelism, onProgress)
			if err != nil {
				return err
			}
			return a.reportBatch(cmd, results)
		},
	}
	cmd.Flags().StringArrayVar(&remotes, "remote", nil, "frontgen server URL to offload jobs to (repeatable)")
	cmd.Flags().IntVar(&parallelism, "parallel", 4, "jobs in flight at once")
	cmd.Flags().DurationVar(&probe, "probe-timeout", dispatch.DefaultProbeTimeout, "agent card request timeout per remote")
	return cmd
}

type batchEntry struct {
	ID      string         `json:"id"`
	Route   string         `json:"route,omitempty"`
	Success bool           `json:"success"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    string         `json:"kind,omitempty"`
}

func (a *app) reportBatch(cmd *cobra.Command, results []dispatch.JobResult) error {
	entries := make([]batchEntry, len(results))
	failed := 0
	for i, r := range results {
		e := batchEntry{
			ID:      r.Job.ID,
			Route:   string(r.Route),
			Success: r.OK(),
			Result:  r.Result.Result,
			Error:   r.Result.Error,
			Kind:    string(r.Result.Kind),
		}
		if r.Err != nil {
			e.Error = r.Err.Error()
		}
		if !e.Success {
			failed++
		}
		entries[i] = e
	}

	out := cmd.OutOrStdout()
	if a.jsonOut {
		if err := writeJSON(out, entries); err != nil {
			return err
		}
	} else {
		for _, e := range entries {
			mark := green("ok  ")
			if !e.Success {
				mark = red("FAIL")
			}
			fmt.Fprintf(out, "%s %s %s\n", mark, bold(e.ID), gray(e.Route))
			if e.Error != "" {
				fmt.Fprintf(out, "     %s\n", e.Error)
			}
		}
		fmt.Fprintf(out, "%d/%d jobs succeeded\n", len(entries)-failed, len(entries))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(entries))
	}
	return nil
}
