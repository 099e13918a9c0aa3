package dispatch

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/pipeline"
)

// Job is one task in a batch.
type Job struct {
	ID        string         `yaml:"id"`
	Framework string         `yaml:"framework"`
	Operation string         `yaml:"operation"`
	Params    map[string]any `yaml:"params"`
}

// JobResult is the outcome of one Job. Err is set when the task could not be
// dispatched; a task that ran and failed reports through Result.
type JobResult struct {
	Job    Job
	Result agent.TaskResult
	Route  Route
	Err    error
}

// OK reports whether the job ran and succeeded.
func (r JobResult) OK() bool { return r.Err == nil && r.Result.Success }

// Event reports a job's progress.
type Event struct {
	Job    string
	Status pipeline.ProgressStatus
	Route  Route
}

// FanOut runs jobs through the router with at most parallelism in flight and
// returns one result per job, in job order. A failed job does not stop the
// others; only cancellation of ctx does, and its error is returned.
// onProgress may be nil and is called from worker goroutines.
func FanOut(ctx context.Context, r *Router, jobs []Job, parallelism int, onProgress func(Event)) ([]JobResult, error) {
	emit := func(ev Event) {
		if onProgress != nil {
			onProgress(ev)
		}
	}
	results := make([]JobResult, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, job := range jobs {
		if job.ID == "" {
			job.ID = fmt.Sprintf("job-%d", i+1)
		}
		emit(Event{Job: job.ID, Status: pipeline.ProgressPending})

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = JobResult{Job: job, Err: err}
				return err
			}
			emit(Event{Job: job.ID, Status: pipeline.ProgressWorking})

			res, route, err := r.Execute(gctx, job.Framework, agent.Task{ID: job.ID, Name: job.Operation, Params: job.Params})
			results[i] = JobResult{Job: job, Result: res, Route: route, Err: err}

			status := pipeline.ProgressComplete
			if !results[i].OK() {
				status = pipeline.ProgressFailed
			}
			emit(Event{Job: job.ID, Status: status, Route: route})
			return gctx.Err()
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return results, err
}

type jobFile struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadJobs reads a YAML batch file:
//
//	jobs:
//	  - id: web
//	    framework: react
//	    operation: generate_react_app
//	    params: {output_path: web}
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dispatch: read jobs: %w", err)
	}
	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("dispatch: parse %s: %w", path, err)
	}
	for i, j := range f.Jobs {
		if j.Framework == "" || j.Operation == "" {
			return nil, fmt.Errorf("dispatch: job %d: framework and operation are required", i+1)
		}
	}
	return f.Jobs, nil
}
