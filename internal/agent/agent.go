// Package agent implements the framework agents: a shared dispatch contract
// (tasks matched by operation name, requests routed through a handler table)
// and one concrete agent per frontend framework that plans, produces and
// emits a project.
package agent

import (
	"context"

	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/pipeline"
)

// Agent is the interface that all framework agents implement.
type Agent interface {
	// ID is unique per agent instance.
	ID() string

	// Name is the human-readable agent name.
	Name() string

	// Specialization is the framework the agent generates for.
	Specialization() Specialization

	// Capabilities lists the advertised capability tags in sorted order.
	Capabilities() []string

	// Operations lists the operation names in registration order.
	Operations() []string

	// Initialize populates framework metadata. It must be called before
	// ExecuteTask or HandleRequest.
	Initialize()

	// ExecuteTask runs the operation matching task.Name. It never panics and
	// never returns an error; failures are reported in the result.
	ExecuteTask(ctx context.Context, task Task) TaskResult

	// HandleRequest runs the handler registered for req.Action with the same
	// discipline as ExecuteTask.
	HandleRequest(ctx context.Context, req Request) Response
}

// Planner is implemented by agents that can report the plan their project
// operation would run without writing anything.
type Planner interface {
	PlanProject(params map[string]any) (pipeline.Plan, error)
}

// Specialization identifies the framework an agent covers.
type Specialization string

const (
	SpecNextJS   Specialization = "nextjs"
	SpecReact    Specialization = "react"
	SpecVue      Specialization = "vue"
	SpecUIDesign Specialization = "ui_design"
)

// Specializations lists every agent kind in a stable order.
var Specializations = []Specialization{SpecNextJS, SpecReact, SpecVue, SpecUIDesign}

// OperationFunc is one named operation. params is the caller's parameter bag
// and must not be mutated.
type OperationFunc func(ctx context.Context, params map[string]any) (map[string]any, error)

// Task is a unit of work addressed by operation name.
type Task struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// TaskResult reports a task outcome. Exactly one of Result and Error is set.
type TaskResult struct {
	TaskID  string         `json:"taskId"`
	Success bool           `json:"success"`
	Result  map[string]any `json:"result,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    errs.Kind      `json:"kind,omitempty"`
}

// Request is a unit of work addressed by handler action.
type Request struct {
	ID     string         `json:"id"`
	Action string         `json:"action"`
	Data   map[string]any `json:"data,omitempty"`
}

// Response reports a request outcome. Exactly one of Result and Error is set.
type Response struct {
	RequestID string         `json:"requestId"`
	Success   bool           `json:"success"`
	Result    map[string]any `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	Kind      errs.Kind      `json:"kind,omitempty"`
}
