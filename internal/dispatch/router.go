package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/errs"
	"github.com/dusk-indust/frontgen/internal/observability"
	"github.com/dusk-indust/frontgen/internal/rpc"
)

// Route records where a task ran.
type Route string

const (
	RouteLocal    Route = "local"
	RouteRemote   Route = "remote"
	RouteFallback Route = "fallback"
)

// Caller executes a task against a named agent on a remote server.
// *rpc.Client implements it.
type Caller interface {
	Execute(ctx context.Context, agentName string, task agent.Task) (*agent.TaskResult, error)
}

// Router sends tasks to a remote caller when one is registered for the
// task's specialization and to a local agent otherwise. A transport failure
// on the remote path falls back to the local agent.
type Router struct {
	local  map[agent.Specialization]agent.Agent
	remote map[agent.Specialization]remoteCaller
	logger *slog.Logger
}

type remoteCaller struct {
	endpoint string
	caller   Caller
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = observability.OrDiscard(l) }
}

// WithRemotes registers an rpc client per detected remote specialization.
func WithRemotes(remotes map[agent.Specialization]Remote) Option {
	return func(r *Router) {
		for spec, rem := range remotes {
			r.remote[spec] = remoteCaller{endpoint: rem.Endpoint, caller: rpc.NewClient(rem.Endpoint)}
		}
	}
}

// WithCaller registers caller for one specialization.
func WithCaller(spec agent.Specialization, endpoint string, caller Caller) Option {
	return func(r *Router) { r.remote[spec] = remoteCaller{endpoint: endpoint, caller: caller} }
}

// NewRouter creates a router over initialized local agents.
func NewRouter(local []agent.Agent, opts ...Option) *Router {
	r := &Router{
		local:  make(map[agent.Specialization]agent.Agent, len(local)),
		remote: make(map[agent.Specialization]remoteCaller),
		logger: observability.Discard(),
	}
	for _, ag := range local {
		r.local[ag.Specialization()] = ag
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs task on the agent for framework, a name or alias.
func (r *Router) Execute(ctx context.Context, framework string, task agent.Task) (agent.TaskResult, Route, error) {
	spec, err := agent.ForFramework(framework)
	if err != nil {
		return agent.TaskResult{}, "", errs.New(errs.KindUnsupportedFramework, "dispatch", err)
	}

	if rc, ok := r.remote[spec]; ok {
		res, err := rc.caller.Execute(ctx, string(spec), task)
		if err == nil {
			return *res, RouteRemote, nil
		}
		if ctx.Err() != nil {
			return agent.TaskResult{}, "", ctx.Err()
		}
		var rpcErr *rpc.RPCError
		if errors.As(err, &rpcErr) && rpcErr.Code != rpc.ErrCodeUnknownAgent {
			return agent.TaskResult{}, RouteRemote, err
		}
		r.logger.Warn("remote agent failed, running locally",
			"endpoint", rc.endpoint, "agent", spec, "task", task.Name, "error", err)
		res2, lerr := r.runLocal(ctx, spec, task)
		return res2, RouteFallback, lerr
	}

	res, err := r.runLocal(ctx, spec, task)
	return res, RouteLocal, err
}

func (r *Router) runLocal(ctx context.Context, spec agent.Specialization, task agent.Task) (agent.TaskResult, error) {
	ag, ok := r.local[spec]
	if !ok {
		return agent.TaskResult{}, fmt.Errorf("dispatch: no local %s agent", spec)
	}
	return ag.ExecuteTask(ctx, task), nil
}
