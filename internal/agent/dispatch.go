package agent

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dusk-indust/frontgen/internal/errs"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// normalizeName lowercases an operation name and maps "-" and spaces to "_".
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "_", " ", "_").Replace(name)
}

// matchOperation finds the operation for a task name: an exact match on the
// normalized name, otherwise the first registered operation whose name is
// contained in it ("please generate_component now" runs generate_component).
func (b *BaseAgent) matchOperation(taskName string) (string, OperationFunc, bool) {
	name := normalizeName(taskName)
	if name == "" {
		return "", nil, false
	}
	if fn, ok := b.operations[name]; ok {
		return name, fn, true
	}
	for _, op := range b.opOrder {
		if strings.Contains(name, op) {
			return op, b.operations[op], true
		}
	}
	return "", nil, false
}

// ExecuteTask runs the operation matching task.Name. Every failure,
// including a panic inside the operation, becomes a failed TaskResult.
func (b *BaseAgent) ExecuteTask(ctx context.Context, task Task) TaskResult {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	op, fn, ok := b.matchOperation(task.Name)
	if !ok {
		err := errs.Newf(errs.KindUnknownOperation, "execute task", "task not recognized: %q", task.Name)
		b.metrics.ObserveTask(string(b.specialization), "unknown", outcomeFailure)
		b.logger.Warn("task not recognized", "task", task.Name, "task_id", task.ID)
		return TaskResult{TaskID: task.ID, Error: err.Error(), Kind: errs.KindOf(err)}
	}

	result, err := b.invoke(ctx, op, fn, task.Params)
	if err != nil {
		return TaskResult{TaskID: task.ID, Error: err.Error(), Kind: errs.KindOf(err)}
	}
	return TaskResult{TaskID: task.ID, Success: true, Result: result}
}

// HandleRequest runs the handler registered for req.Action.
func (b *BaseAgent) HandleRequest(ctx context.Context, req Request) Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	action := normalizeName(req.Action)
	fn, ok := b.handlers[action]
	if !ok {
		err := errs.Newf(errs.KindUnknownOperation, "handle request", "action not supported: %q", req.Action)
		b.metrics.ObserveTask(string(b.specialization), "unknown", outcomeFailure)
		b.logger.Warn("action not supported", "action", req.Action, "request_id", req.ID)
		return Response{RequestID: req.ID, Error: err.Error(), Kind: errs.KindOf(err)}
	}

	result, err := b.invoke(ctx, action, fn, req.Data)
	if err != nil {
		return Response{RequestID: req.ID, Error: err.Error(), Kind: errs.KindOf(err)}
	}
	return Response{RequestID: req.ID, Success: true, Result: result}
}

// invoke is the single recovery boundary shared by tasks and requests.
func (b *BaseAgent) invoke(ctx context.Context, op string, fn OperationFunc, params map[string]any) (result map[string]any, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errs.Newf(errs.KindInternal, op, "panic: %v", r)
		}
		outcome := outcomeSuccess
		if err != nil {
			outcome = outcomeFailure
			b.logger.Warn("operation failed", "operation", op, "kind", string(errs.KindOf(err)), "err", err, "elapsed", time.Since(start))
		} else {
			b.logger.Debug("operation complete", "operation", op, "elapsed", time.Since(start))
		}
		b.metrics.ObserveTask(string(b.specialization), op, outcome)
	}()

	if params == nil {
		params = map[string]any{}
	}
	result, err = fn(ctx, params)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = map[string]any{}
	}
	return result, nil
}
