package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/observability"
)

// Server hosts initialized agents behind a JSON-RPC endpoint.
type Server struct {
	card    AgentCard
	agents  map[agent.Specialization]agent.Agent
	history *History
	logger  *slog.Logger
	routes  map[string]http.Handler
	now     func() time.Time

	http *http.Server
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = observability.OrDiscard(l) }
}

// WithVersion sets the version advertised on the agent card.
func WithVersion(v string) ServerOption {
	return func(s *Server) { s.card.Version = v }
}

// WithRoute mounts an extra handler next to the JSON-RPC routes, for example
// "GET /metrics".
func WithRoute(pattern string, h http.Handler) ServerOption {
	return func(s *Server) { s.routes[pattern] = h }
}

// NewServer creates a server for agents. Agents must already be initialized;
// a later agent with the same specialization replaces an earlier one.
func NewServer(agents []agent.Agent, opts ...ServerOption) *Server {
	s := &Server{
		card: AgentCard{
			Name:        "frontgen",
			Description: "Frontend project generation agents",
			Version:     "dev",
		},
		agents:  make(map[agent.Specialization]agent.Agent, len(agents)),
		history: NewHistory(),
		logger:  observability.Discard(),
		routes:  make(map[string]http.Handler),
		now:     time.Now,
	}
	for _, ag := range agents {
		s.agents[ag.Specialization()] = ag
	}
	for _, spec := range agent.Specializations {
		if ag, ok := s.agents[spec]; ok {
			s.card.Agents = append(s.card.Agents, DescribeAgent(ag))
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Card returns the agent card.
func (s *Server) Card() AgentCard { return s.card }

// History returns the task history.
func (s *Server) History() *History { return s.history }

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /.well-known/agent-card.json", s.handleAgentCard)
	mux.HandleFunc("POST /", s.handleJSONRPC)
	for pattern, h := range s.routes {
		mux.Handle(pattern, h)
	}
	return mux
}

// Start binds addr and serves in a background goroutine. Bind errors are
// returned; serve errors after that are logged.
func (s *Server) Start(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("rpc: listen %s: %w", addr, err)
	}
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("rpc server listening", "addr", ln.Addr().String(), "agents", len(s.agents))

	go func() {
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("rpc server stopped", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleAgentCard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.card); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONRPCError(w, nil, ErrCodeParse, "Parse error: "+err.Error())
		return
	}
	if req.JSONRPC != JSONRPCVersion {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidRequest, fmt.Sprintf("Invalid request: jsonrpc must be %q", JSONRPCVersion))
		return
	}

	ctx := r.Context()
	s.logger.Debug("rpc call", "method", req.Method)

	switch req.Method {
	case MethodExecute:
		s.dispatchExecute(ctx, w, &req)
	case MethodRequest:
		s.dispatchRequest(ctx, w, &req)
	case MethodListAgents:
		writeJSONRPCResult(w, req.ID, s.card.Agents)
	case MethodGetTask:
		s.dispatchGetTask(w, &req)
	case MethodListTasks:
		s.dispatchListTasks(w, &req)
	default:
		writeJSONRPCError(w, req.ID, ErrCodeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
	}
}

func (s *Server) resolve(name string) (agent.Agent, error) {
	spec, err := agent.ForFramework(name)
	if err != nil {
		return nil, err
	}
	ag, ok := s.agents[spec]
	if !ok {
		return nil, fmt.Errorf("agent %q is not hosted by this server", spec)
	}
	return ag, nil
}

// begin records a working entry before the agent runs.
func (s *Server) begin(id string, ag agent.Agent, method, operation string) {
	now := s.now()
	err := s.history.Create(Record{
		ID:        id,
		Agent:     ag.Specialization(),
		Method:    method,
		Operation: operation,
		State:     StateWorking,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Warn("history record not created", "id", id, "error", err)
	}
}

// finish stores the outcome of a record started with begin.
func (s *Server) finish(id string, success bool, result map[string]any, fail func(*Record)) {
	err := s.history.Update(id, func(rec *Record) {
		rec.UpdatedAt = s.now()
		if success {
			rec.State = StateCompleted
			rec.Result = result
			return
		}
		rec.State = StateFailed
		fail(rec)
	})
	if err != nil {
		s.logger.Warn("history record not updated", "id", id, "error", err)
	}
}

func (s *Server) dispatchExecute(ctx context.Context, w http.ResponseWriter, req *JSONRPCRequest) {
	var params ExecuteParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
		return
	}
	if params.Task.Name == "" {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: task.name is required")
		return
	}
	ag, err := s.resolve(params.Agent)
	if err != nil {
		writeJSONRPCError(w, req.ID, ErrCodeUnknownAgent, err.Error())
		return
	}

	task := params.Task
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	s.begin(task.ID, ag, MethodExecute, task.Name)
	res := ag.ExecuteTask(ctx, task)
	s.finish(task.ID, res.Success, res.Result, func(rec *Record) {
		rec.Error = res.Error
		rec.Kind = res.Kind
	})

	writeJSONRPCResult(w, req.ID, res)
}

func (s *Server) dispatchRequest(ctx context.Context, w http.ResponseWriter, req *JSONRPCRequest) {
	var params RequestParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
		return
	}
	if params.Request.Action == "" {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: request.action is required")
		return
	}
	ag, err := s.resolve(params.Agent)
	if err != nil {
		writeJSONRPCError(w, req.ID, ErrCodeUnknownAgent, err.Error())
		return
	}

	r := params.Request
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.begin(r.ID, ag, MethodRequest, r.Action)
	resp := ag.HandleRequest(ctx, r)
	s.finish(r.ID, resp.Success, resp.Result, func(rec *Record) {
		rec.Error = resp.Error
		rec.Kind = resp.Kind
	})

	writeJSONRPCResult(w, req.ID, resp)
}

func (s *Server) dispatchGetTask(w http.ResponseWriter, req *JSONRPCRequest) {
	var params GetTaskRequest
	if err := json.Unmarshal(req.Params, &params); err != nil {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
		return
	}
	rec, err := s.history.Get(params.ID)
	if err != nil {
		writeJSONRPCError(w, req.ID, ErrCodeTaskNotFound, err.Error())
		return
	}
	writeJSONRPCResult(w, req.ID, rec)
}

func (s *Server) dispatchListTasks(w http.ResponseWriter, req *JSONRPCRequest) {
	var params ListTasksRequest
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, "Invalid params: "+err.Error())
			return
		}
	}
	resp, err := s.history.List(params)
	if err != nil {
		writeJSONRPCError(w, req.ID, ErrCodeInvalidParams, err.Error())
		return
	}
	writeJSONRPCResult(w, req.ID, resp)
}

// writeJSONRPCResult writes a successful JSON-RPC response.
func writeJSONRPCResult(w http.ResponseWriter, id any, result any) {
	data, err := json.Marshal(result)
	if err != nil {
		writeJSONRPCError(w, id, ErrCodeInternal, "Failed to marshal result: "+err.Error())
		return
	}
	_ = json.NewEncoder(w).Encode(JSONRPCResponse{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Result:  data,
	})
}

// writeJSONRPCError writes a JSON-RPC error response.
func writeJSONRPCError(w http.ResponseWriter, id any, code int, message string) {
	_ = json.NewEncoder(w).Encode(JSONRPCResponse{
		JSONRPC: JSONRPCVersion,
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
