package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dusk-indust/frontgen/internal/agent"
)

// Client calls a frontgen JSON-RPC endpoint.
type Client struct {
	endpoint  string
	http      *http.Client
	requestID atomic.Int64
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client entirely.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: strings.TrimRight(baseURL, "/") + "/",
		http:     &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute runs a task on the named agent via agent/execute. A failed task is
// not an error; inspect TaskResult.Success.
func (c *Client) Execute(ctx context.Context, agentName string, task agent.Task) (*agent.TaskResult, error) {
	var res agent.TaskResult
	if err := c.call(ctx, MethodExecute, ExecuteParams{Agent: agentName, Task: task}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Request runs a handler on the named agent via agent/request.
func (c *Client) Request(ctx context.Context, agentName string, req agent.Request) (*agent.Response, error) {
	var resp agent.Response
	if err := c.call(ctx, MethodRequest, RequestParams{Agent: agentName, Request: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListAgents returns the hosted agents via agents/list.
func (c *Client) ListAgents(ctx context.Context) ([]AgentEntry, error) {
	var entries []AgentEntry
	if err := c.call(ctx, MethodListAgents, struct{}{}, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetTask fetches a history record via tasks/get.
func (c *Client) GetTask(ctx context.Context, id string) (*Record, error) {
	var rec Record
	if err := c.call(ctx, MethodGetTask, GetTaskRequest{ID: id}, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListTasks queries the history via tasks/list.
func (c *Client) ListTasks(ctx context.Context, req ListTasksRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := c.call(ctx, MethodListTasks, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DiscoverAgents fetches the agent card from the well-known URI.
func (c *Client) DiscoverAgents(ctx context.Context) (*AgentCard, error) {
	url := c.endpoint + ".well-known/agent-card.json"

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("rpc: create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("rpc: discover agents: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("rpc: discover agents: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var card AgentCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("rpc: decode agent card: %w", err)
	}
	return &card, nil
}

// call performs a JSON-RPC 2.0 call over HTTP POST.
func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("rpc: marshal params: %w", err)
	}
	body, err := json.Marshal(JSONRPCRequest{
		JSONRPC: JSONRPCVersion,
		ID:      c.requestID.Add(1),
		Method:  method,
		Params:  paramsJSON,
	})
	if err != nil {
		return fmt.Errorf("rpc: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("rpc: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("rpc: %s: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("rpc: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc: %s: HTTP %d: %s", method, resp.StatusCode, string(respBody))
	}

	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return fmt.Errorf("rpc: decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return &RPCError{
			Method:  method,
			Code:    rpcResp.Error.Code,
			Message: rpcResp.Error.Message,
			Data:    rpcResp.Error.Data,
		}
	}
	if result != nil && rpcResp.Result != nil {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("rpc: decode result: %w", err)
		}
	}
	return nil
}

// RPCError is a JSON-RPC error returned by the server.
type RPCError struct {
	Method  string
	Code    int
	Message string
	Data    json.RawMessage
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("rpc: %s: error %d: %s (data: %s)", e.Method, e.Code, e.Message, string(e.Data))
	}
	return fmt.Sprintf("rpc: %s: error %d: %s", e.Method, e.Code, e.Message)
}
