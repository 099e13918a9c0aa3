package rpc

import (
	"time"

	"github.com/dusk-indust/frontgen/internal/agent"
	"github.com/dusk-indust/frontgen/internal/errs"
)

// AgentCard describes the server and the agents it hosts. It is served at
// /.well-known/agent-card.json.
type AgentCard struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Version     string       `json:"version"`
	Agents      []AgentEntry `json:"agents"`
}

// AgentEntry advertises one hosted agent.
type AgentEntry struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Specialization agent.Specialization `json:"specialization"`
	Capabilities   []string             `json:"capabilities"`
	Operations     []string             `json:"operations"`
}

// DescribeAgent builds the card entry for ag.
func DescribeAgent(ag agent.Agent) AgentEntry {
	return AgentEntry{
		ID:             ag.ID(),
		Name:           ag.Name(),
		Specialization: ag.Specialization(),
		Capabilities:   ag.Capabilities(),
		Operations:     ag.Operations(),
	}
}

// ExecuteParams are the params of agent/execute. Agent accepts a
// specialization or any framework alias ("next", "Vue.js", "ui").
type ExecuteParams struct {
	Agent string     `json:"agent"`
	Task  agent.Task `json:"task"`
}

// RequestParams are the params of agent/request.
type RequestParams struct {
	Agent   string        `json:"agent"`
	Request agent.Request `json:"request"`
}

// RecordState is the lifecycle state of a history record.
type RecordState string

const (
	StateWorking   RecordState = "working"
	StateCompleted RecordState = "completed"
	StateFailed    RecordState = "failed"
)

// IsTerminal reports whether the state is final.
func (s RecordState) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Record is one executed task or request as kept in the server history.
type Record struct {
	ID        string               `json:"id"`
	Agent     agent.Specialization `json:"agent"`
	Method    string               `json:"method"`
	Operation string               `json:"operation"`
	State     RecordState          `json:"state"`
	Result    map[string]any       `json:"result,omitempty"`
	Error     string               `json:"error,omitempty"`
	Kind      errs.Kind            `json:"kind,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

// GetTaskRequest are the params of tasks/get.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// ListTasksRequest are the params of tasks/list. Empty filters match all
// records; PageSize <= 0 disables paging.
type ListTasksRequest struct {
	Agent     agent.Specialization `json:"agent,omitempty"`
	State     RecordState          `json:"state,omitempty"`
	PageSize  int                  `json:"pageSize,omitempty"`
	PageToken string               `json:"pageToken,omitempty"`
}

// ListTasksResponse is the result of tasks/list.
type ListTasksResponse struct {
	Records       []Record `json:"records"`
	TotalSize     int      `json:"totalSize"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
}
