package generation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	DefaultAnthropicModel = "claude-sonnet-4-5-20250901"
	DefaultMaxTokens      = 4096
)

// AnthropicConfig configures AnthropicBackend.
type AnthropicConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
}

// AnthropicBackend generates source files through the Anthropic Messages API.
type AnthropicBackend struct {
	client *anthropic.Client
	config AnthropicConfig
}

// NewAnthropicBackend creates a backend. An empty API key is rejected.
func NewAnthropicBackend(cfg AnthropicConfig) (*AnthropicBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultAnthropicModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := anthropic.NewClient(opts...)

	return &AnthropicBackend{client: &client, config: cfg}, nil
}

// Generate sends one user message and concatenates the text blocks of the
// reply.
func (b *AnthropicBackend) Generate(ctx context.Context, req Request) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(b.config.Model),
		MaxTokens: int64(b.config.MaxTokens),
		System:    []anthropic.TextBlockParam{{Text: SystemPrompt(req)}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(UserPrompt(req))),
		},
	}

	msg, err := b.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic generate: %w", err)
	}

	var out strings.Builder
	for _, block := range msg.Content {
		switch v := block.AsAny().(type) {
		case anthropic.TextBlock:
			out.WriteString(v.Text)
		}
	}
	return out.String(), nil
}

// SystemPrompt frames the model as a specialist for the request's framework.
func SystemPrompt(req Request) string {
	spec := req.Specialization
	if spec == "" {
		spec = "frontend"
	}
	format := "Respond with the file contents only, no commentary."
	if req.Format == FormatJSON {
		format = "Respond with a single JSON document only, no commentary."
	}
	return fmt.Sprintf("You are an expert %s developer generating production-ready project files. %s", spec, format)
}

// UserPrompt appends the request context as sorted key/value lines.
func UserPrompt(req Request) string {
	if len(req.Context) == 0 {
		return req.Prompt
	}
	keys := make([]string, 0, len(req.Context))
	for k := range req.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(req.Prompt)
	sb.WriteString("\n\nContext:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "- %s: %v\n", k, req.Context[k])
	}
	return sb.String()
}
