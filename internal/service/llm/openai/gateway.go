package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"maichat/internal/domain"
	chatModels "maichat/internal/domain/models/chat"
	chatSvc "maichat/internal/domain/services/chat"
)

// Gateway adapts the OpenAI-compatible chat completions API to the
// ModelGateway contract: it advertises the tool catalog, sends the
// conversation input, and classifies the reply into the tagged
// {text | tool_calls} variant.
type Gateway struct {
	client *Client
	model  string
	logger *slog.Logger
}

// NewGateway creates a gateway bound to one chat model.
func NewGateway(client *Client, model string, logger *slog.Logger) *Gateway {
	return &Gateway{
		client: client,
		model:  model,
		logger: logger,
	}
}

// Invoke implements the ModelGateway interface.
func (g *Gateway) Invoke(ctx context.Context, req *chatSvc.ModelRequest) (*chatSvc.ModelResponse, error) {
	wireReq, err := buildWireRequest(g.model, req)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.CreateChatCompletion(ctx, wireReq)
	if err != nil {
		return nil, &domain.UpstreamError{Op: "chat_completion", Err: err}
	}

	return classifyResponse(resp)
}

func buildWireRequest(model string, req *chatSvc.ModelRequest) (*ChatCompletionRequest, error) {
	messages := make([]ChatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, ChatMessage{Role: chatModels.RoleSystem, Content: req.System})
	}
	for _, msg := range req.Messages {
		messages = append(messages, ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	tools := make([]Tool, len(req.Tools))
	for i, def := range req.Tools {
		fn, err := json.Marshal(def.Function)
		if err != nil {
			return nil, fmt.Errorf("marshal tool %q: %w", def.Function.Name, err)
		}
		tools[i] = Tool{Type: "function", Function: fn}
	}

	temperature := 0.0
	return &ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Tools:       tools,
		Temperature: &temperature,
	}, nil
}

// classifyResponse validates the reply is an assistant-originated message
// and converts it into the tagged response variant. Any other shape is an
// InvalidModelResponseError, never silently coerced.
func classifyResponse(resp *ChatCompletionResponse) (*chatSvc.ModelResponse, error) {
	if len(resp.Choices) == 0 {
		return nil, &domain.InvalidModelResponseError{Message: "response contains no choices"}
	}

	msg := resp.Choices[0].Message
	if msg.Role != chatModels.RoleAssistant {
		return nil, &domain.InvalidModelResponseError{
			Message: fmt.Sprintf("expected assistant message, got role %q", msg.Role),
		}
	}

	if len(msg.ToolCalls) == 0 {
		return chatSvc.TextResponse(msg.Content), nil
	}

	calls := make([]chatModels.ToolCall, len(msg.ToolCalls))
	for i, tc := range msg.ToolCalls {
		args := make(map[string]any)
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, &domain.InvalidModelResponseError{
					Message: fmt.Sprintf("tool call %q has malformed arguments: %v", tc.Function.Name, err),
				}
			}
		}
		id := tc.ID
		if id == "" {
			id = uuid.NewString()
		}
		calls[i] = chatModels.ToolCall{
			ID:        id,
			Name:      tc.Function.Name,
			Arguments: args,
		}
	}
	return chatSvc.ToolCallsResponse(calls), nil
}
