package chat

import (
	"context"

	chatModels "maichat/internal/domain/models/chat"
)

// ModelGateway is the language-model capability boundary. Given a system
// instruction, a tool catalog and conversation input, it returns either
// free text or a list of structured tool-call requests.
//
// Implementations must be safe for concurrent use; the engine treats the
// gateway as opaque beyond this contract.
type ModelGateway interface {
	// Invoke sends one conversation turn to the model.
	// A context cancellation or transport failure is returned as-is
	// (wrapped in the domain taxonomy); no retries are performed here.
	Invoke(ctx context.Context, req *ModelRequest) (*ModelResponse, error)
}

// ModelRequest contains the parameters for one model invocation.
type ModelRequest struct {
	// System is the fixed system instruction for the turn.
	System string

	// Tools is the full tool schema catalog advertised to the model.
	Tools []chatModels.ToolDefinition

	// Messages is the ordered conversation input.
	Messages []chatModels.Message
}

// ResponseKind discriminates the two shapes a model response can take.
type ResponseKind int

const (
	// ResponseText is a plain assistant text answer.
	ResponseText ResponseKind = iota + 1
	// ResponseToolCalls is a request to invoke one or more tools.
	ResponseToolCalls
)

// ModelResponse is the gateway's classified output: a tagged variant of
// {text | tool_calls}, never both. Construct via TextResponse or
// ToolCallsResponse so the invalid combination is unrepresentable.
type ModelResponse struct {
	kind  ResponseKind
	text  string
	calls []chatModels.ToolCall
}

// TextResponse builds a plain-text model response.
func TextResponse(text string) *ModelResponse {
	return &ModelResponse{kind: ResponseText, text: text}
}

// ToolCallsResponse builds a tool-call model response.
func ToolCallsResponse(calls []chatModels.ToolCall) *ModelResponse {
	return &ModelResponse{kind: ResponseToolCalls, calls: calls}
}

// Kind returns the response discriminator.
func (r *ModelResponse) Kind() ResponseKind { return r.kind }

// Text returns the assistant text. Valid only for ResponseText.
func (r *ModelResponse) Text() string { return r.text }

// ToolCalls returns the parsed tool-call requests in model order.
// Valid only for ResponseToolCalls.
func (r *ModelResponse) ToolCalls() []chatModels.ToolCall { return r.calls }
