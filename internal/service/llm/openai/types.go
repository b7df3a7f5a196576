package openai

import "encoding/json"

// Wire types for the OpenAI-compatible chat completions and embeddings APIs.
// Only the fields this service reads or writes are modeled.

// ChatMessage is one message in a chat completion request or response.
type ChatMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	ToolCalls []ToolCallWire `json:"tool_calls,omitempty"`
}

// ToolCallWire is a tool invocation requested by the model.
type ToolCallWire struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the requested function name and its arguments as a
// JSON-encoded string, per the OpenAI wire format.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Tool advertises a callable function to the model.
type Tool struct {
	Type     string          `json:"type"`
	Function json.RawMessage `json:"function"`
}

// ChatCompletionRequest is the request body for POST /chat/completions.
type ChatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Tools       []Tool        `json:"tools,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
}

// ChatCompletionResponse is the response body for POST /chat/completions.
type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// Choice is one completion alternative; this service only reads the first.
type Choice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// EmbeddingRequest is the request body for POST /embeddings.
type EmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingResponse is the response body for POST /embeddings.
type EmbeddingResponse struct {
	Data []EmbeddingData `json:"data"`
}

// EmbeddingData holds one embedding vector.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}
