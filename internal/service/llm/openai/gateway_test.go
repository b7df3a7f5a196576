package openai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"maichat/internal/domain"
	chatModels "maichat/internal/domain/models/chat"
	chatSvc "maichat/internal/domain/services/chat"
)

func newTestGateway(t *testing.T, handler http.HandlerFunc) *Gateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient("test-key", WithBaseURL(server.URL))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewGateway(client, "gpt-5-mini", logger)
}

func completionReply(t *testing.T, w http.ResponseWriter, msg ChatMessage) {
	t.Helper()
	resp := ChatCompletionResponse{
		Choices: []Choice{{Message: msg}},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode reply: %v", err)
	}
}

func sampleRequest() *chatSvc.ModelRequest {
	return &chatSvc.ModelRequest{
		System: "you are a nutrition assistant",
		Tools: []chatModels.ToolDefinition{{
			Type: "function",
			Function: chatModels.FunctionDetails{
				Name:       "calories-calculator",
				Parameters: map[string]any{"type": "object"},
			},
		}},
		Messages: []chatModels.Message{{Role: chatModels.RoleUser, Content: "halo"}},
	}
}

func TestGatewayTextReply(t *testing.T) {
	var gotReq ChatCompletionRequest
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		completionReply(t, w, ChatMessage{Role: chatModels.RoleAssistant, Content: "Halo! Ada yang bisa saya bantu?"})
	})

	resp, err := gateway.Invoke(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}

	if resp.Kind() != chatSvc.ResponseText {
		t.Fatalf("Kind() = %v, want ResponseText", resp.Kind())
	}
	if resp.Text() != "Halo! Ada yang bisa saya bantu?" {
		t.Errorf("Text() = %q", resp.Text())
	}

	// the system instruction rides first, then the conversation
	if len(gotReq.Messages) != 2 {
		t.Fatalf("sent %d messages, want 2", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != chatModels.RoleSystem {
		t.Errorf("first message role = %q, want system", gotReq.Messages[0].Role)
	}
	if len(gotReq.Tools) != 1 {
		t.Errorf("sent %d tools, want 1", len(gotReq.Tools))
	}
	if gotReq.Model != "gpt-5-mini" {
		t.Errorf("model = %q, want gpt-5-mini", gotReq.Model)
	}
}

func TestGatewayToolCallsReply(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		completionReply(t, w, ChatMessage{
			Role: chatModels.RoleAssistant,
			ToolCalls: []ToolCallWire{{
				ID:   "call_abc",
				Type: "function",
				Function: FunctionCall{
					Name:      "calories-calculator",
					Arguments: `{"weight": 70, "gender": "male"}`,
				},
			}},
		})
	})

	resp, err := gateway.Invoke(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}

	if resp.Kind() != chatSvc.ResponseToolCalls {
		t.Fatalf("Kind() = %v, want ResponseToolCalls", resp.Kind())
	}
	calls := resp.ToolCalls()
	if len(calls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(calls))
	}
	if calls[0].ID != "call_abc" || calls[0].Name != "calories-calculator" {
		t.Errorf("call = %+v", calls[0])
	}
	if got := calls[0].Arguments["weight"]; got != 70.0 {
		t.Errorf("weight argument = %v, want 70", got)
	}
}

func TestGatewayAssignsMissingCallID(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		completionReply(t, w, ChatMessage{
			Role: chatModels.RoleAssistant,
			ToolCalls: []ToolCallWire{{
				Type:     "function",
				Function: FunctionCall{Name: "calories-calculator", Arguments: "{}"},
			}},
		})
	})

	resp, err := gateway.Invoke(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Invoke() error: %v", err)
	}
	if resp.ToolCalls()[0].ID == "" {
		t.Error("tool call left without an ID")
	}
}

func TestGatewayInvalidResponses(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"no choices",
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"choices": []}`))
			},
		},
		{
			"non-assistant role",
			func(w http.ResponseWriter, r *http.Request) {
				completionReply(t, w, ChatMessage{Role: chatModels.RoleUser, Content: "echo"})
			},
		},
		{
			"malformed tool arguments",
			func(w http.ResponseWriter, r *http.Request) {
				completionReply(t, w, ChatMessage{
					Role: chatModels.RoleAssistant,
					ToolCalls: []ToolCallWire{{
						ID:       "call_1",
						Type:     "function",
						Function: FunctionCall{Name: "calories-calculator", Arguments: "{not json"},
					}},
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := newTestGateway(t, tt.handler)

			resp, err := gateway.Invoke(context.Background(), sampleRequest())
			if !errors.Is(err, domain.ErrInvalidModelResponse) {
				t.Errorf("error = %v, want InvalidModelResponse", err)
			}
			if resp != nil {
				t.Error("response returned despite invalid reply")
			}
		})
	}
}

func TestGatewayUpstreamFailure(t *testing.T) {
	gateway := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusInternalServerError)
	})

	_, err := gateway.Invoke(context.Background(), sampleRequest())

	var upstream *domain.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("error %v is not an UpstreamError", err)
	}
	if upstream.Op != "chat_completion" {
		t.Errorf("Op = %q, want chat_completion", upstream.Op)
	}
}

func TestEmbedderEmbedQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %q, want /embeddings", r.URL.Path)
		}
		var req EmbeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Input) != 1 || req.Input[0] != "nasi goreng" {
			t.Errorf("input = %v, want [nasi goreng]", req.Input)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [{"embedding": [0.1, 0.2, 0.3]}]}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-key", WithBaseURL(server.URL))
	embedder := NewEmbedder(client, "text-embedding-3-small")

	vec, err := embedder.EmbedQuery(context.Background(), "nasi goreng")
	if err != nil {
		t.Fatalf("EmbedQuery() error: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Errorf("embedding = %v", vec)
	}
}

func TestEmbedderEmptyVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient("test-key", WithBaseURL(server.URL))
	embedder := NewEmbedder(client, "text-embedding-3-small")

	_, err := embedder.EmbedQuery(context.Background(), "nasi goreng")
	if !errors.Is(err, domain.ErrInvalidModelResponse) {
		t.Errorf("error = %v, want InvalidModelResponse", err)
	}
}
