package agent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"maichat/internal/domain"
	chatModels "maichat/internal/domain/models/chat"
	chatSvc "maichat/internal/domain/services/chat"
	"maichat/internal/service/agent/tools"
)

// stubGateway returns a scripted model response and records the request.
type stubGateway struct {
	resp *chatSvc.ModelResponse
	err  error

	lastReq *chatSvc.ModelRequest
	calls   int
}

func (s *stubGateway) Invoke(ctx context.Context, req *chatSvc.ModelRequest) (*chatSvc.ModelResponse, error) {
	s.calls++
	s.lastReq = req
	return s.resp, s.err
}

// countingExecutor records how often it ran.
type countingExecutor struct {
	payload any
	count   int
}

func (c *countingExecutor) Execute(ctx context.Context, input map[string]any) (any, error) {
	c.count++
	return c.payload, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testRegistry(t *testing.T) *tools.Registry {
	t.Helper()
	vocab, err := tools.NewVocabulary()
	if err != nil {
		t.Fatalf("NewVocabulary() error: %v", err)
	}
	return tools.BuildDefault(vocab, nil)
}

func userInput(content string) []chatModels.Message {
	return []chatModels.Message{{Role: chatModels.RoleUser, Content: content}}
}

func TestEngineTextResponse(t *testing.T) {
	gateway := &stubGateway{resp: chatSvc.TextResponse("hi")}
	engine := NewEngine(gateway, testRegistry(t), testLogger())

	outcome, err := engine.RunTurn(context.Background(), userInput("halo"))
	if err != nil {
		t.Fatalf("RunTurn() error: %v", err)
	}

	if outcome.Kind() != chatModels.OutcomeText {
		t.Fatalf("Kind() = %v, want OutcomeText", outcome.Kind())
	}
	if outcome.Text() != "hi" {
		t.Errorf("Text() = %q, want hi", outcome.Text())
	}
	if gateway.calls != 1 {
		t.Errorf("gateway invoked %d times, want 1", gateway.calls)
	}
}

func TestEngineEmptyTextIsTerminal(t *testing.T) {
	gateway := &stubGateway{resp: chatSvc.TextResponse("")}
	engine := NewEngine(gateway, testRegistry(t), testLogger())

	outcome, err := engine.RunTurn(context.Background(), userInput("halo"))
	if err != nil {
		t.Fatalf("RunTurn() error: %v", err)
	}
	if outcome.Kind() != chatModels.OutcomeText {
		t.Fatalf("Kind() = %v, want OutcomeText", outcome.Kind())
	}
	if outcome.Text() != "" {
		t.Errorf("Text() = %q, want empty", outcome.Text())
	}
}

func TestEngineAdvertisesCatalogAndSystemInstruction(t *testing.T) {
	gateway := &stubGateway{resp: chatSvc.TextResponse("ok")}
	registry := testRegistry(t)
	engine := NewEngine(gateway, registry, testLogger())

	if _, err := engine.RunTurn(context.Background(), userInput("halo")); err != nil {
		t.Fatalf("RunTurn() error: %v", err)
	}

	if gateway.lastReq.System == "" {
		t.Error("system instruction not supplied to the gateway")
	}
	if got, want := len(gateway.lastReq.Tools), len(registry.Definitions()); got != want {
		t.Errorf("advertised %d tools, want %d", got, want)
	}
}

func TestEngineToolDispatchMatchesDirectInvocation(t *testing.T) {
	args := map[string]any{
		"weight":   70.0,
		"height":   175.0,
		"age":      30.0,
		"gender":   "male",
		"activity": "sedentary",
		"target":   "maintain",
	}

	gateway := &stubGateway{resp: chatSvc.ToolCallsResponse([]chatModels.ToolCall{
		{ID: "call_1", Name: tools.CaloriesToolName, Arguments: args},
	})}
	registry := testRegistry(t)
	engine := NewEngine(gateway, registry, testLogger())

	outcome, err := engine.RunTurn(context.Background(), userInput("hitung kalori saya"))
	if err != nil {
		t.Fatalf("RunTurn() error: %v", err)
	}

	if outcome.Kind() != chatModels.OutcomeTool {
		t.Fatalf("Kind() = %v, want OutcomeTool", outcome.Kind())
	}
	if outcome.ToolName() != tools.CaloriesToolName {
		t.Errorf("ToolName() = %q, want %q", outcome.ToolName(), tools.CaloriesToolName)
	}

	// Orchestrated dispatch must equal the tool's direct output
	direct, err := registry.Execute(context.Background(), chatModels.ToolCall{Name: tools.CaloriesToolName, Arguments: args})
	if err != nil {
		t.Fatalf("direct Execute() error: %v", err)
	}

	got, ok := outcome.ToolPayload().(*tools.CaloriesResult)
	if !ok {
		t.Fatalf("payload type %T, want *tools.CaloriesResult", outcome.ToolPayload())
	}
	want := direct.(*tools.CaloriesResult)
	if *got != *want {
		t.Errorf("orchestrated payload %+v differs from direct %+v", *got, *want)
	}
}

func TestEngineUnknownToolFailsClosed(t *testing.T) {
	gateway := &stubGateway{resp: chatSvc.ToolCallsResponse([]chatModels.ToolCall{
		{ID: "call_1", Name: "meal-prep-scheduler", Arguments: map[string]any{}},
	})}
	engine := NewEngine(gateway, testRegistry(t), testLogger())

	outcome, err := engine.RunTurn(context.Background(), userInput("tolong"))
	if !errors.Is(err, domain.ErrUnknownTool) {
		t.Errorf("error = %v, want UnknownTool", err)
	}
	if outcome != nil {
		t.Error("outcome produced despite unknown tool")
	}
}

func TestEngineOnlyFirstToolCallDispatched(t *testing.T) {
	first := &countingExecutor{payload: "first"}
	second := &countingExecutor{payload: "second"}

	registry := tools.NewRegistry()
	registry.Register(chatModels.ToolDefinition{
		Type:     "function",
		Function: chatModels.FunctionDetails{Name: "first-tool", Parameters: map[string]any{"type": "object"}},
	}, first)
	registry.Register(chatModels.ToolDefinition{
		Type:     "function",
		Function: chatModels.FunctionDetails{Name: "second-tool", Parameters: map[string]any{"type": "object"}},
	}, second)

	gateway := &stubGateway{resp: chatSvc.ToolCallsResponse([]chatModels.ToolCall{
		{ID: "call_1", Name: "first-tool", Arguments: map[string]any{}},
		{ID: "call_2", Name: "second-tool", Arguments: map[string]any{}},
	})}
	engine := NewEngine(gateway, registry, testLogger())

	outcome, err := engine.RunTurn(context.Background(), userInput("dua alat"))
	if err != nil {
		t.Fatalf("RunTurn() error: %v", err)
	}

	if first.count != 1 {
		t.Errorf("first tool ran %d times, want 1", first.count)
	}
	if second.count != 0 {
		t.Errorf("second tool ran %d times, want 0", second.count)
	}
	if outcome.ToolName() != "first-tool" {
		t.Errorf("ToolName() = %q, want first-tool", outcome.ToolName())
	}
}

func TestEngineInvalidStates(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		engine := NewEngine(&stubGateway{}, testRegistry(t), testLogger())

		_, err := engine.RunTurn(context.Background(), nil)
		if !errors.Is(err, domain.ErrInvalidAgentState) {
			t.Errorf("error = %v, want InvalidAgentState", err)
		}
	})

	t.Run("empty tool call list", func(t *testing.T) {
		gateway := &stubGateway{resp: chatSvc.ToolCallsResponse(nil)}
		engine := NewEngine(gateway, testRegistry(t), testLogger())

		_, err := engine.RunTurn(context.Background(), userInput("halo"))
		if !errors.Is(err, domain.ErrInvalidAgentState) {
			t.Errorf("error = %v, want InvalidAgentState", err)
		}
	})

	t.Run("malformed message", func(t *testing.T) {
		engine := NewEngine(&stubGateway{}, testRegistry(t), testLogger())

		_, err := engine.RunTurn(context.Background(), []chatModels.Message{{Role: "robot", Content: "hi"}})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("error = %v, want InvalidArgument", err)
		}
	})
}

func TestEngineGatewayFailurePropagates(t *testing.T) {
	upstream := &domain.UpstreamError{Op: "chat_completion", Err: errors.New("timeout")}
	gateway := &stubGateway{err: upstream}
	engine := NewEngine(gateway, testRegistry(t), testLogger())

	_, err := engine.RunTurn(context.Background(), userInput("halo"))
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("error = %v, want upstream failure", err)
	}
}
