package agent

import (
	"context"
	"log/slog"

	"maichat/internal/domain"
	chatModels "maichat/internal/domain/models/chat"
	chatSvc "maichat/internal/domain/services/chat"
	"maichat/internal/service/agent/tools"
)

// systemInstruction is fixed at configuration time: tone, target language
// and domain for every turn.
const systemInstruction = "You are a helpful assistant with expertise in nutrition. " +
	"You're provided a list of tools, and an input from the user. Answer only in Indonesian language\n" +
	"Your job is to provide personalized food recommendations and detailed nutritional information " +
	"based on the user's needs and preferences. When given an input from the user, determine whether " +
	"you can offer advice directly or if you should utilize a specific tool to assist further. " +
	"Always aim to provide actionable and evidence-based guidance in a clear and supportive manner."

// Engine is the per-turn state machine: it invokes the model gateway,
// classifies the response, dispatches at most one tool call, and folds the
// result into a terminal outcome. The engine holds no state between turns;
// concurrent RunTurn calls share nothing mutable.
type Engine struct {
	gateway  chatSvc.ModelGateway
	registry *tools.Registry
	logger   *slog.Logger
}

// NewEngine creates the orchestration engine.
func NewEngine(gateway chatSvc.ModelGateway, registry *tools.Registry, logger *slog.Logger) *Engine {
	return &Engine{
		gateway:  gateway,
		registry: registry,
		logger:   logger,
	}
}

// RunTurn implements the TurnService interface. State flow:
//
//	model -> done          (text response)
//	model -> tool -> done  (tool-call response, single dispatch, no loop back)
//
// A response carrying neither a result nor tool calls is a gateway contract
// violation and fails with InvalidAgentStateError rather than being
// tolerated silently.
func (e *Engine) RunTurn(ctx context.Context, input []chatModels.Message) (*chatModels.TurnOutcome, error) {
	if len(input) == 0 {
		return nil, &domain.InvalidAgentStateError{Message: "missing input messages"}
	}
	for _, msg := range input {
		if err := msg.Validate(); err != nil {
			return nil, &domain.InvalidArgumentError{Field: "input", Message: err.Error()}
		}
	}

	resp, err := e.gateway.Invoke(ctx, &chatSvc.ModelRequest{
		System:   systemInstruction,
		Tools:    e.registry.Definitions(),
		Messages: input,
	})
	if err != nil {
		return nil, err
	}

	switch resp.Kind() {
	case chatSvc.ResponseText:
		// Any text answer is terminal, including an empty one.
		return chatModels.TextOutcome(resp.Text()), nil

	case chatSvc.ResponseToolCalls:
		return e.invokeTool(ctx, resp.ToolCalls())

	default:
		return nil, &domain.InvalidAgentStateError{Message: "no result or tool calls found"}
	}
}

// invokeTool dispatches the first tool-call request. The engine is
// single-tool-per-turn: extra requests are discarded, not queued, and the
// discard is logged pending clarification of multi-call intent.
func (e *Engine) invokeTool(ctx context.Context, calls []chatModels.ToolCall) (*chatModels.TurnOutcome, error) {
	if len(calls) == 0 {
		return nil, &domain.InvalidAgentStateError{Message: "no result or tool calls found"}
	}
	if len(calls) > 1 {
		e.logger.Warn("discarding extra tool calls",
			"dispatched", calls[0].Name,
			"discarded", len(calls)-1,
		)
	}

	call := calls[0]
	payload, err := e.registry.Execute(ctx, call)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("tool dispatched",
		"tool", call.Name,
		"call_id", call.ID,
	)
	return chatModels.ToolOutcome(call.Name, payload), nil
}
