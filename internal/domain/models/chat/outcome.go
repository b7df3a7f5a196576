package chat

import "encoding/json"

// OutcomeKind discriminates the terminal shape of a turn.
type OutcomeKind int

const (
	// OutcomeText means the model answered directly with free text.
	OutcomeText OutcomeKind = iota + 1
	// OutcomeTool means a tool was dispatched and its payload is the answer.
	OutcomeTool
)

// TurnOutcome is the terminal state of one turn. It is a tagged variant:
// exactly one of the text result or the tool result is populated, enforced
// by construction so the both/neither shapes are unrepresentable.
type TurnOutcome struct {
	kind        OutcomeKind
	text        string
	toolName    string
	toolPayload any
}

// TextOutcome builds a terminal outcome from a direct model answer.
func TextOutcome(text string) *TurnOutcome {
	return &TurnOutcome{kind: OutcomeText, text: text}
}

// ToolOutcome builds a terminal outcome from a dispatched tool's payload.
func ToolOutcome(toolName string, payload any) *TurnOutcome {
	return &TurnOutcome{kind: OutcomeTool, toolName: toolName, toolPayload: payload}
}

// Kind returns the outcome discriminator.
func (o *TurnOutcome) Kind() OutcomeKind { return o.kind }

// Text returns the free-text answer. Valid only for OutcomeText.
func (o *TurnOutcome) Text() string { return o.text }

// ToolName returns the name of the dispatched tool. Valid only for OutcomeTool.
func (o *TurnOutcome) ToolName() string { return o.toolName }

// ToolPayload returns the raw tool return value. Valid only for OutcomeTool.
func (o *TurnOutcome) ToolPayload() any { return o.toolPayload }

// MarshalJSON renders the caller-facing envelope: {"result": ...} for a
// text outcome, {"tool_result": ...} for a tool outcome.
func (o *TurnOutcome) MarshalJSON() ([]byte, error) {
	switch o.kind {
	case OutcomeTool:
		return json.Marshal(map[string]any{"tool_result": o.toolPayload})
	default:
		return json.Marshal(map[string]any{"result": o.text})
	}
}
