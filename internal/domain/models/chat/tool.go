package chat

// FunctionDetails represents the function definition (OpenAI format)
type FunctionDetails struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolDefinition is the static, immutable schema of a tool as advertised to
// the model gateway and used by the engine for dispatch:
//
//	{
//	  "type": "function",
//	  "function": {
//	    "name": "calories-calculator",
//	    "description": "...",
//	    "parameters": {
//	      "type": "object",
//	      "properties": {...},
//	      "required": [...]
//	    }
//	  }
//	}
//
// Definitions are built once at process start and shared read-only.
type ToolDefinition struct {
	// Type is "function" (OpenAI format)
	Type string `json:"type"`

	// Function contains the full function definition
	Function FunctionDetails `json:"function"`
}

// ToolCall represents a single tool invocation request parsed from a model
// response. Produced only by the model gateway; never authored elsewhere.
type ToolCall struct {
	ID        string         `json:"id"`        // call id from the model, synthesized if absent
	Name      string         `json:"name"`      // tool name, must exist in the registry
	Arguments map[string]any `json:"arguments"` // decoded tool parameters
}
