package tools

import "context"

// Executor defines the interface for executing a tool.
// Implementations must be thread-safe and respect context cancellation.
type Executor interface {
	// Execute runs the tool with the given input parameters.
	// The input map contains the tool-specific parameters as specified in
	// the tool schema. The returned value must be JSON-serializable.
	// Returns an error from the domain taxonomy if execution fails; no
	// partial result accompanies a failure.
	Execute(ctx context.Context, input map[string]any) (any, error)
}
