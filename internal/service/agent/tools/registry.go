package tools

import (
	"context"
	"sync"

	"maichat/internal/domain"
	chatModels "maichat/internal/domain/models/chat"
)

// Registry maps tool names to their schema and executor. Dispatch is by
// exact name and fails closed: an unregistered name is an UnknownToolError,
// never a fuzzy match or a fallback.
// It is thread-safe and can be used concurrently.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string // registration order, for stable catalog advertisement
}

type entry struct {
	definition chatModels.ToolDefinition
	executor   Executor
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register adds a tool under its schema name.
// If a tool with the same name already exists, it is replaced.
func (r *Registry) Register(def chatModels.ToolDefinition, exec Executor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := def.Function.Name
	if _, exists := r.entries[name]; !exists {
		r.order = append(r.order, name)
	}
	r.entries[name] = entry{definition: def, executor: exec}
}

// Get retrieves a tool executor by name.
// Returns nil if the tool is not registered.
func (r *Registry) Get(name string) Executor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[name].executor
}

// Definitions returns the full tool schema catalog in registration order,
// for advertisement to the model gateway.
func (r *Registry) Definitions() []chatModels.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]chatModels.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].definition)
	}
	return defs
}

// Execute dispatches a single tool call and returns its raw payload.
// An unregistered name fails with UnknownToolError before any execution.
func (r *Registry) Execute(ctx context.Context, call chatModels.ToolCall) (any, error) {
	executor := r.Get(call.Name)
	if executor == nil {
		return nil, &domain.UnknownToolError{Name: call.Name}
	}
	return executor.Execute(ctx, call.Arguments)
}
