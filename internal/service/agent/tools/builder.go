package tools

import (
	chatSvc "maichat/internal/domain/services/chat"
)

// RegistryBuilder provides a fluent API for building tool registries.
// This follows the Builder pattern: new tool types are added as With*
// methods without touching existing registration logic.
type RegistryBuilder struct {
	registry *Registry
	config   *Config
}

// NewRegistryBuilder creates a new builder with a fresh registry.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		registry: NewRegistry(),
		config:   DefaultConfig(),
	}
}

// WithConfig sets custom tool configuration.
// If not called, defaults will be used.
func (b *RegistryBuilder) WithConfig(config *Config) *RegistryBuilder {
	if config != nil {
		b.config = config
	}
	return b
}

// WithCaloriesCalculator registers the calories-calculator tool.
func (b *RegistryBuilder) WithCaloriesCalculator(vocab *Vocabulary) *RegistryBuilder {
	b.registry.Register(getCaloriesToolDefinition(), NewCaloriesCalculator(vocab))
	return b
}

// WithMenuRecommendation registers the menu-recommendation tool.
// Only registers if a searcher is provided.
func (b *RegistryBuilder) WithMenuRecommendation(searcher chatSvc.MenuSearcher) *RegistryBuilder {
	if searcher != nil {
		b.registry.Register(getMenuToolDefinition(), NewMenuRecommender(searcher, b.config))
	}
	return b
}

// Build returns the constructed tool registry.
func (b *RegistryBuilder) Build() *Registry {
	return b.registry
}

// BuildDefault is a convenience method that builds the full agent registry:
// both domain tools with default configuration.
func BuildDefault(vocab *Vocabulary, searcher chatSvc.MenuSearcher) *Registry {
	return NewRegistryBuilder().
		WithCaloriesCalculator(vocab).
		WithMenuRecommendation(searcher).
		Build()
}
