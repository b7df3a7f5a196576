package chat

import (
	"context"

	chatModels "maichat/internal/domain/models/chat"
)

// TurnService runs one conversation turn to a terminal outcome.
// This is the entry point consumed by the HTTP layer.
type TurnService interface {
	// RunTurn executes the turn state machine for the given input and
	// returns the terminal outcome: either a text result or a tool result.
	// The turn state is owned by the call and discarded on return.
	RunTurn(ctx context.Context, input []chatModels.Message) (*chatModels.TurnOutcome, error)
}

// MenuSearcher is the similarity-search boundary used by the menu
// recommendation tool: top-k nearest menu items to a text query, constrained
// to items whose calories metadata is strictly below maxCalories.
type MenuSearcher interface {
	// Search returns at most k items in descending similarity order.
	// An empty result is success, not an error.
	Search(ctx context.Context, query string, k int, maxCalories float64) ([]chatModels.MenuItem, error)
}
