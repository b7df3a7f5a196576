package tools

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	chatSvc "maichat/internal/domain/services/chat"
)

// MenuInput is the typed argument contract of the menu recommender.
type MenuInput struct {
	RequiredCalories float64 `json:"required_calories"` // daily budget, the search ceiling is per meal
	PreferredMenu    string  `json:"preferred_menu"`
}

// Validate checks the menu recommendation argument contract.
func (in MenuInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.RequiredCalories, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&in.PreferredMenu, validation.Required),
	)
}

// MenuRecommender implements the 'menu-recommendation' tool: a metadata
// filtered similarity search for menu items fitting a per-meal calorie
// ceiling derived from the daily budget.
type MenuRecommender struct {
	searcher chatSvc.MenuSearcher
	config   *Config
}

// NewMenuRecommender creates the recommender backed by a similarity index.
func NewMenuRecommender(searcher chatSvc.MenuSearcher, config *Config) *MenuRecommender {
	if config == nil {
		config = DefaultConfig()
	}
	return &MenuRecommender{
		searcher: searcher,
		config:   config,
	}
}

// Execute implements the Executor interface.
// Input parameters:
//   - required_calories (number, required): calorie budget for the full day
//   - preferred_menu (string, required): free-text menu query
//
// Returns the metadata records of the matches in descending similarity
// order. An empty list means nothing fit the ceiling; that is not an error.
func (t *MenuRecommender) Execute(ctx context.Context, input map[string]any) (any, error) {
	in, err := decodeMenuInput(input)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, asInvalidArgument(err)
	}

	ceiling := in.RequiredCalories / float64(t.config.MealsPerDay)

	items, err := t.searcher.Search(ctx, in.PreferredMenu, t.config.MenuResultLimit, ceiling)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]any, len(items))
	for i, item := range items {
		records[i] = item.Metadata
	}
	return records, nil
}

func decodeMenuInput(input map[string]any) (MenuInput, error) {
	var in MenuInput
	var err error

	if in.RequiredCalories, err = floatArg(input, "required_calories"); err != nil {
		return MenuInput{}, err
	}
	if in.PreferredMenu, err = stringArg(input, "preferred_menu"); err != nil {
		return MenuInput{}, err
	}
	return in, nil
}
