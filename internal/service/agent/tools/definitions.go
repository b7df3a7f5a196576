package tools

import (
	chatModels "maichat/internal/domain/models/chat"
)

// Tool names as advertised to the model. These are the only names the
// registry dispatches on.
const (
	CaloriesToolName = "calories-calculator"
	MenuToolName     = "menu-recommendation"
)

// GetToolDefinitions returns the static schema catalog for all agent tools.
// Defined once at process start, immutable, shared read-only by the model
// gateway (catalog advertisement) and the engine (dispatch).
func GetToolDefinitions() []chatModels.ToolDefinition {
	return []chatModels.ToolDefinition{
		getCaloriesToolDefinition(),
		getMenuToolDefinition(),
	}
}

// getCaloriesToolDefinition returns the schema for the 'calories-calculator'
// tool. This tool computes BMI, BMR, TDEE and a daily calorie budget.
func getCaloriesToolDefinition() chatModels.ToolDefinition {
	return chatModels.ToolDefinition{
		Type: "function",
		Function: chatModels.FunctionDetails{
			Name:        CaloriesToolName,
			Description: "Calculate the amount of calories required to maintain a healthy weight.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"weight": map[string]any{
						"type":        "number",
						"description": "Weight in kg",
					},
					"height": map[string]any{
						"type":        "number",
						"description": "Height in cm",
					},
					"age": map[string]any{
						"type":        "integer",
						"description": "Age in years",
					},
					"gender": map[string]any{
						"type":        "string",
						"description": "Gender",
					},
					"activity": map[string]any{
						"type":        "string",
						"description": "Activity level",
					},
					"target": map[string]any{
						"type":        "string",
						"description": "Target body weight",
					},
				},
				"required": []string{"weight", "height", "age", "gender", "activity", "target"},
			},
		},
	}
}

// getMenuToolDefinition returns the schema for the 'menu-recommendation'
// tool. This tool searches the menu index for meals fitting a calorie budget.
func getMenuToolDefinition() chatModels.ToolDefinition {
	return chatModels.ToolDefinition{
		Type: "function",
		Function: chatModels.FunctionDetails{
			Name:        MenuToolName,
			Description: "Give Recommendation Process for a meal based on required calories",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"required_calories": map[string]any{
						"type":        "number",
						"description": "Required calories for the meal in one day",
					},
					"preferred_menu": map[string]any{
						"type":        "string",
						"description": "Preferred menu for the meal",
					},
				},
				"required": []string{"required_calories", "preferred_menu"},
			},
		},
	}
}
