package chat

// MenuItem is one match from the menu similarity index. Metadata is an open
// mapping supplied by the index; the core only relies on its "calories" field
// for filtering, which happens index-side.
type MenuItem struct {
	Score    float64        `json:"score"` // similarity, higher is closer
	Metadata map[string]any `json:"metadata"`
}
