package chat

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Role constants for conversation messages
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message is a single role-tagged entry in the conversation input of a turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Validate checks that the message carries a known role and non-empty content.
func (m Message) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Role, validation.Required, validation.In(RoleUser, RoleAssistant, RoleSystem)),
		validation.Field(&m.Content, validation.Required),
	)
}
