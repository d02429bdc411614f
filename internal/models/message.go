// Package models defines the data structures for conversation transcripts.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a transcript message.
type Role string

const (
	// RoleUser - message authored locally by the user.
	RoleUser Role = "user"
	// RoleAssistant - message produced by the remote assistant.
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation transcript.
// Once appended to a transcript, Role and Text never change; a failed
// send produces a new assistant-role message, never a mutation.
type Message struct {
	ID        string `json:"id,omitempty"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewUserMessage creates a user-authored message with a fresh ID and
// the current timestamp.
func NewUserMessage(text string) Message {
	return Message{
		ID:        "u-" + uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewAssistantMessage creates an assistant message with a fresh ID and
// the current timestamp.
func NewAssistantMessage(text string) Message {
	return Message{
		ID:        "a-" + uuid.NewString(),
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
