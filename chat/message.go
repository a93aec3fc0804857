// Package chat holds the message values the renderer reads. Messages are
// owned by the conversation store; everything here treats them as read-only.
package chat

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role identifies who sent a message.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleOther
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "other"
	}
}

// ParseRole maps a wire role string to a Role. Unknown values map to
// RoleOther.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser
	case "assistant":
		return RoleAssistant
	default:
		return RoleOther
	}
}

// Message is a single entry in a conversation.
type Message struct {
	ID             uuid.UUID
	Role           Role
	RawRole        string // wire value, kept for RoleOther display
	Content        string
	ConversationID string
}

// NewMessage builds a Message with a fresh ID.
func NewMessage(role Role, content, conversationID string) Message {
	return Message{
		ID:             uuid.New(),
		Role:           role,
		RawRole:        role.String(),
		Content:        content,
		ConversationID: conversationID,
	}
}

// IsUser reports whether the message was written by the local user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// Text returns the content with surrounding whitespace removed. Both
// classification and display work on this form.
func (m Message) Text() string {
	return strings.TrimSpace(m.Content)
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid message id %q: %w", s, err)
	}
	return id, nil
}
