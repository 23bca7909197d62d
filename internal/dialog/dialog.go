// Package dialog holds the conversation types shared by the generator,
// the validator and the training-format adapters.
package dialog

import "strings"

// Role identifies one of the two parties on a call.
type Role string

const (
	RoleAgent    Role = "agent"
	RoleCustomer Role = "customer"
)

// Turn is a single utterance. Ordering within a Conversation is meaningful.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered sequence of turns. A well-formed conversation
// is non-empty, opens with the agent and alternates roles; the validator
// penalizes violations instead of rejecting them.
type Conversation []Turn

// FullText joins all turn contents with single spaces.
func (c Conversation) FullText() string {
	parts := make([]string, len(c))
	for i, t := range c {
		parts[i] = t.Content
	}
	return strings.Join(parts, " ")
}

// Roles returns the role sequence of the conversation.
func (c Conversation) Roles() []Role {
	roles := make([]Role, len(c))
	for i, t := range c {
		roles[i] = t.Role
	}
	return roles
}

// ParseWireRole maps a chat-style wire role onto one of the two fixed
// conversation roles. Chat backends speak assistant/user; training formats
// reuse the same mapping in the other direction.
func ParseWireRole(role string) (Role, bool) {
	switch strings.ToLower(role) {
	case "assistant", "agent":
		return RoleAgent, true
	case "user", "customer":
		return RoleCustomer, true
	}
	return "", false
}
