// Package generate drives the conversation backend and the retry loop that
// turns one scenario variation into a validated conversation.
package generate

import (
	"context"
	"encoding/json"
	"regexp"

	"github.com/pkg/errors"

	"convogen/internal/dialog"
)

// Backend is the narrow capability the retry loop consumes: one prompt in,
// one parsed conversation out. An implementation must signal failure through
// the error, never through an empty conversation.
type Backend interface {
	Invoke(ctx context.Context, prompt string) (dialog.Conversation, error)
}

// wireTurn is the shape the model is instructed to emit.
type wireTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

// ParseConversation extracts the first JSON array from model output and maps
// its wire roles onto the two fixed conversation roles. Prose around the
// array is tolerated; a missing array, unknown role or empty array is a
// failure.
func ParseConversation(content string) (dialog.Conversation, error) {
	raw := jsonArrayPattern.FindString(content)
	if raw == "" {
		return nil, errors.New("no JSON array found in model output")
	}
	var turns []wireTurn
	if err := json.Unmarshal([]byte(raw), &turns); err != nil {
		return nil, errors.Wrap(err, "parse conversation")
	}
	if len(turns) == 0 {
		return nil, errors.New("model returned an empty conversation")
	}
	conv := make(dialog.Conversation, 0, len(turns))
	for _, t := range turns {
		role, ok := dialog.ParseWireRole(t.Role)
		if !ok {
			return nil, errors.Errorf("unknown role %q in model output", t.Role)
		}
		conv = append(conv, dialog.Turn{Role: role, Content: t.Content})
	}
	return conv, nil
}
