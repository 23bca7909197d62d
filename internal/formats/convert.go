// Package formats maps generated records into fine-tuning dataset shapes:
// ShareGPT, ChatML and Alpaca. The adapters rely only on the stable two-role
// mapping of the dialog package.
package formats

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"convogen/internal/dialog"
	"convogen/internal/record"
)

// EntryMetadata is carried on every converted entry so downstream tooling
// can filter by scenario or validation outcome.
type EntryMetadata struct {
	ScenarioID       string   `json:"scenario_id"`
	VariationID      int      `json:"variation_id"`
	ValidationPassed bool     `json:"validation_passed"`
	SpecialTagsFound []string `json:"special_tags_found"`
}

func entryMetadata(r record.GeneratedRecord) EntryMetadata {
	return EntryMetadata{
		ScenarioID:       r.ScenarioID,
		VariationID:      r.VariationID,
		ValidationPassed: r.Verdict.Passed,
		SpecialTagsFound: r.Verdict.FoundTags,
	}
}

// ShareGPTMessage is one message in the ShareGPT shape.
type ShareGPTMessage struct {
	From  string `json:"from"`
	Value string `json:"value"`
}

// ShareGPTEntry is one training conversation in ShareGPT shape.
type ShareGPTEntry struct {
	Conversations []ShareGPTMessage `json:"conversations"`
	Metadata      EntryMetadata     `json:"metadata"`
}

// ToShareGPT converts records to ShareGPT entries, prepending the system
// prompt. Agent turns map to "gpt", customer turns to "human". Records with
// no conversation are dropped.
func ToShareGPT(systemPrompt string, records []record.GeneratedRecord) []ShareGPTEntry {
	entries := make([]ShareGPTEntry, 0, len(records))
	for _, r := range records {
		if len(r.Conversation) == 0 {
			continue
		}
		msgs := make([]ShareGPTMessage, 0, len(r.Conversation)+1)
		msgs = append(msgs, ShareGPTMessage{From: "system", Value: systemPrompt})
		for _, turn := range r.Conversation {
			from := "human"
			if turn.Role == dialog.RoleAgent {
				from = "gpt"
			}
			msgs = append(msgs, ShareGPTMessage{From: from, Value: turn.Content})
		}
		entries = append(entries, ShareGPTEntry{Conversations: msgs, Metadata: entryMetadata(r)})
	}
	return entries
}

// ChatMLMessage is one message in the ChatML shape.
type ChatMLMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatMLEntry is one training conversation in ChatML shape.
type ChatMLEntry struct {
	Messages []ChatMLMessage `json:"messages"`
	Metadata EntryMetadata   `json:"metadata"`
}

// ToChatML converts records to ChatML entries. Agent turns map to
// "assistant", customer turns to "user".
func ToChatML(systemPrompt string, records []record.GeneratedRecord) []ChatMLEntry {
	entries := make([]ChatMLEntry, 0, len(records))
	for _, r := range records {
		if len(r.Conversation) == 0 {
			continue
		}
		msgs := make([]ChatMLMessage, 0, len(r.Conversation)+1)
		msgs = append(msgs, ChatMLMessage{Role: "system", Content: systemPrompt})
		for _, turn := range r.Conversation {
			role := "user"
			if turn.Role == dialog.RoleAgent {
				role = "assistant"
			}
			msgs = append(msgs, ChatMLMessage{Role: role, Content: turn.Content})
		}
		entries = append(entries, ChatMLEntry{Messages: msgs, Metadata: entryMetadata(r)})
	}
	return entries
}

// AlpacaMetadata extends the entry metadata with the pair's turn number.
type AlpacaMetadata struct {
	EntryMetadata
	TurnNumber int `json:"turn_number"`
}

// AlpacaEntry is a single-turn instruction/response pair.
type AlpacaEntry struct {
	Instruction string         `json:"instruction"`
	Input       string         `json:"input"`
	Output      string         `json:"output"`
	Metadata    AlpacaMetadata `json:"metadata"`
}

// ToAlpaca flattens each conversation into customer/agent pairs. The
// customer turn is appended to the system prompt as the instruction, the
// agent's reply is the output; trailing unpaired turns are dropped.
func ToAlpaca(systemPrompt string, records []record.GeneratedRecord) []AlpacaEntry {
	var entries []AlpacaEntry
	for _, r := range records {
		var customer, agent []string
		for _, turn := range r.Conversation {
			switch turn.Role {
			case dialog.RoleCustomer:
				customer = append(customer, turn.Content)
			case dialog.RoleAgent:
				agent = append(agent, turn.Content)
			}
		}
		pairs := len(customer)
		if len(agent) < pairs {
			pairs = len(agent)
		}
		for i := 0; i < pairs; i++ {
			entries = append(entries, AlpacaEntry{
				Instruction: fmt.Sprintf("%s\n\nCustomer: %s", systemPrompt, customer[i]),
				Input:       "",
				Output:      agent[i],
				Metadata: AlpacaMetadata{
					EntryMetadata: entryMetadata(r),
					TurnNumber:    i + 1,
				},
			})
		}
	}
	return entries
}

// WriteJSONL writes any entry slice as one JSON object per line.
func WriteJSONL[T any](path string, entries []T) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write dataset")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, e := range entries {
		if err := enc.Encode(e); err != nil {
			return errors.Wrap(err, "write dataset")
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "write dataset")
	}
	return nil
}
