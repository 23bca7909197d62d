// Package record defines the persisted record formats: input system prompts
// and generated conversation records, one JSON object per line.
package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"convogen/internal/dialog"
	"convogen/internal/prompt"
	"convogen/internal/validate"
)

// GeneratorVersion is stamped into record metadata.
const GeneratorVersion = "1.0"

// InputPrompt is one base system prompt read from the input file.
type InputPrompt struct {
	ID           string         `json:"id"`
	SystemPrompt string         `json:"system_prompt"`
	Language     string         `json:"language"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// Metadata describes how a record was produced.
type Metadata struct {
	GeneratedAt      time.Time `json:"generated_at"`
	Model            string    `json:"model"`
	GeneratorVersion string    `json:"generator_version"`
}

// GeneratedRecord is one variation's full outcome: the conversation, the
// verdict and the exact prompt used, enough to re-validate the example
// without re-invoking the backend. Every variation yields exactly one
// record, pass or fail.
type GeneratedRecord struct {
	ScenarioID   string              `json:"scenario_id"`
	VariationID  int                 `json:"variation_id"`
	Conversation dialog.Conversation `json:"conversation"`
	Verdict      validate.Verdict    `json:"verdict"`
	SystemPrompt string              `json:"system_prompt"`
	Metadata     Metadata            `json:"metadata"`
}

// maxLineSize bounds one JSONL line; prompts can run long.
const maxLineSize = 4 * 1024 * 1024

// ReadInputPrompts parses the input JSONL file. Malformed lines and lines
// without a usable prompt are logged and skipped; a file yielding zero
// prompts is a hard error, there is nothing left to generate from.
func ReadInputPrompts(path string, logger *zap.Logger) ([]InputPrompt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read input prompts")
	}
	defer f.Close()

	var prompts []InputPrompt
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		// accept "prompt" as a fallback field name
		var raw struct {
			ID           string         `json:"id"`
			SystemPrompt string         `json:"system_prompt"`
			Prompt       string         `json:"prompt"`
			Language     string         `json:"language"`
			Metadata     map[string]any `json:"metadata"`
		}
		if err := json.Unmarshal(line, &raw); err != nil {
			logger.Warn("skipping malformed input line",
				zap.Int("line", lineNum), zap.Error(err))
			continue
		}

		system := raw.SystemPrompt
		if system == "" {
			system = raw.Prompt
		}
		if system == "" {
			logger.Warn("skipping input line with empty system prompt", zap.Int("line", lineNum))
			continue
		}

		p := InputPrompt{
			ID:           raw.ID,
			SystemPrompt: system,
			Language:     raw.Language,
			Metadata:     raw.Metadata,
		}
		if p.ID == "" {
			p.ID = fmt.Sprintf("prompt_%d", lineNum)
		}
		if p.Language == "" {
			p.Language = "english"
		}
		prompts = append(prompts, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read input prompts")
	}
	if len(prompts) == 0 {
		return nil, errors.Errorf("no usable prompts in %s", path)
	}
	return prompts, nil
}

// WriteRecords writes generated records as JSONL.
func WriteRecords(path string, records []GeneratedRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write records")
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, "write records")
		}
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(err, "write records")
	}
	return nil
}

// ReadRecords loads generated records back from JSONL. Malformed lines are
// logged and skipped, matching the input-prompt policy.
func ReadRecords(path string, logger *zap.Logger) ([]GeneratedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read records")
	}
	defer f.Close()

	var records []GeneratedRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var r GeneratedRecord
		if err := json.Unmarshal(line, &r); err != nil {
			logger.Warn("skipping malformed record line",
				zap.Int("line", lineNum), zap.Error(err))
			continue
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read records")
	}
	return records, nil
}

// WriteSampleInput creates a two-prompt sample input file built on the
// default base template, for trying the pipeline end to end.
func WriteSampleInput(path string) error {
	now := time.Now().UTC()
	samples := []InputPrompt{
		{
			ID:           "english_prompt_1",
			SystemPrompt: prompt.DefaultTemplate,
			Language:     "english",
			Metadata: map[string]any{
				"source":     "cleargrid_uae",
				"version":    GeneratorVersion,
				"created_at": now.Format(time.RFC3339),
			},
		},
		{
			ID:           "english_prompt_2",
			SystemPrompt: strings.NewReplacer("Salma", "Ahmed", "ClearGrid", "DebtSolutions").Replace(prompt.DefaultTemplate),
			Language:     "english",
			Metadata: map[string]any{
				"source":     "debtsolutions_uae",
				"version":    GeneratorVersion,
				"created_at": now.Format(time.RFC3339),
			},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "write sample input")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, s := range samples {
		if err := enc.Encode(s); err != nil {
			return errors.Wrap(err, "write sample input")
		}
	}
	return nil
}
