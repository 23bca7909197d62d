package formats

import (
	"fmt"
	"sort"
	"strings"
)

// GenerateReadme renders a README describing the produced dataset files and
// their statistics, written next to the converted data.
func GenerateReadme(stats map[string]TrainingStats) string {
	var b strings.Builder

	b.WriteString(`# Debt Collection Agent - Fine-Tuning Data

Conversation data produced by the debt collection conversation generator,
converted for fine-tuning a phone-agent model.

## Files

- ` + "`debt_collection_sharegpt.jsonl`" + ` - ShareGPT format (Unsloth, Axolotl)
- ` + "`debt_collection_chatml.jsonl`" + ` - ChatML format (TorchTune, LLaMA-Factory)
- ` + "`debt_collection_alpaca.jsonl`" + ` - Alpaca format (single-turn pairs)
- ` + "`training_statistics.json`" + ` - Dataset statistics
- ` + "`README.md`" + ` - This file

## Dataset Statistics

`)

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(&b, "### %s\n", s.Format)
		fmt.Fprintf(&b, "- **Total entries**: %d\n", s.TotalEntries)
		fmt.Fprintf(&b, "- **Estimated tokens**: %d\n", s.TotalTokensEstimate)
		fmt.Fprintf(&b, "- **Scenarios covered**: %d\n", s.ScenariosCovered)
		fmt.Fprintf(&b, "- **Validation passed**: %d\n", s.ValidationPassedCount)
		fmt.Fprintf(&b, "- **Avg conversation length**: %.1f messages\n\n", s.AvgConversationLength)
	}

	b.WriteString(`## Notes

Every record carries its validation verdict; filter on
` + "`metadata.validation_passed`" + ` if only passing conversations should be
trained on. Special tags like (function_1) and (transfer) are part of the
expected model output and must not be stripped.

Expected behavior after fine-tuning: professional handling of debt
collection scenarios, compliance with the call flow, correct use of the
call-handling special tags, and natural adaptation to customer behavior.
`)

	return b.String()
}
