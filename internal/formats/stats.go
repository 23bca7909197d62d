package formats

// TrainingStats summarizes one converted dataset. Token counts are a rough
// estimate at four characters per token.
type TrainingStats struct {
	Format                string  `json:"format"`
	TotalEntries          int     `json:"total_entries"`
	TotalTokensEstimate   int     `json:"total_tokens_estimate"`
	AvgConversationLength float64 `json:"avg_conversation_length"`
	ScenariosCovered      int     `json:"scenarios_covered"`
	ValidationPassedCount int     `json:"validation_passed_count"`
}

func estimateTokens(text string) int {
	return len(text) / 4
}

// ShareGPTStats computes dataset statistics for ShareGPT entries.
func ShareGPTStats(entries []ShareGPTEntry) TrainingStats {
	stats := TrainingStats{Format: "ShareGPT", TotalEntries: len(entries)}
	scenarios := map[string]struct{}{}
	totalLength := 0
	for _, e := range entries {
		for _, msg := range e.Conversations {
			stats.TotalTokensEstimate += estimateTokens(msg.Value)
		}
		totalLength += len(e.Conversations)
		scenarios[e.Metadata.ScenarioID] = struct{}{}
		if e.Metadata.ValidationPassed {
			stats.ValidationPassedCount++
		}
	}
	stats.ScenariosCovered = len(scenarios)
	if len(entries) > 0 {
		stats.AvgConversationLength = float64(totalLength) / float64(len(entries))
	}
	return stats
}

// ChatMLStats computes dataset statistics for ChatML entries.
func ChatMLStats(entries []ChatMLEntry) TrainingStats {
	stats := TrainingStats{Format: "ChatML", TotalEntries: len(entries)}
	scenarios := map[string]struct{}{}
	totalLength := 0
	for _, e := range entries {
		for _, msg := range e.Messages {
			stats.TotalTokensEstimate += estimateTokens(msg.Content)
		}
		totalLength += len(e.Messages)
		scenarios[e.Metadata.ScenarioID] = struct{}{}
		if e.Metadata.ValidationPassed {
			stats.ValidationPassedCount++
		}
	}
	stats.ScenariosCovered = len(scenarios)
	if len(entries) > 0 {
		stats.AvgConversationLength = float64(totalLength) / float64(len(entries))
	}
	return stats
}

// AlpacaStats computes dataset statistics for Alpaca entries.
func AlpacaStats(entries []AlpacaEntry) TrainingStats {
	stats := TrainingStats{Format: "Alpaca", TotalEntries: len(entries)}
	scenarios := map[string]struct{}{}
	totalLength := 0
	for _, e := range entries {
		stats.TotalTokensEstimate += estimateTokens(e.Instruction) + estimateTokens(e.Output)
		totalLength += 2 // instruction + output
		scenarios[e.Metadata.ScenarioID] = struct{}{}
		if e.Metadata.ValidationPassed {
			stats.ValidationPassedCount++
		}
	}
	stats.ScenariosCovered = len(scenarios)
	if len(entries) > 0 {
		stats.AvgConversationLength = float64(totalLength) / float64(len(entries))
	}
	return stats
}
