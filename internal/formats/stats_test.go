package formats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareGPTStats(t *testing.T) {
	entries := ToShareGPT("system prompt", sampleRecords())
	stats := ShareGPTStats(entries)

	assert.Equal(t, "ShareGPT", stats.Format)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 2, stats.ScenariosCovered)
	assert.Equal(t, 1, stats.ValidationPassedCount)
	assert.Greater(t, stats.TotalTokensEstimate, 0)
	assert.InDelta(t, 3.5, stats.AvgConversationLength, 1e-9)
}

func TestChatMLStats(t *testing.T) {
	stats := ChatMLStats(ToChatML("system prompt", sampleRecords()))

	assert.Equal(t, "ChatML", stats.Format)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 1, stats.ValidationPassedCount)
}

func TestAlpacaStats(t *testing.T) {
	stats := AlpacaStats(ToAlpaca("system prompt", sampleRecords()))

	assert.Equal(t, "Alpaca", stats.Format)
	assert.Equal(t, 2, stats.TotalEntries)
	assert.Equal(t, 2.0, stats.AvgConversationLength)
}

func TestStatsEmptyDataset(t *testing.T) {
	stats := ShareGPTStats(nil)

	assert.Zero(t, stats.TotalEntries)
	assert.Zero(t, stats.AvgConversationLength)
	assert.Zero(t, stats.ScenariosCovered)
}

func TestGenerateReadme(t *testing.T) {
	stats := map[string]TrainingStats{
		"sharegpt": ShareGPTStats(ToShareGPT("p", sampleRecords())),
		"chatml":   ChatMLStats(ToChatML("p", sampleRecords())),
	}

	readme := GenerateReadme(stats)

	assert.Contains(t, readme, "debt_collection_sharegpt.jsonl")
	assert.Contains(t, readme, "### ShareGPT")
	assert.Contains(t, readme, "### ChatML")
	// sections appear in sorted key order
	assert.Less(t, strings.Index(readme, "### ChatML"), strings.Index(readme, "### ShareGPT"))
}
