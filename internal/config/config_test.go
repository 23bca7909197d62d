package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convogen/internal/generate"
	"convogen/internal/prompt"
	"convogen/internal/validate"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAIModel)
	assert.Equal(t, validate.DefaultConfig().QualityThreshold, cfg.QualityThreshold)
	assert.Equal(t, validate.DefaultConfig().MaxIssues, cfg.MaxIssues)
	assert.Equal(t, generate.DefaultMaxAttempts, cfg.MaxAttempts)
	assert.Equal(t, prompt.DefaultVariations, cfg.VariationsPerScenario)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("ENV", "production")
	t.Setenv("QUALITY_THRESHOLD", "0.75")
	t.Setenv("MAX_ISSUES", "1")
	t.Setenv("MAX_ATTEMPTS", "5")
	t.Setenv("VARIATIONS_PER_SCENARIO", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 0.75, cfg.QualityThreshold)
	assert.Equal(t, 1, cfg.MaxIssues)
	assert.Equal(t, 5, cfg.MaxAttempts)
	assert.Equal(t, 3, cfg.VariationsPerScenario)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("QUALITY_THRESHOLD", "very high")
	t.Setenv("MAX_ATTEMPTS", "lots")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, validate.DefaultConfig().QualityThreshold, cfg.QualityThreshold)
	assert.Equal(t, generate.DefaultMaxAttempts, cfg.MaxAttempts)
}

func TestValidateConfig(t *testing.T) {
	cfg := &Config{QualityThreshold: 0.8, MaxIssues: 1}

	vc := cfg.ValidateConfig()

	assert.Equal(t, 0.8, vc.QualityThreshold)
	assert.Equal(t, 1, vc.MaxIssues)
	assert.Equal(t, validate.DefaultConfig().Identifiers, vc.Identifiers)
}
