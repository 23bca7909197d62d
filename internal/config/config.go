package config

import (
	"os"
	"strconv"

	"convogen/internal/generate"
	"convogen/internal/prompt"
	"convogen/internal/validate"
)

type Config struct {
	OpenAIAPIKey          string
	OpenAIBaseURL         string
	OpenAIModel           string
	Environment           string
	QualityThreshold      float64
	MaxIssues             int
	MaxAttempts           int
	VariationsPerScenario int
}

func Load() (*Config, error) {
	cfg := &Config{
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:         getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		Environment:           getEnv("ENV", "development"),
		QualityThreshold:      getEnvFloat("QUALITY_THRESHOLD", validate.DefaultConfig().QualityThreshold),
		MaxIssues:             getEnvInt("MAX_ISSUES", validate.DefaultConfig().MaxIssues),
		MaxAttempts:           getEnvInt("MAX_ATTEMPTS", generate.DefaultMaxAttempts),
		VariationsPerScenario: getEnvInt("VARIATIONS_PER_SCENARIO", prompt.DefaultVariations),
	}

	// The API key is only required when generating, so the generate command
	// checks it; convert and scenarios run without one.
	return cfg, nil
}

// ValidateConfig returns the pass-policy configuration for the validator.
func (c *Config) ValidateConfig() validate.Config {
	cfg := validate.DefaultConfig()
	cfg.QualityThreshold = c.QualityThreshold
	cfg.MaxIssues = c.MaxIssues
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
