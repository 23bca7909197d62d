package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"convogen/internal/dialog"
)

// OpenAIConfig holds the chat-completions connection settings. BaseURL may
// point at any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// DefaultOpenAIConfig returns production defaults.
func DefaultOpenAIConfig(apiKey string) OpenAIConfig {
	return OpenAIConfig{
		APIKey:      apiKey,
		BaseURL:     "https://api.openai.com/v1",
		Model:       "gpt-4.1-mini",
		Temperature: 0.8,
		MaxTokens:   2000,
		Timeout:     120 * time.Second,
	}
}

// OpenAIBackend generates conversations through an OpenAI-compatible
// chat-completions API.
type OpenAIBackend struct {
	cfg        OpenAIConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAIBackend creates a backend from the given config.
func NewOpenAIBackend(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key not configured")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenAIConfig("").BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIConfig("").Model
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultOpenAIConfig("").MaxTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultOpenAIConfig("").Timeout
	}
	return &OpenAIBackend{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}, nil
}

// Model reports the model name requests are sent to.
func (b *OpenAIBackend) Model() string {
	return b.cfg.Model
}

const generatorSystemPrompt = "You are an expert at generating realistic debt collection conversations. Always respond with valid JSON format."

const generationInstructions = `You are tasked with generating a realistic debt collection phone conversation based on the provided system prompt and scenario requirements.

Generate a complete conversation between the debt collection agent and the customer. The conversation should:
1. Follow the system prompt guidelines exactly
2. Include the required special tags naturally in the conversation
3. Be realistic and natural, not scripted
4. Show appropriate progression through the conversation states
5. Include realistic customer responses and agent handling

Format the output as a JSON array where each message has "role" (either "assistant" for agent or "user" for customer) and "content" (the message text).

The conversation should start with the agent's opening and continue until a natural conclusion.

System Prompt and Scenario:
`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Invoke wraps the scenario prompt in the generation instructions, calls the
// chat API and parses the returned turn array. The caller's context bounds
// the call; without a deadline the client timeout applies.
func (b *OpenAIBackend) Invoke(ctx context.Context, prompt string) (dialog.Conversation, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.cfg.Timeout)
		defer cancel()
	}

	reqBody := chatRequest{
		Model: b.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: generatorSystemPrompt},
			{Role: "user", Content: generationInstructions + prompt + "\n\nGenerate the conversation now:"},
		},
		MaxTokens:   b.cfg.MaxTokens,
		Temperature: b.cfg.Temperature,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "openai: marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "openai: build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+b.cfg.APIKey)

	start := time.Now()
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "openai: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "openai: read response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("openai: request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "openai: parse response")
	}
	if parsed.Error != nil {
		return nil, errors.Errorf("openai: API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, errors.New("openai: no completion returned")
	}

	conv, err := ParseConversation(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("conversation generated",
		zap.String("model", b.cfg.Model),
		zap.Int("turns", len(conv)),
		zap.Duration("elapsed", time.Since(start)))
	return conv, nil
}
