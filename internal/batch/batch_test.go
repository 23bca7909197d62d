package batch

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"convogen/internal/catalog"
	"convogen/internal/dialog"
	"convogen/internal/generate"
	"convogen/internal/prompt"
	"convogen/internal/record"
	"convogen/internal/validate"
)

// stubBackend returns the same response for every call, safely under
// concurrency.
type stubBackend struct {
	mu    sync.Mutex
	calls int
	conv  dialog.Conversation
	err   error
}

func (b *stubBackend) Invoke(_ context.Context, _ string) (dialog.Conversation, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	return b.conv, nil
}

func passingConversation() dialog.Conversation {
	return dialog.Conversation{
		{Role: dialog.RoleAgent, Content: "Good morning, this is Salma from ClearGrid calling about your CashNow loan. May I speak with Ahmed?"},
		{Role: dialog.RoleCustomer, Content: "Yes, this is Ahmed speaking. How can I help you?"},
		{Role: dialog.RoleAgent, Content: "Thank you for confirming. I'm calling about your overdue payment of five thousand dirhams. This call is recorded for quality purposes."},
		{Role: dialog.RoleCustomer, Content: "Oh, I see. I was planning to pay it this week actually."},
		{Role: dialog.RoleAgent, Content: "I appreciate that. Can you confirm you will make the payment within the next ten days?"},
		{Role: dialog.RoleCustomer, Content: "Sure, okay, I will pay the full amount by Friday."},
		{Role: dialog.RoleAgent, Content: "Thank you very much, Ahmed. I will note the payment arrangement on your account. Have a great day. (function_1)"},
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.ScenarioDefinition{
		{
			ID:               "basic_payment_willing",
			Name:             "Customer willing to pay immediately",
			Description:      "Customer acknowledges debt and agrees to pay",
			CustomerBehavior: "cooperative",
			Outcome:          "positive",
			SpecialTags:      []string{"function_1"},
		},
		{
			ID:               "basic_payment_delayed",
			Name:             "Customer needs a few days to pay",
			Description:      "Customer acknowledges debt but needs time",
			CustomerBehavior: "cooperative_delayed",
			Outcome:          "positive",
			SpecialTags:      []string{"function_1"},
		},
	})
	require.NoError(t, err)
	return cat
}

func testPrompts() []record.InputPrompt {
	return []record.InputPrompt{
		{ID: "p1", SystemPrompt: "You are Salma from ClearGrid.", Language: "english"},
	}
}

func newOrchestrator(t *testing.T, backend generate.Backend, opts Options) *Orchestrator {
	t.Helper()
	logger := zap.NewNop()
	validator := validate.NewValidator(validate.DefaultConfig())
	retry := generate.NewRetryController(validator, 2, logger)
	return New(testCatalog(t), prompt.NewRandomizer(42), backend, retry, logger, opts)
}

func TestRunProducesRecordPerVariation(t *testing.T) {
	backend := &stubBackend{conv: passingConversation()}
	o := newOrchestrator(t, backend, Options{Variations: 2, Model: "test-model"})

	records, stats, err := o.Run(context.Background(), testPrompts())
	require.NoError(t, err)

	// 1 prompt x 2 scenarios x 2 variations
	require.Len(t, records, 4)
	assert.Equal(t, 4, stats.TotalConversations)
	assert.Equal(t, 4, stats.Passed)
	assert.Zero(t, stats.Failed)
	assert.Greater(t, stats.AverageQuality, 0.6)
	assert.NotEmpty(t, stats.RunID)

	for _, r := range records {
		assert.True(t, r.Verdict.Passed)
		assert.Equal(t, "test-model", r.Metadata.Model)
		assert.Equal(t, record.GeneratorVersion, r.Metadata.GeneratorVersion)
		assert.NotEmpty(t, r.SystemPrompt)
	}
	// passing first attempt each time
	assert.Equal(t, 4, backend.calls)
}

func TestRunRecordsFailuresToo(t *testing.T) {
	backend := &stubBackend{err: errors.New("backend down")}
	o := newOrchestrator(t, backend, Options{Variations: 2})

	records, stats, err := o.Run(context.Background(), testPrompts())
	require.NoError(t, err)

	// every variation still yields a record, carrying the failure verdict
	require.Len(t, records, 4)
	assert.Equal(t, 4, stats.Failed)
	assert.Zero(t, stats.Passed)
	for _, r := range records {
		assert.False(t, r.Verdict.Passed)
		assert.Nil(t, r.Conversation)
		assert.Equal(t, []string{"function_1"}, r.Verdict.MissingTags)
	}
}

func TestRunConcurrent(t *testing.T) {
	backend := &stubBackend{conv: passingConversation()}
	o := newOrchestrator(t, backend, Options{Variations: 5, Concurrency: 4})

	records, stats, err := o.Run(context.Background(), testPrompts())
	require.NoError(t, err)

	assert.Len(t, records, 10)
	assert.Equal(t, 10, stats.Passed)
}

func TestRunCancelledContext(t *testing.T) {
	backend := &stubBackend{conv: passingConversation()}
	o := newOrchestrator(t, backend, Options{Variations: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, _, err := o.Run(ctx, testPrompts())
	assert.Error(t, err)
	assert.Empty(t, records)
}

func TestRunScenarioOrderIsStable(t *testing.T) {
	backend := &stubBackend{conv: passingConversation()}
	o := newOrchestrator(t, backend, Options{Variations: 2})

	records, _, err := o.Run(context.Background(), testPrompts())
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "basic_payment_willing", records[0].ScenarioID)
	assert.Equal(t, 1, records[0].VariationID)
	assert.Equal(t, "basic_payment_willing", records[1].ScenarioID)
	assert.Equal(t, 2, records[1].VariationID)
	assert.Equal(t, "basic_payment_delayed", records[2].ScenarioID)
	assert.Equal(t, "basic_payment_delayed", records[3].ScenarioID)
}

func TestOptionsDefaults(t *testing.T) {
	backend := &stubBackend{conv: passingConversation()}
	o := newOrchestrator(t, backend, Options{})

	assert.Equal(t, prompt.DefaultVariations, o.opts.Variations)
	assert.Equal(t, 1, o.opts.Concurrency)
}
