package generate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"convogen/internal/dialog"
	"convogen/internal/validate"
)

// State is the retry loop's position: attempting, passed, or exhausted.
// Passed and exhausted are terminal.
type State int

const (
	StateAttempting State = iota
	StatePassed
	StateExhausted
)

// String returns the state label.
func (s State) String() string {
	switch s {
	case StatePassed:
		return "passed"
	case StateExhausted:
		return "exhausted"
	default:
		return "attempting"
	}
}

// DefaultMaxAttempts bounds the cost of one variation against the backend.
const DefaultMaxAttempts = 3

// Result is the outcome of a full retry loop: the final conversation and
// verdict, the prompt actually used on that attempt, and how many attempts
// were consumed. On exhaustion the last attempt's conversation and verdict
// are returned rather than an empty placeholder, so callers keep partial
// output for inspection.
type Result struct {
	State        State
	Conversation dialog.Conversation
	Verdict      validate.Verdict
	Prompt       string
	Attempts     int
}

// RetryController runs the generation-validation-retry loop. Between failed
// attempts it augments the prompt with corrective feedback derived from the
// verdict; augmentations accumulate, each retry appends to the prompt
// carried forward from the previous attempt.
type RetryController struct {
	validator   *validate.Validator
	maxAttempts int
	logger      *zap.Logger
}

// NewRetryController builds a controller. maxAttempts at or below zero
// falls back to DefaultMaxAttempts.
func NewRetryController(validator *validate.Validator, maxAttempts int, logger *zap.Logger) *RetryController {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &RetryController{
		validator:   validator,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// GenerateWithRetry resolves one variation. A backend failure consumes an
// attempt without validating; a passing verdict returns immediately, no
// further attempts are made. A cancelled context aborts the whole loop and
// the result reflects the last completed attempt.
func (rc *RetryController) GenerateWithRetry(ctx context.Context, backend Backend, prompt string, requiredTags []string, scenarioID string) Result {
	current := prompt

	var lastConv dialog.Conversation
	var lastVerdict validate.Verdict
	validated := false
	attempts := 0

	for attempt := 1; attempt <= rc.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			break
		}
		attempts = attempt

		conv, err := backend.Invoke(ctx, current)
		if err != nil {
			rc.logger.Warn("generation attempt failed",
				zap.String("scenario", scenarioID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			continue
		}

		verdict := rc.validator.Validate(conv, requiredTags, scenarioID)
		lastConv, lastVerdict, validated = conv, verdict, true

		if verdict.Passed {
			return Result{
				State:        StatePassed,
				Conversation: conv,
				Verdict:      verdict,
				Prompt:       current,
				Attempts:     attempt,
			}
		}

		rc.logger.Info("attempt failed validation",
			zap.String("scenario", scenarioID),
			zap.Int("attempt", attempt),
			zap.Float64("quality", verdict.QualityScore),
			zap.Strings("missing", verdict.MissingTags))

		if attempt < rc.maxAttempts {
			current = AugmentPrompt(current, verdict, rc.validator.Config())
		}
	}

	if !validated {
		lastVerdict = validate.Verdict{
			Passed:          false,
			FoundTags:       []string{},
			MissingTags:     append([]string{}, requiredTags...),
			QualityScore:    0.0,
			Issues:          []string{"All attempts failed"},
			Recommendations: []string{},
		}
	}
	return Result{
		State:        StateExhausted,
		Conversation: lastConv,
		Verdict:      lastVerdict,
		Prompt:       current,
		Attempts:     attempts,
	}
}

// AugmentPrompt appends a delimited retry-requirements block derived from a
// failing verdict: missing markers become CRITICAL directives, a low score
// a naturalness directive, a too-short issue an explicit exchange minimum,
// and the top recommendations are carried over verbatim. A verdict with
// nothing actionable returns the prompt unchanged.
func AugmentPrompt(prompt string, verdict validate.Verdict, cfg validate.Config) string {
	var requirements []string

	if len(verdict.MissingTags) > 0 {
		requirements = append(requirements,
			"CRITICAL: You MUST include these special tags in the conversation: "+strings.Join(verdict.MissingTags, ", "))
	}
	if verdict.QualityScore < cfg.QualityThreshold {
		requirements = append(requirements, "IMPORTANT: Make the conversation more natural and professional")
	}
	for _, issue := range verdict.Issues {
		if strings.Contains(issue, "too short") {
			requirements = append(requirements, "REQUIREMENT: Generate at least 6-8 message exchanges")
			break
		}
	}
	if len(verdict.Recommendations) > 0 {
		top := verdict.Recommendations
		if len(top) > 3 {
			top = top[:3]
		}
		requirements = append(requirements, "IMPROVEMENTS NEEDED: "+strings.Join(top, "; "))
	}

	if len(requirements) == 0 {
		return prompt
	}

	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n## CRITICAL REQUIREMENTS FOR THIS RETRY:\n")
	for _, r := range requirements {
		b.WriteString("- ")
		b.WriteString(r)
		b.WriteString("\n")
	}
	return b.String()
}
