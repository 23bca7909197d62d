// Package validate scores generated conversations against required markers
// and quality heuristics. A verdict is produced fresh on every call and
// never mutated; each retry attempt gets its own.
package validate

import (
	"fmt"
	"math"
	"strings"

	"convogen/internal/catalog"
	"convogen/internal/dialog"
)

// Config carries the pass-policy knobs. The defaults match production but
// are configuration, not law.
type Config struct {
	// QualityThreshold is the minimum quality score for a pass.
	QualityThreshold float64
	// MaxIssues is the most issues a passing conversation may carry.
	MaxIssues int
	// Identifiers are the strings the opening turn is searched for to
	// confirm the agent introduced themselves.
	Identifiers []string
}

// DefaultConfig returns the production pass policy.
func DefaultConfig() Config {
	return Config{
		QualityThreshold: 0.6,
		MaxIssues:        2,
		Identifiers:      []string{"cleargrid", "salma"},
	}
}

// Verdict is the structured outcome of validating one conversation attempt.
type Verdict struct {
	Passed          bool     `json:"passed"`
	FoundTags       []string `json:"found_tags"`
	MissingTags     []string `json:"missing_tags"`
	QualityScore    float64  `json:"quality_score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// Validator checks conversations for marker coverage, quality and
// scenario-specific content.
type Validator struct {
	cfg         Config
	specialTags []string
}

// NewValidator builds a validator over the full special-tag vocabulary.
func NewValidator(cfg Config) *Validator {
	if cfg.QualityThreshold == 0 {
		cfg.QualityThreshold = DefaultConfig().QualityThreshold
	}
	if cfg.MaxIssues == 0 {
		cfg.MaxIssues = DefaultConfig().MaxIssues
	}
	if len(cfg.Identifiers) == 0 {
		cfg.Identifiers = DefaultConfig().Identifiers
	}
	return &Validator{cfg: cfg, specialTags: catalog.SpecialTags()}
}

// Config returns the pass policy in effect.
func (v *Validator) Config() Config {
	return v.cfg
}

// Validate scores a conversation. The three pass gates are independent:
// no missing required markers, quality score at or above the threshold,
// and at most MaxIssues issues.
func (v *Validator) Validate(conv dialog.Conversation, requiredTags []string, scenarioID string) Verdict {
	if len(conv) == 0 {
		return Verdict{
			Passed:          false,
			FoundTags:       []string{},
			MissingTags:     append([]string{}, requiredTags...),
			QualityScore:    0.0,
			Issues:          []string{"Empty conversation"},
			Recommendations: []string{"Generate a non-empty conversation"},
		}
	}

	found := v.findMarkers(conv)

	missing := []string{}
	for _, req := range requiredTags {
		if !contains(found, normalizeMarker(req)) {
			// keep the caller's original spelling for reporting
			missing = append(missing, req)
		}
	}

	score := v.qualityScore(conv)
	issues := v.identifyIssues(conv, scenarioID)
	recommendations := v.recommendations(conv, missing)

	passed := len(missing) == 0 &&
		score >= v.cfg.QualityThreshold &&
		len(issues) <= v.cfg.MaxIssues

	return Verdict{
		Passed:          passed,
		FoundTags:       found,
		MissingTags:     missing,
		QualityScore:    score,
		Issues:          issues,
		Recommendations: recommendations,
	}
}

// findMarkers returns every special tag present anywhere in the
// conversation, deduplicated, in vocabulary order.
func (v *Validator) findMarkers(conv dialog.Conversation) []string {
	found := []string{}
	for _, tag := range v.specialTags {
		for _, turn := range conv {
			if markerFoundIn(turn.Content, tag) {
				found = append(found, tag)
				break
			}
		}
	}
	return found
}

// Quality indicator vocabularies. Each category is scored on the share of
// distinct indicator words present, saturating at 30% coverage.
var indicatorCategories = []struct {
	name  string
	words []string
}{
	{"agent_professionalism", []string{
		"good morning", "good afternoon", "good evening",
		"thank you", "please", "may i", "i understand",
		"i appreciate", "professional", "courteous",
	}},
	{"debt_collection_terms", []string{
		"debt", "loan", "payment", "amount", "balance",
		"due", "overdue", "collection", "account",
	}},
	{"regulatory_compliance", []string{
		"recorded", "quality purposes", "verify", "confirm",
		"legal action", "credit bureau", "background check",
	}},
	{"natural_conversation", []string{
		"how are you", "i see", "i understand", "that's",
		"well", "actually", "really", "sure", "okay",
	}},
}

// redFlags are boilerplate artifacts that should never survive generation.
var redFlags = []string{
	"lorem ipsum",
	"placeholder",
	"example text",
	"sample conversation",
	"test message",
	"[insert",
	"{{",
	"}}",
}

func (v *Validator) qualityScore(conv dialog.Conversation) float64 {
	fullText := strings.ToLower(conv.FullText())

	var sum float64
	for _, cat := range indicatorCategories {
		sum += indicatorScore(fullText, cat.words)
	}
	sum += structureScore(conv)

	base := sum / float64(len(indicatorCategories)+1)
	final := base - redFlagPenalty(fullText)
	return math.Min(1.0, math.Max(0.0, final))
}

// indicatorScore counts distinct indicator words present at least once,
// scaled so that 30% of the vocabulary saturates the category.
func indicatorScore(fullText string, words []string) float64 {
	found := 0
	for _, w := range words {
		if strings.Contains(fullText, w) {
			found++
		}
	}
	return math.Min(1.0, float64(found)/math.Max(1.0, float64(len(words))*0.3))
}

func redFlagPenalty(fullText string) float64 {
	count := 0
	for _, flag := range redFlags {
		if strings.Contains(fullText, flag) {
			count++
		}
	}
	return float64(count) * 0.3
}

func structureScore(conv dialog.Conversation) float64 {
	if len(conv) < 3 {
		return 0.2 // too short
	}
	if len(conv) > 30 {
		return 0.7 // too long, but not terrible
	}
	return (alternationScore(conv.Roles()) + lengthScore(conv)) / 2
}

func alternationScore(roles []dialog.Role) float64 {
	if len(roles) == 0 {
		return 0.0
	}
	if roles[0] != dialog.RoleAgent {
		return 0.5
	}
	violations := 0
	for i := 1; i < len(roles); i++ {
		if roles[i] == roles[i-1] {
			violations++
		}
	}
	return math.Max(0.0, 1.0-float64(violations)/float64(len(roles)))
}

func lengthScore(conv dialog.Conversation) float64 {
	outOfBounds := 0
	for _, turn := range conv {
		if n := len(turn.Content); n < 10 || n > 500 {
			outOfBounds++
		}
	}
	return math.Max(0.0, 1.0-float64(outOfBounds)/float64(len(conv)))
}

// identifyIssues runs the independent issue checks. All triggered checks are
// reported; they are not mutually exclusive.
func (v *Validator) identifyIssues(conv dialog.Conversation, scenarioID string) []string {
	issues := []string{}

	empty := 0
	for _, turn := range conv {
		if strings.TrimSpace(turn.Content) == "" {
			empty++
		}
	}
	if empty > 0 {
		issues = append(issues, fmt.Sprintf("%d empty messages found", empty))
	}

	if len(conv) < 4 {
		issues = append(issues, "Conversation too short (less than 4 exchanges)")
	}

	first := strings.ToLower(conv[0].Content)
	introduced := false
	for _, id := range v.cfg.Identifiers {
		if strings.Contains(first, id) {
			introduced = true
			break
		}
	}
	if !introduced {
		issues = append(issues, "Agent introduction missing or incomplete")
	}

	if len(conv[len(conv)-1].Content) < 20 {
		issues = append(issues, "Conversation ending seems abrupt")
	}

	issues = append(issues, scenarioIssues(conv, scenarioID)...)
	return issues
}

// scenarioIssues applies the content check of the scenario's category, if it
// has one. Categories without a content expectation report nothing.
func scenarioIssues(conv dialog.Conversation, scenarioID string) []string {
	fullText := strings.ToLower(conv.FullText())

	switch catalog.CategorizeID(scenarioID) {
	case catalog.CategoryWrongPerson:
		if !strings.Contains(fullText, "transfer") && !strings.Contains(fullText, "wrong") {
			return []string{"Wrong person scenario should mention transfer or wrong person"}
		}
	case catalog.CategoryHostile:
		if !containsAny(fullText, "angry", "upset", "frustrated") {
			return []string{"Hostile scenario should show customer anger or frustration"}
		}
	case catalog.CategoryPaymentWilling:
		if !containsAny(fullText, "pay", "payment") {
			return []string{"Payment willing scenario should discuss payment"}
		}
	case catalog.CategoryLegal:
		if !containsAny(fullText, "legal", "attorney", "lawyer") {
			return []string{"Legal scenario should mention legal terms"}
		}
	}
	return nil
}

// recommendations derives fix-it strings deterministically from the verdict
// inputs; the retry controller feeds them back into the next prompt.
func (v *Validator) recommendations(conv dialog.Conversation, missing []string) []string {
	recommendations := []string{}

	if len(missing) > 0 {
		recommendations = append(recommendations,
			"Include required special tags: "+strings.Join(missing, ", "))
	}
	if len(conv) < 4 {
		recommendations = append(recommendations, "Extend conversation to at least 4-6 exchanges")
	}
	if len(conv) > 20 {
		recommendations = append(recommendations, "Consider shortening conversation for better focus")
	}

	fullText := strings.ToLower(conv.FullText())
	if !strings.Contains(fullText, "thank you") {
		recommendations = append(recommendations, "Add more polite language and courtesy")
	}
	if !containsAny(fullText, "payment", "debt") {
		recommendations = append(recommendations, "Ensure debt collection purpose is clear")
	}
	if !containsAny(fullText, "(disconnect)", "(transfer)", "(function_1)", "(function_2)") {
		recommendations = append(recommendations, "Include appropriate special tags for call handling")
	}

	return recommendations
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsAny(text string, substrings ...string) bool {
	for _, s := range substrings {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
