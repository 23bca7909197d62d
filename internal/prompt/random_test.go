package prompt

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"convogen/internal/catalog"
)

func testScenario() catalog.ScenarioDefinition {
	return catalog.ScenarioDefinition{
		ID:               "basic_payment_willing",
		Name:             "Customer willing to pay immediately",
		Description:      "Customer acknowledges debt and agrees to pay within timeframe",
		CustomerBehavior: "cooperative",
		Outcome:          "positive",
		SpecialTags:      []string{"function_1"},
	}
}

func TestRequestDrawsFromPools(t *testing.T) {
	r := NewRandomizer(1)
	req := r.Request(testScenario(), 3)

	assert.Equal(t, "basic_payment_willing", req.ScenarioID)
	assert.Equal(t, 3, req.VariationID)
	assert.Contains(t, agentNames, req.AgentName)
	assert.Contains(t, customerNames, req.CustomerName)
	assert.Contains(t, debtAmounts, req.DebtAmount)
	assert.Equal(t, []string{"function_1"}, req.SpecialTags)
	assert.NotEmpty(t, req.DueDate)
}

func TestSeedDeterminism(t *testing.T) {
	a := NewRandomizer(42)
	b := NewRandomizer(42)

	for i := 1; i <= 5; i++ {
		assert.Equal(t, a.Request(testScenario(), i), b.Request(testScenario(), i))
	}
}

func TestVariationsNumberedFromOne(t *testing.T) {
	r := NewRandomizer(7)
	reqs := r.Variations(testScenario(), 4)

	require.Len(t, reqs, 4)
	for i, req := range reqs {
		assert.Equal(t, i+1, req.VariationID)
	}
}

func TestVariationsDefaultCount(t *testing.T) {
	r := NewRandomizer(7)
	assert.Len(t, r.Variations(testScenario(), 0), DefaultVariations)
	assert.Len(t, r.Variations(testScenario(), -3), DefaultVariations)
}

func TestDueDateRange(t *testing.T) {
	r := NewRandomizer(99)
	fixed := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	wantDates := map[string]bool{}
	for days := 5; days <= 45; days++ {
		wantDates[SpeakDate(fixed.AddDate(0, 0, -days))] = true
	}

	for i := 0; i < 200; i++ {
		got := r.dueDate()
		assert.True(t, wantDates[got], "due date %q outside the 5-45 day window", got)
	}
}

func TestSpeakDateAllDays(t *testing.T) {
	words := []string{
		"first", "second", "third", "fourth", "fifth",
		"sixth", "seventh", "eighth", "ninth", "tenth",
		"eleventh", "twelfth", "thirteenth", "fourteenth", "fifteenth",
		"sixteenth", "seventeenth", "eighteenth", "nineteenth", "twentieth",
		"twenty-first", "twenty-second", "twenty-third", "twenty-fourth", "twenty-fifth",
		"twenty-sixth", "twenty-seventh", "twenty-eighth", "twenty-ninth", "thirtieth",
		"thirty-first",
	}
	for day := 1; day <= 31; day++ {
		d := time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
		want := fmt.Sprintf("January %s", words[day-1])
		assert.Equal(t, want, SpeakDate(d))
	}
}

func TestSpeakDateMonths(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		d := time.Date(2025, m, 1, 0, 0, 0, 0, time.UTC)
		got := SpeakDate(d)
		assert.True(t, strings.HasPrefix(got, m.String()), "got %q for month %s", got, m)
		assert.True(t, strings.HasSuffix(got, " first"))
	}
}
