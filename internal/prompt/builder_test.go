package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"convogen/internal/catalog"
)

func testRequest() GenerationRequest {
	return GenerationRequest{
		ScenarioID:   "basic_payment_willing",
		VariationID:  1,
		CustomerName: "Al-Rashid",
		AgentName:    "Nour",
		DebtAmount:   "one thousand dirhams",
		DueDate:      "August tenth",
		SpecialTags:  []string{"function_1"},
	}
}

func TestBuildSubstitutesPlaceholders(t *testing.T) {
	template := "You are Salma. Call {FirstName} {LastName} about {amount} due on {DueDate}."

	out := Build(template, testScenario(), testRequest())

	assert.Contains(t, out, "You are Nour.")
	assert.Contains(t, out, "Call Al-Rashid  about")
	assert.Contains(t, out, "one thousand dirhams")
	assert.Contains(t, out, "August tenth")
	assert.NotContains(t, out, "{amount}")
	assert.NotContains(t, out, "{DueDate}")
}

func TestBuildAppendsInstructionBlock(t *testing.T) {
	s := testScenario()
	out := Build("base prompt", s, testRequest())

	assert.True(t, strings.HasPrefix(out, "base prompt"))
	assert.Contains(t, out, "## SCENARIO-SPECIFIC INSTRUCTIONS FOR THIS CONVERSATION:")
	assert.Contains(t, out, "**Scenario Type:** "+s.Name)
	assert.Contains(t, out, "**Required Special Tags:** function_1")
	assert.Contains(t, out, "**Customer Behavior:** cooperative")
	assert.Contains(t, out, Guidance(s))
}

func TestBuildLeavesUnknownPlaceholders(t *testing.T) {
	out := Build("Hello {Unknown} world", testScenario(), testRequest())
	assert.Contains(t, out, "{Unknown}")
}

func TestBuildDefaultTemplate(t *testing.T) {
	out := Build(DefaultTemplate, testScenario(), testRequest())

	assert.Contains(t, out, "Nour")
	assert.NotContains(t, out, "{FirstName}")
	assert.NotContains(t, out, "{LastName}")
	assert.NotContains(t, out, "{amount}")
	assert.NotContains(t, out, "{DueDate}")
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Al-Rashid")
	assert.Equal(t, "Al-Rashid", first)
	assert.Empty(t, last)

	first, last = splitName("Ahmed Al-Rashid")
	assert.Equal(t, "Ahmed", first)
	assert.Equal(t, "Al-Rashid", last)
}

func TestGuidanceCoversEveryScenario(t *testing.T) {
	for _, s := range catalog.Default().Scenarios() {
		assert.NotEmpty(t, Guidance(s), "scenario %s has no guidance", s.ID)
	}
}

func TestGuidanceByCategory(t *testing.T) {
	wrong := catalog.ScenarioDefinition{ID: "wrong_person_polite"}
	assert.Contains(t, Guidance(wrong), "NOT the debtor")

	willing := catalog.ScenarioDefinition{ID: "basic_payment_willing"}
	assert.Contains(t, Guidance(willing), "function_1")

	generic := catalog.ScenarioDefinition{ID: "financial_job_loss"}
	assert.Contains(t, Guidance(generic), "standard debt collection procedures")
}
