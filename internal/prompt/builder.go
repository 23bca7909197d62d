// Package prompt turns a scenario definition plus a randomized variation
// into the generation prompt sent to the backend.
package prompt

import (
	"fmt"
	"strings"

	"convogen/internal/catalog"
)

// DefaultAgentName is the agent persona named in base templates; it is
// swapped for the variation's agent name during substitution.
const DefaultAgentName = "Salma"

// Build fills the base template with the variation's concrete values and
// appends the scenario instruction block. Substitution is literal and
// case-sensitive; unresolved placeholders are left verbatim, callers are
// expected to supply complete templates. Pure function of its inputs.
func Build(template string, scenario catalog.ScenarioDefinition, req GenerationRequest) string {
	first, last := splitName(req.CustomerName)
	out := strings.ReplaceAll(template, "{FirstName}", first)
	out = strings.ReplaceAll(out, "{LastName}", last)
	out = strings.ReplaceAll(out, "{amount}", req.DebtAmount)
	out = strings.ReplaceAll(out, "{DueDate}", req.DueDate)
	out = strings.ReplaceAll(out, DefaultAgentName, req.AgentName)
	return out + instructionBlock(scenario)
}

func splitName(name string) (first, last string) {
	if !strings.Contains(name, " ") {
		return name, ""
	}
	parts := strings.Fields(name)
	return parts[0], parts[len(parts)-1]
}

func instructionBlock(s catalog.ScenarioDefinition) string {
	tags := strings.Join(s.SpecialTags, ", ")
	return fmt.Sprintf(`

## SCENARIO-SPECIFIC INSTRUCTIONS FOR THIS CONVERSATION:

**Scenario Type:** %s
**Description:** %s
**Customer Behavior:** %s
**Expected Outcome:** %s
**Required Special Tags:** %s

**Conversation Requirements:**
- The conversation MUST include at least one of these special tags: %s
- Customer should exhibit behavior consistent with: %s
- The conversation should naturally lead to outcome: %s
- Make the conversation realistic and natural, not scripted
- Include appropriate emotional responses and realistic dialogue
- Ensure the agent follows the guided conversation rules from the base prompt

**Special Instructions:**
%s
`, s.Name, s.Description, s.CustomerBehavior, s.Outcome, tags,
		tags, s.CustomerBehavior, s.Outcome, Guidance(s))
}

// Guidance returns the category-specific instruction block for a scenario.
// The dispatch is total: every scenario resolves to exactly one block, with
// the generic block as the final fallback.
func Guidance(s catalog.ScenarioDefinition) string {
	switch catalog.Categorize(s) {
	case catalog.CategoryWrongPerson:
		return "- The person answering is NOT the debtor\n- Agent must handle according to regulations\n- May need to transfer or disconnect"
	case catalog.CategoryHostile:
		return "- Customer becomes aggressive or angry\n- Agent must remain professional\n- May need to disconnect if too hostile"
	case catalog.CategoryLegal:
		return "- Customer raises legal issues\n- Agent must follow legal protocols\n- May require escalation or transfer"
	case catalog.CategoryPaymentWilling:
		return "- Customer is cooperative and willing to pay\n- Focus on securing specific payment date\n- Use function_1 tag for payment processing"
	case catalog.CategoryTechnical:
		return "- Technical issues affect the call quality\n- May need to disconnect and callback\n- Handle technical problems professionally"
	case catalog.CategoryVulnerable:
		return "- Customer needs special handling\n- Be extra careful and considerate\n- May need to transfer to specialist"
	default:
		return "- Follow standard debt collection procedures\n- Adapt to customer responses naturally\n- Include required special tags appropriately"
	}
}
