// Package catalog defines the static table of call scenarios the generator
// works through. The catalog is an immutable value passed into components,
// never process-global state.
package catalog

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ScenarioDefinition describes one behavioral template: how the customer
// acts, how the call is expected to end and which call-handling tags the
// generated conversation must contain.
type ScenarioDefinition struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description" yaml:"description"`
	CustomerBehavior string   `json:"customer_behavior" yaml:"customer_behavior"`
	Outcome          string   `json:"outcome" yaml:"outcome"`
	SpecialTags      []string `json:"special_tags" yaml:"special_tags"`
}

// Catalog is an ordered, immutable collection of scenario definitions.
type Catalog struct {
	scenarios []ScenarioDefinition
	byID      map[string]ScenarioDefinition
}

// New builds a catalog from the given scenarios. It is the only constructor
// that enforces the structural invariants: a catalog is non-empty and every
// scenario has a unique, non-empty identifier.
func New(scenarios []ScenarioDefinition) (*Catalog, error) {
	if len(scenarios) == 0 {
		return nil, errors.New("catalog: no scenarios defined")
	}
	byID := make(map[string]ScenarioDefinition, len(scenarios))
	for _, s := range scenarios {
		if s.ID == "" {
			return nil, errors.Errorf("catalog: scenario %q has no id", s.Name)
		}
		if _, dup := byID[s.ID]; dup {
			return nil, errors.Errorf("catalog: duplicate scenario id %q", s.ID)
		}
		byID[s.ID] = s
	}
	return &Catalog{scenarios: scenarios, byID: byID}, nil
}

// Default returns the built-in debt-collection catalog.
func Default() *Catalog {
	c, err := New(debtCollectionScenarios)
	if err != nil {
		// the built-in table is validated by tests
		panic(err)
	}
	return c
}

// Load reads a scenario catalog from a YAML file, replacing the built-in
// table. A malformed or empty file is a hard error: with no catalog there
// is nothing to generate.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: read")
	}
	var scenarios []ScenarioDefinition
	if err := yaml.Unmarshal(data, &scenarios); err != nil {
		return nil, errors.Wrapf(err, "catalog: parse %s", path)
	}
	return New(scenarios)
}

// Scenarios returns the definitions in catalog order.
func (c *Catalog) Scenarios() []ScenarioDefinition {
	return c.scenarios
}

// First returns the first n scenarios, or all of them when n is zero,
// negative or past the end.
func (c *Catalog) First(n int) []ScenarioDefinition {
	if n <= 0 || n >= len(c.scenarios) {
		return c.scenarios
	}
	return c.scenarios[:n]
}

// ByID looks a scenario up by identifier.
func (c *Catalog) ByID(id string) (ScenarioDefinition, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Len reports the number of scenarios.
func (c *Catalog) Len() int {
	return len(c.scenarios)
}

// SpecialTags lists every call-handling marker a conversation may carry.
func SpecialTags() []string {
	return []string{
		"(disconnect)",
		"(transfer)",
		"(function_1)",
		"(function_2)",
		"(hold)",
		"(mute)",
		"(conference)",
		"(callback)",
		"(escalate)",
	}
}

// CustomerBehaviors describes the behavior archetypes used across the table.
func CustomerBehaviors() map[string]string {
	return map[string]string{
		"cooperative":   "Customer is willing to work with agent",
		"uncooperative": "Customer refuses to cooperate",
		"hostile":       "Customer is aggressive or angry",
		"confused":      "Customer doesn't understand situation",
		"vulnerable":    "Customer needs special handling",
		"legal":         "Customer raises legal issues",
		"technical":     "Technical issues affect call",
		"wrong_person":  "Wrong person contacted",
	}
}

// OutcomeTypes describes the expected call outcomes.
func OutcomeTypes() map[string]string {
	return map[string]string{
		"positive":   "Customer agrees to pay",
		"negative":   "Customer refuses to pay",
		"neutral":    "Situation needs follow-up",
		"legal":      "Legal issues require escalation",
		"transfer":   "Call needs to be transferred",
		"disconnect": "Call ends without resolution",
		"dispute":    "Customer disputes the debt",
	}
}
