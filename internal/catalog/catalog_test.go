package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := Default()

	assert.Equal(t, 100, cat.Len())

	seen := map[string]bool{}
	for _, s := range cat.Scenarios() {
		require.NotEmpty(t, s.ID)
		require.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true

		assert.NotEmpty(t, s.Name, "scenario %s has no name", s.ID)
		assert.NotEmpty(t, s.Description, "scenario %s has no description", s.ID)
		assert.NotEmpty(t, s.Outcome, "scenario %s has no outcome", s.ID)
	}
}

func TestDefaultCatalogTagsAreKnown(t *testing.T) {
	known := map[string]bool{}
	for _, tag := range SpecialTags() {
		known[tag] = true
		known[tag[1:len(tag)-1]] = true // bare form
	}

	for _, s := range Default().Scenarios() {
		for _, tag := range s.SpecialTags {
			assert.True(t, known[tag], "scenario %s uses unknown tag %q", s.ID, tag)
		}
	}
}

func TestNewRejectsInvalidTables(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]ScenarioDefinition{{Name: "no id"}})
	assert.Error(t, err)

	_, err = New([]ScenarioDefinition{
		{ID: "dup", Name: "a"},
		{ID: "dup", Name: "b"},
	})
	assert.Error(t, err)
}

func TestByID(t *testing.T) {
	cat := Default()

	s, ok := cat.ByID("basic_payment_willing")
	require.True(t, ok)
	assert.Equal(t, "basic_payment_willing", s.ID)
	assert.Contains(t, s.SpecialTags, "function_1")

	_, ok = cat.ByID("no_such_scenario")
	assert.False(t, ok)
}

func TestFirst(t *testing.T) {
	cat := Default()

	assert.Len(t, cat.First(5), 5)
	assert.Len(t, cat.First(0), cat.Len())
	assert.Len(t, cat.First(-1), cat.Len())
	assert.Len(t, cat.First(cat.Len()+10), cat.Len())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	data := `
- id: custom_one
  name: Custom One
  description: A custom scenario
  customer_behavior: cooperative
  outcome: full_payment
  special_tags:
    - function_1
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.Len())

	s, ok := cat.ByID("custom_one")
	require.True(t, ok)
	assert.Equal(t, []string{"function_1"}, s.SpecialTags)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid scenario list"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o644))
	_, err = Load(empty)
	assert.Error(t, err)
}

func TestDescriptiveMaps(t *testing.T) {
	behaviors := CustomerBehaviors()
	assert.Contains(t, behaviors, "cooperative")
	assert.Contains(t, behaviors, "hostile")

	outcomes := OutcomeTypes()
	assert.Contains(t, outcomes, "positive")
	assert.Contains(t, outcomes, "transfer")
}

func TestCategorizeID(t *testing.T) {
	cases := []struct {
		id   string
		want Category
	}{
		{"wrong_person_polite", CategoryWrongPerson},
		{"hostile_abusive", CategoryHostile},
		{"hostile_legal_threats", CategoryHostile}, // hostility wins over legal
		{"legal_bankruptcy_filed", CategoryLegal},
		{"basic_payment_willing", CategoryPaymentWilling},
		{"basic_payment_refused", CategoryGeneric},
		{"tech_cant_hear", CategoryTechnical},
		{"financial_job_loss", CategoryGeneric},
		{"", CategoryGeneric},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CategorizeID(tc.id), "id %q", tc.id)
	}
}

func TestCategorizeVulnerable(t *testing.T) {
	s := ScenarioDefinition{ID: "special_elderly_confusion", CustomerBehavior: "vulnerable"}
	assert.Equal(t, CategoryVulnerable, Categorize(s))

	// id patterns take precedence over the behavior tag
	s = ScenarioDefinition{ID: "hostile_abusive", CustomerBehavior: "vulnerable"}
	assert.Equal(t, CategoryHostile, Categorize(s))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "wrong_person", CategoryWrongPerson.String())
	assert.Equal(t, "generic", CategoryGeneric.String())
	assert.Equal(t, "vulnerable", CategoryVulnerable.String())
}
