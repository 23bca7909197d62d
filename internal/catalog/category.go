package catalog

import "strings"

// Category groups scenarios that need the same special handling in prompt
// guidance and content validation. It replaces raw substring checks on the
// scenario id so that ids matching several patterns resolve unambiguously.
type Category int

const (
	CategoryGeneric Category = iota
	CategoryWrongPerson
	CategoryHostile
	CategoryLegal
	CategoryPaymentWilling
	CategoryTechnical
	CategoryVulnerable
)

// String returns a short label for the category.
func (c Category) String() string {
	switch c {
	case CategoryWrongPerson:
		return "wrong_person"
	case CategoryHostile:
		return "hostile"
	case CategoryLegal:
		return "legal"
	case CategoryPaymentWilling:
		return "payment_willing"
	case CategoryTechnical:
		return "technical"
	case CategoryVulnerable:
		return "vulnerable"
	default:
		return "generic"
	}
}

// CategorizeID resolves a category from the scenario identifier alone.
// Precedence when an id matches several patterns: wrong person, then
// hostile, then legal, then payment-willing, then technical. Anything else
// is generic.
func CategorizeID(id string) Category {
	switch {
	case strings.Contains(id, "wrong_person"):
		return CategoryWrongPerson
	case strings.Contains(id, "hostile"):
		return CategoryHostile
	case strings.Contains(id, "legal"):
		return CategoryLegal
	case strings.Contains(id, "payment") && strings.Contains(id, "willing"):
		return CategoryPaymentWilling
	case strings.HasPrefix(id, "tech_") || strings.Contains(id, "technical"):
		return CategoryTechnical
	}
	return CategoryGeneric
}

// Categorize resolves the category for a full scenario definition. It
// extends CategorizeID with the vulnerable-customer case, which is keyed on
// the behavior tag rather than the id.
func Categorize(s ScenarioDefinition) Category {
	if c := CategorizeID(s.ID); c != CategoryGeneric {
		return c
	}
	if strings.Contains(s.CustomerBehavior, "vulnerable") {
		return CategoryVulnerable
	}
	return CategoryGeneric
}
