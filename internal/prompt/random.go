package prompt

import (
	"fmt"
	"math/rand"
	"time"

	"convogen/internal/catalog"
)

// GenerationRequest carries the randomized attributes of one scenario
// variation. It is built once, consumed by Build and then discarded.
type GenerationRequest struct {
	ScenarioID   string
	VariationID  int
	CustomerName string
	AgentName    string
	DebtAmount   string
	DueDate      string
	SpecialTags  []string
}

var agentNames = []string{
	"Salma", "Ahmed", "Fatima", "Omar", "Layla", "Hassan", "Nour", "Khalid",
	"Amira", "Youssef", "Zara", "Ali", "Maryam", "Saeed", "Lina", "Tariq",
}

var customerNames = []string{
	"Khalili", "Al-Rashid", "Mansour", "Al-Zahra", "Qasemi", "Al-Mahmoud",
	"Abdulla", "Al-Farisi", "Hamdan", "Al-Mansoori", "Sharif", "Al-Blooshi",
	"Nasser", "Al-Shamsi", "Rashed", "Al-Kaabi", "Salem", "Al-Dhaheri",
}

// Worded amounts in AED. The model is expected to speak amounts, never read
// digits, so the pool is pre-worded.
var debtAmounts = []string{
	"three hundred dirhams", "four hundred fifty dirhams",
	"six hundred dirhams", "seven hundred twenty-five dirhams",
	"eight hundred dirhams", "nine hundred fifty dirhams",
	"one thousand dirhams", "one thousand two hundred dirhams",
	"one thousand five hundred dirhams", "two thousand dirhams",
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// dayOrdinals is indexed by day of month, 1 through 31.
var dayOrdinals = [...]string{
	"", "first", "second", "third", "fourth", "fifth",
	"sixth", "seventh", "eighth", "ninth", "tenth",
	"eleventh", "twelfth", "thirteenth", "fourteenth", "fifteenth",
	"sixteenth", "seventeenth", "eighteenth", "nineteenth", "twentieth",
	"twenty-first", "twenty-second", "twenty-third", "twenty-fourth", "twenty-fifth",
	"twenty-sixth", "twenty-seventh", "twenty-eighth", "twenty-ninth", "thirtieth",
	"thirty-first",
}

// DefaultVariations is how many independent draws are made per scenario.
const DefaultVariations = 10

// Randomizer draws variation attributes from the fixed pools. Seed and clock
// are injectable so batch runs can be reproduced.
type Randomizer struct {
	rnd *rand.Rand
	now func() time.Time
}

// NewRandomizer creates a randomizer from a seed. A zero seed picks a
// time-based one.
func NewRandomizer(seed int64) *Randomizer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Randomizer{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// Request draws one randomized variation of the scenario. Draws are made
// with replacement; duplicate variations across a scenario are acceptable.
func (r *Randomizer) Request(scenario catalog.ScenarioDefinition, variationID int) GenerationRequest {
	return GenerationRequest{
		ScenarioID:   scenario.ID,
		VariationID:  variationID,
		CustomerName: customerNames[r.rnd.Intn(len(customerNames))],
		AgentName:    agentNames[r.rnd.Intn(len(agentNames))],
		DebtAmount:   debtAmounts[r.rnd.Intn(len(debtAmounts))],
		DueDate:      r.dueDate(),
		SpecialTags:  scenario.SpecialTags,
	}
}

// Variations draws n independent variations of the scenario, numbered from 1.
func (r *Randomizer) Variations(scenario catalog.ScenarioDefinition, n int) []GenerationRequest {
	if n <= 0 {
		n = DefaultVariations
	}
	requests := make([]GenerationRequest, n)
	for i := range requests {
		requests[i] = r.Request(scenario, i+1)
	}
	return requests
}

// dueDate renders an overdue date 5 to 45 days in the past as spoken text,
// e.g. "August first".
func (r *Randomizer) dueDate() string {
	daysAgo := r.rnd.Intn(41) + 5
	due := r.now().AddDate(0, 0, -daysAgo)
	return SpeakDate(due)
}

// SpeakDate renders a date as "<Month> <ordinal-day>".
func SpeakDate(t time.Time) string {
	return fmt.Sprintf("%s %s", monthNames[t.Month()-1], dayOrdinals[t.Day()])
}
