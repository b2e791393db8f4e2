package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

func filterWithScores(disease string, scores ...float64) *entities.AIRiskFilter {
	entries := make([]entities.AIRiskEntry, len(scores))
	for i, s := range scores {
		entries[i] = entities.AIRiskEntry{EmployeeName: "someone", RiskScore: s}
	}
	return &entities.AIRiskFilter{Disease: disease, Entries: entries}
}

func TestGuardrails_ValidFilterPasses(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})
	assert.Empty(t, g.Check(filterWithScores("Hypertension", 92.5, 78, 45.5, 30)))
}

func TestGuardrails_NilFilterIsValid(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})
	assert.Empty(t, g.Check(nil))
}

func TestGuardrails_FlagsEmptyDisease(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})
	faults := g.Check(filterWithScores("", 80))
	assert.Len(t, faults, 1)
	assert.Contains(t, faults[0], "disease")
}

func TestGuardrails_FlagsNoEntries(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})
	faults := g.Check(&entities.AIRiskFilter{Disease: "Diabetes"})
	assert.Len(t, faults, 1)
	assert.Contains(t, faults[0], "no entries")
}

func TestGuardrails_FlagsTooManyEntries(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MaxEntries: 2})
	faults := g.Check(filterWithScores("Diabetes", 90, 80, 70))
	assert.Len(t, faults, 1)
	assert.Contains(t, faults[0], "max is 2")
}

func TestGuardrails_FlagsScoreBelowThreshold(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})
	faults := g.Check(filterWithScores("Diabetes", 90, 12))
	assert.Len(t, faults, 1)
	assert.Contains(t, faults[0], "below threshold")
}

func TestGuardrails_FlagsOutOfOrderScores(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{})
	faults := g.Check(filterWithScores("Diabetes", 40, 90))
	assert.Len(t, faults, 1)
	assert.Contains(t, faults[0], "descending")
}
