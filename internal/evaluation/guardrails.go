package evaluation

import (
	"fmt"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

// GuardrailConfig bounds the structural shape a risk filter may take.
type GuardrailConfig struct {
	MaxEntries   int
	MinRiskScore float64
}

// Guardrails validates structural invariants of produced risk filters.
type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	if config.MaxEntries <= 0 {
		config.MaxEntries = 10
	}
	if config.MinRiskScore <= 0 {
		config.MinRiskScore = 30
	}
	return &Guardrails{config: config}
}

// Check returns the violations found in the filter. A nil filter is
// valid: it means the response was conversational.
func (g *Guardrails) Check(filter *entities.AIRiskFilter) []string {
	if filter == nil {
		return nil
	}

	var faults []string

	if filter.Disease == "" {
		faults = append(faults, "disease label is empty")
	}
	if len(filter.Entries) == 0 {
		faults = append(faults, "filter has no entries")
	}
	if len(filter.Entries) > g.config.MaxEntries {
		faults = append(faults, fmt.Sprintf("filter has %d entries, max is %d", len(filter.Entries), g.config.MaxEntries))
	}

	for i, entry := range filter.Entries {
		if entry.RiskScore < g.config.MinRiskScore {
			faults = append(faults, fmt.Sprintf("entry %d score %.1f is below threshold %.1f", i, entry.RiskScore, g.config.MinRiskScore))
		}
		if i > 0 && filter.Entries[i-1].RiskScore < entry.RiskScore {
			faults = append(faults, fmt.Sprintf("entries %d and %d are not in descending score order", i-1, i))
		}
	}

	return faults
}
