package services

import (
	"strings"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

// conditionKeywords maps free-form condition text to the recognized
// disease labels. Order matters: the first matching keyword wins.
var conditionKeywords = []struct {
	keywords []string
	disease  entities.PastDisease
}{
	{[]string{"diabet"}, entities.DiseaseType2Diabetes},
	{[]string{"hypertens", "high bp", "blood pressure"}, entities.DiseaseHypertension},
	{[]string{"heart"}, entities.DiseaseHeartDisease},
	{[]string{"stroke"}, entities.DiseaseStroke},
	{[]string{"asthma"}, entities.DiseaseAsthma},
	{[]string{"obes", "overweight"}, entities.DiseaseObesity},
	{[]string{"cholesterol", "ldl"}, entities.DiseaseHighCholesterol},
	{[]string{"kidney"}, entities.DiseaseKidneyDisease},
	{[]string{"thyroid"}, entities.DiseaseThyroidDisorder},
}

// MapCondition resolves free-form condition text to a disease label.
// Unknown conditions return false and are skipped by callers.
func MapCondition(condition string) (entities.PastDisease, bool) {
	normalized := strings.ToLower(strings.TrimSpace(condition))
	if normalized == "" || normalized == "none" {
		return "", false
	}

	for _, entry := range conditionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				return entry.disease, true
			}
		}
	}

	return "", false
}

// MapConditions resolves a list of condition strings to a deduplicated
// disease set, preserving first-seen order.
func MapConditions(conditions []string) []entities.PastDisease {
	seen := make(map[entities.PastDisease]struct{})
	var diseases []entities.PastDisease

	for _, c := range conditions {
		disease, ok := MapCondition(c)
		if !ok {
			continue
		}
		if _, dup := seen[disease]; dup {
			continue
		}
		seen[disease] = struct{}{}
		diseases = append(diseases, disease)
	}

	return diseases
}
