package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

// EmptyAIResponseMessage replaces blank AI service responses
const EmptyAIResponseMessage = "No response received from the AI service."

var percentTokenPattern = regexp.MustCompile(`\d{1,3}(\.\d+)?%`)

// NormalizedAnalysis is the outcome of normalizing a raw AI response:
// either a structured payload or plain text, never both.
type NormalizedAnalysis struct {
	Structured *entities.StructuredAnalysis
	Text       string
}

// IsStructured reports whether the response carried a structured payload
func (n NormalizedAnalysis) IsStructured() bool {
	return n.Structured != nil
}

// NormalizeAnalysisResponse resolves the three shapes the AI service
// may return: a structured JSON object, a JSON-encoded string wrapping
// that object (the API declares its response as a plain string, so the
// body can arrive doubly encoded), or free text.
func NormalizeAnalysisResponse(raw string) NormalizedAnalysis {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NormalizedAnalysis{Text: EmptyAIResponseMessage}
	}

	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, `"`) {
		return NormalizedAnalysis{Text: trimmed}
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return NormalizedAnalysis{Text: trimmed}
	}

	payload := trimmed
	if inner, ok := decoded.(string); ok {
		// Double-encoded: the body was a JSON string containing JSON
		innerTrimmed := strings.TrimSpace(inner)
		if err := json.Unmarshal([]byte(innerTrimmed), &decoded); err != nil {
			return NormalizedAnalysis{Text: innerTrimmed}
		}
		payload = innerTrimmed
	}

	obj, ok := decoded.(map[string]interface{})
	if !ok {
		return NormalizedAnalysis{Text: trimmed}
	}
	if _, isArray := obj["scored_employees"].([]interface{}); !isArray {
		return NormalizedAnalysis{Text: trimmed}
	}

	var structured entities.StructuredAnalysis
	if err := json.Unmarshal([]byte(payload), &structured); err != nil {
		return NormalizedAnalysis{Text: trimmed}
	}

	return NormalizedAnalysis{Structured: &structured}
}

// ContainsRiskTable classifies free text as a risk listing when it
// carries at least two percentage tokens.
func ContainsRiskTable(text string) bool {
	return len(percentTokenPattern.FindAllString(text, 3)) >= 2
}
