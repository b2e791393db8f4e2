package evaluation

import "time"

// Difficulty buckets for golden cases.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid checks if the difficulty value is one of the defined constants.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// GoldenCase is a labeled AI response with the member ids a correct
// resolution should surface. RawResponse stands in for the live AI
// service so evaluation runs offline and deterministically.
type GoldenCase struct {
	ID                string     `json:"id"`
	Prompt            string     `json:"prompt"`
	RawResponse       string     `json:"raw_response"`
	ExpectedDisease   string     `json:"expected_disease"`
	ExpectedMemberIDs []string   `json:"expected_member_ids"`
	Difficulty        Difficulty `json:"difficulty"`
}

// EvalResult holds the evaluation outcome for a single case.
type EvalResult struct {
	CaseID      string
	Prompt      string
	Difficulty  Difficulty
	RecallAt10  float64
	MRRAt10     float64
	EntryCount  int
	ResolvedIDs []string
	Latency     time.Duration
}

// EvalSummary holds aggregate metrics across all golden cases.
type EvalSummary struct {
	TotalCases      int
	AvgRecallAt10   float64
	AvgMRRAt10      float64
	AvgLatency      time.Duration
	CasesWithFilter int // cases that produced a risk filter
	GuardrailFaults []string
	ByDifficulty    map[Difficulty]*DifficultySummary
}

// DifficultySummary holds metrics grouped by case difficulty.
type DifficultySummary struct {
	Count         int
	AvgRecallAt10 float64
	AvgMRRAt10    float64
}
