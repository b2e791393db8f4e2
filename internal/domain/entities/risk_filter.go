package entities

// ScoredEmployee is one element of a structured AI analysis payload
type ScoredEmployee struct {
	EmployeeID      string   `json:"employee_id"`
	EmployeeName    string   `json:"employee_name"`
	RiskProbability float64  `json:"risk_probability"`
	Confidence      string   `json:"confidence,omitempty"`
	Evidence        []string `json:"evidence,omitempty"`
}

// StructuredAnalysis is the structured wire shape an AI analysis may return
type StructuredAnalysis struct {
	Condition       string           `json:"condition"`
	Summary         string           `json:"summary,omitempty"`
	ScoredEmployees []ScoredEmployee `json:"scored_employees"`
}

// AIRiskEntry is one reconciled row of an AI risk filter. MemberID is
// empty when the named employee could not be resolved to a registered
// member.
type AIRiskEntry struct {
	EmployeeID   string   `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	MemberID     string   `json:"memberId,omitempty"`
	RiskScore    float64  `json:"riskScore"`
	Confidence   string   `json:"confidence,omitempty"`
	Evidence     []string `json:"evidence,omitempty"`
}

// AIRiskFilter is the reconciled outcome of an AI risk analysis:
// entries are sorted by risk score descending and capped at ten.
type AIRiskFilter struct {
	Disease     string        `json:"disease"`
	Entries     []AIRiskEntry `json:"entries"`
	RawResponse string        `json:"rawResponse"`
}

// MemberIDs returns the resolved member ids in ranked order
func (f *AIRiskFilter) MemberIDs() []string {
	ids := make([]string, 0, len(f.Entries))
	for _, e := range f.Entries {
		if e.MemberID != "" {
			ids = append(ids, e.MemberID)
		}
	}
	return ids
}
