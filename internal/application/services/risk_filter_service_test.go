package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

func newFilterService() *RiskFilterService {
	return NewRiskFilterService(NewTieredMemberMatcher())
}

func filterMembers() []entities.Member {
	return []entities.Member{
		{ID: "emp-1", FullName: "Jane Doe"},
		{ID: "emp-2", FullName: "John Smith"},
		{ID: "emp-3", FullName: "Adaeze Okafor"},
	}
}

func TestResolve_StructuredResponse(t *testing.T) {
	svc := newFilterService()
	raw := `{"condition":"hypertension","scored_employees":[
		{"employee_id":"emp-1","risk_probability":0.82,"confidence":"high"},
		{"employee_id":"emp-2","risk_probability":0.45},
		{"employee_id":"emp-9","risk_probability":0.6},
		{"employee_id":"emp-3","risk_probability":0.1}
	]}`

	filter := svc.Resolve(context.Background(), raw, "who is at risk of hypertension?", filterMembers())

	require.NotNil(t, filter)
	assert.Equal(t, "Hypertension", filter.Disease)
	require.Len(t, filter.Entries, 3)

	// Sorted descending, one decimal scores
	assert.Equal(t, 82.0, filter.Entries[0].RiskScore)
	assert.Equal(t, "Jane Doe", filter.Entries[0].EmployeeName)
	assert.Equal(t, "emp-1", filter.Entries[0].MemberID)
	assert.Equal(t, "high", filter.Entries[0].Confidence)

	// Unknown employee id kept without a member id
	assert.Equal(t, 60.0, filter.Entries[1].RiskScore)
	assert.Empty(t, filter.Entries[1].MemberID)
	assert.Equal(t, "emp-9", filter.Entries[1].EmployeeName)

	// emp-3 at 10% falls below the threshold
	assert.Equal(t, 45.0, filter.Entries[2].RiskScore)
}

func TestResolve_StructuredIDMatchIgnoresCase(t *testing.T) {
	svc := newFilterService()
	raw := `{"condition":"diabetes","scored_employees":[{"employee_id":"EMP-1","risk_probability":0.5}]}`

	filter := svc.Resolve(context.Background(), raw, "", filterMembers())

	require.NotNil(t, filter)
	assert.Equal(t, "emp-1", filter.Entries[0].MemberID)
}

func TestResolve_ProbabilityKeepsOneDecimal(t *testing.T) {
	svc := newFilterService()
	raw := `{"condition":"diabetes","scored_employees":[{"employee_id":"emp-1","risk_probability":0.823}]}`

	filter := svc.Resolve(context.Background(), raw, "", filterMembers())

	require.NotNil(t, filter)
	assert.Equal(t, 82.3, filter.Entries[0].RiskScore)
}

func TestResolve_FreeTextListing(t *testing.T) {
	svc := newFilterService()
	raw := "Employees at risk:\n1. Jane Doe - 45%\n2. John Smith - 38%\n3. Unknown Person - 55%\n4. Adaeze Okafor - 12%"

	filter := svc.Resolve(context.Background(), raw, "who is at risk of diabetes?", filterMembers())

	require.NotNil(t, filter)
	assert.Equal(t, "Diabetes", filter.Disease)
	require.Len(t, filter.Entries, 3)

	assert.Equal(t, "Unknown Person", filter.Entries[0].EmployeeName)
	assert.Empty(t, filter.Entries[0].MemberID)
	assert.Equal(t, 55.0, filter.Entries[0].RiskScore)

	assert.Equal(t, "Jane Doe", filter.Entries[1].EmployeeName)
	assert.Equal(t, "emp-1", filter.Entries[1].MemberID)

	assert.Equal(t, raw, filter.RawResponse)
}

func TestResolve_FreeTextTableRows(t *testing.T) {
	svc := newFilterService()
	raw := "| Name | Risk |\n| Jane Doe | 72% |\n| John Smith | 31% |"

	filter := svc.Resolve(context.Background(), raw, "hypertension risk", filterMembers())

	require.NotNil(t, filter)
	require.Len(t, filter.Entries, 2)
	assert.Equal(t, "emp-1", filter.Entries[0].MemberID)
	assert.Equal(t, 72.0, filter.Entries[0].RiskScore)
}

func TestResolve_FreeTextParenthetical(t *testing.T) {
	svc := newFilterService()
	raw := "Jane Doe (45%)\nJohn Smith (38%)"

	filter := svc.Resolve(context.Background(), raw, "", filterMembers())

	require.NotNil(t, filter)
	require.Len(t, filter.Entries, 2)
	assert.Equal(t, 45.0, filter.Entries[0].RiskScore)
}

func TestResolve_ConversationalTextIsNil(t *testing.T) {
	svc := newFilterService()

	filter := svc.Resolve(context.Background(), "I can only answer health-related questions.", "hello", filterMembers())

	assert.Nil(t, filter)
}

func TestResolve_SinglePercentTokenIsNil(t *testing.T) {
	svc := newFilterService()

	filter := svc.Resolve(context.Background(), "Roughly 45% of staff exercise weekly.", "stats", filterMembers())

	assert.Nil(t, filter)
}

func TestResolve_AllBelowThresholdIsNil(t *testing.T) {
	svc := newFilterService()
	raw := `{"condition":"stroke","scored_employees":[
		{"employee_id":"emp-1","risk_probability":0.1},
		{"employee_id":"emp-2","risk_probability":0.29}
	]}`

	filter := svc.Resolve(context.Background(), raw, "", filterMembers())

	assert.Nil(t, filter)
}

func TestResolve_CapsAtTenSortedDescending(t *testing.T) {
	svc := newFilterService()

	raw := "Risk listing:\n"
	for i := 1; i <= 15; i++ {
		raw += fmt.Sprintf("%d. Person Number%d - %d%%\n", i, i, 30+i)
	}

	filter := svc.Resolve(context.Background(), raw, "", filterMembers())

	require.NotNil(t, filter)
	require.Len(t, filter.Entries, MaxFilterEntries)
	for i := 1; i < len(filter.Entries); i++ {
		assert.GreaterOrEqual(t, filter.Entries[i-1].RiskScore, filter.Entries[i].RiskScore)
	}
	assert.Equal(t, 45.0, filter.Entries[0].RiskScore)
}

func TestResolve_HeaderRowsRejected(t *testing.T) {
	svc := newFilterService()
	raw := "| Name | 99% |\n| Jane Doe | 72% |\n| John Smith | 31% |"

	filter := svc.Resolve(context.Background(), raw, "", filterMembers())

	require.NotNil(t, filter)
	require.Len(t, filter.Entries, 2)
	assert.Equal(t, "Jane Doe", filter.Entries[0].EmployeeName)
}

func TestExtractDiseaseName(t *testing.T) {
	assert.Equal(t, "Hypertension", ExtractDiseaseName("employees at risk of hypertension"))
	assert.Equal(t, "Cardiovascular Disease", ExtractDiseaseName("cardiovascular screening"))
	assert.Equal(t, "Liver Disease", ExtractDiseaseName("who is at risk of liver disease?"))
	assert.Equal(t, "Health Risk", ExtractDiseaseName("general wellbeing"))
}

func TestFormatForChat_PlainText(t *testing.T) {
	svc := newFilterService()

	msg := svc.FormatForChat("Please ask a health question.", filterMembers())

	assert.Equal(t, "Please ask a health question.", msg)
}

func TestFormatForChat_Structured(t *testing.T) {
	svc := newFilterService()
	raw := `{"condition":"diabetes","scored_employees":[{"employee_id":"emp-1","risk_probability":0.82,"evidence":["high glucose"]}]}`

	msg := svc.FormatForChat(raw, filterMembers())

	assert.Contains(t, msg, "Jane Doe")
	assert.Contains(t, msg, "82%")
	assert.Contains(t, msg, "high glucose")
}
