package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

func queryMembers() []entities.Member {
	return []entities.Member{
		{ID: "m-1", FullName: "Adaeze Okafor", Department: "Engineering", Gender: entities.GenderFemale, Age: 31, WeightKg: 62, OverallRisk: entities.RiskLow},
		{ID: "m-2", FullName: "Jane Doe", Department: "Operations", Gender: entities.GenderFemale, Age: 45, WeightKg: 80, OverallRisk: entities.RiskHigh},
		{ID: "m-3", FullName: "John Smith", Department: "Engineering", Gender: entities.GenderMale, Age: 52, WeightKg: 95, OverallRisk: entities.RiskModerate},
	}
}

func TestFilter_TextQueryMatchesNameDepartmentAndRisk(t *testing.T) {
	svc := NewMemberQueryService()
	members := queryMembers()

	byName := svc.Filter(members, MemberFilter{Query: "adaeze"}, nil)
	require.Len(t, byName, 1)
	assert.Equal(t, "m-1", byName[0].ID)

	byDept := svc.Filter(members, MemberFilter{Query: "engineering"}, nil)
	assert.Len(t, byDept, 2)

	byRisk := svc.Filter(members, MemberFilter{Query: "high"}, nil)
	require.Len(t, byRisk, 1)
	assert.Equal(t, "m-2", byRisk[0].ID)
}

func TestFilter_DemographicCriteriaCombineWithAnd(t *testing.T) {
	svc := NewMemberQueryService()
	ageMin := 40
	weightMax := 85.0

	result := svc.Filter(queryMembers(), MemberFilter{
		Gender:    "female",
		AgeMin:    &ageMin,
		WeightMax: &weightMax,
	}, nil)

	require.Len(t, result, 1)
	assert.Equal(t, "m-2", result[0].ID)
}

func TestFilter_DepartmentEqualityIgnoresCase(t *testing.T) {
	svc := NewMemberQueryService()

	result := svc.Filter(queryMembers(), MemberFilter{Department: "engineering"}, nil)

	assert.Len(t, result, 2)
}

func TestFilter_AIFilterRestrictsAndRanks(t *testing.T) {
	svc := NewMemberQueryService()
	aiFilter := &entities.AIRiskFilter{
		Disease: "Hypertension",
		Entries: []entities.AIRiskEntry{
			{MemberID: "m-3", RiskScore: 42},
			{MemberID: "m-1", RiskScore: 78},
			{EmployeeName: "Unknown Person", RiskScore: 90},
		},
	}

	result := svc.Filter(queryMembers(), MemberFilter{}, aiFilter)

	require.Len(t, result, 2)
	assert.Equal(t, "m-1", result[0].ID)
	assert.Equal(t, "m-3", result[1].ID)
}

func TestFilter_AIFilterAppliesAfterCriteria(t *testing.T) {
	svc := NewMemberQueryService()
	aiFilter := &entities.AIRiskFilter{
		Entries: []entities.AIRiskEntry{
			{MemberID: "m-1", RiskScore: 78},
			{MemberID: "m-2", RiskScore: 55},
		},
	}

	result := svc.Filter(queryMembers(), MemberFilter{Department: "Operations"}, aiFilter)

	require.Len(t, result, 1)
	assert.Equal(t, "m-2", result[0].ID)
}

func TestDepartments_SortedDistinct(t *testing.T) {
	svc := NewMemberQueryService()

	departments := svc.Departments(queryMembers())

	assert.Equal(t, []string{"Engineering", "Operations"}, departments)
}
