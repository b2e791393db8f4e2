package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

func TestBuildRoster_Deterministic(t *testing.T) {
	svc := NewMemberSeedService(NewRiskScoringService())

	first := svc.BuildRoster(DefaultSeedCount)
	second := svc.BuildRoster(DefaultSeedCount)

	assert.Equal(t, first, second)
}

func TestBuildRoster_SizeAndUniqueIDs(t *testing.T) {
	svc := NewMemberSeedService(NewRiskScoringService())

	roster := svc.BuildRoster(DefaultSeedCount)

	require.Len(t, roster, DefaultSeedCount)

	seen := make(map[string]struct{}, len(roster))
	for _, m := range roster {
		_, dup := seen[m.ID]
		assert.False(t, dup, "duplicate id %s", m.ID)
		seen[m.ID] = struct{}{}
	}
}

func TestBuildRoster_FirstMemberProfile(t *testing.T) {
	svc := NewMemberSeedService(NewRiskScoringService())

	m := svc.BuildRoster(1)[0]

	assert.Equal(t, "Adaeze Okafor", m.FullName)
	assert.Equal(t, "adaeze-okafor@synchealth.example", m.Email)
	assert.Equal(t, "Engineering", m.Department)
	assert.Equal(t, 22, m.Age)
	assert.Equal(t, 18.6, m.BMI)
	assert.Equal(t, "104/66", m.BloodPressure)
	assert.Equal(t, entities.SmokingCurrentSmoker, m.SmokingStatus)
	assert.True(t, m.FamilyHistory)
	assert.Equal(t, []entities.PastDisease{entities.DiseaseHypertension}, m.PastDiseases)
}

func TestBuildRoster_ScoresWithinClamps(t *testing.T) {
	svc := NewMemberSeedService(NewRiskScoringService())

	for _, m := range svc.BuildRoster(DefaultSeedCount) {
		assert.GreaterOrEqual(t, m.HypertensionRisk, 5)
		assert.LessOrEqual(t, m.HypertensionRisk, 95)
		assert.GreaterOrEqual(t, m.DiabetesRisk, 4)
		assert.LessOrEqual(t, m.DiabetesRisk, 94)
		assert.GreaterOrEqual(t, m.CardiovascularRisk, 6)
		assert.LessOrEqual(t, m.CardiovascularRisk, 93)
		assert.NotEmpty(t, m.OverallRisk)
		assert.NotEmpty(t, m.Recommendation)
	}
}

func TestBuildRoster_DefaultCountWhenNonPositive(t *testing.T) {
	svc := NewMemberSeedService(NewRiskScoringService())

	assert.Len(t, svc.BuildRoster(0), DefaultSeedCount)
}
