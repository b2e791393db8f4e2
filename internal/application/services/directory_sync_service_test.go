package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

type stubDirectory struct {
	employees []entities.RemoteEmployee
	err       error
}

func (s *stubDirectory) FetchAllEmployees(ctx context.Context) ([]entities.RemoteEmployee, error) {
	return s.employees, s.err
}

type captureRepo struct {
	replaced []entities.Member
}

func (c *captureRepo) ReplaceAll(ctx context.Context, members []entities.Member) error {
	c.replaced = members
	return nil
}

func (c *captureRepo) List(ctx context.Context) ([]entities.Member, error) {
	return c.replaced, nil
}

func (c *captureRepo) GetByID(ctx context.Context, id string) (*entities.Member, error) {
	return nil, errors.New("not implemented")
}

func (c *captureRepo) Count(ctx context.Context) (int, error) {
	return len(c.replaced), nil
}

func floatPtr(v float64) *float64 { return &v }

func newSyncService(dir *stubDirectory, repo *captureRepo) *DirectorySyncService {
	svc := NewDirectorySyncService(dir, repo, NewRiskScoringService())
	svc.now = func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestSync_MapsFullHealthRecord(t *testing.T) {
	dir := &stubDirectory{employees: []entities.RemoteEmployee{{
		EmployeeID: "emp-1",
		Name:       "Jane Doe",
		Department: "Engineering",
		Gender:     "female",
		DOB:        "1985-03-10",
		Health: &entities.RemoteHealthRecord{
			BMI:                 floatPtr(27.5),
			WeightKg:            floatPtr(78),
			SystolicBP:          floatPtr(135),
			DiastolicBP:         floatPtr(88),
			FastingGlucose:      floatPtr(104),
			Cholesterol:         floatPtr(210),
			Smokes:              true,
			ExerciseDaysPerWeek: floatPtr(1),
			StressLevel1To10:    floatPtr(8),
			FamilyHistory:       map[string]bool{"diabetes": true},
			PastConditions:      []string{"high blood pressure"},
		},
	}}}
	repo := &captureRepo{}

	count, err := newSyncService(dir, repo).Sync(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, repo.replaced, 1)

	m := repo.replaced[0]
	assert.Equal(t, "emp-1", m.ID)
	assert.Equal(t, "emp-1@company.com", m.Email)
	assert.Equal(t, entities.GenderFemale, m.Gender)
	assert.Equal(t, 40, m.Age)
	assert.Equal(t, 27.5, m.BMI)
	assert.Equal(t, "135/88", m.BloodPressure)
	assert.Equal(t, entities.SmokingCurrentSmoker, m.SmokingStatus)
	assert.Equal(t, entities.ExerciseOneToTwo, m.ExerciseFrequency)
	assert.Equal(t, entities.StressHigh, m.StressLevel)
	assert.True(t, m.FamilyHistory)
	assert.Equal(t, []entities.PastDisease{entities.DiseaseHypertension}, m.PastDiseases)
	assert.NotZero(t, m.HypertensionRisk)
}

func TestSync_AppliesDefaultsForMissingHealth(t *testing.T) {
	dir := &stubDirectory{employees: []entities.RemoteEmployee{{
		Name: "John Smith",
	}}}
	repo := &captureRepo{}

	_, err := newSyncService(dir, repo).Sync(context.Background())

	require.NoError(t, err)
	require.Len(t, repo.replaced, 1)

	m := repo.replaced[0]
	assert.Equal(t, "employee-1", m.ID)
	assert.Equal(t, 35, m.Age)
	assert.Equal(t, 24.0, m.BMI)
	assert.Equal(t, "120/80", m.BloodPressure)
	assert.Equal(t, 180.0, m.Cholesterol)
	assert.Equal(t, 95.0, m.FastingGlucose)
	assert.Equal(t, entities.SmokingNonSmoker, m.SmokingStatus)
	assert.Equal(t, entities.ExerciseRarely, m.ExerciseFrequency)
	assert.Equal(t, entities.StressModerate, m.StressLevel)
	assert.Equal(t, "Unassigned", m.Department)
	assert.Equal(t, []entities.PastDisease{entities.DiseaseNone}, m.PastDiseases)
}

func TestSync_AgeClampedToBounds(t *testing.T) {
	dir := &stubDirectory{employees: []entities.RemoteEmployee{
		{EmployeeID: "young", Name: "Too Young", DOB: "2015-01-01"},
		{EmployeeID: "old", Name: "Very Senior", DOB: "1900-01-01"},
	}}
	repo := &captureRepo{}

	_, err := newSyncService(dir, repo).Sync(context.Background())

	require.NoError(t, err)
	require.Len(t, repo.replaced, 2)
	assert.Equal(t, 18, repo.replaced[0].Age)
	assert.Equal(t, 100, repo.replaced[1].Age)
}

func TestSync_DirectoryErrorPropagates(t *testing.T) {
	dir := &stubDirectory{err: errors.New("unreachable")}
	repo := &captureRepo{}

	_, err := newSyncService(dir, repo).Sync(context.Background())

	require.Error(t, err)
	assert.Empty(t, repo.replaced)
}

func TestSync_ReplacesPreviousRoster(t *testing.T) {
	repo := &captureRepo{}
	first := &stubDirectory{employees: []entities.RemoteEmployee{
		{EmployeeID: "emp-1", Name: "Jane Doe"},
		{EmployeeID: "emp-2", Name: "John Smith"},
	}}
	second := &stubDirectory{employees: []entities.RemoteEmployee{
		{EmployeeID: "emp-3", Name: "Adaeze Okafor"},
	}}

	_, err := newSyncService(first, repo).Sync(context.Background())
	require.NoError(t, err)
	count, err := newSyncService(second, repo).Sync(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	require.Len(t, repo.replaced, 1)
	assert.Equal(t, "emp-3", repo.replaced[0].ID)
}
