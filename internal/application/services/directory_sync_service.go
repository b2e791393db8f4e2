package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/internal/domain/providers"
	"github.com/synchealth/wellness-backend/internal/domain/repositories"
	"github.com/synchealth/wellness-backend/internal/infrastructure/observability"
	"github.com/synchealth/wellness-backend/pkg/utils"
)

// Defaults applied when the directory omits a health field
const (
	defaultAge         = 35
	defaultBMI         = 24.0
	defaultWeightKg    = 70.0
	defaultSystolic    = 120
	defaultDiastolic   = 80
	defaultGlucose     = 95.0
	defaultCholesterol = 180.0
	defaultStressScale = 5.0
)

// DirectorySyncService pulls the corporate employee directory, maps
// each employee onto a health profile with documented defaults, scores
// it, and replaces the member registry with the result. Last sync wins.
type DirectorySyncService struct {
	directory providers.DirectoryProvider
	members   repositories.MemberRepository
	scoring   *RiskScoringService
	now       func() time.Time
}

// NewDirectorySyncService creates a new directory sync service
func NewDirectorySyncService(
	directory providers.DirectoryProvider,
	members repositories.MemberRepository,
	scoring *RiskScoringService,
) *DirectorySyncService {
	return &DirectorySyncService{
		directory: directory,
		members:   members,
		scoring:   scoring,
		now:       time.Now,
	}
}

// Sync fetches the directory and replaces the registry. Returns the
// number of members registered.
func (s *DirectorySyncService) Sync(ctx context.Context) (int, error) {
	ctx, span := observability.StartSpan(ctx, "directory.sync")
	defer span.End()

	employees, err := s.directory.FetchAllEmployees(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	members := make([]entities.Member, 0, len(employees))
	for i, employee := range employees {
		members = append(members, s.mapEmployee(employee, i))
	}

	if err := s.members.ReplaceAll(ctx, members); err != nil {
		observability.RecordError(span, err)
		return 0, err
	}

	observability.LoggerFromContext(ctx).Info().
		Int("members", len(members)).
		Msg("directory sync completed")

	return len(members), nil
}

// mapEmployee converts one directory employee into a scored member,
// substituting defaults for every absent health field.
func (s *DirectorySyncService) mapEmployee(employee entities.RemoteEmployee, index int) entities.Member {
	health := employee.Health
	if health == nil {
		health = &entities.RemoteHealthRecord{}
	}

	bmi := floatOrDefault(health.BMI, defaultBMI)
	weight := defaultWeightForBMI(bmi)
	if health.WeightKg != nil && *health.WeightKg > 0 {
		weight = *health.WeightKg
	}
	if weight <= 0 {
		weight = defaultWeightKg
	}

	systolic := int(math.Round(floatOrDefault(health.SystolicBP, defaultSystolic)))
	diastolic := int(math.Round(floatOrDefault(health.DiastolicBP, defaultDiastolic)))

	name := strings.TrimSpace(employee.Name)
	if name == "" {
		name = fmt.Sprintf("Employee %d", index+1)
	}

	id := strings.TrimSpace(employee.EmployeeID)
	if id == "" {
		id = fmt.Sprintf("employee-%d", index+1)
	}
	slug := utils.Slugify(id)
	if slug == "" {
		slug = fmt.Sprintf("employee-%d", index+1)
	}

	department := strings.TrimSpace(employee.Department)
	if department == "" {
		department = "Unassigned"
	}

	profile := &entities.MemberProfile{
		FullName:          name,
		Email:             slug + "@company.com",
		Department:        department,
		Gender:            mapRemoteGender(employee.Gender),
		Age:               s.ageFromDOB(employee.DOB),
		WeightKg:          weight,
		BMI:               bmi,
		Systolic:          systolic,
		Diastolic:         diastolic,
		FastingGlucose:    floatOrDefault(health.FastingGlucose, defaultGlucose),
		Cholesterol:       floatOrDefault(health.Cholesterol, defaultCholesterol),
		SmokingStatus:     mapRemoteSmoking(health),
		ExerciseFrequency: mapExerciseDays(floatOrDefault(health.ExerciseDaysPerWeek, 0)),
		FamilyHistory:     anyFamilyHistory(health.FamilyHistory),
		StressLevel:       mapStressScale(floatOrDefault(health.StressLevel1To10, defaultStressScale)),
		PastDiseases:      remotePastDiseases(health),
	}

	return s.scoring.BuildMember(id, profile)
}

// ageFromDOB computes age in whole years, clamped to 18..100
func (s *DirectorySyncService) ageFromDOB(dob string) int {
	trimmed := strings.TrimSpace(dob)
	if trimmed == "" {
		return defaultAge
	}

	parsed, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, trimmed)
		if err != nil {
			return defaultAge
		}
	}

	today := s.now()
	age := today.Year() - parsed.Year()
	if today.Month() < parsed.Month() ||
		(today.Month() == parsed.Month() && today.Day() < parsed.Day()) {
		age--
	}

	if age < 18 {
		return 18
	}
	if age > 100 {
		return 100
	}
	return age
}

func mapRemoteGender(raw string) entities.Gender {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "f") {
		return entities.GenderFemale
	}
	return entities.GenderMale
}

func mapRemoteSmoking(health *entities.RemoteHealthRecord) entities.SmokingStatus {
	if health.Smokes || floatOrDefault(health.CigarettesPerDay, 0) > 0 {
		return entities.SmokingCurrentSmoker
	}
	return entities.SmokingNonSmoker
}

func mapExerciseDays(daysPerWeek float64) entities.ExerciseFrequency {
	switch {
	case daysPerWeek <= 0:
		return entities.ExerciseRarely
	case daysPerWeek <= 2:
		return entities.ExerciseOneToTwo
	case daysPerWeek <= 4:
		return entities.ExerciseThreeToFour
	default:
		return entities.ExerciseFivePlusWeek
	}
}

func mapStressScale(level float64) entities.StressLevel {
	switch {
	case level >= 7:
		return entities.StressHigh
	case level >= 4:
		return entities.StressModerate
	default:
		return entities.StressLow
	}
}

func anyFamilyHistory(flags map[string]bool) bool {
	for _, v := range flags {
		if v {
			return true
		}
	}
	return false
}

func remotePastDiseases(health *entities.RemoteHealthRecord) []entities.PastDisease {
	conditions := make([]string, 0, len(health.PastConditions)+len(health.CurrentConditions)+len(health.RiskFlags))
	conditions = append(conditions, health.PastConditions...)
	conditions = append(conditions, health.CurrentConditions...)
	conditions = append(conditions, health.RiskFlags...)
	return MapConditions(conditions)
}

func floatOrDefault(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
