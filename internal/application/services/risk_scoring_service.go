package services

import (
	"math"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

// RiskScores holds the three derived risk percentages plus the overall
// tier and recommendation for a profile.
type RiskScores struct {
	Hypertension   int
	Diabetes       int
	Cardiovascular int
	Overall        entities.RiskLevel
	Recommendation string
}

// RiskScoringService derives chronic-disease risk percentages from a
// member profile. Scoring is deterministic: the same profile always
// produces the same scores.
type RiskScoringService struct{}

// NewRiskScoringService creates a new risk scoring service
func NewRiskScoringService() *RiskScoringService {
	return &RiskScoringService{}
}

var hypertensionStressTerm = map[entities.StressLevel]float64{
	entities.StressHigh:     12,
	entities.StressModerate: 6,
	entities.StressLow:      2,
}

var hypertensionSmokingTerm = map[entities.SmokingStatus]float64{
	entities.SmokingCurrentSmoker: 10,
	entities.SmokingFormerSmoker:  4,
	entities.SmokingNonSmoker:     0,
}

var diabetesExerciseTerm = map[entities.ExerciseFrequency]float64{
	entities.ExerciseRarely:       10,
	entities.ExerciseOneToTwo:     5,
	entities.ExerciseThreeToFour:  2,
	entities.ExerciseFivePlusWeek: 0,
}

var cardioSmokingTerm = map[entities.SmokingStatus]float64{
	entities.SmokingCurrentSmoker: 12,
	entities.SmokingFormerSmoker:  5,
	entities.SmokingNonSmoker:     0,
}

var cardioStressTerm = map[entities.StressLevel]float64{
	entities.StressHigh:     8,
	entities.StressModerate: 4,
	entities.StressLow:      0,
}

// Score computes the three risk percentages, the overall tier, and the
// recommendation for a profile.
func (s *RiskScoringService) Score(profile *entities.MemberProfile) RiskScores {
	hypertension := s.hypertensionRisk(profile)
	diabetes := s.diabetesRisk(profile)
	cardiovascular := s.cardiovascularRisk(profile)

	overall := OverallRisk(hypertension, diabetes, cardiovascular)

	return RiskScores{
		Hypertension:   hypertension,
		Diabetes:       diabetes,
		Cardiovascular: cardiovascular,
		Overall:        overall,
		Recommendation: Recommendation(overall, profile.HasPastConditions()),
	}
}

// BuildMember assembles an immutable member record from a scored profile
func (s *RiskScoringService) BuildMember(id string, profile *entities.MemberProfile) entities.Member {
	scores := s.Score(profile)

	pastDiseases := profile.PastDiseases
	if len(pastDiseases) == 0 {
		pastDiseases = []entities.PastDisease{entities.DiseaseNone}
	}

	return entities.Member{
		ID:                 id,
		FullName:           profile.FullName,
		Email:              profile.Email,
		Department:         profile.Department,
		Gender:             profile.Gender,
		Age:                profile.Age,
		WeightKg:           profile.WeightKg,
		BMI:                profile.BMI,
		BloodPressure:      profile.BloodPressure(),
		FastingGlucose:     profile.FastingGlucose,
		Cholesterol:        profile.Cholesterol,
		SmokingStatus:      profile.SmokingStatus,
		ExerciseFrequency:  profile.ExerciseFrequency,
		FamilyHistory:      profile.FamilyHistory,
		StressLevel:        profile.StressLevel,
		PastDiseases:       pastDiseases,
		HypertensionRisk:   scores.Hypertension,
		DiabetesRisk:       scores.Diabetes,
		CardiovascularRisk: scores.Cardiovascular,
		OverallRisk:        scores.Overall,
		Recommendation:     scores.Recommendation,
	}
}

func (s *RiskScoringService) hypertensionRisk(p *entities.MemberProfile) int {
	score := float64(p.Age-20)*1.2 +
		(p.BMI-20)*2 +
		float64(p.Systolic-110)*0.8 +
		hypertensionStressTerm[p.StressLevel] +
		hypertensionSmokingTerm[p.SmokingStatus]

	if p.FamilyHistory {
		score += 8
	}
	if p.HasPastDisease(entities.DiseaseHypertension) {
		score += 15
	}

	return clampScore(score, 5, 95)
}

func (s *RiskScoringService) diabetesRisk(p *entities.MemberProfile) int {
	score := (p.FastingGlucose-80)*1.05 +
		(p.BMI-21)*1.8 +
		float64(p.Age-22)*0.55 +
		diabetesExerciseTerm[p.ExerciseFrequency]

	if p.FamilyHistory {
		score += 9
	}
	if p.HasPastDisease(entities.DiseaseType2Diabetes) {
		score += 20
	}
	if p.HasPastDisease(entities.DiseaseObesity) {
		score += 10
	}

	return clampScore(score, 4, 94)
}

func (s *RiskScoringService) cardiovascularRisk(p *entities.MemberProfile) int {
	score := (p.Cholesterol-150)*0.55 +
		float64(p.Systolic-110)*0.7 +
		float64(p.Age-22)*0.65 +
		cardioSmokingTerm[p.SmokingStatus] +
		cardioStressTerm[p.StressLevel]

	if p.HasPastDisease(entities.DiseaseHeartDisease) {
		score += 25
	}
	if p.HasPastDisease(entities.DiseaseStroke) {
		score += 20
	}
	if p.HasPastDisease(entities.DiseaseHighCholesterol) {
		score += 12
	}

	return clampScore(score, 6, 93)
}

// OverallRisk tiers the highest of the three percentages
func OverallRisk(hypertension, diabetes, cardiovascular int) entities.RiskLevel {
	highest := hypertension
	if diabetes > highest {
		highest = diabetes
	}
	if cardiovascular > highest {
		highest = cardiovascular
	}

	switch {
	case highest >= 67:
		return entities.RiskHigh
	case highest >= 40:
		return entities.RiskModerate
	default:
		return entities.RiskLow
	}
}

// Recommendation returns the fixed wellness recommendation for a tier
// and prior-condition status.
func Recommendation(overall entities.RiskLevel, hasPastConditions bool) string {
	switch overall {
	case entities.RiskHigh:
		if hasPastConditions {
			return "URGENT: Schedule immediate clinic referral. Enroll in intensive wellness monitoring program with weekly check-ins. Prior conditions require specialized attention."
		}
		return "Refer to partner clinic and enroll in tracked wellness intervention with bi-weekly monitoring."
	case entities.RiskModerate:
		if hasPastConditions {
			return "Assign personalized fitness and diet plan with bi-weekly check-ins. Monitor prior conditions closely."
		}
		return "Assign a personalized fitness and diet plan with monthly check-ins."
	default:
		if hasPastConditions {
			return "Maintain current lifestyle, review prior conditions at routine checkups, and send quarterly prevention tips."
		}
		return "Maintain current lifestyle and send quarterly prevention tips."
	}
}

func clampScore(score, min, max float64) int {
	rounded := math.Round(score)
	if rounded < min {
		rounded = min
	}
	if rounded > max {
		rounded = max
	}
	return int(rounded)
}
