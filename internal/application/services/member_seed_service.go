package services

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/pkg/utils"
)

// DefaultSeedCount is the roster size generated when no directory is
// configured.
const DefaultSeedCount = 50

var seedFirstNames = []string{
	"Adaeze", "Chinedu", "Ngozi", "Emeka", "Funmilayo",
	"Tunde", "Amara", "Obinna", "Yemisi", "Ifeanyi",
	"Bisi", "Kelechi", "Halima", "Segun", "Zainab",
	"Uche", "Folake", "Musa", "Chioma", "Dapo",
}

var seedLastNames = []string{
	"Okafor", "Adeyemi", "Eze", "Balogun", "Okonkwo",
	"Abubakar", "Oladipo", "Nwosu", "Adebayo", "Ibrahim",
	"Ogunleye", "Chukwu", "Bello", "Afolabi", "Onyeka",
}

var seedDepartments = []string{
	"Engineering", "Operations", "Finance", "People", "Marketing", "Sales",
}

// Rota of prior conditions applied every seventh member
var seedPastDiseases = []entities.PastDisease{
	entities.DiseaseHypertension,
	entities.DiseaseType2Diabetes,
	entities.DiseaseHighCholesterol,
	entities.DiseaseAsthma,
	entities.DiseaseObesity,
}

var seedExercise = []entities.ExerciseFrequency{
	entities.ExerciseRarely,
	entities.ExerciseOneToTwo,
	entities.ExerciseThreeToFour,
	entities.ExerciseFivePlusWeek,
}

var seedStress = []entities.StressLevel{
	entities.StressLow,
	entities.StressModerate,
	entities.StressHigh,
}

// MemberSeedService builds a deterministic demo roster. The same
// index always produces the same member, so restarts and tests see a
// stable dataset without any RNG.
type MemberSeedService struct {
	scoring *RiskScoringService
}

// NewMemberSeedService creates a new seed service
func NewMemberSeedService(scoring *RiskScoringService) *MemberSeedService {
	return &MemberSeedService{scoring: scoring}
}

// BuildRoster generates count members with scored risk profiles
func (s *MemberSeedService) BuildRoster(count int) []entities.Member {
	if count <= 0 {
		count = DefaultSeedCount
	}

	members := make([]entities.Member, 0, count)
	for i := 0; i < count; i++ {
		profile := s.buildProfile(i)
		members = append(members, s.scoring.BuildMember(seedMemberID(profile.FullName), profile))
	}
	return members
}

func (s *MemberSeedService) buildProfile(i int) *entities.MemberProfile {
	first := seedFirstNames[i%len(seedFirstNames)]
	last := seedLastNames[(i/len(seedFirstNames)+i)%len(seedLastNames)]
	name := first + " " + last

	bmi := math.Round((18.6+math.Mod(float64(i)*1.65, 13.8))*10) / 10

	gender := entities.GenderFemale
	if i%2 == 1 {
		gender = entities.GenderMale
	}

	smoking := entities.SmokingNonSmoker
	switch {
	case i%8 == 0:
		smoking = entities.SmokingCurrentSmoker
	case i%5 == 0:
		smoking = entities.SmokingFormerSmoker
	}

	past := []entities.PastDisease{entities.DiseaseNone}
	if i%7 == 0 {
		past = []entities.PastDisease{seedPastDiseases[(i/7)%len(seedPastDiseases)]}
	}

	return &entities.MemberProfile{
		FullName:          name,
		Email:             fmt.Sprintf("%s@synchealth.example", utils.Slugify(name)),
		Department:        seedDepartments[i%len(seedDepartments)],
		Gender:            gender,
		Age:               22 + (i*3)%28,
		WeightKg:          math.Round(bmi * 1.7 * 1.7),
		BMI:               bmi,
		Systolic:          104 + (i*5)%48,
		Diastolic:         66 + (i*3)%30,
		FastingGlucose:    float64(76 + (i*4)%58),
		Cholesterol:       float64(145 + (i*7)%120),
		SmokingStatus:     smoking,
		ExerciseFrequency: seedExercise[i%len(seedExercise)],
		FamilyHistory:     i%3 == 0,
		StressLevel:       seedStress[(i+1)%len(seedStress)],
		PastDiseases:      past,
	}
}

// seedMemberID derives a stable UUID from the member name
func seedMemberID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("wellness-member:"+name)).String()
}
