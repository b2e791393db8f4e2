package entities

import "fmt"

// SmokingStatus is the closed set of smoking habit labels
type SmokingStatus string

const (
	SmokingNonSmoker     SmokingStatus = "Non-smoker"
	SmokingFormerSmoker  SmokingStatus = "Former smoker"
	SmokingCurrentSmoker SmokingStatus = "Current smoker"
)

// ExerciseFrequency is the closed set of weekly exercise labels
type ExerciseFrequency string

const (
	ExerciseRarely       ExerciseFrequency = "Rarely"
	ExerciseOneToTwo     ExerciseFrequency = "1-2x / week"
	ExerciseThreeToFour  ExerciseFrequency = "3-4x / week"
	ExerciseFivePlusWeek ExerciseFrequency = "5+x / week"
)

// StressLevel is the self-reported stress tier
type StressLevel string

const (
	StressLow      StressLevel = "Low"
	StressModerate StressLevel = "Moderate"
	StressHigh     StressLevel = "High"
)

// RiskLevel is the overall risk tier derived from the three risk percentages
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Gender labels used across the dashboard
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// PastDisease is a recognized prior-condition label
type PastDisease string

const (
	DiseaseHypertension    PastDisease = "Hypertension"
	DiseaseType2Diabetes   PastDisease = "Type 2 Diabetes"
	DiseaseHeartDisease    PastDisease = "Heart Disease"
	DiseaseStroke          PastDisease = "Stroke"
	DiseaseAsthma          PastDisease = "Asthma"
	DiseaseObesity         PastDisease = "Obesity"
	DiseaseHighCholesterol PastDisease = "High Cholesterol"
	DiseaseKidneyDisease   PastDisease = "Kidney Disease"
	DiseaseThyroidDisorder PastDisease = "Thyroid Disorder"
	DiseaseNone            PastDisease = "None"
)

// MemberProfile is a validated health profile before risk derivation
type MemberProfile struct {
	FullName          string
	Email             string
	Department        string
	Gender            Gender
	Age               int
	WeightKg          float64
	BMI               float64
	Systolic          int
	Diastolic         int
	FastingGlucose    float64
	Cholesterol       float64
	SmokingStatus     SmokingStatus
	ExerciseFrequency ExerciseFrequency
	FamilyHistory     bool
	StressLevel       StressLevel
	PastDiseases      []PastDisease
}

// BloodPressure formats the profile's reading as "systolic/diastolic"
func (p *MemberProfile) BloodPressure() string {
	return fmt.Sprintf("%d/%d", p.Systolic, p.Diastolic)
}

// HasPastDisease reports whether the profile carries the given condition
func (p *MemberProfile) HasPastDisease(d PastDisease) bool {
	for _, pd := range p.PastDiseases {
		if pd == d {
			return true
		}
	}
	return false
}

// HasPastConditions reports whether any real prior condition is present
func (p *MemberProfile) HasPastConditions() bool {
	for _, pd := range p.PastDiseases {
		if pd != DiseaseNone {
			return true
		}
	}
	return false
}

// Member is the immutable dashboard record derived from a profile.
// Risk percentages and the recommendation are computed once at
// registration and never mutated afterwards.
type Member struct {
	ID                 string            `json:"id"`
	FullName           string            `json:"fullName"`
	Email              string            `json:"email"`
	Department         string            `json:"department"`
	Gender             Gender            `json:"gender"`
	Age                int               `json:"age"`
	WeightKg           float64           `json:"weightKg"`
	BMI                float64           `json:"bmi"`
	BloodPressure      string            `json:"bloodPressure"`
	FastingGlucose     float64           `json:"fastingGlucoseMgDl"`
	Cholesterol        float64           `json:"cholesterolMgDl"`
	SmokingStatus      SmokingStatus     `json:"smokingStatus"`
	ExerciseFrequency  ExerciseFrequency `json:"exerciseFrequency"`
	FamilyHistory      bool              `json:"familyHistory"`
	StressLevel        StressLevel       `json:"stressLevel"`
	PastDiseases       []PastDisease     `json:"pastDiseases"`
	HypertensionRisk   int               `json:"hypertensionRisk"`
	DiabetesRisk       int               `json:"diabetesRisk"`
	CardiovascularRisk int               `json:"cardiovascularRisk"`
	OverallRisk        RiskLevel         `json:"overallRisk"`
	Recommendation     string            `json:"recommendation"`
}

// HasPastConditions reports whether the member has any real prior condition
func (m *Member) HasPastConditions() bool {
	for _, pd := range m.PastDiseases {
		if pd != DiseaseNone {
			return true
		}
	}
	return false
}
