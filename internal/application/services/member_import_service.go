package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/pkg/utils"
)

// Canonical spreadsheet fields in reporting order
const (
	fieldFullName      = "full name"
	fieldEmail         = "email"
	fieldDepartment    = "department"
	fieldGender        = "gender"
	fieldAge           = "age"
	fieldWeight        = "weight"
	fieldBMI           = "bmi"
	fieldBloodPressure = "blood pressure"
	fieldGlucose       = "fasting glucose"
	fieldCholesterol   = "cholesterol"
	fieldSmoking       = "smoking status"
	fieldExercise      = "exercise frequency"
	fieldFamilyHistory = "family history"
	fieldStress        = "stress level"
	fieldPastDiseases  = "past diseases"
)

// headerAliases maps normalized header cells to canonical fields.
// Keys are produced by utils.NormalizeKey, so punctuation and casing
// in the uploaded sheet never matter.
var headerAliases = map[string]string{
	"fullname":     fieldFullName,
	"name":         fieldFullName,
	"employeename": fieldFullName,
	"employee":     fieldFullName,

	"email":        fieldEmail,
	"emailaddress": fieldEmail,
	"workemail":    fieldEmail,

	"department": fieldDepartment,
	"dept":       fieldDepartment,
	"team":       fieldDepartment,
	"unit":       fieldDepartment,

	"gender": fieldGender,
	"sex":    fieldGender,

	"age":      fieldAge,
	"ageyears": fieldAge,

	"weight":   fieldWeight,
	"weightkg": fieldWeight,

	"bmi":           fieldBMI,
	"bodymassindex": fieldBMI,

	"bloodpressure":     fieldBloodPressure,
	"bp":                fieldBloodPressure,
	"bloodpressuremmhg": fieldBloodPressure,

	"fastingglucose":      fieldGlucose,
	"glucose":             fieldGlucose,
	"bloodsugar":          fieldGlucose,
	"fastingbloodglucose": fieldGlucose,
	"fastingglucosemgdl":  fieldGlucose,

	"cholesterol":      fieldCholesterol,
	"totalcholesterol": fieldCholesterol,
	"cholesterolmgdl":  fieldCholesterol,

	"smokingstatus": fieldSmoking,
	"smoking":       fieldSmoking,
	"smoker":        fieldSmoking,

	"exercisefrequency": fieldExercise,
	"exercise":          fieldExercise,
	"workoutfrequency":  fieldExercise,
	"activity":          fieldExercise,

	"familyhistory": fieldFamilyHistory,
	"famhistory":    fieldFamilyHistory,

	"stresslevel": fieldStress,
	"stress":      fieldStress,

	"pastdiseases":    fieldPastDiseases,
	"pastconditions":  fieldPastDiseases,
	"medicalhistory":  fieldPastDiseases,
	"priorconditions": fieldPastDiseases,
	"conditions":      fieldPastDiseases,
}

var requiredFields = []string{
	fieldFullName,
	fieldGender,
	fieldAge,
	fieldBMI,
	fieldBloodPressure,
	fieldGlucose,
	fieldCholesterol,
	fieldSmoking,
	fieldExercise,
	fieldFamilyHistory,
	fieldStress,
}

var genderAliases = map[string]entities.Gender{
	"male":   entities.GenderMale,
	"m":      entities.GenderMale,
	"man":    entities.GenderMale,
	"female": entities.GenderFemale,
	"f":      entities.GenderFemale,
	"woman":  entities.GenderFemale,
}

var smokingAliases = map[string]entities.SmokingStatus{
	"nonsmoker":     entities.SmokingNonSmoker,
	"never":         entities.SmokingNonSmoker,
	"no":            entities.SmokingNonSmoker,
	"none":          entities.SmokingNonSmoker,
	"formersmoker":  entities.SmokingFormerSmoker,
	"former":        entities.SmokingFormerSmoker,
	"exsmoker":      entities.SmokingFormerSmoker,
	"quit":          entities.SmokingFormerSmoker,
	"currentsmoker": entities.SmokingCurrentSmoker,
	"current":       entities.SmokingCurrentSmoker,
	"smoker":        entities.SmokingCurrentSmoker,
	"yes":           entities.SmokingCurrentSmoker,
	"daily":         entities.SmokingCurrentSmoker,
}

var exerciseAliases = map[string]entities.ExerciseFrequency{
	"rarely":    entities.ExerciseRarely,
	"never":     entities.ExerciseRarely,
	"none":      entities.ExerciseRarely,
	"sedentary": entities.ExerciseRarely,
	"12xweek":   entities.ExerciseOneToTwo,
	"12x":       entities.ExerciseOneToTwo,
	"12":        entities.ExerciseOneToTwo,
	"1to2xweek": entities.ExerciseOneToTwo,
	"34xweek":   entities.ExerciseThreeToFour,
	"34x":       entities.ExerciseThreeToFour,
	"34":        entities.ExerciseThreeToFour,
	"3to4xweek": entities.ExerciseThreeToFour,
	"5xweek":    entities.ExerciseFivePlusWeek,
	"5x":        entities.ExerciseFivePlusWeek,
	"5plus":     entities.ExerciseFivePlusWeek,
	"everyday":  entities.ExerciseFivePlusWeek,
}

var familyHistoryAliases = map[string]bool{
	"yes":   true,
	"y":     true,
	"true":  true,
	"1":     true,
	"no":    false,
	"n":     false,
	"false": false,
	"0":     false,
	"none":  false,
}

var stressAliases = map[string]entities.StressLevel{
	"low":      entities.StressLow,
	"moderate": entities.StressModerate,
	"medium":   entities.StressModerate,
	"mid":      entities.StressModerate,
	"high":     entities.StressHigh,
}

// ImportResult holds the outcome of a spreadsheet import
type ImportResult struct {
	Members []entities.Member
	Errors  []string
}

// MemberImportService parses uploaded spreadsheet rows into scored
// member records. Each row is validated independently; a failed row
// produces one error and never blocks the rest of the batch.
type MemberImportService struct {
	scoring *RiskScoringService
}

// NewMemberImportService creates a new member import service
func NewMemberImportService(scoring *RiskScoringService) *MemberImportService {
	return &MemberImportService{scoring: scoring}
}

// ParseSheet converts raw sheet rows (header row first) into members.
// Spreadsheet row numbers are used in errors, so the first data row
// reports as "Row 2".
func (s *MemberImportService) ParseSheet(rows [][]string) ImportResult {
	result := ImportResult{}
	if len(rows) == 0 {
		return result
	}

	columns := mapHeaders(rows[0])

	for i, row := range rows[1:] {
		rowNumber := i + 2
		member, err := s.parseRow(columns, row, i+1, rowNumber)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Members = append(result.Members, *member)
	}

	return result
}

// mapHeaders resolves each header cell to a canonical field index
func mapHeaders(header []string) map[string]int {
	columns := make(map[string]int)
	for idx, cell := range header {
		key := utils.NormalizeKey(cell)
		field, ok := headerAliases[key]
		if !ok {
			continue
		}
		if _, taken := columns[field]; !taken {
			columns[field] = idx
		}
	}
	return columns
}

func cellValue(columns map[string]int, row []string, field string) string {
	idx, ok := columns[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (s *MemberImportService) parseRow(columns map[string]int, row []string, ordinal, rowNumber int) (*entities.Member, error) {
	var missing []string
	for _, field := range requiredFields {
		if cellValue(columns, row, field) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("Row %d: missing required field(s): %s", rowNumber, strings.Join(missing, ", "))
	}

	var badNumeric []string
	age, err := strconv.Atoi(cellValue(columns, row, fieldAge))
	if err != nil {
		badNumeric = append(badNumeric, fieldAge)
	}
	bmi, err := parseFiniteFloat(cellValue(columns, row, fieldBMI))
	if err != nil {
		badNumeric = append(badNumeric, fieldBMI)
	}
	glucose, err := parseFiniteFloat(cellValue(columns, row, fieldGlucose))
	if err != nil {
		badNumeric = append(badNumeric, fieldGlucose)
	}
	cholesterol, err := parseFiniteFloat(cellValue(columns, row, fieldCholesterol))
	if err != nil {
		badNumeric = append(badNumeric, fieldCholesterol)
	}
	weight := 0.0
	if raw := cellValue(columns, row, fieldWeight); raw != "" {
		weight, err = parseFiniteFloat(raw)
		if err != nil {
			badNumeric = append(badNumeric, fieldWeight)
		}
	}
	if len(badNumeric) > 0 {
		return nil, fmt.Errorf("Row %d: invalid numeric value for %s", rowNumber, strings.Join(badNumeric, ", "))
	}

	rawGender := cellValue(columns, row, fieldGender)
	gender, ok := genderAliases[utils.NormalizeKey(rawGender)]
	if !ok {
		return nil, fmt.Errorf("Row %d: invalid %s value %q", rowNumber, fieldGender, rawGender)
	}

	rawSmoking := cellValue(columns, row, fieldSmoking)
	smoking, ok := smokingAliases[utils.NormalizeKey(rawSmoking)]
	if !ok {
		return nil, fmt.Errorf("Row %d: invalid %s value %q", rowNumber, fieldSmoking, rawSmoking)
	}

	rawExercise := cellValue(columns, row, fieldExercise)
	exercise, ok := exerciseAliases[utils.NormalizeKey(rawExercise)]
	if !ok {
		return nil, fmt.Errorf("Row %d: invalid %s value %q", rowNumber, fieldExercise, rawExercise)
	}

	rawFamily := cellValue(columns, row, fieldFamilyHistory)
	family, ok := familyHistoryAliases[utils.NormalizeKey(rawFamily)]
	if !ok {
		return nil, fmt.Errorf("Row %d: invalid %s value %q", rowNumber, fieldFamilyHistory, rawFamily)
	}

	rawStress := cellValue(columns, row, fieldStress)
	stress, ok := stressAliases[utils.NormalizeKey(rawStress)]
	if !ok {
		return nil, fmt.Errorf("Row %d: invalid %s value %q", rowNumber, fieldStress, rawStress)
	}

	rawBP := cellValue(columns, row, fieldBloodPressure)
	systolic, diastolic, ok := parseBloodPressure(rawBP)
	if !ok {
		return nil, fmt.Errorf("Row %d: invalid %s value %q", rowNumber, fieldBloodPressure, rawBP)
	}

	fullName := cellValue(columns, row, fieldFullName)

	email := cellValue(columns, row, fieldEmail)
	if email == "" {
		email = utils.Slugify(fullName) + "@company.com"
	}

	department := cellValue(columns, row, fieldDepartment)
	if department == "" {
		department = "Unassigned"
	}

	if weight == 0 {
		weight = defaultWeightForBMI(bmi)
	}

	profile := &entities.MemberProfile{
		FullName:          fullName,
		Email:             email,
		Department:        department,
		Gender:            gender,
		Age:               age,
		WeightKg:          weight,
		BMI:               bmi,
		Systolic:          systolic,
		Diastolic:         diastolic,
		FastingGlucose:    glucose,
		Cholesterol:       cholesterol,
		SmokingStatus:     smoking,
		ExerciseFrequency: exercise,
		FamilyHistory:     family,
		StressLevel:       stress,
		PastDiseases:      parsePastDiseases(cellValue(columns, row, fieldPastDiseases)),
	}

	member := s.scoring.BuildMember(fmt.Sprintf("imported-%d", ordinal), profile)
	return &member, nil
}

// parseFiniteFloat rejects NaN and infinities, which ParseFloat
// accepts as valid spellings
func parseFiniteFloat(raw string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("non-finite value %q", raw)
	}
	return value, nil
}

// Readings are two or three digits per side, as a cuff would report
var bloodPressurePattern = regexp.MustCompile(`^\s*(\d{2,3})\s*/\s*(\d{2,3})\s*$`)

func parseBloodPressure(raw string) (int, int, bool) {
	match := bloodPressurePattern.FindStringSubmatch(raw)
	if match == nil {
		return 0, 0, false
	}
	systolic, _ := strconv.Atoi(match[1])
	diastolic, _ := strconv.Atoi(match[2])
	return systolic, diastolic, true
}

// parsePastDiseases splits a condition list and maps each token to a
// known disease label. Unknown tokens are skipped, not errors.
func parsePastDiseases(raw string) []entities.PastDisease {
	if raw == "" {
		return nil
	}
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';'
	})
	return MapConditions(tokens)
}

func defaultWeightForBMI(bmi float64) float64 {
	// Assume an average 1.70m height when weight is not supplied
	return math.Round(bmi * 1.7 * 1.7)
}
