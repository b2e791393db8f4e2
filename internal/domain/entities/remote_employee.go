package entities

// RemoteHealthRecord is the optional health block of a directory
// employee. Every field may be absent; defaults are applied during
// sync mapping.
type RemoteHealthRecord struct {
	BMI                 *float64        `json:"bmi,omitempty"`
	WeightKg            *float64        `json:"weight_kg,omitempty"`
	SystolicBP          *float64        `json:"blood_pressure_systolic,omitempty"`
	DiastolicBP         *float64        `json:"blood_pressure_diastolic,omitempty"`
	FastingGlucose      *float64        `json:"fasting_glucose_mg_dl,omitempty"`
	Cholesterol         *float64        `json:"total_cholesterol_mg_dl,omitempty"`
	Smokes              bool            `json:"smokes,omitempty"`
	CigarettesPerDay    *float64        `json:"cigarettes_per_day,omitempty"`
	ExerciseDaysPerWeek *float64        `json:"exercise_days_per_week,omitempty"`
	StressLevel1To10    *float64        `json:"stress_level_1_10,omitempty"`
	FamilyHistory       map[string]bool `json:"family_history,omitempty"`
	PastConditions      []string        `json:"past_conditions,omitempty"`
	CurrentConditions   []string        `json:"current_conditions,omitempty"`
	RiskFlags           []string        `json:"risk_flags,omitempty"`
}

// RemoteEmployee is one employee as returned by the corporate directory
type RemoteEmployee struct {
	EmployeeID string              `json:"employee_id"`
	Name       string              `json:"name"`
	Department string              `json:"department"`
	Gender     string              `json:"gender"`
	DOB        string              `json:"dob"`
	Health     *RemoteHealthRecord `json:"health,omitempty"`
}

// GetAllEmployeesResponse is the directory list payload
type GetAllEmployeesResponse struct {
	Count     int              `json:"count"`
	Employees []RemoteEmployee `json:"employees"`
}
