package model

// Table names
const (
	TableNutritionists          = "nutritionists"
	TablePatients               = "patients"
	TableAnthropometries        = "anthropometries"
	TableDiagnoses              = "diagnoses"
	TableMedicalRecordsControls = "medical_records_controls"
	TableAppointments           = "appointments"
	TableConsultations          = "consultations"
	TableMealPlans              = "meal_plans"
	TableProgressTrackings      = "progress_trackings"
)

func (Nutritionist) TableName() string          { return TableNutritionists }
func (Patient) TableName() string               { return TablePatients }
func (Anthropometry) TableName() string         { return TableAnthropometries }
func (Diagnosis) TableName() string             { return TableDiagnoses }
func (MedicalRecordsControl) TableName() string { return TableMedicalRecordsControls }
func (Appointment) TableName() string           { return TableAppointments }
func (Consultation) TableName() string          { return TableConsultations }
func (MealPlan) TableName() string              { return TableMealPlans }
func (ProgressTracking) TableName() string      { return TableProgressTrackings }

// All returns one value of every persisted model, in dependency order
func All() []any {
	return []any{
		&Nutritionist{},
		&Patient{},
		&Anthropometry{},
		&Diagnosis{},
		&MedicalRecordsControl{},
		&Appointment{},
		&Consultation{},
		&MealPlan{},
		&ProgressTracking{},
	}
}
