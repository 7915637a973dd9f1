package model

import (
	"github.com/google/uuid"
)

// Diagnosis holds the nutritional diagnosis flags of a patient. A patient
// has at most one current diagnosis.
type Diagnosis struct {
	Base
	Owned
	PatientID     uuid.UUID `json:"patient_id" db:"patient_id" gorm:"type:uuid;not null;index"`
	Malnutrition  bool      `json:"malnutrition" db:"malnutrition" gorm:"not null;default:false"`
	Underweight   bool      `json:"underweight" db:"underweight" gorm:"not null;default:false"`
	HealthyWeight bool      `json:"healthy_weight" db:"healthy_weight" gorm:"not null;default:false"`
	Overweight    bool      `json:"overweight" db:"overweight" gorm:"not null;default:false"`
	ObesityI      bool      `json:"obesity_grade_1" db:"obesity_grade_1" gorm:"column:obesity_grade_1;not null;default:false"`
	ObesityII     bool      `json:"obesity_grade_2" db:"obesity_grade_2" gorm:"column:obesity_grade_2;not null;default:false"`
	ObesityIII    bool      `json:"obesity_grade_3" db:"obesity_grade_3" gorm:"column:obesity_grade_3;not null;default:false"`
	Diabetes      bool      `json:"diabetes" db:"diabetes" gorm:"not null;default:false"`
	Hypertension  bool      `json:"hypertension" db:"hypertension" gorm:"not null;default:false"`
	Dyslipidemia  bool      `json:"dyslipidemia" db:"dyslipidemia" gorm:"not null;default:false"`
	Nephropathy   bool      `json:"nephropathy" db:"nephropathy" gorm:"not null;default:false"`
	Other         *string   `json:"other" db:"other"`
}

type CreateDiagnosisRequest struct {
	PatientID     uuid.UUID `json:"patient_id" db:"patient_id"`
	Malnutrition  bool      `json:"malnutrition" db:"malnutrition"`
	Underweight   bool      `json:"underweight" db:"underweight"`
	HealthyWeight bool      `json:"healthy_weight" db:"healthy_weight"`
	Overweight    bool      `json:"overweight" db:"overweight"`
	ObesityI      bool      `json:"obesity_grade_1" db:"obesity_grade_1"`
	ObesityII     bool      `json:"obesity_grade_2" db:"obesity_grade_2"`
	ObesityIII    bool      `json:"obesity_grade_3" db:"obesity_grade_3"`
	Diabetes      bool      `json:"diabetes" db:"diabetes"`
	Hypertension  bool      `json:"hypertension" db:"hypertension"`
	Dyslipidemia  bool      `json:"dyslipidemia" db:"dyslipidemia"`
	Nephropathy   bool      `json:"nephropathy" db:"nephropathy"`
	Other         *string   `json:"other" db:"other"`
}

type UpdateDiagnosisRequest struct {
	Malnutrition  Optional[bool]   `json:"malnutrition" db:"malnutrition"`
	Underweight   Optional[bool]   `json:"underweight" db:"underweight"`
	HealthyWeight Optional[bool]   `json:"healthy_weight" db:"healthy_weight"`
	Overweight    Optional[bool]   `json:"overweight" db:"overweight"`
	ObesityI      Optional[bool]   `json:"obesity_grade_1" db:"obesity_grade_1"`
	ObesityII     Optional[bool]   `json:"obesity_grade_2" db:"obesity_grade_2"`
	ObesityIII    Optional[bool]   `json:"obesity_grade_3" db:"obesity_grade_3"`
	Diabetes      Optional[bool]   `json:"diabetes" db:"diabetes"`
	Hypertension  Optional[bool]   `json:"hypertension" db:"hypertension"`
	Dyslipidemia  Optional[bool]   `json:"dyslipidemia" db:"dyslipidemia"`
	Nephropathy   Optional[bool]   `json:"nephropathy" db:"nephropathy"`
	Other         Optional[string] `json:"other" db:"other"`
}
