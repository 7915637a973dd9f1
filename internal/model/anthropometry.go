package model

import (
	"time"

	"github.com/google/uuid"
)

// Anthropometry is one weight/height measurement. BMI is derived from the
// two, either here or by a database trigger.
type Anthropometry struct {
	Base
	Owned
	PatientID  uuid.UUID `json:"patient_id" db:"patient_id" gorm:"type:uuid;not null;index"`
	Weight     float64   `json:"weight" db:"weight" gorm:"not null"`
	Height     float64   `json:"height" db:"height" gorm:"not null"`
	BMI        *float64  `json:"bmi" db:"bmi"`
	MeasuredAt time.Time `json:"measured_at" db:"measured_at" gorm:"not null;index"`
}

type CreateAnthropometryRequest struct {
	PatientID  uuid.UUID `json:"patient_id" db:"patient_id"`
	Weight     float64   `json:"weight" db:"weight"`
	Height     float64   `json:"height" db:"height"`
	MeasuredAt *string   `json:"measured_at" db:"-"`
}

type UpdateAnthropometryRequest struct {
	Weight     Optional[float64] `json:"weight" db:"weight"`
	Height     Optional[float64] `json:"height" db:"height"`
	MeasuredAt Optional[string]  `json:"measured_at" db:"-"`
}
