package model

import (
	"time"

	"github.com/google/uuid"
)

type ConsultationType string

const (
	ConsultationInitial   ConsultationType = "initial"
	ConsultationFollowUp  ConsultationType = "follow_up"
	ConsultationEmergency ConsultationType = "emergency"
)

type Consultation struct {
	Base
	Owned
	PatientID         uuid.UUID        `json:"patient_id" db:"patient_id" gorm:"type:uuid;not null;index"`
	ConsultationDate  time.Time        `json:"consultation_date" db:"consultation_date" gorm:"not null;index"`
	Type              ConsultationType `json:"type" db:"type" gorm:"type:varchar(20);not null"`
	Weight            *float64         `json:"weight" db:"weight"`
	HeightCm          *float64         `json:"height_cm" db:"height_cm"`
	BodyFatPercentage *float64         `json:"body_fat_percentage" db:"body_fat_percentage"`
	MuscleMass        *float64         `json:"muscle_mass" db:"muscle_mass"`
	BloodPressure     *string          `json:"blood_pressure" db:"blood_pressure"`
	Notes             *string          `json:"notes" db:"notes"`
	Recommendations   *string          `json:"recommendations" db:"recommendations"`
	NextAppointment   *time.Time       `json:"next_appointment" db:"next_appointment"`
}

type CreateConsultationRequest struct {
	PatientID         uuid.UUID        `json:"patient_id" db:"patient_id"`
	ConsultationDate  string           `json:"consultation_date" db:"-" validate:"notblank"`
	Type              ConsultationType `json:"type" db:"type" validate:"required,oneof=initial follow_up emergency"`
	Weight            *float64         `json:"weight" db:"weight" validate:"omitempty,gt=0"`
	HeightCm          *float64         `json:"height_cm" db:"height_cm" validate:"omitempty,gt=0"`
	BodyFatPercentage *float64         `json:"body_fat_percentage" db:"body_fat_percentage" validate:"omitempty,gte=0,lte=100"`
	MuscleMass        *float64         `json:"muscle_mass" db:"muscle_mass" validate:"omitempty,gt=0"`
	BloodPressure     *string          `json:"blood_pressure" db:"blood_pressure" validate:"omitempty,max=20"`
	Notes             *string          `json:"notes" db:"notes"`
	Recommendations   *string          `json:"recommendations" db:"recommendations"`
	NextAppointment   *string          `json:"next_appointment" db:"-"`
}

type UpdateConsultationRequest struct {
	ConsultationDate  Optional[string]           `json:"consultation_date" db:"-"`
	Type              Optional[ConsultationType] `json:"type" db:"type"`
	Weight            Optional[float64]          `json:"weight" db:"weight"`
	HeightCm          Optional[float64]          `json:"height_cm" db:"height_cm"`
	BodyFatPercentage Optional[float64]          `json:"body_fat_percentage" db:"body_fat_percentage"`
	MuscleMass        Optional[float64]          `json:"muscle_mass" db:"muscle_mass"`
	BloodPressure     Optional[string]           `json:"blood_pressure" db:"blood_pressure"`
	Notes             Optional[string]           `json:"notes" db:"notes"`
	Recommendations   Optional[string]           `json:"recommendations" db:"recommendations"`
	NextAppointment   Optional[string]           `json:"next_appointment" db:"-"`
}
