package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Mood string

const (
	MoodExcellent Mood = "excellent"
	MoodGood      Mood = "good"
	MoodNeutral   Mood = "neutral"
	MoodBad       Mood = "bad"
	MoodTerrible  Mood = "terrible"
)

type ProgressTracking struct {
	Base
	Owned
	PatientID          uuid.UUID      `json:"patient_id" db:"patient_id" gorm:"type:uuid;not null;index"`
	TrackingDate       datatypes.Date `json:"tracking_date" db:"tracking_date" gorm:"not null;index"`
	Weight             *float64       `json:"weight" db:"weight"`
	BodyFatPercentage  *float64       `json:"body_fat_percentage" db:"body_fat_percentage"`
	MuscleMass         *float64       `json:"muscle_mass" db:"muscle_mass"`
	WaistCircumference *float64       `json:"waist_circumference" db:"waist_circumference"`
	HipCircumference   *float64       `json:"hip_circumference" db:"hip_circumference"`
	ChestCircumference *float64       `json:"chest_circumference" db:"chest_circumference"`
	ArmCircumference   *float64       `json:"arm_circumference" db:"arm_circumference"`
	ThighCircumference *float64       `json:"thigh_circumference" db:"thigh_circumference"`
	WaterIntakeMl      *int           `json:"water_intake_ml" db:"water_intake_ml"`
	SleepHours         *float64       `json:"sleep_hours" db:"sleep_hours"`
	ExerciseMinutes    *int           `json:"exercise_minutes" db:"exercise_minutes"`
	Mood               *Mood          `json:"mood" db:"mood"`
	EnergyLevel        *int           `json:"energy_level" db:"energy_level"`
	Notes              *string        `json:"notes" db:"notes"`
}

type CreateProgressRequest struct {
	PatientID          uuid.UUID `json:"patient_id" db:"patient_id"`
	TrackingDate       string    `json:"tracking_date" db:"-" validate:"notblank"`
	Weight             *float64  `json:"weight" db:"weight" validate:"omitempty,gt=0"`
	BodyFatPercentage  *float64  `json:"body_fat_percentage" db:"body_fat_percentage" validate:"omitempty,gte=0,lte=100"`
	MuscleMass         *float64  `json:"muscle_mass" db:"muscle_mass" validate:"omitempty,gt=0"`
	WaistCircumference *float64  `json:"waist_circumference" db:"waist_circumference" validate:"omitempty,gt=0"`
	HipCircumference   *float64  `json:"hip_circumference" db:"hip_circumference" validate:"omitempty,gt=0"`
	ChestCircumference *float64  `json:"chest_circumference" db:"chest_circumference" validate:"omitempty,gt=0"`
	ArmCircumference   *float64  `json:"arm_circumference" db:"arm_circumference" validate:"omitempty,gt=0"`
	ThighCircumference *float64  `json:"thigh_circumference" db:"thigh_circumference" validate:"omitempty,gt=0"`
	WaterIntakeMl      *int      `json:"water_intake_ml" db:"water_intake_ml" validate:"omitempty,gte=0"`
	SleepHours         *float64  `json:"sleep_hours" db:"sleep_hours" validate:"omitempty,gte=0,lte=24"`
	ExerciseMinutes    *int      `json:"exercise_minutes" db:"exercise_minutes" validate:"omitempty,gte=0"`
	Mood               *Mood     `json:"mood" db:"mood" validate:"omitempty,oneof=excellent good neutral bad terrible"`
	EnergyLevel        *int      `json:"energy_level" db:"energy_level" validate:"omitempty,gte=1,lte=10"`
	Notes              *string   `json:"notes" db:"notes"`
}

type UpdateProgressRequest struct {
	TrackingDate       Optional[string]  `json:"tracking_date" db:"-"`
	Weight             Optional[float64] `json:"weight" db:"weight"`
	BodyFatPercentage  Optional[float64] `json:"body_fat_percentage" db:"body_fat_percentage"`
	MuscleMass         Optional[float64] `json:"muscle_mass" db:"muscle_mass"`
	WaistCircumference Optional[float64] `json:"waist_circumference" db:"waist_circumference"`
	HipCircumference   Optional[float64] `json:"hip_circumference" db:"hip_circumference"`
	ChestCircumference Optional[float64] `json:"chest_circumference" db:"chest_circumference"`
	ArmCircumference   Optional[float64] `json:"arm_circumference" db:"arm_circumference"`
	ThighCircumference Optional[float64] `json:"thigh_circumference" db:"thigh_circumference"`
	WaterIntakeMl      Optional[int]     `json:"water_intake_ml" db:"water_intake_ml"`
	SleepHours         Optional[float64] `json:"sleep_hours" db:"sleep_hours"`
	ExerciseMinutes    Optional[int]     `json:"exercise_minutes" db:"exercise_minutes"`
	Mood               Optional[Mood]    `json:"mood" db:"mood"`
	EnergyLevel        Optional[int]     `json:"energy_level" db:"energy_level"`
	Notes              Optional[string]  `json:"notes" db:"notes"`
}
