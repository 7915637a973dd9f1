package model

import (
	"github.com/google/uuid"
)

// MedicalRecordsControl tracks the paperwork side of a patient's file:
// orientation given, clinical history number, plan type and visit kind.
type MedicalRecordsControl struct {
	Base
	Owned
	PatientID    uuid.UUID `json:"patient_id" db:"patient_id" gorm:"type:uuid;not null;index"`
	Orientations *string   `json:"orientations" db:"orientations"`
	HCN          *string   `json:"hcn" db:"hcn" gorm:"column:hcn"`
	MealPlanType *string   `json:"meal_plan_type" db:"meal_plan_type"`
	FirstVisit   bool      `json:"first_visit" db:"first_visit" gorm:"not null;default:false"`
	FollowUp     bool      `json:"follow_up" db:"follow_up" gorm:"not null;default:false"`
}

type CreateRecordsControlRequest struct {
	PatientID    uuid.UUID `json:"patient_id" db:"patient_id"`
	Orientations *string   `json:"orientations" db:"orientations"`
	HCN          *string   `json:"hcn" db:"hcn"`
	MealPlanType *string   `json:"meal_plan_type" db:"meal_plan_type"`
	FirstVisit   bool      `json:"first_visit" db:"first_visit"`
	FollowUp     bool      `json:"follow_up" db:"follow_up"`
}

type UpdateRecordsControlRequest struct {
	Orientations Optional[string] `json:"orientations" db:"orientations"`
	HCN          Optional[string] `json:"hcn" db:"hcn"`
	MealPlanType Optional[string] `json:"meal_plan_type" db:"meal_plan_type"`
	FirstVisit   Optional[bool]   `json:"first_visit" db:"first_visit"`
	FollowUp     Optional[bool]   `json:"follow_up" db:"follow_up"`
}
