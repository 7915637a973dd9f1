package model

import (
	"strings"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient is the wide patient row: contact data, demographics, the latest
// anthropometry snapshot and free-text clinical notes.
type Patient struct {
	Base
	Owned
	FullName            string          `json:"full_name" db:"full_name" gorm:"not null;index"`
	ControlNumber       *string         `json:"control_number" db:"control_number" gorm:"index"`
	Email               *string         `json:"email" db:"email"`
	Phone               *string         `json:"phone" db:"phone"`
	BirthDate           *datatypes.Date `json:"birth_date" db:"birth_date"`
	Age                 *int            `json:"age" db:"age"`
	Gender              *Gender         `json:"gender" db:"gender"`
	Career              *string         `json:"career" db:"career"`
	Height              *float64        `json:"height" db:"height"`
	Weight              *float64        `json:"weight" db:"weight"`
	BMI                 *float64        `json:"bmi" db:"bmi"`
	BodyFatPercentage   *float64        `json:"body_fat_percentage" db:"body_fat_percentage"`
	MuscleMass          *float64        `json:"muscle_mass" db:"muscle_mass"`
	WaistCircumference  *float64        `json:"waist_circumference" db:"waist_circumference"`
	HipCircumference    *float64        `json:"hip_circumference" db:"hip_circumference"`
	ChestCircumference  *float64        `json:"chest_circumference" db:"chest_circumference"`
	ArmCircumference    *float64        `json:"arm_circumference" db:"arm_circumference"`
	ThighCircumference  *float64        `json:"thigh_circumference" db:"thigh_circumference"`
	Allergies           *string         `json:"allergies" db:"allergies"`
	MedicalNotes        *string         `json:"medical_notes" db:"medical_notes"`
	Goals               *string         `json:"goals" db:"goals"`
	DietaryRestrictions *string         `json:"dietary_restrictions" db:"dietary_restrictions"`
	Active              bool            `json:"active" db:"active" gorm:"not null;default:true"`
}

type CreatePatientRequest struct {
	FullName            string   `json:"full_name" db:"full_name" validate:"notblank,max=200"`
	ControlNumber       *string  `json:"control_number" db:"control_number" validate:"omitempty,max=50"`
	Email               *string  `json:"email" db:"email" validate:"omitempty,email"`
	Phone               *string  `json:"phone" db:"phone" validate:"omitempty,max=30"`
	BirthDate           *string  `json:"birth_date" db:"-"`
	Age                 *int     `json:"age" db:"age" validate:"omitempty,gte=0,lte=150"`
	Gender              *Gender  `json:"gender" db:"gender" validate:"omitempty,oneof=male female other"`
	Career              *string  `json:"career" db:"career"`
	Height              *float64 `json:"height" db:"height" validate:"omitempty,gt=0"`
	Weight              *float64 `json:"weight" db:"weight" validate:"omitempty,gt=0"`
	BodyFatPercentage   *float64 `json:"body_fat_percentage" db:"body_fat_percentage" validate:"omitempty,gte=0,lte=100"`
	MuscleMass          *float64 `json:"muscle_mass" db:"muscle_mass" validate:"omitempty,gt=0"`
	WaistCircumference  *float64 `json:"waist_circumference" db:"waist_circumference" validate:"omitempty,gt=0"`
	HipCircumference    *float64 `json:"hip_circumference" db:"hip_circumference" validate:"omitempty,gt=0"`
	ChestCircumference  *float64 `json:"chest_circumference" db:"chest_circumference" validate:"omitempty,gt=0"`
	ArmCircumference    *float64 `json:"arm_circumference" db:"arm_circumference" validate:"omitempty,gt=0"`
	ThighCircumference  *float64 `json:"thigh_circumference" db:"thigh_circumference" validate:"omitempty,gt=0"`
	Allergies           *string  `json:"allergies" db:"allergies"`
	MedicalNotes        *string  `json:"medical_notes" db:"medical_notes"`
	Goals               *string  `json:"goals" db:"goals"`
	DietaryRestrictions *string  `json:"dietary_restrictions" db:"dietary_restrictions"`
}

type UpdatePatientRequest struct {
	FullName            Optional[string]  `json:"full_name" db:"full_name"`
	ControlNumber       Optional[string]  `json:"control_number" db:"control_number"`
	Email               Optional[string]  `json:"email" db:"email"`
	Phone               Optional[string]  `json:"phone" db:"phone"`
	BirthDate           Optional[string]  `json:"birth_date" db:"-"`
	Age                 Optional[int]     `json:"age" db:"age"`
	Gender              Optional[Gender]  `json:"gender" db:"gender"`
	Career              Optional[string]  `json:"career" db:"career"`
	Height              Optional[float64] `json:"height" db:"height"`
	Weight              Optional[float64] `json:"weight" db:"weight"`
	BodyFatPercentage   Optional[float64] `json:"body_fat_percentage" db:"body_fat_percentage"`
	MuscleMass          Optional[float64] `json:"muscle_mass" db:"muscle_mass"`
	WaistCircumference  Optional[float64] `json:"waist_circumference" db:"waist_circumference"`
	HipCircumference    Optional[float64] `json:"hip_circumference" db:"hip_circumference"`
	ChestCircumference  Optional[float64] `json:"chest_circumference" db:"chest_circumference"`
	ArmCircumference    Optional[float64] `json:"arm_circumference" db:"arm_circumference"`
	ThighCircumference  Optional[float64] `json:"thigh_circumference" db:"thigh_circumference"`
	Allergies           Optional[string]  `json:"allergies" db:"allergies"`
	MedicalNotes        Optional[string]  `json:"medical_notes" db:"medical_notes"`
	Goals               Optional[string]  `json:"goals" db:"goals"`
	DietaryRestrictions Optional[string]  `json:"dietary_restrictions" db:"dietary_restrictions"`
}

// Normalize trims the optional text fields and drops blank ones, so an
// empty form field is stored as null.
func (r *CreatePatientRequest) Normalize() {
	for _, p := range []**string{
		&r.ControlNumber, &r.Email, &r.Phone, &r.BirthDate, &r.Career,
		&r.Allergies, &r.MedicalNotes, &r.Goals, &r.DietaryRestrictions,
	} {
		*p = blankToNil(*p)
	}
	r.Gender = blankToNil(r.Gender)
}

// Normalize turns blank optional text into an explicit null. full_name is
// left alone so a blank name is still rejected.
func (r *UpdatePatientRequest) Normalize() {
	for _, o := range []*Optional[string]{
		&r.ControlNumber, &r.Email, &r.Phone, &r.BirthDate, &r.Career,
		&r.Allergies, &r.MedicalNotes, &r.Goals, &r.DietaryRestrictions,
	} {
		*o = blankToNull(*o)
	}
	r.Gender = blankToNull(r.Gender)
}

func blankToNil[T ~string](p *T) *T {
	if p == nil {
		return nil
	}
	v := T(strings.TrimSpace(string(*p)))
	if v == "" {
		return nil
	}
	return &v
}

func blankToNull[T ~string](o Optional[T]) Optional[T] {
	v, ok := o.Get()
	if !ok {
		return o
	}
	if v = T(strings.TrimSpace(string(v))); v == "" {
		return Null[T]()
	}
	return Some(v)
}
