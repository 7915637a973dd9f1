package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

type Appointment struct {
	Base
	Owned
	PatientID  uuid.UUID         `json:"patient_id" db:"patient_id" gorm:"type:uuid;not null;index"`
	Date       datatypes.Date    `json:"date" db:"date" gorm:"not null;index"`
	Time       string            `json:"time" db:"time" gorm:"type:varchar(5);not null"`
	DoctorArea *string           `json:"doctor_area" db:"doctor_area"`
	Reason     *string           `json:"reason" db:"reason"`
	Status     AppointmentStatus `json:"status" db:"status" gorm:"type:varchar(20);not null;default:pending"`
}

type CreateAppointmentRequest struct {
	PatientID  uuid.UUID          `json:"patient_id" db:"patient_id"`
	Date       string             `json:"date" db:"-" validate:"notblank"`
	Time       string             `json:"time" db:"time" validate:"hhmm"`
	DoctorArea *string            `json:"doctor_area" db:"doctor_area"`
	Reason     *string            `json:"reason" db:"reason" validate:"omitempty,max=500"`
	Status     *AppointmentStatus `json:"status" db:"-" validate:"omitempty,oneof=confirmed pending cancelled completed"`
}

type UpdateAppointmentRequest struct {
	Date       Optional[string]            `json:"date" db:"-"`
	Time       Optional[string]            `json:"time" db:"time"`
	DoctorArea Optional[string]            `json:"doctor_area" db:"doctor_area"`
	Reason     Optional[string]            `json:"reason" db:"reason"`
	Status     Optional[AppointmentStatus] `json:"status" db:"status"`
}
