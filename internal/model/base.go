package model

import (
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Owned marks records that belong to a nutritionist. The reference is
// empty when the service runs single-tenant.
type Owned struct {
	NutritionistID *uuid.UUID `json:"nutritionist_id" db:"nutritionist_id" gorm:"type:uuid;index"`
}

// Column names shared by every table
const (
	ColumnID             = "id"
	ColumnCreatedAt      = "created_at"
	ColumnUpdatedAt      = "updated_at"
	ColumnNutritionistID = "nutritionist_id"
	ColumnPatientID      = "patient_id"
	ColumnActive         = "active"
)

// Identifier returns the primary key
func (b Base) Identifier() uuid.UUID {
	return b.ID
}
