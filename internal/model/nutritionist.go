package model

import (
	"time"

	"github.com/google/uuid"
)

// Nutritionist is the owning account. Its id is the authenticated identity.
type Nutritionist struct {
	Base
	Email          string  `json:"email" db:"email" gorm:"not null;uniqueIndex"`
	FullName       string  `json:"full_name" db:"full_name" gorm:"not null"`
	LicenseNumber  *string `json:"license_number" db:"license_number"`
	Specialization *string `json:"specialization" db:"specialization"`
	Phone          *string `json:"phone" db:"phone"`
	PasswordHash   string  `json:"-" db:"password_hash" gorm:"not null"`
}

type RegisterRequest struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	FullName       string  `json:"full_name" validate:"notblank"`
	LicenseNumber  *string `json:"license_number"`
	Specialization *string `json:"specialization"`
	Phone          *string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ConfirmResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type UpdateProfileRequest struct {
	FullName       Optional[string] `json:"full_name" db:"full_name"`
	LicenseNumber  Optional[string] `json:"license_number" db:"license_number"`
	Specialization Optional[string] `json:"specialization" db:"specialization"`
	Phone          Optional[string] `json:"phone" db:"phone"`
}

// Session is returned by login and register
type Session struct {
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresAt    time.Time     `json:"expires_at"`
	Nutritionist *Nutritionist `json:"nutritionist"`
}

// SessionInfo describes the identity behind the current token
type SessionInfo struct {
	NutritionistID uuid.UUID `json:"nutritionist_id"`
	Email          string    `json:"email"`
	ExpiresAt      time.Time `json:"expires_at"`
}
