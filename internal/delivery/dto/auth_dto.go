package dto

import (
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterRequest creates a patient or staff account together with its profile.
// Staff registrations must carry department, position and phone.
type RegisterRequest struct {
	Name             string                   `json:"name" validate:"required,min=2,max=255"`
	Email            string                   `json:"email" validate:"required,email"`
	Password         string                   `json:"password" validate:"required,min=6"`
	Role             string                   `json:"role" validate:"omitempty,oneof=patient staff"`
	Phone            string                   `json:"phone" validate:"required_if=Role staff,omitempty,max=30"`
	DateOfBirth      string                   `json:"dateOfBirth" validate:"omitempty,isodate"`
	Gender           string                   `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Address          *entity.Address          `json:"address"`
	EmergencyContact *entity.EmergencyContact `json:"emergencyContact"`
	Department       string                   `json:"department" validate:"required_if=Role staff,omitempty,max=100"`
	Position         string                   `json:"position" validate:"required_if=Role staff,omitempty,max=100"`
	Specialization   string                   `json:"specialization" validate:"omitempty,max=150"`
}

// CreateAdminRequest is used by the create-admin command only.
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	ExpiresIn    int64         `json:"expiresIn"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	PatientID *uuid.UUID `json:"patientId,omitempty"`
	StaffID   *uuid.UUID `json:"staffId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// UserSummary is the slice of a user embedded in other resources.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type VerifyResponse struct {
	Valid bool          `json:"valid"`
	User  *UserResponse `json:"user"`
}
