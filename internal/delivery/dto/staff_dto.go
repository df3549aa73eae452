package dto

import (
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type ShiftBlockRequest struct {
	Day       string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
}

type CreateStaffRequest struct {
	Name             string                   `json:"name" validate:"required,min=2,max=255"`
	Email            string                   `json:"email" validate:"required,email"`
	Password         string                   `json:"password" validate:"required,min=6"`
	Department       string                   `json:"department" validate:"required,max=100"`
	Position         string                   `json:"position" validate:"required,max=100"`
	Specialization   string                   `json:"specialization" validate:"omitempty,max=150"`
	Qualification    string                   `json:"qualification" validate:"omitempty,max=150"`
	DateOfBirth      string                   `json:"dateOfBirth" validate:"omitempty,isodate"`
	Gender           string                   `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone            string                   `json:"phone" validate:"required,max=30"`
	Address          *entity.Address          `json:"address"`
	EmergencyContact *entity.EmergencyContact `json:"emergencyContact"`
	JoinDate         string                   `json:"joinDate" validate:"omitempty,isodate"`
	Schedule         []ShiftBlockRequest      `json:"schedule" validate:"omitempty,dive"`
	Status           string                   `json:"status" validate:"omitempty,oneof='Active' 'On Leave' 'Inactive'"`
}

// UpdateStaffRequest is a partial update. Nil fields are left untouched.
type UpdateStaffRequest struct {
	Name             *string                  `json:"name" validate:"omitempty,min=2,max=255"`
	Department       *string                  `json:"department" validate:"omitempty,min=1,max=100"`
	Position         *string                  `json:"position" validate:"omitempty,min=1,max=100"`
	Specialization   *string                  `json:"specialization" validate:"omitempty,max=150"`
	Qualification    *string                  `json:"qualification" validate:"omitempty,max=150"`
	DateOfBirth      *string                  `json:"dateOfBirth" validate:"omitempty,isodate"`
	Gender           *string                  `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	Phone            *string                  `json:"phone" validate:"omitempty,min=1,max=30"`
	Address          *entity.Address          `json:"address"`
	EmergencyContact *entity.EmergencyContact `json:"emergencyContact"`
	JoinDate         *string                  `json:"joinDate" validate:"omitempty,isodate"`
	Schedule         *[]ShiftBlockRequest     `json:"schedule" validate:"omitempty,dive"`
	Status           *string                  `json:"status" validate:"omitempty,oneof='Active' 'On Leave' 'Inactive'"`
}

func (r *UpdateStaffRequest) ChangedFields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(r.Name != nil, "name")
	add(r.Department != nil, "department")
	add(r.Position != nil, "position")
	add(r.Specialization != nil, "specialization")
	add(r.Qualification != nil, "qualification")
	add(r.DateOfBirth != nil, "dateOfBirth")
	add(r.Gender != nil, "gender")
	add(r.Phone != nil, "phone")
	add(r.Address != nil, "address")
	add(r.EmergencyContact != nil, "emergencyContact")
	add(r.JoinDate != nil, "joinDate")
	add(r.Schedule != nil, "schedule")
	add(r.Status != nil, "status")
	return fields
}

// Response DTOs

type StaffResponse struct {
	ID               uuid.UUID               `json:"id"`
	UserID           uuid.UUID               `json:"userId"`
	User             *UserSummary            `json:"user,omitempty"`
	StaffCode        string                  `json:"staffId"`
	Department       string                  `json:"department"`
	Position         string                  `json:"position"`
	Specialization   string                  `json:"specialization,omitempty"`
	Qualification    string                  `json:"qualification,omitempty"`
	DateOfBirth      string                  `json:"dateOfBirth,omitempty"`
	Gender           string                  `json:"gender,omitempty"`
	Phone            string                  `json:"phone"`
	Address          entity.Address          `json:"address"`
	EmergencyContact entity.EmergencyContact `json:"emergencyContact"`
	JoinDate         string                  `json:"joinDate"`
	Schedule         []entity.ShiftBlock     `json:"schedule"`
	Status           string                  `json:"status"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

// StaffSummary is embedded in appointments and records.
type StaffSummary struct {
	ID         uuid.UUID    `json:"id"`
	StaffCode  string       `json:"staffId"`
	Department string       `json:"department"`
	Position   string       `json:"position"`
	User       *UserSummary `json:"user,omitempty"`
}
