package dto

import (
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name               string                     `json:"name" validate:"required,min=2,max=255"`
	Email              string                     `json:"email" validate:"required,email"`
	Password           string                     `json:"password" validate:"required,min=6"`
	DateOfBirth        string                     `json:"dateOfBirth" validate:"omitempty,isodate"`
	Gender             string                     `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	BloodGroup         string                     `json:"bloodGroup" validate:"omitempty,max=5"`
	Phone              string                     `json:"phone" validate:"omitempty,max=30"`
	Address            *entity.Address            `json:"address"`
	EmergencyContact   *entity.EmergencyContact   `json:"emergencyContact"`
	MedicalHistory     []entity.MedicalCondition  `json:"medicalHistory" validate:"omitempty,dive"`
	Allergies          []string                   `json:"allergies"`
	CurrentMedications []entity.CurrentMedication `json:"currentMedications" validate:"omitempty,dive"`
	InsuranceInfo      *entity.InsuranceInfo      `json:"insuranceInfo"`
}

// UpdatePatientRequest is a partial update. Nil fields are left untouched.
type UpdatePatientRequest struct {
	Name               *string                     `json:"name" validate:"omitempty,min=2,max=255"`
	DateOfBirth        *string                     `json:"dateOfBirth" validate:"omitempty,isodate"`
	Gender             *string                     `json:"gender" validate:"omitempty,oneof=Male Female Other"`
	BloodGroup         *string                     `json:"bloodGroup" validate:"omitempty,max=5"`
	Phone              *string                     `json:"phone" validate:"omitempty,max=30"`
	Address            *entity.Address             `json:"address"`
	EmergencyContact   *entity.EmergencyContact    `json:"emergencyContact"`
	MedicalHistory     *[]entity.MedicalCondition  `json:"medicalHistory"`
	Allergies          *[]string                   `json:"allergies"`
	CurrentMedications *[]entity.CurrentMedication `json:"currentMedications"`
	InsuranceInfo      *entity.InsuranceInfo       `json:"insuranceInfo"`
}

// ChangedFields lists the JSON names of the fields present in the request.
func (r *UpdatePatientRequest) ChangedFields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(r.Name != nil, "name")
	add(r.DateOfBirth != nil, "dateOfBirth")
	add(r.Gender != nil, "gender")
	add(r.BloodGroup != nil, "bloodGroup")
	add(r.Phone != nil, "phone")
	add(r.Address != nil, "address")
	add(r.EmergencyContact != nil, "emergencyContact")
	add(r.MedicalHistory != nil, "medicalHistory")
	add(r.Allergies != nil, "allergies")
	add(r.CurrentMedications != nil, "currentMedications")
	add(r.InsuranceInfo != nil, "insuranceInfo")
	return fields
}

// Response DTOs

type PatientResponse struct {
	ID                 uuid.UUID                  `json:"id"`
	UserID             uuid.UUID                  `json:"userId"`
	User               *UserSummary               `json:"user,omitempty"`
	DateOfBirth        string                     `json:"dateOfBirth,omitempty"`
	Gender             string                     `json:"gender,omitempty"`
	BloodGroup         string                     `json:"bloodGroup,omitempty"`
	Phone              string                     `json:"phone,omitempty"`
	Address            entity.Address             `json:"address"`
	EmergencyContact   entity.EmergencyContact    `json:"emergencyContact"`
	MedicalHistory     []entity.MedicalCondition  `json:"medicalHistory"`
	Allergies          []string                   `json:"allergies"`
	CurrentMedications []entity.CurrentMedication `json:"currentMedications"`
	InsuranceInfo      entity.InsuranceInfo       `json:"insuranceInfo"`
	CreatedAt          time.Time                  `json:"createdAt"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}

// PatientSummary is embedded in appointments, invoices and records.
type PatientSummary struct {
	ID   uuid.UUID    `json:"id"`
	User *UserSummary `json:"user,omitempty"`
}
