package dto

import (
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalRecordRequest struct {
	PatientID   uuid.UUID           `json:"patientId" validate:"required"`
	StaffID     *uuid.UUID          `json:"staffId"`
	Date        *time.Time          `json:"date"`
	Diagnosis   string              `json:"diagnosis" validate:"required,max=2000"`
	Symptoms    []string            `json:"symptoms"`
	Treatment   string              `json:"treatment" validate:"required,max=4000"`
	Medications []entity.Medication `json:"medications" validate:"omitempty,dive"`
	LabResults  []entity.LabResult  `json:"labResults" validate:"omitempty,dive"`
	VitalSigns  *entity.VitalSigns  `json:"vitalSigns"`
	Notes       string              `json:"notes" validate:"omitempty,max=4000"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID          uuid.UUID           `json:"id"`
	PatientID   uuid.UUID           `json:"patientId"`
	StaffID     uuid.UUID           `json:"staffId"`
	Patient     *PatientSummary     `json:"patient,omitempty"`
	Staff       *StaffSummary       `json:"staff,omitempty"`
	Date        time.Time           `json:"date"`
	Diagnosis   string              `json:"diagnosis"`
	Symptoms    []string            `json:"symptoms"`
	Treatment   string              `json:"treatment"`
	Medications []entity.Medication `json:"medications"`
	LabResults  []entity.LabResult  `json:"labResults"`
	VitalSigns  entity.VitalSigns   `json:"vitalSigns"`
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}
