package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID uuid.UUID `json:"patientId" validate:"required"`
	StaffID   uuid.UUID `json:"staffId" validate:"required"`
	Date      string    `json:"date" validate:"required,isodate"`
	Time      string    `json:"time" validate:"required,clock"`
	Duration  int       `json:"duration" validate:"omitempty,gt=0"`
	Type      string    `json:"type" validate:"omitempty,oneof=Regular Follow-up Emergency Consultation"`
	Reason    string    `json:"reason" validate:"required,max=1000"`
	Notes     string    `json:"notes" validate:"omitempty,max=4000"`
}

// UpdateAppointmentRequest is a partial update. Nil fields are left untouched.
type UpdateAppointmentRequest struct {
	StaffID  *uuid.UUID `json:"staffId"`
	Date     *string    `json:"date" validate:"omitempty,isodate"`
	Time     *string    `json:"time" validate:"omitempty,clock"`
	Duration *int       `json:"duration" validate:"omitempty,gt=0"`
	Type     *string    `json:"type" validate:"omitempty,oneof=Regular Follow-up Emergency Consultation"`
	Status   *string    `json:"status" validate:"omitempty,oneof=Scheduled Confirmed Completed Cancelled 'No Show'"`
	Reason   *string    `json:"reason" validate:"omitempty,min=1,max=1000"`
	Notes    *string    `json:"notes" validate:"omitempty,max=4000"`
}

func (r *UpdateAppointmentRequest) ChangedFields() []string {
	var fields []string
	add := func(set bool, name string) {
		if set {
			fields = append(fields, name)
		}
	}
	add(r.StaffID != nil, "staffId")
	add(r.Date != nil, "date")
	add(r.Time != nil, "time")
	add(r.Duration != nil, "duration")
	add(r.Type != nil, "type")
	add(r.Status != nil, "status")
	add(r.Reason != nil, "reason")
	add(r.Notes != nil, "notes")
	return fields
}

// Response DTOs

type AppointmentResponse struct {
	ID        uuid.UUID       `json:"id"`
	PatientID uuid.UUID       `json:"patientId"`
	StaffID   uuid.UUID       `json:"staffId"`
	Patient   *PatientSummary `json:"patient,omitempty"`
	Staff     *StaffSummary   `json:"staff,omitempty"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	EndTime   string          `json:"endTime"`
	Duration  int             `json:"duration"`
	Type      string          `json:"type"`
	Status    string          `json:"status"`
	Reason    string          `json:"reason"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
