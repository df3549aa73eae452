package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter narrows appointment listings. Nil ids mean "any".
type AppointmentFilter struct {
	PatientID *uuid.UUID
	StaffID   *uuid.UUID
	Date      *time.Time
	Status    string
}

// InvoiceFilter narrows invoice listings. StartDate and EndDate are inclusive.
type InvoiceFilter struct {
	PatientID *uuid.UUID
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

type StaffFilter struct {
	Department string
	Position   string
	Status     string
}

type AuditLogFilter struct {
	UserID *uuid.UUID
	Action string
	Limit  int
	Offset int
}
