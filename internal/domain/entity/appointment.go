package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentType constants
const (
	AppointmentTypeRegular      = "Regular"
	AppointmentTypeFollowUp     = "Follow-up"
	AppointmentTypeEmergency    = "Emergency"
	AppointmentTypeConsultation = "Consultation"
)

// AppointmentStatus constants
const (
	AppointmentStatusScheduled = "Scheduled"
	AppointmentStatusConfirmed = "Confirmed"
	AppointmentStatusCompleted = "Completed"
	AppointmentStatusCancelled = "Cancelled"
	AppointmentStatusNoShow    = "No Show"
)

const DefaultAppointmentDuration = 30

// Appointment books a staff member for a patient. Date and Time are the
// wall-clock values the client sent; StartsAt/EndsAt are derived from them
// and back the database exclusion constraint.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID uuid.UUID `gorm:"type:uuid;not null;index" json:"patientId"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_staff_date" json:"staffId"`
	Date      time.Time `gorm:"type:date;not null;index:idx_appointments_staff_date" json:"date"`
	Time      string    `gorm:"type:varchar(5);not null" json:"time"`
	Duration  int       `gorm:"not null;default:30" json:"duration"`
	StartsAt  time.Time `gorm:"type:timestamp;not null" json:"-"`
	EndsAt    time.Time `gorm:"type:timestamp;not null" json:"-"`
	Type      string    `gorm:"type:varchar(20);not null;default:'Regular'" json:"type"`
	Status    string    `gorm:"type:varchar(20);not null;default:'Scheduled';index" json:"status"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Staff   *StaffProfile   `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCancelled
}
