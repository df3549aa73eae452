package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditMetadata is the jsonb payload attached to every audit row
type AuditMetadata struct {
	Entity   string `json:"entity"`
	EntityID string `json:"entity_id"`
	OldValue any    `json:"old_value"`
	NewValue any    `json:"new_value"`
}

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64                             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID                        `gorm:"type:uuid;index" json:"userId,omitempty"`
	Action    string                            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONType[AuditMetadata] `gorm:"type:jsonb" json:"metadata"`
	CreatedAt time.Time                         `gorm:"autoCreateTime;index" json:"createdAt"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionUserLogin         = "user.login"
	AuditActionUserLogout        = "user.logout"
	AuditActionUserRegister      = "user.register"
	AuditActionAdminCreate       = "admin.create"
	AuditActionPatientCreate     = "patient.create"
	AuditActionPatientUpdate     = "patient.update"
	AuditActionPatientDelete     = "patient.delete"
	AuditActionStaffCreate       = "staff.create"
	AuditActionStaffUpdate       = "staff.update"
	AuditActionStaffDelete       = "staff.delete"
	AuditActionAppointmentCreate = "appointment.create"
	AuditActionAppointmentUpdate = "appointment.update"
	AuditActionAppointmentDelete = "appointment.delete"
	AuditActionInvoiceCreate     = "invoice.create"
	AuditActionInvoiceUpdate     = "invoice.update"
	AuditActionInvoiceDelete     = "invoice.delete"
	AuditActionInvoicePay        = "invoice.pay"
	AuditActionRecordCreate      = "medical_record.create"
)
