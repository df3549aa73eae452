package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Duration     string `json:"duration,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

type LabResult struct {
	Test   string     `json:"test"`
	Result string     `json:"result"`
	Date   *time.Time `json:"date,omitempty"`
}

type VitalSigns struct {
	Temperature      *float64 `json:"temperature,omitempty"`
	BloodPressure    string   `json:"bloodPressure,omitempty"`
	HeartRate        *int     `json:"heartRate,omitempty"`
	RespiratoryRate  *int     `json:"respiratoryRate,omitempty"`
	OxygenSaturation *float64 `json:"oxygenSaturation,omitempty"`
}

// MedicalRecord is a clinical note written by a staff member for a patient
type MedicalRecord struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID                       `gorm:"type:uuid;not null;index" json:"patientId"`
	StaffID     uuid.UUID                       `gorm:"type:uuid;not null;index" json:"staffId"`
	Date        time.Time                       `gorm:"not null" json:"date"`
	Diagnosis   string                          `gorm:"type:text;not null" json:"diagnosis"`
	Symptoms    datatypes.JSONSlice[string]     `gorm:"type:jsonb" json:"symptoms"`
	Treatment   string                          `gorm:"type:text;not null" json:"treatment"`
	Medications datatypes.JSONSlice[Medication] `gorm:"type:jsonb" json:"medications"`
	LabResults  datatypes.JSONSlice[LabResult]  `gorm:"type:jsonb" json:"labResults"`
	VitalSigns  datatypes.JSONType[VitalSigns]  `gorm:"type:jsonb" json:"vitalSigns"`
	Notes       string                          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time                       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time                       `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	Patient *PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Staff   *StaffProfile   `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
