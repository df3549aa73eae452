package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MedicalCondition struct {
	Condition     string     `json:"condition"`
	DiagnosedDate *time.Time `json:"diagnosedDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type CurrentMedication struct {
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage,omitempty"`
	Frequency string     `json:"frequency,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

type InsuranceInfo struct {
	Provider     string     `json:"provider,omitempty"`
	PolicyNumber string     `json:"policyNumber,omitempty"`
	GroupNumber  string     `json:"groupNumber,omitempty"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
}

// PatientProfile represents patient-specific profile data, 1:1 with a User
type PatientProfile struct {
	ID                 uuid.UUID                              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID             uuid.UUID                              `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	DateOfBirth        *time.Time                             `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Gender             string                                 `gorm:"type:varchar(10)" json:"gender,omitempty"`
	BloodGroup         string                                 `gorm:"type:varchar(5)" json:"bloodGroup,omitempty"`
	Phone              string                                 `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address            datatypes.JSONType[Address]            `gorm:"type:jsonb" json:"address"`
	EmergencyContact   datatypes.JSONType[EmergencyContact]   `gorm:"type:jsonb" json:"emergencyContact"`
	MedicalHistory     datatypes.JSONSlice[MedicalCondition]  `gorm:"type:jsonb" json:"medicalHistory"`
	Allergies          datatypes.JSONSlice[string]            `gorm:"type:jsonb" json:"allergies"`
	CurrentMedications datatypes.JSONSlice[CurrentMedication] `gorm:"type:jsonb" json:"currentMedications"`
	InsuranceInfo      datatypes.JSONType[InsuranceInfo]      `gorm:"type:jsonb" json:"insuranceInfo"`
	CreatedAt          time.Time                              `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time                              `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}
