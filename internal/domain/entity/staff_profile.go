package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StaffStatus constants
const (
	StaffStatusActive   = "Active"
	StaffStatusOnLeave  = "On Leave"
	StaffStatusInactive = "Inactive"
)

// ShiftBlock is one weekly working block, e.g. Monday 09:00-17:00
type ShiftBlock struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// StaffProfile represents staff-specific profile data, 1:1 with a User
type StaffProfile struct {
	ID               uuid.UUID                            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID                            `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	StaffCode        string                               `gorm:"type:varchar(20);uniqueIndex;not null" json:"staffId"`
	Department       string                               `gorm:"type:varchar(100);not null;index" json:"department"`
	Position         string                               `gorm:"type:varchar(100);not null;index" json:"position"`
	Specialization   string                               `gorm:"type:varchar(150)" json:"specialization,omitempty"`
	Qualification    string                               `gorm:"type:varchar(150)" json:"qualification,omitempty"`
	DateOfBirth      *time.Time                           `gorm:"type:date" json:"dateOfBirth,omitempty"`
	Gender           string                               `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Phone            string                               `gorm:"type:varchar(30);not null" json:"phone"`
	Address          datatypes.JSONType[Address]          `gorm:"type:jsonb" json:"address"`
	EmergencyContact datatypes.JSONType[EmergencyContact] `gorm:"type:jsonb" json:"emergencyContact"`
	JoinDate         time.Time                            `gorm:"type:date;not null" json:"joinDate"`
	Schedule         datatypes.JSONSlice[ShiftBlock]      `gorm:"type:jsonb" json:"schedule"`
	Status           string                               `gorm:"type:varchar(20);not null;default:'Active';index" json:"status"`
	CreatedAt        time.Time                            `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time                            `gorm:"autoUpdateTime" json:"updatedAt"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}
