package entity

import "fmt"

// Role represents a user role in the system
type Role struct {
	ID          int    `gorm:"primaryKey;autoIncrement" json:"id"`
	RoleName    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"roleName"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relationships
	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

func (Role) TableName() string {
	return "roles"
}

// Role ID constants, seeded by the initial migration
const (
	RoleIDAdmin   = 1
	RoleIDStaff   = 2
	RoleIDPatient = 3
)

// RoleNames constants
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RolePatient = "patient"
)

// RoleNameForID maps a seeded role id to its name. Unknown ids yield "".
func RoleNameForID(id int) string {
	switch id {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDStaff:
		return RoleStaff
	case RoleIDPatient:
		return RolePatient
	}
	return ""
}

// RoleIDForName is the inverse of RoleNameForID. Unknown names yield 0.
func RoleIDForName(name string) int {
	switch name {
	case RoleAdmin:
		return RoleIDAdmin
	case RoleStaff:
		return RoleIDStaff
	case RolePatient:
		return RoleIDPatient
	}
	return 0
}

// MissingRoles lists the seeded roles absent from roles, or stored under an id
// other than the one user rows are mapped with.
func MissingRoles(roles []Role) []string {
	byName := make(map[string]int, len(roles))
	for _, r := range roles {
		byName[r.RoleName] = r.ID
	}

	var missing []string
	for _, want := range []Role{
		{ID: RoleIDAdmin, RoleName: RoleAdmin},
		{ID: RoleIDStaff, RoleName: RoleStaff},
		{ID: RoleIDPatient, RoleName: RolePatient},
	} {
		id, ok := byName[want.RoleName]
		switch {
		case !ok:
			missing = append(missing, want.RoleName)
		case id != want.ID:
			missing = append(missing, fmt.Sprintf("%s (id %d, expected %d)", want.RoleName, id, want.ID))
		}
	}
	return missing
}
