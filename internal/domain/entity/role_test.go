package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingRoles(t *testing.T) {
	seeded := []Role{
		{ID: RoleIDAdmin, RoleName: RoleAdmin},
		{ID: RoleIDStaff, RoleName: RoleStaff},
		{ID: RoleIDPatient, RoleName: RolePatient},
	}
	assert.Empty(t, MissingRoles(seeded))

	assert.Equal(t, []string{RoleAdmin, RoleStaff, RolePatient}, MissingRoles(nil))

	assert.Equal(t, []string{RolePatient}, MissingRoles(seeded[:2]))

	swapped := []Role{
		{ID: RoleIDAdmin, RoleName: RoleAdmin},
		{ID: RoleIDPatient, RoleName: RoleStaff},
		{ID: RoleIDStaff, RoleName: RolePatient},
	}
	assert.Equal(t, []string{"staff (id 3, expected 2)", "patient (id 2, expected 3)"}, MissingRoles(swapped))
}

func TestRoleNameForID(t *testing.T) {
	for _, name := range []string{RoleAdmin, RoleStaff, RolePatient} {
		assert.Equal(t, name, RoleNameForID(RoleIDForName(name)))
	}
	assert.Equal(t, "", RoleNameForID(42))
	assert.Equal(t, 0, RoleIDForName("janitor"))
}
