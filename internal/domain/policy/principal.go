// Package policy decides what an authenticated caller may see and change.
// Every usecase consults the Principal instead of branching on role strings.
package policy

import (
	"context"
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID    uuid.UUID
	Name      string
	Email     string
	Role      string
	PatientID *uuid.UUID
	StaffID   *uuid.UUID

	// TokenID and TokenExpiresAt identify the access token the request was
	// made with.
	TokenID        string
	TokenExpiresAt time.Time
}

type contextKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal stored by the auth middleware, if any.
func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(*Principal)
	return p, ok && p != nil
}

// NewPrincipal builds a principal from a user loaded with its profiles.
func NewPrincipal(user *entity.User) *Principal {
	p := &Principal{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.RoleName(),
	}
	if user.PatientProfile != nil {
		id := user.PatientProfile.ID
		p.PatientID = &id
	}
	if user.StaffProfile != nil {
		id := user.StaffProfile.ID
		p.StaffID = &id
	}
	return p
}

func (p *Principal) IsAdmin() bool {
	return p.Role == entity.RoleAdmin
}

func (p *Principal) IsStaff() bool {
	return p.Role == entity.RoleStaff
}

func (p *Principal) IsPatient() bool {
	return p.Role == entity.RolePatient
}

// HasRole reports whether the principal holds any of roles.
func (p *Principal) HasRole(roles ...string) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

// ActorID is the user id recorded on audit rows.
func (p *Principal) ActorID() *uuid.UUID {
	id := p.UserID
	return &id
}

func (p *Principal) ownsPatient(patientID uuid.UUID) bool {
	return p.PatientID != nil && *p.PatientID == patientID
}

func (p *Principal) ownsStaff(staffID uuid.UUID) bool {
	return p.StaffID != nil && *p.StaffID == staffID
}
