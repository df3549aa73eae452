package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"

	"github.com/google/uuid"
)

// UserToResponse converts a User entity to UserResponse DTO.
// Profile ids are included when the profiles were preloaded.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.RoleName(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.PatientProfile != nil {
		id := user.PatientProfile.ID
		response.PatientID = &id
	}
	if user.StaffProfile != nil {
		id := user.StaffProfile.ID
		response.StaffID = &id
	}
	return response
}

// UserToSummary returns nil for users that were not loaded.
func UserToSummary(user *entity.User) *dto.UserSummary {
	if user == nil || user.ID == uuid.Nil {
		return nil
	}
	return &dto.UserSummary{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
