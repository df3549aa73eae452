package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

func StaffToResponse(profile *entity.StaffProfile) *dto.StaffResponse {
	if profile == nil {
		return nil
	}

	return &dto.StaffResponse{
		ID:               profile.ID,
		UserID:           profile.UserID,
		User:             UserToSummary(&profile.User),
		StaffCode:        profile.StaffCode,
		Department:       profile.Department,
		Position:         profile.Position,
		Specialization:   profile.Specialization,
		Qualification:    profile.Qualification,
		DateOfBirth:      formatDatePtr(profile.DateOfBirth),
		Gender:           profile.Gender,
		Phone:            profile.Phone,
		Address:          profile.Address.Data(),
		EmergencyContact: profile.EmergencyContact.Data(),
		JoinDate:         formatDate(profile.JoinDate),
		Schedule:         nonNil(profile.Schedule),
		Status:           profile.Status,
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}
}

func StaffListToResponses(profiles []entity.StaffProfile) []dto.StaffResponse {
	responses := make([]dto.StaffResponse, len(profiles))
	for i := range profiles {
		responses[i] = *StaffToResponse(&profiles[i])
	}
	return responses
}

func StaffToSummary(profile *entity.StaffProfile) *dto.StaffSummary {
	if profile == nil {
		return nil
	}
	return &dto.StaffSummary{
		ID:         profile.ID,
		StaffCode:  profile.StaffCode,
		Department: profile.Department,
		Position:   profile.Position,
		User:       UserToSummary(&profile.User),
	}
}

// ShiftBlocksFromRequest maps schedule request blocks onto the stored form.
func ShiftBlocksFromRequest(blocks []dto.ShiftBlockRequest) []entity.ShiftBlock {
	out := make([]entity.ShiftBlock, len(blocks))
	for i, b := range blocks {
		out[i] = entity.ShiftBlock{Day: b.Day, StartTime: b.StartTime, EndTime: b.EndTime}
	}
	return out
}
