package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// PatientToResponse converts a PatientProfile entity to PatientResponse DTO
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                 profile.ID,
		UserID:             profile.UserID,
		User:               UserToSummary(&profile.User),
		DateOfBirth:        formatDatePtr(profile.DateOfBirth),
		Gender:             profile.Gender,
		BloodGroup:         profile.BloodGroup,
		Phone:              profile.Phone,
		Address:            profile.Address.Data(),
		EmergencyContact:   profile.EmergencyContact.Data(),
		MedicalHistory:     nonNil(profile.MedicalHistory),
		Allergies:          nonNil(profile.Allergies),
		CurrentMedications: nonNil(profile.CurrentMedications),
		InsuranceInfo:      profile.InsuranceInfo.Data(),
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}
}

func PatientsToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i := range profiles {
		responses[i] = *PatientToResponse(&profiles[i])
	}
	return responses
}

// PatientToSummary returns nil when the patient was not preloaded.
func PatientToSummary(profile *entity.PatientProfile) *dto.PatientSummary {
	if profile == nil {
		return nil
	}
	return &dto.PatientSummary{
		ID:   profile.ID,
		User: UserToSummary(&profile.User),
	}
}

// nonNil keeps empty lists serialised as [] instead of null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
