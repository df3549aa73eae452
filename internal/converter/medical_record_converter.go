package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

func MedicalRecordToResponse(rec *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if rec == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:          rec.ID,
		PatientID:   rec.PatientID,
		StaffID:     rec.StaffID,
		Patient:     PatientToSummary(rec.Patient),
		Staff:       StaffToSummary(rec.Staff),
		Date:        rec.Date,
		Diagnosis:   rec.Diagnosis,
		Symptoms:    nonNil(rec.Symptoms),
		Treatment:   rec.Treatment,
		Medications: nonNil(rec.Medications),
		LabResults:  nonNil(rec.LabResults),
		VitalSigns:  rec.VitalSigns.Data(),
		Notes:       rec.Notes,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}
